package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/spectralint/internal/cli/output"
	"github.com/leapstack-labs/spectralint/pkg/lint"
	"github.com/spf13/cobra"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Group   string // Filter by group
	Details bool   // Show rationale in listings
	Format  string // Output format
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:     "rules [rule-id]",
		Aliases: []string{"explain"},
		Short:   "List lint rules or explain one",
		Long: `List all built-in lint rules, or explain a single rule: why it matters,
what triggers it, how to fix it and which options it accepts.

Rules are organized by group (references, clarity, security, structure,
crossfile). Strict-only rules run with --strict or when enabled in the
config file.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # List all rules
  spectralint rules

  # Explain a rule
  spectralint explain dead-reference

  # List security rules with their rationale
  spectralint rules --group security --details

  # Output as JSON
  spectralint rules --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0], opts)
			}
			return listRules(cmd, opts)
		},
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			var ids []string
			for _, def := range lint.AllRules() {
				ids = append(ids, def.ID+"\t"+def.Description)
			}
			return ids, cobra.ShellCompDirectiveNoFileComp
		},
	}

	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "Filter by group")
	cmd.Flags().BoolVarP(&opts.Details, "details", "d", false, "Show the rationale of each rule")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, markdown")

	return cmd
}

func rulesRenderer(cmd *cobra.Command, format string) (*output.Renderer, error) {
	mode, err := output.ParseMode(format)
	if err != nil {
		return nil, err
	}
	if mode == output.ModeGitHub {
		return nil, fmt.Errorf("format %q is only supported by check", format)
	}
	return NewCommandContext(cmd, string(mode)).Renderer, nil
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	r, err := rulesRenderer(cmd, opts.Format)
	if err != nil {
		return err
	}

	rules := filterRules(lint.AllRules(), opts.Group)
	if opts.Group != "" && len(rules) == 0 {
		return fmt.Errorf("no rules in group %q (groups: %s)", opts.Group, strings.Join(lint.Groups(), ", "))
	}

	// Group, then ID
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].Group != rules[j].Group {
			return rules[i].Group < rules[j].Group
		}
		return rules[i].ID < rules[j].ID
	})

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return listRulesJSON(r, rules)
	case output.ModeMarkdown:
		return listRulesMarkdown(r, rules, opts.Details)
	default:
		return listRulesText(r, rules, opts.Details)
	}
}

func filterRules(rules []lint.RuleDef, group string) []lint.RuleDef {
	if group == "" {
		return rules
	}
	var filtered []lint.RuleDef
	for _, def := range rules {
		if strings.EqualFold(def.Group, group) {
			filtered = append(filtered, def)
		}
	}
	return filtered
}

// findRule accepts a rule ID or its config key.
func findRule(name string) (lint.RuleDef, bool) {
	if def, ok := lint.GetByID(name); ok {
		return def, true
	}
	return lint.GetByConfigKey(name)
}

func showRule(cmd *cobra.Command, name string, opts *RulesOptions) error {
	r, err := rulesRenderer(cmd, opts.Format)
	if err != nil {
		return err
	}

	def, ok := findRule(name)
	if !ok {
		return fmt.Errorf("unknown rule %q (run 'spectralint rules' to list rules)", name)
	}
	info := lint.GetRuleInfo(def)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(info)
	case output.ModeMarkdown:
		return showRuleMarkdown(r, info)
	default:
		return showRuleText(r, info)
	}
}

// listRulesText outputs rules as a styled table.
func listRulesText(r *output.Renderer, rules []lint.RuleDef, details bool) error {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("Lint Rules (%d)", len(rules))))
	r.Println("")

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Rule", "Group", "Severity", "Kind", "Description"})
	for _, def := range rules {
		id := def.ID
		if def.StrictOnly {
			id += " *"
		}
		t.AppendRow(table.Row{
			id,
			def.Group,
			styles.Severity(def.Severity).Render(def.Severity.String()),
			def.Kind.String(),
			output.Truncate(def.Description, 60),
		})
		if details && def.Rationale != "" {
			t.AppendRow(table.Row{"", "", "", "", styles.Muted.Render(output.Truncate(oneLine(def.Rationale), 60))})
		}
	}
	t.Render()

	r.Println("")
	r.Println(styles.Muted.Render("* strict-only: runs with --strict or when enabled in the config file"))
	r.Println(styles.Muted.Render("Use 'spectralint explain <rule-id>' for detailed documentation"))
	r.Println("")
	return nil
}

// listRulesMarkdown outputs rules in markdown format.
func listRulesMarkdown(r *output.Renderer, rules []lint.RuleDef, details bool) error {
	r.Println("# Lint Rules")
	r.Println("")

	currentGroup := ""
	for _, def := range rules {
		if def.Group != currentGroup {
			if currentGroup != "" {
				r.Println("")
			}
			currentGroup = def.Group
			r.Println("## " + capitalizeFirst(currentGroup))
			r.Println("")
		}

		strict := ""
		if def.StrictOnly {
			strict = ", strict-only"
		}
		r.Printf("- **%s** - %s (`%s`%s)\n", def.ID, def.Description, def.Severity, strict)
		if details && def.Rationale != "" {
			r.Println("  > " + oneLine(def.Rationale))
		}
	}

	r.Println("")
	return nil
}

// RulesJSONOutput is the JSON output structure for rules listing.
type RulesJSONOutput struct {
	Rules []lint.RuleInfo `json:"rules"`
	Count struct {
		ByGroup map[string]int `json:"by_group"`
		Total   int            `json:"total"`
	} `json:"count"`
}

// listRulesJSON outputs rules in JSON format.
func listRulesJSON(r *output.Renderer, rules []lint.RuleDef) error {
	out := RulesJSONOutput{Rules: make([]lint.RuleInfo, 0, len(rules))}
	out.Count.ByGroup = make(map[string]int)
	for _, def := range rules {
		out.Rules = append(out.Rules, lint.GetRuleInfo(def))
		out.Count.ByGroup[def.Group]++
	}
	out.Count.Total = len(rules)
	return r.JSON(out)
}

// showRuleText displays detailed rule info in text format.
func showRuleText(r *output.Renderer, rule lint.RuleInfo) error {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("%s - %s", rule.ID, rule.Name)))
	r.Println("")

	r.Printf("  %s: %s\n", styles.Bold.Render("Group"), rule.Group)
	r.Printf("  %s: %s\n", styles.Bold.Render("Severity"), styles.Severity(rule.Severity).Render(rule.Severity.String()))
	r.Printf("  %s: %s\n", styles.Bold.Render("Kind"), rule.Kind)
	if rule.StrictOnly {
		r.Printf("  %s: %s\n", styles.Bold.Render("Strict only"), "yes")
	}
	r.Println("")

	r.Println(styles.Bold.Render("Description"))
	r.Println("  " + rule.Description)
	r.Println("")

	if rule.Rationale != "" {
		r.Println(styles.Bold.Render("Why This Matters"))
		r.Println("  " + rule.Rationale)
		r.Println("")
	}

	if rule.BadExample != "" {
		r.Println(styles.Bold.Render("Bad Example"))
		for _, line := range strings.Split(rule.BadExample, "\n") {
			r.Println(styles.Muted.Render("  " + line))
		}
		r.Println("")
	}

	if rule.GoodExample != "" {
		r.Println(styles.Bold.Render("Good Example"))
		for _, line := range strings.Split(rule.GoodExample, "\n") {
			r.Println(styles.Success.Render("  " + line))
		}
		r.Println("")
	}

	if rule.Fix != "" {
		r.Println(styles.Bold.Render("How to Fix"))
		r.Println("  " + rule.Fix)
		r.Println("")
	}

	r.Println(styles.Bold.Render("Configuration"))
	r.Printf("  [checkers.%s]\n", rule.ConfigKey)
	r.Println("  Common: enabled, strict, severity, scope")
	if len(rule.ConfigKeys) > 0 {
		r.Printf("  Options: %s\n", strings.Join(rule.ConfigKeys, ", "))
	}
	r.Println("")

	return nil
}

// showRuleMarkdown displays detailed rule info in markdown format.
func showRuleMarkdown(r *output.Renderer, rule lint.RuleInfo) error {
	r.Printf("# %s - %s\n\n", rule.ID, rule.Name)
	r.Printf("**Group:** %s | **Severity:** `%s` | **Kind:** %s", rule.Group, rule.Severity, rule.Kind)
	if rule.StrictOnly {
		r.Printf(" | **Strict only**")
	}
	r.Println("")
	r.Println("")
	r.Println(rule.Description)
	r.Println("")

	if rule.Rationale != "" {
		r.Println("## Why This Matters")
		r.Println("")
		r.Println(rule.Rationale)
		r.Println("")
	}

	if rule.BadExample != "" {
		r.Println("## Bad Example")
		r.Println("")
		r.Println("```markdown")
		r.Println(rule.BadExample)
		r.Println("```")
		r.Println("")
	}

	if rule.GoodExample != "" {
		r.Println("## Good Example")
		r.Println("")
		r.Println("```markdown")
		r.Println(rule.GoodExample)
		r.Println("```")
		r.Println("")
	}

	if rule.Fix != "" {
		r.Println("## How to Fix")
		r.Println("")
		r.Println(rule.Fix)
		r.Println("")
	}

	r.Println("## Configuration")
	r.Println("")
	r.Printf("Table: `[checkers.%s]`\n", rule.ConfigKey)
	if len(rule.ConfigKeys) > 0 {
		r.Println("")
		r.Printf("Options: `%s`\n", strings.Join(rule.ConfigKeys, "`, `"))
	}
	r.Println("")

	return nil
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
