package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/leapstack-labs/spectralint/pkg/lint"

	// Register the built-in rules.
	_ "github.com/leapstack-labs/spectralint/pkg/lint/rules"
)

var groupDescriptions = map[string]string{
	"references": "File paths and dated statements that no longer hold.",
	"clarity":    "Directives an agent cannot follow deterministically.",
	"security":   "Secrets, destructive commands and injection vectors in instructions.",
	"structure":  "Document size, heading order and required sections.",
	"crossfile":  "Inconsistencies between instruction files of the same project.",
}

// generateRuleDocs writes an index plus one page per rule group.
func generateRuleDocs(outDir string) error {
	log.Printf("Generating rule docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	grouped := groupRules(lint.AllRules())
	groups := lint.Groups()

	if err := os.WriteFile(filepath.Join(outDir, "index.md"), renderRuleIndex(groups, grouped), 0600); err != nil {
		return err
	}
	log.Printf("  Generated index.md")

	for _, group := range groups {
		name := group + ".md"
		if err := os.WriteFile(filepath.Join(outDir, name), renderGroupPage(group, grouped[group]), 0600); err != nil {
			return err
		}
		log.Printf("  Generated %s", name)
	}
	return nil
}

func renderRuleIndex(groups []string, grouped map[string][]lint.RuleInfo) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter("Rules", "Built-in spectralint rules")
	w.GeneratedMarker()

	w.Header(1, "Rules")
	w.Paragraph(fmt.Sprintf("spectralint ships %d built-in rules in %d groups. Rules marked strict-only run with %s or when enabled in the config file.",
		lint.Count(), len(groups), InlineCode("--strict")))

	w.Header(2, "Severity Levels")
	w.Table(
		[]string{"Severity", "Meaning"},
		[][]string{
			{InlineCode("error"), "The instruction is broken or unsafe"},
			{InlineCode("warning"), "The instruction is likely to mislead an agent"},
			{InlineCode("info"), "A suggestion"},
		},
	)

	w.Header(2, "All Rules")
	var rows [][]string
	for _, group := range groups {
		for _, r := range grouped[group] {
			strict := ""
			if r.StrictOnly {
				strict = "yes"
			}
			rows = append(rows, []string{
				fmt.Sprintf("[%s](%s.md#%s)", InlineCode(r.ID), group, r.ID),
				group,
				InlineCode(r.Severity.String()),
				strict,
				cleanDescription(r.Description),
			})
		}
	}
	w.Table([]string{"Rule", "Group", "Severity", "Strict only", "Description"}, rows)

	w.Header(2, "Suppressing Diagnostics")
	w.CodeBlock("markdown", `<!-- spectralint-disable-next-line vague-directive -->
Try to keep functions short.

<!-- spectralint-disable dead-reference -->
Old layout: src/legacy/main.go
<!-- spectralint-enable dead-reference -->`)

	return w.Bytes()
}

func renderGroupPage(group string, rules []lint.RuleInfo) []byte {
	w := NewMarkdownWriter()
	title := capitalizeFirst(group) + " Rules"
	w.Frontmatter(title, groupDescriptions[group])
	w.GeneratedMarker()

	w.Header(1, title)
	if desc, ok := groupDescriptions[group]; ok {
		w.Paragraph(desc)
	}
	for _, r := range rules {
		writeRuleDoc(w, r)
	}
	return w.Bytes()
}

// groupRules organizes rule metadata by group, sorted by ID.
func groupRules(defs []lint.RuleDef) map[string][]lint.RuleInfo {
	grouped := make(map[string][]lint.RuleInfo)
	for _, d := range defs {
		grouped[d.Group] = append(grouped[d.Group], lint.GetRuleInfo(d))
	}
	for group := range grouped {
		sort.Slice(grouped[group], func(i, j int) bool {
			return grouped[group][i].ID < grouped[group][j].ID
		})
	}
	return grouped
}

// capitalizeFirst capitalizes the first letter of a string.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// writeRuleDoc writes the documentation of a single rule.
func writeRuleDoc(w *MarkdownWriter, rule lint.RuleInfo) {
	w.Line(fmt.Sprintf("## %s - %s %s", rule.ID, rule.Name, anchor(rule.ID)))
	w.Newline()

	meta := fmt.Sprintf("**Severity:** %s | **Kind:** %s", InlineCode(rule.Severity.String()), rule.Kind)
	if rule.StrictOnly {
		meta += " | **Strict only**"
	}
	w.Line(meta)
	w.Newline()

	w.Paragraph(rule.Description)

	if rule.Rationale != "" {
		w.Header(3, "Why This Matters")
		w.Paragraph(rule.Rationale)
	}
	if rule.BadExample != "" {
		w.Header(3, "Bad")
		w.CodeBlock("markdown", rule.BadExample)
	}
	if rule.GoodExample != "" {
		w.Header(3, "Good")
		w.CodeBlock("markdown", rule.GoodExample)
	}
	if rule.Fix != "" {
		w.Header(3, "How to Fix")
		w.Paragraph(rule.Fix)
	}

	w.Header(3, "Configuration")
	example := fmt.Sprintf("[checkers.%s]\nenabled = true", rule.ConfigKey)
	for _, key := range rule.ConfigKeys {
		example += "\n# " + key + " = ..."
	}
	w.CodeBlock("toml", example)

	w.Line("---")
	w.Newline()
}
