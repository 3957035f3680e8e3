package clarity

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/leapstack-labs/spectralint/pkg/lint"
)

func init() {
	lint.Register(AgentGuidelines)
}

// AgentGuidelines runs four checks aimed at agent definition files.
var AgentGuidelines = lint.RuleDef{
	ID:          "agent-guidelines",
	Name:        "clarity.agent_guidelines",
	Group:       "clarity",
	Description: "Agent definition lacks boundaries, focus or an output format",
	Severity:    lint.SeverityInfo,
	Kind:        lint.KindPerFile,
	StrictOnly:  true,
	CheckFile:   checkAgentGuidelines,
	Rationale: `Agent files work best with a narrow responsibility, explicit limits and a
described response shape. Four checks run:
  - positive imperatives with no negative constraint at all
  - section headings spanning four or more responsibility areas
  - open-ended delegation ("do whatever", "figure it out")
  - no mention of output, format or response structure`,
	BadExample:  "You have full autonomy. Handle everything related to the release.",
	GoodExample: "Only edit files under src/. Never push. Respond with a unified diff.",
	Fix:         "Add boundaries, split broad agents and describe the expected output.",
}

const (
	minPositives      = 3
	minInstructionLen = 5
	minAreas          = 4
)

var (
	mustPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\balways\b`),
		regexp.MustCompile(`(?i)\bmust\b`),
		regexp.MustCompile(`(?i)\bshould\b`),
		regexp.MustCompile(`(?i)\bmake sure\b`),
	}
	mustNotPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bnever\b`),
		regexp.MustCompile(`(?i)\bdo not\b`),
		regexp.MustCompile(`(?i)\bdon'?t\b`),
		regexp.MustCompile(`(?i)\bavoid\b`),
		regexp.MustCompile(`(?i)\bmust not\b`),
	}
	delegationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bdo whatever\b`),
		regexp.MustCompile(`(?i)\bhandle everything\b`),
		regexp.MustCompile(`(?i)\bfull autonomy\b`),
		regexp.MustCompile(`(?i)\bcomplete freedom\b`),
		regexp.MustCompile(`(?i)\buse your best judgm?ent\b`),
		regexp.MustCompile(`(?i)\bfigure it out\b`),
		regexp.MustCompile(`(?i)\bas you see fit\b`),
	}

	// "full autonomy" can describe a project rather than grant freedom, so
	// it needs wording that addresses the agent.
	agentAddressing = regexp.MustCompile(`(?i)\b(?:you|your|agent|claude|assistant|copilot|have|grant|give|with)\b`)
	outputFormat    = regexp.MustCompile(`(?i)\b(?:output|format|return|respond|response format|structure)\b`)
)

var responsibilityAreas = []struct {
	keywords []string
	area     string
}{
	{[]string{"build", "compile"}, "build/compile"},
	{[]string{"test", "qa"}, "test/qa"},
	{[]string{"deploy", "release"}, "deploy/release"},
	{[]string{"review", "audit"}, "review/audit"},
	{[]string{"write", "create"}, "write/create"},
	{[]string{"debug", "fix"}, "debug/fix"},
	{[]string{"security"}, "security"},
	{[]string{"performance"}, "performance"},
	{[]string{"documentation"}, "documentation"},
	{[]string{"formatting", "style"}, "formatting/style"},
}

func checkAgentGuidelines(ctx *lint.FileContext) []lint.Diagnostic {
	var diags []lint.Diagnostic
	diags = append(diags, missingConstraints(ctx)...)
	diags = append(diags, multiResponsibility(ctx)...)
	diags = append(diags, unconstrainedDelegation(ctx)...)
	diags = append(diags, missingOutputFormat(ctx)...)
	return diags
}

func anyMatch(patterns []*regexp.Regexp, s string) bool {
	return slices.ContainsFunc(patterns, func(re *regexp.Regexp) bool {
		return re.MatchString(s)
	})
}

func missingConstraints(ctx *lint.FileContext) []lint.Diagnostic {
	lines := ctx.Doc.InstructionLines()
	positives := 0
	for _, l := range lines {
		if anyMatch(mustNotPatterns, l.Text) {
			return nil
		}
		if anyMatch(mustPatterns, l.Text) {
			positives++
		}
	}
	if positives < minPositives || len(lines) < minInstructionLen {
		return nil
	}
	return []lint.Diagnostic{ctx.Diag(1, lint.SeverityInfo,
		"File has positive imperatives (Always/Must/Should) but no negative constraints (Never/Do not/Avoid). "+
			"Consider adding boundaries to clarify what the agent should NOT do.")}
}

func multiResponsibility(ctx *lint.FileContext) []lint.Diagnostic {
	found := make(map[string]bool)
	for _, s := range ctx.Doc.Sections {
		title := strings.ToLower(s.Title)
		for _, ra := range responsibilityAreas {
			if slices.ContainsFunc(ra.keywords, func(kw string) bool { return strings.Contains(title, kw) }) {
				found[ra.area] = true
			}
		}
	}
	if len(found) < minAreas {
		return nil
	}

	areas := make([]string, 0, len(found))
	for a := range found {
		areas = append(areas, a)
	}
	slices.Sort(areas)
	return []lint.Diagnostic{ctx.Diag(1, lint.SeverityInfo, fmt.Sprintf(
		"File covers %d responsibility areas (%s). Consider splitting into focused single-responsibility agent files.",
		len(areas), strings.Join(areas, ", ")))}
}

func unconstrainedDelegation(ctx *lint.FileContext) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, l := range ctx.Doc.InstructionLines() {
		for _, re := range delegationPatterns {
			m := re.FindString(l.Text)
			if m == "" {
				continue
			}
			lower := strings.ToLower(m)
			if (strings.Contains(lower, "autonomy") || strings.Contains(lower, "freedom")) &&
				!agentAddressing.MatchString(l.Text) {
				continue
			}
			diags = append(diags, ctx.Diag(l.Num, lint.SeverityInfo, fmt.Sprintf(
				"Unconstrained delegation: %q. Provide specific boundaries instead of open-ended autonomy.", m)))
		}
	}
	return diags
}

func missingOutputFormat(ctx *lint.FileContext) []lint.Diagnostic {
	hasContent := slices.ContainsFunc(ctx.Doc.Lines, func(s string) bool {
		return strings.TrimSpace(s) != ""
	})
	if !hasContent {
		return nil
	}
	for _, l := range ctx.Doc.NonCodeLines() {
		if outputFormat.MatchString(l.Text) {
			return nil
		}
	}
	return []lint.Diagnostic{ctx.Diag(1, lint.SeverityInfo,
		"No output format specification found. Consider describing the expected response format or structure.")}
}
