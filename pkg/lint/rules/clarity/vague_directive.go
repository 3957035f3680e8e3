package clarity

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/leapstack-labs/spectralint/pkg/lint"
)

func init() {
	lint.Register(VagueDirective)
}

// VagueDirective flags hedging phrases on instruction lines.
var VagueDirective = lint.RuleDef{
	ID:              "vague-directive",
	Name:            "clarity.vague_directive",
	Group:           "clarity",
	Description:     "Non-deterministic directive an agent cannot act on consistently",
	Severity:        lint.SeverityInfo,
	Kind:            lint.KindPerFile,
	CheckFile:       checkVagueDirective,
	ConfigKeys:      []string{"extra_patterns"},
	ValidateOptions: validateVagueOptions,
	Rationale: `Phrases like "try to", "consider" or "when possible" let the agent decide
whether an instruction applies, so it is applied inconsistently. Only the first
match on each line is reported. Blockquotes, table rows and indented code are
not treated as instructions.`,
	BadExample:  "Try to keep functions small when possible.",
	GoodExample: "Keep functions under 40 lines.",
	Fix:         "Replace with a specific, deterministic instruction.",
}

var vaguePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\btry to\b`),
	regexp.MustCompile(`(?i)\bconsider\b`),
	regexp.MustCompile(`(?i)\buse your judgm?ent\b`),
	regexp.MustCompile(`(?i)\bif appropriate\b`),
	regexp.MustCompile(`(?i)\bbe helpful\b`),
	regexp.MustCompile(`(?i)\bwhen possible\b`),
	regexp.MustCompile(`(?i)\bwhen needed\b`),
	regexp.MustCompile(`(?i)\bwhen necessary\b`),
	regexp.MustCompile(`(?i)\bas needed\b`),
	regexp.MustCompile(`(?i)\bas appropriate\b`),
}

// extraCache holds compiled extra_patterns, keyed by source. A nil value
// marks a pattern that failed to compile.
var extraCache sync.Map

func compileExtra(src string) *regexp.Regexp {
	if v, ok := extraCache.Load(src); ok {
		return v.(*regexp.Regexp)
	}
	re, _ := regexp.Compile(src)
	extraCache.Store(src, re)
	return re
}

func validateVagueOptions(opts lint.Options) []string {
	var problems []string
	for _, src := range opts.Strings("extra_patterns", nil) {
		if _, err := regexp.Compile(src); err != nil {
			problems = append(problems, fmt.Sprintf("invalid extra_pattern %q ignored, the rule runs without it: %v", src, err))
		}
	}
	return problems
}

func checkVagueDirective(ctx *lint.FileContext) []lint.Diagnostic {
	patterns := vaguePatterns
	if extra := ctx.Options.Strings("extra_patterns", nil); len(extra) > 0 {
		patterns = append([]*regexp.Regexp(nil), vaguePatterns...)
		for _, src := range extra {
			if re := compileExtra(src); re != nil {
				patterns = append(patterns, re)
			}
		}
	}

	var diags []lint.Diagnostic
	for _, l := range ctx.Doc.InstructionLines() {
		for _, re := range patterns {
			m := re.FindString(l.Text)
			if m == "" {
				continue
			}
			diags = append(diags, ctx.Diag(l.Num, lint.SeverityInfo,
				fmt.Sprintf("Non-deterministic directive found: %q", strings.TrimSpace(m))))
			break
		}
	}
	return diags
}
