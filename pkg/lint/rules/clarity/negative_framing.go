package clarity

import (
	"fmt"
	"regexp"

	"github.com/leapstack-labs/spectralint/pkg/lint"
)

func init() {
	lint.Register(NegativeOnlyFraming)
}

// Defaults for negative-only-framing.
const (
	DefaultNegativeThreshold = 0.75
	DefaultMinNegativeCount  = 5
)

// NegativeOnlyFraming flags files whose directives are mostly prohibitions.
var NegativeOnlyFraming = lint.RuleDef{
	ID:              "negative-only-framing",
	Name:            "clarity.negative_only_framing",
	Group:           "clarity",
	Description:     "Directives are mostly prohibitions with no positive path",
	Severity:        lint.SeverityInfo,
	Kind:            lint.KindPerFile,
	StrictOnly:      true,
	CheckFile:       checkNegativeOnlyFraming,
	ConfigKeys:      []string{"threshold", "min_negative_count"},
	ValidateOptions: validateNegativeOptions,
	Rationale: `A list of "never" and "do not" tells the agent what to avoid but not what
to do instead. The rule reports once per file, on line 1, when at least
min_negative_count instruction lines are negative and the negative share
reaches threshold.`,
	BadExample:  "Never use var. Don't commit secrets. Avoid globals. Do not skip tests. Never push to main.",
	GoodExample: "Use const or let. Load secrets from the vault. Run tests before pushing.",
	Fix:         "Add positive directives (Always/Use/Run/Follow) so agents have a clear path forward.",
}

var (
	positiveDirective = regexp.MustCompile(`(?i)\b(?:always|must|should|use|run|follow|prefer|ensure|make\s+sure)\b`)
	negativeDirective = regexp.MustCompile(`(?i)\b(?:never|do\s+not|don'?t|avoid|must\s+not|prohibited|forbidden)\b`)
)

func validateNegativeOptions(opts lint.Options) []string {
	var problems []string
	if t := opts.Float("threshold", DefaultNegativeThreshold); t < 0 || t > 1 {
		problems = append(problems, fmt.Sprintf("threshold must be between 0 and 1, got %v", t))
	}
	if n := opts.Int("min_negative_count", DefaultMinNegativeCount); n < 1 {
		problems = append(problems, fmt.Sprintf("min_negative_count must be at least 1, got %d", n))
	}
	return problems
}

func checkNegativeOnlyFraming(ctx *lint.FileContext) []lint.Diagnostic {
	threshold := ctx.Options.Float("threshold", DefaultNegativeThreshold)
	minNegative := ctx.Options.Int("min_negative_count", DefaultMinNegativeCount)

	var positive, negative int
	for _, l := range ctx.Doc.InstructionLines() {
		if positiveDirective.MatchString(l.Text) {
			positive++
		}
		if negativeDirective.MatchString(l.Text) {
			negative++
		}
	}
	if negative < minNegative {
		return nil
	}

	ratio := float64(negative) / float64(positive+negative)
	if ratio < threshold {
		return nil
	}
	return []lint.Diagnostic{ctx.Diag(1, lint.SeverityInfo, fmt.Sprintf(
		"%.0f%% of directives are negative (%d negative vs %d positive). Agents need positive guidance, not just restrictions.",
		ratio*100, negative, positive))}
}
