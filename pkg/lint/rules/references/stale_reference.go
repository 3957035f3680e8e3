package references

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/leapstack-labs/spectralint/pkg/lint"
)

func init() {
	lint.Register(StaleReference)
}

// StaleReference reports instructions that depend on a date or a
// deprecation window and will silently go stale.
var StaleReference = lint.RuleDef{
	ID:          "stale-reference",
	Name:        "references.stale",
	Group:       "references",
	Description: "Time-sensitive instruction that will go stale",
	Severity:    lint.SeverityWarning,
	Kind:        lint.KindPerFile,
	CheckFile:   checkStaleReference,
	Rationale: `Instructions like "until March 2025, use the v1 API" keep being followed
long after the date has passed. Permanent deprecations ("deprecated in favor
of X") and mentions inside inline code are not reported.`,
	BadExample:  "Until June 2025, deploy with the legacy script.",
	GoodExample: "Deploy with `make deploy`.",
	Fix:         "Remove the time-sensitive logic or replace it with a permanent instruction.",
}

var (
	deprecatedPermanent = regexp.MustCompile(`(?i)\bdeprecated\s+in\s+(?:favor|lieu|preference)\b`)

	stalePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:before|after|until|since|as of)\s+(?:january|february|march|april|may|june|july|august|september|october|november|december)\s+20\d{2}`),
		regexp.MustCompile(`(?i)\b(?:before|after|until|since|as of)\s+20\d{2}`),
		regexp.MustCompile(`(?i)\b(?:before|after|until|since|as of)\s+\d{1,2}/\d{1,2}/\d{2,4}`),
		regexp.MustCompile(`(?i)\bif\b.*\byear\b.*\b20\d{2}\b`),
		regexp.MustCompile(`(?i)\bdeprecated\s+(?:in|since|after)\b`),
	}
)

func checkStaleReference(ctx *lint.FileContext) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, l := range ctx.Doc.NonCodeLines() {
		if deprecatedPermanent.MatchString(l.Text) {
			continue
		}
		for _, re := range stalePatterns {
			loc := re.FindStringIndex(l.Text)
			if loc == nil || insideInlineCode(l.Text, loc[0]) {
				continue
			}
			diags = append(diags, ctx.Diag(l.Num, lint.SeverityWarning,
				fmt.Sprintf("Time-sensitive reference found: %q", l.Text[loc[0]:loc[1]])))
			break
		}
	}
	return diags
}

// insideInlineCode reports whether pos follows an odd number of backticks.
func insideInlineCode(line string, pos int) bool {
	return strings.Count(line[:pos], "`")%2 == 1
}
