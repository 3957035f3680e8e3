package clarity

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/leapstack-labs/spectralint/pkg/lint"
)

func init() {
	lint.Register(PlaceholderText)
}

// PlaceholderText flags unfinished content left in instruction files.
var PlaceholderText = lint.RuleDef{
	ID:          "placeholder-text",
	Name:        "clarity.placeholder_text",
	Group:       "clarity",
	Description: "Placeholder or unfinished text",
	Severity:    lint.SeverityWarning,
	Kind:        lint.KindPerFile,
	CheckFile:   checkPlaceholderText,
	Rationale: `Markers like [TODO] or [insert path here] and open-ended "etc." leave
the agent to invent the missing part. "etc" closing a real enumeration
("lint, test, build, etc.") is accepted, including when the list wraps
from the previous line.`,
	BadExample:  "Deploy to [insert environment] and notify the team, etc.",
	GoodExample: "Deploy to staging and post in #releases.",
	Fix:         "Replace the placeholder with actual content.",
}

var (
	placeholderPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\[TODO\]`),
		regexp.MustCompile(`(?i)\[TBD\]`),
		regexp.MustCompile(`(?i)\[FIXME\]`),
		regexp.MustCompile(`(?i)\[insert .+?\]`),
		regexp.MustCompile(`(?i)\betc\.?(?:\s|$)`),
		regexp.MustCompile(`(?i)\band so on\b`),
		regexp.MustCompile(`\.{3,}\s*$`),
	}

	commaEnumeration = regexp.MustCompile(`(?:[^,]+,\s*){2,}.*\betc\.?`)
	orEnumeration    = regexp.MustCompile(`(?i)(?:\w+\s+or\s+){2,}\w+\s+etc\.?`)
)

func checkPlaceholderText(ctx *lint.FileContext) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, l := range ctx.Doc.NonCodeLines() {
		prev := ""
		if l.Num > 1 {
			prev = ctx.Doc.LineText(l.Num - 1)
		}
		for _, re := range placeholderPatterns {
			m := re.FindString(l.Text)
			if m == "" || etcAfterEnumeration(l.Text, m, prev) {
				continue
			}
			diags = append(diags, ctx.Diag(l.Num, lint.SeverityWarning,
				fmt.Sprintf("Placeholder text found: %q", strings.TrimSpace(m))))
			break
		}
	}
	return diags
}

// etcAfterEnumeration reports whether an "etc" match closes a list of at
// least three items, on this line or continued from prev.
func etcAfterEnumeration(line, match, prev string) bool {
	m := strings.TrimSpace(match)
	if len(m) < 3 || !strings.EqualFold(m[:3], "etc") {
		return false
	}
	if isEnumeration(line) {
		return true
	}
	if prev == "" {
		return false
	}
	return isEnumeration(strings.TrimSpace(prev) + " " + strings.TrimSpace(line))
}

func isEnumeration(s string) bool {
	return commaEnumeration.MatchString(s) || orEnumeration.MatchString(s)
}
