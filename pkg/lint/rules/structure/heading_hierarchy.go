package structure

import (
	"fmt"

	"github.com/leapstack-labs/spectralint/pkg/lint"
)

func init() {
	lint.Register(HeadingHierarchy)
}

// HeadingHierarchy flags headings that skip a level.
var HeadingHierarchy = lint.RuleDef{
	ID:          "heading-hierarchy",
	Name:        "structure.heading_hierarchy",
	Group:       "structure",
	Description: "Heading level skipped",
	Severity:    lint.SeverityInfo,
	Kind:        lint.KindPerFile,
	StrictOnly:  true,
	CheckFile:   checkHeadingHierarchy,
	Rationale: `Agents use the heading outline to decide which rules apply where. A jump
from h1 to h3 leaves the nesting ambiguous. Going back up any number of
levels is fine.`,
	BadExample:  "# Project\n### Testing",
	GoodExample: "# Project\n## Testing",
	Fix:         "Add an intermediate heading level to maintain hierarchy.",
}

func checkHeadingHierarchy(ctx *lint.FileContext) []lint.Diagnostic {
	var diags []lint.Diagnostic
	prev := 0
	for _, h := range ctx.Doc.Headings {
		if prev > 0 && h.Level > prev+1 {
			diags = append(diags, ctx.Diag(h.Line, lint.SeverityInfo, fmt.Sprintf(
				"Heading level skipped: h%d to h%d (%q)", prev, h.Level, h.Text)))
		}
		prev = h.Level
	}
	return diags
}
