package references

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/spectralint/pkg/lint"
)

func init() {
	lint.Register(DeadReference)
}

// DeadReference reports references to markdown files that do not exist.
var DeadReference = lint.RuleDef{
	ID:          "dead-reference",
	Name:        "references.dead",
	Group:       "references",
	Description: "Referenced markdown file does not exist",
	Severity:    lint.SeverityError,
	Kind:        lint.KindPerFile,
	CheckFile:   checkDeadReference,
	Rationale: `An agent told to "load agents/reviewer.md" will either fail or improvise
when the file is gone. References are resolved against the referencing file's
directory, then against the project root. Template paths containing *, [ or {
and URLs are not checked. Historical files are skipped.`,
	BadExample:  "See `agents/reviewer.md` for the review checklist.   (file was renamed)",
	GoodExample: "See `agents/code-reviewer.md` for the review checklist.",
	Fix:         "Remove the reference or create the missing file.",
}

func checkDeadReference(ctx *lint.FileContext) []lint.Diagnostic {
	if ctx.Historical {
		return nil
	}

	var diags []lint.Diagnostic
	for _, ref := range ctx.Doc.References {
		if isTemplateRef(ref.Target) {
			continue
		}
		target := filepath.FromSlash(ref.Target)
		local := filepath.Join(ctx.Dir(), target)
		fromRoot := filepath.Join(ctx.Root, target)
		if ctx.Exists(local) || ctx.Exists(fromRoot) {
			continue
		}
		diags = append(diags, ctx.Diag(ref.Line, lint.SeverityError,
			fmt.Sprintf("%q does not exist", ref.Target)))
	}
	return diags
}

func isTemplateRef(target string) bool {
	return strings.ContainsAny(target, "*[{") || strings.Contains(target, "://")
}
