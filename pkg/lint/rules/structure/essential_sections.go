package structure

import (
	"path"
	"regexp"
	"strings"

	"github.com/leapstack-labs/spectralint/pkg/lint"
)

func init() {
	lint.Register(MissingEssentialSections)
}

// DefaultEssentialMinLines is the file length below which the check is skipped.
const DefaultEssentialMinLines = 10

// MissingEssentialSections flags general instruction files that never say
// how to build or test the project.
var MissingEssentialSections = lint.RuleDef{
	ID:          "missing-essential-sections",
	Name:        "structure.missing_essential_sections",
	Group:       "structure",
	Description: "No build, test or setup commands",
	Severity:    lint.SeverityInfo,
	Kind:        lint.KindPerFile,
	CheckFile:   checkEssentialSections,
	ConfigKeys:  []string{"min_lines"},
	Rationale: `An agent that cannot find the build and test commands guesses them. Any
of these counts as a command signal: a tool invocation in a code block, a
heading such as "Commands" or "Testing", or an inline code span running a
known tool. Files under commands/, agents/, skills/ and similar
directories serve narrower purposes and are skipped.`,
	GoodExample: "## Commands\n- `make test`: run the unit tests",
	Fix:         "Add a section with build/test commands so agents know how to verify their work.",
}

var (
	codeCommand    = regexp.MustCompile(`(?i)\b(?:cargo|npm|npx|yarn|pnpm|pytest|make|go\s+(?:build|test|run)|docker|pip|poetry|gradle|mvn|bundle|rake|mix|dotnet|cmake)\b`)
	commandHeading = regexp.MustCompile(`(?i)\b(?:commands?|build|test(?:ing|s)?|setup|getting\s+started|installation|development|usage|quick\s*start)\b`)
	inlineCommand  = regexp.MustCompile("`[^`]*\\b(?:cargo|npm|npx|yarn|pnpm|pytest|make|go\\s+(?:build|test|run)|docker|pip|poetry|gradle|mvn|bundle|rake|mix|dotnet|cmake)\\b[^`]*`")

	specializedDirs = []string{"commands", "agents", "skills", "tasks", "prompts", "references", "researches"}
)

func checkEssentialSections(ctx *lint.FileContext) []lint.Diagnostic {
	doc := ctx.Doc
	if doc.NumLines() < ctx.Options.Int("min_lines", DefaultEssentialMinLines) {
		return nil
	}
	if isSpecialized(doc.RelPath) {
		return nil
	}

	for _, l := range doc.CodeLines() {
		if codeCommand.MatchString(l.Text) {
			return nil
		}
	}
	for _, h := range doc.Headings {
		if commandHeading.MatchString(h.Text) {
			return nil
		}
	}
	for _, l := range doc.NonCodeLines() {
		if inlineCommand.MatchString(l.Text) {
			return nil
		}
	}

	return []lint.Diagnostic{ctx.Diag(1, lint.SeverityInfo,
		"No build/test commands or setup section found. "+
			"Instruction files are most effective when they include concrete commands agents can run.")}
}

// isSpecialized reports whether any directory of rel is a specialized one.
func isSpecialized(rel string) bool {
	dir := path.Dir(rel)
	if dir == "." {
		return false
	}
	for _, part := range strings.Split(dir, "/") {
		for _, d := range specializedDirs {
			if strings.EqualFold(part, d) {
				return true
			}
		}
	}
	return false
}
