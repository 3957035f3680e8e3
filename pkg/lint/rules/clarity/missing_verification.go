package clarity

import (
	"fmt"
	"regexp"

	"github.com/leapstack-labs/spectralint/pkg/lint"
)

func init() {
	lint.Register(MissingVerification)
}

// DefaultMinActionVerbs is the number of action lines that makes a section
// procedural.
const DefaultMinActionVerbs = 2

// MissingVerification flags procedural sections with no way to tell whether
// the steps succeeded.
var MissingVerification = lint.RuleDef{
	ID:          "missing-verification",
	Name:        "clarity.missing_verification",
	Group:       "clarity",
	Description: "Procedural section without verification or success criteria",
	Severity:    lint.SeverityInfo,
	Kind:        lint.KindPerFile,
	StrictOnly:  true,
	CheckFile:   checkMissingVerification,
	ConfigKeys:  []string{"min_action_verbs"},
	Rationale: `An agent that runs "build, migrate, deploy" with no expected output or
test command has no signal that something went wrong. Only files with at
least two sections are examined. Sections shorter than three lines and
descriptive sections (overview, architecture, history, ...) are skipped.`,
	BadExample:  "## Release\nBuild the image.\nDeploy to staging.\nMigrate the database.",
	GoodExample: "## Release\nBuild the image.\nDeploy to staging.\nVerify /healthz returns 200.",
	Fix:         "Add verification steps: expected output, test commands, or success criteria.",
}

var (
	informationalTitle = regexp.MustCompile(`(?i)\b(?:overview|architecture|design|pattern|migration|history|background|how\s+it\s+works|data\s+flow|key\s+(?:concepts|differences|components|classes|technologies)|compatibility|important\s+(?:patterns|notes))\b`)
	actionVerb         = regexp.MustCompile(`(?i)\b(?:run|execute|create|build|deploy|install|configure|implement|set\s+up|start|stop|restart|migrate|compile|generate|delete|remove|update|upgrade)\b`)
	verificationSignal = regexp.MustCompile(`(?i)\b(?:verify|validate|test|assert|expect|confirm|check|ensure)\b`)
	verificationPhrase = regexp.MustCompile(`(?i)(?:expected\s+output|should\s+(?:see|return|output|produce|display|show)|success\s+criteria|looks?\s+like)`)
	testCommand        = regexp.MustCompile(`(?i)\b(?:cargo\s+test|npm\s+test|pytest|go\s+test|jest|mocha|rspec|make\s+test)\b`)
)

func checkMissingVerification(ctx *lint.FileContext) []lint.Diagnostic {
	doc := ctx.Doc
	if len(doc.Sections) < 2 {
		return nil
	}
	minVerbs := ctx.Options.Int("min_action_verbs", DefaultMinActionVerbs)

	var diags []lint.Diagnostic
	for _, s := range doc.Sections {
		end := min(s.EndLine, doc.NumLines())
		if end-s.Line+1 < 3 || informationalTitle.MatchString(s.Title) {
			continue
		}

		actions := 0
		verified := false
		for n := s.Line; n <= end; n++ {
			text := doc.LineText(n)
			if doc.InFence(n) {
				if testCommand.MatchString(text) {
					verified = true
				}
				continue
			}
			if actionVerb.MatchString(text) {
				actions++
			}
			if verificationSignal.MatchString(text) || verificationPhrase.MatchString(text) {
				verified = true
			}
		}

		if actions >= minVerbs && !verified {
			diags = append(diags, ctx.Diag(s.Line, lint.SeverityInfo, fmt.Sprintf(
				"Section %q has %d action directives but no verification or success criteria",
				s.Title, actions)))
		}
	}
	return diags
}
