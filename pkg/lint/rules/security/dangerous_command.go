package security

import (
	"regexp"
	"strings"

	"github.com/leapstack-labs/spectralint/pkg/lint"
)

func init() {
	lint.Register(DangerousCommand)
}

// DangerousCommand flags destructive commands in code blocks an agent may
// copy and run.
var DangerousCommand = lint.RuleDef{
	ID:          "dangerous-command",
	Name:        "security.dangerous_command",
	Group:       "security",
	Description: "Destructive command in a code block",
	Severity:    lint.SeverityWarning,
	Kind:        lint.KindPerFile,
	CheckFile:   checkDangerousCommand,
	Rationale: `Agents execute code blocks from their instructions more or less verbatim.
Only fenced code is scanned. DROP statements guarded by IF EXISTS are
accepted.`,
	BadExample:  "```sh\ngit push --force origin main\n```",
	GoodExample: "```sh\ngit push --force-with-lease origin feature\n```  (with a confirmation step)",
	Fix:         "Add a confirmation step or restrict when this command may be used.",
}

var (
	ifExists = regexp.MustCompile(`(?i)\bIF\s+EXISTS\b`)

	dangerousCommands = []struct {
		re    *regexp.Regexp
		label string
	}{
		{regexp.MustCompile(`\brm\s+.*-[^\s]*r[^\s]*f`), "rm -rf"},
		{regexp.MustCompile(`\bgit\s+push\s+.*--force`), "git push --force"},
		{regexp.MustCompile(`\bgit\s+push\s+-f\b`), "git push -f"},
		{regexp.MustCompile(`\bgit\s+reset\s+--hard`), "git reset --hard"},
		{regexp.MustCompile(`\bgit\s+clean\s+-[^\s]*f`), "git clean -f"},
		{regexp.MustCompile(`(?i)\bDROP\s+(?:TABLE|DATABASE)\b`), "DROP TABLE/DATABASE"},
		{regexp.MustCompile(`(?i)\bTRUNCATE\s+TABLE\b`), "TRUNCATE TABLE"},
		{regexp.MustCompile(`--no-verify\b`), "--no-verify"},
	}
)

func checkDangerousCommand(ctx *lint.FileContext) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, l := range ctx.Doc.CodeLines() {
		for _, dc := range dangerousCommands {
			if !dc.re.MatchString(l.Text) {
				continue
			}
			if strings.HasPrefix(dc.label, "DROP") && ifExists.MatchString(l.Text) {
				continue
			}
			diags = append(diags, ctx.Diag(l.Num, lint.SeverityWarning,
				"Dangerous command in code block: "+dc.label))
			break
		}
	}
	return diags
}
