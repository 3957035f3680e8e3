package structure

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/leapstack-labs/spectralint/pkg/lint"
)

func init() {
	lint.Register(SessionJournal)
}

// SessionJournal flags files that record what happened in a session
// instead of telling the agent what to do.
var SessionJournal = lint.RuleDef{
	ID:          "session-journal",
	Name:        "structure.session_journal",
	Group:       "structure",
	Description: "File reads as a session journal, not instructions",
	Severity:    lint.SeverityWarning,
	Kind:        lint.KindPerFile,
	CheckFile:   checkSessionJournal,
	Rationale: `Agents often append progress notes to their instruction file. The notes
go stale and crowd out real instructions. Strong markers ("what we
accomplished", "previous session") are near-certain; weak markers and
checkmarks only reinforce them.`,
	BadExample:  "## What we accomplished\n- ✅ Fixed login\n## Next steps after merge",
	GoodExample: "## Auth\nLogin goes through `auth.Verify`; never bypass it.",
	Fix:         "Rewrite as forward-looking instructions: what to do, not what was done.",
}

type marker struct {
	re    *regexp.Regexp
	label string
}

var (
	strongMarkers = []marker{
		{regexp.MustCompile(`(?i)\bwhat we (?:accomplished|completed|did|built|fixed)\b`), "retrospective heading"},
		{regexp.MustCompile(`(?i)\bsession (?:progress|summary|notes|log)\b`), "session log heading"},
		{regexp.MustCompile(`(?i)\bwhat we just\b`), "recent-action heading"},
		{regexp.MustCompile(`(?i)\bprevious session\b`), "session reference"},
		{regexp.MustCompile(`(?i)\bfiles? (?:modified|changed|updated|created|removed|touched)\s+(?:this|last|in this)\b`), "session file changelog"},
	}
	weakMarkers = []marker{
		{regexp.MustCompile(`(?i)\bfiles? (?:modified|changed|updated|created|removed|touched)\b`), "file changelog"},
		{regexp.MustCompile(`(?i)\b(?:PR|pull request) (?:status|#\d+)\b`), "PR status"},
		{regexp.MustCompile(`(?i)\bnext steps? after\b`), "post-session todo"},
		{regexp.MustCompile(`(?i)\bcurrent status\b`), "status section"},
		{regexp.MustCompile(`(?i)\bexpected (?:performance )?impact\b`), "impact assessment"},
		{regexp.MustCompile(`(?i)\bkey decisions? made\b`), "decision log"},
	}
	checkmark = regexp.MustCompile(`[\x{2705}\x{274C}]`)
)

const (
	strongThreshold    = 2
	strongOnly         = 3
	checkmarkThreshold = 8
)

func checkSessionJournal(ctx *lint.FileContext) []lint.Diagnostic {
	var strong, weak []string
	checks := 0
	for _, l := range ctx.Doc.NonCodeLines() {
		checks += len(checkmark.FindAllStringIndex(l.Text, -1))
		strong = collectMarkers(strong, strongMarkers, l.Text)
		weak = collectMarkers(weak, weakMarkers, l.Text)
	}
	if checks >= checkmarkThreshold {
		weak = append(weak, "checkmark density")
	}

	reinforced := len(weak) > 0 || checks > 0
	if len(strong) < strongOnly && (len(strong) < strongThreshold || !reinforced) {
		return nil
	}

	all := slices.Concat(strong, weak)
	slices.Sort(all)
	return []lint.Diagnostic{ctx.Diag(1, lint.SeverityWarning, fmt.Sprintf(
		"File appears to be a session journal, not an instruction file. Detected %d markers: %s. "+
			"Rewrite with imperative instructions (commands, constraints, conventions).",
		len(all), strings.Join(all, ", ")))}
}

func collectMarkers(found []string, markers []marker, line string) []string {
	for _, m := range markers {
		if m.re.MatchString(line) && !slices.Contains(found, m.label) {
			found = append(found, m.label)
		}
	}
	return found
}
