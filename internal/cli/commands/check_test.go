package commands

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/spectralint/internal/cli/output"
	"github.com/leapstack-labs/spectralint/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mixed produces one error, one warning and one info diagnostic.
var mixed = lines(
	"# Project",
	"See `docs/missing.md`.",
	"Until March 2025, use the v1 API.",
	"Try to keep commits small.",
)

// staleOnly produces a single warning.
var staleOnly = lines(
	"# Project",
	"Until March 2025, use the v1 API.",
)

func checkJSON(t *testing.T, root string, args ...string) (output.ReportJSON, error) {
	t.Helper()
	stdout, _, err := execute(t, NewCheckCommand(), append([]string{"check", root, "--format", "json"}, args...)...)
	var doc output.ReportJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc), stdout)
	return doc, err
}

func rulesOf(doc output.ReportJSON) []string {
	var ids []string
	for _, d := range doc.Diagnostics {
		ids = append(ids, d.Rule)
	}
	return ids
}

func TestCheckReportsAndFails(t *testing.T) {
	root := testutil.WriteProject(t, map[string]string{"CLAUDE.md": mixed})

	doc, err := checkJSON(t, root)
	require.ErrorIs(t, err, ErrLintFailed)
	assert.Equal(t, []string{"dead-reference", "stale-reference", "vague-directive"}, rulesOf(doc))
	assert.Equal(t, output.SummaryJSON{Errors: 1, Warnings: 1, Info: 1, Failing: true}, doc.Summary)
	assert.Equal(t, "CLAUDE.md", doc.Diagnostics[0].File)
	assert.Equal(t, 2, doc.Diagnostics[0].Line)
}

func TestCheckFailOn(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		config   string
		wantFail bool
	}{
		{name: "default threshold is error", wantFail: false},
		{name: "flag lowers threshold", args: []string{"--fail-on", "warning"}, wantFail: true},
		{name: "config lowers threshold", config: "fail_on = \"warning\"\n", wantFail: true},
		{name: "flag beats config", args: []string{"--fail-on", "error"}, config: "fail_on = \"info\"\n", wantFail: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := map[string]string{"CLAUDE.md": staleOnly}
			if tt.config != "" {
				files[".spectralintrc.toml"] = tt.config
			}
			root := testutil.WriteProject(t, files)

			doc, err := checkJSON(t, root, tt.args...)
			assert.Equal(t, []string{"stale-reference"}, rulesOf(doc))
			assert.Equal(t, tt.wantFail, doc.Summary.Failing)
			if tt.wantFail {
				assert.ErrorIs(t, err, ErrLintFailed)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheckStrict(t *testing.T) {
	root := testutil.WriteProject(t, map[string]string{
		"CLAUDE.md": lines("# Guide", "", "### Details", "", "Use tabs for indentation."),
	})

	doc, err := checkJSON(t, root)
	require.NoError(t, err)
	assert.NotContains(t, rulesOf(doc), "heading-hierarchy")

	doc, err = checkJSON(t, root, "--strict")
	require.NoError(t, err)
	assert.Contains(t, rulesOf(doc), "heading-hierarchy")
}

func TestCheckExplicitConfig(t *testing.T) {
	root := testutil.WriteProject(t, map[string]string{
		"CLAUDE.md":      mixed,
		"ci/lint.yaml":   "checkers:\n  dead_reference:\n    enabled: false\n",
		"docs/notes.txt": "not markdown",
	})

	doc, err := checkJSON(t, root, "--config", filepath.Join(root, "ci", "lint.yaml"))
	require.NoError(t, err)
	assert.Equal(t, []string{"stale-reference", "vague-directive"}, rulesOf(doc))
}

func TestCheckGitHubFormat(t *testing.T) {
	root := testutil.WriteProject(t, map[string]string{"CLAUDE.md": mixed})

	stdout, _, err := execute(t, NewCheckCommand(), "check", root, "--format", "github")
	require.ErrorIs(t, err, ErrLintFailed)

	got := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, got, 3)
	assert.True(t, strings.HasPrefix(got[0], "::error file=CLAUDE.md,line=2,title=dead-reference::"))
	assert.True(t, strings.HasPrefix(got[1], "::warning file=CLAUDE.md,line=3,title=stale-reference::"))
	assert.True(t, strings.HasPrefix(got[2], "::notice file=CLAUDE.md,line=4,title=vague-directive::"))
}

func TestCheckTextFormat(t *testing.T) {
	root := testutil.WriteProject(t, map[string]string{"CLAUDE.md": mixed})

	stdout, _, err := execute(t, NewCheckCommand(), "check", root, "--format", "text")
	require.ErrorIs(t, err, ErrLintFailed)
	assert.Contains(t, stdout, "1 errors, 1 warnings, 1 info across 1 files")
	assert.Contains(t, stdout, "dead-reference")
}

func TestCheckCleanProject(t *testing.T) {
	root := testutil.WriteProject(t, map[string]string{
		"CLAUDE.md": lines("# Project", "", "Use tabs for indentation."),
	})

	stdout, _, err := execute(t, NewCheckCommand(), "check", root)
	require.NoError(t, err)
	assert.Contains(t, stdout, "# spectralint report", "non-terminal output defaults to markdown")
}

func TestCheckErrors(t *testing.T) {
	tests := []struct {
		name   string
		files  map[string]string
		args   []string
		errSub string
	}{
		{
			name:   "invalid config",
			files:  map[string]string{".spectralintrc.toml": "[checkers.nope]\n"},
			errSub: "unknown checker",
		},
		{
			name:   "invalid flag value",
			args:   []string{"--fail-on", "fatal"},
			errSub: `invalid severity "fatal"`,
		},
		{
			name:   "invalid format",
			args:   []string{"--format", "sarif"},
			errSub: "format",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := testutil.WriteProject(t, tt.files)
			_, _, err := execute(t, NewCheckCommand(), append([]string{"check", root}, tt.args...)...)
			require.Error(t, err)
			assert.NotErrorIs(t, err, ErrLintFailed)
			assert.Contains(t, err.Error(), tt.errSub)
		})
	}
}

func TestCheckMissingRoot(t *testing.T) {
	_, _, err := execute(t, NewCheckCommand(), "check", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrLintFailed)
}
