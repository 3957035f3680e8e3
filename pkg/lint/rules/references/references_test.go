package references

import (
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/spectralint/internal/testutil"
	"github.com/leapstack-labs/spectralint/pkg/lint"
	"github.com/leapstack-labs/spectralint/pkg/lint/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runRule parses content as rel under root and runs def on it.
func runRule(def lint.RuleDef, root, rel, content string, historical bool) []lint.Diagnostic {
	doc := document.Parse(filepath.Join(root, filepath.FromSlash(rel)), rel, []byte(content))
	return lint.Rule{Def: def}.EvaluateFile(doc, root, historical)
}

func TestDeadReference(t *testing.T) {
	root := testutil.WriteProject(t, map[string]string{
		"CLAUDE.md":              "",
		"agents/reviewer.md":     "",
		"agents/helpers/util.md": "",
		"docs/guide.md":          "",
	})

	tests := []struct {
		name       string
		rel        string
		content    string
		historical bool
		wantLines  []int
	}{
		{
			name:    "existing from root",
			rel:     "CLAUDE.md",
			content: "Load `agents/reviewer.md` and [guide](docs/guide.md).\n",
		},
		{
			name:      "missing file",
			rel:       "CLAUDE.md",
			content:   "# Title\nLoad `agents/drafter.md` now.\n",
			wantLines: []int{2},
		},
		{
			name:    "relative to source directory",
			rel:     "agents/reviewer.md",
			content: "Uses `helpers/util.md`.\n",
		},
		{
			name:      "bare reference",
			rel:       "CLAUDE.md",
			content:   "see missing.md, docs/guide.md\n",
			wantLines: []int{1},
		},
		{
			name:    "templates and urls skipped",
			rel:     "CLAUDE.md",
			content: "`commands/[command].md` `agents/*.md` `{name}.md` [x](https://example.com/a.md)\n",
		},
		{
			name:    "code fences skipped",
			rel:     "CLAUDE.md",
			content: "```\n`gone.md`\n```\n",
		},
		{
			name:       "historical files skipped",
			rel:        "CHANGELOG.md",
			content:    "Removed `agents/old.md`.\n",
			historical: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := runRule(DeadReference, root, tt.rel, tt.content, tt.historical)
			var lines []int
			for _, d := range diags {
				lines = append(lines, d.Line)
				assert.Equal(t, lint.SeverityError, d.Severity)
				assert.Equal(t, "dead-reference", d.RuleID)
			}
			assert.Equal(t, tt.wantLines, lines)
		})
	}
}

func TestDeadReferenceMessage(t *testing.T) {
	root := t.TempDir()
	diags := runRule(DeadReference, root, "CLAUDE.md", "Load `agents/drafter.md`.\n", false)
	require.Len(t, diags, 1)
	assert.Equal(t, `"agents/drafter.md" does not exist`, diags[0].Message)
	assert.Equal(t, "CLAUDE.md", diags[0].File)
}

func TestStaleReference(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"month and year", "Until March 2025, use the v1 endpoint.", "Until March 2025"},
		{"bare year", "Since 2024 we deploy on Fridays.", "Since 2024"},
		{"numeric date", "Before 3/15/2025 run the migration.", "Before 3/15/2025"},
		{"conditional year", "If the year is 2026, rotate keys.", "If the year is 2026"},
		{"deprecated since", "This flag is deprecated since v2.", "deprecated since"},
		{"permanent deprecation", "Deprecated in favor of `make build`.", ""},
		{"inline code", "Run `until 2025` as a literal.", ""},
		{"plain text", "Always run the tests.", ""},
		{"code fence", "```\nuntil 2025\n```", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := runRule(StaleReference, t.TempDir(), "CLAUDE.md", tt.content+"\n", false)
			if tt.want == "" {
				assert.Empty(t, diags)
				return
			}
			require.Len(t, diags, 1)
			assert.Equal(t, `Time-sensitive reference found: "`+tt.want+`"`, diags[0].Message)
			assert.Equal(t, lint.SeverityWarning, diags[0].Severity)
		})
	}
}
