package discovery

import (
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/spectralint/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, files ...string) {
	t.Helper()
	m := make(map[string]string, len(files))
	for _, f := range files {
		m[f] = "# " + f + "\n"
	}
	testutil.WriteFiles(t, root, m)
}

func defaultOptions() Options {
	return Options{
		Include:    []string{"CLAUDE.md", "AGENTS.md", ".claude/**", ".github/copilot-instructions.md"},
		Ignore:     []string{"node_modules", ".git", "target"},
		Historical: []string{"changelog*", "retro*", "history*", "archive*", "restart*"},
	}
}

func TestDiscover(t *testing.T) {
	tests := []struct {
		name   string
		files  []string
		modify func(o *Options)
		want   []string
	}{
		{
			name:  "default include",
			files: []string{"CLAUDE.md", "AGENTS.md", "readme.md", "notes.txt", "reports/notes.md"},
			want:  []string{"AGENTS.md", "CLAUDE.md"},
		},
		{
			name:  "case-insensitive include",
			files: []string{"claude.md", "Agents.MD"},
			want:  []string{"Agents.MD", "claude.md"},
		},
		{
			name:  "claude directory",
			files: []string{".claude/commands/deploy.md", ".claude/settings.json", ".github/copilot-instructions.md"},
			want:  []string{".claude/commands/deploy.md", ".github/copilot-instructions.md"},
		},
		{
			name:  "ignored directories are not entered",
			files: []string{"CLAUDE.md", "node_modules/pkg/CLAUDE.md", "target/CLAUDE.md"},
			want:  []string{"CLAUDE.md"},
		},
		{
			name:   "ignore globs",
			files:  []string{"readme.md", "build_output/doc.md", "build_artifacts/notes.md", "docs/guide.md"},
			modify: func(o *Options) { o.Include = []string{"**/*.md"}; o.Ignore = append(o.Ignore, "build_*") },
			want:   []string{"docs/guide.md", "readme.md"},
		},
		{
			name:  "ignore_files subtracts after include",
			files: []string{"readme.md", "changelog.md", "docs/history.md"},
			modify: func(o *Options) {
				o.Include = []string{"**/*.md"}
				o.IgnoreFiles = []string{"CHANGELOG.md", "docs/history.md"}
			},
			want: []string{"readme.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeFiles(t, root, tt.files...)
			opts := defaultOptions()
			opts.Logger = testutil.NewTestLogger(t)
			if tt.modify != nil {
				tt.modify(&opts)
			}

			result, err := Discover(root, opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.RelPaths())
			assert.False(t, result.HasErrors())
		})
	}
}

func TestDiscoverHistorical(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "CHANGELOG.md", "docs/retro-2024.md", "docs/guide.md")

	opts := defaultOptions()
	opts.Include = []string{"**/*.md"}
	result, err := Discover(root, opts)
	require.NoError(t, err)

	require.Len(t, result.Files, 3)
	assert.Equal(t, []string{"CHANGELOG.md", "docs/retro-2024.md"}, result.HistoricalPaths())
	assert.True(t, filepath.IsAbs(result.Files[0].Path))
	assert.Contains(t, result.Summary(), "Files: 3 (2 historical)")
}

func TestDiscoverInvalidGlob(t *testing.T) {
	opts := defaultOptions()
	opts.IgnoreFiles = []string{"[bad"}
	_, err := Discover(t.TempDir(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ignore_files")
}

func TestDiscoverMissingRoot(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "nope"), defaultOptions())
	assert.Error(t, err)
}
