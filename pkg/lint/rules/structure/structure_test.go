package structure

import (
	"strings"
	"testing"

	"github.com/leapstack-labs/spectralint/internal/testutil"
	"github.com/leapstack-labs/spectralint/pkg/lint"
	"github.com/leapstack-labs/spectralint/pkg/lint/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lines = testutil.Lines

func run(def lint.RuleDef, rel, content string, opts lint.Options) []lint.Diagnostic {
	doc := document.Parse("/project/"+rel, rel, []byte(content))
	return lint.Rule{Def: def, Options: opts}.EvaluateFile(doc, "/project", false)
}

func nLines(n int, text string) string {
	return strings.Repeat(text+"\n", n)
}

func TestFileSize(t *testing.T) {
	tests := []struct {
		name    string
		lines   int
		opts    lint.Options
		wantSev lint.Severity
		want    string
	}{
		{
			name:    "over limit",
			lines:   500,
			wantSev: lint.SeverityWarning,
			want:    `File has 500 lines (exceeds 500 line limit). Large instruction files cause LLM "lost in the middle" degradation.`,
		},
		{
			name:    "approaching limit",
			lines:   300,
			wantSev: lint.SeverityInfo,
			want:    "File has 300 lines (approaching 500 line limit). Consider splitting to avoid LLM context degradation.",
		},
		{name: "small", lines: 299},
		{
			name:    "custom limits",
			lines:   20,
			opts:    lint.Options{"warn_lines": int64(10), "max_lines": int64(20)},
			wantSev: lint.SeverityWarning,
			want:    `File has 20 lines (exceeds 20 line limit). Large instruction files cause LLM "lost in the middle" degradation.`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := run(FileSize, "CLAUDE.md", nLines(tt.lines, "text"), tt.opts)
			if tt.want == "" {
				assert.Empty(t, diags)
				return
			}
			require.Len(t, diags, 1)
			assert.Equal(t, 1, diags[0].Line)
			assert.Equal(t, tt.wantSev, diags[0].Severity)
			assert.Equal(t, tt.want, diags[0].Message)
		})
	}
}

func TestFileSizeValidateOptions(t *testing.T) {
	assert.Empty(t, validateFileSizeOptions(nil))
	assert.Equal(t,
		[]string{"warn_lines (600) is greater than max_lines (500)"},
		validateFileSizeOptions(lint.Options{"warn_lines": 600}))
}

func TestHeadingHierarchy(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"skip after going up", lines("# A", "## B", "### C", "# D", "### E"), []string{`Heading level skipped: h1 to h3 ("E")`}},
		{"skip from h1", lines("# A", "### B"), []string{`Heading level skipped: h1 to h3 ("B")`}},
		{"going up is fine", lines("# A", "## B", "### C", "## D"), nil},
		{"first heading deep", lines("### A", "#### B"), nil},
		{"headings in code ignored", lines("# A", "```", "### B", "```"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var msgs []string
			for _, d := range run(HeadingHierarchy, "CLAUDE.md", tt.content, nil) {
				msgs = append(msgs, d.Message)
			}
			assert.Equal(t, tt.want, msgs)
		})
	}
}

func TestEmojiDensity(t *testing.T) {
	t.Run("at threshold", func(t *testing.T) {
		diags := run(EmojiDensity, "CLAUDE.md", nLines(10, "🚀 ship it"), nil)
		require.Len(t, diags, 1)
		assert.Equal(t,
			"File contains 10 emoji (threshold: 10). Emoji add visual noise without instruction value for agents.",
			diags[0].Message)
	})

	t.Run("below threshold", func(t *testing.T) {
		assert.Empty(t, run(EmojiDensity, "CLAUDE.md", nLines(9, "✅ done"), nil))
	})

	t.Run("digits and hash not counted", func(t *testing.T) {
		assert.Empty(t, run(EmojiDensity, "CLAUDE.md", nLines(20, "# 1 2 3"), nil))
	})

	t.Run("code blocks not counted", func(t *testing.T) {
		content := "```\n" + nLines(12, "🎉") + "```\n"
		assert.Empty(t, run(EmojiDensity, "CLAUDE.md", content, nil))
	})

	t.Run("custom threshold", func(t *testing.T) {
		diags := run(EmojiDensity, "CLAUDE.md", "⭐ ⭐\n", lint.Options{"max_emoji": 2})
		assert.Len(t, diags, 1)
	})
}

func TestSessionJournal(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "three strong markers",
			content: lines("## What we accomplished", "## Session summary", "Continuing from the previous session."),
			want:    "Detected 3 markers: retrospective heading, session log heading, session reference.",
		},
		{
			name:    "two strong plus weak",
			content: lines("## What we did", "## Session notes", "## Current status"),
			want:    "Detected 3 markers: retrospective heading, session log heading, status section.",
		},
		{
			name:    "two strong plus a checkmark",
			content: lines("## What we fixed", "## Session log", "- ✅ login"),
			want:    "Detected 2 markers: retrospective heading, session log heading.",
		},
		{
			name:    "two strong alone",
			content: lines("## What we built", "## Session progress"),
		},
		{
			name:    "weak markers alone",
			content: lines("## Current status", "Files changed: 3", "Key decisions made"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := run(SessionJournal, "CLAUDE.md", tt.content, nil)
			if tt.want == "" {
				assert.Empty(t, diags)
				return
			}
			require.Len(t, diags, 1)
			assert.Equal(t, lint.SeverityWarning, diags[0].Severity)
			assert.Contains(t, diags[0].Message, tt.want)
		})
	}
}

func TestMissingEssentialSections(t *testing.T) {
	filler := nLines(10, "Prefer small functions.")

	tests := []struct {
		name    string
		rel     string
		content string
		want    bool
	}{
		{"no commands", "CLAUDE.md", "# Project\n" + filler, true},
		{"short file", "CLAUDE.md", lines("# Project", "Prefer small functions."), false},
		{"command heading", "CLAUDE.md", "# Project\n## Testing\n" + filler, false},
		{"code block command", "CLAUDE.md", "# Project\n" + filler + "```\nmake lint\n```\n", false},
		{"inline command", "CLAUDE.md", "# Project\nRun `go test ./...` first.\n" + filler, false},
		{"specialized directory", ".claude/agents/reviewer.md", "# Reviewer\n" + filler, false},
		{"specialized directory any case", ".claude/Commands/ship.md", "# Ship\n" + filler, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := run(MissingEssentialSections, tt.rel, tt.content, nil)
			if !tt.want {
				assert.Empty(t, diags)
				return
			}
			require.Len(t, diags, 1)
			assert.Equal(t, 1, diags[0].Line)
			assert.Contains(t, diags[0].Message, "No build/test commands or setup section found.")
		})
	}
}

func TestIsSpecialized(t *testing.T) {
	assert.False(t, isSpecialized("CLAUDE.md"))
	assert.False(t, isSpecialized("docs/guide.md"))
	assert.True(t, isSpecialized("skills/pdf/SKILL.md"))
	assert.True(t, isSpecialized(".claude/Prompts/x.md"))
}
