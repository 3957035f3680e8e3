package custom

import (
	"testing"

	"github.com/leapstack-labs/spectralint/internal/testutil"
	"github.com/leapstack-labs/spectralint/pkg/lint"
	"github.com/leapstack-labs/spectralint/pkg/lint/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRules(t *testing.T) {
	defs, problems := Rules([]lint.CustomPattern{
		{Name: "no-jira", Pattern: `JIRA-\d+`, Message: "Link issues, not ticket IDs"},
		{Name: "no-fixme", Pattern: `(?i)fixme`, Severity: "error"},
		{Name: "", Pattern: `x`},
		{Name: "bad-regex", Pattern: `(unclosed`},
		{Name: "bad-severity", Pattern: `x`, Severity: "fatal"},
		{Name: "no-jira", Pattern: `JIRA`},
	})

	require.Len(t, defs, 2)
	assert.Equal(t, "custom:no-jira", defs[0].ID)
	assert.Equal(t, lint.SeverityWarning, defs[0].Severity)
	assert.Equal(t, "custom:no-fixme", defs[1].ID)
	assert.Equal(t, lint.SeverityError, defs[1].Severity)
	for _, def := range defs {
		assert.NoError(t, def.Validate())
		assert.True(t, lint.IsCustomRule(def.ID))
	}

	var msgs []string
	for _, p := range problems {
		assert.Equal(t, lint.RuleConfigProblem, p.RuleID)
		assert.Equal(t, lint.SeverityWarning, p.Severity)
		assert.Empty(t, p.File)
		msgs = append(msgs, p.Message)
	}
	require.Len(t, msgs, 4)
	assert.Equal(t, "custom pattern #3 disabled: name is required", msgs[0])
	assert.Contains(t, msgs[1], "custom pattern #4 disabled: bad-regex: invalid pattern")
	assert.Equal(t, `custom pattern #5 disabled: bad-severity: invalid severity "fatal"`, msgs[2])
	assert.Equal(t, `custom pattern #6 disabled: duplicate name "no-jira"`, msgs[3])
}

func TestCustomRuleMatches(t *testing.T) {
	defs, problems := Rules([]lint.CustomPattern{
		{Name: "no-jira", Pattern: `JIRA-\d+`, Message: "Link issues, not ticket IDs"},
		{Name: "no-fixme", Pattern: `(?i)fixme`},
	})
	require.Empty(t, problems)

	content := testutil.Lines(
		"# Notes",
		"See JIRA-123 for details.",
		"```",
		"JIRA-456",
		"```",
		"fixme: later",
	)
	doc := document.Parse("/project/CLAUDE.md", "CLAUDE.md", []byte(content))

	diags := lint.Rule{Def: defs[0]}.EvaluateFile(doc, "/project", false)
	require.Len(t, diags, 1)
	assert.Equal(t, 2, diags[0].Line)
	assert.Equal(t, "custom:no-jira", diags[0].RuleID)
	assert.Equal(t, "Link issues, not ticket IDs", diags[0].Message)

	diags = lint.Rule{Def: defs[1]}.EvaluateFile(doc, "/project", false)
	require.Len(t, diags, 1)
	assert.Equal(t, 6, diags[0].Line)
	assert.Equal(t, `Custom pattern "no-fixme" matched`, diags[0].Message)
}
