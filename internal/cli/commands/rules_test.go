package commands

import (
	"encoding/json"
	"testing"

	"github.com/leapstack-labs/spectralint/pkg/lint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRulesCommand_ListAll(t *testing.T) {
	stdout, _, err := execute(t, NewRulesCommand(), "rules")
	require.NoError(t, err)

	assert.Contains(t, stdout, "# Lint Rules")
	assert.Contains(t, stdout, "## References")
	assert.Contains(t, stdout, "## Crossfile")
	assert.Contains(t, stdout, "**dead-reference**")
	assert.Contains(t, stdout, "strict-only")
}

func TestRulesCommand_TextTable(t *testing.T) {
	stdout, _, err := execute(t, NewRulesCommand(), "rules", "--format", "text")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Lint Rules (")
	assert.Contains(t, stdout, "dead-reference")
	assert.Contains(t, stdout, "heading-hierarchy *")
	assert.Contains(t, stdout, "spectralint explain <rule-id>")
}

func TestRulesCommand_FilterByGroup(t *testing.T) {
	t.Run("security", func(t *testing.T) {
		stdout, _, err := execute(t, NewRulesCommand(), "rules", "--group", "security")
		require.NoError(t, err)
		assert.Contains(t, stdout, "credential-exposure")
		assert.NotContains(t, stdout, "dead-reference")
	})

	t.Run("unknown group", func(t *testing.T) {
		_, _, err := execute(t, NewRulesCommand(), "rules", "--group", "style")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `no rules in group "style"`)
	})
}

func TestRulesCommand_JSON(t *testing.T) {
	stdout, _, err := execute(t, NewRulesCommand(), "rules", "--format", "json")
	require.NoError(t, err)

	var out RulesJSONOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, lint.Count(), out.Count.Total)
	assert.Len(t, out.Rules, lint.Count())
	assert.Equal(t, len(lint.GetByGroup("security")), out.Count.ByGroup["security"])
}

func TestRulesCommand_ShowRule(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "markdown by id",
			args: []string{"rules", "dead-reference"},
			want: []string{"# dead-reference - references.dead", "## Why This Matters", "`[checkers.dead_reference]`"},
		},
		{
			name: "explain alias by config key",
			args: []string{"explain", "file_size"},
			want: []string{"# file-size - ", "Options: `warn_lines`, `max_lines`"},
		},
		{
			name: "text",
			args: []string{"rules", "vague-directive", "--format", "text"},
			want: []string{"vague-directive - ", "Description", "[checkers.vague_directive]", "Options: extra_patterns"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, NewRulesCommand(), tt.args...)
			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, stdout, want)
			}
		})
	}
}

func TestRulesCommand_ShowRuleJSON(t *testing.T) {
	stdout, _, err := execute(t, NewRulesCommand(), "rules", "enum-drift", "--format", "json")
	require.NoError(t, err)

	var info lint.RuleInfo
	require.NoError(t, json.Unmarshal([]byte(stdout), &info))
	assert.Equal(t, "enum-drift", info.ID)
	assert.Equal(t, "cross-file", info.Kind)
	assert.Equal(t, "enum_drift", info.ConfigKey)
}

func TestRulesCommand_Errors(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		errSub string
	}{
		{"unknown rule", []string{"rules", "no-such-rule"}, `unknown rule "no-such-rule"`},
		{"github format", []string{"rules", "--format", "github"}, "only supported by check"},
		{"bad format", []string{"rules", "--format", "sarif"}, "unknown output format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, NewRulesCommand(), tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSub)
		})
	}
}
