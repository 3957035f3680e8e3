package rules

import (
	"testing"

	"github.com/leapstack-labs/spectralint/pkg/lint"
	"github.com/stretchr/testify/assert"
)

func TestAllRulesRegistered(t *testing.T) {
	want := map[string][]string{
		"references": {"dead-reference", "stale-reference"},
		"clarity":    {"agent-guidelines", "missing-verification", "negative-only-framing", "placeholder-text", "vague-directive"},
		"security":   {"credential-exposure", "dangerous-command", "prompt-injection-vector"},
		"structure":  {"emoji-density", "file-size", "heading-hierarchy", "missing-essential-sections", "session-journal"},
		"crossfile":  {"enum-drift", "naming-inconsistency"},
	}

	total := 0
	for group, ids := range want {
		var got []string
		for _, def := range lint.GetByGroup(group) {
			got = append(got, def.ID)
		}
		assert.Equal(t, ids, got, group)
		total += len(ids)
	}
	assert.Equal(t, total, lint.Count())
}

func TestRuleDefinitionsDocumented(t *testing.T) {
	for _, def := range lint.AllRules() {
		t.Run(def.ID, func(t *testing.T) {
			assert.NoError(t, def.Validate())
			assert.NotEmpty(t, def.Name)
			assert.NotEmpty(t, def.Description)
			assert.NotEmpty(t, def.Rationale)
			assert.NotEmpty(t, def.Fix)
		})
	}
}
