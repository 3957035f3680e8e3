package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func perFileDef(id, group string) RuleDef {
	return RuleDef{
		ID:        id,
		Name:      group + "." + id,
		Group:     group,
		Severity:  SeverityWarning,
		Kind:      KindPerFile,
		CheckFile: func(*FileContext) []Diagnostic { return nil },
	}
}

func crossFileDef(id string) RuleDef {
	return RuleDef{
		ID:          id,
		Group:       "crossfile",
		Severity:    SeverityWarning,
		Kind:        KindCrossFile,
		CheckCorpus: func(*CorpusContext) []Diagnostic { return nil },
	}
}

func withCleanRegistry(t *testing.T) {
	t.Helper()
	Clear()
	t.Cleanup(Clear)
}

func TestRegistry(t *testing.T) {
	withCleanRegistry(t)

	Register(perFileDef("file-size", "structure"))
	Register(perFileDef("dead-reference", "references"))
	Register(crossFileDef("enum-drift"))

	assert.Equal(t, 3, Count())

	all := AllRules()
	require.Len(t, all, 3)
	assert.Equal(t, "dead-reference", all[0].ID)
	assert.Equal(t, "enum-drift", all[1].ID)
	assert.Equal(t, "file-size", all[2].ID)

	def, ok := GetByID("file-size")
	require.True(t, ok)
	assert.Equal(t, "structure", def.Group)

	def, ok = GetByConfigKey("dead_reference")
	require.True(t, ok)
	assert.Equal(t, "dead-reference", def.ID)

	_, ok = GetByID("nope")
	assert.False(t, ok)

	assert.Len(t, GetByGroup("structure"), 1)
	assert.Equal(t, []string{"crossfile", "references", "structure"}, Groups())
}

func TestRegisterPanics(t *testing.T) {
	withCleanRegistry(t)

	Register(perFileDef("file-size", "structure"))
	assert.Panics(t, func() { Register(perFileDef("file-size", "structure")) }, "duplicate")

	bad := perFileDef("bad", "structure")
	bad.CheckCorpus = func(*CorpusContext) []Diagnostic { return nil }
	assert.Panics(t, func() { Register(bad) }, "both checks set")

	assert.Panics(t, func() { Register(RuleDef{}) }, "no ID")
}

func TestRuleDefValidate(t *testing.T) {
	tests := []struct {
		name    string
		def     RuleDef
		wantErr bool
	}{
		{"per-file", perFileDef("a", "g"), false},
		{"cross-file", crossFileDef("b"), false},
		{"per-file without check", RuleDef{ID: "c", Kind: KindPerFile}, true},
		{"cross-file with file check", RuleDef{ID: "d", Kind: KindCrossFile, CheckFile: func(*FileContext) []Diagnostic { return nil }}, true},
		{"unknown kind", RuleDef{ID: "e", Kind: Kind(9)}, true},
		{"bad severity", func() RuleDef { d := perFileDef("f", "g"); d.Severity = 5; return d }(), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.def.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigKey(t *testing.T) {
	assert.Equal(t, "dead_reference", ConfigKey("dead-reference"))
	assert.Equal(t, "missing_essential_sections", perFileDef("missing-essential-sections", "g").ConfigKey())
}

func TestGetRuleInfo(t *testing.T) {
	def := crossFileDef("naming-inconsistency")
	def.StrictOnly = true
	def.ConfigKeys = []string{"min_length"}

	info := GetRuleInfo(def)
	assert.Equal(t, "cross-file", info.Kind)
	assert.Equal(t, "naming_inconsistency", info.ConfigKey)
	assert.True(t, info.StrictOnly)
	assert.Equal(t, []string{"min_length"}, info.ConfigKeys)
}
