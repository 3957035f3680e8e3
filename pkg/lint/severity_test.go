package lint

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverityOrdering(t *testing.T) {
	assert.Less(t, SeverityInfo, SeverityWarning)
	assert.Less(t, SeverityWarning, SeverityError)
	assert.Equal(t, []Severity{SeverityInfo, SeverityWarning, SeverityError}, Severities())
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in     string
		want   Severity
		wantOK bool
	}{
		{"info", SeverityInfo, true},
		{"WARNING", SeverityWarning, true},
		{" error ", SeverityError, true},
		{"warn", SeverityWarning, true},
		{"fatal", SeverityWarning, false},
		{"", SeverityWarning, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseSeverity(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestSeverityText(t *testing.T) {
	var s Severity
	require.NoError(t, s.UnmarshalText([]byte("error")))
	assert.Equal(t, SeverityError, s)
	assert.Error(t, s.UnmarshalText([]byte("loud")))

	_, err := Severity(7).MarshalText()
	assert.Error(t, err)
	assert.Equal(t, "unknown", Severity(7).String())

	d := NewDiagnostic("dead-reference", SeverityError, "CLAUDE.md", 3, `"x.md" does not exist`)
	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"rule":"dead-reference","severity":"error","file":"CLAUDE.md","line":3,"message":"\"x.md\" does not exist"}`, string(out))

	out, err = json.Marshal(d.WithRelated("AGENTS.md", 9))
	require.NoError(t, err)
	assert.Contains(t, string(out), `"related_file":"AGENTS.md","related_line":9`)
	assert.False(t, d.HasRelated(), "WithRelated returns a copy")
}
