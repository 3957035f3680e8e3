package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func lines(ls ...string) string {
	return strings.Join(ls, "\n")
}

func TestTimelineBlocks(t *testing.T) {
	doc := parse(lines(
		"line 1",
		"<!-- spectralint-disable dead-reference -->",
		"line 3",
		"line 4",
		"<!-- spectralint-enable dead-reference -->",
		"line 6",
	))

	assert.Equal(t, []Region{{Start: 3, End: 4, Rule: "dead-reference"}}, doc.Suppressions.Regions)
	for n := 3; n <= 4; n++ {
		assert.True(t, doc.Suppressed("dead-reference", n))
		assert.False(t, doc.Suppressed("vague-directive", n), "other rules unaffected")
	}
	assert.False(t, doc.Suppressed("dead-reference", 1))
	assert.False(t, doc.Suppressed("dead-reference", 6))
}

func TestTimelineDisableAll(t *testing.T) {
	doc := parse(lines(
		"<!-- spectralint-disable -->",
		"a",
		"<!-- spectralint-enable -->",
		"b",
	))
	assert.True(t, doc.Suppressed("anything", 2))
	assert.False(t, doc.Suppressed("anything", 4))
}

func TestTimelineUnterminatedDisable(t *testing.T) {
	doc := parse(lines(
		"a",
		"<!-- spectralint-disable credential-exposure -->",
		"b",
		"c",
		"d",
	))
	assert.Equal(t, []Region{{Start: 3, End: 5, Rule: "credential-exposure", Open: true}}, doc.Suppressions.Regions)
	assert.True(t, doc.Suppressed("credential-exposure", 5))
}

func TestTimelineDisableNextLine(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		rule       string
		suppressed []int
		active     []int
	}{
		{
			name:       "exactly one following line",
			content:    lines("<!-- spectralint-disable-next-line dead-reference -->", "target", "next"),
			rule:       "dead-reference",
			suppressed: []int{2},
			active:     []int{1, 3},
		},
		{
			name:       "skips directive-only lines",
			content:    lines("<!-- spectralint-disable-next-line dead-reference -->", "<!-- spectralint-disable-next-line vague-directive -->", "target", "next"),
			rule:       "dead-reference",
			suppressed: []int{3},
			active:     []int{2, 4},
		},
		{
			name:       "no rule means all",
			content:    lines("<!-- spectralint-disable-next-line -->", "target"),
			rule:       "enum-drift",
			suppressed: []int{2},
		},
		{
			name:       "other rule not suppressed",
			content:    lines("<!-- spectralint-disable-next-line dead-reference -->", "target"),
			rule:       "vague-directive",
			active:     []int{2},
		},
		{
			name:       "rule ids compare case-insensitively",
			content:    lines("<!-- spectralint-disable-next-line Dead-Reference -->", "target"),
			rule:       "dead-reference",
			suppressed: []int{2},
		},
		{
			name:       "custom rule id",
			content:    lines("<!-- spectralint-disable-next-line custom:no-jira -->", "target"),
			rule:       "custom:no-jira",
			suppressed: []int{2},
		},
		{
			name:       "independent of enclosing block",
			content:    lines("<!-- spectralint-disable x -->", "<!-- spectralint-disable-next-line y -->", "target", "<!-- spectralint-enable x -->", "after"),
			rule:       "y",
			suppressed: []int{3},
			active:     []int{5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parse(tt.content)
			for _, n := range tt.suppressed {
				assert.True(t, doc.Suppressed(tt.rule, n), "line %d should be suppressed", n)
			}
			for _, n := range tt.active {
				assert.False(t, doc.Suppressed(tt.rule, n), "line %d should not be suppressed", n)
			}
		})
	}
}

func TestTimelineNextLineAtEOF(t *testing.T) {
	doc := parse(lines("a", "<!-- spectralint-disable-next-line -->"))
	assert.Empty(t, doc.Suppressions.Regions)
}

func TestTimelineNested(t *testing.T) {
	doc := parse(lines(
		"<!-- spectralint-disable r -->", // 1
		"a",                              // 2
		"<!-- spectralint-disable r -->", // 3
		"b",                              // 4
		"<!-- spectralint-enable r -->",  // 5
		"c",                              // 6
		"<!-- spectralint-enable r -->",  // 7
		"d",                              // 8
	))
	assert.Equal(t, []Region{
		{Start: 2, End: 6, Rule: "r"},
		{Start: 4, End: 4, Rule: "r"},
	}, doc.Suppressions.Regions)
	assert.False(t, doc.Suppressed("r", 8))
}

func TestTimelineBareEnableClosesEverything(t *testing.T) {
	doc := parse(lines(
		"<!-- spectralint-disable a -->",
		"<!-- spectralint-disable -->",
		"x",
		"<!-- spectralint-enable -->",
		"y",
	))
	assert.False(t, doc.Suppressed("a", 5))
	assert.False(t, doc.Suppressed("b", 5))
	assert.True(t, doc.Suppressed("a", 3))
}

func TestTimelineRuleEnableLeavesBareDisable(t *testing.T) {
	doc := parse(lines(
		"<!-- spectralint-disable -->",
		"x",
		"<!-- spectralint-enable a -->",
		"y",
	))
	assert.True(t, doc.Suppressed("a", 4))
	assert.True(t, doc.Suppressions.Regions[0].Open)
}

func TestTimelineEmptyRegionDropped(t *testing.T) {
	doc := parse(lines(
		"<!-- spectralint-disable a --> <!-- spectralint-enable a -->",
		"x",
	))
	assert.Empty(t, doc.Suppressions.Regions)
}

func TestTimelineIgnoresFencedDirectives(t *testing.T) {
	doc := parse(lines(
		"```",
		"<!-- spectralint-disable -->",
		"```",
		"x",
	))
	assert.Empty(t, doc.Suppressions.Regions)
	assert.False(t, doc.Suppressed("any", 4))
}
