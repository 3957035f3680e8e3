package corpus

import (
	"testing"

	"github.com/leapstack-labs/spectralint/pkg/lint/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doc(rel, content string) *document.Document {
	return document.Parse("/root/"+rel, rel, []byte(content))
}

func TestCorpus(t *testing.T) {
	c := New("/root", []*document.Document{
		doc("b.md", "# B"),
		doc("CHANGELOG.md", "# Log"),
		nil,
		doc("a.md", "# A"),
	}, []string{"CHANGELOG.md", "gone.md"})

	assert.Equal(t, "/root", c.Root())
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, []string{"CHANGELOG.md", "a.md", "b.md"}, c.Paths())

	docs := c.Documents()
	require.Len(t, docs, 3)
	assert.Equal(t, "CHANGELOG.md", docs[0].RelPath)

	d, ok := c.Get("a.md")
	require.True(t, ok)
	assert.Equal(t, "A", d.Headings[0].Text)
	_, ok = c.Get("missing.md")
	assert.False(t, ok)

	assert.True(t, c.IsHistorical("CHANGELOG.md"))
	assert.False(t, c.IsHistorical("a.md"))
	assert.Equal(t, []string{"CHANGELOG.md"}, c.HistoricalPaths())
}

func TestCorpusPathsIsCopy(t *testing.T) {
	c := New("/root", []*document.Document{doc("a.md", "")}, nil)
	p := c.Paths()
	p[0] = "mutated"
	assert.Equal(t, []string{"a.md"}, c.Paths())
}
