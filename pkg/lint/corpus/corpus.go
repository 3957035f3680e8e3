// Package corpus holds the parsed documents of one run. A Corpus is
// assembled once every file has been parsed and is read-only afterwards,
// so cross-file rules can share it without locking.
package corpus

import (
	"sort"

	"github.com/leapstack-labs/spectralint/pkg/lint/document"
)

// Corpus maps root-relative paths to documents.
type Corpus struct {
	root       string
	docs       map[string]*document.Document
	paths      []string
	historical map[string]bool
}

// New builds a corpus. Later documents with the same RelPath replace
// earlier ones. historical lists the RelPaths marked historical.
func New(root string, docs []*document.Document, historical []string) *Corpus {
	c := &Corpus{
		root:       root,
		docs:       make(map[string]*document.Document, len(docs)),
		historical: make(map[string]bool, len(historical)),
	}
	for _, d := range docs {
		if d == nil {
			continue
		}
		c.docs[d.RelPath] = d
	}
	c.paths = make([]string, 0, len(c.docs))
	for p := range c.docs {
		c.paths = append(c.paths, p)
	}
	sort.Strings(c.paths)
	for _, h := range historical {
		c.historical[h] = true
	}
	return c
}

// Root returns the project root.
func (c *Corpus) Root() string { return c.root }

// Len returns the number of documents.
func (c *Corpus) Len() int { return len(c.paths) }

// Get returns the document at rel.
func (c *Corpus) Get(rel string) (*document.Document, bool) {
	d, ok := c.docs[rel]
	return d, ok
}

// Paths returns all RelPaths, sorted.
func (c *Corpus) Paths() []string {
	return append([]string(nil), c.paths...)
}

// Documents returns all documents sorted by RelPath.
func (c *Corpus) Documents() []*document.Document {
	out := make([]*document.Document, len(c.paths))
	for i, p := range c.paths {
		out[i] = c.docs[p]
	}
	return out
}

// IsHistorical reports whether rel was marked historical.
func (c *Corpus) IsHistorical(rel string) bool {
	return c.historical[rel]
}

// HistoricalPaths returns the historical RelPaths present in the corpus, sorted.
func (c *Corpus) HistoricalPaths() []string {
	var out []string
	for _, p := range c.paths {
		if c.historical[p] {
			out = append(out, p)
		}
	}
	return out
}
