// Package document parses markdown instruction files into a line-oriented
// structural model: headings, sections, fenced code, tables, file
// references, frontmatter and the suppression timeline.
//
// Parsing never fails. Constructs that do not parse (ragged table rows,
// unterminated fences, invalid frontmatter) are dropped and the rest of the
// file is still analyzed.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

// ErrBinary is returned by Load for content that is not UTF-8 text.
var ErrBinary = errors.New("binary content")

// binarySniffLen is how much of a file is searched for NUL bytes.
const binarySniffLen = 8 << 10

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Heading is an ATX heading.
type Heading struct {
	Level int
	Text  string
	Line  int
}

// Section spans from a heading to the line before the next heading, or EOF.
type Section struct {
	Level   int
	Title   string
	Line    int
	EndLine int
}

// CodeFence is a terminated fenced code block. StartLine and EndLine are the
// opening and closing delimiter lines.
type CodeFence struct {
	Lang      string
	Content   string
	StartLine int
	EndLine   int
}

// Line is a numbered line of a document.
type Line struct {
	Num  int
	Text string
}

// Document is the parsed form of one file. It is immutable once Parse returns.
type Document struct {
	Path    string // absolute
	RelPath string // root-relative, slash separated

	Lines        []string // Lines[0] is line 1
	Headings     []Heading
	Sections     []Section
	CodeFences   []CodeFence
	Tables       []Table
	References   []Reference
	Suppressions Timeline

	// Frontmatter is nil when absent or invalid. FrontmatterEnd is the line
	// of the closing delimiter, 0 when there is no frontmatter block.
	Frontmatter    map[string]any
	FrontmatterEnd int

	fenced []bool // per line index, true inside a fence including delimiters
}

// Empty returns a document with no content, used for unreadable files.
func Empty(path, relPath string) *Document {
	return &Document{Path: path, RelPath: relPath}
}

// Load reads and parses the file at path. It returns ErrBinary for binary
// content and the read error for unreadable files.
func Load(path, relPath string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", relPath, err)
	}
	if IsBinary(content) {
		return nil, ErrBinary
	}
	return Parse(path, relPath, content), nil
}

// IsBinary reports whether content has a NUL byte in its first 8 KiB or is
// not valid UTF-8.
func IsBinary(content []byte) bool {
	sniff := content
	if len(sniff) > binarySniffLen {
		sniff = sniff[:binarySniffLen]
	}
	if bytes.IndexByte(sniff, 0) >= 0 {
		return true
	}
	return !utf8.Valid(content)
}

// Parse builds a Document from raw content.
func Parse(path, relPath string, content []byte) *Document {
	doc := &Document{
		Path:    path,
		RelPath: relPath,
		Lines:   splitLines(content),
	}

	doc.FrontmatterEnd, doc.Frontmatter = parseFrontmatter(doc.Lines)
	doc.CodeFences, doc.fenced = scanFences(doc.Lines, doc.FrontmatterEnd)
	doc.Headings = doc.scanHeadings()
	doc.Sections = buildSections(doc.Headings, len(doc.Lines))
	doc.Tables = doc.scanTables()
	doc.References = doc.scanReferences()
	doc.Suppressions = buildTimeline(doc.Lines, doc.fenced)
	return doc
}

func splitLines(content []byte) []string {
	content = bytes.TrimPrefix(content, utf8BOM)
	if len(content) == 0 {
		return nil
	}
	text := strings.TrimSuffix(string(content), "\n")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// NumLines returns the number of lines.
func (d *Document) NumLines() int {
	return len(d.Lines)
}

// LineText returns the text of 1-based line n, or "" when out of range.
func (d *Document) LineText(n int) string {
	if n < 1 || n > len(d.Lines) {
		return ""
	}
	return d.Lines[n-1]
}

// Title returns the frontmatter title, if any.
func (d *Document) Title() string {
	if d.Frontmatter == nil {
		return ""
	}
	if s, ok := d.Frontmatter["title"].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// Suppressed reports whether diagnostics of rule are suppressed at line.
func (d *Document) Suppressed(rule string, line int) bool {
	return d.Suppressions.Suppressed(rule, line)
}

// SectionAt returns the innermost section containing line.
func (d *Document) SectionAt(line int) (Section, bool) {
	for i := len(d.Sections) - 1; i >= 0; i-- {
		s := d.Sections[i]
		if s.Line <= line && line <= s.EndLine {
			return s, true
		}
	}
	return Section{}, false
}
