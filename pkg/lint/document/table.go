package document

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var delimiterCell = regexp.MustCompile(`^:?-+:?$`)

// Table is a pipe table. Every row has exactly len(Header) cells.
type Table struct {
	Header    []string // normalized
	RawHeader []string // as written, trimmed
	Rows      [][]string
	RowLines  []int // line of each row
	StartLine int   // header line
	EndLine   int   // last line of the table block
	Section   string
}

// Column returns the index of the normalized header name, or -1.
func (t Table) Column(name string) int {
	name = NormalizeHeader(name)
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Values returns the trimmed non-empty cells of column col in row order.
func (t Table) Values(col int) []string {
	var vals []string
	for _, row := range t.Rows {
		if v := strings.TrimSpace(row[col]); v != "" {
			vals = append(vals, v)
		}
	}
	return vals
}

// HasDuplicateHeaders reports whether two header cells normalize equally.
func (t Table) HasDuplicateHeaders() bool {
	seen := make(map[string]bool, len(t.Header))
	for _, h := range t.Header {
		if seen[h] {
			return true
		}
		seen[h] = true
	}
	return false
}

// NormalizeHeader applies NFKC, case folding and whitespace collapsing, then
// trims emphasis and code markers from both ends.
func NormalizeHeader(s string) string {
	s = norm.NFKC.String(s)
	// A Caser keeps state and is not safe for concurrent use.
	s = cases.Fold().String(s)
	s = strings.Join(strings.Fields(s), " ")
	s = strings.Trim(s, "*_`")
	return strings.TrimSpace(s)
}

func (d *Document) scanTables() []Table {
	var tables []Table
	for i := 0; i+1 < len(d.Lines); i++ {
		if !d.structural(i+1) || !d.structural(i+2) {
			continue
		}
		head := d.Lines[i]
		if !strings.Contains(head, "|") {
			continue
		}
		if _, _, ok := parseATX(head); ok {
			continue
		}
		raw := splitCells(head)
		delim := splitCells(d.Lines[i+1])
		if len(raw) == 0 || len(raw) != len(delim) || !isDelimiterRow(delim) {
			continue
		}

		t := Table{
			RawHeader: raw,
			Header:    make([]string, len(raw)),
			StartLine: i + 1,
			EndLine:   i + 2,
		}
		for k, h := range raw {
			t.Header[k] = NormalizeHeader(h)
		}
		if sec, ok := d.SectionAt(i + 1); ok {
			t.Section = sec.Title
		}

		j := i + 2
		for ; j < len(d.Lines); j++ {
			l := d.Lines[j]
			if !d.structural(j+1) || strings.TrimSpace(l) == "" || !strings.Contains(l, "|") {
				break
			}
			t.EndLine = j + 1
			cells := splitCells(l)
			if len(cells) != len(t.Header) {
				continue
			}
			t.Rows = append(t.Rows, cells)
			t.RowLines = append(t.RowLines, j+1)
		}
		tables = append(tables, t)
		i = j - 1
	}
	return tables
}

func isDelimiterRow(cells []string) bool {
	for _, c := range cells {
		if !delimiterCell.MatchString(c) {
			return false
		}
	}
	return true
}

// splitCells splits a table row on unescaped pipes. Leading and trailing
// pipes are optional. Escaped pipes become literal pipes.
func splitCells(line string) []string {
	t := strings.TrimSpace(line)
	if t == "" {
		return nil
	}
	t = strings.TrimPrefix(t, "|")
	if strings.HasSuffix(t, "|") && !strings.HasSuffix(t, `\|`) {
		t = t[:len(t)-1]
	}

	var cells []string
	var cur strings.Builder
	for k := 0; k < len(t); k++ {
		c := t[k]
		switch {
		case c == '\\' && k+1 < len(t) && t[k+1] == '|':
			cur.WriteByte('|')
			k++
		case c == '|':
			cells = append(cells, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	return append(cells, strings.TrimSpace(cur.String()))
}
