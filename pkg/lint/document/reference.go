package document

import (
	"regexp"
	"strings"
)

// RefKind is the syntactic form of a file reference.
type RefKind int

const (
	RefBacktick RefKind = iota // `path.md`
	RefLink                    // [text](path.md)
	RefBare                    // path.md
)

// Reference is a mention of a markdown file on a non-code line.
type Reference struct {
	Target string
	Line   int
	Kind   RefKind
}

var (
	refBacktick = regexp.MustCompile("`([^`]+\\.md)`")
	refLink     = regexp.MustCompile(`\[([^\]]*)\]\(([^)]+\.md)\)`)
	refBareTok  = regexp.MustCompile(`[a-zA-Z0-9_/.:-]+\.md`)
)

func (d *Document) scanReferences() []Reference {
	var refs []Reference
	type key struct {
		target string
		line   int
	}
	seen := make(map[key]bool)
	add := func(target string, line int, kind RefKind) {
		k := key{target, line}
		if seen[k] {
			return
		}
		seen[k] = true
		refs = append(refs, Reference{Target: target, Line: line, Kind: kind})
	}

	for _, l := range d.NonCodeLines() {
		for _, m := range refBacktick.FindAllStringSubmatch(l.Text, -1) {
			add(m[1], l.Num, RefBacktick)
		}
		for _, m := range refLink.FindAllStringSubmatch(l.Text, -1) {
			add(m[2], l.Num, RefLink)
		}
		for _, target := range bareRefs(l.Text) {
			add(target, l.Num, RefBare)
		}
	}
	return refs
}

// bareRefs returns .md tokens delimited by whitespace, commas, pipes or the
// line ends. Delimiters are checked around each token rather than consumed,
// so adjacent references are all found.
func bareRefs(line string) []string {
	var out []string
	for _, loc := range refBareTok.FindAllStringIndex(line, -1) {
		start, end := loc[0], loc[1]
		if start > 0 && !isRefDelim(line[start-1]) {
			continue
		}
		if end < len(line) && !isRefDelim(line[end]) {
			continue
		}
		out = append(out, line[start:end])
	}
	return out
}

func isRefDelim(c byte) bool {
	return c == ',' || c == '|' || strings.IndexByte(" \t\n\r\v\f", c) >= 0
}
