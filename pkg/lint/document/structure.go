package document

import "strings"

// scanFences finds terminated fenced code blocks in one pass. An opener is
// a run of at least three backticks or tildes at any indentation; the
// closer is a line holding only the same character, at least as many times.
// Unterminated openers are dropped and their lines stay ordinary content.
func scanFences(lines []string, skipUntil int) ([]CodeFence, []bool) {
	fenced := make([]bool, len(lines))
	var fences []CodeFence

	for i := skipUntil; i < len(lines); i++ {
		ch, n, info, ok := fenceOpener(lines[i])
		if !ok {
			continue
		}
		end := -1
		for j := i + 1; j < len(lines); j++ {
			if isFenceCloser(lines[j], ch, n) {
				end = j
				break
			}
		}
		if end < 0 {
			continue
		}
		lang, _, _ := strings.Cut(info, " ")
		fences = append(fences, CodeFence{
			Lang:      lang,
			Content:   strings.Join(lines[i+1:end], "\n"),
			StartLine: i + 1,
			EndLine:   end + 1,
		})
		for k := i; k <= end; k++ {
			fenced[k] = true
		}
		i = end
	}
	return fences, fenced
}

func fenceOpener(line string) (byte, int, string, bool) {
	t := strings.TrimSpace(line)
	if len(t) < 3 || (t[0] != '`' && t[0] != '~') {
		return 0, 0, "", false
	}
	ch := t[0]
	n := 0
	for n < len(t) && t[n] == ch {
		n++
	}
	if n < 3 {
		return 0, 0, "", false
	}
	info := strings.TrimSpace(t[n:])
	if ch == '`' && strings.ContainsRune(info, '`') {
		return 0, 0, "", false
	}
	return ch, n, info, true
}

func isFenceCloser(line string, ch byte, n int) bool {
	t := strings.TrimSpace(line)
	if len(t) < n {
		return false
	}
	for i := 0; i < len(t); i++ {
		if t[i] != ch {
			return false
		}
	}
	return true
}

// InFence reports whether 1-based line n is inside a fenced block,
// delimiters included.
func (d *Document) InFence(n int) bool {
	return n >= 1 && n <= len(d.fenced) && d.fenced[n-1]
}

// structural reports whether line n can carry headings and tables.
func (d *Document) structural(n int) bool {
	return !d.InFence(n) && !d.InFrontmatter(n)
}

func (d *Document) scanHeadings() []Heading {
	var headings []Heading
	for i, l := range d.Lines {
		if !d.structural(i + 1) {
			continue
		}
		if level, text, ok := parseATX(l); ok {
			headings = append(headings, Heading{Level: level, Text: text, Line: i + 1})
		}
	}
	return headings
}

// parseATX recognizes "#".."######" headings with at most three spaces of
// indentation. Closing hashes are stripped.
func parseATX(line string) (int, string, bool) {
	indent := len(line) - len(strings.TrimLeft(line, " "))
	if indent > 3 {
		return 0, "", false
	}
	t := line[indent:]
	level := 0
	for level < len(t) && t[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return 0, "", false
	}
	rest := t[level:]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return 0, "", false
	}
	text := strings.TrimSpace(rest)
	if trimmed := strings.TrimRight(text, "#"); trimmed != text {
		if trimmed == "" {
			text = ""
		} else if strings.HasSuffix(trimmed, " ") || strings.HasSuffix(trimmed, "\t") {
			text = strings.TrimSpace(trimmed)
		}
	}
	return level, text, true
}

func buildSections(headings []Heading, total int) []Section {
	sections := make([]Section, len(headings))
	for i, h := range headings {
		end := total
		if i+1 < len(headings) {
			end = headings[i+1].Line - 1
		}
		sections[i] = Section{Level: h.Level, Title: h.Text, Line: h.Line, EndLine: end}
	}
	return sections
}
