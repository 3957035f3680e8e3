package document

import "strings"

// NonCodeLines returns every line outside fenced code blocks. Fence
// delimiters are excluded; frontmatter lines are kept.
func (d *Document) NonCodeLines() []Line {
	out := make([]Line, 0, len(d.Lines))
	for i, text := range d.Lines {
		if !d.InFence(i + 1) {
			out = append(out, Line{Num: i + 1, Text: text})
		}
	}
	return out
}

// CodeLines returns the lines inside fenced code blocks, delimiters excluded.
func (d *Document) CodeLines() []Line {
	var out []Line
	for _, f := range d.CodeFences {
		for n := f.StartLine + 1; n < f.EndLine; n++ {
			out = append(out, Line{Num: n, Text: d.Lines[n-1]})
		}
	}
	return out
}

// ProseLines returns non-code lines outside the frontmatter block.
func (d *Document) ProseLines() []Line {
	out := make([]Line, 0, len(d.Lines))
	for i, text := range d.Lines {
		if d.structural(i + 1) {
			out = append(out, Line{Num: i + 1, Text: text})
		}
	}
	return out
}

// InstructionLines returns the prose lines that read as instructions.
func (d *Document) InstructionLines() []Line {
	var out []Line
	for _, l := range d.ProseLines() {
		if IsInstructionLine(l.Text) {
			out = append(out, l)
		}
	}
	return out
}

// SectionLines returns the non-code lines of a section body, heading
// excluded.
func (d *Document) SectionLines(s Section) []Line {
	var out []Line
	for n := s.Line + 1; n <= s.EndLine && n <= len(d.Lines); n++ {
		if !d.InFence(n) {
			out = append(out, Line{Num: n, Text: d.Lines[n-1]})
		}
	}
	return out
}

// IsInstructionLine reports whether a non-code line should be read as an
// instruction. Indented code (other than list items), blockquotes and
// table rows are content, not instructions.
func IsInstructionLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(line, "    ") && !strings.HasPrefix(trimmed, "-") && !strings.HasPrefix(trimmed, "*") {
		return false
	}
	if strings.HasPrefix(trimmed, ">") || strings.HasPrefix(trimmed, "|") {
		return false
	}
	return true
}
