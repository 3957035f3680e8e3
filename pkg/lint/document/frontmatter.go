package document

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// parseFrontmatter recognizes a YAML block opened by "---" on line 1 and
// closed by "---" or "...". It returns the closing line (0 when there is no
// block) and the decoded map, which is nil when the YAML is invalid or not
// a mapping.
func parseFrontmatter(lines []string) (int, map[string]any) {
	if len(lines) == 0 || strings.TrimRight(lines[0], " \t") != "---" {
		return 0, nil
	}
	for i := 1; i < len(lines); i++ {
		l := strings.TrimRight(lines[i], " \t")
		if l != "---" && l != "..." {
			continue
		}
		body := strings.Join(lines[1:i], "\n")
		var fm map[string]any
		if err := yaml.Unmarshal([]byte(body), &fm); err != nil {
			return i + 1, nil
		}
		return i + 1, fm
	}
	return 0, nil
}

// InFrontmatter reports whether 1-based line n belongs to the frontmatter
// block, delimiters included.
func (d *Document) InFrontmatter(n int) bool {
	return d.FrontmatterEnd > 0 && n >= 1 && n <= d.FrontmatterEnd
}

// FrontmatterKeys returns the top-level frontmatter keys with the line each
// one is declared on.
func (d *Document) FrontmatterKeys() []Line {
	if d.Frontmatter == nil {
		return nil
	}
	var keys []Line
	for n := 2; n < d.FrontmatterEnd; n++ {
		text := d.Lines[n-1]
		if text == "" || text[0] == ' ' || text[0] == '\t' || text[0] == '#' || text[0] == '-' {
			continue
		}
		key, _, ok := strings.Cut(text, ":")
		if !ok {
			continue
		}
		key = strings.Trim(strings.TrimSpace(key), `"'`)
		if _, known := d.Frontmatter[key]; known {
			keys = append(keys, Line{Num: n, Text: key})
		}
	}
	return keys
}
