package document

import (
	"regexp"
	"sort"
	"strings"
)

var directiveRE = regexp.MustCompile(`<!--\s*spectralint-(disable-next-line|disable|enable)(?:\s+([\w:-]+))?\s*-->`)

// Region is a suppressed line range. Rule "" suppresses every rule.
type Region struct {
	Start int
	End   int
	Rule  string
	Open  bool // a disable never re-enabled, running to EOF
}

// Covers reports whether the region suppresses rule at line.
func (r Region) Covers(rule string, line int) bool {
	if line < r.Start || line > r.End {
		return false
	}
	return r.Rule == "" || strings.EqualFold(r.Rule, rule)
}

// Timeline is the ordered set of suppression regions of a document.
type Timeline struct {
	Regions []Region
}

// Suppressed reports whether any region suppresses rule at line.
func (t Timeline) Suppressed(rule string, line int) bool {
	for _, r := range t.Regions {
		if r.Covers(rule, line) {
			return true
		}
	}
	return false
}

type directive struct {
	verb string
	rule string
}

type openRegion struct {
	start int
	rule  string // lowercased, "" for all
}

// buildTimeline scans directive comments outside fences. disable opens a
// region on the next line and enable closes the most recent matching one on
// the line before. A bare enable closes everything. disable-next-line
// targets the next line that holds more than directives.
func buildTimeline(lines []string, fenced []bool) Timeline {
	var (
		regions []Region
		open    []openRegion
		pending []string
	)
	closeAt := func(o openRegion, end int) {
		if end >= o.start {
			regions = append(regions, Region{Start: o.start, End: end, Rule: o.rule})
		}
	}

	for i, text := range lines {
		n := i + 1
		var dirs []directive
		directiveOnly := false
		if !fenced[i] {
			dirs, directiveOnly = parseDirectives(text)
		}

		if !directiveOnly && len(pending) > 0 {
			for _, rule := range pending {
				regions = append(regions, Region{Start: n, End: n, Rule: rule})
			}
			pending = pending[:0]
		}

		for _, dir := range dirs {
			switch dir.verb {
			case "disable":
				open = append(open, openRegion{start: n + 1, rule: dir.rule})
			case "enable":
				if dir.rule == "" {
					for _, o := range open {
						closeAt(o, n-1)
					}
					open = open[:0]
					continue
				}
				for k := len(open) - 1; k >= 0; k-- {
					if open[k].rule == dir.rule {
						closeAt(open[k], n-1)
						open = append(open[:k], open[k+1:]...)
						break
					}
				}
			case "disable-next-line":
				pending = append(pending, dir.rule)
			}
		}
	}

	for _, o := range open {
		if o.start <= len(lines) {
			regions = append(regions, Region{Start: o.start, End: len(lines), Rule: o.rule, Open: true})
		}
	}

	sort.SliceStable(regions, func(a, b int) bool {
		ra, rb := regions[a], regions[b]
		if ra.Start != rb.Start {
			return ra.Start < rb.Start
		}
		if ra.End != rb.End {
			return ra.End < rb.End
		}
		return ra.Rule < rb.Rule
	})
	return Timeline{Regions: regions}
}

// parseDirectives returns the directives on a line, left to right, and
// whether the line holds nothing else.
func parseDirectives(text string) ([]directive, bool) {
	matches := directiveRE.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil, false
	}
	dirs := make([]directive, 0, len(matches))
	var rest strings.Builder
	prev := 0
	for _, m := range matches {
		rest.WriteString(text[prev:m[0]])
		prev = m[1]
		d := directive{verb: text[m[2]:m[3]]}
		if m[4] >= 0 {
			d.rule = strings.ToLower(text[m[4]:m[5]])
		}
		dirs = append(dirs, d)
	}
	rest.WriteString(text[prev:])
	return dirs, strings.TrimSpace(rest.String()) == ""
}
