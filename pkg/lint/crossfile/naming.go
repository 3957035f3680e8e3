package crossfile

import (
	"fmt"
	"regexp"
	"slices"
	"sort"
	"strings"
	"unicode"

	"github.com/leapstack-labs/spectralint/pkg/lint"
	"github.com/xrash/smetrics"
)

func init() {
	lint.Register(NamingInconsistency)
}

// NamingInconsistency reports identifiers whose spelling differs between
// files: api_key in one file, apiKey in another.
var NamingInconsistency = lint.RuleDef{
	ID:          "naming-inconsistency",
	Name:        "crossfile.naming",
	Group:       "crossfile",
	Description: "The same identifier is spelled differently across files",
	Severity:    lint.SeverityWarning,
	Kind:        lint.KindCrossFile,
	ConfigKeys:  []string{"min_length", "stopwords", "similarity"},
	CheckCorpus: checkNaming,
	Rationale: `Agents copy identifiers verbatim. When CLAUDE.md says api_key and a
command file says apiKey, one of them produces code that does not match the
project. Spellings are compared after lowercasing and removing _ and -.`,
	BadExample: `CLAUDE.md:   Read the api_key from the environment.
AGENTS.md:   Pass apiKey to the client.`,
	GoodExample: `CLAUDE.md:   Read the api_key from the environment.
AGENTS.md:   Pass api_key to the client.`,
	Fix: "Pick one spelling and use it in every file.",
}

// Default options.
const (
	DefaultNamingMinLength = 3
)

// DefaultStopwords are canonical forms whose spelling varies for stylistic
// reasons only.
var DefaultStopwords = []string{
	"backend", "builtin", "checkin", "checkout", "codebase", "dropdown",
	"eg", "email", "etc", "filename", "fixme", "frontend", "fullstack",
	"github", "gitlab", "hostname", "ie", "javascript", "login", "logout",
	"macos", "markdown", "nodejs", "offline", "online", "pathname", "plugin",
	"readme", "realtime", "runtime", "setup", "signup", "timestamp", "todo",
	"typescript", "username", "vscode", "workflow",
}

var (
	identRE      = regexp.MustCompile(`[A-Za-z][A-Za-z0-9]*(?:[_-][A-Za-z0-9]+)*`)
	htmlComment  = regexp.MustCompile(`<!--.*?-->`)
	urlRE        = regexp.MustCompile(`\b[a-zA-Z][a-zA-Z0-9+.-]*://\S+`)
	linkTargetRE = regexp.MustCompile(`\]\([^)]*\)`)
)

type firstSeen struct {
	file string
	line int
}

// spelling tracks where one literal spelling occurs: file -> first line.
type spelling struct {
	text  string
	lower string
	files map[string]int
}

func (s *spelling) first() firstSeen {
	best := firstSeen{}
	for f, l := range s.files {
		if best.file == "" || f < best.file || (f == best.file && l < best.line) {
			best = firstSeen{f, l}
		}
	}
	return best
}

type nameGroup struct {
	canonical string
	spellings map[string]*spelling
}

func checkNaming(ctx *lint.CorpusContext) []lint.Diagnostic {
	minLen := ctx.Options.Int("min_length", DefaultNamingMinLength)
	stop := make(map[string]bool)
	for _, w := range ctx.Options.Strings("stopwords", DefaultStopwords) {
		stop[canonicalName(w)] = true
	}

	groups := make(map[string]*nameGroup)
	for _, doc := range ctx.Docs {
		for _, l := range doc.NonCodeLines() {
			for _, tok := range identifierCandidates(l.Text) {
				canon := canonicalName(tok)
				if len(canon) < minLen || stop[canon] {
					continue
				}
				g := groups[canon]
				if g == nil {
					g = &nameGroup{canonical: canon, spellings: make(map[string]*spelling)}
					groups[canon] = g
				}
				sp := g.spellings[tok]
				if sp == nil {
					sp = &spelling{text: tok, lower: strings.ToLower(tok), files: make(map[string]int)}
					g.spellings[tok] = sp
				}
				if _, ok := sp.files[doc.RelPath]; !ok {
					sp.files[doc.RelPath] = l.Num
				}
			}
		}
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var diags []lint.Diagnostic
	for _, k := range keys {
		diags = append(diags, driftDiagnostics(ctx.RuleID, groups[k])...)
	}
	if threshold := ctx.Options.Float("similarity", 0); threshold > 0 {
		diags = append(diags, similarityDiagnostics(ctx.RuleID, groups, keys, threshold)...)
	}

	sort.SliceStable(diags, func(i, j int) bool {
		if diags[i].File != diags[j].File {
			return diags[i].File < diags[j].File
		}
		if diags[i].Line != diags[j].Line {
			return diags[i].Line < diags[j].Line
		}
		return diags[i].Message < diags[j].Message
	})
	return diags
}

// driftDiagnostics emits one warning per (file, spelling) that has a
// differently spelled peer in another file. Case-only variants are not
// conflicts.
func driftDiagnostics(ruleID string, g *nameGroup) []lint.Diagnostic {
	variants := make(map[string]bool)
	for _, sp := range g.spellings {
		variants[sp.lower] = true
	}
	if len(variants) < 2 {
		return nil
	}

	spellings := sortedSpellings(g)
	var diags []lint.Diagnostic
	for _, sp := range spellings {
		for _, file := range sortedFiles(sp.files) {
			line := sp.files[file]

			type conflict struct {
				sp    *spelling
				files []string
				first firstSeen
			}
			var conflicts []conflict
			for _, other := range spellings {
				if other.lower == sp.lower {
					continue
				}
				c := conflict{sp: other}
				for _, f := range sortedFiles(other.files) {
					if f == file {
						continue
					}
					if c.files == nil {
						c.first = firstSeen{f, other.files[f]}
					}
					c.files = append(c.files, f)
				}
				if c.files != nil {
					conflicts = append(conflicts, c)
				}
			}
			if len(conflicts) == 0 {
				continue
			}
			sort.SliceStable(conflicts, func(i, j int) bool {
				a, b := conflicts[i].first, conflicts[j].first
				if a.file != b.file {
					return a.file < b.file
				}
				return a.line < b.line
			})

			parts := make([]string, len(conflicts))
			for i, c := range conflicts {
				parts[i] = fmt.Sprintf("%q (%s)", c.sp.text, strings.Join(c.files, ", "))
			}
			msg := fmt.Sprintf("Inconsistent naming: %q is also written as %s", sp.text, strings.Join(parts, ", "))
			diags = append(diags, lint.NewDiagnostic(ruleID, lint.SeverityWarning, file, line, msg).
				WithRelated(conflicts[0].first.file, conflicts[0].first.line))
		}
	}
	return diags
}

// similarityDiagnostics compares distinct canonical forms pairwise with
// Jaro-Winkler and reports close pairs used in different sets of files.
func similarityDiagnostics(ruleID string, groups map[string]*nameGroup, keys []string, threshold float64) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for i := 0; i < len(keys); i++ {
		for j := i + 1; j < len(keys); j++ {
			a, b := groups[keys[i]], groups[keys[j]]
			score := smetrics.JaroWinkler(a.canonical, b.canonical, 0.7, 4)
			if score < threshold {
				continue
			}
			filesA, filesB := groupFiles(a), groupFiles(b)
			if slices.Equal(filesA, filesB) {
				continue
			}
			spA, spB := sortedSpellings(a)[0], sortedSpellings(b)[0]
			msg := fmt.Sprintf("Similar names: %q and %q might refer to the same concept (similarity: %.0f%%)",
				spA.text, spB.text, score*100)
			for _, g := range []*nameGroup{a, b} {
				for _, sp := range sortedSpellings(g) {
					for _, f := range sortedFiles(sp.files) {
						diags = append(diags, lint.NewDiagnostic(ruleID, lint.SeverityInfo, f, sp.files[f], msg))
					}
				}
			}
		}
	}
	return diags
}

// identifierCandidates returns snake_case, kebab-case and camelCase tokens
// on a line. Plain words carry no spelling signal and are skipped, as are
// HTML comments, URLs and link destinations.
func identifierCandidates(line string) []string {
	line = htmlComment.ReplaceAllString(line, " ")
	line = urlRE.ReplaceAllString(line, " ")
	line = linkTargetRE.ReplaceAllString(line, "]")

	var out []string
	for _, loc := range identRE.FindAllStringIndex(line, -1) {
		if loc[0] > 0 && isIdentByte(line[loc[0]-1]) {
			continue
		}
		tok := line[loc[0]:loc[1]]
		if strings.ContainsAny(tok, "_-") || hasCamelBoundary(tok) {
			out = append(out, tok)
		}
	}
	return out
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '-' || c == '.' || c == '/' ||
		(c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func hasCamelBoundary(tok string) bool {
	prevLower := false
	for _, r := range tok {
		if prevLower && unicode.IsUpper(r) {
			return true
		}
		prevLower = unicode.IsLower(r)
	}
	return false
}

// canonicalName lowercases and strips separators: api_key, apiKey and
// API-KEY all become apikey.
func canonicalName(s string) string {
	s = strings.ToLower(s)
	return strings.NewReplacer("_", "", "-", "").Replace(s)
}

func sortedSpellings(g *nameGroup) []*spelling {
	out := make([]*spelling, 0, len(g.spellings))
	for _, sp := range g.spellings {
		out = append(out, sp)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].first(), out[j].first()
		if a.file != b.file {
			return a.file < b.file
		}
		if a.line != b.line {
			return a.line < b.line
		}
		return out[i].text < out[j].text
	})
	return out
}

func sortedFiles(files map[string]int) []string {
	out := make([]string, 0, len(files))
	for f := range files {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

func groupFiles(g *nameGroup) []string {
	set := make(map[string]int)
	for _, sp := range g.spellings {
		for f := range sp.files {
			set[f] = 0
		}
	}
	return sortedFiles(set)
}
