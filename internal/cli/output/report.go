package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leapstack-labs/spectralint/pkg/lint"
	"github.com/leapstack-labs/spectralint/pkg/lint/engine"
)

// Info groups larger than infoGroupLimit are cut to infoGroupShown
// entries in text and markdown output.
const (
	infoGroupLimit = 20
	infoGroupShown = 10
)

// ReportJSON is the JSON document written for a report.
type ReportJSON struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Summary     SummaryJSON      `json:"summary"`
}

// DiagnosticJSON is one diagnostic in JSON output.
type DiagnosticJSON struct {
	File        string `json:"file"`
	Line        int    `json:"line"`
	Severity    string `json:"severity"`
	Rule        string `json:"rule"`
	Message     string `json:"message"`
	RelatedFile string `json:"related_file,omitempty"`
	RelatedLine int    `json:"related_line,omitempty"`
}

// SummaryJSON holds the totals of a report.
type SummaryJSON struct {
	Errors   int  `json:"errors"`
	Warnings int  `json:"warnings"`
	Info     int  `json:"info"`
	Failing  bool `json:"failing"`
}

// Report renders a lint report in the effective mode.
func (r *Renderer) Report(rep *engine.Report) error {
	switch r.EffectiveMode() {
	case ModeJSON:
		return r.reportJSON(rep)
	case ModeGitHub:
		r.reportGitHub(rep)
	case ModeMarkdown:
		r.reportMarkdown(rep)
	default:
		r.reportText(rep)
	}
	return nil
}

// ruleGroup is the diagnostics of one rule in display order.
type ruleGroup struct {
	rule  string
	worst lint.Severity
	diags []lint.Diagnostic
}

// groupByRule groups diagnostics by rule, worst severity first, then by
// rule ID. Within a group diagnostics keep the report order (file, line).
func groupByRule(diags []lint.Diagnostic) []ruleGroup {
	index := make(map[string]int)
	var groups []ruleGroup
	for _, d := range diags {
		i, ok := index[d.RuleID]
		if !ok {
			i = len(groups)
			index[d.RuleID] = i
			groups = append(groups, ruleGroup{rule: d.RuleID, worst: d.Severity})
		}
		g := &groups[i]
		g.diags = append(g.diags, d)
		if d.Severity > g.worst {
			g.worst = d.Severity
		}
	}
	for i := range groups {
		sort.SliceStable(groups[i].diags, func(a, b int) bool {
			da, db := groups[i].diags[a], groups[i].diags[b]
			if da.File != db.File {
				return da.File < db.File
			}
			return da.Line < db.Line
		})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].worst != groups[j].worst {
			return groups[i].worst > groups[j].worst
		}
		return groups[i].rule < groups[j].rule
	})
	return groups
}

// shownCount returns how many entries of g are displayed.
func (g ruleGroup) shownCount() int {
	if g.worst == lint.SeverityInfo && len(g.diags) > infoGroupLimit {
		return infoGroupShown
	}
	return len(g.diags)
}

// Summary formats the totals line, e.g. "2 errors, 1 warnings, 0 info across 3 files".
func Summary(rep *engine.Report) string {
	return fmt.Sprintf("%d errors, %d warnings, %d info across %d files",
		rep.Errors(), rep.Warnings(), rep.Infos(), rep.Counts.Files)
}

func displayFile(file string) string {
	if file == "" {
		return "(configuration)"
	}
	return file
}

func (r *Renderer) reportText(rep *engine.Report) {
	st := r.styles
	rule := st.Muted.Render(strings.Repeat("━", 50))

	r.Println("")
	r.Println("  " + rule)
	if len(rep.Diagnostics) == 0 {
		r.Println("  " + st.Success.Render("no issues found"))
		r.Println("  " + st.Muted.Render(fmt.Sprintf("%d files scanned", rep.FilesScanned)))
		r.Println("  " + rule)
		r.Println("")
		return
	}
	r.Println("  " + Summary(rep))
	r.Println("  " + rule)

	// "      L1234 " prefix
	msgWidth := r.width - 12
	if msgWidth < 20 {
		msgWidth = 20
	}

	for _, g := range groupByRule(rep.Diagnostics) {
		style := st.Severity(g.worst)
		r.Println("")
		r.Printf("  %s %s %s\n",
			style.Render(SeverityIcon(g.worst)),
			style.Render(g.rule),
			st.Muted.Render(fmt.Sprintf("(%d)", len(g.diags))))

		shown := g.shownCount()
		file := "\x00"
		for _, d := range g.diags[:shown] {
			if d.File != file {
				file = d.File
				r.Println("    " + st.Path.Render(displayFile(file)))
			}
			msg := d.Message
			if d.HasRelated() {
				msg += fmt.Sprintf(" (see %s:%d)", d.RelatedFile, d.RelatedLine)
			}
			r.Printf("      L%-4d %s\n", d.Line, Truncate(msg, msgWidth))
		}
		if rest := len(g.diags) - shown; rest > 0 {
			r.Println("    " + st.Muted.Render(
				fmt.Sprintf("... and %d more (use --format json for full list)", rest)))
		}
	}
	r.Println("")
}

func (r *Renderer) reportMarkdown(rep *engine.Report) {
	r.Println("# spectralint report")
	r.Println("")
	if len(rep.Diagnostics) == 0 {
		r.Printf("No issues found in %d files.\n", rep.FilesScanned)
		return
	}
	r.Printf("**%s**\n", Summary(rep))

	for _, g := range groupByRule(rep.Diagnostics) {
		r.Println("")
		r.Printf("## %s (%d, %s)\n", g.rule, len(g.diags), g.worst)
		r.Println("")
		shown := g.shownCount()
		for _, d := range g.diags[:shown] {
			loc := displayFile(d.File)
			if d.Line > 0 {
				loc = fmt.Sprintf("%s:%d", loc, d.Line)
			}
			line := fmt.Sprintf("- `%s` %s", loc, d.Message)
			if d.HasRelated() {
				line += fmt.Sprintf(" (see `%s:%d`)", d.RelatedFile, d.RelatedLine)
			}
			r.Println(line)
		}
		if rest := len(g.diags) - shown; rest > 0 {
			r.Printf("- ... and %d more (use --format json for full list)\n", rest)
		}
	}
	r.Println("")
}

func (r *Renderer) reportJSON(rep *engine.Report) error {
	doc := ReportJSON{
		Diagnostics: make([]DiagnosticJSON, 0, len(rep.Diagnostics)),
		Summary: SummaryJSON{
			Errors:   rep.Errors(),
			Warnings: rep.Warnings(),
			Info:     rep.Infos(),
			Failing:  rep.Failing,
		},
	}
	for _, d := range rep.Diagnostics {
		doc.Diagnostics = append(doc.Diagnostics, DiagnosticJSON{
			File:        d.File,
			Line:        d.Line,
			Severity:    d.Severity.String(),
			Rule:        d.RuleID,
			Message:     d.Message,
			RelatedFile: d.RelatedFile,
			RelatedLine: d.RelatedLine,
		})
	}
	return r.JSON(doc)
}

// githubLevel maps a severity to a workflow command.
func githubLevel(sev lint.Severity) string {
	switch sev {
	case lint.SeverityError:
		return "error"
	case lint.SeverityWarning:
		return "warning"
	default:
		return "notice"
	}
}

var (
	githubData     = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")
	githubProperty = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A", ":", "%3A", ",", "%2C")
)

// reportGitHub writes GitHub Actions workflow commands, one per diagnostic.
func (r *Renderer) reportGitHub(rep *engine.Report) {
	for _, d := range rep.Diagnostics {
		var props []string
		if d.File != "" {
			props = append(props, "file="+githubProperty.Replace(d.File))
			if d.Line > 0 {
				props = append(props, fmt.Sprintf("line=%d", d.Line))
			}
		}
		props = append(props, "title="+githubProperty.Replace(d.RuleID))

		msg := d.Message
		if d.HasRelated() {
			msg += fmt.Sprintf(" (see %s:%d)", d.RelatedFile, d.RelatedLine)
		}
		r.Printf("::%s %s::%s\n", githubLevel(d.Severity), strings.Join(props, ","), githubData.Replace(msg))
	}
}
