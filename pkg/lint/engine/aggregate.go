package engine

import (
	"sort"
	"sync"

	"github.com/leapstack-labs/spectralint/pkg/lint"
)

// Aggregator collects diagnostics from both phases. Add is safe for
// concurrent use.
type Aggregator struct {
	mu    sync.Mutex
	seen  map[diagKey]bool
	diags []lint.Diagnostic
}

type diagKey struct {
	rule, file string
	line       int
	message    string
}

// NewAggregator creates an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{seen: make(map[diagKey]bool)}
}

// Add records diagnostics. Exact duplicates (rule, file, line, message)
// are dropped; the first instance wins.
func (a *Aggregator) Add(diags ...lint.Diagnostic) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, d := range diags {
		k := diagKey{rule: d.RuleID, file: d.File, line: d.Line, message: d.Message}
		if a.seen[k] {
			continue
		}
		a.seen[k] = true
		a.diags = append(a.diags, d)
	}
}

// Len returns the number of distinct diagnostics collected.
func (a *Aggregator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.diags)
}

// Counts summarizes a report.
type Counts struct {
	BySeverity map[lint.Severity]int `json:"by_severity"`
	ByRule     map[string]int        `json:"by_rule"`
	Files      int                   `json:"files"` // distinct files with diagnostics
}

// Report is the ordered, deduplicated result of a run.
type Report struct {
	Diagnostics  []lint.Diagnostic
	FailOn       lint.Severity
	Failing      bool
	FailingCount int // diagnostics at or above FailOn
	Counts       Counts

	FilesScanned int
}

// Report builds the ordered result for a fail-on threshold: severity
// descending, then file, then line. The sort is stable so ties keep the
// order diagnostics were added in.
func (a *Aggregator) Report(failOn lint.Severity) *Report {
	a.mu.Lock()
	diags := append([]lint.Diagnostic(nil), a.diags...)
	a.mu.Unlock()

	sort.SliceStable(diags, func(i, j int) bool {
		di, dj := diags[i], diags[j]
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		if di.File != dj.File {
			return di.File < dj.File
		}
		return di.Line < dj.Line
	})

	r := &Report{
		Diagnostics: diags,
		FailOn:      failOn,
		Counts: Counts{
			BySeverity: make(map[lint.Severity]int),
			ByRule:     make(map[string]int),
		},
	}
	files := make(map[string]bool)
	for _, d := range diags {
		r.Counts.BySeverity[d.Severity]++
		r.Counts.ByRule[d.RuleID]++
		if d.File != "" {
			files[d.File] = true
		}
		if d.Severity >= failOn {
			r.FailingCount++
		}
	}
	r.Counts.Files = len(files)
	r.Failing = r.FailingCount > 0
	return r
}

// Errors returns the number of error diagnostics.
func (r *Report) Errors() int { return r.Counts.BySeverity[lint.SeverityError] }

// Warnings returns the number of warning diagnostics.
func (r *Report) Warnings() int { return r.Counts.BySeverity[lint.SeverityWarning] }

// Infos returns the number of info diagnostics.
func (r *Report) Infos() int { return r.Counts.BySeverity[lint.SeverityInfo] }
