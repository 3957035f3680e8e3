package lint

// Identifiers of diagnostics produced by the engine rather than by a rule.
const (
	// RuleFileUnreadable is reported once for a file that could not be read or is binary.
	RuleFileUnreadable = "file-unreadable"
	// RuleConfigProblem is reported for a rule disabled by invalid configuration.
	RuleConfigProblem = "rule-config"
)

// Diagnostic represents a single finding. It is a value and is never
// modified after a rule emits it.
type Diagnostic struct {
	RuleID   string   `json:"rule"`
	Severity Severity `json:"severity"`
	File     string   `json:"file"` // root-relative, slash separated
	Line     int      `json:"line"` // 1-based, 0 for engine-level findings
	Message  string   `json:"message"`

	// Set by cross-file rules to point at the conflicting location.
	RelatedFile string `json:"related_file,omitempty"`
	RelatedLine int    `json:"related_line,omitempty"`
}

// NewDiagnostic builds a diagnostic without a related location.
func NewDiagnostic(ruleID string, sev Severity, file string, line int, message string) Diagnostic {
	return Diagnostic{
		RuleID:   ruleID,
		Severity: sev,
		File:     file,
		Line:     line,
		Message:  message,
	}
}

// WithRelated returns a copy of d pointing at a related location.
func (d Diagnostic) WithRelated(file string, line int) Diagnostic {
	d.RelatedFile = file
	d.RelatedLine = line
	return d
}

// HasRelated reports whether the diagnostic carries a related location.
func (d Diagnostic) HasRelated() bool {
	return d.RelatedFile != ""
}

// ConfigDiagnostic builds an engine-level rule-config warning.
func ConfigDiagnostic(message string) Diagnostic {
	return NewDiagnostic(RuleConfigProblem, SeverityWarning, "", 0, message)
}
