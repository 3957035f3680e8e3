package lint

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/spectralint/pkg/lint/corpus"
	"github.com/leapstack-labs/spectralint/pkg/lint/document"
	"github.com/leapstack-labs/spectralint/pkg/lint/globset"
)

// =============================================================================
// Rule Definitions
// =============================================================================

// Kind tells the engine in which phase a rule runs.
type Kind int

const (
	// KindPerFile rules see one document at a time and run during parsing.
	KindPerFile Kind = iota
	// KindCrossFile rules see the finished corpus and run after every file is parsed.
	KindCrossFile
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindPerFile:
		return "per-file"
	case KindCrossFile:
		return "cross-file"
	default:
		return "unknown"
	}
}

// FileCheck analyzes a single document.
type FileCheck func(ctx *FileContext) []Diagnostic

// CorpusCheck analyzes the whole corpus.
type CorpusCheck func(ctx *CorpusContext) []Diagnostic

// RuleDef is a data-driven rule definition. Exactly one of CheckFile and
// CheckCorpus is set, matching Kind.
type RuleDef struct {
	ID          string   // Unique identifier, e.g. "dead-reference"
	Name        string   // Human-readable name, e.g. "references.dead"
	Group       string   // Category, e.g. "references", "security"
	Description string   // One line description
	Severity    Severity // Default severity
	Kind        Kind
	StrictOnly  bool     // Only active in strict mode unless overridden
	ConfigKeys  []string // Rule-specific option keys

	CheckFile   FileCheck
	CheckCorpus CorpusCheck

	// ValidateOptions reports option problems. The rule still runs; each
	// problem becomes a rule-config warning.
	ValidateOptions func(opts Options) []string

	// Documentation fields for the rules command
	Rationale   string
	BadExample  string
	GoodExample string
	Fix         string
}

// Validate checks that the definition is well formed.
func (d RuleDef) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("rule has no ID")
	}
	switch d.Kind {
	case KindPerFile:
		if d.CheckFile == nil || d.CheckCorpus != nil {
			return fmt.Errorf("rule %s: per-file rules must set only CheckFile", d.ID)
		}
	case KindCrossFile:
		if d.CheckCorpus == nil || d.CheckFile != nil {
			return fmt.Errorf("rule %s: cross-file rules must set only CheckCorpus", d.ID)
		}
	default:
		return fmt.Errorf("rule %s: unknown kind %d", d.ID, d.Kind)
	}
	if d.Severity < SeverityInfo || d.Severity > SeverityError {
		return fmt.Errorf("rule %s: invalid severity %d", d.ID, d.Severity)
	}
	return nil
}

// ConfigKey returns the key of the rule's table under [checkers].
func (d RuleDef) ConfigKey() string {
	return ConfigKey(d.ID)
}

// ConfigKey maps a rule ID to its configuration key ("dead-reference" -> "dead_reference").
func ConfigKey(id string) string {
	return strings.ReplaceAll(id, "-", "_")
}

// =============================================================================
// Check Contexts
// =============================================================================

// FileContext is what a per-file rule sees.
type FileContext struct {
	Doc        *document.Document
	Root       string // absolute project root
	Historical bool   // file matched historical_files
	Options    Options
	RuleID     string
}

// Exists reports whether path exists on disk. Relative paths are taken
// relative to the working directory, so callers join them first.
func (c *FileContext) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Dir returns the absolute directory of the document.
func (c *FileContext) Dir() string {
	return filepath.Dir(c.Doc.Path)
}

// Diag builds a diagnostic for this rule and document.
func (c *FileContext) Diag(line int, sev Severity, message string) Diagnostic {
	return NewDiagnostic(c.RuleID, sev, c.Doc.RelPath, line, message)
}

// CorpusContext is what a cross-file rule sees.
type CorpusContext struct {
	Corpus  *corpus.Corpus
	Docs    []*document.Document // in-scope documents, sorted by RelPath
	Options Options
	RuleID  string
}

// IsHistorical reports whether rel was marked historical during discovery.
func (c *CorpusContext) IsHistorical(rel string) bool {
	return c.Corpus.IsHistorical(rel)
}

// =============================================================================
// Resolved Rules
// =============================================================================

// Rule is a definition resolved against configuration. It is read-only
// during a run.
type Rule struct {
	Def      RuleDef
	Severity *Severity // override for every emitted diagnostic
	Scope    globset.Set
	Options  Options
}

// ID returns the rule ID.
func (r Rule) ID() string { return r.Def.ID }

// InScope reports whether the rule examines the file at rel.
func (r Rule) InScope(rel string) bool {
	return r.Scope.Covers(rel)
}

// EvaluateFile runs a per-file rule against doc.
func (r Rule) EvaluateFile(doc *document.Document, root string, historical bool) []Diagnostic {
	if r.Def.Kind != KindPerFile || !r.InScope(doc.RelPath) {
		return nil
	}
	ctx := &FileContext{
		Doc:        doc,
		Root:       root,
		Historical: historical,
		Options:    r.Options,
		RuleID:     r.Def.ID,
	}
	return r.apply(r.Def.CheckFile(ctx))
}

// EvaluateCorpus runs a cross-file rule against c.
func (r Rule) EvaluateCorpus(c *corpus.Corpus) []Diagnostic {
	if r.Def.Kind != KindCrossFile {
		return nil
	}
	docs := make([]*document.Document, 0, c.Len())
	for _, doc := range c.Documents() {
		if r.InScope(doc.RelPath) {
			docs = append(docs, doc)
		}
	}
	ctx := &CorpusContext{
		Corpus:  c,
		Docs:    docs,
		Options: r.Options,
		RuleID:  r.Def.ID,
	}
	return r.apply(r.Def.CheckCorpus(ctx))
}

func (r Rule) apply(diags []Diagnostic) []Diagnostic {
	if r.Severity == nil {
		return diags
	}
	for i := range diags {
		diags[i].Severity = *r.Severity
	}
	return diags
}
