// Package engine runs spectralint over a project in two phases.
//
// Phase 1 parses every discovered file in a bounded worker pool and runs
// the per-file rules on each document as soon as it is parsed. Phase 2
// starts only after every worker has finished: the documents are frozen
// into a corpus and the cross-file rules run over it. Diagnostics from
// both phases are filtered through the suppression timeline of the file
// they land in and collected by an Aggregator.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"runtime"
	"time"

	"github.com/leapstack-labs/spectralint/pkg/lint"
	"github.com/leapstack-labs/spectralint/pkg/lint/corpus"
	"github.com/leapstack-labs/spectralint/pkg/lint/discovery"
	"github.com/leapstack-labs/spectralint/pkg/lint/document"
	"github.com/leapstack-labs/spectralint/pkg/lint/rules/custom"
	"golang.org/x/sync/errgroup"
)

// Config holds everything a run needs. It is copied into the Engine and
// never modified.
type Config struct {
	Root   string
	Lint   lint.Config
	FailOn lint.Severity
	Jobs   int // phase 1 workers, defaults to GOMAXPROCS
	Logger *slog.Logger
}

// Engine runs the analysis. An Engine may be run any number of times; each
// run starts from scratch.
type Engine struct {
	cfg      Config
	rules    *lint.RuleSet
	problems []lint.Diagnostic // rule-config warnings found while resolving
	logger   *slog.Logger
}

// New resolves the active rules for cfg. Rule configuration problems do
// not fail construction; they are reported as rule-config warnings by
// every run.
func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Jobs <= 0 {
		cfg.Jobs = runtime.GOMAXPROCS(0)
	}
	if cfg.Root == "" {
		cfg.Root = "."
	}

	customDefs, problems := custom.Rules(cfg.Lint.CustomPatterns)
	rules, resolveProblems := lint.Resolve(cfg.Lint, customDefs...)
	problems = append(problems, resolveProblems...)

	logger.Debug("rules resolved",
		"per_file", len(rules.PerFile),
		"cross_file", len(rules.CrossFile),
		"problems", len(problems))

	return &Engine{cfg: cfg, rules: rules, problems: problems, logger: logger}
}

// Rules returns the active rule set.
func (e *Engine) Rules() *lint.RuleSet {
	return e.rules
}

type fileResult struct {
	doc   *document.Document
	diags []lint.Diagnostic
}

// Run discovers, parses and analyzes the project. The only errors are a
// bad root or invalid globs (from discovery) and cancellation of ctx.
func (e *Engine) Run(ctx context.Context) (*Report, error) {
	start := time.Now()

	found, err := discovery.Discover(e.cfg.Root, discovery.Options{
		Include:     e.cfg.Lint.Include,
		Ignore:      e.cfg.Lint.Ignore,
		IgnoreFiles: e.cfg.Lint.IgnoreFiles,
		Historical:  e.cfg.Lint.HistoricalFiles,
		Logger:      e.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("discovery failed: %w", err)
	}

	agg := NewAggregator()
	agg.Add(e.problems...)
	for _, de := range found.Errors {
		agg.Add(lint.NewDiagnostic(lint.RuleFileUnreadable, lint.SeverityWarning,
			relOrPath(found.Root, de.Path), 1, "could not read: "+de.Message))
	}

	// Phase 1: one task per file, each writing only its own slot.
	phase1 := time.Now()
	results := make([]fileResult, len(found.Files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Jobs)
	for i, f := range found.Files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = e.processFile(found.Root, f)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	e.logger.Debug("phase 1 completed",
		"files", len(found.Files),
		"rules", len(e.rules.PerFile),
		"jobs", e.cfg.Jobs,
		"duration_ms", time.Since(phase1).Milliseconds())

	docs := make([]*document.Document, len(results))
	for i, r := range results {
		docs[i] = r.doc
		agg.Add(r.diags...)
	}
	c := corpus.New(found.Root, docs, found.HistoricalPaths())

	// Phase 2 reads the frozen corpus only.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	phase2 := time.Now()
	crossDiags := make([][]lint.Diagnostic, len(e.rules.CrossFile))
	g2, g2ctx := errgroup.WithContext(ctx)
	for i, rule := range e.rules.CrossFile {
		g2.Go(func() error {
			if err := g2ctx.Err(); err != nil {
				return err
			}
			crossDiags[i] = filterCorpus(c, rule.EvaluateCorpus(c))
			return nil
		})
	}
	if err := g2.Wait(); err != nil {
		return nil, err
	}
	for _, diags := range crossDiags {
		agg.Add(diags...)
	}
	e.logger.Debug("phase 2 completed",
		"rules", len(e.rules.CrossFile),
		"duration_ms", time.Since(phase2).Milliseconds())

	report := agg.Report(e.cfg.FailOn)
	report.FilesScanned = len(found.Files)

	e.logger.Debug("run completed",
		"files", report.FilesScanned,
		"diagnostics", len(report.Diagnostics),
		"failing", report.Failing,
		"duration_ms", time.Since(start).Milliseconds())
	return report, nil
}

// processFile reads, parses and runs the per-file rules on one file.
// Unreadable and binary files become an empty document plus one warning.
func (e *Engine) processFile(root string, f discovery.File) fileResult {
	doc, err := document.Load(f.Path, f.RelPath)
	if err != nil {
		msg := unreadableMessage(err)
		e.logger.Debug("unreadable file", "path", f.RelPath, "error", err)
		return fileResult{
			doc:   document.Empty(f.Path, f.RelPath),
			diags: []lint.Diagnostic{lint.NewDiagnostic(lint.RuleFileUnreadable, lint.SeverityWarning, f.RelPath, 1, msg)},
		}
	}

	var diags []lint.Diagnostic
	for _, rule := range e.rules.PerFile {
		for _, d := range rule.EvaluateFile(doc, root, f.Historical) {
			if !doc.Suppressed(d.RuleID, d.Line) {
				diags = append(diags, d)
			}
		}
	}
	return fileResult{doc: doc, diags: diags}
}

// filterCorpus drops cross-file diagnostics suppressed in the file they
// are reported in.
func filterCorpus(c *corpus.Corpus, diags []lint.Diagnostic) []lint.Diagnostic {
	out := diags[:0]
	for _, d := range diags {
		if doc, ok := c.Get(d.File); ok && doc.Suppressed(d.RuleID, d.Line) {
			continue
		}
		out = append(out, d)
	}
	return out
}

func unreadableMessage(err error) string {
	if errors.Is(err, document.ErrBinary) {
		return "file is binary or not valid UTF-8"
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return "could not read file: " + pathErr.Err.Error()
	}
	return "could not read file: " + err.Error()
}

func relOrPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
