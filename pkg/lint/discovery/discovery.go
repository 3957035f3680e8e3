// Package discovery walks a project root and selects the markdown files a
// run analyzes.
package discovery

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/leapstack-labs/spectralint/pkg/lint/globset"
)

// Options configures a discovery run. All globs are case-insensitive and are
// matched against both the root-relative path and the base name.
type Options struct {
	Include     []string // files to analyze
	Ignore      []string // directories to skip
	IgnoreFiles []string // subtracted after Include
	Historical  []string // files marked historical
	Logger      *slog.Logger
}

// File is a discovered markdown file.
type File struct {
	Path       string // absolute
	RelPath    string // slash separated
	Historical bool
}

// Error represents a non-fatal error during discovery.
type Error struct {
	Path    string
	Op      string // "walk", "stat"
	Message string
}

// Result is the outcome of a discovery run.
type Result struct {
	Root     string
	Files    []File // sorted by RelPath
	Errors   []Error
	Duration time.Duration
}

// HasErrors returns true if any errors occurred.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// RelPaths returns the RelPath of every file.
func (r *Result) RelPaths() []string {
	out := make([]string, len(r.Files))
	for i, f := range r.Files {
		out[i] = f.RelPath
	}
	return out
}

// HistoricalPaths returns the RelPaths marked historical.
func (r *Result) HistoricalPaths() []string {
	var out []string
	for _, f := range r.Files {
		if f.Historical {
			out = append(out, f.RelPath)
		}
	}
	return out
}

// Summary returns a human-readable summary.
func (r *Result) Summary() string {
	return fmt.Sprintf("Files: %d (%d historical) | Errors: %d | Duration: %s",
		len(r.Files), len(r.HistoricalPaths()), len(r.Errors), r.Duration.Round(time.Millisecond))
}

type matchers struct {
	include, ignore, ignoreFiles, historical globset.Set
}

func compile(opts Options) (matchers, error) {
	var m matchers
	var err error
	if m.include, err = globset.New(opts.Include); err != nil {
		return m, fmt.Errorf("include: %w", err)
	}
	if m.ignore, err = globset.New(opts.Ignore); err != nil {
		return m, fmt.Errorf("ignore: %w", err)
	}
	if m.ignoreFiles, err = globset.New(opts.IgnoreFiles); err != nil {
		return m, fmt.Errorf("ignore_files: %w", err)
	}
	if m.historical, err = globset.New(opts.Historical); err != nil {
		return m, fmt.Errorf("historical_files: %w", err)
	}
	return m, nil
}

// Discover walks root and returns the files to analyze. A file is selected
// iff it ends in .md, matches Include and does not match IgnoreFiles.
// Directories matching Ignore are not entered. Unreadable entries are
// recorded in Result.Errors and skipped.
func Discover(root string, opts Options) (*Result, error) {
	start := time.Now()
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %s: %w", root, err)
	}
	m, err := compile(opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Root: absRoot}
	logger.Debug("starting discovery", "root", absRoot)

	walkErr := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == absRoot {
				return err
			}
			result.Errors = append(result.Errors, Error{Path: path, Op: "walk", Message: err.Error()})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == absRoot {
			return nil
		}

		rel, relErr := filepath.Rel(absRoot, path)
		if relErr != nil {
			result.Errors = append(result.Errors, Error{Path: path, Op: "stat", Message: relErr.Error()})
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if m.ignore.Match(rel) {
				logger.Debug("skipping ignored directory", "path", rel)
				return filepath.SkipDir
			}
			return nil
		}
		if m.ignore.Match(rel) {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(rel), ".md") {
			return nil
		}
		if !m.include.Match(rel) || m.ignoreFiles.Match(rel) {
			return nil
		}

		result.Files = append(result.Files, File{
			Path:       path,
			RelPath:    rel,
			Historical: m.historical.Match(rel),
		})
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walk %s: %w", absRoot, walkErr)
	}

	sort.Slice(result.Files, func(i, j int) bool { return result.Files[i].RelPath < result.Files[j].RelPath })
	result.Duration = time.Since(start)

	logger.Debug("discovery completed",
		"files", len(result.Files),
		"historical", len(result.HistoricalPaths()),
		"errors", len(result.Errors),
		"duration_ms", result.Duration.Milliseconds())

	return result, nil
}
