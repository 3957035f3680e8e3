package commands

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/leapstack-labs/spectralint/internal/cli/config"
	"github.com/leapstack-labs/spectralint/pkg/lint/engine"
	"github.com/leapstack-labs/spectralint/pkg/lint/globset"
)

// DefaultDebounce is how long the watcher waits for events to settle.
const DefaultDebounce = 200 * time.Millisecond

// Watcher re-runs check whenever a markdown or config file under Root
// changes. Every run loads the configuration again and starts from
// scratch.
type Watcher struct {
	Root     string
	Ignore   []string // directory globs not watched
	Load     func() (*config.Config, error)
	Ctx      *CommandContext
	Debounce time.Duration

	// OnRun is called after every run, with the report or the error.
	OnRun func(*engine.Report, error)
}

// Run watches until ctx is done. Run and configuration errors are
// printed and do not stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	logger := w.Ctx.Logger

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer func() { _ = fw.Close() }()

	ws := &watchSet{fw: fw, root: w.Root, watched: make(map[string]bool)}
	if err := ws.reset(w.Ignore, logger); err != nil {
		return err
	}

	w.runOnce(ctx, ws)

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				ws.add(newDirs(ev.Name, w.Root, ws.ignore), logger)
			}
			if !relevantEvent(ev) {
				continue
			}
			logger.Debug("change detected", "path", ev.Name, "op", ev.Op.String())
			timer.Reset(debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		case <-timer.C:
			w.runOnce(ctx, ws)
		}
	}
}

func (w *Watcher) runOnce(ctx context.Context, ws *watchSet) {
	r := w.Ctx.Renderer
	cfg, err := w.Load()
	var report *engine.Report
	if err == nil {
		if !slices.Equal(cfg.Ignore, ws.patterns) {
			if err := ws.reset(cfg.Ignore, w.Ctx.Logger); err != nil {
				r.Warn(err.Error())
			}
		}
		report, err = RunCheck(ctx, w.Ctx, cfg)
	}
	if err != nil && ctx.Err() == nil {
		r.Warn(err.Error())
	}
	if ctx.Err() == nil {
		_, _ = fmt.Fprintln(r.ErrWriter(), r.Styles().Muted.Render(
			fmt.Sprintf("[%s] watching %s for changes (Ctrl-C to stop)", time.Now().Format("15:04:05"), w.Root)))
	}
	if w.OnRun != nil {
		w.OnRun(report, err)
	}
}

// watchSet tracks the directories registered with the fsnotify watcher
// for the current ignore patterns.
type watchSet struct {
	fw       *fsnotify.Watcher
	root     string
	patterns []string
	ignore   globset.Set
	watched  map[string]bool
}

// reset recomputes the watched directories for a new ignore list: newly
// ignored directories are removed and newly visible ones added.
func (ws *watchSet) reset(patterns []string, logger *slog.Logger) error {
	ignore, err := globset.New(patterns)
	if err != nil {
		return fmt.Errorf("ignore: %w", err)
	}
	dirs, err := watchDirs(ws.root, ignore)
	if err != nil {
		return err
	}
	ws.patterns = slices.Clone(patterns)
	ws.ignore = ignore

	keep := make(map[string]bool, len(dirs))
	for _, dir := range dirs {
		keep[dir] = true
	}
	for dir := range ws.watched {
		if !keep[dir] {
			_ = ws.fw.Remove(dir)
			delete(ws.watched, dir)
		}
	}
	ws.add(dirs, logger)
	logger.Debug("watching", "root", ws.root, "dirs", len(ws.watched))
	return nil
}

func (ws *watchSet) add(dirs []string, logger *slog.Logger) {
	for _, dir := range dirs {
		if ws.watched[dir] {
			continue
		}
		if err := ws.fw.Add(dir); err != nil {
			logger.Warn("cannot watch directory", "path", dir, "error", err)
			continue
		}
		ws.watched[dir] = true
	}
}

// dirs returns the watched directories, sorted.
func (ws *watchSet) dirs() []string {
	out := make([]string, 0, len(ws.watched))
	for dir := range ws.watched {
		out = append(out, dir)
	}
	slices.Sort(out)
	return out
}

// watchDirs lists root and every directory below it that is not ignored.
func watchDirs(root string, ignore globset.Set) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return filepath.SkipDir
		}
		if !d.IsDir() {
			return nil
		}
		if path != root {
			rel, relErr := filepath.Rel(root, path)
			if relErr == nil && ignore.Match(filepath.ToSlash(rel)) {
				return filepath.SkipDir
			}
		}
		dirs = append(dirs, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return dirs, nil
}

// newDirs returns the directories to start watching after path was
// created: path and its subdirectories if path is a directory that is
// not ignored, otherwise none.
func newDirs(path, root string, ignore globset.Set) []string {
	rel, err := filepath.Rel(root, path)
	if err != nil || ignore.Match(filepath.ToSlash(rel)) {
		return nil
	}
	dirs, err := watchDirs(path, ignore)
	if err != nil {
		return nil
	}
	return dirs
}

// relevantEvent reports whether an event can change the result: a
// markdown file or a config file was written, created, removed or renamed.
func relevantEvent(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	base := filepath.Base(ev.Name)
	if slices.Contains(config.ConfigFileNames, base) {
		return true
	}
	return strings.EqualFold(filepath.Ext(base), ".md")
}
