// Package globset matches root-relative paths against case-insensitive
// glob patterns.
package globset

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Set is a compiled list of glob patterns. The zero value is an empty set.
type Set struct {
	patterns []string
}

// New validates and normalizes patterns. Patterns are lowercased so that
// matching is case-insensitive on every platform.
func New(patterns []string) (Set, error) {
	var s Set
	for _, p := range patterns {
		norm := normalize(p)
		if norm == "" {
			continue
		}
		if !doublestar.ValidatePattern(norm) {
			return Set{}, fmt.Errorf("invalid glob %q", p)
		}
		s.patterns = append(s.patterns, norm)
	}
	return s, nil
}

// MustNew is like New but panics on an invalid pattern.
func MustNew(patterns ...string) Set {
	s, err := New(patterns)
	if err != nil {
		panic(err)
	}
	return s
}

// Validate reports the first invalid pattern.
func Validate(patterns []string) error {
	_, err := New(patterns)
	return err
}

// Empty reports whether the set has no patterns.
func (s Set) Empty() bool {
	return len(s.patterns) == 0
}

// Patterns returns the normalized patterns.
func (s Set) Patterns() []string {
	return append([]string(nil), s.patterns...)
}

// Match reports whether rel, or its base name, matches any pattern.
// An empty set matches nothing.
func (s Set) Match(rel string) bool {
	if len(s.patterns) == 0 {
		return false
	}
	rel = normalize(rel)
	base := path.Base(rel)
	for _, p := range s.patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(p, base); ok {
			return true
		}
	}
	return false
}

// Covers is Match with an empty set covering every path. Rule scopes use
// it: no scope means all discovered files.
func (s Set) Covers(rel string) bool {
	return len(s.patterns) == 0 || s.Match(rel)
}

func normalize(p string) string {
	p = strings.TrimSpace(p)
	p = filepath.ToSlash(p)
	p = strings.TrimPrefix(p, "./")
	return strings.ToLower(p)
}
