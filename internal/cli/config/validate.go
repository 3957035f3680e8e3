package config

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/leapstack-labs/spectralint/pkg/lint"
	"github.com/leapstack-labs/spectralint/pkg/lint/globset"
)

// Formats lists the accepted values of format.
var Formats = []string{"auto", "text", "json", "github", "markdown"}

// Validate checks the configuration. Rule scopes and custom patterns are
// left to the engine, which disables just the affected rule.
func (c *Config) Validate() error {
	var errs []error

	if !slices.Contains(Formats, strings.ToLower(c.Format)) {
		errs = append(errs, fmt.Errorf("format: unknown value %q (expected %s)", c.Format, strings.Join(Formats, ", ")))
	}
	if c.Jobs < 0 {
		errs = append(errs, fmt.Errorf("jobs: must not be negative, got %d", c.Jobs))
	}

	globs := []struct {
		key      string
		patterns []string
	}{
		{"include", c.Include},
		{"ignore", c.Ignore},
		{"ignore_files", c.IgnoreFiles},
		{"historical_files", c.HistoricalFiles},
	}
	for _, g := range globs {
		if err := globset.Validate(g.patterns); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", g.key, err))
		}
	}

	if _, err := c.checkers(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// LintConfig converts the configuration into the form the engine consumes.
func (c *Config) LintConfig() (lint.Config, error) {
	rules, err := c.checkers()
	if err != nil {
		return lint.Config{}, err
	}
	lc := lint.NewConfig()
	lc.Include = append([]string(nil), c.Include...)
	lc.Ignore = append([]string(nil), c.Ignore...)
	lc.IgnoreFiles = append([]string(nil), c.IgnoreFiles...)
	lc.HistoricalFiles = append([]string(nil), c.HistoricalFiles...)
	lc.Strict = c.Strict
	lc.Rules = rules
	lc.CustomPatterns = append([]lint.CustomPattern(nil), c.Checkers.CustomPatterns...)
	return lc, nil
}

// checkers decodes every [checkers.<rule>] table, keyed by rule ID.
func (c *Config) checkers() (map[string]lint.RuleConfig, error) {
	keys := make([]string, 0, len(c.Checkers.Rules))
	for key := range c.Checkers.Rules {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	rules := make(map[string]lint.RuleConfig, len(keys))
	var errs []error
	for _, key := range keys {
		def, ok := lint.GetByConfigKey(key)
		if !ok {
			errs = append(errs, fmt.Errorf("checkers.%s: unknown checker", key))
			continue
		}
		cc, err := decodeChecker(c.Checkers.Rules[key])
		if err != nil {
			errs = append(errs, fmt.Errorf("checkers.%s: %w", key, err))
			continue
		}
		for _, opt := range sortedKeys(cc.Options) {
			if !slices.Contains(def.ConfigKeys, opt) {
				errs = append(errs, fmt.Errorf("checkers.%s: unknown option %q", key, opt))
			}
		}
		rules[def.ID] = lint.RuleConfig{
			Enabled:  cc.Enabled,
			Strict:   cc.Strict,
			Severity: cc.Severity,
			Scope:    cc.Scope,
			Options:  lint.Options(cc.Options),
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return rules, nil
}

func decodeChecker(raw any) (CheckerConfig, error) {
	var cc CheckerConfig
	if _, ok := raw.(map[string]any); !ok {
		return cc, fmt.Errorf("expected a table, got %T", raw)
	}
	dec, err := mapstructure.NewDecoder(decoderConfig(&cc))
	if err != nil {
		return cc, err
	}
	if err := dec.Decode(raw); err != nil {
		return cc, err
	}
	return cc, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
