// Package custom builds rules from user-defined regex patterns. Custom
// rules are not registered globally; the engine builds them per run from
// the configuration.
package custom

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/leapstack-labs/spectralint/pkg/lint"
)

// Group is the group of every custom rule.
const Group = "custom"

// Rules compiles patterns into per-file rule definitions with IDs
// "custom:<name>". A pattern that cannot be used is skipped and reported
// as a rule-config diagnostic.
func Rules(patterns []lint.CustomPattern) ([]lint.RuleDef, []lint.Diagnostic) {
	var (
		defs     []lint.RuleDef
		problems []lint.Diagnostic
		seen     = make(map[string]bool)
	)
	for i, p := range patterns {
		def, err := build(p)
		if err == nil && seen[def.ID] {
			err = fmt.Errorf("duplicate name %q", p.Name)
		}
		if err != nil {
			problems = append(problems, lint.ConfigDiagnostic(
				fmt.Sprintf("custom pattern #%d disabled: %v", i+1, err)))
			continue
		}
		seen[def.ID] = true
		defs = append(defs, def)
	}
	return defs, problems
}

func build(p lint.CustomPattern) (lint.RuleDef, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return lint.RuleDef{}, fmt.Errorf("name is required")
	}

	sev := lint.SeverityWarning
	if p.Severity != "" {
		var ok bool
		if sev, ok = lint.ParseSeverity(p.Severity); !ok {
			return lint.RuleDef{}, fmt.Errorf("%s: invalid severity %q", name, p.Severity)
		}
	}

	re, err := regexp.Compile(p.Pattern)
	if err != nil {
		return lint.RuleDef{}, fmt.Errorf("%s: invalid pattern: %w", name, err)
	}

	message := p.Message
	if message == "" {
		message = fmt.Sprintf("Custom pattern %q matched", name)
	}

	return lint.RuleDef{
		ID:          lint.CustomRulePrefix + name,
		Name:        "custom." + name,
		Group:       Group,
		Description: message,
		Severity:    sev,
		Kind:        lint.KindPerFile,
		CheckFile:   matcher(re, sev, message),
	}, nil
}

func matcher(re *regexp.Regexp, sev lint.Severity, message string) lint.FileCheck {
	return func(ctx *lint.FileContext) []lint.Diagnostic {
		var diags []lint.Diagnostic
		for _, l := range ctx.Doc.NonCodeLines() {
			if re.MatchString(l.Text) {
				diags = append(diags, ctx.Diag(l.Num, sev, message))
			}
		}
		return diags
	}
}
