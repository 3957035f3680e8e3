package lint

import (
	"fmt"

	"github.com/leapstack-labs/spectralint/pkg/lint/globset"
)

// RuleSet is the ordered list of active rules for one run.
type RuleSet struct {
	PerFile   []Rule
	CrossFile []Rule
}

// Len returns the total number of active rules.
func (s *RuleSet) Len() int {
	return len(s.PerFile) + len(s.CrossFile)
}

// IDs returns the IDs of all active rules in evaluation order.
func (s *RuleSet) IDs() []string {
	ids := make([]string, 0, s.Len())
	for _, r := range s.PerFile {
		ids = append(ids, r.ID())
	}
	for _, r := range s.CrossFile {
		ids = append(ids, r.ID())
	}
	return ids
}

// Resolve turns the registered definitions plus extra (custom) definitions
// into the active rule set. Problems that disable a rule, or that a rule
// reports about its options, come back as rule-config diagnostics.
func Resolve(cfg Config, extra ...RuleDef) (*RuleSet, []Diagnostic) {
	defs := append(AllRules(), extra...)
	sortDefs(defs)

	set := &RuleSet{}
	var problems []Diagnostic
	for _, def := range defs {
		if err := def.Validate(); err != nil {
			problems = append(problems, ConfigDiagnostic(err.Error()))
			continue
		}
		if !cfg.IsActive(def) {
			continue
		}
		rc := cfg.Rule(def.ID)

		scope, err := globset.New(rc.Scope)
		if err != nil {
			problems = append(problems, ConfigDiagnostic(
				fmt.Sprintf("rule %s disabled: invalid scope: %v", def.ID, err)))
			continue
		}

		if def.ValidateOptions != nil {
			for _, msg := range def.ValidateOptions(rc.Options) {
				problems = append(problems, ConfigDiagnostic(fmt.Sprintf("rule %s: %s", def.ID, msg)))
			}
		}

		rule := Rule{
			Def:      def,
			Severity: rc.Severity,
			Scope:    scope,
			Options:  rc.Options,
		}
		if def.Kind == KindCrossFile {
			set.CrossFile = append(set.CrossFile, rule)
		} else {
			set.PerFile = append(set.PerFile, rule)
		}
	}
	return set, problems
}
