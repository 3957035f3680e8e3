// Package lint provides the rule framework of spectralint.
//
// # Architecture
//
// The lint tree is split into small packages, leaves first:
//
//  1. globset: case-insensitive glob sets used for include, ignore and scope
//  2. document: the per-file structural parser and suppression timeline
//  3. corpus: the immutable set of parsed documents for one run
//  4. Root package (pkg/lint/): diagnostics, severities, rule definitions,
//     the registry and rule resolution
//  5. discovery: project walk producing the file list
//  6. crossfile and rules/...: the rule implementations
//  7. engine: the two-phase runner and the aggregator
//
// # Rule Kinds
//
// A rule is either per-file or cross-file. Per-file rules run inside the
// parse worker of each file. Cross-file rules run once every document is
// parsed and the corpus is frozen:
//
//	var DeadReference = lint.RuleDef{
//		ID:        "dead-reference",
//		Group:     "references",
//		Severity:  lint.SeverityError,
//		Kind:      lint.KindPerFile,
//		CheckFile: checkDeadReference,
//	}
//
//	func init() {
//		lint.Register(DeadReference)
//	}
//
// # Rule Registration
//
// Rules are registered via init() functions when their packages are imported:
//
//	import _ "github.com/leapstack-labs/spectralint/pkg/lint/rules"
//
// # Resolution
//
// Resolve applies a Config to the registered definitions: it drops disabled
// and strict-only rules, compiles scopes and applies severity overrides.
//
//	cfg := lint.NewConfig()
//	cfg.Strict = true
//	set, problems := lint.Resolve(cfg)
package lint
