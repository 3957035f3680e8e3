// Package rules provides the built-in spectralint rules.
//
// Rules are organized by group:
//   - references: dead file references and time-sensitive mentions
//   - clarity: vague, unfinished or one-sided instructions
//   - security: secrets, destructive commands and injection vectors
//   - structure: file size, heading outline and journal-like content
//   - crossfile: naming and enum consistency across the whole corpus
//
// Custom regex rules are built per run by the custom subpackage and are
// not part of the registry.
//
// To register all rules with the global lint registry, import this package
// with a blank identifier:
//
//	import _ "github.com/leapstack-labs/spectralint/pkg/lint/rules"
//
// Individual groups can also be imported:
//
//	import _ "github.com/leapstack-labs/spectralint/pkg/lint/rules/security"
package rules
