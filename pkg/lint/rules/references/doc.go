// Package references contains rules about file references and
// time-sensitive mentions.
//
// Rules in this package:
//   - dead-reference: referenced markdown file does not exist
//   - stale-reference: instruction depends on a date or a deprecation
package references
