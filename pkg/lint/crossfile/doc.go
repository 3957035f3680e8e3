// Package crossfile contains the rules that compare documents with each
// other. They run in the second phase, over the frozen corpus.
//
// Rules in this package:
//   - naming-inconsistency: one identifier spelled differently across files
//   - enum-drift: parallel tables disagreeing on a column's value set
package crossfile
