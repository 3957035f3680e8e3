package crossfile

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/leapstack-labs/spectralint/pkg/lint"
	"github.com/leapstack-labs/spectralint/pkg/lint/document"
)

func init() {
	lint.Register(EnumDrift)
}

// EnumDrift reports tables with the same header set whose columns disagree
// on their values across files.
var EnumDrift = lint.RuleDef{
	ID:          "enum-drift",
	Name:        "crossfile.enum_drift",
	Group:       "crossfile",
	Description: "Tables with identical headers list different values across files",
	Severity:    lint.SeverityWarning,
	Kind:        lint.KindCrossFile,
	CheckCorpus: checkEnumDrift,
	Rationale: `Parallel tables (status lists, routing tables, role matrices) drift when
one copy is edited and the others are not. Tables are compared only when their
normalized header sets are identical; column order does not matter. Tables in
historical files are ignored.`,
	BadExample: `CLAUDE.md:  | Status | Owner |   pending, done
AGENTS.md:  | Status | Owner |   archived, done`,
	GoodExample: `CLAUDE.md:  | Status | Owner |   pending, done, archived
AGENTS.md:  | Status | Owner |   pending, done, archived`,
	Fix: "Add the missing values, or rename a column if the tables describe different things.",
}

// maxValueLen bounds how much of a cell is quoted in a message.
const maxValueLen = 50

type tableRef struct {
	file  string
	table document.Table
}

type valueSource struct {
	files []string
	first *tableRef // first peer table holding the value
}

func checkEnumDrift(ctx *lint.CorpusContext) []lint.Diagnostic {
	groups := make(map[string][]*tableRef)
	var order []string
	for _, doc := range ctx.Docs {
		if ctx.IsHistorical(doc.RelPath) {
			continue
		}
		for _, t := range doc.Tables {
			if len(t.Rows) == 0 || t.HasDuplicateHeaders() {
				continue
			}
			key := headerKey(t.Header)
			if _, ok := groups[key]; !ok {
				order = append(order, key)
			}
			groups[key] = append(groups[key], &tableRef{file: doc.RelPath, table: t})
		}
	}

	var diags []lint.Diagnostic
	for _, key := range order {
		group := groups[key]
		if distinctFiles(group) < 2 {
			continue
		}
		for _, ref := range group {
			diags = append(diags, tableDrift(ctx.RuleID, ref, group)...)
		}
	}
	return diags
}

// tableDrift compares one table against its peers in other files, column
// by column, in the table's own column order.
func tableDrift(ruleID string, ref *tableRef, group []*tableRef) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for col, name := range ref.table.Header {
		own := make(map[string]bool)
		for _, v := range ref.table.Values(col) {
			own[v] = true
		}

		var missing []string
		sources := make(map[string]*valueSource)
		for _, peer := range group {
			if peer.file == ref.file {
				continue
			}
			peerCol := peer.table.Column(name)
			for _, v := range peer.table.Values(peerCol) {
				if own[v] {
					continue
				}
				src := sources[v]
				if src == nil {
					src = &valueSource{first: peer}
					sources[v] = src
					missing = append(missing, v)
				}
				if !slices.Contains(src.files, peer.file) {
					src.files = append(src.files, peer.file)
				}
			}
		}
		if len(missing) == 0 {
			continue
		}

		parts := make([]string, len(missing))
		for i, v := range missing {
			parts[i] = fmt.Sprintf("%q (found in %s)", truncateValue(v), strings.Join(sources[v].files, ", "))
		}
		msg := fmt.Sprintf("Column %q is missing value(s) %s", ref.table.RawHeader[col], strings.Join(parts, ", "))
		first := sources[missing[0]].first
		diags = append(diags, lint.NewDiagnostic(ruleID, lint.SeverityWarning, ref.file, ref.table.StartLine, msg).
			WithRelated(first.file, first.table.StartLine))
	}
	return diags
}

func headerKey(header []string) string {
	sorted := append([]string(nil), header...)
	sort.Strings(sorted)
	return strings.Join(sorted, "\x00")
}

func distinctFiles(group []*tableRef) int {
	seen := make(map[string]bool)
	for _, r := range group {
		seen[r.file] = true
	}
	return len(seen)
}

func truncateValue(v string) string {
	r := []rune(v)
	if len(r) <= maxValueLen {
		return v
	}
	return string(r[:maxValueLen]) + "..."
}
