package structure

import (
	"fmt"

	"github.com/leapstack-labs/spectralint/pkg/lint"
)

func init() {
	lint.Register(FileSize)
}

// Defaults for file-size.
const (
	DefaultWarnLines = 300
	DefaultMaxLines  = 500
)

// FileSize flags instruction files long enough to degrade model attention.
var FileSize = lint.RuleDef{
	ID:              "file-size",
	Name:            "structure.file_size",
	Group:           "structure",
	Description:     "Instruction file is too long",
	Severity:        lint.SeverityWarning,
	Kind:            lint.KindPerFile,
	CheckFile:       checkFileSize,
	ConfigKeys:      []string{"warn_lines", "max_lines"},
	ValidateOptions: validateFileSizeOptions,
	Rationale: `Models attend poorly to the middle of long contexts. A file reaching
max_lines is a warning; reaching warn_lines is an info.`,
	Fix: "Split into focused sub-files and use file references for progressive disclosure.",
}

func validateFileSizeOptions(opts lint.Options) []string {
	warn := opts.Int("warn_lines", DefaultWarnLines)
	maxLines := opts.Int("max_lines", DefaultMaxLines)
	if warn > maxLines {
		return []string{fmt.Sprintf("warn_lines (%d) is greater than max_lines (%d)", warn, maxLines)}
	}
	return nil
}

func checkFileSize(ctx *lint.FileContext) []lint.Diagnostic {
	warn := ctx.Options.Int("warn_lines", DefaultWarnLines)
	maxLines := ctx.Options.Int("max_lines", DefaultMaxLines)
	n := ctx.Doc.NumLines()

	switch {
	case n >= maxLines:
		return []lint.Diagnostic{ctx.Diag(1, lint.SeverityWarning, fmt.Sprintf(
			`File has %d lines (exceeds %d line limit). Large instruction files cause LLM "lost in the middle" degradation.`,
			n, maxLines))}
	case n >= warn:
		return []lint.Diagnostic{ctx.Diag(1, lint.SeverityInfo, fmt.Sprintf(
			"File has %d lines (approaching %d line limit). Consider splitting to avoid LLM context degradation.",
			n, maxLines))}
	}
	return nil
}
