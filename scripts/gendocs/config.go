package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/spectralint/internal/cli/config"
	"github.com/leapstack-labs/spectralint/pkg/lint"
)

// ConfigField documents one top-level configuration key.
type ConfigField struct {
	Name        string
	Type        string
	Default     string
	Description string
}

func configFields() []ConfigField {
	return []ConfigField{
		{"include", "[]string", quoteList(lint.DefaultInclude), "Globs selecting instruction files, relative to the project root"},
		{"ignore", "[]string", quoteList(lint.DefaultIgnore), "Directory globs skipped while walking"},
		{"ignore_files", "[]string", "[]", "File globs removed after include matched"},
		{"historical_files", "[]string", quoteList(lint.DefaultHistoricalFiles), "Files whose dated statements are expected (changelogs, retros)"},
		{"strict", "bool", "false", "Enable strict-only checkers"},
		{"format", "string", config.DefaultFormat, "Report format: " + strings.Join(config.Formats, ", ")},
		{"fail_on", "string", config.DefaultFailOn.String(), "Minimum severity that fails the run"},
		{"jobs", "int", "0", "Files analyzed in parallel; 0 means one per CPU"},
	}
}

var checkerFields = []ConfigField{
	{"enabled", "bool", "rule default", "Run or skip the rule"},
	{"strict", "bool", "false", "Run a strict-only rule without --strict"},
	{"severity", "string", "rule default", "Override the severity of every diagnostic"},
	{"scope", "[]string", "[]", "Only check files matching these globs"},
}

var customPatternFields = []ConfigField{
	{"name", "string", "", "Rule name; diagnostics use the ID " + InlineCode(lint.CustomRulePrefix+"<name>")},
	{"pattern", "string", "", "Regular expression matched against each line outside code blocks"},
	{"message", "string", "", "Diagnostic message"},
	{"severity", "string", "warning", "info, warning or error"},
}

// generateConfigDocs writes the configuration reference.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating config docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "configuration.md"), renderConfigDoc(), 0600); err != nil {
		return fmt.Errorf("failed to generate configuration.md: %w", err)
	}
	log.Printf("  Generated configuration.md")
	return nil
}

func renderConfigDoc() []byte {
	w := NewMarkdownWriter()
	w.Frontmatter("Configuration", "spectralint configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	var names []string
	for _, n := range config.ConfigFileNames {
		names = append(names, InlineCode(n))
	}
	w.Paragraph(fmt.Sprintf("spectralint reads the first of %s found in the project root. %s writes a starter file.",
		strings.Join(names, ", "), InlineCode("spectralint init")))

	w.Header(2, "Top-Level Settings")
	writeFieldTable(w, configFields())

	w.Header(2, "Checkers")
	w.Paragraph(fmt.Sprintf("Each rule is configured in a %s table named by its config key, the rule ID with dashes replaced by underscores. Every table accepts:",
		InlineCode("[checkers.<key>]")))
	writeFieldTable(w, checkerFields)

	var rows [][]string
	for _, def := range lint.AllRules() {
		if len(def.ConfigKeys) == 0 {
			continue
		}
		rows = append(rows, []string{
			InlineCode(lint.ConfigKey(def.ID)),
			InlineCode(strings.Join(def.ConfigKeys, ", ")),
		})
	}
	w.Header(3, "Rule Options")
	w.Table([]string{"Table", "Options"}, rows)

	w.Header(2, "Custom Patterns")
	w.Paragraph("Project-specific rules are declared as " + InlineCode("[[checkers.custom_patterns]]") + " entries:")
	writeFieldTable(w, customPatternFields)

	w.Header(2, "Default File")
	w.CodeBlock("toml", config.DefaultTOML)

	return w.Bytes()
}

func writeFieldTable(w *MarkdownWriter, fields []ConfigField) {
	var rows [][]string
	for _, f := range fields {
		def := f.Default
		if def == "" {
			def = "-"
		} else {
			def = InlineCode(def)
		}
		rows = append(rows, []string{InlineCode(f.Name), f.Type, def, cleanDescription(f.Description)})
	}
	w.Table([]string{"Key", "Type", "Default", "Description"}, rows)
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
