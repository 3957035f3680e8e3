package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/leapstack-labs/spectralint/internal/cli"
	"github.com/leapstack-labs/spectralint/internal/cli/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// generateCLIDocs writes index.md plus one page per visible command.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	root := cli.NewRootCmd()
	pages := map[string][]byte{"index.md": renderCLIIndex(root)}
	for _, cmd := range visibleCommands(root) {
		pages[cmd.Name()+".md"] = renderCommandPage(cmd)
	}

	for name, content := range pages {
		if err := os.WriteFile(filepath.Join(outDir, name), content, 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		log.Printf("  Generated %s", name)
	}
	return nil
}

// visibleCommands returns the documented subcommands of root.
func visibleCommands(root *cobra.Command) []*cobra.Command {
	var cmds []*cobra.Command
	for _, cmd := range root.Commands() {
		if cmd.Hidden || cmd.Name() == "help" || cmd.Name() == "__complete" {
			continue
		}
		cmds = append(cmds, cmd)
	}
	return cmds
}

func renderCLIIndex(root *cobra.Command) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter("CLI Reference", "Commands, flags and exit codes of spectralint")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph(root.Short + ". " + cleanDescription(strings.SplitN(root.Long, "\n\n", 2)[0]))
	w.CodeBlock("bash", "go install github.com/leapstack-labs/spectralint/cmd/spectralint@latest\nspectralint check")

	var rows [][]string
	for _, cmd := range visibleCommands(root) {
		rows = append(rows, []string{
			fmt.Sprintf("[%s](%s.md)", InlineCode(cmd.Name()), cmd.Name()),
			cleanDescription(cmd.Short),
		})
	}
	w.Header(2, "Commands")
	w.Table([]string{"Command", "Description"}, rows)

	w.Header(2, "Persistent Flags")
	writeFlagsTable(w, root.PersistentFlags())

	w.Header(2, "Environment")
	w.Paragraph(fmt.Sprintf("Configuration keys can also come from %s variables; %s separates nested keys. Variables that name no configuration key are ignored. Precedence, highest first: flags, environment, config file, defaults.",
		InlineCode(config.EnvPrefix+"*"), InlineCode("__")))
	w.Table([]string{"Variable", "Config key"}, [][]string{
		{InlineCode(config.EnvPrefix + "STRICT"), InlineCode("strict")},
		{InlineCode(config.EnvPrefix + "FAIL_ON"), InlineCode("fail_on")},
		{InlineCode(config.EnvPrefix + "FORMAT"), InlineCode("format")},
		{InlineCode(config.EnvPrefix + "IGNORE"), InlineCode("ignore") + ", comma separated"},
		{InlineCode(config.EnvPrefix + "CHECKERS__FILE_SIZE__MAX_LINES"), InlineCode("checkers.file_size.max_lines")},
	})

	w.Header(2, "Exit Codes")
	w.Table([]string{"Code", "Meaning"}, [][]string{
		{InlineCode(strconv.Itoa(cli.ExitOK)), "No diagnostic reached the fail-on severity"},
		{InlineCode(strconv.Itoa(cli.ExitFailed)), "At least one diagnostic reached the fail-on severity"},
		{InlineCode(strconv.Itoa(cli.ExitError)), "Bad usage, invalid configuration or an I/O failure; the cause is printed on stderr"},
	})

	return w.Bytes()
}

func renderCommandPage(cmd *cobra.Command) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter(cmd.Name(), cmd.Short)
	w.GeneratedMarker()

	w.Header(1, cmd.Name())
	desc := cmd.Long
	if desc == "" {
		desc = cmd.Short
	}
	w.Paragraph(desc)

	w.Header(2, "Usage")
	w.CodeBlock("bash", cmd.UseLine())

	if len(cmd.Aliases) > 0 {
		names := make([]string, len(cmd.Aliases))
		for i, a := range cmd.Aliases {
			names[i] = InlineCode("spectralint " + a)
		}
		w.Paragraph("Also available as " + strings.Join(names, ", ") + ".")
	}

	if cmd.HasLocalFlags() {
		w.Header(2, "Flags")
		writeFlagsTable(w, cmd.LocalFlags())
	}
	if cmd.HasInheritedFlags() {
		w.Header(2, "Persistent Flags")
		writeFlagsTable(w, cmd.InheritedFlags())
	}

	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", dedent(cmd.Example))
	}
	return w.Bytes()
}

// writeFlagsTable lists the visible flags of a set.
func writeFlagsTable(w *MarkdownWriter, flags *pflag.FlagSet) {
	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if !f.Hidden {
			rows = append(rows, flagRow(f))
		}
	})
	w.Table([]string{"Flag", "Short", "Default", "Description"}, rows)
}

func flagRow(f *pflag.Flag) []string {
	short := ""
	if f.Shorthand != "" {
		short = InlineCode("-" + f.Shorthand)
	}
	def := f.DefValue
	if f.Value.Type() == "string" && def != "" {
		def = InlineCode(def)
	}
	return []string{InlineCode("--" + f.Name), short, def, cleanDescription(f.Usage)}
}

// dedent strips the indentation shared by every non-blank line.
func dedent(text string) string {
	lines := strings.Split(strings.Trim(text, "\n"), "\n")
	common := -1
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		if n := len(line) - len(trimmed); common < 0 || n < common {
			common = n
		}
	}
	for i, line := range lines {
		if len(line) >= common && common > 0 {
			lines[i] = line[common:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.Join(lines, "\n")
}
