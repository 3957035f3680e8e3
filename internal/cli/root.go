// Package cli provides the command-line interface for spectralint.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/leapstack-labs/spectralint/internal/cli/commands"
	"github.com/leapstack-labs/spectralint/internal/cli/config"
	"github.com/spf13/cobra"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// Exit codes returned by Run.
const (
	ExitOK     = 0
	ExitFailed = 1 // lint verdict failed
	ExitError  = 2 // usage, configuration or I/O error
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "spectralint",
		Short: "Static analysis for AI agent instruction files",
		Long: `spectralint lints the markdown instruction files that steer AI coding
agents (CLAUDE.md, AGENTS.md, .claude/**, copilot instructions).

It reports dead file references, vague or non-deterministic directives,
naming drift and conflicting tables across files, credential leaks and
other problems that make agent behavior unpredictable.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			logger := newLogger(cmd.ErrOrStderr(), verbose)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, config.LoggerKey(), logger))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Global persistent flags
	rootCmd.PersistentFlags().String("config", "", "config file (default: <path>/.spectralintrc.toml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output (debug logging on stderr)")

	// Add subcommands
	rootCmd.AddCommand(commands.NewCheckCommand())
	rootCmd.AddCommand(commands.NewRulesCommand())
	rootCmd.AddCommand(commands.NewInitCommand())
	rootCmd.AddCommand(commands.NewVersionCommand(Version, GitCommit, BuildDate))
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// newLogger builds the stderr logger: debug when verbose, warnings otherwise.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Execute runs the root command with os.Args and returns the process
// exit code.
func Execute(ctx context.Context) int {
	return Run(ctx, NewRootCmd(), os.Args[1:], os.Stderr)
}

// Run executes cmd with args. Errors other than a failed lint verdict
// are printed to errOut.
func Run(ctx context.Context, cmd *cobra.Command, args []string, errOut io.Writer) int {
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, commands.ErrLintFailed):
		return ExitFailed
	default:
		_, _ = fmt.Fprintf(errOut, "Error: %v\n", err)
		return ExitError
	}
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for spectralint.

To load completions:

Bash:
  $ source <(spectralint completion bash)

Zsh:
  $ spectralint completion zsh > "${fpath[1]}/_spectralint"

Fish:
  $ spectralint completion fish | source

PowerShell:
  PS> spectralint completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}
