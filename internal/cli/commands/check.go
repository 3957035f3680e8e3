package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/leapstack-labs/spectralint/internal/cli/config"
	"github.com/leapstack-labs/spectralint/pkg/lint/engine"
	"github.com/spf13/cobra"

	// Register the built-in rules.
	_ "github.com/leapstack-labs/spectralint/pkg/lint/rules"
)

// ErrLintFailed is returned when a run has diagnostics at or above the
// fail-on threshold. The report has already been printed.
var ErrLintFailed = errors.New("lint failed")

// CheckOptions holds the flags of the check command that are not
// configuration.
type CheckOptions struct {
	Watch bool
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}
	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Lint the instruction files of a project",
		Long: `Lint the markdown instruction files under a project root.

Files are selected by the include, ignore and ignore_files settings of
.spectralintrc.toml (or .spectralintrc.yaml) in the project root. Flags
override the config file and SPECTRALINT_* environment variables.

The command exits with status 1 when any diagnostic is at or above the
--fail-on severity.`,
		Example: `  # Lint the current directory
  spectralint check

  # Lint another project and fail on warnings
  spectralint check ../service --fail-on warning

  # Enable opinionated checkers and annotate a GitHub pull request
  spectralint check --strict --format github

  # Re-run whenever an instruction file changes
  spectralint check --watch`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}
			configFile, _ := cmd.Flags().GetString("config")

			load := func() (*config.Config, error) {
				return config.Load(config.LoadOptions{Root: root, File: configFile, Flags: cmd.Flags()})
			}
			cfg, err := load()
			if err != nil {
				return err
			}
			cmdCtx := NewCommandContext(cmd, cfg.Format)
			cmdCtx.Logger.Debug("configuration loaded",
				"root", cfg.Root,
				"file", cfg.ConfigFile,
				"strict", cfg.Strict,
				"fail_on", cfg.FailOn.String())

			if opts.Watch {
				w := &Watcher{
					Root:   cfg.Root,
					Ignore: cfg.Ignore,
					Load:   load,
					Ctx:    cmdCtx,
				}
				return w.Run(cmd.Context())
			}

			report, err := RunCheck(cmd.Context(), cmdCtx, cfg)
			if err != nil {
				return err
			}
			if report.Failing {
				return ErrLintFailed
			}
			return nil
		},
	}

	cmd.Flags().StringP("format", "f", config.DefaultFormat, "Output format: auto, text, json, github, markdown")
	cmd.Flags().String("fail-on", config.DefaultFailOn.String(), "Minimum severity that fails the run: info, warning, error")
	cmd.Flags().Bool("strict", false, "Enable opinionated checkers")
	cmd.Flags().IntP("jobs", "j", 0, "Files analyzed in parallel (default: number of CPUs)")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-run when files change")

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return config.Formats, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("fail-on", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"info", "warning", "error"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// RunCheck runs the engine once with cfg and renders the report.
func RunCheck(ctx context.Context, cmdCtx *CommandContext, cfg *config.Config) (*engine.Report, error) {
	lintCfg, err := cfg.LintConfig()
	if err != nil {
		return nil, err
	}
	eng := engine.New(engine.Config{
		Root:   cfg.Root,
		Lint:   lintCfg,
		FailOn: cfg.FailOn,
		Jobs:   cfg.Jobs,
		Logger: cmdCtx.Logger,
	})
	report, err := eng.Run(ctx)
	if err != nil {
		return nil, err
	}
	if err := cmdCtx.Renderer.Report(report); err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}
	return report, nil
}
