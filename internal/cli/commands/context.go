package commands

import (
	"log/slog"

	"github.com/leapstack-labs/spectralint/internal/cli/config"
	"github.com/leapstack-labs/spectralint/internal/cli/output"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext whose renderer writes to the
// command's output streams in the given format. An unknown format falls
// back to auto; formats are validated when flags and config are loaded.
func NewCommandContext(cmd *cobra.Command, format string) *CommandContext {
	mode, err := output.ParseMode(format)
	if err != nil {
		mode = output.ModeAuto
	}
	return &CommandContext{
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode),
	}
}
