package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/spectralint/internal/cli/config"
	"github.com/spf13/cobra"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a default .spectralintrc.toml",
		Long: `Create a .spectralintrc.toml with the default settings and commented
examples of every common option.`,
		Example: `  # Initialize in current directory
  spectralint init

  # Initialize another project
  spectralint init ../service

  # Overwrite an existing config
  spectralint init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			r := NewCommandContext(cmd, config.DefaultFormat).Renderer

			path, err := writeDefaultConfig(dir, force)
			if err != nil {
				return err
			}

			r.StatusLine(path, "success", "")
			r.Println("")
			r.Println("Next steps:")
			r.Println("  1. Adjust include to match your instruction files")
			r.Println("  2. Run 'spectralint check' to lint them")
			r.Println("  3. Run 'spectralint rules' to see every checker")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

// writeDefaultConfig writes DefaultTOML into dir, creating dir if needed.
func writeDefaultConfig(dir string, force bool) (string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, config.DefaultFileName)
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("%s already exists. Use --force to overwrite", path)
	}

	if err := os.WriteFile(path, []byte(config.DefaultTOML), 0o600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
