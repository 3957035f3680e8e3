package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/spectralint/internal/cli/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInitCommand(t *testing.T) {
	tests := []struct {
		name     string
		existing string // content of a config file present before init
		args     []string
		wantErr  bool
	}{
		{name: "init empty directory"},
		{name: "init existing config without force", existing: "strict = true\n", wantErr: true},
		{name: "init existing config with force", existing: "strict = true\n", args: []string{"--force"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, config.DefaultFileName)
			if tt.existing != "" {
				require.NoError(t, os.WriteFile(path, []byte(tt.existing), 0o600))
			}

			stdout, _, err := execute(t, NewInitCommand(), append([]string{"init", dir}, tt.args...)...)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "already exists")
				content, readErr := os.ReadFile(path)
				require.NoError(t, readErr)
				assert.Equal(t, tt.existing, string(content), "existing config must be kept")
				return
			}
			require.NoError(t, err)
			assert.Contains(t, stdout, config.DefaultFileName)

			content, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, config.DefaultTOML, string(content))
		})
	}
}

func TestInitCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "new", "project")
	_, _, err := execute(t, NewInitCommand(), "init", dir)
	require.NoError(t, err)

	cfg, err := config.Load(config.LoadOptions{Root: dir})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, config.DefaultFileName), cfg.ConfigFile)
}
