package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/leapstack-labs/spectralint/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	cmd := NewRootCmd()
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	code = Run(context.Background(), cmd, args, errOut)
	return code, out.String(), errOut.String()
}

func TestRunExitCodes(t *testing.T) {
	failing := testutil.WriteProject(t, map[string]string{
		"CLAUDE.md": testutil.Lines("# Project", "See `docs/missing.md`."),
	})
	clean := testutil.WriteProject(t, map[string]string{
		"CLAUDE.md": testutil.Lines("# Project", "", "Use tabs for indentation."),
	})
	badConfig := testutil.WriteProject(t, map[string]string{
		"CLAUDE.md":           "# Project\n",
		".spectralintrc.toml": "fail_on = \"fatal\"\n",
	})

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStderr string
	}{
		{name: "version", args: []string{"version"}, wantCode: ExitOK},
		{name: "clean project", args: []string{"check", clean, "--format", "json"}, wantCode: ExitOK},
		{name: "failing project", args: []string{"check", failing, "--format", "json"}, wantCode: ExitFailed},
		{name: "warning threshold not reached", args: []string{"check", clean, "--fail-on", "warning", "--format", "json"}, wantCode: ExitOK},
		{name: "unknown flag", args: []string{"check", "--no-such-flag"}, wantCode: ExitError, wantStderr: "Error: unknown flag"},
		{name: "unknown command", args: []string{"lint"}, wantCode: ExitError, wantStderr: "Error: unknown command"},
		{name: "bad config", args: []string{"check", badConfig}, wantCode: ExitError, wantStderr: "invalid severity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := run(t, tt.args...)
			assert.Equal(t, tt.wantCode, code, stderr)
			if tt.wantStderr != "" {
				assert.Contains(t, stderr, tt.wantStderr)
			}
			if tt.wantCode == ExitFailed {
				assert.NotContains(t, stderr, "Error:", "a failed verdict is not an error")
			}
		})
	}
}

func TestVerboseLogsToStderr(t *testing.T) {
	root := testutil.WriteProject(t, map[string]string{"CLAUDE.md": "# Project\n\nUse tabs for indentation.\n"})

	code, stdout, stderr := run(t, "check", root, "--format", "json", "--verbose")
	require.Equal(t, ExitOK, code, stderr)
	assert.Contains(t, stderr, "level=DEBUG")
	assert.NotContains(t, stdout, "level=DEBUG")
}

func TestCompletion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			code, stdout, _ := run(t, "completion", shell)
			require.Equal(t, ExitOK, code)
			assert.Contains(t, stdout, "spectralint")
		})
	}

	code, _, stderr := run(t, "completion", "tcsh")
	assert.Equal(t, ExitError, code)
	assert.Contains(t, stderr, "Error:")
}

func TestRootVersionFlag(t *testing.T) {
	code, stdout, _ := run(t, "--version")
	require.Equal(t, ExitOK, code)
	assert.Equal(t, "spectralint "+Version+"\n", stdout)
}
