package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/leapstack-labs/spectralint/internal/testutil"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

var lines = testutil.Lines

// execute runs sub under a root command carrying the same persistent
// flags as the real one.
func execute(t *testing.T, sub *cobra.Command, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	root := &cobra.Command{Use: "spectralint", SilenceUsage: true, SilenceErrors: true}
	root.PersistentFlags().String("config", "", "")
	root.PersistentFlags().BoolP("verbose", "v", false, "")
	root.AddCommand(sub)

	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetArgs(args)
	err = root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestCommandMetadata(t *testing.T) {
	tests := []struct {
		cmd   *cobra.Command
		use   string
		flags []string
	}{
		{NewCheckCommand(), "check [path]", []string{"format", "fail-on", "strict", "jobs", "watch"}},
		{NewRulesCommand(), "rules [rule-id]", []string{"group", "details", "format"}},
		{NewInitCommand(), "init [directory]", []string{"force"}},
		{NewVersionCommand("1.0.0", "abc", "today"), "version", nil},
	}
	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short, "Short should not be empty")
			assert.NotEmpty(t, tt.cmd.Long, "Long should not be empty")
			for _, flag := range tt.flags {
				assert.NotNil(t, tt.cmd.Flags().Lookup(flag), "flag %q should exist", flag)
			}
		})
	}
}
