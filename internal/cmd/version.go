package cmd

import (
	"github.com/spf13/cobra"

	"github.com/limgen/cli/internal/cmdtypes"
	"github.com/limgen/cli/internal/output"
	"github.com/limgen/cli/internal/shell"
	"github.com/limgen/cli/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(_ *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show limgen version information.

Displays:
  - limgen version, commit, and build date
  - CUE SDK version (embedded in limgen)
  - pulumi binary version and path, when installed`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			pulumiInfo := version.DetectPulumiBinary(c.Context(), shell.ExecRunner{})
			output.Println(version.FullVersionString(version.Get(), pulumiInfo))
			return nil
		},
	}
}
