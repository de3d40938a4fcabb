// Package cmdutil provides shared command utilities: flag groups, project
// selection, and output helpers.
package cmdutil

import (
	"github.com/spf13/cobra"

	"github.com/limgen/cli/internal/output"
)

// OutputFlags holds the -o flag for commands that print structured data.
type OutputFlags struct {
	Format string
}

// AddTo registers the output flag on the given cobra command.
func (f *OutputFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Format, "output", "o", string(output.FormatText),
		"Output format: text, yaml, json")
}

// Parse validates the flag value.
func (f *OutputFlags) Parse() (output.Format, error) {
	return output.ParseFormat(f.Format)
}

// ProjectFlags holds flags that pick an existing project (env-pull).
type ProjectFlags struct {
	Project string
	Stack   string
}

// AddTo registers the project selector flags on the given cobra command.
func (f *ProjectFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Project, "project", "p", "",
		"Project name (prompted when omitted and more than one exists)")
	cmd.Flags().StringVarP(&f.Stack, "stack", "s", "",
		"Pulumi stack (prompted when omitted)")
}
