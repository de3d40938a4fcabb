// Package project provides the `limgen project` command group.
package project

import (
	"github.com/spf13/cobra"

	"github.com/limgen/cli/internal/cmdtypes"
)

// NewProjectCmd creates the project command group.
func NewProjectCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "project",
		Short: "Inspect generated projects",
		Long:  `Commands for listing and inspecting the projects limgen has generated.`,
	}

	c.AddCommand(
		NewListCmd(cfg),
		NewShowCmd(cfg),
	)

	return c
}
