package project

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/limgen/cli/internal/cmdtypes"
	"github.com/limgen/cli/internal/cmdutil"
	"github.com/limgen/cli/internal/metadata"
	"github.com/limgen/cli/internal/output"
)

// NewListCmd creates the project list command.
func NewListCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var outputFlags cmdutil.OutputFlags

	c := &cobra.Command{
		Use:   "list",
		Short: "List projects in the infrastructure directory",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			format, err := outputFlags.Parse()
			if err != nil {
				return cmdutil.Fail(err)
			}
			return cmdutil.Fail(runList(c.OutOrStdout(), cfg.Store(), format))
		},
	}

	outputFlags.AddTo(c)
	return c
}

func runList(w io.Writer, store *metadata.Store, format output.Format) error {
	names, err := store.List()
	if err != nil {
		return err
	}

	sections := make([]*metadata.Section, 0, len(names))
	for _, name := range names {
		section, err := store.ReadSection(name)
		if err != nil {
			output.Warn("skipping project", "project", name, "error", err)
			continue
		}
		sections = append(sections, section)
	}

	if format != output.FormatText {
		return output.WriteStructured(w, sections, format)
	}

	if len(sections) == 0 {
		fmt.Fprintf(w, "No projects in %s\n", store.ProjectsDir())
		return nil
	}
	tbl := output.NewTable("NAME", "TYPE", "FRAMEWORK")
	for _, s := range sections {
		fw := s.Framework
		if fw == "" {
			fw = "-"
		}
		tbl.Row(s.ProjectName, s.ProjectType, fw)
	}
	_, err = fmt.Fprintln(w, tbl.String())
	return err
}
