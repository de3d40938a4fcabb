package project

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/limgen/cli/internal/cmdtypes"
	"github.com/limgen/cli/internal/cmdutil"
	"github.com/limgen/cli/internal/metadata"
	"github.com/limgen/cli/internal/output"
	"github.com/limgen/cli/internal/project"
)

// Details is the structured form printed by 'project show'.
type Details struct {
	metadata.Section

	Manifest project.Manifest  `json:"manifest"`
	Warnings []project.Warning `json:"warnings,omitempty"`
}

// NewShowCmd creates the project show command.
func NewShowCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var outputFlags cmdutil.OutputFlags

	c := &cobra.Command{
		Use:   "show [name]",
		Short: "Show a project's stored options and resolved manifest",
		Long: `Show the options stored in a project's Pulumi.yaml and the components and
packages they resolve to.

Examples:
  limgen project show web
  limgen project show web -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			format, err := outputFlags.Parse()
			if err != nil {
				return cmdutil.Fail(err)
			}
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return cmdutil.Fail(runShow(c.OutOrStdout(), cfg.Store(), name, format))
		},
	}

	outputFlags.AddTo(c)
	return c
}

func runShow(w io.Writer, store *metadata.Store, name string, format output.Format) error {
	name, err := cmdutil.SelectProject(store, name, cmdutil.Prompter())
	if err != nil {
		return err
	}

	section, err := store.ReadSection(name)
	if err != nil {
		return err
	}
	opts, err := store.Read(name)
	if err != nil {
		return err
	}
	manifest, warnings, err := project.Resolve(opts)
	if err != nil {
		return err
	}

	details := Details{Section: *section, Manifest: manifest, Warnings: warnings}
	if format != output.FormatText {
		return output.WriteStructured(w, details, format)
	}

	fmt.Fprintf(w, "Project:    %s\n", section.ProjectName)
	fmt.Fprintf(w, "Type:       %s\n", section.ProjectType)
	if section.Framework != "" {
		fmt.Fprintf(w, "Framework:  %s\n", section.Framework)
	}
	fmt.Fprintf(w, "Metadata:   %s\n", store.Path(name))

	if len(section.ProjectInputs) > 0 {
		fmt.Fprintln(w, "\nInputs:")
		keys := make([]string, 0, len(section.ProjectInputs))
		for k := range section.ProjectInputs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "  %-16s %v\n", k, section.ProjectInputs[k])
		}
	}

	fmt.Fprintln(w, "\nFiles:")
	for _, f := range manifest.Files {
		fmt.Fprintf(w, "  %s\n", f)
	}
	fmt.Fprintln(w, "\nPackages:")
	for _, p := range manifest.Packages {
		fmt.Fprintf(w, "  %s\n", p)
	}
	for _, warning := range warnings {
		fmt.Fprintf(w, "\nWarning: %s\n", warning.Message)
	}
	return nil
}
