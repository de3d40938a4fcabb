package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/limgen/cli/internal/cmdtypes"
	"github.com/limgen/cli/internal/cmdutil"
	"github.com/limgen/cli/internal/component"
	oerrors "github.com/limgen/cli/internal/errors"
	"github.com/limgen/cli/internal/installer"
	"github.com/limgen/cli/internal/output"
	"github.com/limgen/cli/internal/shell"
	"github.com/limgen/cli/internal/templates"
)

// NewAddCmd creates the add command.
func NewAddCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var listFlag, noInstallFlag bool

	c := &cobra.Command{
		Use:   "add [component]",
		Short: "Copy a bundled component into the infrastructure directory",
		Long: `Copy a bundled component into <infrastructure>/components and install
the npm packages it imports.

Examples:
  # List bundled components
  limgen add --list

  # Add the S3 storage component
  limgen add storage-s3`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			if listFlag {
				return cmdutil.Fail(runAddList())
			}
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return cmdutil.Fail(runAdd(c, cfg, name, noInstallFlag))
		},
	}

	c.Flags().BoolVar(&listFlag, "list", false, "List bundled components")
	c.Flags().BoolVar(&noInstallFlag, "no-install", false, "Skip npm package installation")

	return c
}

func runAddList() error {
	comps, err := templates.Components()
	if err != nil {
		return err
	}
	tbl := output.NewTable("COMPONENT", "DESCRIPTION")
	for _, comp := range comps {
		tbl.Row(comp.Name, comp.Description)
	}
	output.Println(tbl.String())
	return nil
}

func runAdd(c *cobra.Command, cfg *cmdtypes.GlobalConfig, name string, noInstall bool) error {
	if name == "" {
		p := cmdutil.Prompter()
		if p == nil {
			return &oerrors.DetailError{
				Type:    "unresolved input",
				Message: "no component given",
				Hint:    "Run 'limgen add --list' to see bundled components.",
				Cause:   oerrors.ErrUnresolved,
			}
		}
		comps, err := templates.Components()
		if err != nil {
			return err
		}
		names := make([]string, len(comps))
		for i, comp := range comps {
			names[i] = comp.Name
		}
		if name, err = p.Select("Component", names, names[0]); err != nil {
			return err
		}
	}

	var inst installer.Installer = installer.Noop{}
	if !noInstall {
		pm, err := installer.New(cfg.PackageManager(), shell.ExecRunner{})
		if err != nil {
			return err
		}
		inst = pm
	}

	adder := &component.Adder{Workspace: cfg.Workspace(), Installer: inst}
	plan, files, err := adder.Add(c.Context(), name)
	cmdutil.PrintFiles(files)
	if err != nil {
		return err
	}
	if len(plan.Packages) > 0 && !noInstall {
		output.Println(output.FormatCheckmark("Installed " + strings.Join(plan.Packages, ", ")))
	}
	return nil
}
