package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/limgen/cli/internal/cmdtypes"
	"github.com/limgen/cli/internal/cmdutil"
	oerrors "github.com/limgen/cli/internal/errors"
	"github.com/limgen/cli/internal/framework"
	"github.com/limgen/cli/internal/generator"
	"github.com/limgen/cli/internal/installer"
	"github.com/limgen/cli/internal/metadata"
	"github.com/limgen/cli/internal/output"
	"github.com/limgen/cli/internal/project"
	"github.com/limgen/cli/internal/prompt"
	"github.com/limgen/cli/internal/shell"
	"github.com/limgen/cli/internal/templates"
)

// inputFlags maps project inputs to the init flag that sets them.
var inputFlags = map[string]string{
	project.InputIncludeStorage: "include-storage",
	project.InputIncludeDB:      "include-db",
	project.InputNetworkType:    "network-type",
	project.InputStorageAccess:  "storage-access",
	project.InputPort:           "port",
	project.InputOutputDir:      "output-dir",
}

type initOptions struct {
	name        string
	projectType string
	framework   string
	inputs      map[string]*string
	force       bool
	dryRun      bool
	noInstall   bool

	// prompter is nil when prompting is impossible.
	prompter prompt.Prompter
}

// NewInitCmd creates the init command.
func NewInitCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	o := &initOptions{inputs: make(map[string]*string, len(inputFlags))}

	c := &cobra.Command{
		Use:   "init",
		Short: "Create an infrastructure project",
		Long: `Create a Pulumi project for the application in the current directory.

Project types:
  fullstack-aws     Containerized app on ECS Fargate, optional S3 and Postgres
  staticsite-aws    Static export served from S3 and CloudFront
  fullstack-azure   Containerized app on Azure Container Apps

Inputs not given as flags are prompted for on a terminal. Without a
terminal, init fails and lists the flags still needed.

Examples:
  # Interactive
  limgen init

  # Fully specified
  limgen init --name web --project-type fullstack-aws \
    --include-storage=false --include-db --network-type private --port 3000

  # Preview without writing anything
  limgen init --name docs --project-type staticsite-aws --output-dir out --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			for input, flag := range inputFlags {
				if !c.Flags().Changed(flag) {
					delete(o.inputs, input)
				}
			}
			o.prompter = cmdutil.Prompter()
			return cmdutil.Fail(runInit(c, cfg, o))
		},
	}

	c.Flags().StringVar(&o.name, "name", "", "Project name")
	c.Flags().StringVar(&o.projectType, "project-type", "",
		"Project type ("+strings.Join(typeNames(project.Types()), ", ")+")")
	c.Flags().StringVar(&o.framework, "framework", "",
		"Application framework (nextjs, tanstack-start); detected from package.json when omitted")
	for _, input := range []string{
		project.InputIncludeStorage,
		project.InputIncludeDB,
		project.InputNetworkType,
		project.InputStorageAccess,
		project.InputPort,
		project.InputOutputDir,
	} {
		v := new(string)
		o.inputs[input] = v
		flag := inputFlags[input]
		switch input {
		case project.InputIncludeStorage, project.InputIncludeDB:
			c.Flags().StringVar(v, flag, "", "true or false")
			c.Flags().Lookup(flag).NoOptDefVal = "true"
		default:
			c.Flags().StringVar(v, flag, "", inputUsage[input])
		}
	}
	c.Flags().BoolVarP(&o.force, "force", "f", false, "Overwrite an existing project's metadata")
	c.Flags().BoolVar(&o.dryRun, "dry-run", false, "Show what would be written without changing anything")
	c.Flags().BoolVar(&o.noInstall, "no-install", false, "Skip npm package installation")

	return c
}

var inputUsage = map[string]string{
	project.InputNetworkType:   "Network type (public, private)",
	project.InputStorageAccess: "Storage access (public, private)",
	project.InputPort:          "Port the container listens on",
	project.InputOutputDir:     "Static build output directory",
}

func typeNames(types []project.Type) []string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return names
}

func runInit(c *cobra.Command, cfg *cmdtypes.GlobalConfig, o *initOptions) error {
	ws := cfg.Workspace()
	store := cfg.Store()

	opts, err := collectOptions(cfg, o)
	if err != nil {
		return err
	}
	logger := output.ProjectLogger(opts.Name)

	if store.Exists(opts.Name) {
		if !o.force {
			return oerrors.NewValidationError(
				fmt.Sprintf("project %q already exists", opts.Name),
				store.Path(opts.Name),
				"name",
				"Use --force to regenerate it, or pick another --name.",
			)
		}
		if err := checkStoredType(store, opts); err != nil {
			return err
		}
		before, after, err := store.Render(opts)
		if err != nil {
			return err
		}
		diff, err := output.DiffYAML(before, after, output.IsTTY())
		if err != nil {
			logger.Debug("metadata diff failed", "error", err)
		} else if diff != "" {
			output.Println("Metadata changes:")
			output.Print(diff)
		}
	}

	var inst installer.Installer = installer.Noop{}
	if !o.noInstall {
		pm, err := installer.New(cfg.PackageManager(), shell.ExecRunner{})
		if err != nil {
			return err
		}
		inst = pm
	}

	gen := &generator.Generator{
		Workspace: ws,
		Store:     store,
		Renderer:  templates.NewRenderer(),
		Installer: inst,
		DryRun:    o.dryRun,
	}
	result, err := gen.Generate(c.Context(), opts)
	if result != nil && len(result.Files) > 0 {
		verb := "Created"
		if o.dryRun {
			verb = "Would write"
		}
		output.Println(fmt.Sprintf("%s project '%s' (%s) in %s\n", verb, opts.Name, opts.Type, ws.Root))
		output.Print(output.RenderFileTree(".", result.Files))
	}
	if err != nil {
		return err
	}

	if !o.dryRun {
		output.Println("")
		output.Println(output.FormatCheckmark("Project ready"))
		output.Println(fmt.Sprintf("Next: cd %s && pulumi stack init", ws.Rel(filepath.Dir(store.Path(opts.Name)))))
	}
	return nil
}

// collectOptions builds project options from flags, detection and prompts.
func collectOptions(cfg *cmdtypes.GlobalConfig, o *initOptions) (project.Options, error) {
	ws := cfg.Workspace()
	var opts project.Options
	var missing []string

	opts.Name = o.name
	if opts.Name == "" && o.prompter != nil {
		name, err := o.prompter.Input("Project name", "", project.ValidateName)
		if err != nil {
			return opts, err
		}
		opts.Name = name
	}
	if opts.Name == "" {
		missing = append(missing, "--name")
	} else if err := project.ValidateName(opts.Name); err != nil {
		return opts, err
	}

	if o.framework != "" {
		fw, err := project.ParseFramework(o.framework)
		if err != nil {
			return opts, err
		}
		opts.Framework = fw
	} else {
		fw, err := framework.Detect(ws)
		if err != nil {
			return opts, err
		}
		output.Debug("detected framework", "framework", fw)
		opts.Framework = fw
	}

	switch {
	case o.projectType != "":
		t, err := project.ParseType(o.projectType)
		if err != nil {
			return opts, err
		}
		opts.Type = t
	case o.prompter != nil:
		names := typeNames(framework.ProjectTypes(opts.Framework))
		choice, err := o.prompter.Select("Project type", names, names[0])
		if err != nil {
			return opts, err
		}
		opts.Type = project.Type(choice)
	default:
		missing = append(missing, "--project-type")
	}

	if opts.Type == "" {
		return opts, unresolvedFlags(missing)
	}

	def, err := project.Lookup(opts.Type)
	if err != nil {
		return opts, err
	}
	for input, v := range o.inputs {
		if !def.Declares(input) {
			return opts, &oerrors.UnsupportedConfigurationError{
				Field:  input,
				Value:  *v,
				Reason: fmt.Sprintf("--%s does not apply to %s", inputFlags[input], opts.Type),
			}
		}
		if err := opts.Set(input, *v); err != nil {
			return opts, err
		}
	}

	if o.prompter != nil {
		defaults := map[string]string{project.InputPort: strconv.Itoa(framework.PortDefault(ws))}
		if err := prompt.Collect(o.prompter, &opts, defaults); err != nil {
			return opts, err
		}
	} else {
		inputs, err := opts.Missing()
		if err != nil {
			return opts, err
		}
		for _, in := range inputs {
			missing = append(missing, "--"+inputFlags[in.Name])
		}
	}

	if len(missing) > 0 {
		return opts, unresolvedFlags(missing)
	}
	return opts, nil
}

func unresolvedFlags(flags []string) error {
	return &oerrors.DetailError{
		Type:    "unresolved input",
		Message: "missing required flags: " + strings.Join(flags, ", "),
		Hint:    "Pass the flags, or run in a terminal to be prompted.",
		Cause:   oerrors.ErrUnresolved,
	}
}

// checkStoredType rejects a regeneration that would change the type of an
// existing project. A corrupt section is left for Render to repair or refuse.
func checkStoredType(store *metadata.Store, opts project.Options) error {
	section, err := store.ReadSection(opts.Name)
	if errors.Is(err, oerrors.ErrCorrupt) {
		return nil
	}
	if err != nil {
		return err
	}
	if section.ProjectType != string(opts.Type) {
		return &oerrors.UnsupportedConfigurationError{
			Field:  "projectType",
			Value:  string(opts.Type),
			Reason: "cannot change type of existing project " + section.ProjectType,
		}
	}
	return nil
}
