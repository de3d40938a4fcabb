package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/limgen/cli/internal/cmdtypes"
	"github.com/limgen/cli/internal/cmdutil"
	"github.com/limgen/cli/internal/envpull"
	"github.com/limgen/cli/internal/output"
	"github.com/limgen/cli/internal/pulumi"
	"github.com/limgen/cli/internal/shell"
)

// NewEnvPullCmd creates the env-pull command.
func NewEnvPullCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var flags cmdutil.ProjectFlags

	c := &cobra.Command{
		Use:   "env-pull",
		Short: "Write a deployed project's values into .env",
		Long: `Read a project's stack outputs and write the variables the application
needs into .env in the application directory.

Supported for fullstack-aws projects:
  BUCKET_NAME    when storage is included
  DATABASE_URL   when a database is included (read from AWS Secrets Manager)

Examples:
  limgen env-pull --project web --stack dev`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return cmdutil.Fail(runEnvPull(c.Context(), cfg, flags, shell.ExecRunner{}))
		},
	}

	flags.AddTo(c)
	return c
}

func runEnvPull(ctx context.Context, cfg *cmdtypes.GlobalConfig, flags cmdutil.ProjectFlags, runner shell.Runner) error {
	ws := cfg.Workspace()
	store := cfg.Store()
	p := cmdutil.Prompter()

	name, err := cmdutil.SelectProject(store, flags.Project, p)
	if err != nil {
		return err
	}
	if _, err := store.Read(name); err != nil {
		return err
	}

	client := pulumi.NewClient(runner)
	stack := flags.Stack
	if stack == "" {
		stacks, err := client.Stacks(ctx, ws.ProjectDir(name))
		if err != nil {
			return err
		}
		names := make([]string, 0, len(stacks))
		for _, s := range stacks {
			names = append(names, s.Name)
			if s.Current && p == nil {
				stack = s.Name
			}
		}
		if stack, err = cmdutil.SelectStack(names, stack, p); err != nil {
			return err
		}
	}
	output.Debug("pulling environment", "project", name, "stack", stack)

	puller := &envpull.Puller{
		Workspace: ws,
		Store:     store,
		Outputs:   client,
		Secrets: func(ctx context.Context) (envpull.SecretsGetter, error) {
			return envpull.NewAWSSecrets(ctx, cfg.AWSRegion(), cfg.AWSProfile())
		},
	}

	var path, status string
	err = output.RunWithSpinner(ctx, func(ctx context.Context) error {
		var err error
		path, status, err = puller.Pull(ctx, name, stack)
		return err
	}, output.WithTitle(fmt.Sprintf("Reading outputs of %s/%s", name, stack)))
	if err != nil {
		return err
	}
	output.Println(output.FormatFileLine(ws.Rel(path), status))
	return nil
}
