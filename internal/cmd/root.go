// Package cmd provides CLI command implementations.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/limgen/cli/internal/cmd/config"
	"github.com/limgen/cli/internal/cmd/project"
	"github.com/limgen/cli/internal/cmdtypes"
	limgenconfig "github.com/limgen/cli/internal/config"
	"github.com/limgen/cli/internal/output"
)

// NewRootCmd creates the root command for the limgen CLI.
func NewRootCmd() *cobra.Command {
	var (
		configFlag            string
		verboseFlag           bool
		timestampsFlag        bool
		packageManagerFlag    string
		infrastructureDirFlag string
		directoryFlag         string
		awsRegionFlag         string
	)

	cfg := &cmdtypes.GlobalConfig{}

	rootCmd := &cobra.Command{
		Use:   "limgen",
		Short: "Infrastructure scaffolding for web applications",
		Long: `limgen generates Pulumi infrastructure projects next to a web application.

It resolves the components and npm packages a project type needs, writes
them into the infrastructure directory, and records the chosen options in
the project's Pulumi.yaml so later commands can read them back.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			return initializeGlobals(c, cfg, globalFlags{
				config:            configFlag,
				verbose:           verboseFlag,
				timestamps:        timestampsFlag,
				packageManager:    packageManagerFlag,
				infrastructureDir: infrastructureDirFlag,
				directory:         directoryFlag,
				awsRegion:         awsRegionFlag,
			})
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFlag, "config", "", "Path to config file (env: LIMGEN_CONFIG)")
	pf.BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	pf.BoolVar(&timestampsFlag, "timestamps", true, "Show timestamps in log output")
	pf.StringVar(&packageManagerFlag, "package-manager", "", "Package manager: npm, pnpm, yarn (env: LIMGEN_PACKAGE_MANAGER)")
	pf.StringVar(&infrastructureDirFlag, "infrastructure-dir", "", "Infrastructure directory inside the application (env: LIMGEN_INFRASTRUCTURE_DIR)")
	pf.StringVarP(&directoryFlag, "directory", "C", "", "Application directory (defaults to the working directory)")
	pf.StringVar(&awsRegionFlag, "aws-region", "", "AWS region for env-pull (env: LIMGEN_AWS_REGION)")

	rootCmd.AddCommand(
		NewInitCmd(cfg),
		NewAddCmd(cfg),
		NewEnvPullCmd(cfg),
		project.NewProjectCmd(cfg),
		config.NewConfigCmd(cfg),
		NewVersionCmd(cfg),
	)

	return rootCmd
}

type globalFlags struct {
	config            string
	verbose           bool
	timestamps        bool
	packageManager    string
	infrastructureDir string
	directory         string
	awsRegion         string
}

// initializeGlobals loads configuration, sets up logging and fills cfg.
func initializeGlobals(c *cobra.Command, cfg *cmdtypes.GlobalConfig, flags globalFlags) error {
	configPath, err := limgenconfig.ResolveConfigPath(flags.config)
	if err != nil {
		return fmt.Errorf("resolving config path: %w", err)
	}

	loaded, err := limgenconfig.NewLoader().Load(configPath.Value)
	if err != nil {
		// Commands such as 'config vet' must still run against a broken file.
		output.Debug("config load error", "error", err)
		loaded = nil
	}

	logCfg := output.LogConfig{Verbose: flags.verbose}
	if c.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(flags.timestamps)
	} else if loaded != nil && loaded.Log.Timestamps != nil {
		logCfg.Timestamps = loaded.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	resolved := limgenconfig.ResolveAll(configPath, limgenconfig.ResolveOptions{
		PackageManagerFlag:    flags.packageManager,
		InfrastructureDirFlag: flags.infrastructureDir,
		AWSRegionFlag:         flags.awsRegion,
		Config:                loaded,
	})
	limgenconfig.LogResolvedValues(resolved.Values())

	dir := flags.directory
	if dir == "" {
		if dir, err = os.Getwd(); err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
	}
	if dir, err = filepath.Abs(dir); err != nil {
		return fmt.Errorf("resolving directory: %w", err)
	}

	cfg.Config = loaded
	cfg.Resolved = resolved
	cfg.ConfigPath = configPath.Value
	cfg.Directory = dir
	cfg.Verbose = flags.verbose
	return nil
}
