package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/limgen/cli/internal/cmdtypes"
	limgenconfig "github.com/limgen/cli/internal/config"
	oerrors "github.com/limgen/cli/internal/errors"
	"github.com/limgen/cli/internal/output"
)

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Initialize default configuration",
		Long: `Initialize the limgen CLI configuration.

Creates ~/.limgen/config.yaml (or the file named by --config) with the
default package manager and infrastructure directory.

Examples:
  # Initialize configuration
  limgen config init

  # Overwrite existing configuration
  limgen config init --force`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runConfigInit(cfg, force)
		},
	}

	c.Flags().BoolVarP(&force, "force", "f", false,
		"Overwrite existing configuration")

	return c
}

func runConfigInit(cfg *cmdtypes.GlobalConfig, force bool) error {
	path, err := configFile(cfg)
	if err != nil {
		return &oerrors.ExitError{
			Code: oerrors.ExitNotFound,
			Err:  oerrors.Wrap(oerrors.ErrNotFound, "could not determine home directory"),
		}
	}

	exists, err := limgenconfig.ConfigFileExists(path)
	if err != nil {
		return &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: fmt.Errorf("checking config file: %w", err)}
	}
	if exists && !force {
		return &oerrors.ExitError{
			Code: oerrors.ExitValidationError,
			Err: &oerrors.DetailError{
				Type:     "validation failed",
				Message:  "configuration already exists",
				Location: path,
				Hint:     "Use --force to overwrite existing configuration.",
				Cause:    oerrors.ErrValidation,
			},
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return &oerrors.ExitError{
			Code: oerrors.ExitPermissionDenied,
			Err:  oerrors.Wrap(oerrors.ErrPermission, "could not create "+filepath.Dir(path)),
		}
	}
	if err := os.WriteFile(path, []byte(limgenconfig.DefaultConfigYAML), 0o600); err != nil {
		return &oerrors.ExitError{
			Code: oerrors.ExitPermissionDenied,
			Err:  oerrors.Wrap(oerrors.ErrPermission, "could not write "+path),
		}
	}

	output.Println("Configuration initialized at " + path)
	output.Println("Validate with: limgen config vet")
	return nil
}
