package config

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/limgen/cli/internal/cmdtypes"
	limgenconfig "github.com/limgen/cli/internal/config"
	oerrors "github.com/limgen/cli/internal/errors"
	"github.com/limgen/cli/internal/output"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate the limgen configuration file",
		Long: `Validate the limgen configuration file against the embedded schema.

The command validates ~/.limgen/config.yaml by default.
Use --config to specify a different location.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runConfigVet(c, cfg)
		},
	}
}

func runConfigVet(c *cobra.Command, cfg *cmdtypes.GlobalConfig) error {
	path, err := configFile(cfg)
	if err != nil {
		return &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: fmt.Errorf("resolving config path: %w", err)}
	}

	exists, err := limgenconfig.ConfigFileExists(path)
	if err != nil {
		return &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: fmt.Errorf("checking config file: %w", err)}
	}
	if !exists {
		return &oerrors.ExitError{
			Code: oerrors.ExitNotFound,
			Err:  oerrors.NewNotFoundError("config file not found", path, "Run 'limgen config init' to create one."),
		}
	}

	validator, err := limgenconfig.NewValidator()
	if err != nil {
		return &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: fmt.Errorf("creating validator: %w", err)}
	}

	if err := validator.ValidateFile(path); err != nil {
		var validationErrs limgenconfig.ValidationErrors
		if errors.As(err, &validationErrs) {
			fmt.Fprintln(c.ErrOrStderr(), "Error: config validation failed")
			fmt.Fprintf(c.ErrOrStderr(), "  File: %s\n\n", path)
			for _, e := range validationErrs {
				fmt.Fprintf(c.ErrOrStderr(), "  %s: %s\n", e.Field, e.Message)
			}
			return &oerrors.ExitError{Code: oerrors.ExitValidationError, Err: err, Printed: true}
		}
		return &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: fmt.Errorf("validating config: %w", err)}
	}

	output.Println(output.FormatCheckmark("Config file is valid: " + path))
	return nil
}
