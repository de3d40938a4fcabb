// Package config provides CLI command implementations for the config command group.
package config

import (
	"github.com/spf13/cobra"

	"github.com/limgen/cli/internal/cmdtypes"
	limgenconfig "github.com/limgen/cli/internal/config"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  `Configuration management for the limgen CLI.`,
	}

	c.AddCommand(NewConfigInitCmd(cfg))
	c.AddCommand(NewConfigVetCmd(cfg))

	return c
}

// configFile returns the resolved config path, or the default when the
// root command did not run.
func configFile(cfg *cmdtypes.GlobalConfig) (string, error) {
	path := cfg.ConfigPath
	if path == "" {
		resolved, err := limgenconfig.ResolveConfigPath("")
		if err != nil {
			return "", err
		}
		path = resolved.Value
	}
	return limgenconfig.ExpandPath(path)
}
