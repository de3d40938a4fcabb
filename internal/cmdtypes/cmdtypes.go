// Package cmdtypes provides shared types for the cmd package and its sub-packages.
// It is separate from internal/cmd to avoid import cycles between internal/cmd
// and its sub-packages (internal/cmd/config, internal/cmd/project).
package cmdtypes

import (
	"github.com/limgen/cli/internal/config"
	"github.com/limgen/cli/internal/metadata"
	"github.com/limgen/cli/internal/workspace"
)

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is populated once at startup and passed into every sub-command constructor.
type GlobalConfig struct {
	Config     *config.Config
	Resolved   *config.ResolvedConfig
	ConfigPath string

	// Directory is the application root, absolute.
	Directory string
	Verbose   bool
}

// PackageManager returns the resolved package manager.
func (g *GlobalConfig) PackageManager() string {
	if g.Resolved == nil {
		return config.DefaultPackageManager
	}
	return g.Resolved.PackageManager.Value
}

// InfrastructureDir returns the resolved infrastructure directory.
func (g *GlobalConfig) InfrastructureDir() string {
	if g.Resolved == nil {
		return config.DefaultInfrastructureDir
	}
	return g.Resolved.InfrastructureDir.Value
}

// AWSRegion returns the resolved AWS region, possibly empty.
func (g *GlobalConfig) AWSRegion() string {
	if g.Resolved == nil {
		return ""
	}
	return g.Resolved.AWSRegion.Value
}

// AWSProfile returns the resolved AWS profile, possibly empty.
func (g *GlobalConfig) AWSProfile() string {
	if g.Resolved == nil {
		return ""
	}
	return g.Resolved.AWSProfile.Value
}

// Workspace returns the application workspace.
func (g *GlobalConfig) Workspace() *workspace.Workspace {
	return workspace.New(g.Directory, g.InfrastructureDir())
}

// Store returns the project metadata store for the workspace.
func (g *GlobalConfig) Store() *metadata.Store {
	return metadata.NewStore(g.Directory, g.InfrastructureDir(), g.PackageManager())
}
