// Package generator writes a project's infrastructure into an application:
// workspace files, components, the project index and its metadata.
package generator

import (
	"context"
	"fmt"

	"github.com/limgen/cli/internal/framework"
	"github.com/limgen/cli/internal/installer"
	"github.com/limgen/cli/internal/metadata"
	"github.com/limgen/cli/internal/output"
	"github.com/limgen/cli/internal/project"
	"github.com/limgen/cli/internal/templates"
	"github.com/limgen/cli/internal/workspace"
)

// Generator produces projects in one workspace.
type Generator struct {
	Workspace *workspace.Workspace
	Store     *metadata.Store
	Renderer  *templates.Renderer
	Installer installer.Installer

	// Workers bounds concurrent file writes.
	Workers int

	// DryRun computes statuses without writing, installing or adapting.
	DryRun bool
}

// Result describes what Generate did.
type Result struct {
	Manifest project.Manifest
	Warnings []project.Warning

	// Files maps paths relative to the application root to a file status.
	Files map[string]string
}

// Generate resolves opts and checks the application for framework conflicts
// before anything is written. It then writes every planned file, installs the
// manifest packages and runs the framework adapter. Installation starts only
// after every file write has finished.
func (g *Generator) Generate(ctx context.Context, opts project.Options) (*Result, error) {
	manifest, warnings, err := project.Resolve(opts)
	if err != nil {
		return nil, err
	}
	logger := output.ProjectLogger(opts.Name)
	for _, w := range warnings {
		logger.Warn(w.Message, "field", w.Field)
	}

	adapter, hasAdapter := framework.For(opts.Framework)
	if hasAdapter {
		if err := adapter.Check(g.Workspace, opts); err != nil {
			return nil, fmt.Errorf("checking %s app: %w", adapter.Framework(), err)
		}
	}

	result := &Result{Manifest: manifest, Warnings: warnings, Files: make(map[string]string)}

	steps := g.Plan(opts, manifest)
	logger.Debug("writing files", "count", len(steps), "dryRun", g.DryRun)
	statuses, err := newExecutor(g.Workers, g.DryRun).run(ctx, steps)
	for path, status := range statuses {
		result.Files[g.Workspace.Rel(path)] = status
	}
	if err != nil {
		return result, err
	}

	if g.DryRun {
		return result, nil
	}

	if err := g.install(ctx, manifest); err != nil {
		return result, err
	}

	if !hasAdapter {
		return result, nil
	}
	logger.Debug("applying framework adapter", "framework", adapter.Framework())
	changes, err := adapter.Apply(ctx, g.Workspace, opts, g.Renderer)
	for _, c := range changes {
		result.Files[g.Workspace.Rel(c.Path)] = c.Status
	}
	if err != nil {
		return result, fmt.Errorf("adapting %s app: %w", adapter.Framework(), err)
	}
	return result, nil
}

func (g *Generator) install(ctx context.Context, m project.Manifest) error {
	if g.Installer == nil || len(m.Packages) == 0 {
		return nil
	}
	return output.RunWithSpinner(ctx, func(ctx context.Context) error {
		return g.Installer.Install(ctx, g.Workspace.InfraPath(), m.Packages)
	}, output.WithTitle(fmt.Sprintf("Installing %d packages", len(m.Packages))))
}
