package generator

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/limgen/cli/internal/project"
	"github.com/limgen/cli/internal/templates"
	"github.com/limgen/cli/internal/workspace"
)

// Step is one file the generator produces.
type Step struct {
	// Path is the absolute destination.
	Path string
	Mode fs.FileMode

	// IfAbsent leaves an existing file alone.
	IfAbsent bool

	// Content renders the file. A nil result means there is nothing to write.
	Content func() ([]byte, error)

	// Write replaces the default atomic write when set.
	Write func() error
}

// Plan lists every file Generate writes for opts and m, before packages are
// installed and the framework adapter runs.
func (g *Generator) Plan(opts project.Options, m project.Manifest) []Step {
	ws := g.Workspace
	steps := []Step{
		g.assetStep(ws.InfraPath("package.json"), templates.WorkspacePackageJSON, nil, true),
		g.assetStep(ws.InfraPath("tsconfig.json"), templates.WorkspaceTSConfig, nil, true),
	}

	for _, id := range m.Files {
		steps = append(steps, g.assetStep(ws.InfraPath(templates.TargetPath(id)), id, nil, false))
	}

	def, _ := project.Lookup(opts.Type)
	steps = append(steps,
		g.assetStep(filepath.Join(ws.ProjectDir(opts.Name), "index.ts"), def.IndexTemplate, templates.IndexDataFor(opts), false),
		g.metadataStep(opts),
	)

	return append(steps, g.extras(opts)...)
}

func (g *Generator) assetStep(dest, id string, data any, ifAbsent bool) Step {
	return Step{
		Path:     dest,
		Mode:     0o644,
		IfAbsent: ifAbsent,
		Content:  func() ([]byte, error) { return g.Renderer.Render(id, data) },
	}
}

func (g *Generator) metadataStep(opts project.Options) Step {
	return Step{
		Path: g.Store.Path(opts.Name),
		Mode: 0o644,
		Content: func() ([]byte, error) {
			_, after, err := g.Store.Render(opts)
			return after, err
		},
		Write: func() error { return g.Store.Write(opts) },
	}
}

// extras are the per-type files outside the infrastructure workspace.
func (g *Generator) extras(opts project.Options) []Step {
	ws := g.Workspace
	var steps []Step

	switch opts.Type {
	case project.FullstackAWS, project.FullstackAzure:
		steps = append(steps, g.dockerignoreStep())
	}

	switch {
	case opts.Type == project.FullstackAWS && opts.IncludeDB == project.On && opts.NetworkType == project.NetworkPrivate:
		script := ws.InfraPath(templates.TargetPath(templates.DBTunnelScript))
		steps = append(steps,
			Step{
				Path:    script,
				Mode:    0o755,
				Content: func() ([]byte, error) { return templates.Asset(templates.DBTunnelScript) },
			},
			g.scriptStep("tunnel", fmt.Sprintf("%s %s", ws.Rel(script), opts.Name)),
		)
	case opts.Type == project.StaticsiteAWS:
		script := ws.InfraPath(templates.TargetPath(templates.DeployScript))
		data := templates.DeployData{ProjectName: opts.Name, OutputDir: opts.OutputDir}
		deploy := g.assetStep(script, templates.DeployScript, data, false)
		deploy.Mode = 0o755
		steps = append(steps, deploy, g.scriptStep("deploy-site", ws.Rel(script)))
	}

	return steps
}

func (g *Generator) dockerignoreStep() Step {
	path := g.Workspace.AppPath(".dockerignore")
	return Step{
		Path: path,
		Mode: 0o644,
		Content: func() ([]byte, error) {
			defaults, err := templates.Asset(templates.DockerIgnore)
			if err != nil {
				return nil, err
			}
			return workspace.IgnoreContent(path, defaults, g.Workspace.InfraDir+"/")
		},
	}
}

func (g *Generator) scriptStep(name, command string) Step {
	path := g.Workspace.AppPath("package.json")
	return Step{
		Path:    path,
		Mode:    0o644,
		Content: func() ([]byte, error) { return workspace.ScriptContent(path, name, command) },
	}
}
