// Package framework detects the host application's framework and adapts the
// application so it can be deployed by the generated infrastructure.
package framework

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"regexp"
	"strconv"

	"github.com/samber/lo"

	"github.com/limgen/cli/internal/output"
	"github.com/limgen/cli/internal/project"
	"github.com/limgen/cli/internal/templates"
	"github.com/limgen/cli/internal/workspace"
)

// DefaultPort is used when neither a flag nor a Dockerfile names a port.
const DefaultPort = 3000

// Change records one file an adapter touched.
type Change struct {
	Path   string
	Status string
}

// Adapter prepares an application for a project type.
type Adapter interface {
	// Framework is the framework the adapter handles.
	Framework() project.Framework

	// Recommended lists project types that fit the framework, best first.
	Recommended() []project.Type

	// Check reports settings in ws that conflict with opts. It writes nothing.
	Check(ws *workspace.Workspace, opts project.Options) error

	// Apply edits the application in ws for opts.
	Apply(ctx context.Context, ws *workspace.Workspace, opts project.Options, r *templates.Renderer) ([]Change, error)
}

var adapters = map[project.Framework]Adapter{
	project.NextJS:        nextJS{},
	project.TanstackStart: tanstackStart{},
}

// For returns the adapter for fw, if there is one.
func For(fw project.Framework) (Adapter, bool) {
	a, ok := adapters[fw]
	return a, ok
}

// Detect inspects package.json in the application root. A missing
// package.json yields FrameworkUnknown.
func Detect(ws *workspace.Workspace) (project.Framework, error) {
	pkg, err := workspace.ReadPackageJSON(ws.AppPath("package.json"))
	if errors.Is(err, fs.ErrNotExist) {
		return project.FrameworkUnknown, nil
	}
	if err != nil {
		return "", err
	}

	switch {
	case pkg.HasDependency("next"):
		return project.NextJS, nil
	case pkg.HasDependency("@tanstack/react-start"), pkg.HasDependency("@tanstack/start"):
		return project.TanstackStart, nil
	default:
		return project.FrameworkUnknown, nil
	}
}

// ProjectTypes returns every project type with the framework's recommended
// types first.
func ProjectTypes(fw project.Framework) []project.Type {
	a, ok := For(fw)
	if !ok {
		return project.Types()
	}
	first := a.Recommended()
	rest := lo.Filter(project.Types(), func(t project.Type, _ int) bool {
		return !lo.Contains(first, t)
	})
	return append(append([]project.Type{}, first...), rest...)
}

var exposeRegex = regexp.MustCompile(`(?mi)^\s*EXPOSE\s+(\d+)`)

// DockerfilePort returns the first port exposed by the application's
// Dockerfile.
func DockerfilePort(ws *workspace.Workspace) (int, bool) {
	data, err := os.ReadFile(ws.AppPath("Dockerfile"))
	if err != nil {
		return 0, false
	}
	m := exposeRegex.FindSubmatch(data)
	if m == nil {
		return 0, false
	}
	port, err := strconv.Atoi(string(m[1]))
	if err != nil || port < 1 || port > 65535 {
		return 0, false
	}
	return port, true
}

// PortDefault is the port offered when the user did not pass one.
func PortDefault(ws *workspace.Workspace) int {
	if port, ok := DockerfilePort(ws); ok {
		return port
	}
	return DefaultPort
}

// containerized reports whether t builds the application into an image.
func containerized(t project.Type) bool {
	return t == project.FullstackAWS || t == project.FullstackAzure
}

func ensureDockerfile(ws *workspace.Workspace, id string, opts project.Options, r *templates.Renderer) (Change, error) {
	path := ws.AppPath("Dockerfile")
	if workspace.Exists(path) {
		return Change{Path: path, Status: output.StatusSkipped}, nil
	}
	port := opts.Port
	if port == 0 {
		port = DefaultPort
	}
	data, err := r.Render(id, templates.DockerfileData{Port: port})
	if err != nil {
		return Change{}, err
	}
	status, err := workspace.WriteFile(path, data, 0o644)
	return Change{Path: path, Status: status}, err
}

func ensureDockerignore(ws *workspace.Workspace, entries ...string) (Change, error) {
	defaults, err := templates.Asset(templates.DockerIgnore)
	if err != nil {
		return Change{}, err
	}
	path := ws.AppPath(".dockerignore")
	status, err := workspace.EnsureIgnoreEntries(path, defaults, entries...)
	return Change{Path: path, Status: status}, err
}
