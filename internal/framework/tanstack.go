package framework

import (
	"context"
	"fmt"
	"regexp"

	oerrors "github.com/limgen/cli/internal/errors"
	"github.com/limgen/cli/internal/output"
	"github.com/limgen/cli/internal/project"
	"github.com/limgen/cli/internal/templates"
	"github.com/limgen/cli/internal/workspace"
)

const nodeServerPreset = "node-server"

var appConfigFiles = []string{"app.config.ts", "app.config.js"}

var (
	appConfigAnchor = regexp.MustCompile(`export default defineConfig\(\{`)
	serverBlock     = regexp.MustCompile(`server\s*:\s*\{`)
	presetRegex     = regexp.MustCompile(`preset\s*:\s*['"]([^'"]+)['"]`)
)

var tanstackIgnores = []string{"node_modules", "*.log", ".vinxi", ".git", ".DS_Store", ".output"}

type tanstackStart struct{}

func (tanstackStart) Framework() project.Framework { return project.TanstackStart }

func (tanstackStart) Recommended() []project.Type {
	return []project.Type{project.FullstackAWS}
}

func (tanstackStart) Check(ws *workspace.Workspace, _ project.Options) error {
	_, _, err := readAppConfig(ws)
	return err
}

func (tanstackStart) Apply(_ context.Context, ws *workspace.Workspace, opts project.Options, r *templates.Renderer) ([]Change, error) {
	var changes []Change

	if containerized(opts.Type) {
		c, err := ensureDockerfile(ws, templates.TanstackDockerfile, opts, r)
		if err != nil {
			return changes, err
		}
		changes = append(changes, c)
	}

	c, err := ensureDockerignore(ws, tanstackIgnores...)
	if err != nil {
		return changes, err
	}
	changes = append(changes, c)

	c, err = patchAppConfig(ws)
	if err != nil {
		return changes, err
	}
	if c.Path != "" {
		changes = append(changes, c)
	}
	return changes, nil
}

// readAppConfig loads the app config and rejects a server preset other than
// node-server. path is empty when the app has no app config.
func readAppConfig(ws *workspace.Workspace) (path string, data []byte, err error) {
	path, data, ok := readFirst(ws, appConfigFiles)
	if !ok {
		return "", nil, nil
	}
	if !serverBlock.Match(data) {
		return path, data, nil
	}
	if m := presetRegex.FindSubmatch(data); m != nil && string(m[1]) != nodeServerPreset {
		return "", nil, oerrors.NewValidationError(
			fmt.Sprintf("server preset is %q", m[1]),
			path,
			"server.preset",
			"Only the node-server preset is supported for TanStack Start.",
		)
	}
	return path, data, nil
}

// patchAppConfig makes sure the app config builds for the node-server preset.
func patchAppConfig(ws *workspace.Workspace) (Change, error) {
	path, data, err := readAppConfig(ws)
	if err != nil {
		return Change{}, err
	}
	if path == "" {
		output.Debug("no app.config found", "dir", ws.Root)
		return Change{}, nil
	}

	if serverBlock.Match(data) {
		if !presetRegex.Match(data) {
			output.Warn("server block has no preset; set it to node-server manually", "file", ws.Rel(path))
			return Change{Path: path, Status: output.StatusSkipped}, nil
		}
		return Change{Path: path, Status: output.StatusUnchanged}, nil
	}

	loc := appConfigAnchor.FindIndex(data)
	if loc == nil {
		output.Warn("could not find defineConfig; add the server preset manually", "file", ws.Rel(path))
		return Change{Path: path, Status: output.StatusSkipped}, nil
	}

	patched := insertAfter(data, loc[1], fmt.Sprintf("\n  server: { preset: '%s' },", nodeServerPreset))
	status, err := workspace.WriteFile(path, patched, 0o644)
	return Change{Path: path, Status: status}, err
}
