package framework

import (
	"context"
	"fmt"
	"os"
	"regexp"

	oerrors "github.com/limgen/cli/internal/errors"
	"github.com/limgen/cli/internal/output"
	"github.com/limgen/cli/internal/project"
	"github.com/limgen/cli/internal/templates"
	"github.com/limgen/cli/internal/workspace"
)

var nextConfigFiles = []string{"next.config.ts", "next.config.mjs", "next.config.js"}

var (
	nextConfigAnchor = regexp.MustCompile(`const nextConfig(\s*:\s*NextConfig)?\s*=\s*\{`)
	nextOutputRegex  = regexp.MustCompile(`output\s*:\s*['"]([^'"]+)['"]`)
)

type nextJS struct{}

func (nextJS) Framework() project.Framework { return project.NextJS }

func (nextJS) Recommended() []project.Type {
	return []project.Type{project.FullstackAWS, project.StaticsiteAWS}
}

func (nextJS) Check(ws *workspace.Workspace, opts project.Options) error {
	_, _, err := readNextConfig(ws, outputMode(opts.Type))
	return err
}

func (nextJS) Apply(_ context.Context, ws *workspace.Workspace, opts project.Options, r *templates.Renderer) ([]Change, error) {
	var changes []Change

	if containerized(opts.Type) {
		c, err := ensureDockerfile(ws, templates.NextJSDockerfile, opts, r)
		if err != nil {
			return changes, err
		}
		changes = append(changes, c)

		c, err = ensureDockerignore(ws, "node_modules", ".next")
		if err != nil {
			return changes, err
		}
		changes = append(changes, c)
	}

	c, err := patchNextConfig(ws, outputMode(opts.Type))
	if err != nil {
		return changes, err
	}
	if c.Path != "" {
		changes = append(changes, c)
	}
	return changes, nil
}

// outputMode is the next.config output the project type deploys.
func outputMode(t project.Type) string {
	if t == project.StaticsiteAWS {
		return "export"
	}
	return "standalone"
}

// readNextConfig loads next.config and rejects an output other than want.
// path is empty when the app has no next.config.
func readNextConfig(ws *workspace.Workspace, want string) (path string, data []byte, err error) {
	path, data, ok := readFirst(ws, nextConfigFiles)
	if !ok {
		return "", nil, nil
	}
	if m := nextOutputRegex.FindSubmatch(data); m != nil && string(m[1]) != want {
		return "", nil, oerrors.NewValidationError(
			fmt.Sprintf("next.config output is %q", m[1]),
			path,
			"output",
			fmt.Sprintf("Set output: '%s' in %s to deploy this project type.", want, ws.Rel(path)),
		)
	}
	return path, data, nil
}

// patchNextConfig sets output in next.config, leaving a matching value alone
// and rejecting a conflicting one.
func patchNextConfig(ws *workspace.Workspace, want string) (Change, error) {
	path, data, err := readNextConfig(ws, want)
	if err != nil {
		return Change{}, err
	}
	if path == "" {
		output.Debug("no next.config found", "dir", ws.Root)
		return Change{}, nil
	}
	if nextOutputRegex.Match(data) {
		return Change{Path: path, Status: output.StatusUnchanged}, nil
	}

	loc := nextConfigAnchor.FindIndex(data)
	if loc == nil {
		output.Warn("could not find the nextConfig object; set output manually", "file", ws.Rel(path), "output", want)
		return Change{Path: path, Status: output.StatusSkipped}, nil
	}

	patched := insertAfter(data, loc[1], fmt.Sprintf("\n  output: '%s',", want))
	status, err := workspace.WriteFile(path, patched, 0o644)
	return Change{Path: path, Status: status}, err
}

func readFirst(ws *workspace.Workspace, names []string) (string, []byte, bool) {
	for _, name := range names {
		path := ws.AppPath(name)
		data, err := os.ReadFile(path)
		if err == nil {
			return path, data, true
		}
	}
	return "", nil, false
}

func insertAfter(data []byte, at int, text string) []byte {
	out := make([]byte, 0, len(data)+len(text))
	out = append(out, data[:at]...)
	out = append(out, text...)
	return append(out, data[at:]...)
}
