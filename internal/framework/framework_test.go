package framework

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/limgen/cli/internal/errors"
	"github.com/limgen/cli/internal/project"
	"github.com/limgen/cli/internal/templates"
	"github.com/limgen/cli/internal/testutil"
	"github.com/limgen/cli/internal/workspace"
)

func newApp(t *testing.T, files map[string]string) *workspace.Workspace {
	t.Helper()
	return workspace.New(testutil.NewApp(t, files), "")
}

func readApp(t *testing.T, ws *workspace.Workspace, name string) string {
	t.Helper()
	return testutil.ReadFile(t, ws.AppPath(name))
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  project.Framework
	}{
		{"no package.json", nil, project.FrameworkUnknown},
		{"next dependency", map[string]string{"package.json": testutil.NextPackageJSON}, project.NextJS},
		{"tanstack react start", map[string]string{"package.json": testutil.TanstackPackageJSON}, project.TanstackStart},
		{"tanstack start dev dependency", map[string]string{"package.json": `{"devDependencies":{"@tanstack/start":"1.0.0"}}`}, project.TanstackStart},
		{"plain express", map[string]string{"package.json": `{"dependencies":{"express":"4.0.0"}}`}, project.FrameworkUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Detect(newApp(t, tt.files))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectInvalidPackageJSON(t *testing.T) {
	_, err := Detect(newApp(t, map[string]string{"package.json": "{"}))
	assert.Error(t, err)
}

func TestProjectTypes(t *testing.T) {
	assert.Equal(t, project.Types(), ProjectTypes(project.FrameworkUnknown))

	next := ProjectTypes(project.NextJS)
	assert.Equal(t, project.FullstackAWS, next[0])
	assert.ElementsMatch(t, project.Types(), next)

	tanstack := ProjectTypes(project.TanstackStart)
	assert.Equal(t, project.FullstackAWS, tanstack[0])
	assert.Len(t, tanstack, len(project.Types()))
}

func TestDockerfilePort(t *testing.T) {
	tests := []struct {
		name       string
		dockerfile *string
		want       int
	}{
		{"no dockerfile", nil, DefaultPort},
		{"expose line", strp("FROM node:20\nEXPOSE 8080\nCMD [\"node\"]\n"), 8080},
		{"lowercase expose", strp("FROM node:20\nexpose 4000\n"), 4000},
		{"no expose", strp("FROM node:20\n"), DefaultPort},
		{"out of range", strp("EXPOSE 70000\n"), DefaultPort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := map[string]string{}
			if tt.dockerfile != nil {
				files["Dockerfile"] = *tt.dockerfile
			}
			assert.Equal(t, tt.want, PortDefault(newApp(t, files)))
		})
	}
}

func TestNextJSApplyFullstack(t *testing.T) {
	ws := newApp(t, map[string]string{
		"next.config.ts": "import type { NextConfig } from \"next\";\n\nconst nextConfig: NextConfig = {\n  reactStrictMode: true,\n};\n\nexport default nextConfig;\n",
	})
	a, ok := For(project.NextJS)
	require.True(t, ok)

	opts := project.Options{Name: "shop", Type: project.FullstackAWS, Port: 8080}
	changes, err := a.Apply(context.Background(), ws, opts, templates.NewRenderer())
	require.NoError(t, err)
	assert.Len(t, changes, 3)

	assert.Contains(t, readApp(t, ws, "Dockerfile"), "EXPOSE 8080")
	assert.Contains(t, readApp(t, ws, "next.config.ts"), "const nextConfig: NextConfig = {\n  output: 'standalone',\n  reactStrictMode: true,")
	assert.Contains(t, readApp(t, ws, ".dockerignore"), "node_modules")

	// A second run leaves everything as it is.
	_, err = a.Apply(context.Background(), ws, opts, templates.NewRenderer())
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(readApp(t, ws, "next.config.ts"), "output:"))
}

func TestNextJSApplyStaticsite(t *testing.T) {
	ws := newApp(t, map[string]string{
		"next.config.js": "const nextConfig = {\n};\nmodule.exports = nextConfig;\n",
	})
	a, _ := For(project.NextJS)

	_, err := a.Apply(context.Background(), ws, project.Options{Name: "site", Type: project.StaticsiteAWS}, templates.NewRenderer())
	require.NoError(t, err)

	assert.Contains(t, readApp(t, ws, "next.config.js"), "output: 'export',")
	assert.NoFileExists(t, ws.AppPath("Dockerfile"))
}

func TestNextJSConflictingOutput(t *testing.T) {
	ws := newApp(t, map[string]string{
		"next.config.ts": "const nextConfig: NextConfig = {\n  output: \"export\",\n};\n",
	})
	a, _ := For(project.NextJS)

	_, err := a.Apply(context.Background(), ws, project.Options{Name: "shop", Type: project.FullstackAWS}, templates.NewRenderer())
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrValidation)
}

func TestNextJSCheck(t *testing.T) {
	a, _ := For(project.NextJS)

	tests := []struct {
		name    string
		config  string
		typ     project.Type
		wantErr bool
	}{
		{name: "no config", typ: project.FullstackAWS},
		{name: "unset output", config: "const nextConfig = {\n};\n", typ: project.StaticsiteAWS},
		{name: "matching output", config: "const nextConfig = {\n  output: 'standalone',\n};\n", typ: project.FullstackAzure},
		{name: "export for a container", config: "const nextConfig = {\n  output: 'export',\n};\n", typ: project.FullstackAWS, wantErr: true},
		{name: "standalone for a static site", config: "const nextConfig = {\n  output: 'standalone',\n};\n", typ: project.StaticsiteAWS, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := map[string]string{}
			if tt.config != "" {
				files["next.config.mjs"] = tt.config
			}
			ws := newApp(t, files)

			err := a.Check(ws, project.Options{Name: "web", Type: tt.typ})
			if tt.wantErr {
				assert.ErrorIs(t, err, oerrors.ErrValidation)
			} else {
				require.NoError(t, err)
			}
			if tt.config != "" {
				assert.Equal(t, tt.config, readApp(t, ws, "next.config.mjs"), "check writes nothing")
			}
			assert.NoFileExists(t, ws.AppPath("Dockerfile"))
		})
	}
}

func TestNextJSApplyAzureAddsDockerfile(t *testing.T) {
	ws := newApp(t, nil)
	a, _ := For(project.NextJS)

	_, err := a.Apply(context.Background(), ws, project.Options{Name: "portal", Type: project.FullstackAzure, Port: 8080}, templates.NewRenderer())
	require.NoError(t, err)
	assert.Contains(t, readApp(t, ws, "Dockerfile"), "EXPOSE 8080")
	assert.Contains(t, readApp(t, ws, ".dockerignore"), ".next")
}

func TestNextJSKeepsExistingDockerfile(t *testing.T) {
	ws := newApp(t, map[string]string{"Dockerfile": "FROM custom\n"})
	a, _ := For(project.NextJS)

	_, err := a.Apply(context.Background(), ws, project.Options{Name: "shop", Type: project.FullstackAWS, Port: 3000}, templates.NewRenderer())
	require.NoError(t, err)
	assert.Equal(t, "FROM custom\n", readApp(t, ws, "Dockerfile"))
}

func TestTanstackApply(t *testing.T) {
	tests := []struct {
		name      string
		appConfig string
		wantErr   bool
		contains  string
	}{
		{
			name:      "inserts server preset",
			appConfig: "import { defineConfig } from '@tanstack/react-start/config'\n\nexport default defineConfig({\n  tsr: {},\n})\n",
			contains:  "export default defineConfig({\n  server: { preset: 'node-server' },\n  tsr: {},",
		},
		{
			name:      "accepts node-server",
			appConfig: "export default defineConfig({\n  server: { preset: 'node-server' },\n})\n",
			contains:  "preset: 'node-server'",
		},
		{
			name:      "rejects other presets",
			appConfig: "export default defineConfig({\n  server: { preset: 'vercel' },\n})\n",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := newApp(t, map[string]string{"app.config.ts": tt.appConfig})
			a, ok := For(project.TanstackStart)
			require.True(t, ok)

			_, err := a.Apply(context.Background(), ws, project.Options{Name: "app", Type: project.FullstackAWS, Port: 3000}, templates.NewRenderer())
			if tt.wantErr {
				assert.ErrorIs(t, err, oerrors.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, readApp(t, ws, "app.config.ts"), tt.contains)
			assert.FileExists(t, ws.AppPath("Dockerfile"))

			ignore := readApp(t, ws, ".dockerignore")
			for _, entry := range tanstackIgnores {
				assert.Contains(t, ignore, entry)
			}
		})
	}
}

func TestTanstackCheck(t *testing.T) {
	a, _ := For(project.TanstackStart)
	opts := project.Options{Name: "app", Type: project.FullstackAWS, Port: 3000}

	ws := newApp(t, map[string]string{"app.config.ts": "export default defineConfig({\n  server: { preset: 'vercel' },\n})\n"})
	assert.ErrorIs(t, a.Check(ws, opts), oerrors.ErrValidation)
	assert.NoFileExists(t, ws.AppPath(".dockerignore"))

	ws = newApp(t, map[string]string{"app.config.ts": "export default defineConfig({\n})\n"})
	require.NoError(t, a.Check(ws, opts))
	assert.Equal(t, "export default defineConfig({\n})\n", readApp(t, ws, "app.config.ts"))
}

func TestForUnknown(t *testing.T) {
	_, ok := For(project.FrameworkUnknown)
	assert.False(t, ok)
}

func strp(s string) *string { return &s }
