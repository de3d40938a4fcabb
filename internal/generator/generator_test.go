package generator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/limgen/cli/internal/errors"
	"github.com/limgen/cli/internal/metadata"
	"github.com/limgen/cli/internal/output"
	"github.com/limgen/cli/internal/project"
	"github.com/limgen/cli/internal/templates"
	"github.com/limgen/cli/internal/testutil"
	"github.com/limgen/cli/internal/workspace"
)

// fakeInstaller records installs and checks the project files were already written.
type fakeInstaller struct {
	dir        string
	packages   []string
	sawProject bool
	err        error
}

func (f *fakeInstaller) Install(_ context.Context, dir string, packages []string) error {
	f.dir = dir
	f.packages = packages
	f.sawProject = workspace.Exists(filepath.Join(dir, "projects"))
	return f.err
}

func newGenerator(t *testing.T, files map[string]string) (*Generator, *fakeInstaller) {
	t.Helper()
	root := testutil.NewApp(t, files)
	inst := &fakeInstaller{}
	return &Generator{
		Workspace: workspace.New(root, "infrastructure"),
		Store:     metadata.NewStore(root, "infrastructure", "npm"),
		Renderer:  templates.NewRenderer(),
		Installer: inst,
	}, inst
}

func read(t *testing.T, path string) string {
	t.Helper()
	return testutil.ReadFile(t, path)
}

func TestGenerateFullstackPrivateDB(t *testing.T) {
	g, inst := newGenerator(t, map[string]string{"package.json": `{"name":"shop","scripts":{"dev":"next dev"}}`})
	opts := project.Options{
		Name:           "shop",
		Type:           project.FullstackAWS,
		IncludeStorage: project.Off,
		IncludeDB:      project.On,
		NetworkType:    project.NetworkPrivate,
		Port:           3000,
	}

	res, err := g.Generate(context.Background(), opts)
	require.NoError(t, err)

	ws := g.Workspace
	for _, id := range res.Manifest.Files {
		assert.FileExists(t, ws.InfraPath(id))
		assert.Equal(t, output.StatusCreated, res.Files["infrastructure/"+id], id)
	}
	assert.FileExists(t, ws.InfraPath("package.json"))
	assert.FileExists(t, ws.InfraPath("tsconfig.json"))
	assert.FileExists(t, filepath.Join(ws.ProjectDir("shop"), "index.ts"))
	assert.FileExists(t, ws.InfraPath("scripts", "db-tunnel.sh"))

	info, err := os.Stat(ws.InfraPath("scripts", "db-tunnel.sh"))
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0o100)

	assert.Contains(t, read(t, ws.AppPath("package.json")), `"tunnel": "infrastructure/scripts/db-tunnel.sh shop"`)
	assert.Contains(t, read(t, ws.AppPath(".dockerignore")), "infrastructure/")

	stored, err := g.Store.Read("shop")
	require.NoError(t, err)
	assert.Equal(t, opts, stored)

	assert.Equal(t, ws.InfraPath(), inst.dir)
	assert.Equal(t, res.Manifest.Packages, inst.packages)
	assert.True(t, inst.sawProject)
}

func TestGenerateIsIdempotent(t *testing.T) {
	g, _ := newGenerator(t, nil)
	opts := project.Options{Name: "site", Type: project.StaticsiteAWS, OutputDir: "dist"}

	_, err := g.Generate(context.Background(), opts)
	require.NoError(t, err)

	res, err := g.Generate(context.Background(), opts)
	require.NoError(t, err)
	for path, status := range res.Files {
		assert.Contains(t, []string{output.StatusUnchanged, output.StatusSkipped}, status, path)
	}
}

func TestGenerateStaticsite(t *testing.T) {
	g, _ := newGenerator(t, map[string]string{"package.json": `{"name":"site"}`})
	opts := project.Options{Name: "site", Type: project.StaticsiteAWS, OutputDir: "out/"}

	_, err := g.Generate(context.Background(), opts)
	require.NoError(t, err)

	deploy := read(t, g.Workspace.InfraPath("scripts", "deploy.sh"))
	assert.Contains(t, deploy, "site")
	assert.Contains(t, read(t, g.Workspace.AppPath("package.json")), `"deploy-site": "infrastructure/scripts/deploy.sh"`)
	assert.NoFileExists(t, g.Workspace.AppPath(".dockerignore"))
}

func TestGenerateDryRunWritesNothing(t *testing.T) {
	g, inst := newGenerator(t, nil)
	g.DryRun = true
	opts := project.Options{Name: "app", Type: project.FullstackAzure, Port: 8080}

	res, err := g.Generate(context.Background(), opts)
	require.NoError(t, err)

	assert.NotEmpty(t, res.Files)
	for path, status := range res.Files {
		assert.Equal(t, output.StatusCreated, status, path)
	}
	assert.NoDirExists(t, g.Workspace.InfraPath())
	assert.NoFileExists(t, g.Workspace.AppPath(".dockerignore"))
	assert.Empty(t, inst.dir)
}

func TestGenerateKeepsWorkspaceFiles(t *testing.T) {
	g, _ := newGenerator(t, nil)
	require.NoError(t, os.MkdirAll(g.Workspace.InfraPath(), 0o755))
	require.NoError(t, os.WriteFile(g.Workspace.InfraPath("package.json"), []byte(`{"name":"custom"}`), 0o644))

	res, err := g.Generate(context.Background(), project.Options{Name: "app", Type: project.FullstackAzure, Port: 80})
	require.NoError(t, err)

	assert.Equal(t, output.StatusSkipped, res.Files["infrastructure/package.json"])
	assert.Equal(t, `{"name":"custom"}`, read(t, g.Workspace.InfraPath("package.json")))
}

func TestGenerateRejectsUnresolved(t *testing.T) {
	g, inst := newGenerator(t, nil)

	_, err := g.Generate(context.Background(), project.Options{Name: "shop", Type: project.FullstackAWS})
	assert.ErrorIs(t, err, oerrors.ErrUnresolved)
	assert.NoDirExists(t, g.Workspace.InfraPath())
	assert.Empty(t, inst.dir)
}

func TestGenerateInstallFailure(t *testing.T) {
	g, inst := newGenerator(t, nil)
	inst.err = errors.New("registry unreachable")

	_, err := g.Generate(context.Background(), project.Options{Name: "app", Type: project.FullstackAzure, Port: 80})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registry unreachable")
	assert.FileExists(t, g.Store.Path("app"))
}

func TestGenerateFrameworkConflictWritesNothing(t *testing.T) {
	config := "const nextConfig = {\n  output: 'export',\n};\n"
	g, inst := newGenerator(t, map[string]string{
		"package.json":   testutil.NextPackageJSON,
		"next.config.ts": config,
	})
	opts := project.Options{
		Name:           "web",
		Type:           project.FullstackAWS,
		Framework:      project.NextJS,
		IncludeStorage: project.Off,
		IncludeDB:      project.Off,
		NetworkType:    project.NetworkPublic,
		Port:           3000,
	}

	_, err := g.Generate(context.Background(), opts)
	require.ErrorIs(t, err, oerrors.ErrValidation)

	assert.False(t, g.Store.Exists("web"))
	assert.NoDirExists(t, g.Workspace.InfraPath())
	assert.NoFileExists(t, g.Workspace.AppPath("Dockerfile"))
	assert.Equal(t, config, read(t, g.Workspace.AppPath("next.config.ts")))
	assert.Empty(t, inst.dir)
}

func TestGenerateAppliesFramework(t *testing.T) {
	g, _ := newGenerator(t, map[string]string{
		"next.config.ts": "const nextConfig: NextConfig = {\n};\n",
	})
	opts := project.Options{
		Name:           "shop",
		Type:           project.FullstackAWS,
		Framework:      project.NextJS,
		IncludeStorage: project.Off,
		IncludeDB:      project.Off,
		NetworkType:    project.NetworkPublic,
		Port:           4000,
	}

	res, err := g.Generate(context.Background(), opts)
	require.NoError(t, err)

	assert.Contains(t, read(t, g.Workspace.AppPath("Dockerfile")), "EXPOSE 4000")
	assert.True(t, strings.Contains(read(t, g.Workspace.AppPath("next.config.ts")), "output: 'standalone'"))
	assert.Equal(t, output.StatusCreated, res.Files["Dockerfile"])
}
