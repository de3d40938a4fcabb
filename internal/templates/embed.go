// Package templates provides the bundled infrastructure templates and their
// rendering.
package templates

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

//go:embed all:assets
var assets embed.FS

const assetRoot = "assets"

// Template identifiers outside the component catalog.
const (
	WorkspacePackageJSON = "workspace/package.json.tmpl"
	WorkspaceTSConfig    = "workspace/tsconfig.json"
	DockerIgnore         = "docker/dockerignore"
	DBTunnelScript       = "scripts/db-tunnel.sh"
	DeployScript         = "scripts/deploy.sh.tmpl"
	NextJSDockerfile     = "docker/nextjs.Dockerfile.tmpl"
	TanstackDockerfile   = "docker/tanstack-start.Dockerfile.tmpl"
)

// Asset returns the raw bytes of a bundled template.
func Asset(id string) ([]byte, error) {
	if !fs.ValidPath(id) {
		return nil, fmt.Errorf("invalid template identifier %q", id)
	}
	data, err := assets.ReadFile(path.Join(assetRoot, id))
	if err != nil {
		return nil, fmt.Errorf("unknown template %q: %w", id, err)
	}
	return data, nil
}

// Exists reports whether id names a bundled template.
func Exists(id string) bool {
	_, err := Asset(id)
	return err == nil
}

// List returns every bundled template identifier under dir, sorted.
func List(dir string) ([]string, error) {
	var ids []string
	root := path.Join(assetRoot, dir)
	err := fs.WalkDir(assets, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ids = append(ids, strings.TrimPrefix(p, assetRoot+"/"))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing templates in %s: %w", dir, err)
	}
	return ids, nil
}

// TargetPath maps a template identifier to its output path by dropping a
// trailing .tmpl.
func TargetPath(id string) string {
	return strings.TrimSuffix(id, ".tmpl")
}
