// Package workspace locates and edits files in the application being
// scaffolded and in its infrastructure directory.
package workspace

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"

	"github.com/limgen/cli/internal/output"
)

// Workspace is an application root plus its infrastructure directory.
type Workspace struct {
	Root     string
	InfraDir string
}

// New returns a workspace rooted at root. infraDir is relative to root.
func New(root, infraDir string) *Workspace {
	if infraDir == "" {
		infraDir = "infrastructure"
	}
	return &Workspace{Root: root, InfraDir: infraDir}
}

// AppPath joins rel onto the application root.
func (w *Workspace) AppPath(rel ...string) string {
	return filepath.Join(append([]string{w.Root}, rel...)...)
}

// InfraPath joins rel onto the infrastructure directory.
func (w *Workspace) InfraPath(rel ...string) string {
	return filepath.Join(append([]string{w.Root, w.InfraDir}, rel...)...)
}

// ProjectDir is where a project's index.ts and Pulumi.yaml live.
func (w *Workspace) ProjectDir(name string) string {
	return w.InfraPath("projects", name)
}

// Rel returns path relative to the application root for display.
func (w *Workspace) Rel(path string) string {
	rel, err := filepath.Rel(w.Root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// WriteFile atomically writes data to path when its content differs and
// reports one of the output status constants.
func WriteFile(path string, data []byte, perm fs.FileMode) (string, error) {
	current, err := os.ReadFile(path)
	switch {
	case err == nil && bytes.Equal(current, data):
		return output.StatusUnchanged, nil
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	status := output.StatusUpdated
	if err != nil {
		status = output.StatusCreated
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := renameio.WriteFile(path, data, perm); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return status, nil
}

// WriteFileIfAbsent writes data only when path does not exist yet.
func WriteFileIfAbsent(path string, data []byte, perm fs.FileMode) (string, error) {
	if Exists(path) {
		return output.StatusSkipped, nil
	}
	return WriteFile(path, data, perm)
}

// StatusFor reports what WriteFile would do with data without writing.
func StatusFor(path string, data []byte) (string, error) {
	current, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return output.StatusCreated, nil
	case err != nil:
		return "", fmt.Errorf("reading %s: %w", path, err)
	case bytes.Equal(current, data):
		return output.StatusUnchanged, nil
	default:
		return output.StatusUpdated, nil
	}
}
