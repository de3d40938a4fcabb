// Package testutil provides test helpers for application fixtures.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Package manifests for the frameworks limgen recognizes.
const (
	NextPackageJSON     = `{"name":"app","dependencies":{"next":"15.0.0","react":"19.0.0"}}`
	TanstackPackageJSON = `{"name":"app","dependencies":{"@tanstack/react-start":"1.0.0"}}`
)

// NewApp creates an application directory holding files, keyed by path
// relative to the root, and returns the root.
func NewApp(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		WriteFile(t, root, name, content)
	}
	return root
}

// WriteFile creates a file with the given content in the specified directory.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// ReadFile returns the content of path, failing the test when it is unreadable.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}
