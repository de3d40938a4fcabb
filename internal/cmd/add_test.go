package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limgen/cli/internal/cmdtypes"
	oerrors "github.com/limgen/cli/internal/errors"
	"github.com/limgen/cli/internal/output"
)

func runAddCmd(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	defer output.ForceTTY(false)()
	var buf bytes.Buffer
	defer output.SetOutput(&buf)()

	c := NewAddCmd(&cmdtypes.GlobalConfig{Directory: dir})
	c.SetArgs(append([]string{}, args...))
	c.SetOut(&buf)
	c.SetErr(&buf)
	err := c.Execute()
	return buf.String(), err
}

func TestAdd_List(t *testing.T) {
	out, err := runAddCmd(t, t.TempDir(), "--list")
	require.NoError(t, err)
	assert.Contains(t, out, "storage-s3")
	assert.Contains(t, out, "vpc-public")
}

func TestAdd_CopiesComponent(t *testing.T) {
	dir := t.TempDir()
	out, err := runAddCmd(t, dir, "storage-s3", "--no-install")
	require.NoError(t, err)
	assert.Contains(t, out, "infrastructure/components/storage-s3.ts")
	assert.FileExists(t, filepath.Join(dir, "infrastructure", "components", "storage-s3.ts"))
}

func TestAdd_UnknownComponent(t *testing.T) {
	_, err := runAddCmd(t, t.TempDir(), "redis", "--no-install")
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitNotFound, exitCode(t, err))
}

func TestAdd_NoComponentWithoutTerminal(t *testing.T) {
	_, err := runAddCmd(t, t.TempDir())
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitUnresolvedInput, exitCode(t, err))
	assert.Contains(t, err.Error(), "limgen add --list")
}
