package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limgen/cli/internal/cmdtypes"
	"github.com/limgen/cli/internal/output"
)

func TestVersionCmd(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	var buf bytes.Buffer
	defer output.SetOutput(&buf)()

	c := NewVersionCmd(&cmdtypes.GlobalConfig{})
	c.SetArgs([]string{})
	require.NoError(t, c.Execute())

	out := buf.String()
	assert.Contains(t, out, "limgen:")
	assert.Contains(t, out, "CUE SDK:")
	assert.Contains(t, out, "Pulumi:")
	assert.Contains(t, out, "not found")
}
