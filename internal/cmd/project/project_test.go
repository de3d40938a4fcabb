package project

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limgen/cli/internal/cmdtypes"
	oerrors "github.com/limgen/cli/internal/errors"
	"github.com/limgen/cli/internal/output"
	"github.com/limgen/cli/internal/project"
)

func setup(t *testing.T) *cmdtypes.GlobalConfig {
	t.Helper()
	cfg := &cmdtypes.GlobalConfig{Directory: t.TempDir()}
	store := cfg.Store()
	require.NoError(t, store.Write(project.Options{Name: "api", Type: project.FullstackAzure, Port: 8080}))
	require.NoError(t, store.Write(project.Options{
		Name:           "web",
		Type:           project.FullstackAWS,
		Framework:      project.NextJS,
		IncludeStorage: project.Off,
		IncludeDB:      project.On,
		NetworkType:    project.NetworkPrivate,
		Port:           3000,
	}))
	return cfg
}

func TestListCmd(t *testing.T) {
	cfg := setup(t)

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		c := NewListCmd(cfg)
		c.SetArgs([]string{})
		c.SetOut(&buf)
		require.NoError(t, c.Execute())
		assert.Contains(t, buf.String(), "NAME")
		assert.Regexp(t, `api\W+fullstack-azure\W+-`, buf.String())
		assert.Regexp(t, `web\W+fullstack-aws\W+nextjs`, buf.String())
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		c := NewListCmd(cfg)
		c.SetArgs([]string{"-o", "json"})
		c.SetOut(&buf)
		require.NoError(t, c.Execute())

		var got []map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, "api", got[0]["projectName"])
	})

	t.Run("invalid format", func(t *testing.T) {
		c := NewListCmd(cfg)
		c.SetArgs([]string{"-o", "table"})
		c.SetOut(&bytes.Buffer{})
		assert.Error(t, c.Execute())
	})
}

func TestShowCmd(t *testing.T) {
	defer output.ForceTTY(false)()
	cfg := setup(t)

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		c := NewShowCmd(cfg)
		c.SetArgs([]string{"web"})
		c.SetOut(&buf)
		require.NoError(t, c.Execute())

		out := buf.String()
		assert.Contains(t, out, "Type:       fullstack-aws")
		assert.Contains(t, out, "includeDb")
		assert.Contains(t, out, "components/db-postgres-rds.ts")
		assert.Contains(t, out, "components/bastion-ec2.ts")
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		c := NewShowCmd(cfg)
		c.SetArgs([]string{"api", "-o", "yaml"})
		c.SetOut(&buf)
		require.NoError(t, c.Execute())
		assert.Contains(t, buf.String(), "projectName: api")
		assert.Contains(t, buf.String(), "manifest:")
		assert.Contains(t, buf.String(), "port: 8080")
	})

	t.Run("not found", func(t *testing.T) {
		c := NewShowCmd(cfg)
		c.SetArgs([]string{"nope"})
		c.SetOut(&bytes.Buffer{})
		err := c.Execute()
		var exitErr *oerrors.ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, oerrors.ExitNotFound, exitErr.Code)
	})

	t.Run("several projects without a name", func(t *testing.T) {
		c := NewShowCmd(cfg)
		c.SetArgs([]string{})
		c.SetOut(&bytes.Buffer{})
		err := c.Execute()
		assert.ErrorContains(t, err, "api, web")
	})
}
