package component

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/limgen/cli/internal/errors"
	"github.com/limgen/cli/internal/installer"
	"github.com/limgen/cli/internal/output"
	"github.com/limgen/cli/internal/shell"
	"github.com/limgen/cli/internal/workspace"
)

func TestImports(t *testing.T) {
	src := []byte(`import * as aws from "@pulumi/aws";
import { z } from 'zod';
import { deepMerge } from "../utils/deep-merge";
import "./side-effect";
import {
  a,
} from "multi-line";
import * as aws2 from "@pulumi/aws";
const notAnImport = "import x from 'y'";
`)
	assert.Equal(t, []string{"@pulumi/aws", "zod", "../utils/deep-merge", "./side-effect", "multi-line"}, Imports(src))
}

func TestPackageName(t *testing.T) {
	tests := map[string]string{
		"@pulumi/aws":         "@pulumi/aws",
		"@pulumi/aws/ec2":     "@pulumi/aws",
		"zod":                 "zod",
		"lodash/merge":        "lodash",
		"../utils/deep-merge": "",
		"./x":                 "",
		"@/lib/db":            "",
		"@broken":             "",
	}
	for spec, want := range tests {
		t.Run(spec, func(t *testing.T) {
			assert.Equal(t, want, PackageName(spec))
		})
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name         string
		wantFiles    []string
		wantPackages []string
	}{
		{
			name:         "storage-s3",
			wantFiles:    []string{"components/storage-s3.ts"},
			wantPackages: []string{"@pulumi/aws"},
		},
		{
			name:         "app-azure-acs",
			wantFiles:    []string{"components/app-azure-acs.ts", "utils/deep-merge.ts", "utils/prefixed.ts"},
			wantPackages: []string{"@pulumi/azure-native", "@pulumi/docker", "@pulumi/docker-build", "@pulumi/pulumi"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := Resolve(tt.name)
			require.NoError(t, err)
			assert.Subset(t, plan.Files, tt.wantFiles)
			assert.Subset(t, plan.Packages, tt.wantPackages)
			assert.IsNonDecreasing(t, plan.Files)
			assert.IsNonDecreasing(t, plan.Packages)
			for _, p := range plan.Packages {
				assert.NotContains(t, p, "..")
			}
		})
	}
}

func TestResolveUnknown(t *testing.T) {
	_, err := Resolve("redis")
	assert.ErrorIs(t, err, oerrors.ErrNotFound)
}

func TestAdd(t *testing.T) {
	ws := workspace.New(t.TempDir(), "infrastructure")
	rec := &shell.Recorder{}
	pm, err := installer.New("pnpm", rec)
	require.NoError(t, err)

	a := &Adder{Workspace: ws, Installer: pm}
	plan, files, err := a.Add(context.Background(), "db-postgres-rds")
	require.NoError(t, err)

	for _, id := range plan.Files {
		assert.FileExists(t, ws.InfraPath(id))
		assert.Equal(t, output.StatusCreated, files["infrastructure/"+id])
	}
	require.Len(t, rec.Calls, 1)
	assert.Equal(t, "pnpm", rec.Calls[0].Name)
	assert.Contains(t, rec.Calls[0].Args, "@pulumi/random")
	assert.Equal(t, ws.InfraPath(), rec.Calls[0].Dir)

	_, files, err = a.Add(context.Background(), "db-postgres-rds")
	require.NoError(t, err)
	for path, status := range files {
		assert.Equal(t, output.StatusUnchanged, status, path)
	}
}
