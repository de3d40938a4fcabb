package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAll_Precedence(t *testing.T) {
	tests := []struct {
		name       string
		flag       string
		env        string
		config     string
		wantValue  string
		wantSource ConfigSource
		shadowed   []ConfigSource
	}{
		{"default only", "", "", "", "npm", SourceDefault, nil},
		{"config beats default", "", "", "yarn", "yarn", SourceConfig, []ConfigSource{SourceDefault}},
		{"env beats config", "", "pnpm", "yarn", "pnpm", SourceEnv, []ConfigSource{SourceConfig, SourceDefault}},
		{"flag beats all", "yarn", "pnpm", "npm", "yarn", SourceFlag, []ConfigSource{SourceEnv, SourceConfig, SourceDefault}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvPackageManager, tt.env)

			resolved := ResolveAll(ResolvedValue{}, ResolveOptions{
				PackageManagerFlag: tt.flag,
				Config:             &Config{PackageManager: tt.config},
			})

			assert.Equal(t, tt.wantValue, resolved.PackageManager.Value)
			assert.Equal(t, tt.wantSource, resolved.PackageManager.Source)
			assert.Len(t, resolved.PackageManager.Shadowed, len(tt.shadowed))
			for _, s := range tt.shadowed {
				assert.Contains(t, resolved.PackageManager.Shadowed, s)
			}
		})
	}
}

func TestResolveAll_NilConfig(t *testing.T) {
	t.Setenv(EnvInfrastructureDir, "")
	t.Setenv(EnvAWSRegion, "")

	resolved := ResolveAll(ResolvedValue{}, ResolveOptions{})
	assert.Equal(t, DefaultInfrastructureDir, resolved.InfrastructureDir.Value)
	assert.Empty(t, resolved.AWSRegion.Value)
	assert.Empty(t, string(resolved.AWSRegion.Source))
	assert.Len(t, resolved.Values(), 5)
}

func TestResolveConfigPath(t *testing.T) {
	t.Run("env wins over default", func(t *testing.T) {
		t.Setenv(EnvConfig, "/tmp/limgen.yaml")
		rv, err := ResolveConfigPath("")
		require.NoError(t, err)
		assert.Equal(t, "/tmp/limgen.yaml", rv.Value)
		assert.Equal(t, SourceEnv, rv.Source)
	})

	t.Run("flag wins over env", func(t *testing.T) {
		t.Setenv(EnvConfig, "/tmp/limgen.yaml")
		rv, err := ResolveConfigPath("./local.yaml")
		require.NoError(t, err)
		assert.Equal(t, "./local.yaml", rv.Value)
		assert.Equal(t, SourceFlag, rv.Source)
		assert.Equal(t, "/tmp/limgen.yaml", rv.Shadowed[SourceEnv])
	})
}
