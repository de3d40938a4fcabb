package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/limgen/cli/internal/errors"
	"github.com/limgen/cli/internal/project"
)

func TestCollectFullstackAWS(t *testing.T) {
	p := &Scripted{Answers: map[string]string{
		"Include storage?":    "true",
		"Storage access":      "private",
		"Include a database?": "false",
		"Network type":        "public",
		"Port to expose":      "8080",
	}}
	opts := project.Options{Name: "shop", Type: project.FullstackAWS}

	require.NoError(t, Collect(p, &opts, nil))

	assert.Equal(t, project.On, opts.IncludeStorage)
	assert.Equal(t, project.StorageAccessPrivate, opts.StorageAccess)
	assert.Equal(t, project.Off, opts.IncludeDB)
	assert.Equal(t, project.NetworkPublic, opts.NetworkType)
	assert.Equal(t, 8080, opts.Port)
	assert.Equal(t, []string{"Include storage?", "Storage access", "Include a database?", "Network type", "Port to expose"}, p.Asked)
}

func TestCollectSkipsInactiveAndSetInputs(t *testing.T) {
	p := &Scripted{Answers: map[string]string{
		"Include storage?": "false",
		"Network type":     "private",
	}}
	opts := project.Options{Name: "shop", Type: project.FullstackAWS, IncludeDB: project.On, Port: 3000}

	require.NoError(t, Collect(p, &opts, nil))

	assert.Equal(t, []string{"Include storage?", "Network type"}, p.Asked)
	assert.Equal(t, project.StorageAccessUnresolved, opts.StorageAccess)
}

func TestCollectNothingMissing(t *testing.T) {
	p := &Scripted{}
	opts := project.Options{Name: "site", Type: project.StaticsiteAWS, OutputDir: "dist"}

	require.NoError(t, Collect(p, &opts, nil))
	assert.Empty(t, p.Asked)
}

func TestCollectUnansweredFails(t *testing.T) {
	opts := project.Options{Name: "site", Type: project.StaticsiteAWS}
	err := Collect(&Scripted{}, &opts, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outputDir")
}

func TestCollectRejectsBadPort(t *testing.T) {
	p := &Scripted{Answers: map[string]string{"Port to expose": "http"}}
	opts := project.Options{Name: "app", Type: project.FullstackAzure}
	assert.Error(t, Collect(p, &opts, nil))
}

// blank answers every prompt with an empty value.
type blank struct{ asked int }

func (b *blank) Confirm(string, bool) (bool, error) { b.asked++; return false, nil }

func (b *blank) Select(string, []string, string) (string, error) { b.asked++; return "", nil }

func (b *blank) Input(string, string, func(string) error) (string, error) { b.asked++; return "", nil }

func TestCollectEmptyAnswerFails(t *testing.T) {
	tests := []struct {
		name  string
		opts  project.Options
		field string
	}{
		{
			name:  "enum",
			opts:  project.Options{Name: "shop", Type: project.FullstackAWS, IncludeStorage: project.Off, IncludeDB: project.Off},
			field: project.InputNetworkType,
		},
		{
			name:  "string",
			opts:  project.Options{Name: "site", Type: project.StaticsiteAWS},
			field: project.InputOutputDir,
		},
		{
			name:  "int",
			opts:  project.Options{Name: "app", Type: project.FullstackAzure},
			field: project.InputPort,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &blank{}
			err := Collect(p, &tt.opts, nil)

			var unresolved *oerrors.UnresolvedInputError
			require.ErrorAs(t, err, &unresolved)
			assert.Equal(t, tt.field, unresolved.Field)
			assert.Equal(t, 1, p.asked)
		})
	}
}
