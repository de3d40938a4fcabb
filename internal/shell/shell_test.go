package shell

import (
	"context"
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/limgen/cli/internal/errors"
)

func TestExecRunner(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	r := ExecRunner{Env: []string{"LIMGEN_TEST_VALUE=hello"}}

	out, err := r.Run(context.Background(), t.TempDir(), "sh", "-c", "printf %s \"$LIMGEN_TEST_VALUE\"")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(out))

	_, err = r.Run(context.Background(), t.TempDir(), "sh", "-c", "echo broken >&2; exit 3")
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrExternal)
	assert.Contains(t, err.Error(), "broken")
}

func TestRecorder(t *testing.T) {
	rec := &Recorder{
		Responses: map[string][]byte{"pulumi stack ls --json": []byte("[]")},
		Errors:    map[string]error{"npm install": errors.New("offline")},
	}

	out, err := rec.Run(context.Background(), "/tmp", "pulumi", "stack", "ls", "--json")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(out))

	_, err = rec.Run(context.Background(), "/tmp", "npm", "install")
	assert.EqualError(t, err, "offline")

	assert.Equal(t, []string{"pulumi stack ls --json", "npm install"}, rec.Commands())
}
