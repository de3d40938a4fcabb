// Package shell runs external tools such as the package manager and pulumi.
package shell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"

	oerrors "github.com/limgen/cli/internal/errors"
	"github.com/limgen/cli/internal/output"
)

// Runner executes a command in dir and returns its stdout.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec, inheriting the environment.
type ExecRunner struct {
	// Env is appended to the parent environment.
	Env []string
}

// Run implements Runner. A non-zero exit is reported as an external error
// carrying the trimmed stderr.
func (r ExecRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), r.Env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	output.Debug("running command", "cmd", name, "args", strings.Join(args, " "), "dir", dir)
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = errors.New(msg)
		}
		return stdout.Bytes(), oerrors.NewExternalError(name, args, err, hintFor(name))
	}
	return stdout.Bytes(), nil
}

// LookPath reports whether name is on PATH.
func LookPath(name string) (string, bool) {
	path, err := exec.LookPath(name)
	return path, err == nil
}

func hintFor(name string) string {
	if _, ok := LookPath(name); !ok {
		return "Install " + name + " and make sure it is on your PATH."
	}
	return ""
}
