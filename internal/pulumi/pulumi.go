// Package pulumi queries the pulumi CLI for stacks and stack outputs.
package pulumi

import (
	"context"
	"fmt"
	"strings"

	"github.com/buger/jsonparser"

	"github.com/limgen/cli/internal/shell"
)

// Binary is the pulumi executable name.
const Binary = "pulumi"

// Stack is one entry of `pulumi stack ls`.
type Stack struct {
	Name    string
	Current bool
}

// Client runs pulumi commands through a shell.Runner.
type Client struct {
	Runner shell.Runner
}

// NewClient returns a client; a nil runner uses os/exec.
func NewClient(runner shell.Runner) *Client {
	if runner == nil {
		runner = shell.ExecRunner{}
	}
	return &Client{Runner: runner}
}

// Stacks lists the stacks of the project in dir.
func (c *Client) Stacks(ctx context.Context, dir string) ([]Stack, error) {
	out, err := c.Runner.Run(ctx, dir, Binary, "stack", "ls", "--json")
	if err != nil {
		return nil, err
	}
	return parseStacks(out)
}

func parseStacks(data []byte) ([]Stack, error) {
	stacks := []Stack{}
	var parseErr error
	_, err := jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, _ int, _ error) {
		if parseErr != nil || dataType != jsonparser.Object {
			return
		}
		name, err := jsonparser.GetString(value, "name")
		if err != nil {
			parseErr = fmt.Errorf("stack entry without a name: %w", err)
			return
		}
		current, _ := jsonparser.GetBoolean(value, "current")
		stacks = append(stacks, Stack{Name: name, Current: current})
	})
	if err != nil {
		return nil, fmt.Errorf("parsing stack list: %w", err)
	}
	if parseErr != nil {
		return nil, parseErr
	}
	return stacks, nil
}

// Output reads a single stack output as a plain string.
func (c *Client) Output(ctx context.Context, dir, stack, name string) (string, error) {
	out, err := c.Runner.Run(ctx, dir, Binary, "stack", "output", name, "--stack", stack)
	if err != nil {
		return "", err
	}
	value := strings.TrimSpace(string(out))
	if value == "" {
		return "", fmt.Errorf("stack %s has no output %q", stack, name)
	}
	return value, nil
}

// Version returns the installed pulumi version, such as "v3.142.0".
func (c *Client) Version(ctx context.Context) (string, error) {
	out, err := c.Runner.Run(ctx, "", Binary, "version")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
