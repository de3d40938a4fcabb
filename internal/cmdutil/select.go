package cmdutil

import (
	"fmt"
	"strings"

	oerrors "github.com/limgen/cli/internal/errors"
	"github.com/limgen/cli/internal/metadata"
	"github.com/limgen/cli/internal/output"
	"github.com/limgen/cli/internal/prompt"
)

// Prompter returns a terminal prompter, or nil when stdin/stdout is not a TTY.
func Prompter() prompt.Prompter {
	if !output.IsTTY() {
		return nil
	}
	return prompt.Huh{}
}

// SelectProject returns name when set. Otherwise it picks the only project
// in the store, or asks p to choose among several.
func SelectProject(store *metadata.Store, name string, p prompt.Prompter) (string, error) {
	if name != "" {
		return name, nil
	}

	names, err := store.List()
	if err != nil {
		return "", err
	}
	switch {
	case len(names) == 0:
		return "", oerrors.NewNotFoundError("no projects found", store.ProjectsDir(), "Run 'limgen init' to create one.")
	case len(names) == 1:
		return names[0], nil
	case p == nil:
		return "", oerrors.NewValidationError(
			fmt.Sprintf("%d projects found", len(names)),
			store.ProjectsDir(),
			"project",
			"Pass --project with one of: "+strings.Join(names, ", "),
		)
	}
	return p.Select("Select a project", names, names[0])
}

// SelectStack returns stack when set, the only stack when there is one, or
// asks p to choose.
func SelectStack(stacks []string, stack string, p prompt.Prompter) (string, error) {
	if stack != "" {
		return stack, nil
	}
	switch {
	case len(stacks) == 0:
		return "", oerrors.NewNotFoundError("no stacks found", "", "Create one with 'pulumi stack init'.")
	case len(stacks) == 1:
		return stacks[0], nil
	case p == nil:
		return "", oerrors.NewValidationError(
			fmt.Sprintf("%d stacks found", len(stacks)),
			"",
			"stack",
			"Pass --stack with one of: "+strings.Join(stacks, ", "),
		)
	}
	return p.Select("Select a stack", stacks, stacks[0])
}
