// Package installer adds npm packages to the infrastructure workspace.
package installer

import (
	"context"
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/limgen/cli/internal/shell"
)

// Installer installs packages into a directory.
type Installer interface {
	Install(ctx context.Context, dir string, packages []string) error
}

// PackageManager installs packages by running npm, pnpm or yarn.
type PackageManager struct {
	Name   string
	Runner shell.Runner
}

// New returns an installer for the named package manager.
func New(name string, runner shell.Runner) (*PackageManager, error) {
	if _, err := addArgs(name, nil); err != nil {
		return nil, err
	}
	if runner == nil {
		runner = shell.ExecRunner{}
	}
	return &PackageManager{Name: name, Runner: runner}, nil
}

// Install adds packages to dir's package.json. Duplicates are dropped and the
// rest are installed in sorted order. An empty list is a no-op.
func (p *PackageManager) Install(ctx context.Context, dir string, packages []string) error {
	pkgs := lo.Uniq(lo.Compact(packages))
	if len(pkgs) == 0 {
		return nil
	}
	sort.Strings(pkgs)

	args, err := addArgs(p.Name, pkgs)
	if err != nil {
		return err
	}
	if _, err := p.Runner.Run(ctx, dir, p.Name, args...); err != nil {
		return fmt.Errorf("installing %d packages: %w", len(pkgs), err)
	}
	return nil
}

func addArgs(manager string, packages []string) ([]string, error) {
	var verb []string
	switch manager {
	case "npm":
		verb = []string{"install", "--save"}
	case "pnpm", "yarn":
		verb = []string{"add"}
	default:
		return nil, fmt.Errorf("unsupported package manager %q", manager)
	}
	return append(verb, packages...), nil
}

// Noop skips installation for --no-install and dry runs.
type Noop struct{}

// Install implements Installer.
func (Noop) Install(context.Context, string, []string) error { return nil }
