// Package component copies bundled components into the infrastructure
// workspace together with the files and packages they import.
package component

import (
	"context"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/limgen/cli/internal/installer"
	"github.com/limgen/cli/internal/templates"
	"github.com/limgen/cli/internal/workspace"
)

var importRegex = regexp.MustCompile(`(?m)^\s*import\s+(?:[\w*\s{},]+?\s+from\s+)?['"]([^'"]+)['"]`)

// Imports returns the module specifiers imported by TypeScript source, in
// order of first appearance.
func Imports(src []byte) []string {
	var specs []string
	for _, m := range importRegex.FindAllSubmatch(src, -1) {
		specs = append(specs, string(m[1]))
	}
	return lo.Uniq(specs)
}

// PackageName reduces an import specifier to its npm package, such as
// "@pulumi/aws/ec2" to "@pulumi/aws". Relative and aliased imports yield "".
func PackageName(spec string) string {
	if strings.HasPrefix(spec, ".") || strings.HasPrefix(spec, "@/") || strings.HasPrefix(spec, "/") {
		return ""
	}
	parts := strings.Split(spec, "/")
	if strings.HasPrefix(spec, "@") {
		if len(parts) < 2 {
			return ""
		}
		return parts[0] + "/" + parts[1]
	}
	return parts[0]
}

// Plan is what adding a component involves.
type Plan struct {
	// Files are template identifiers: the component and every bundled file
	// it reaches through relative imports, sorted.
	Files []string
	// Packages are the npm packages those files import, sorted.
	Packages []string
}

// Resolve builds the plan for the named component.
func Resolve(name string) (*Plan, error) {
	c, err := templates.LookupComponent(name)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	pkgs := map[string]bool{}
	queue := []string{c.ID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if seen[id] {
			continue
		}
		seen[id] = true

		src, err := templates.Asset(id)
		if err != nil {
			return nil, err
		}
		for _, spec := range Imports(src) {
			if pkg := PackageName(spec); pkg != "" {
				pkgs[pkg] = true
				continue
			}
			if dep, ok := bundled(id, spec); ok {
				queue = append(queue, dep)
			}
		}
	}

	plan := &Plan{Files: lo.Keys(seen), Packages: lo.Keys(pkgs)}
	sort.Strings(plan.Files)
	sort.Strings(plan.Packages)
	return plan, nil
}

// bundled maps a relative import in template from to a bundled identifier.
func bundled(from, spec string) (string, bool) {
	if !strings.HasPrefix(spec, ".") {
		return "", false
	}
	id := path.Join(path.Dir(from), spec)
	for _, candidate := range []string{id, id + ".ts", path.Join(id, "index.ts")} {
		if templates.Exists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// Adder copies components into a workspace.
type Adder struct {
	Workspace *workspace.Workspace
	Installer installer.Installer
}

// Add copies the component's files and installs its packages. It returns
// file statuses keyed by path relative to the application root.
func (a *Adder) Add(ctx context.Context, name string) (*Plan, map[string]string, error) {
	plan, err := Resolve(name)
	if err != nil {
		return nil, nil, err
	}

	files := make(map[string]string, len(plan.Files))
	for _, id := range plan.Files {
		data, err := templates.Asset(id)
		if err != nil {
			return plan, files, err
		}
		dest := a.Workspace.InfraPath(templates.TargetPath(id))
		status, err := workspace.WriteFile(dest, data, 0o644)
		if err != nil {
			return plan, files, err
		}
		files[a.Workspace.Rel(dest)] = status
	}

	if a.Installer != nil {
		if err := a.Installer.Install(ctx, a.Workspace.InfraPath(), plan.Packages); err != nil {
			return plan, files, err
		}
	}
	return plan, files, nil
}
