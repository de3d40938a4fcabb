// Package envpull writes a project's deployed values into the application's
// .env file.
package envpull

import (
	"context"
	"fmt"
	"sort"
	"strings"

	oerrors "github.com/limgen/cli/internal/errors"
	"github.com/limgen/cli/internal/metadata"
	"github.com/limgen/cli/internal/output"
	"github.com/limgen/cli/internal/project"
	"github.com/limgen/cli/internal/workspace"
)

// EnvFile is the file env-pull writes in the application root.
const EnvFile = ".env"

// Outputs reads pulumi stack outputs.
type Outputs interface {
	Output(ctx context.Context, dir, stack, name string) (string, error)
}

// Puller collects variables for a project's stack and writes them.
type Puller struct {
	Workspace *workspace.Workspace
	Store     *metadata.Store
	Outputs   Outputs

	// Secrets is called at most once, only when a variable needs a secret.
	Secrets func(ctx context.Context) (SecretsGetter, error)
}

// Variables resolves every variable the project's type defines for stack.
func (p *Puller) Variables(ctx context.Context, name, stack string) (map[string]string, error) {
	opts, err := p.Store.Read(name)
	if err != nil {
		return nil, err
	}
	def, err := project.Lookup(opts.Type)
	if err != nil {
		return nil, err
	}
	if def.Env == nil {
		return nil, &oerrors.UnsupportedConfigurationError{
			Field:  "projectType",
			Value:  string(opts.Type),
			Reason: "env-pull is not available for this project type",
		}
	}

	dir := p.Workspace.ProjectDir(name)
	var secrets SecretsGetter
	vars := make(map[string]string)
	for _, v := range def.Env(opts) {
		value, err := p.Outputs.Output(ctx, dir, stack, v.Output)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", v.Name, err)
		}
		if v.Secret {
			if secrets == nil {
				if secrets, err = p.Secrets(ctx); err != nil {
					return nil, err
				}
			}
			if value, err = secrets.SecretString(ctx, value); err != nil {
				return nil, fmt.Errorf("%s: %w", v.Name, err)
			}
		}
		vars[v.Name] = value
	}
	return vars, nil
}

// Pull resolves the variables and writes them to the application's .env,
// returning the file path and its status.
func (p *Puller) Pull(ctx context.Context, name, stack string) (string, string, error) {
	vars, err := p.Variables(ctx, name, stack)
	if err != nil {
		return "", "", err
	}
	if len(vars) == 0 {
		output.Warn("project defines no environment variables for its configuration", "project", name)
	}
	path := p.Workspace.AppPath(EnvFile)
	status, err := workspace.WriteFile(path, FormatEnv(vars), 0o600)
	return path, status, err
}

// FormatEnv renders vars as KEY=value lines sorted by key. Values that a
// dotenv parser would split or expand are double quoted.
func FormatEnv(vars map[string]string) []byte {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(quoteEnv(vars[k]))
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

func quoteEnv(v string) string {
	if !strings.ContainsAny(v, " \t#\"'$`\\\n") {
		return v
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "$", `\$`)
	return `"` + r.Replace(v) + `"`
}
