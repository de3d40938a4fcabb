package templates

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/limgen/cli/internal/project"
)

// IndexData feeds the per-type index.ts templates.
type IndexData struct {
	ProjectName    string
	IncludeStorage bool
	IncludeDB      bool
	Private        bool
	StorageAccess  string
	Port           int
	OutputDir      string
}

// IndexDataFor derives template data from resolved options.
func IndexDataFor(opts project.Options) IndexData {
	return IndexData{
		ProjectName:    opts.Name,
		IncludeStorage: opts.IncludeStorage.Bool(),
		IncludeDB:      opts.IncludeDB.Bool(),
		Private:        opts.NetworkType == project.NetworkPrivate,
		StorageAccess:  string(opts.StorageAccess),
		Port:           opts.Port,
		OutputDir:      opts.OutputDir,
	}
}

// DockerfileData feeds the framework Dockerfile templates.
type DockerfileData struct {
	Port int
}

// DeployData feeds the static site deploy script.
type DeployData struct {
	ProjectName string
	OutputDir   string
}

// Renderer executes bundled templates with sprig functions available.
type Renderer struct {
	funcs template.FuncMap
}

// NewRenderer creates a renderer.
func NewRenderer() *Renderer {
	return &Renderer{funcs: sprig.TxtFuncMap()}
}

// Render executes the template id with data. Identifiers without a .tmpl
// suffix are returned verbatim.
func (r *Renderer) Render(id string, data any) ([]byte, error) {
	content, err := Asset(id)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(id, ".tmpl") {
		return content, nil
	}

	tmpl, err := template.New(id).Funcs(r.funcs).Option("missingkey=error").Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", id, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", id, err)
	}
	return buf.Bytes(), nil
}
