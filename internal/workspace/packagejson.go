package workspace

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/buger/jsonparser"
)

// PackageJSON is a package.json edited in place. Edits keep the existing key
// order.
type PackageJSON struct {
	Path string
	data []byte
}

// ReadPackageJSON loads path. A missing file returns an error matching fs.ErrNotExist.
func ReadPackageJSON(path string) (*PackageJSON, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("%s is not valid JSON", path)
	}
	return &PackageJSON{Path: path, data: data}, nil
}

// Name returns the package name, or "" when absent.
func (p *PackageJSON) Name() string {
	name, err := jsonparser.GetString(p.data, "name")
	if err != nil {
		return ""
	}
	return name
}

// HasDependency reports whether pkg appears in dependencies or devDependencies.
func (p *PackageJSON) HasDependency(pkg string) bool {
	for _, section := range []string{"dependencies", "devDependencies"} {
		if _, _, _, err := jsonparser.Get(p.data, section, pkg); err == nil {
			return true
		}
	}
	return false
}

// Script returns the named script.
func (p *PackageJSON) Script(name string) (string, bool) {
	s, err := jsonparser.GetString(p.data, "scripts", name)
	if err != nil {
		return "", false
	}
	return s, true
}

// SetScript sets scripts.<name>, creating the scripts object when needed.
func (p *PackageJSON) SetScript(name, command string) error {
	value, err := json.Marshal(command)
	if err != nil {
		return err
	}
	updated, err := jsonparser.Set(p.data, value, "scripts", name)
	if err != nil {
		return fmt.Errorf("setting script %s in %s: %w", name, p.Path, err)
	}
	p.data = updated
	return nil
}

// Bytes returns the document re-indented with two spaces.
func (p *PackageJSON) Bytes() ([]byte, error) {
	var compact bytes.Buffer
	if err := json.Compact(&compact, p.data); err != nil {
		return nil, fmt.Errorf("formatting %s: %w", p.Path, err)
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("formatting %s: %w", p.Path, err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// Save writes the document back and reports the file status.
func (p *PackageJSON) Save() (string, error) {
	data, err := p.Bytes()
	if err != nil {
		return "", err
	}
	return WriteFile(p.Path, data, 0o644)
}

// EnsureScript adds scripts.<name> to the package.json at path unless a
// script with that name already exists. A missing package.json is skipped
// and reported with an empty status.
func EnsureScript(path, name, command string) (string, error) {
	data, err := ScriptContent(path, name, command)
	if err != nil || data == nil {
		return "", err
	}
	return WriteFile(path, data, 0o644)
}

// ScriptContent returns the package.json at path with scripts.<name> added,
// or nil when the file is missing or already has that script.
func ScriptContent(path, name, command string) ([]byte, error) {
	pkg, err := ReadPackageJSON(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if _, ok := pkg.Script(name); ok {
		return nil, nil
	}
	if err := pkg.SetScript(name, command); err != nil {
		return nil, err
	}
	return pkg.Bytes()
}
