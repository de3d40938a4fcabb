// Package metadata persists project options in the Pulumi project file that
// sits beside each generated project.
package metadata

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"

	oerrors "github.com/limgen/cli/internal/errors"
	"github.com/limgen/cli/internal/project"
)

// Namespace is the reserved top-level key holding limgen's section.
const Namespace = "limgen"

// FileName is the metadata file inside each project directory.
const FileName = "Pulumi.yaml"

const description = "A pulumi project created with limgen"

// Section is the stored form of a project's options.
type Section struct {
	ProjectName   string         `yaml:"projectName" json:"projectName"`
	ProjectType   string         `yaml:"projectType" json:"projectType"`
	Framework     string         `yaml:"framework,omitempty" json:"framework,omitempty"`
	ProjectInputs map[string]any `yaml:"projectInputs" json:"projectInputs"`
}

// Store reads and writes project metadata under <root>/<infraDir>/projects.
type Store struct {
	root           string
	infraDir       string
	packageManager string
}

// NewStore returns a store rooted at the application directory.
func NewStore(root, infraDir, packageManager string) *Store {
	if infraDir == "" {
		infraDir = "infrastructure"
	}
	if packageManager == "" {
		packageManager = "npm"
	}
	return &Store{root: root, infraDir: infraDir, packageManager: packageManager}
}

// ProjectsDir is the directory holding one subdirectory per project.
func (s *Store) ProjectsDir() string {
	return filepath.Join(s.root, s.infraDir, "projects")
}

// Path returns the metadata file path for a project.
func (s *Store) Path(name string) string {
	return filepath.Join(s.ProjectsDir(), name, FileName)
}

// Exists reports whether a metadata file exists for name.
func (s *Store) Exists(name string) bool {
	_, err := os.Stat(s.Path(name))
	return err == nil
}

// Render returns the current file content (nil when absent) and the content
// Write would produce for opts, without touching the filesystem.
func (s *Store) Render(opts project.Options) (before, after []byte, err error) {
	if err := project.ValidateName(opts.Name); err != nil {
		return nil, nil, err
	}
	def, err := project.Lookup(opts.Type)
	if err != nil {
		return nil, nil, err
	}
	if err := project.Check(def, opts); err != nil {
		return nil, nil, err
	}

	inputs, err := opts.Inputs()
	if err != nil {
		return nil, nil, err
	}

	path := s.Path(opts.Name)
	before, err = os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var doc yaml.Node
	if len(bytes.TrimSpace(before)) > 0 {
		if err := yaml.Unmarshal(before, &doc); err != nil {
			return nil, nil, &oerrors.MetadataCorruptError{Path: path, Cause: err}
		}
	}
	if doc.Kind == 0 || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		doc = baseDocument(opts.Name, s.packageManager, def.PulumiTemplate)
	}

	section := Section{
		ProjectName:   opts.Name,
		ProjectType:   string(opts.Type),
		Framework:     string(opts.Framework),
		ProjectInputs: inputs,
	}
	var sectionNode yaml.Node
	if err := sectionNode.Encode(section); err != nil {
		return nil, nil, fmt.Errorf("encoding metadata: %w", err)
	}
	setKey(doc.Content[0], Namespace, &sectionNode)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, nil, fmt.Errorf("encoding metadata: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, nil, fmt.Errorf("encoding metadata: %w", err)
	}
	return before, buf.Bytes(), nil
}

// Write stores opts, preserving every key outside the limgen section.
// The file is replaced atomically.
func (s *Store) Write(opts project.Options) error {
	_, data, err := s.Render(opts)
	if err != nil {
		return err
	}

	path := s.Path(opts.Name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating project directory: %w", err)
	}
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Read loads the stored options for name.
func (s *Store) Read(name string) (project.Options, error) {
	section, err := s.ReadSection(name)
	if err != nil {
		return project.Options{}, err
	}

	typ, err := project.ParseType(section.ProjectType)
	if err != nil {
		return project.Options{}, err
	}
	framework, err := project.ParseFramework(section.Framework)
	if err != nil {
		return project.Options{}, err
	}

	opts := project.Options{Name: section.ProjectName, Type: typ, Framework: framework}
	if err := opts.SetInputs(section.ProjectInputs); err != nil {
		return project.Options{}, err
	}
	def, err := project.Lookup(typ)
	if err != nil {
		return project.Options{}, err
	}
	if err := project.Check(def, opts); err != nil {
		field := Namespace + ".projectInputs"
		if f := inputField(err); f != "" {
			field += "." + f
		}
		return project.Options{}, &oerrors.MetadataCorruptError{Path: s.Path(name), Field: field, Cause: err}
	}
	return opts, nil
}

func inputField(err error) string {
	var unresolved *oerrors.UnresolvedInputError
	if errors.As(err, &unresolved) {
		return unresolved.Field
	}
	var unsupported *oerrors.UnsupportedConfigurationError
	if errors.As(err, &unsupported) {
		return unsupported.Field
	}
	return ""
}

// ReadSection loads and validates the raw limgen section for name.
func (s *Store) ReadSection(name string) (*Section, error) {
	path := s.Path(name)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &oerrors.MetadataNotFoundError{Project: name, Path: path}
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &oerrors.MetadataCorruptError{Path: path, Cause: err}
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, &oerrors.MetadataCorruptError{Path: path, Field: Namespace, Cause: errors.New("document is not a mapping")}
	}

	node := lookupKey(doc.Content[0], Namespace)
	if node == nil {
		return nil, &oerrors.MetadataCorruptError{Path: path, Field: Namespace, Cause: errors.New("section missing")}
	}

	var raw map[string]any
	if err := node.Decode(&raw); err != nil {
		return nil, &oerrors.MetadataCorruptError{Path: path, Field: Namespace, Cause: err}
	}
	violation, err := validateSection(raw)
	if err != nil {
		return nil, err
	}
	if violation != nil {
		return nil, &oerrors.MetadataCorruptError{Path: path, Field: violation.field, Cause: violation.err}
	}

	var section Section
	if err := node.Decode(&section); err != nil {
		return nil, &oerrors.MetadataCorruptError{Path: path, Field: Namespace, Cause: err}
	}
	if section.ProjectName != name {
		return nil, &oerrors.MetadataCorruptError{
			Path:  path,
			Field: Namespace + ".projectName",
			Cause: fmt.Errorf("expected %q, found %q", name, section.ProjectName),
		}
	}
	if section.ProjectInputs == nil {
		section.ProjectInputs = map[string]any{}
	}
	return &section, nil
}

// List returns the names of all projects with a metadata file, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.ProjectsDir())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() && s.Exists(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func baseDocument(name, packageManager, template string) yaml.Node {
	root := mapping(
		"name", scalar(name),
		"description", scalar(description),
		"runtime", mapping(
			"name", scalar("nodejs"),
			"options", mapping("packagemanager", scalar(packageManager)),
		),
		"config", mapping(
			"pulumi:tags", mapping(
				"value", mapping("pulumi:template", scalar(template)),
			),
		),
	)
	return yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

// mapping builds a mapping node from alternating string keys and value nodes.
func mapping(kv ...any) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for i := 0; i+1 < len(kv); i += 2 {
		n.Content = append(n.Content, scalar(kv[i].(string)), kv[i+1].(*yaml.Node))
	}
	return n
}

func lookupKey(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

func setKey(m *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			m.Content[i+1] = value
			return
		}
	}
	m.Content = append(m.Content, scalar(key), value)
}
