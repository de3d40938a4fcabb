package project

import (
	"fmt"
	"sort"
	"strconv"

	oerrors "github.com/limgen/cli/internal/errors"
)

// Input names as stored under projectInputs.
const (
	InputIncludeStorage = "includeStorage"
	InputIncludeDB      = "includeDb"
	InputNetworkType    = "networkType"
	InputStorageAccess  = "storageAccess"
	InputPort           = "port"
	InputOutputDir      = "outputDir"
)

// InputKind describes how an input is entered and stored.
type InputKind int

const (
	KindFlag InputKind = iota
	KindEnum
	KindInt
	KindString
)

// InputDef declares one input a project type accepts.
type InputDef struct {
	Name    string
	Kind    InputKind
	Prompt  string
	Choices []string
	// Default is offered by prompts and applied by ApplyDefaults. Empty means none.
	Default string
	// When limits the input to some configurations; nil means always.
	When func(Options) bool
}

// Active reports whether the input applies to opts.
func (d InputDef) Active(opts Options) bool {
	return d.When == nil || d.When(opts)
}

// allInputs lists every input name any project type may declare.
var allInputs = []string{
	InputIncludeStorage,
	InputIncludeDB,
	InputNetworkType,
	InputStorageAccess,
	InputPort,
	InputOutputDir,
}

// IsSet reports whether the named input carries a value.
func (o Options) IsSet(name string) bool {
	switch name {
	case InputIncludeStorage:
		return o.IncludeStorage.Resolved()
	case InputIncludeDB:
		return o.IncludeDB.Resolved()
	case InputNetworkType:
		return o.NetworkType != NetworkUnresolved
	case InputStorageAccess:
		return o.StorageAccess != StorageAccessUnresolved
	case InputPort:
		return o.Port != 0
	case InputOutputDir:
		return o.OutputDir != ""
	default:
		return false
	}
}

// Get returns the string form of the named input, or "" when unset.
func (o Options) Get(name string) string {
	if !o.IsSet(name) {
		return ""
	}
	switch name {
	case InputIncludeStorage:
		return o.IncludeStorage.String()
	case InputIncludeDB:
		return o.IncludeDB.String()
	case InputNetworkType:
		return string(o.NetworkType)
	case InputStorageAccess:
		return string(o.StorageAccess)
	case InputPort:
		return strconv.Itoa(o.Port)
	case InputOutputDir:
		return o.OutputDir
	default:
		return ""
	}
}

// Set parses value into the named input.
func (o *Options) Set(name, value string) error {
	switch name {
	case InputIncludeStorage:
		f, err := ParseFlag(name, value)
		if err != nil {
			return err
		}
		o.IncludeStorage = f
	case InputIncludeDB:
		f, err := ParseFlag(name, value)
		if err != nil {
			return err
		}
		o.IncludeDB = f
	case InputNetworkType:
		o.NetworkType = NetworkType(value)
	case InputStorageAccess:
		o.StorageAccess = StorageAccess(value)
	case InputPort:
		if value == "" {
			o.Port = 0
			return nil
		}
		port, err := strconv.Atoi(value)
		if err != nil {
			return &oerrors.UnsupportedConfigurationError{Field: name, Value: value, Reason: "expected an integer"}
		}
		if port <= 0 {
			return &oerrors.UnsupportedConfigurationError{Field: name, Value: value, Reason: "must be between 1 and 65535"}
		}
		o.Port = port
	case InputOutputDir:
		o.OutputDir = value
	default:
		return &oerrors.UnsupportedConfigurationError{Field: "projectInputs", Value: name, Reason: "unknown input"}
	}
	return nil
}

// Inputs returns the resolved, declared inputs of opts as typed values
// suitable for storage. Unresolved and inactive inputs are omitted.
func (o Options) Inputs() (map[string]any, error) {
	def, err := Lookup(o.Type)
	if err != nil {
		return nil, err
	}

	out := make(map[string]any)
	for _, in := range def.Inputs {
		if !in.Active(o) || !o.IsSet(in.Name) {
			continue
		}
		switch in.Name {
		case InputIncludeStorage:
			out[in.Name] = o.IncludeStorage.Bool()
		case InputIncludeDB:
			out[in.Name] = o.IncludeDB.Bool()
		case InputPort:
			out[in.Name] = o.Port
		default:
			out[in.Name] = o.Get(in.Name)
		}
	}
	return out, nil
}

// SetInputs applies stored inputs onto o. Keys not declared by o.Type are rejected.
func (o *Options) SetInputs(inputs map[string]any) error {
	def, err := Lookup(o.Type)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(inputs))
	for k := range inputs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if _, ok := def.Input(k); !ok {
			return &oerrors.UnsupportedConfigurationError{
				Field:  "projectInputs." + k,
				Value:  fmt.Sprint(inputs[k]),
				Reason: fmt.Sprintf("not accepted by project type %s", o.Type),
			}
		}
		if err := o.Set(k, fmt.Sprint(inputs[k])); err != nil {
			return err
		}
	}
	return nil
}

// ApplyDefaults fills unset, active inputs that declare a default.
func (o *Options) ApplyDefaults() error {
	def, err := Lookup(o.Type)
	if err != nil {
		return err
	}
	for _, in := range def.Inputs {
		if in.Default == "" || !in.Active(*o) || o.IsSet(in.Name) {
			continue
		}
		if err := o.Set(in.Name, in.Default); err != nil {
			return err
		}
	}
	return nil
}

// Missing returns the active inputs of opts that are still unresolved, in
// declaration order.
func (o Options) Missing() ([]InputDef, error) {
	def, err := Lookup(o.Type)
	if err != nil {
		return nil, err
	}
	var missing []InputDef
	for _, in := range def.Inputs {
		if in.Active(o) && !o.IsSet(in.Name) {
			missing = append(missing, in)
		}
	}
	return missing, nil
}
