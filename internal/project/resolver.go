package project

import (
	"sort"

	"github.com/samber/lo"

	oerrors "github.com/limgen/cli/internal/errors"
)

// Resolve computes the dependency manifest for opts.
//
// It is a pure function of opts. Inputs the project type does not declare
// must be unset; declared, active inputs must be resolved. On error no
// manifest is returned.
func Resolve(opts Options) (Manifest, []Warning, error) {
	def, err := Lookup(opts.Type)
	if err != nil {
		return Manifest{}, nil, err
	}
	if err := Check(def, opts); err != nil {
		return Manifest{}, nil, err
	}

	files := append([]string(nil), def.BaseFiles...)
	packages := append([]string(nil), def.BasePackages...)

	for _, rule := range def.Flags {
		if flagValue(opts, rule.Input) != On {
			continue
		}
		files = append(files, rule.Adds.Files...)
		packages = append(packages, rule.Adds.Packages...)
	}

	for _, rule := range def.Selectors {
		choice, ok := rule.Choices[opts.Get(rule.Input)]
		if !ok {
			return Manifest{}, nil, &oerrors.UnsupportedConfigurationError{Field: rule.Input, Value: opts.Get(rule.Input)}
		}
		files = append(files, choice.Files...)
		packages = append(packages, choice.Packages...)
	}

	packages = lo.Uniq(packages)
	sort.Strings(packages)

	return Manifest{
		Files:    lo.Uniq(files),
		Packages: packages,
	}, warnings(opts), nil
}

// Check validates opts against def without computing a manifest.
func Check(def *Definition, opts Options) error {
	if err := validateScalars(opts); err != nil {
		return err
	}
	if _, err := ParseFramework(string(opts.Framework)); err != nil {
		return err
	}
	if err := checkEnums(opts); err != nil {
		return err
	}

	for _, name := range allInputs {
		if !opts.IsSet(name) {
			continue
		}
		in, declared := def.Input(name)
		if !declared {
			return &oerrors.UnsupportedConfigurationError{
				Field:  name,
				Value:  opts.Get(name),
				Reason: "not accepted by project type " + string(def.Type),
			}
		}
		if !in.Active(opts) {
			return &oerrors.UnsupportedConfigurationError{
				Field:  name,
				Value:  opts.Get(name),
				Reason: "does not apply to this configuration",
			}
		}
	}

	for _, in := range def.Inputs {
		if in.Active(opts) && !opts.IsSet(in.Name) {
			return &oerrors.UnresolvedInputError{Field: in.Name}
		}
	}
	return nil
}

func checkEnums(opts Options) error {
	switch opts.NetworkType {
	case NetworkUnresolved, NetworkPublic, NetworkPrivate:
	default:
		return &oerrors.UnsupportedConfigurationError{Field: InputNetworkType, Value: string(opts.NetworkType)}
	}
	switch opts.StorageAccess {
	case StorageAccessUnresolved, StorageAccessPublic, StorageAccessPrivate:
	default:
		return &oerrors.UnsupportedConfigurationError{Field: InputStorageAccess, Value: string(opts.StorageAccess)}
	}
	return nil
}

func flagValue(opts Options, name string) Flag {
	switch name {
	case InputIncludeStorage:
		return opts.IncludeStorage
	case InputIncludeDB:
		return opts.IncludeDB
	default:
		return Unresolved
	}
}

func warnings(opts Options) []Warning {
	var out []Warning
	if opts.NetworkType == NetworkPrivate && opts.IncludeDB == Off {
		out = append(out, Warning{
			Field:   InputNetworkType,
			Message: "private networking without a database adds a bastion host with nothing to tunnel to",
		})
	}
	return out
}
