// Package project defines project options, the project-type registry and the
// pure dependency resolver that maps options to a manifest.
package project

import (
	"strconv"

	oerrors "github.com/limgen/cli/internal/errors"
)

// Type is a deployment shape.
type Type string

const (
	FullstackAWS   Type = "fullstack-aws"
	StaticsiteAWS  Type = "staticsite-aws"
	FullstackAzure Type = "fullstack-azure"
)

// Types returns every supported project type in display order.
func Types() []Type {
	return []Type{FullstackAWS, StaticsiteAWS, FullstackAzure}
}

// ParseType validates s as a project type.
func ParseType(s string) (Type, error) {
	for _, t := range Types() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", &oerrors.UnsupportedConfigurationError{Field: "projectType", Value: s}
}

// Framework identifies the host application framework. The zero value means
// no framework was recorded.
type Framework string

const (
	FrameworkNone    Framework = ""
	NextJS           Framework = "nextjs"
	TanstackStart    Framework = "tanstack-start"
	FrameworkUnknown Framework = "unknown"
)

// ParseFramework validates s as a framework. The empty string is accepted.
func ParseFramework(s string) (Framework, error) {
	switch f := Framework(s); f {
	case FrameworkNone, NextJS, TanstackStart, FrameworkUnknown:
		return f, nil
	default:
		return "", &oerrors.UnsupportedConfigurationError{Field: "framework", Value: s}
	}
}

// Flag is a tri-state boolean. The zero value is Unresolved.
type Flag int

const (
	Unresolved Flag = iota
	Off
	On
)

// FlagOf converts a resolved bool.
func FlagOf(b bool) Flag {
	if b {
		return On
	}
	return Off
}

// ParseFlag accepts "true", "false" and "unresolved"/"" (case-sensitive).
func ParseFlag(field, s string) (Flag, error) {
	switch s {
	case "", "unresolved", "unknown":
		return Unresolved, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return Unresolved, &oerrors.UnsupportedConfigurationError{Field: field, Value: s, Reason: "expected true or false"}
	}
	return FlagOf(b), nil
}

// Resolved reports whether f carries a value.
func (f Flag) Resolved() bool { return f != Unresolved }

// Bool returns true only for On.
func (f Flag) Bool() bool { return f == On }

func (f Flag) String() string {
	switch f {
	case On:
		return "true"
	case Off:
		return "false"
	default:
		return "unresolved"
	}
}

// NetworkType selects public or private networking for fullstack-aws.
type NetworkType string

const (
	NetworkUnresolved NetworkType = ""
	NetworkPublic     NetworkType = "public"
	NetworkPrivate    NetworkType = "private"
)

// StorageAccess selects bucket visibility for fullstack-aws storage.
type StorageAccess string

const (
	StorageAccessUnresolved StorageAccess = ""
	StorageAccessPublic     StorageAccess = "public"
	StorageAccessPrivate    StorageAccess = "private"
)

// Options is the full, typed description of a project.
type Options struct {
	Name      string `validate:"required,projectname"`
	Type      Type   `validate:"required"`
	Framework Framework

	IncludeStorage Flag
	IncludeDB      Flag
	NetworkType    NetworkType
	StorageAccess  StorageAccess

	// Port is the container port; 0 means unresolved.
	Port int `validate:"omitempty,min=1,max=65535"`

	// OutputDir is the static build output, relative to the app root.
	OutputDir string `validate:"omitempty,relpath"`
}

// Manifest lists what a project needs in the infrastructure workspace.
type Manifest struct {
	// Files are template identifiers relative to the workspace, in stable order.
	Files []string `json:"files"`

	// Packages are npm package names, sorted.
	Packages []string `json:"packages"`
}

// Warning is a non-fatal observation about a resolved configuration.
type Warning struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return w.Field + ": " + w.Message
}
