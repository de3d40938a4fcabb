// Package errors provides sentinel and structured errors for the limgen CLI.
package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates invalid user input or a failed schema check.
	ErrValidation = errors.New("validation error")

	// ErrUnsupported indicates a value outside the supported set.
	ErrUnsupported = errors.New("unsupported configuration")

	// ErrUnresolved indicates a required input was never given a value.
	ErrUnresolved = errors.New("unresolved input")

	// ErrNotFound indicates a project, file, or binary was not found.
	ErrNotFound = errors.New("not found")

	// ErrCorrupt indicates stored metadata could not be understood.
	ErrCorrupt = errors.New("corrupt metadata")

	// ErrExternal indicates an external tool (pulumi, npm, aws) failed.
	ErrExternal = errors.New("external command failed")

	// ErrPermission indicates insufficient filesystem permissions.
	ErrPermission = errors.New("permission denied")
)

// DetailError captures structured error information for display.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is a file path (optional).
	Location string

	// Field is the offending field name (optional).
	Field string

	// Context contains additional key-value context (optional).
	Context map[string]string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Type)
	b.WriteString("\n")

	if e.Location != "" {
		b.WriteString("  Location: ")
		b.WriteString(e.Location)
		b.WriteString("\n")
	}
	if e.Field != "" {
		b.WriteString("  Field: ")
		b.WriteString(e.Field)
		b.WriteString("\n")
	}

	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString("  ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(e.Context[k])
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// ExitError wraps an error with a process exit code.
type ExitError struct {
	Code int
	Err  error

	// Printed is set when the command layer already rendered the error.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// UnresolvedInputError reports an input that reached resolution without a value.
type UnresolvedInputError struct {
	Field string
}

func (e *UnresolvedInputError) Error() string {
	return fmt.Sprintf("input %q is unresolved", e.Field)
}

func (e *UnresolvedInputError) Unwrap() error { return ErrUnresolved }

// UnsupportedConfigurationError reports a value outside the supported set,
// or an input set on a project type that does not declare it.
type UnsupportedConfigurationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *UnsupportedConfigurationError) Error() string {
	msg := fmt.Sprintf("unsupported value %q for %s", e.Value, e.Field)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *UnsupportedConfigurationError) Unwrap() error { return ErrUnsupported }

// MetadataNotFoundError reports a project without a metadata file.
type MetadataNotFoundError struct {
	Project string
	Path    string
}

func (e *MetadataNotFoundError) Error() string {
	return fmt.Sprintf("no metadata for project %q at %s", e.Project, e.Path)
}

func (e *MetadataNotFoundError) Unwrap() error { return ErrNotFound }

// MetadataCorruptError reports a metadata file that exists but cannot be used.
type MetadataCorruptError struct {
	Path  string
	Field string
	Cause error
}

func (e *MetadataCorruptError) Error() string {
	var b strings.Builder
	b.WriteString("corrupt metadata in ")
	b.WriteString(e.Path)
	if e.Field != "" {
		b.WriteString(" (field ")
		b.WriteString(e.Field)
		b.WriteString(")")
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *MetadataCorruptError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrCorrupt}
	}
	return []error{ErrCorrupt, e.Cause}
}

// NewValidationError creates a validation error with details.
func NewValidationError(message, location, field, hint string) error {
	return &DetailError{
		Type:     "validation failed",
		Message:  message,
		Location: location,
		Field:    field,
		Hint:     hint,
		Cause:    ErrValidation,
	}
}

// NewNotFoundError creates a not found error with details.
func NewNotFoundError(message, location, hint string) error {
	return &DetailError{
		Type:     "not found",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrNotFound,
	}
}

// NewExternalError creates an error for a failed external tool invocation.
func NewExternalError(tool string, args []string, cause error, hint string) error {
	return &DetailError{
		Type:    "external command failed",
		Message: cause.Error(),
		Context: map[string]string{"Command": strings.TrimSpace(tool + " " + strings.Join(args, " "))},
		Hint:    hint,
		Cause:   fmt.Errorf("%w: %w", ErrExternal, cause),
	}
}

// Describe converts a domain error into a DetailError suitable for display.
// Errors that are already DetailErrors are returned unchanged.
func Describe(err error) *DetailError {
	var detail *DetailError
	if errors.As(err, &detail) {
		return detail
	}

	var (
		unresolved  *UnresolvedInputError
		unsupported *UnsupportedConfigurationError
		notFound    *MetadataNotFoundError
		corrupt     *MetadataCorruptError
	)

	switch {
	case errors.As(err, &corrupt):
		return &DetailError{
			Type:     "corrupt project metadata",
			Message:  err.Error(),
			Location: corrupt.Path,
			Field:    corrupt.Field,
			Hint:     "Fix the limgen section by hand or re-run 'limgen init --force'.",
			Cause:    err,
		}
	case errors.As(err, &unresolved):
		return &DetailError{
			Type:    "unresolved input",
			Message: err.Error(),
			Field:   unresolved.Field,
			Hint:    "Pass the value as a flag or run interactively to be prompted.",
			Cause:   err,
		}
	case errors.As(err, &unsupported):
		return &DetailError{
			Type:    "unsupported configuration",
			Message: err.Error(),
			Field:   unsupported.Field,
			Cause:   err,
		}
	case errors.As(err, &notFound):
		return &DetailError{
			Type:     "project not found",
			Message:  err.Error(),
			Location: notFound.Path,
			Hint:     "Run 'limgen project list' to see initialized projects.",
			Cause:    err,
		}
	default:
		return &DetailError{
			Type:    "command failed",
			Message: err.Error(),
			Cause:   err,
		}
	}
}

// Wrap wraps a sentinel error with a message.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}
