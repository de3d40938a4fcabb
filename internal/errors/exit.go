package errors

import "errors"

// Exit codes returned by the limgen binary.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitValidationError indicates invalid or unsupported input.
	ExitValidationError = 2

	// ExitExternalError indicates an external tool (package manager, pulumi, AWS) failed.
	ExitExternalError = 3

	// ExitPermissionDenied indicates a file could not be written.
	ExitPermissionDenied = 4

	// ExitNotFound indicates a project, component or file was not found.
	ExitNotFound = 5

	// ExitCorruptMetadata indicates a project's stored metadata is unreadable.
	ExitCorruptMetadata = 7

	// ExitUnresolvedInput indicates options reached the resolver with inputs still unset.
	ExitUnresolvedInput = 70
)

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitValidationError:
		return "Validation Error"
	case ExitExternalError:
		return "External Tool Error"
	case ExitPermissionDenied:
		return "Permission Denied"
	case ExitNotFound:
		return "Not Found"
	case ExitCorruptMetadata:
		return "Corrupt Metadata"
	case ExitUnresolvedInput:
		return "Unresolved Input"
	default:
		return "Unknown"
	}
}

// ExitCodeFromError determines the exit code for err. An ExitError keeps its
// own code; otherwise the first matching sentinel decides.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, ErrCorrupt):
		return ExitCorruptMetadata
	case errors.Is(err, ErrUnresolved):
		return ExitUnresolvedInput
	case errors.Is(err, ErrValidation), errors.Is(err, ErrUnsupported):
		return ExitValidationError
	case errors.Is(err, ErrNotFound):
		return ExitNotFound
	case errors.Is(err, ErrPermission):
		return ExitPermissionDenied
	case errors.Is(err, ErrExternal):
		return ExitExternalError
	default:
		return ExitGeneralError
	}
}

// ToExitError wraps err with its exit code. nil stays nil.
func ToExitError(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	return &ExitError{Code: ExitCodeFromError(err), Err: err}
}
