package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCodeFromError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"nil error returns success", nil, ExitSuccess},
		{"validation error", ErrValidation, ExitValidationError},
		{"wrapped validation error", Wrap(ErrValidation, "schema check failed"), ExitValidationError},
		{"unsupported configuration", &UnsupportedConfigurationError{Field: "networkType", Value: "hybrid"}, ExitValidationError},
		{"unresolved input", &UnresolvedInputError{Field: "includeDb"}, ExitUnresolvedInput},
		{"metadata not found", &MetadataNotFoundError{Project: "web", Path: "p"}, ExitNotFound},
		{"corrupt metadata wins over its cause", &MetadataCorruptError{Path: "p", Cause: ErrValidation}, ExitCorruptMetadata},
		{"external tool", NewExternalError("npm", []string{"install"}, errors.New("offline"), ""), ExitExternalError},
		{"permission error", ErrPermission, ExitPermissionDenied},
		{"explicit exit error", &ExitError{Code: 42, Err: ErrValidation}, 42},
		{"wrapped exit error", fmt.Errorf("outer: %w", &ExitError{Code: ExitNotFound, Err: errors.New("x")}), ExitNotFound},
		{"unknown error returns general error", errors.New("unknown error"), ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, ExitCodeFromError(tt.err))
		})
	}
}

func TestExitCodeName(t *testing.T) {
	assert.Equal(t, "Corrupt Metadata", ExitCodeName(ExitCorruptMetadata))
	assert.Equal(t, "Unknown", ExitCodeName(99))
}

func TestToExitError(t *testing.T) {
	assert.NoError(t, ToExitError(nil))

	err := ToExitError(&MetadataNotFoundError{Project: "web", Path: "p"})
	var exitErr *ExitError
	assert.ErrorAs(t, err, &exitErr)
	assert.Equal(t, ExitNotFound, exitErr.Code)

	already := &ExitError{Code: 9, Err: errors.New("x")}
	assert.Same(t, already, ToExitError(already))
}
