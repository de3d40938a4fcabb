package cmdutil

import (
	"errors"
	"fmt"
	"sort"

	oerrors "github.com/limgen/cli/internal/errors"
	"github.com/limgen/cli/internal/output"
	"github.com/limgen/cli/internal/project"
	"github.com/limgen/cli/internal/prompt"
)

// PrintFiles prints one status line per file, sorted by path.
func PrintFiles(files map[string]string) {
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		output.Println(output.FormatFileLine(p, files[p]))
	}
}

// PrintWarnings logs resolver warnings.
func PrintWarnings(warnings []project.Warning) {
	for _, w := range warnings {
		output.Warn(w.Message, "field", w.Field)
	}
}

// Fail converts err into an ExitError carrying a displayable DetailError.
// nil stays nil.
func Fail(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *oerrors.ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	if errors.Is(err, prompt.ErrAborted) {
		return &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: fmt.Errorf("aborted")}
	}
	return &oerrors.ExitError{Code: oerrors.ExitCodeFromError(err), Err: oerrors.Describe(err)}
}
