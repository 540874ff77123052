package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/csvdoc/internal/configloader"
	"github.com/yaklabco/csvdoc/pkg/fsutil"
	"github.com/yaklabco/csvdoc/pkg/query"
	"github.com/yaklabco/csvdoc/pkg/runner"
)

// Exit codes for csvdoc.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitCheckErrors indicates a check completed but found errors.
	ExitCheckErrors = 1

	// ExitCheckWarnings indicates a check found warnings in strict mode.
	ExitCheckWarnings = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFromResult determines the exit code based on result and strict mode.
// Files that could not be read count as I/O errors unless diagnostics
// already call for a failure.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	errs := result.Stats.DiagnosticsBySeverity["error"]
	warnings := result.Stats.DiagnosticsBySeverity["warning"]

	if errs > 0 {
		return ExitCheckErrors
	}

	if strict && warnings > 0 {
		return ExitCheckWarnings
	}

	if result.HasErrors() {
		return ExitIOError
	}

	return ExitSuccess
}

// IssuesError is returned by check when the findings fail the run. Code is
// the exit code the process should use.
type IssuesError struct {
	Code int
}

func (e *IssuesError) Error() string {
	return ErrIssuesFound.Error()
}

func (e *IssuesError) Unwrap() error {
	return ErrIssuesFound
}

// ExitCodeForError maps a command error to a process exit code.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var issues *IssuesError
	var invalid *configloader.ValidationError

	switch {
	case errors.As(err, &issues):
		return issues.Code
	case errors.Is(err, ErrIssuesFound):
		return ExitCheckErrors
	case errors.As(err, &invalid), errors.Is(err, ErrConfigExists):
		return ExitConfigError
	case errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory):
		return ExitIOError
	case errors.Is(err, ErrMissingWhere),
		errors.Is(err, ErrMissingDatabase),
		errors.Is(err, ErrNoRegion),
		errors.Is(err, ErrOffsetOutOfRange),
		errors.Is(err, ErrColumnOutOfRange),
		errors.Is(err, query.ErrInvalidExpression),
		errors.Is(err, query.ErrNotBoolean):
		return ExitInvalidUsage
	default:
		return ExitInternalError
	}
}
