package cli

import (
	"errors"

	"github.com/thenoetrevino/taskdeck/internal/api"
	"github.com/thenoetrevino/taskdeck/internal/config"
	"github.com/thenoetrevino/taskdeck/internal/models"
	"github.com/thenoetrevino/taskdeck/internal/services/project"
	"github.com/thenoetrevino/taskdeck/internal/services/task"
	"github.com/thenoetrevino/taskdeck/internal/services/worker"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: network errors, server errors, unexpected failures,
	// or any error that doesn't fit the specific categories below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: missing arguments, unknown flags, invalid flag combinations.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	// Use for: a 404 from the API or an id missing from a store.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	// Use for: bad config files, unparseable field values.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: empty names, unknown statuses or sort keys, reserved fields.
	ExitValidation = 5
)

// CommandError carries the process exit code for a failed command.
// The message has already been printed when it is returned.
type CommandError struct {
	Code int
	Err  error
}

func (e *CommandError) Error() string {
	if e.Err == nil {
		return "exit status"
	}
	return e.Err.Error()
}

func (e *CommandError) Unwrap() error { return e.Err }

// ErrNotFound reports an id that the store does not hold
var ErrNotFound = errors.New("not found")

// ExitCodeOf maps an error onto an exit code. Errors that are not
// *CommandError come from cobra's own flag and argument checks.
func ExitCodeOf(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code
	}
	return ExitUsage
}

// classify picks the exit code and error code string for a command failure
func classify(err error) (int, string) {
	switch {
	case api.IsNotFound(err), errors.Is(err, ErrNotFound):
		return ExitNotFound, "NOT_FOUND"
	case isValidation(err):
		return ExitValidation, "VALIDATION_ERROR"
	case errors.Is(err, config.ErrInvalidConfig), errors.Is(err, ErrInvalidField):
		return ExitDataErr, "DATA_ERROR"
	default:
		return ExitError, "ERROR"
	}
}

func isValidation(err error) bool {
	for _, target := range []error{
		models.ErrInvalidStatus,
		models.ErrInvalidSortKey,
		project.ErrEmptyName,
		project.ErrNameTooLong,
		project.ErrInvalidProjectID,
		task.ErrEmptyName,
		task.ErrEmptyProject,
		task.ErrInvalidTaskID,
		worker.ErrInvalidWorkerID,
		worker.ErrReservedField,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
