package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/felixgeelhaar/repocat/internal/infrastructure/config"
	"github.com/felixgeelhaar/repocat/pkg/storage"
)

// CLIError wraps domain errors with user-facing messages and actionable hints.
type CLIError struct {
	Message  string
	Hint     string
	Err      error
	ExitCode int
}

func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a CLIError with a default exit code of 1.
func NewCLIError(msg, hint string, err error) *CLIError {
	return &CLIError{
		Message:  msg,
		Hint:     hint,
		Err:      err,
		ExitCode: 1,
	}
}

// MapError converts known errors into CLIErrors with actionable hints.
// Unmapped errors are returned as-is.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return err
	}

	switch {
	case errors.Is(err, storage.ErrInvalidOutputDir):
		return NewCLIError("cannot write reports", "Create the directory first or pass an existing one with --output-dir", err)
	case errors.Is(err, config.ErrMissingOutputDir):
		return NewCLIError("no output directory", "Pass --output-dir or set output_dir in the config file", err)
	case errors.Is(err, config.ErrMissingOrg):
		return NewCLIError("no organization", "Pass --org or set org in the config file", err)
	case errors.Is(err, storage.ErrInvalidSnapshot):
		return NewCLIError("cannot read input", "The --input file must be a JSON array of repositories, e.g. from 'repocat fetch'", err)
	case errors.Is(err, os.ErrNotExist):
		return NewCLIError("file not found", "Check the path passed to --input or --config", err)
	}

	return err
}
