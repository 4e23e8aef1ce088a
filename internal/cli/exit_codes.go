package cli

import "fmt"

// Exit codes for the restyle CLI.
// These codes support scripting and CI integration.
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitConfigError indicates a configuration file failed to parse
	// or validate
	ExitConfigError = 1

	// ExitUsageError indicates invalid command arguments or options
	ExitUsageError = 2

	// ExitIOError indicates a filesystem operation failed
	ExitIOError = 3
)

// exitError is a custom error type that carries an exit code.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit code %d", e.code)
}

func (e *exitError) Unwrap() error {
	return e.err
}

// NewExitError wraps err with an explicit exit code.
func NewExitError(code int, err error) error {
	return &exitError{code: code, err: err}
}

// ExitCode returns the exit code carried by an error, ExitConfigError
// for unwrapped errors, and ExitSuccess for nil.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if e, ok := err.(*exitError); ok {
		return e.code
	}
	return ExitConfigError
}
