package process

import (
	"context"
	"fmt"
)

// Runner executes a Command once to completion
type Runner interface {
	Run(ctx context.Context, cmd Command) (*Result, error)
}

// Result is the outcome of a single command execution.
type Result struct {
	// ExitCode is nil when the process was killed by a signal.
	ExitCode *int
	// Success reports the platform's notion of a successful exit.
	Success bool
	Stdout  []byte
	Stderr  []byte
}

// RunError is returned when the operating system could not start or wait on a command.
// A command that runs and exits non-zero is not a RunError.
type RunError struct {
	Command Command
	Err     error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("could not run %s: %v", e.Command, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}
