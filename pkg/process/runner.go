package process

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
)

// ExecRunner runs commands with os/exec
type ExecRunner struct {
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	capture bool
}

// Ensure ExecRunner implements Runner
var _ Runner = (*ExecRunner)(nil)

// NewCaptureRunner creates a runner that captures stdout and stderr into the Result
func NewCaptureRunner() *ExecRunner {
	return &ExecRunner{capture: true}
}

// NewInheritRunner creates a runner that connects the child to the given streams.
// The Result buffers stay empty.
func NewInheritRunner(stdin io.Reader, stdout, stderr io.Writer) *ExecRunner {
	return &ExecRunner{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}
}

// Run executes cmd and waits for it to exit
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (*Result, error) {
	// #nosec G204 -- running the user's command is the point of this tool
	c := exec.CommandContext(ctx, cmd.Program, cmd.Args...)

	var stdout, stderr bytes.Buffer
	if r.capture {
		c.Stdout = &stdout
		c.Stderr = &stderr
	} else {
		c.Stdin = r.stdin
		c.Stdout = r.stdout
		c.Stderr = r.stderr
	}

	if err := c.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, &RunError{Command: cmd, Err: err}
		}
	}

	result := resultFromState(c.ProcessState)
	result.Stdout = stdout.Bytes()
	result.Stderr = stderr.Bytes()
	return result, nil
}

// resultFromState converts a finished process state into a Result
func resultFromState(state *os.ProcessState) *Result {
	result := &Result{}
	if state == nil {
		return result
	}

	result.Success = state.Success()
	// ExitCode is -1 when the process was terminated by a signal
	if code := state.ExitCode(); code >= 0 {
		result.ExitCode = &code
	}
	return result
}
