package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"syscall"

	"github.com/creack/pty"
)

// PTYRunner runs commands attached to a pseudo-terminal.
// Programs that only colorize or line-buffer on a terminal behave as they do
// interactively. The terminal merges both streams, so all output is reported
// in Result.Stdout.
type PTYRunner struct {
	// Size is applied to the terminal when set. When nil the size of
	// os.Stdin is copied if it is a terminal.
	Size *pty.Winsize

	mu sync.Mutex
}

// Ensure PTYRunner implements Runner
var _ Runner = (*PTYRunner)(nil)

// NewPTYRunner creates a new PTY runner
func NewPTYRunner() *PTYRunner {
	return &PTYRunner{}
}

// Run starts cmd on a new PTY, collects everything it writes and waits for it to exit
func (p *PTYRunner) Run(ctx context.Context, cmd Command) (*Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	// #nosec G204 -- running the user's command is the point of this tool
	c := exec.CommandContext(ctx, cmd.Program, cmd.Args...)

	ptmx, err := pty.StartWithSize(c, p.windowSize())
	if err != nil {
		return nil, &RunError{Command: cmd, Err: err}
	}

	var output bytes.Buffer
	_, copyErr := io.Copy(&output, ptmx)
	_ = ptmx.Close()

	waitErr := c.Wait()
	if waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return nil, &RunError{Command: cmd, Err: waitErr}
		}
	}

	// Linux reports EIO once the child side of the terminal is closed
	if copyErr != nil && !errors.Is(copyErr, syscall.EIO) {
		return nil, &RunError{Command: cmd, Err: fmt.Errorf("read pty: %w", copyErr)}
	}

	result := resultFromState(c.ProcessState)
	result.Stdout = output.Bytes()
	return result, nil
}

// windowSize returns the size the PTY should be opened with
func (p *PTYRunner) windowSize() *pty.Winsize {
	if p.Size != nil {
		return p.Size
	}
	size, err := pty.GetsizeFull(os.Stdin)
	if err != nil {
		// Not a terminal; let the PTY keep its default size
		return nil
	}
	return size
}
