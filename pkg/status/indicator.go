package status

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Status represents the current notification status
type Status int

const (
	StatusIdle Status = iota
	StatusSending
	StatusSuccess
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSending:
		return "sending"
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

var (
	sendingColor = color.New(color.FgYellow)
	successColor = color.New(color.FgGreen)
	failedColor  = color.New(color.FgRed)
)

// Indicator shows notification delivery progress on a single terminal line
type Indicator struct {
	mu      sync.Mutex
	status  Status
	elapsed time.Duration
	service string
	enabled bool
	writer  io.Writer
}

// NewIndicator creates a new status indicator for the named notifier
func NewIndicator(writer io.Writer, service string, enabled bool) *Indicator {
	return &Indicator{
		status:  StatusIdle,
		service: service,
		writer:  writer,
		enabled: enabled,
	}
}

// IsTerminal reports whether w is a file attached to a terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// SetStatus updates the current status
func (i *Indicator) SetStatus(status Status) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.status = status
	i.elapsed = 0

	// Best effort - don't fail if we can't update the display
	_ = i.draw()
}

// SetResult records a final status along with how long delivery took
func (i *Indicator) SetResult(status Status, elapsed time.Duration) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.status = status
	i.elapsed = elapsed
	_ = i.draw()
}

// Status returns the last status set
func (i *Indicator) Status() Status {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.status
}

// draw rewrites the current line with the status.
// Final states end the line so later output starts clean.
func (i *Indicator) draw() error {
	if !i.enabled || i.writer == nil {
		return nil
	}

	statusText := i.getStatusText()
	if statusText == "" {
		return nil
	}

	// \r returns to column 0 and \033[2K clears the line
	sequence := "\r\033[2K" + statusText
	if i.status == StatusSuccess || i.status == StatusFailed {
		sequence += "\n"
	}

	_, err := fmt.Fprint(i.writer, sequence)
	return err
}

// getStatusText returns the status text with color
func (i *Indicator) getStatusText() string {
	switch i.status {
	case StatusSending:
		return sendingColor.Sprintf("⟳ %s", i.service)
	case StatusSuccess:
		return successColor.Sprintf("✓ %s%s", i.service, i.elapsedText())
	case StatusFailed:
		return failedColor.Sprintf("✗ %s%s", i.service, i.elapsedText())
	default:
		return ""
	}
}

func (i *Indicator) elapsedText() string {
	if i.elapsed <= 0 {
		return ""
	}
	return fmt.Sprintf(" (%s)", i.elapsed.Round(10*time.Millisecond))
}

// Clear removes a pending status line
func (i *Indicator) Clear() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if !i.enabled || i.writer == nil || i.status != StatusSending {
		return nil
	}

	i.status = StatusIdle
	_, err := fmt.Fprint(i.writer, "\r\033[2K")
	return err
}
