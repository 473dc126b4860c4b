package watch

import (
	"fmt"

	"github.com/Veraticus/alert/pkg/notification"
)

// FailedError ends a run that was already reported to the user through a
// notification. Callers should map it to an exit code without printing it.
type FailedError struct {
	Outcome notification.Outcome

	// Status is the child's exit code; nil in watch mode or when a signal ended the child
	Status *int
}

func (e *FailedError) Error() string {
	if e.Status != nil {
		return fmt.Sprintf("command %s with exit code %d", e.verb(), *e.Status)
	}
	return fmt.Sprintf("command %s", e.verb())
}

func (e *FailedError) verb() string {
	if e.Outcome == notification.Timeout {
		return "timed out"
	}
	return "failed"
}

// ExitCode returns the code the process should exit with
func (e *FailedError) ExitCode() int {
	if e.Status != nil {
		return *e.Status
	}
	return 1
}
