// Package notification provides notification functionality.
package notification

import (
	"fmt"

	"github.com/Veraticus/alert/pkg/process"
)

// Outcome is what happened to the command we were running.
type Outcome int

const (
	// Success means the command succeeded
	Success Outcome = iota
	// Failure means the command failed
	Failure
	// Timeout means we gave up waiting for something to happen
	Timeout
)

// OutcomeFromBool maps a success flag to Success or Failure
func OutcomeFromBool(success bool) Outcome {
	if success {
		return Success
	}
	return Failure
}

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Failure:
		return "failure"
	case Timeout:
		return "timeout"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Notification represents a notification to be sent.
type Notification struct {
	Outcome Outcome
	Command *process.Command
}

// New creates a notification for the given outcome. cmd may be nil.
func New(outcome Outcome, cmd *process.Command) Notification {
	if cmd != nil {
		c := *cmd
		cmd = &c
	}
	return Notification{
		Outcome: outcome,
		Command: cmd,
	}
}

// Title returns a short summary of the outcome
func (n Notification) Title() string {
	switch n.Outcome {
	case Success:
		return "Command succeeded"
	case Failure:
		return "Command failed"
	case Timeout:
		return "Command timed out"
	default:
		return "Command finished"
	}
}

// Message returns the body text, which names the command when there is one
func (n Notification) Message() string {
	if n.Command == nil {
		return ""
	}
	return n.Command.String()
}

// Notifier sends notifications.
type Notifier interface {
	Send(notification Notification) error
}

// SendError is returned when a notification service rejects a notification
type SendError struct {
	Service    string
	StatusCode int
	Status     string
}

func (e *SendError) Error() string {
	if e.Status == "" {
		return fmt.Sprintf("could not send notification via %s", e.Service)
	}
	return fmt.Sprintf("could not send notification via %s: %s", e.Service, e.Status)
}
