package notification

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// ConsoleNotifier prints notifications to standard error.
// This mostly defeats the purpose of alert, but it is handy for trying the CLI out.
type ConsoleNotifier struct {
	writer io.Writer
}

// NewConsoleNotifier creates a console notifier writing to os.Stderr
func NewConsoleNotifier() *ConsoleNotifier {
	return NewConsoleNotifierTo(os.Stderr)
}

// NewConsoleNotifierTo creates a console notifier writing to w
func NewConsoleNotifierTo(w io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{writer: w}
}

var (
	successLabel = color.New(color.FgGreen, color.Bold)
	failureLabel = color.New(color.FgRed, color.Bold)
	messageText  = color.New(color.Bold)
)

// Send prints the notification with its label colored by outcome
func (n *ConsoleNotifier) Send(notification Notification) error {
	label := failureLabel
	if notification.Outcome == Success {
		label = successLabel
	}

	_, err := fmt.Fprintf(n.writer, "%s %s\n",
		label.Sprintf("%s:", notification.Title()),
		messageText.Sprint(notification.Message()))
	return err
}
