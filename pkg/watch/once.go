package watch

import (
	"context"

	"github.com/Veraticus/alert/pkg/notification"
	"github.com/Veraticus/alert/pkg/process"
)

// Once runs cmd a single time and notifies about how it ended.
// Launch errors are returned unchanged and nothing is sent.
func Once(ctx context.Context, runner process.Runner, notifier notification.Notifier, cmd process.Command, opts ...Option) error {
	o := newOptions(opts)
	log := o.log.WithField("command", cmd.String())

	result, err := runner.Run(ctx, cmd)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	outcome := notification.OutcomeFromBool(result.Success)
	entry := log.WithField("outcome", outcome)
	if result.ExitCode != nil {
		entry = entry.WithField("exit_code", *result.ExitCode)
	}
	entry.Debug("Command finished")

	if err := notifier.Send(notification.New(outcome, &cmd)); err != nil {
		return err
	}
	if result.Success {
		return nil
	}
	return &FailedError{Outcome: outcome, Status: result.ExitCode}
}
