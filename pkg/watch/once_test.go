package watch

import (
	"context"
	"errors"
	"testing"

	"github.com/Veraticus/alert/pkg/notification"
	"github.com/Veraticus/alert/pkg/process"
	"github.com/Veraticus/alert/pkg/testutil"
)

func TestOnce(t *testing.T) {
	tests := []struct {
		name        string
		result      *process.Result
		wantOutcome notification.Outcome
		wantErr     bool
		wantExit    int
	}{
		{
			name:        "exit 0",
			result:      testutil.Exited(0, "", ""),
			wantOutcome: notification.Success,
		},
		{
			name:        "exit 3",
			result:      testutil.Exited(3, "", ""),
			wantOutcome: notification.Failure,
			wantErr:     true,
			wantExit:    3,
		},
		{
			name:        "killed by signal",
			result:      testutil.Killed("", ""),
			wantOutcome: notification.Failure,
			wantErr:     true,
			wantExit:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := testutil.NewMockRunner(testutil.RunStep{Result: tt.result})
			notifier := testutil.NewMockNotifier()
			cmd := process.Command{Program: "false"}

			err := Once(context.Background(), runner, notifier, cmd, WithLogger(quietLogger()))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Once() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var failed *FailedError
				if !errors.As(err, &failed) {
					t.Fatalf("expected *FailedError, got %v", err)
				}
				if failed.ExitCode() != tt.wantExit {
					t.Errorf("ExitCode() = %d, want %d", failed.ExitCode(), tt.wantExit)
				}
			}

			sent := notifier.GetNotifications()
			if len(sent) != 1 {
				t.Fatalf("sent %d notifications, want 1", len(sent))
			}
			if sent[0].Outcome != tt.wantOutcome {
				t.Errorf("outcome = %v, want %v", sent[0].Outcome, tt.wantOutcome)
			}
			if runner.CallCount() != 1 {
				t.Errorf("ran %d times, want 1", runner.CallCount())
			}
		})
	}
}

func TestOnce_LaunchErrorIsFatal(t *testing.T) {
	cmd := process.Command{Program: "does-not-exist"}
	launchErr := &process.RunError{Command: cmd, Err: errors.New("executable file not found in $PATH")}
	notifier := testutil.NewMockNotifier()

	err := Once(context.Background(), testutil.NewMockRunner(testutil.RunStep{Err: launchErr}), notifier, cmd,
		WithLogger(quietLogger()))
	if !errors.Is(err, launchErr) {
		t.Fatalf("Once() error = %v, want %v", err, launchErr)
	}
	if len(notifier.GetAttempts()) != 0 {
		t.Error("expected no notification for a launch error")
	}
}

func TestOnce_NotifierError(t *testing.T) {
	sendErr := errors.New("network unreachable")
	notifier := testutil.NewMockNotifier()
	notifier.SetError(sendErr)

	err := Once(context.Background(), testutil.NewMockRunner(), notifier, process.Command{Program: "true"},
		WithLogger(quietLogger()))
	if !errors.Is(err, sendErr) {
		t.Fatalf("Once() error = %v, want %v", err, sendErr)
	}
}

func TestOnce_RealProcess(t *testing.T) {
	notifier := testutil.NewMockNotifier()
	cmd, err := process.NewCommand([]string{"sh", "-c", "exit 7"})
	if err != nil {
		t.Fatal(err)
	}

	err = Once(context.Background(), process.NewCaptureRunner(), notifier, cmd, WithLogger(quietLogger()))
	var failed *FailedError
	if !errors.As(err, &failed) || failed.ExitCode() != 7 {
		t.Fatalf("Once() error = %v, want exit code 7", err)
	}
	if sent := notifier.GetNotifications(); len(sent) != 1 || sent[0].Outcome != notification.Failure {
		t.Errorf("notifications = %+v", sent)
	}
}

func TestFailedError(t *testing.T) {
	code := 2
	tests := []struct {
		err  *FailedError
		msg  string
		exit int
	}{
		{&FailedError{Outcome: notification.Failure}, "command failed", 1},
		{&FailedError{Outcome: notification.Timeout}, "command timed out", 1},
		{&FailedError{Outcome: notification.Failure, Status: &code}, "command failed with exit code 2", 2},
	}
	for _, tt := range tests {
		if tt.err.Error() != tt.msg {
			t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.msg)
		}
		if tt.err.ExitCode() != tt.exit {
			t.Errorf("ExitCode() = %d, want %d", tt.err.ExitCode(), tt.exit)
		}
	}
}
