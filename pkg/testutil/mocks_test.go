package testutil

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Veraticus/alert/pkg/notification"
	"github.com/Veraticus/alert/pkg/process"
)

func TestMockNotifier(t *testing.T) {
	t.Run("successful send", func(t *testing.T) {
		mock := NewMockNotifier()
		n := notification.New(notification.Success, nil)

		err := mock.Send(n)
		if err != nil {
			t.Errorf("Send() error = %v, want nil", err)
		}

		notifications := mock.GetNotifications()
		if len(notifications) != 1 {
			t.Errorf("GetNotifications() returned %d, want 1", len(notifications))
		}

		attempts := mock.GetAttempts()
		if len(attempts) != 1 {
			t.Errorf("GetAttempts() returned %d, want 1", len(attempts))
		}

		if outcomes := mock.Outcomes(); len(outcomes) != 1 || outcomes[0] != notification.Success {
			t.Errorf("Outcomes() = %v", outcomes)
		}
	})

	t.Run("send with error", func(t *testing.T) {
		mock := NewMockNotifier()
		mockErr := errors.New("test error")
		mock.SetError(mockErr)

		err := mock.Send(notification.New(notification.Failure, nil))
		if err != mockErr {
			t.Errorf("Send() error = %v, want %v", err, mockErr)
		}

		// Should have no successful notifications
		if len(mock.GetNotifications()) != 0 {
			t.Errorf("GetNotifications() returned %d, want 0", len(mock.GetNotifications()))
		}

		// But should have an attempt
		if len(mock.GetAttempts()) != 1 {
			t.Errorf("GetAttempts() returned %d, want 1", len(mock.GetAttempts()))
		}
	})

}

func TestMockRunner(t *testing.T) {
	t.Run("plays back steps then repeats the last", func(t *testing.T) {
		launchErr := errors.New("not found")
		mock := NewMockRunner(
			RunStep{Err: launchErr},
			RunStep{Result: Exited(2, "out", "err")},
		)
		cmd := process.Command{Program: "make"}

		if _, err := mock.Run(context.Background(), cmd); err != launchErr {
			t.Errorf("first Run() error = %v, want %v", err, launchErr)
		}
		for i := 0; i < 2; i++ {
			result, err := mock.Run(context.Background(), cmd)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if result.Success || *result.ExitCode != 2 || string(result.Stdout) != "out" {
				t.Errorf("unexpected result %+v", result)
			}
		}
		if mock.CallCount() != 3 {
			t.Errorf("CallCount() = %d, want 3", mock.CallCount())
		}
		if mock.Calls()[0].Program != "make" {
			t.Errorf("unexpected call %+v", mock.Calls()[0])
		}
	})

	t.Run("empty script succeeds", func(t *testing.T) {
		result, err := NewMockRunner().Run(context.Background(), process.Command{Program: "true"})
		if err != nil || !result.Success {
			t.Errorf("Run() = %+v, %v", result, err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := NewMockRunner().Run(ctx, process.Command{Program: "true"}); !errors.Is(err, context.Canceled) {
			t.Errorf("Run() error = %v, want context.Canceled", err)
		}
	})

	t.Run("killed result", func(t *testing.T) {
		result := Killed("", "")
		if result.ExitCode != nil || result.Success {
			t.Errorf("unexpected result %+v", result)
		}
	})
}

func TestMockClock(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewMockClock(start)

	<-clock.After(2 * time.Second)
	clock.Advance(time.Second)

	if got := clock.Now().Sub(start); got != 3*time.Second {
		t.Errorf("elapsed = %v, want 3s", got)
	}
	if sleeps := clock.Sleeps(); len(sleeps) != 1 || sleeps[0] != 2*time.Second {
		t.Errorf("Sleeps() = %v", sleeps)
	}
}

func TestMockStatusReporter(t *testing.T) {
	mock := NewMockStatusReporter()
	mock.ReportSending()
	mock.ReportFailure()

	events := mock.Events()
	if len(events) != 2 || events[0] != "sending" || events[1] != "failure" {
		t.Errorf("Events() = %v", events)
	}
}
