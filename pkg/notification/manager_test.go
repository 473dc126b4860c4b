package notification

import (
	"errors"
	"sync"
	"testing"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []Notification
	err  error
}

func (r *recordingNotifier) Send(n Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	return r.err
}

type recordingReporter struct {
	events []string
}

func (r *recordingReporter) ReportSending() { r.events = append(r.events, "sending") }
func (r *recordingReporter) ReportSuccess() { r.events = append(r.events, "success") }
func (r *recordingReporter) ReportFailure() { r.events = append(r.events, "failure") }

func TestManager_SendOnce(t *testing.T) {
	backend := &recordingNotifier{}
	reporter := &recordingReporter{}
	manager := NewManager("console", backend, quietLogger())
	manager.SetStatusReporter(reporter)

	if manager.sent {
		t.Fatal("manager should not be marked sent before Send")
	}
	if err := manager.Send(New(Success, nil)); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if !manager.sent {
		t.Error("expected manager to be marked sent after Send")
	}

	if err := manager.Send(New(Failure, nil)); !errors.Is(err, ErrAlreadySent) {
		t.Errorf("second Send() error = %v, want ErrAlreadySent", err)
	}

	if len(backend.sent) != 1 {
		t.Fatalf("backend received %d notifications, want 1", len(backend.sent))
	}
	if backend.sent[0].Outcome != Success {
		t.Errorf("outcome = %v, want success", backend.sent[0].Outcome)
	}

	want := []string{"sending", "success"}
	if len(reporter.events) != len(want) {
		t.Fatalf("events = %v, want %v", reporter.events, want)
	}
	for i := range want {
		if reporter.events[i] != want[i] {
			t.Errorf("event %d = %s, want %s", i, reporter.events[i], want[i])
		}
	}
}

func TestManager_SendError(t *testing.T) {
	sendErr := &SendError{Service: "pushover.net", StatusCode: 500, Status: "500 Internal Server Error"}
	backend := &recordingNotifier{err: sendErr}
	reporter := &recordingReporter{}
	manager := NewManager("pushover", backend, nil)
	manager.SetStatusReporter(reporter)

	err := manager.Send(New(Timeout, nil))
	if !errors.Is(err, sendErr) {
		t.Fatalf("Send() error = %v, want %v", err, sendErr)
	}
	// A failed delivery still counts as the one attempt
	if !manager.sent {
		t.Error("expected manager to be marked sent after failed delivery")
	}
	if len(reporter.events) != 2 || reporter.events[1] != "failure" {
		t.Errorf("events = %v, want [sending failure]", reporter.events)
	}
}

func TestManager_Concurrent(t *testing.T) {
	backend := &recordingNotifier{}
	manager := NewManager("console", backend, quietLogger())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = manager.Send(New(Success, nil))
		}()
	}
	wg.Wait()

	if len(backend.sent) != 1 {
		t.Errorf("backend received %d notifications, want 1", len(backend.sent))
	}
}
