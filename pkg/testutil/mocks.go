package testutil

import (
	"sync"
	"time"

	"github.com/Veraticus/alert/pkg/notification"
)

// MockNotifier records notifications instead of delivering them.
// It is safe for concurrent use.
type MockNotifier struct {
	mu        sync.Mutex
	delivered []notification.Notification
	attempts  []notification.Notification // including failed ones
	sendErr   error
}

// NewMockNotifier creates a new mock notifier
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

// Send implements the Notifier interface
func (m *MockNotifier) Send(n notification.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.attempts = append(m.attempts, n)
	if m.sendErr != nil {
		return m.sendErr
	}
	m.delivered = append(m.delivered, n)
	return nil
}

// GetNotifications returns a copy of successfully sent notifications
func (m *MockNotifier) GetNotifications() []notification.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]notification.Notification(nil), m.delivered...)
}

// GetAttempts returns a copy of all attempted sends (including failures)
func (m *MockNotifier) GetAttempts() []notification.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]notification.Notification(nil), m.attempts...)
}

// Outcomes lists the outcome of every delivered notification
func (m *MockNotifier) Outcomes() []notification.Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()

	outcomes := make([]notification.Outcome, 0, len(m.delivered))
	for _, n := range m.delivered {
		outcomes = append(outcomes, n.Outcome)
	}
	return outcomes
}

// SetError makes every following Send fail with err
func (m *MockNotifier) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sendErr = err
}

// MockStatusReporter records the delivery progress it is told about
type MockStatusReporter struct {
	mu     sync.Mutex
	events []string
}

// NewMockStatusReporter creates a new mock status reporter
func NewMockStatusReporter() *MockStatusReporter {
	return &MockStatusReporter{}
}

// ReportSending implements interfaces.StatusReporter
func (m *MockStatusReporter) ReportSending() { m.record("sending") }

// ReportSuccess implements interfaces.StatusReporter
func (m *MockStatusReporter) ReportSuccess() { m.record("success") }

// ReportFailure implements interfaces.StatusReporter
func (m *MockStatusReporter) ReportFailure() { m.record("failure") }

func (m *MockStatusReporter) record(event string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

// Events returns the reported events in order
func (m *MockStatusReporter) Events() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]string, len(m.events))
	copy(result, m.events)
	return result
}

// MockClock is a manual clock. After advances the clock instead of waiting.
type MockClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
}

// NewMockClock creates a clock starting at start
func NewMockClock(start time.Time) *MockClock {
	return &MockClock{now: start}
}

// Now returns the current mock time
func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// After advances the clock by d and returns a channel that has already fired
func (c *MockClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
	c.sleeps = append(c.sleeps, d)

	ch := make(chan time.Time, 1)
	ch <- c.now
	return ch
}

// Advance moves the clock forward without recording a sleep
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Sleeps returns every duration passed to After
func (c *MockClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := make([]time.Duration, len(c.sleeps))
	copy(result, c.sleeps)
	return result
}
