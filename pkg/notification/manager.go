package notification

import (
	"errors"
	"sync"

	"github.com/Veraticus/alert/pkg/interfaces"
	"github.com/sirupsen/logrus"
)

// ErrAlreadySent is returned when a second notification is sent through the same Manager
var ErrAlreadySent = errors.New("a notification has already been sent")

// Manager delivers the single notification of a run and reports its progress
type Manager struct {
	notifier       Notifier
	statusReporter interfaces.StatusReporter
	log            logrus.FieldLogger

	mu   sync.Mutex
	sent bool
}

// Ensure Manager implements Notifier
var _ Notifier = (*Manager)(nil)

// NewManager creates a new notification manager for the named backend
func NewManager(service string, notifier Notifier, log logrus.FieldLogger) *Manager {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Manager{
		notifier: notifier,
		log:      log.WithField("notifier", service),
	}
}

// SetStatusReporter sets the status reporter for notification status updates
func (m *Manager) SetStatusReporter(reporter interfaces.StatusReporter) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statusReporter = reporter
}

// Send delivers the notification. Only the first call reaches the backend.
func (m *Manager) Send(notification Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sent {
		return ErrAlreadySent
	}
	m.sent = true

	log := m.log.WithField("outcome", notification.Outcome)
	log.Debug("Sending notification")

	if m.statusReporter != nil {
		m.statusReporter.ReportSending()
	}

	if err := m.notifier.Send(notification); err != nil {
		if m.statusReporter != nil {
			m.statusReporter.ReportFailure()
		}
		log.WithError(err).Debug("Notification failed")
		return err
	}

	if m.statusReporter != nil {
		m.statusReporter.ReportSuccess()
	}
	log.Debug("Notification sent")
	return nil
}
