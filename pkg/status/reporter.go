package status

import (
	"sync"
	"time"

	"github.com/Veraticus/alert/pkg/interfaces"
)

// Reporter drives an Indicator from notification delivery events and times
// each delivery so the final status can show how long it took
type Reporter struct {
	indicator *Indicator
	now       func() time.Time

	mu      sync.Mutex
	started time.Time
}

// NewReporter creates a new status reporter. indicator may be nil.
func NewReporter(indicator *Indicator) *Reporter {
	return &Reporter{
		indicator: indicator,
		now:       time.Now,
	}
}

// Ensure Reporter implements StatusReporter
var _ interfaces.StatusReporter = (*Reporter)(nil)

// ReportSending reports that a notification is being sent
func (r *Reporter) ReportSending() {
	r.mu.Lock()
	r.started = r.now()
	r.mu.Unlock()

	if r.indicator != nil {
		r.indicator.SetStatus(StatusSending)
	}
}

// ReportSuccess reports that a notification was sent successfully
func (r *Reporter) ReportSuccess() {
	r.finish(StatusSuccess)
}

// ReportFailure reports that a notification failed to send
func (r *Reporter) ReportFailure() {
	r.finish(StatusFailed)
}

func (r *Reporter) finish(status Status) {
	r.mu.Lock()
	var elapsed time.Duration
	if !r.started.IsZero() {
		elapsed = r.now().Sub(r.started)
	}
	r.mu.Unlock()

	if r.indicator != nil {
		r.indicator.SetResult(status, elapsed)
	}
}
