// Package watch runs a command until its output, or the clock, decides the outcome.
package watch

import (
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"sync"
	"time"

	"github.com/Veraticus/alert/pkg/monitor"
	"github.com/Veraticus/alert/pkg/notification"
	"github.com/Veraticus/alert/pkg/process"
	"github.com/sirupsen/logrus"
)

// DefaultInterval is the pause between two runs of the watched command
const DefaultInterval = 2 * time.Second

// State of a watch loop
type State int

const (
	StateRunning State = iota
	StateSucceeded
	StateFailed
	StateTimedOut
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	case StateTimedOut:
		return "timed out"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Config describes what to watch. It is read-only once the loop starts.
type Config struct {
	Command process.Command
	Success *regexp.Regexp
	Failure *regexp.Regexp

	// Timeout only applies when HasTimeout is set. A zero Timeout then
	// gives up after the first run that matches nothing.
	Timeout    time.Duration
	HasTimeout bool

	// Interval defaults to DefaultInterval when zero
	Interval time.Duration
}

// Clock abstracts time so tests do not have to sleep
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) Now() time.Time                         { return time.Now() }
func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// Option configures a Loop
type Option func(*options)

type options struct {
	stdout io.Writer
	stderr io.Writer
	log    logrus.FieldLogger
	clock  Clock
}

// WithOutput sets where the child's captured output is echoed
func WithOutput(stdout, stderr io.Writer) Option {
	return func(o *options) {
		o.stdout = stdout
		o.stderr = stderr
	}
}

// WithLogger sets the logger
func WithLogger(log logrus.FieldLogger) Option {
	return func(o *options) {
		o.log = log
	}
}

// WithClock replaces the wall clock
func WithClock(clock Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

func newOptions(opts []Option) options {
	o := options{
		stdout: os.Stdout,
		stderr: os.Stderr,
		clock:  realClock{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logrus.StandardLogger()
	}
	return o
}

// Loop re-runs a command until a pattern matches or the timeout passes
type Loop struct {
	cfg      Config
	runner   process.Runner
	notifier notification.Notifier
	matcher  *monitor.Matcher
	opts     options

	mu    sync.Mutex
	state State
}

// NewLoop creates a watch loop. Nothing runs until Run is called.
func NewLoop(cfg Config, runner process.Runner, notifier notification.Notifier, opts ...Option) *Loop {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	return &Loop{
		cfg:      cfg,
		runner:   runner,
		notifier: notifier,
		matcher:  monitor.NewRegexpMatcher(cfg.Success, cfg.Failure),
		opts:     newOptions(opts),
		state:    StateRunning,
	}
}

// State returns the current state of the loop
func (l *Loop) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *Loop) setState(s State) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state = s
}

// Run polls the command until it reaches a terminal state and sends exactly
// one notification for it. A cancelled ctx stops the loop without notifying.
func (l *Loop) Run(ctx context.Context) error {
	log := l.opts.log.WithField("command", l.cfg.Command.String())

	var deadline time.Time
	if l.cfg.HasTimeout {
		deadline = l.opts.clock.Now().Add(l.cfg.Timeout)
		log = log.WithField("deadline", deadline.Format(time.RFC3339))
	}
	log.WithField("interval", l.cfg.Interval).Debug("Starting watch")

	for iteration := 1; ; iteration++ {
		result, err := l.runner.Run(ctx, l.cfg.Command)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err != nil {
			// The command may appear later, e.g. while a build is still producing it
			log.WithError(err).Error("Launch failed, retrying")
		} else {
			if err := l.echo(result); err != nil {
				return err
			}

			match := l.matcher.Classify(result.Stdout, result.Stderr)
			log.WithFields(logrus.Fields{
				"iteration": iteration,
				"verdict":   match.Verdict,
				"line":      match.Line,
			}).Debug("Command finished")

			switch match.Verdict {
			case monitor.MatchedFailure:
				return l.finish(StateFailed, notification.Failure)
			case monitor.MatchedSuccess:
				return l.finish(StateSucceeded, notification.Success)
			}
		}

		if l.cfg.HasTimeout && !l.opts.clock.Now().Before(deadline) {
			return l.finish(StateTimedOut, notification.Timeout)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.opts.clock.After(l.cfg.Interval):
		}
	}
}

// echo copies captured output to the operator. Interleaving between the two
// streams is not preserved.
func (l *Loop) echo(result *process.Result) error {
	if _, err := l.opts.stdout.Write(result.Stdout); err != nil {
		return fmt.Errorf("could not write to stdout: %w", err)
	}
	if _, err := l.opts.stderr.Write(result.Stderr); err != nil {
		return fmt.Errorf("could not write to stderr: %w", err)
	}
	return nil
}

func (l *Loop) finish(state State, outcome notification.Outcome) error {
	l.setState(state)

	if err := l.notifier.Send(notification.New(outcome, &l.cfg.Command)); err != nil {
		return err
	}
	if outcome == notification.Success {
		return nil
	}
	return &FailedError{Outcome: outcome}
}
