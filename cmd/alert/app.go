package main

import (
	"context"
	"io"

	"github.com/Veraticus/alert/pkg/config"
	"github.com/Veraticus/alert/pkg/notification"
	"github.com/Veraticus/alert/pkg/process"
	"github.com/Veraticus/alert/pkg/status"
	"github.com/Veraticus/alert/pkg/watch"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// notifierFactory builds the notification backend for a configuration
type notifierFactory func(*config.Config, logrus.FieldLogger) (notification.Notifier, error)

// Dependencies holds all the dependencies for the application
type Dependencies struct {
	Config              *config.Config
	Logger              logrus.FieldLogger
	Notifier            notification.Notifier
	NotificationManager *notification.Manager
	StatusIndicator     *status.Indicator
	StatusReporter      *status.Reporter
}

// NewDependencies creates all dependencies with the given configuration.
// The notifier is built here so a broken setup fails before any command runs.
func NewDependencies(cfg *config.Config, stderr io.Writer, newNotifier notifierFactory) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: newLogger(stderr, cfg.Debug),
	}

	notifier, err := newNotifier(cfg, deps.Logger)
	if err != nil {
		return nil, err
	}
	deps.Notifier = notifier

	// Only draw delivery progress for network backends on an interactive
	// terminal, and keep it out of the way of debug output
	statusEnabled := status.IsTerminal(stderr) && notification.IsRemote(cfg.Notifier) && !cfg.Debug
	deps.StatusIndicator = status.NewIndicator(stderr, cfg.Notifier, statusEnabled)
	deps.StatusReporter = status.NewReporter(deps.StatusIndicator)

	deps.NotificationManager = notification.NewManager(cfg.Notifier, deps.Notifier, deps.Logger)
	deps.NotificationManager.SetStatusReporter(deps.StatusReporter)

	deps.Logger.WithField("notifier", cfg.Notifier).Debug("Dependencies ready")
	return deps, nil
}

// newLogger builds the diagnostic logger. Each invocation gets a run id so
// interleaved debug traces from several alerts can be told apart.
func newLogger(w io.Writer, debug bool) logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(logrus.WarnLevel)
	if debug {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger.WithField("run", uuid.NewString())
}

// Close cleans up all dependencies
func (d *Dependencies) Close() {
	if d.StatusIndicator != nil {
		_ = d.StatusIndicator.Clear() // Best effort
	}
}

// Application represents the main application
type Application struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	newNotifier notifierFactory
	deps        *Dependencies
}

// NewApplication creates a new application bound to the given streams
func NewApplication(stdin io.Reader, stdout, stderr io.Writer) *Application {
	return &Application{
		stdin:       stdin,
		stdout:      stdout,
		stderr:      stderr,
		newNotifier: notification.NewNotifier,
	}
}

// Setup loads configuration and builds the dependencies.
// An empty path uses the default config file locations.
func (a *Application) Setup(configPath string, debug bool) error {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	if debug {
		cfg.Debug = true
	}

	deps, err := NewDependencies(cfg, a.stderr, a.newNotifier)
	if err != nil {
		return err
	}
	a.deps = deps
	return nil
}

// Run executes argv once with the terminal attached and notifies when it exits
func (a *Application) Run(ctx context.Context, argv []string) error {
	cmd, err := process.NewCommand(argv)
	if err != nil {
		return err
	}

	runner := process.NewInheritRunner(a.stdin, a.stdout, a.stderr)
	return watch.Once(ctx, runner, a.deps.NotificationManager, cmd, watch.WithLogger(a.deps.Logger))
}

// Watch polls cfg.Command until it matches a pattern or times out
func (a *Application) Watch(ctx context.Context, cfg watch.Config, usePTY bool) error {
	var runner process.Runner = process.NewCaptureRunner()
	if usePTY || a.deps.Config.PTY {
		runner = process.NewPTYRunner()
	}

	loop := watch.NewLoop(cfg, runner, a.deps.NotificationManager,
		watch.WithOutput(a.stdout, a.stderr),
		watch.WithLogger(a.deps.Logger))
	return loop.Run(ctx)
}

// Close releases the dependencies, if they were built
func (a *Application) Close() {
	if a.deps != nil {
		a.deps.Close()
	}
}
