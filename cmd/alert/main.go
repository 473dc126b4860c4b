package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Veraticus/alert/pkg/watch"
)

// errShowUsage is returned after usage has been printed for a bare `alert`
var errShowUsage = errors.New("no subcommand given")

func main() {
	app := NewApplication(os.Stdin, os.Stdout, os.Stderr)
	os.Exit(run(os.Args[1:], app))
}

// run executes the command line and returns the process exit code
func run(args []string, app *Application) int {
	// Interrupts cancel the child and the sleep between polls
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(app)
	if args == nil {
		// cobra falls back to os.Args for nil
		args = []string{}
	}
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	app.Close()
	return exitCode(err, app.stderr)
}

// exitCode maps the error returned by a subcommand to an exit status.
// Failures the user has already been notified about are not printed again.
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}

	var failed *watch.FailedError
	if errors.As(err, &failed) {
		return failed.ExitCode()
	}
	if errors.Is(err, context.Canceled) {
		// Standard interrupt code
		return 130
	}
	if errors.Is(err, errShowUsage) {
		return 1
	}

	fmt.Fprintf(stderr, "ERROR: %s\n", err)
	return 1
}
