package main

import (
	"errors"
	"time"

	"github.com/Veraticus/alert/pkg/monitor"
	"github.com/Veraticus/alert/pkg/process"
	"github.com/Veraticus/alert/pkg/watch"
	"github.com/spf13/cobra"
)

func newRootCmd(app *Application) *cobra.Command {
	var (
		configPath string
		debug      bool
	)

	root := &cobra.Command{
		Use:   "alert",
		Short: "Runs processes and notifies you about what happened",
		Long: `alert runs a command and sends you a notification when it is done.

Notifications go to pushover.net by default. Set ALERT_NOTIFIER to console,
desktop, notifyapp or pushover to choose another backend, and configure it
through the environment or ~/.config/alert/config.yaml.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = cmd.Usage()
			return errShowUsage
		},
		// Build the notifier now, before running any multi-hour command, so a
		// configuration problem shows up while the user is still watching
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd == cmd.Root() {
				return nil
			}
			return app.Setup(configPath, debug)
		},
	}

	root.SetIn(app.stdin)
	root.SetOut(app.stdout)
	root.SetErr(app.stderr)

	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "Log debugging information to stderr")

	root.AddCommand(newRunCmd(app), newWatchCmd(app))
	return root
}

func newRunCmd(app *Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <command> [args...]",
		Short: "Runs a command and notifies when it finishes",
		Example: `  alert run make test
  alert run sh -c 'sleep 600 && ./deploy'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), args)
		},
	}
	// Everything after the command name belongs to the command
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func newWatchCmd(app *Application) *cobra.Command {
	var (
		success  monitor.RegexpFlag
		failure  monitor.RegexpFlag
		timeout  int
		interval int
		usePTY   bool
	)

	cmd := &cobra.Command{
		Use:   "watch [flags] <command> [args...]",
		Short: "Runs a command repeatedly and watches for output",
		Example: `  alert watch -s '^ok$' -f error -t 600 curl -s localhost:8080/health
  alert watch -n 10 -s 'Running' kubectl get pod web`,
		RunE: func(cmd *cobra.Command, args []string) error {
			command, err := process.NewCommand(args)
			if err != nil {
				return err
			}
			if timeout < 0 {
				return errors.New("--timeout must not be negative")
			}
			if interval < 1 {
				return errors.New("--interval must be at least 1 second")
			}

			// Without -t the loop waits forever; -t 0 gives up after the first miss
			cfg := watch.Config{
				Command:    command,
				Success:    success.Regexp(),
				Failure:    failure.Regexp(),
				Timeout:    time.Duration(timeout) * time.Second,
				HasTimeout: cmd.Flags().Changed("timeout"),
				Interval:   time.Duration(interval) * time.Second,
			}
			return app.Watch(cmd.Context(), cfg, usePTY)
		},
	}

	flags := cmd.Flags()
	flags.SetInterspersed(false)
	monitor.RegexpVarP(flags, &success, "success", "s", "Report success when matching text appears")
	monitor.RegexpVarP(flags, &failure, "failure", "f", "Report failure when matching text appears")
	flags.IntVarP(&timeout, "timeout", "t", 0, "Give up after this many `SECONDS` without a match (default: wait forever)")
	flags.IntVarP(&interval, "interval", "n", int(watch.DefaultInterval/time.Second), "Time to wait between runs, in `SECONDS`")
	flags.BoolVar(&usePTY, "pty", false, "Run the command on a pseudo-terminal")

	return cmd
}
