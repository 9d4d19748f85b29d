//go:build unix

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/listenupapp/board-server/internal/daemon"
	"github.com/listenupapp/board-server/internal/di"
)

const (
	defaultLogLines = 50
	stopTimeout     = 10 * time.Second
	stopPoll        = 100 * time.Millisecond
)

// serveFunc runs the server until ctx is done. Tests replace it.
var (
	defaultServe = di.Run
	serveFunc    = defaultServe
)

func newRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "board",
		Short:         "Self-hosted message board",
		Long:          "A small message board with tags, search and replies, backed by SQLite.\nWith no command, board starts the service in the background.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStart(cmd, opts)
		},
	}
	root.SetVersionTemplate("board v{{.Version}}\n")

	root.PersistentFlags().IntVarP(&opts.port, "port", "p", 0, "port to listen on (default 13478)")
	root.PersistentFlags().StringVarP(&opts.dataDir, "data-dir", "d", "", "data directory (default ~/.message-board)")
	root.Flags().BoolVarP(&opts.foreground, "foreground", "f", false, "run in the foreground instead of as a daemon")

	root.AddCommand(
		newServeCommand(opts),
		newStartCommand(opts),
		newStopCommand(opts),
		newRestartCommand(opts),
		newStatusCommand(opts),
		newLogsCommand(opts),
		newVersionCommand(),
	)

	return root
}

func newServeCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve [-- server flags]",
		Short: "Run the server in the foreground",
		Long:  "Run the server in the foreground. Arguments after -- are passed to the server configuration, e.g. board serve -- --max-messages 500.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts, args)
		},
	}
}

func newStartCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the service in the background",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStart(cmd, opts)
		},
	}
	cmd.Flags().BoolVarP(&opts.foreground, "foreground", "f", false, "run in the foreground instead of as a daemon")
	return cmd
}

func newStopCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := opts.resolve()
			if err != nil {
				return err
			}
			return stop(cmd.Context(), cmd.OutOrStdout(), p)
		},
	}
}

func newRestartCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restart",
		Short: "Restart the service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := opts.resolve()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if _, err := daemon.Running(p.pidFile); err == nil {
				fmt.Fprintln(out, "Stopping existing instance...")
				if err := stop(cmd.Context(), out, p); err != nil {
					return err
				}
				fmt.Fprintln(out, "Starting new instance...")
			} else {
				fmt.Fprintln(out, "No running instance found, starting...")
			}
			return runStart(cmd, opts)
		},
	}
	cmd.Flags().BoolVarP(&opts.foreground, "foreground", "f", false, "run in the foreground instead of as a daemon")
	return cmd
}

func newStatusCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show service status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := opts.resolve()
			if err != nil {
				return err
			}
			status(cmd.OutOrStdout(), p)
			return nil
		},
	}
}

func newLogsCommand(opts *options) *cobra.Command {
	var lines int
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show recent log lines",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := opts.resolve()
			if err != nil {
				return err
			}
			return showLogs(cmd.OutOrStdout(), p, lines)
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", defaultLogLines, "number of lines to show")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "board v%s\n", version)
		},
	}
}

// runServe runs the server in this process until SIGINT or SIGTERM.
func runServe(cmd *cobra.Command, opts *options, extra []string) error {
	if _, err := opts.resolve(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return serveFunc(ctx, append(opts.serverArgs(), extra...))
}

// runStart starts the daemon, or serves in the foreground with -f.
func runStart(cmd *cobra.Command, opts *options) error {
	p, err := opts.resolve()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if pid, err := daemon.Running(p.pidFile); err == nil {
		fmt.Fprintf(out, "Message board is already running (PID: %d)\n", pid)
		fmt.Fprintf(out, "Access at http://localhost:%d\n", opts.port)
		return nil
	}

	if opts.foreground {
		fmt.Fprintf(out, "Starting message board on port %d...\n", opts.port)
		fmt.Fprintf(out, "Data directory: %s\n", p.dataDir)
		return runServe(cmd, opts, nil)
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}

	proc, err := daemon.Spawn(exe, append([]string{"serve"}, opts.serverArgs()...), daemonEnv(os.Environ()), p.logFile)
	if err != nil {
		return err
	}
	if err := daemon.WritePID(p.pidFile, proc.Pid); err != nil {
		_ = proc.Kill()
		return fmt.Errorf("write pid file: %w", err)
	}
	_ = proc.Release()

	fmt.Fprintln(out, "Message board started successfully!")
	fmt.Fprintf(out, "PID: %d\n", proc.Pid)
	fmt.Fprintf(out, "Port: %d\n", opts.port)
	fmt.Fprintf(out, "Data directory: %s\n", p.dataDir)
	fmt.Fprintf(out, "Log file: %s\n", p.logFile)
	fmt.Fprintf(out, "\nAccess at http://localhost:%d\n", opts.port)
	fmt.Fprintln(out, "\nUse 'board stop' to stop the service")
	fmt.Fprintln(out, "Use 'board logs' to view logs")
	return nil
}

// daemonEnv defaults the detached server to plain-text logs, since its
// output goes to a file rather than a terminal.
func daemonEnv(env []string) []string {
	for _, kv := range env {
		if strings.HasPrefix(kv, "LOG_FORMAT=") {
			return env
		}
	}
	return append(env, "LOG_FORMAT=text")
}

// stop terminates the recorded daemon and waits for it to exit.
func stop(ctx context.Context, out io.Writer, p paths) error {
	pid, err := daemon.Running(p.pidFile)
	if errors.Is(err, daemon.ErrNotRunning) {
		fmt.Fprintln(out, "Message board is not running")
		return nil
	}
	if err != nil {
		return err
	}

	if err := daemon.Terminate(pid); err != nil {
		_ = daemon.RemovePID(p.pidFile)
		return fmt.Errorf("failed to stop process %d: %w", pid, err)
	}

	waitCtx, cancel := context.WithTimeout(ctx, stopTimeout)
	defer cancel()
	if err := daemon.WaitExit(waitCtx, pid, stopPoll); err != nil {
		return fmt.Errorf("process %d did not exit within %s", pid, stopTimeout)
	}

	if err := daemon.RemovePID(p.pidFile); err != nil {
		return err
	}
	fmt.Fprintf(out, "Message board stopped (PID: %d)\n", pid)
	return nil
}

func status(out io.Writer, p paths) {
	pid, err := daemon.Running(p.pidFile)
	if err != nil {
		fmt.Fprintln(out, "Message board is not running")
		fmt.Fprintf(out, "Data directory: %s\n", p.dataDir)
		return
	}

	fmt.Fprintln(out, "Message board is running")
	fmt.Fprintf(out, "PID: %d\n", pid)
	fmt.Fprintf(out, "Data directory: %s\n", p.dataDir)
	fmt.Fprintf(out, "Log file: %s\n", p.logFile)
}

func showLogs(out io.Writer, p paths, n int) error {
	lines, err := daemon.Tail(p.logFile, n)
	if errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(out, "No log file found")
		fmt.Fprintf(out, "Expected location: %s\n", p.logFile)
		return nil
	}
	if err != nil {
		return err
	}

	for _, line := range lines {
		fmt.Fprintln(out, line)
	}
	return nil
}
