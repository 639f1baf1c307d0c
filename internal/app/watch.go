package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/textstat/internal/output"
	"github.com/blackwell-systems/textstat/internal/store"
	"github.com/blackwell-systems/textstat/internal/watcher"
)

var (
	watchSave        bool
	watchDaemon      bool
	watchDaemonChild bool
	watchPIDFile     string
	watchLogFile     string
	watchStop        bool
	watchDebounce    time.Duration

	watchCmd = &cobra.Command{
		Use:   "watch FILE",
		Short: "Re-analyze a file every time it changes",
		Long: `Watch a file and print a fresh report every time it is saved.

Bursts of writes are collapsed into one analysis (see --debounce). With --save
every report is also recorded in the history database.

Watch modes:
  • Foreground (default): Run in current terminal with Ctrl+C to stop
  • Daemon: Run as background process, reports go to the log file
  • Stop: Stop a running daemon`,
		Example: `  # Run in foreground (Ctrl+C to stop)
  textstat watch notes.txt

  # Record every save in the background
  textstat watch notes.txt --save --daemon

  # Stop running daemon
  textstat watch --stop`,
		Args: cobra.MaximumNArgs(1),
		RunE: runWatch,
	}
)

func init() {
	watchCmd.Flags().BoolVar(&watchSave, "save", false, "save every report to the history database")
	watchCmd.Flags().BoolVar(&watchDaemon, "daemon", false, "run as background daemon")
	watchCmd.Flags().BoolVar(&watchDaemonChild, "daemon-child", false, "internal flag for daemon child process")
	watchCmd.Flags().StringVar(&watchPIDFile, "pid-file", "", "PID file path (default: ~/.textstat/watch.pid)")
	watchCmd.Flags().StringVar(&watchLogFile, "log-file", "", "log file path (default: ~/.textstat/watch.log)")
	watchCmd.Flags().BoolVar(&watchStop, "stop", false, "stop running daemon")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watcher.DefaultDebounce, "quiet period after a write before re-analyzing")

	// Hide the internal daemon-child flag from help
	watchCmd.Flags().MarkHidden("daemon-child")
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchPIDFile == "" {
		defaultPID, err := getDefaultPIDFile()
		if err != nil {
			return fmt.Errorf("failed to get default PID file path: %w", err)
		}
		watchPIDFile = defaultPID
	}

	if watchLogFile == "" {
		defaultLog, err := getDefaultLogFile()
		if err != nil {
			return fmt.Errorf("failed to get default log file path: %w", err)
		}
		watchLogFile = defaultLog
	}

	if watchStop {
		return stopWatchDaemon(cmd)
	}

	if len(args) == 0 {
		return fmt.Errorf("watch requires a FILE argument")
	}
	if watchDebounce <= 0 {
		return fmt.Errorf("invalid debounce: %s (must be positive)", watchDebounce)
	}

	var st *store.Store
	if watchSave {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()
		st = s
	}

	w, err := watcher.New(args[0], st)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	w.SetDebounce(watchDebounce)

	if watchDaemon {
		return startWatchDaemon(cmd, w)
	}

	w.OnReport(func(ev watcher.Event) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "[%s]\n", ev.Time.Format("15:04:05"))
		fmt.Fprint(out, output.RenderReport(ev.Path, ev.Report))
		if ev.AnalysisID != 0 {
			fmt.Fprint(out, output.RenderSaved(ev.AnalysisID))
		}
		fmt.Fprintln(out)
	})

	if watchDaemonChild {
		return w.RunDaemon(watchPIDFile)
	}

	return runWatchForeground(cmd, w)
}

func stopWatchDaemon(cmd *cobra.Command) error {
	running, err := watcher.IsDaemonRunning(watchPIDFile)
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}

	if !running {
		fmt.Fprintln(cmd.OutOrStdout(), "Daemon is not running")
		return nil
	}

	spinner := output.NewSpinner("Stopping daemon...")
	spinner.SetWriter(cmd.OutOrStdout())
	spinner.Start()
	if err := watcher.StopDaemon(watchPIDFile); err != nil {
		spinner.Stop()
		return fmt.Errorf("failed to stop daemon: %w", err)
	}
	spinner.StopWithMessage("✓ Daemon stopped")

	return nil
}

// daemonChildArgs rebuilds the command line the daemon child runs with.
func daemonChildArgs(w *watcher.Watcher) ([]string, error) {
	args := []string{"watch", w.Path(), "--daemon-child",
		"--pid-file", watchPIDFile,
		"--debounce", watchDebounce.String(),
	}
	if watchSave {
		path, err := getDBPath()
		if err != nil {
			return nil, err
		}
		args = append(args, "--save", "--db", path)
	}
	if cfgDir != "" {
		args = append(args, "--config", cfgDir)
	}
	return args, nil
}

func startWatchDaemon(cmd *cobra.Command, w *watcher.Watcher) error {
	running, err := watcher.IsDaemonRunning(watchPIDFile)
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}

	if running {
		return fmt.Errorf("daemon already running (PID file: %s)", watchPIDFile)
	}

	// The child reports its own read errors to the log; check up front so
	// a typo fails here instead.
	if _, err := os.Stat(w.Path()); err != nil {
		return fmt.Errorf("cannot watch %s: %w", w.Path(), err)
	}

	childArgs, err := daemonChildArgs(w)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	spinner := output.NewSpinner("Starting daemon...")
	spinner.SetWriter(out)
	spinner.Start()
	if err := watcher.StartDaemon(watchPIDFile, watchLogFile, childArgs); err != nil {
		spinner.Stop()
		return fmt.Errorf("failed to start daemon: %w", err)
	}
	spinner.StopWithMessage("✓ Daemon started")

	fmt.Fprintf(out, "\nWatching %s\n", w.Path())
	fmt.Fprintf(out, "  PID file: %s\n", watchPIDFile)
	fmt.Fprintf(out, "  Log file: %s\n", watchLogFile)
	fmt.Fprintf(out, "\nTo stop: textstat watch --stop\n")

	return nil
}

func runWatchForeground(cmd *cobra.Command, w *watcher.Watcher) error {
	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s (press Ctrl+C to stop)...\n\n", w.Path())

	if err := w.Start(); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigCh)

	sig := <-sigCh
	fmt.Fprintf(cmd.OutOrStdout(), "Received signal %v, shutting down...\n", sig)

	if err := w.Stop(); err != nil {
		return fmt.Errorf("failed to stop watcher: %w", err)
	}

	return nil
}
