package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"dragochi/internal/bootstrap"
	"dragochi/internal/platform/config"
	"dragochi/internal/platform/logging"
	"dragochi/internal/platform/metrics"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts := &rootOptions{}
	root := newRootCmd(opts)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if ferr := opts.finish(stderr); ferr != nil && err == nil {
		err = ferr
	}
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

type rootOptions struct {
	dataDir string
	metrics bool
	// logTo overrides stderr as the log destination; the TUI points it at a file.
	logTo io.Writer

	app *bootstrap.App
}

func (o *rootOptions) load(cmd *cobra.Command) (*bootstrap.App, error) {
	if o.app != nil {
		return o.app, nil
	}
	cfg, err := config.Load(o.dataDir)
	if err != nil {
		return nil, err
	}
	var logger *log.Logger
	if o.logTo != nil {
		logger = logging.NewWithWriter(o.logTo, cfg.LogLevel)
	} else {
		logger = logging.NewWithWriter(cmd.ErrOrStderr(), cfg.LogLevel)
	}
	app, err := bootstrap.New(cmd.Context(), cfg, logger, metrics.New())
	if err != nil {
		return nil, err
	}
	o.app = app
	return app, nil
}

func (o *rootOptions) finish(stderr io.Writer) error {
	if o.app == nil {
		return nil
	}
	var err error
	if o.metrics {
		err = o.app.Metrics.WriteText(stderr)
	}
	if cerr := o.app.Close(); cerr != nil && err == nil {
		err = cerr
	}
	o.app = nil
	return err
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	root := &cobra.Command{
		Use:           "dragochi",
		Short:         "Track game sessions and review monthly play time",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", config.DefaultDataDir(), "directory holding the database, snapshot and config")
	root.PersistentFlags().BoolVar(&opts.metrics, "metrics", false, "print Prometheus metrics to stderr after the command")

	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newTrackCmd(opts))
	root.AddCommand(newSessionCmd(opts))
	root.AddCommand(newGameCmd(opts))
	root.AddCommand(newFriendCmd(opts))
	root.AddCommand(newStatsCmd(opts))
	root.AddCommand(newBackupCmd(opts))
	return root
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the dragochi terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := os.MkdirAll(opts.dataDir, 0o755); err != nil {
				return fmt.Errorf("create data dir: %w", err)
			}
			f, err := os.OpenFile(filepath.Join(opts.dataDir, "dragochi.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			defer f.Close()
			opts.logTo = f

			app, err := opts.load(cmd)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(cmd.Context(), app)
		},
	}
}

func newBackupCmd(opts *rootOptions) *cobra.Command {
	backup := &cobra.Command{Use: "backup", Short: "Backup operations"}

	var out string
	export := &cobra.Command{
		Use:   "export --out <file>",
		Short: "Write games, friends and finished sessions to a JSON file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(out) == "" {
				return fmt.Errorf("--out is required")
			}
			app, err := opts.load(cmd)
			if err != nil {
				return err
			}
			res, err := app.BackupCLI.Export(cmd.Context(), out)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported games=%d friends=%d sessions=%d to %s\n", res.Games, res.Friends, res.Sessions, res.Path)
			return nil
		},
	}
	export.Flags().StringVar(&out, "out", "", "destination file")
	backup.AddCommand(export)
	return backup
}

const timeLayout = "2006-01-02 15:04"

func formatTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(timeLayout)
}

func formatDuration(seconds int) string {
	return (time.Duration(seconds) * time.Second).String()
}

// parseTime accepts RFC 3339 or "YYYY-MM-DD HH:MM" in loc.
func parseTime(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(timeLayout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: want RFC3339 or %q", value, timeLayout)
	}
	return t, nil
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
