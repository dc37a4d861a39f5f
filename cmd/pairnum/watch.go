package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"mercator-hq/pairnum/pkg/cli"
	"mercator-hq/pairnum/pkg/config"
	"mercator-hq/pairnum/pkg/homework"
	"mercator-hq/pairnum/pkg/results"
	"mercator-hq/pairnum/pkg/results/retention"
	"mercator-hq/pairnum/pkg/results/storage"
	"mercator-hq/pairnum/pkg/server"
	"mercator-hq/pairnum/pkg/telemetry/health"
	"mercator-hq/pairnum/pkg/telemetry/metrics"
	"mercator-hq/pairnum/pkg/watch"
)

var watchFlags struct {
	format string
	listen string
}

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-run the homework every time the file changes",
	Long: `Solve the homework file, then solve it again after every save.

While watching, pairnum can:
  - record every run when results.enabled is true
  - prune recorded runs on the results.retention.schedule
  - serve metrics and /health, /ready, /version probes on
    telemetry.metrics.listen_address (or --listen)

Stop with Ctrl-C or SIGTERM.

Examples:
  pairnum watch homework.txt
  pairnum watch homework.txt --listen 127.0.0.1:9090`,
	Args: cobra.ExactArgs(1),
	RunE: watchHomework,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVar(&watchFlags.format, "format", "text", "output format: text, json")
	watchCmd.Flags().StringVarP(&watchFlags.listen, "listen", "l", "", "override telemetry.metrics.listen_address")
}

// lastRun remembers the outcome of the latest run for the readiness probe.
type lastRun struct {
	mu  sync.Mutex
	err error
	ran bool
}

func (l *lastRun) set(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.err = err
	l.ran = true
}

func (l *lastRun) check(context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.ran {
		return errors.New("no run yet")
	}
	return l.err
}

// watcher re-runs the homework for one file.
type watcher struct {
	path      string
	driver    *homework.Driver
	store     results.Storage
	formatter cli.Formatter
	out       io.Writer
	errOut    io.Writer
	last      *lastRun
	logger    *slog.Logger
}

// run solves the file once. Malformed input is reported and remembered
// but does not stop watching.
func (w *watcher) run(ctx context.Context) error {
	data, err := os.ReadFile(w.path)
	if err != nil {
		w.last.set(err)
		return fmt.Errorf("failed to read homework: %w", err)
	}

	res, err := w.driver.Run(ctx, bytes.NewReader(data))
	w.last.set(err)
	if err != nil {
		fmt.Fprintln(w.errOut, err)
		return err
	}

	if w.store != nil {
		if err := w.store.Store(ctx, results.NewRun(res, w.path, data)); err != nil {
			w.logger.Error("failed to record run", "run_id", res.RunID, "error", err)
		}
	}
	return w.formatter.FormatTo(w.out, newAnswer(res, w.path))
}

func watchHomework(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(watchFlags.format)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if watchFlags.listen != "" {
		cfg.Telemetry.Metrics.ListenAddress = watchFlags.listen
	}
	base, err := newLogger(cfg, cmd.ErrOrStderr(), false)
	if err != nil {
		return err
	}
	logger := base.Slog()

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := cli.SetupSignalHandler(parent)
	defer stop()

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
	checker := health.New(0)
	w := &watcher{
		path:      args[0],
		driver:    newDriver(cfg, collector, logger),
		formatter: cli.NewFormatter(format),
		out:       cmd.OutOrStdout(),
		errOut:    cmd.ErrOrStderr(),
		last:      &lastRun{},
		logger:    logger.With("component", "watch"),
	}
	checker.Register("last_run", w.last.check)

	if cfg.Results.Enabled {
		store, err := storage.New(&cfg.Results, logger)
		if err != nil {
			return fmt.Errorf("failed to open results store: %w", err)
		}
		defer store.Close()
		w.store = store

		checker.Register("results_store", func(ctx context.Context) error {
			_, err := store.Count(ctx)
			return err
		})

		scheduler := retention.NewScheduler(retention.NewPruner(store, cfg.Results.Retention, logger))
		if err := scheduler.Start(ctx); err != nil {
			return cli.NewConfigError("results.retention.schedule", err.Error())
		}
		defer scheduler.Stop()
	}

	fw, err := watch.NewFileWatcher(watch.Config{
		Path:             w.path,
		DebounceInterval: cfg.Watch.DebounceInterval,
	}, logger)
	if err != nil {
		return err
	}
	defer fw.Close()

	g, gctx := errgroup.WithContext(ctx)
	if srv := newStatusServer(cfg, collector, checker, logger); srv != nil {
		g.Go(func() error {
			return srv.Start(gctx)
		})
	}

	// A bad first version of the file is reported like any later one.
	_ = w.run(gctx)

	g.Go(func() error {
		return fw.Watch(gctx, w.run)
	})
	return g.Wait()
}

// newStatusServer returns nil when no listen address is configured.
func newStatusServer(cfg *config.Config, collector *metrics.Collector, checker *health.Checker, logger *slog.Logger) *server.Server {
	mc := cfg.Telemetry.Metrics
	if mc.ListenAddress == "" {
		return nil
	}

	opts := []server.Option{server.WithHealth(checker, Version, GitCommit, BuildDate)}
	if collector.Enabled() {
		opts = append(opts, server.WithMetrics(collector.Handler()))
	}
	return server.New(server.Config{
		ListenAddress: mc.ListenAddress,
		MetricsPath:   mc.Path,
	}, logger, opts...)
}
