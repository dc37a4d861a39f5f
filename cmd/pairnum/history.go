package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/pairnum/pkg/cli"
	"mercator-hq/pairnum/pkg/results"
	"mercator-hq/pairnum/pkg/results/retention"
	"mercator-hq/pairnum/pkg/results/storage"
)

var historyFlags struct {
	limit  int
	format string
	prune  bool
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded homework runs",
	Long: `List runs recorded by "pairnum --record" or "pairnum watch", newest first.

Runs are read from the SQLite results store configured under results.sqlite.

Examples:
  # Last 20 runs
  pairnum history

  # Every run as JSON
  pairnum history --limit 0 --format json

  # Apply the retention limits before listing
  pairnum history --prune`,
	Args: cobra.NoArgs,
	RunE: listHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyFlags.limit, "limit", "n", 20, "maximum runs to show (0 for all)")
	historyCmd.Flags().StringVar(&historyFlags.format, "format", "text", "output format: text, json")
	historyCmd.Flags().BoolVar(&historyFlags.prune, "prune", false, "apply results.retention limits first")
}

type runList struct {
	Total int64          `json:"total"`
	Runs  []*results.Run `json:"runs"`
}

// WriteText prints one block per run.
func (l runList) WriteText(w io.Writer) error {
	fmt.Fprintf(w, "Total runs: %d\n", l.Total)
	for _, r := range l.Runs {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Run ID: %s\n", r.ID)
		fmt.Fprintf(w, "Started: %s\n", r.StartedAt.Format(time.RFC3339))
		fmt.Fprintf(w, "Input: %s (%d numbers, sha256 %.12s)\n", r.InputPath, r.Count, r.InputHash)
		fmt.Fprintf(w, "part1 %d\n", r.Part1)
		fmt.Fprintf(w, "part2 %d (pair %d,%d)\n", r.Part2, r.BestI, r.BestJ)
		if _, err := fmt.Fprintf(w, "Rewrites: %d explodes, %d splits in %s\n", r.Explodes, r.Splits, r.Duration); err != nil {
			return err
		}
	}
	return nil
}

func listHistory(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(historyFlags.format)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Results.Backend == "memory" {
		return cli.NewConfigError("results.backend", "history needs a persistent backend, memory keeps nothing between runs")
	}
	logger, err := newLogger(cfg, cmd.ErrOrStderr(), true)
	if err != nil {
		return err
	}

	store, err := storage.New(&cfg.Results, logger.Slog())
	if err != nil {
		return fmt.Errorf("failed to open results store: %w", err)
	}
	defer store.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if historyFlags.prune {
		deleted, err := retention.NewPruner(store, cfg.Results.Retention, logger.Slog()).Prune(ctx)
		if err != nil {
			return err
		}
		logger.Info("pruned runs", "deleted_count", deleted)
	}

	runs, err := store.List(ctx, historyFlags.limit)
	if err != nil {
		return err
	}
	total, err := store.Count(ctx)
	if err != nil {
		return err
	}

	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), runList{Total: total, Runs: runs})
}
