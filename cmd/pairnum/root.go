package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"mercator-hq/pairnum/pkg/cli"
	"mercator-hq/pairnum/pkg/config"
	"mercator-hq/pairnum/pkg/homework"
	"mercator-hq/pairnum/pkg/results"
	"mercator-hq/pairnum/pkg/results/storage"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootFlags struct {
	format string
	record bool
}

var rootCmd = &cobra.Command{
	Use:   "pairnum [file]",
	Short: "Pairnum - nested-pair number homework",
	Long: `Pairnum adds nested-pair numbers and reports magnitudes.

Given a homework list with one number per line, pairnum prints:
  part1 <magnitude of the sum of every number, in order>
  part2 <largest magnitude of the sum of any two distinct numbers>

The list is read from the file argument, or from stdin when the argument
is absent or "-". Malformed input exits with status 2.

Examples:
  # Solve a homework file
  pairnum homework.txt

  # Read from stdin, print JSON
  pairnum --format json < homework.txt

  # Record the run in the results store
  pairnum homework.txt --record`,
	Args:          cobra.MaximumNArgs(1),
	RunE:          runHomework,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return cli.ExitCode(err)
	}
	return cli.ExitOK
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default ./pairnum.yaml if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.Flags().StringVar(&rootFlags.format, "format", "text", "output format: text, json")
	rootCmd.Flags().BoolVar(&rootFlags.record, "record", false, "store the run in the configured results backend")
}

// answer is the printed outcome of a homework run.
type answer struct {
	RunID      string `json:"run_id"`
	Input      string `json:"input"`
	Count      int    `json:"count"`
	Part1      int    `json:"part1"`
	Part2      int    `json:"part2"`
	BestI      int    `json:"best_i"`
	BestJ      int    `json:"best_j"`
	DurationMS int64  `json:"duration_ms"`
}

func newAnswer(res *homework.Result, input string) answer {
	return answer{
		RunID:      res.RunID,
		Input:      input,
		Count:      res.Count,
		Part1:      res.Part1,
		Part2:      res.Part2,
		BestI:      res.Best.I,
		BestJ:      res.Best.J,
		DurationMS: res.Duration.Milliseconds(),
	}
}

// WriteText prints the two result lines.
func (a answer) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "part1 %d\npart2 %d\n", a.Part1, a.Part2)
	return err
}

func runHomework(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(rootFlags.format)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, cmd.ErrOrStderr(), true)
	if err != nil {
		return err
	}

	name, data, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	driver := newDriver(cfg, nil, logger.Slog())
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	res, err := driver.Run(ctx, bytes.NewReader(data))
	if err != nil {
		return err
	}

	if rootFlags.record {
		if err := recordRun(ctx, cfg.Results, res, name, data, logger.Slog()); err != nil {
			return err
		}
	}

	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), newAnswer(res, name))
}

// readInput returns the homework text from the file argument or stdin.
func readInput(cmd *cobra.Command, args []string) (string, []byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return "-", data, nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", nil, fmt.Errorf("failed to read homework: %w", err)
	}
	return args[0], data, nil
}

// recordRun stores res in a short-lived connection to the results backend.
func recordRun(ctx context.Context, cfg config.ResultsConfig, res *homework.Result, name string, data []byte, logger *slog.Logger) error {
	store, err := storage.New(&cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open results store: %w", err)
	}
	defer store.Close()

	if err := store.Store(ctx, results.NewRun(res, name, data)); err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	logger.Debug("run recorded", "run_id", res.RunID, "backend", cfg.Backend)
	return nil
}
