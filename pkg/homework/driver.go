package homework

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"mercator-hq/pairnum/pkg/pairnum"
	pnErrors "mercator-hq/pairnum/pkg/pairnum/errors"
	"mercator-hq/pairnum/pkg/pairnum/parser"
	"mercator-hq/pairnum/pkg/telemetry/logging"
)

// Scenario names used in logs and metrics.
const (
	ScenarioSum      = "sum"
	ScenarioBestPair = "best_pair"
)

// Run statuses reported to the Recorder.
const (
	StatusSuccess    = "success"
	StatusParseError = "parse_error"
	StatusError      = "error"
)

// ErrTooFewNumbers is returned by BestPair when there is no pair to try.
var ErrTooFewNumbers = errors.New("homework: best pair needs at least two numbers")

// PairResult identifies the ordered pair with the largest magnitude.
type PairResult struct {
	I         int // Index of the left operand
	J         int // Index of the right operand
	Magnitude int
}

// Result is the outcome of a full homework run.
type Result struct {
	RunID     string
	Count     int           // Numbers parsed from the input
	Part1     int           // Magnitude of the sum of all numbers
	Part2     int           // Largest magnitude of any two distinct numbers
	Best      PairResult    // Pair that produced Part2
	SumStats  pairnum.Stats // Rewrites performed by scenario A
	PairStats pairnum.Stats // Rewrites performed by scenario B
	Started   time.Time
	Duration  time.Duration
}

// Driver composes the parser, Add and Magnitude over a homework list.
type Driver struct {
	parser   *parser.Parser
	workers  int
	recorder Recorder
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures a Driver.
type Option func(*Driver)

// WithWorkers sets the number of goroutines used by BestPair.
// Values below 1 select runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(d *Driver) {
		if n < 1 {
			n = runtime.NumCPU()
		}
		d.workers = n
	}
}

// WithRecorder sets the measurement sink.
func WithRecorder(r Recorder) Option {
	return func(d *Driver) {
		if r != nil {
			d.recorder = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Driver) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithParser sets the parser used by Load and Run.
func WithParser(p *parser.Parser) Option {
	return func(d *Driver) {
		if p != nil {
			d.parser = p
		}
	}
}

// NewDriver creates a driver. By default it uses one worker per CPU,
// records nothing and logs through slog.Default().
func NewDriver(opts ...Option) *Driver {
	d := &Driver{
		parser:   parser.NewParser(),
		workers:  runtime.NumCPU(),
		recorder: nopRecorder{},
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = d.logger.With("component", "homework")
	return d
}

// Workers returns the size of the BestPair worker pool.
func (d *Driver) Workers() int {
	return d.workers
}

// Load parses one number per line from r, failing on the first malformed
// line.
func (d *Driver) Load(r io.Reader) ([]pairnum.Number, error) {
	nums, err := d.parser.ParseLines(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse homework: %w", err)
	}
	return nums, nil
}

// Sum adds all numbers in order and returns the magnitude of the result.
// nums is left untouched.
func (d *Driver) Sum(nums []pairnum.Number) (int, pairnum.Stats, error) {
	started := d.now()

	work := make([]pairnum.Number, len(nums))
	for i, n := range nums {
		work[i] = n.Clone()
	}

	total, st, err := pairnum.Sum(work)
	if err != nil {
		return 0, st, err
	}
	mag, err := pairnum.Magnitude(total)
	if err != nil {
		return 0, st, fmt.Errorf("magnitude of sum: %w", err)
	}

	d.recorder.RecordReduction(st)
	d.recorder.RecordScenario(ScenarioSum, mag, d.now().Sub(started))
	return mag, st, nil
}

// BestPair returns the ordered pair (i, j), i != j, whose sum has the
// largest magnitude. Ties go to the smallest i, then the smallest j.
// nums is left untouched.
func (d *Driver) BestPair(ctx context.Context, nums []pairnum.Number) (PairResult, pairnum.Stats, error) {
	if len(nums) < 2 {
		return PairResult{}, pairnum.Stats{}, ErrTooFewNumbers
	}
	started := d.now()

	rows := make([]rowResult, len(nums))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.workers)

	for i := range nums {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			row, err := evaluateRow(nums, i)
			if err != nil {
				return err
			}
			rows[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return PairResult{}, pairnum.Stats{}, err
	}

	best := rows[0].best
	var st pairnum.Stats
	evaluations := 0
	for _, row := range rows {
		if row.best.Magnitude > best.Magnitude {
			best = row.best
		}
		st.Merge(row.stats)
		evaluations += row.evaluations
	}

	d.logger.Debug("best pair found",
		"i", best.I,
		"j", best.J,
		"magnitude", best.Magnitude,
		"evaluations", evaluations,
		"workers", d.workers,
	)

	d.recorder.RecordReduction(st)
	d.recorder.RecordPairEvaluations(evaluations)
	d.recorder.RecordScenario(ScenarioBestPair, best.Magnitude, d.now().Sub(started))
	return best, st, nil
}

type rowResult struct {
	best        PairResult
	stats       pairnum.Stats
	evaluations int
}

// evaluateRow tries nums[i] as the left operand against every other number.
func evaluateRow(nums []pairnum.Number, i int) (rowResult, error) {
	row := rowResult{best: PairResult{I: i, J: -1}}
	for j := range nums {
		if j == i {
			continue
		}
		sum, st := pairnum.Add(nums[i].Clone(), nums[j].Clone())
		mag, err := pairnum.Magnitude(sum)
		if err != nil {
			return rowResult{}, fmt.Errorf("magnitude of pair (%d,%d): %w", i, j, err)
		}

		row.stats.Merge(st)
		row.evaluations++
		if row.best.J < 0 || mag > row.best.Magnitude {
			row.best = PairResult{I: i, J: j, Magnitude: mag}
		}
	}
	return row, nil
}

// Run parses r and computes both scenarios. Parsing is fail-fast: no
// partial result is returned when any line is malformed.
//
// The run ID is taken from ctx (logging.WithRunID) or generated.
func (d *Driver) Run(ctx context.Context, r io.Reader) (*Result, error) {
	res := &Result{
		RunID:   logging.GetRunID(ctx),
		Started: d.now(),
	}
	if res.RunID == "" {
		res.RunID = uuid.NewString()
	}
	logger := d.logger.With("run_id", res.RunID)

	err := d.run(ctx, r, res)
	res.Duration = d.now().Sub(res.Started)

	switch {
	case err == nil:
		d.recorder.RecordRun(StatusSuccess, res.Duration)
	case pnErrors.IsParseError(err):
		d.recorder.RecordRun(StatusParseError, res.Duration)
	default:
		d.recorder.RecordRun(StatusError, res.Duration)
	}
	if err != nil {
		logger.Error("homework failed", "error", err)
		return nil, err
	}

	logger.Info("homework finished",
		"numbers", res.Count,
		"part1", res.Part1,
		"part2", res.Part2,
		"best_i", res.Best.I,
		"best_j", res.Best.J,
		"duration_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}

func (d *Driver) run(ctx context.Context, r io.Reader, res *Result) error {
	nums, err := d.Load(r)
	if err != nil {
		return err
	}
	res.Count = len(nums)

	res.Part1, res.SumStats, err = d.Sum(nums)
	if err != nil {
		return err
	}

	res.Best, res.PairStats, err = d.BestPair(ctx, nums)
	if err != nil {
		return err
	}
	res.Part2 = res.Best.Magnitude
	return nil
}
