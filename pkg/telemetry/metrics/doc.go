// Package metrics provides Prometheus metrics for pairnum.
//
// # Metrics
//
//   - pairnum_reductions_total: scenario reductions recorded
//   - pairnum_explodes_total: explode rewrites
//   - pairnum_splits_total: split rewrites
//   - pairnum_pair_evaluations_total: ordered pairs evaluated in the best pair scenario
//   - pairnum_run_duration_seconds{scenario}: scenario duration histogram
//   - pairnum_last_magnitude{scenario}: magnitude of the latest scenario result
//   - pairnum_runs_total{status}: runs by outcome (success, parse_error, error)
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	driver := homework.NewDriver(homework.WithRecorder(collector))
//
//	mux := http.NewServeMux()
//	mux.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
//
// Each collector owns its registry, so several collectors can coexist in
// one process (tests rely on this).
package metrics
