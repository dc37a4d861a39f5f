// Package telemetry groups the observability packages used by pairnum.
//
// # Components
//
//   - logging: slog-based structured logging with run ID context fields
//   - metrics: Prometheus collector fed by the homework driver
//   - health: liveness and readiness checks for the watch status server
//
// Logs always go to stderr so that stdout carries only results.
//
// # Usage
//
//	logger, err := logging.New(logging.Config{Level: "info", Format: "text"})
//	if err != nil {
//	    return err
//	}
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	driver := homework.NewDriver(
//	    homework.WithRecorder(collector),
//	    homework.WithLogger(logger.Slog()),
//	)
package telemetry
