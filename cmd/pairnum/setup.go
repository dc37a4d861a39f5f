package main

import (
	"io"
	"log/slog"

	"mercator-hq/pairnum/pkg/cli"
	"mercator-hq/pairnum/pkg/config"
	"mercator-hq/pairnum/pkg/homework"
	"mercator-hq/pairnum/pkg/pairnum/parser"
	"mercator-hq/pairnum/pkg/telemetry/logging"
)

// loadConfig resolves and loads the configuration, applying PAIRNUM_*
// environment overrides.
func loadConfig() (*config.Config, error) {
	path, err := config.ResolvePath(cfgFile)
	if err != nil {
		return nil, cli.NewConfigError("", err.Error())
	}
	cfg, err := config.LoadConfigWithEnvOverrides(path)
	if err != nil {
		return nil, cli.NewConfigError("", err.Error())
	}
	return cfg, nil
}

// newLogger builds the stderr logger. One-shot commands only log warnings
// unless --verbose is set; --verbose always means debug.
func newLogger(cfg *config.Config, w io.Writer, oneShot bool) (*logging.Logger, error) {
	lc := logging.Config{
		Level:     cfg.Telemetry.Logging.Level,
		Format:    cfg.Telemetry.Logging.Format,
		AddSource: cfg.Telemetry.Logging.AddSource,
		Writer:    w,
	}
	switch {
	case verbose:
		lc.Level = "debug"
	case oneShot:
		if level, err := logging.ParseLevel(lc.Level); err == nil && level < slog.LevelWarn {
			lc.Level = "warn"
		}
	}

	logger, err := logging.New(lc)
	if err != nil {
		return nil, cli.NewConfigError("telemetry.logging", err.Error())
	}
	return logger, nil
}

// newDriver builds a homework driver from the homework section.
func newDriver(cfg *config.Config, recorder homework.Recorder, logger *slog.Logger) *homework.Driver {
	p := parser.NewParser()
	if cfg.Homework.MaxNesting > 0 {
		p = p.WithMaxNesting(cfg.Homework.MaxNesting)
	}
	return homework.NewDriver(
		homework.WithWorkers(cfg.Homework.Workers),
		homework.WithParser(p),
		homework.WithRecorder(recorder),
		homework.WithLogger(logger),
	)
}
