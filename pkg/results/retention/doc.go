// Package retention prunes recorded runs.
//
// Pruner applies two limits in order: runs older than max_age are removed,
// then only the newest max_runs are kept. Scheduler invokes the pruner on a
// cron schedule (github.com/robfig/cron/v3) until its context is cancelled.
package retention
