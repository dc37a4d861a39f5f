package homework

import (
	"time"

	"mercator-hq/pairnum/pkg/pairnum"
)

// Recorder receives measurements from the driver.
// metrics.Collector implements it.
type Recorder interface {
	// RecordReduction records the rewrites performed by one scenario.
	RecordReduction(stats pairnum.Stats)

	// RecordPairEvaluations records how many ordered pairs were evaluated.
	RecordPairEvaluations(n int)

	// RecordScenario records a finished scenario and its magnitude.
	RecordScenario(scenario string, magnitude int, duration time.Duration)

	// RecordRun records the outcome of a full run.
	RecordRun(status string, duration time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) RecordReduction(pairnum.Stats) {}
func (nopRecorder) RecordPairEvaluations(int) {}
func (nopRecorder) RecordScenario(string, int, time.Duration) {}
func (nopRecorder) RecordRun(string, time.Duration) {}
