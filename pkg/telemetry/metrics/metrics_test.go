package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mercator-hq/pairnum/pkg/config"
	"mercator-hq/pairnum/pkg/homework"
	"mercator-hq/pairnum/pkg/pairnum"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

var _ homework.Recorder = (*Collector)(nil)

func testConfig() *config.MetricsConfig {
	return &config.MetricsConfig{
		Enabled:         true,
		Namespace:       "test",
		DurationBuckets: []float64{0.01, 0.1, 1},
	}
}

func TestCollector_NewCollector(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()

	collector := NewCollector(cfg, registry)

	if collector == nil {
		t.Fatal("Expected non-nil collector")
	}
	if collector.Registry() != registry {
		t.Error("Collector registry not set correctly")
	}
	if !collector.Enabled() {
		t.Error("Expected collector to be enabled")
	}
}

func TestCollector_NilRegistryAndDefaults(t *testing.T) {
	cfg := &config.MetricsConfig{Enabled: true}
	collector := NewCollector(cfg, nil)

	if collector.Registry() == nil {
		t.Fatal("Expected a registry to be created")
	}
	if cfg.Namespace != config.DefaultMetricsNamespace {
		t.Errorf("Expected namespace %q, got %q", config.DefaultMetricsNamespace, cfg.Namespace)
	}

	collector.RecordRun(homework.StatusSuccess, time.Second)
	if got := testutil.ToFloat64(collector.runsTotal.WithLabelValues(homework.StatusSuccess)); got != 1 {
		t.Errorf("Expected 1 run, got %v", got)
	}
}

func TestCollector_RecordReduction(t *testing.T) {
	collector := NewCollector(testConfig(), nil)

	collector.RecordReduction(pairnum.Stats{Explodes: 3, Splits: 2})
	collector.RecordReduction(pairnum.Stats{Explodes: 1})

	tests := []struct {
		name   string
		metric prometheus.Counter
		want   float64
	}{
		{"reductions", collector.reductionsTotal, 2},
		{"explodes", collector.explodesTotal, 4},
		{"splits", collector.splitsTotal, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := testutil.ToFloat64(tt.metric); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestCollector_RecordPairEvaluations(t *testing.T) {
	collector := NewCollector(testConfig(), nil)

	collector.RecordPairEvaluations(90)
	collector.RecordPairEvaluations(0)
	collector.RecordPairEvaluations(-5)

	if got := testutil.ToFloat64(collector.pairEvaluationsTotal); got != 90 {
		t.Errorf("Expected 90 evaluations, got %v", got)
	}
}

func TestCollector_RecordScenario(t *testing.T) {
	collector := NewCollector(testConfig(), nil)

	collector.RecordScenario(homework.ScenarioSum, 4140, 5*time.Millisecond)
	collector.RecordScenario(homework.ScenarioBestPair, 3993, 50*time.Millisecond)
	collector.RecordScenario(homework.ScenarioSum, 143, 2*time.Millisecond)

	if got := testutil.ToFloat64(collector.lastMagnitude.WithLabelValues(homework.ScenarioSum)); got != 143 {
		t.Errorf("Expected last sum magnitude 143, got %v", got)
	}
	if got := testutil.ToFloat64(collector.lastMagnitude.WithLabelValues(homework.ScenarioBestPair)); got != 3993 {
		t.Errorf("Expected last best pair magnitude 3993, got %v", got)
	}
	if got := testutil.CollectAndCount(collector.runDuration); got != 2 {
		t.Errorf("Expected 2 duration series, got %d", got)
	}
}

func TestCollector_RecordRun(t *testing.T) {
	collector := NewCollector(testConfig(), nil)

	collector.RecordRun(homework.StatusSuccess, time.Millisecond)
	collector.RecordRun(homework.StatusSuccess, time.Millisecond)
	collector.RecordRun(homework.StatusParseError, time.Millisecond)

	expected := `
# HELP test_runs_total Number of homework runs by outcome
# TYPE test_runs_total counter
test_runs_total{status="parse_error"} 1
test_runs_total{status="success"} 2
`
	if err := testutil.CollectAndCompare(collector.runsTotal, strings.NewReader(expected)); err != nil {
		t.Errorf("Unexpected metrics: %v", err)
	}
}

func TestCollector_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	collector := NewCollector(cfg, nil)

	collector.RecordReduction(pairnum.Stats{Explodes: 1, Splits: 1})
	collector.RecordPairEvaluations(10)
	collector.RecordScenario(homework.ScenarioSum, 1, time.Millisecond)
	collector.RecordRun(homework.StatusSuccess, time.Millisecond)

	if got := testutil.ToFloat64(collector.explodesTotal); got != 0 {
		t.Errorf("Expected no explodes recorded, got %v", got)
	}
	if got := testutil.ToFloat64(collector.pairEvaluationsTotal); got != 0 {
		t.Errorf("Expected no evaluations recorded, got %v", got)
	}
	if got := testutil.CollectAndCount(collector.runsTotal); got != 0 {
		t.Errorf("Expected no run series, got %d", got)
	}
}

func TestCollector_DriverIntegration(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	driver := homework.NewDriver(homework.WithRecorder(collector), homework.WithWorkers(2))

	input := strings.Join([]string{
		"[[[0,[5,8]],[[1,7],[9,6]]],[[4,[1,2]],[[1,4],2]]]",
		"[[[5,[2,8]],4],[5,[[9,9],0]]]",
		"[6,[[[6,2],[5,6]],[[7,6],[4,7]]]]",
	}, "\n")

	if _, err := driver.Run(t.Context(), strings.NewReader(input)); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if got := testutil.ToFloat64(collector.pairEvaluationsTotal); got != 6 {
		t.Errorf("Expected 6 pair evaluations, got %v", got)
	}
	if got := testutil.ToFloat64(collector.reductionsTotal); got != 2 {
		t.Errorf("Expected 2 reductions, got %v", got)
	}
	if got := testutil.ToFloat64(collector.runsTotal.WithLabelValues(homework.StatusSuccess)); got != 1 {
		t.Errorf("Expected 1 successful run, got %v", got)
	}
}

func TestCollector_Handler(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	collector.RecordRun(homework.StatusSuccess, time.Millisecond)

	server := httptest.NewServer(collector.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(string(body), `test_runs_total{status="success"} 1`) {
		t.Errorf("Expected runs_total in output, got:\n%s", body)
	}
}
