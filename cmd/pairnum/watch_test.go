package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"mercator-hq/pairnum/pkg/config"
	"mercator-hq/pairnum/pkg/homework"
	"mercator-hq/pairnum/pkg/results/storage"
	"mercator-hq/pairnum/pkg/telemetry/health"
	"mercator-hq/pairnum/pkg/telemetry/metrics"
)

func waitForOutput(t *testing.T, buf *syncBuffer, want string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !strings.Contains(buf.String(), want) {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %q, output so far:\n%s", want, buf.String())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

// startWatchCmd runs watchHomework on path and returns a function that
// stops it and returns its error.
func startWatchCmd(t *testing.T, path string) (*syncBuffer, *syncBuffer, func() error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	cmd, stdout, stderr := newTestCmd(ctx)

	done := make(chan error, 1)
	go func() {
		done <- watchHomework(cmd, []string{path})
	}()

	return stdout, stderr, func() error {
		cancel()
		select {
		case err := <-done:
			return err
		case <-time.After(5 * time.Second):
			t.Fatal("watch did not stop after cancel")
			return nil
		}
	}
}

func TestWatchHomework(t *testing.T) {
	resetFlags(t)
	dbPath := writeResultsConfig(t, "")

	path := filepath.Join(t.TempDir(), "homework.txt")
	if err := os.WriteFile(path, []byte(readTestdata(t, "example.txt")), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, stderr, stop := startWatchCmd(t, path)
	waitForOutput(t, stdout, "part1 4140\npart2 3993\n")

	// A malformed save is reported and watching continues.
	if err := os.WriteFile(path, []byte("[1,2]\n[[3,\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitForOutput(t, stderr, "line 2")

	if err := os.WriteFile(path, []byte("[9,1]\n[1,9]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitForOutput(t, stdout, "part1 129\npart2 129\n")

	if err := stop(); err != nil {
		t.Fatalf("watchHomework() error = %v", err)
	}

	store, err := storage.NewSQLiteStorage(config.SQLiteConfig{Path: dbPath}, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	runs, err := store.List(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) < 2 {
		t.Fatalf("expected at least 2 recorded runs, got %d", len(runs))
	}
	if runs[0].Part1 != 129 {
		t.Errorf("latest recorded part1 = %d, want 129", runs[0].Part1)
	}
}

func TestWatchHomeworkMissingFile(t *testing.T) {
	resetFlags(t)
	cmd, _, _ := newTestCmd(context.Background())

	if err := watchHomework(cmd, []string{filepath.Join(t.TempDir(), "missing.txt")}); err == nil {
		t.Error("expected error watching a missing file")
	}
}

func TestWatchHomeworkListenError(t *testing.T) {
	resetFlags(t)
	watchFlags.listen = "127.0.0.1:-1"

	path := filepath.Join(t.TempDir(), "homework.txt")
	if err := os.WriteFile(path, []byte("[1,2]\n[3,4]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd, _, _ := newTestCmd(context.Background())
	if err := watchHomework(cmd, []string{path}); err == nil {
		t.Error("expected listen error to stop watch")
	}
}

func TestNewStatusServer(t *testing.T) {
	cfg := config.DefaultConfig()
	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
	checker := health.New(time.Second)

	if srv := newStatusServer(cfg, collector, checker, nil); srv != nil {
		t.Fatal("expected no server without a listen address")
	}

	cfg.Telemetry.Metrics.ListenAddress = "127.0.0.1:0"
	srv := newStatusServer(cfg, collector, checker, nil)
	if srv == nil {
		t.Fatal("expected a server with a listen address")
	}

	last := &lastRun{}
	checker.Register("last_run", last.check)

	driver := homework.NewDriver(homework.WithRecorder(collector), homework.WithWorkers(1))
	if _, err := driver.Run(context.Background(), strings.NewReader("[1,2]\n[3,4]\n")); err != nil {
		t.Fatal(err)
	}

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	get := func(path string) (int, string) {
		t.Helper()
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, string(body)
	}

	if code, _ := get("/ready"); code != http.StatusServiceUnavailable {
		t.Errorf("/ready before any run = %d, want 503", code)
	}
	last.set(nil)
	if code, _ := get("/ready"); code != http.StatusOK {
		t.Errorf("/ready after a good run = %d, want 200", code)
	}
	last.set(errors.New("parse failed"))
	if code, _ := get("/ready"); code != http.StatusServiceUnavailable {
		t.Errorf("/ready after a failed run = %d, want 503", code)
	}

	code, body := get("/metrics")
	if code != http.StatusOK {
		t.Fatalf("/metrics = %d", code)
	}
	if !strings.Contains(body, `pairnum_runs_total{status="success"} 1`) {
		t.Errorf("metrics missing run counter:\n%s", body)
	}
}
