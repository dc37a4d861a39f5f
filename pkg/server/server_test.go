package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mercator-hq/pairnum/pkg/telemetry/health"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestServer_Routes(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "pairnum_runs_total 1\n")
	})
	checker := health.New(time.Second)

	s := New(Config{MetricsPath: "/m"}, discardLogger(),
		WithMetrics(metrics),
		WithHealth(checker, "dev", "none", "unknown"),
	)
	h := s.Handler()

	tests := []struct {
		path     string
		wantCode int
		wantBody string
	}{
		{"/m", http.StatusOK, "pairnum_runs_total 1"},
		{"/health", http.StatusOK, `"status":"ok"`},
		{"/ready", http.StatusOK, `"status":"ready"`},
		{"/version", http.StatusOK, `"version":"dev"`},
		{"/metrics", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rec.Code != tt.wantCode {
				t.Errorf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("expected body containing %q, got %q", tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestServer_NoOptions(t *testing.T) {
	s := New(Config{}, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 without health option, got %d", rec.Code)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	h := recoveryMiddleware(discardLogger(), http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}

func TestServer_StartAndShutdown(t *testing.T) {
	s := New(Config{ListenAddress: "127.0.0.1:0"}, discardLogger(),
		WithHealth(health.New(time.Second), "dev", "", ""),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Start(ctx)
	}()

	select {
	case <-s.Ready():
	case <-time.After(5 * time.Second):
		t.Fatal("server did not become ready")
	}

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get("http://" + s.Addr().String() + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	if err := s.Start(ctx); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("expected ErrAlreadyStarted, got %v", err)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_ListenError(t *testing.T) {
	s := New(Config{ListenAddress: "256.0.0.1:bad"}, discardLogger())
	if err := s.Start(context.Background()); err == nil {
		t.Fatal("expected listen error")
	}
}
