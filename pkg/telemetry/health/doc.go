// Package health provides liveness and readiness probes for long-running
// pairnum processes (watch mode).
//
// # Endpoints
//
//   - /health: liveness, always 200 while the process serves requests
//   - /ready: readiness, 503 when any registered check fails
//   - /version: build information
//
// # Usage
//
//	checker := health.New(2 * time.Second)
//	checker.Register("results_store", func(ctx context.Context) error {
//	    _, err := store.Count(ctx)
//	    return err
//	})
//
//	mux := http.NewServeMux()
//	health.Register(mux, checker, version, commit, buildTime)
//
// Checks run concurrently, each bounded by the checker timeout.
package health
