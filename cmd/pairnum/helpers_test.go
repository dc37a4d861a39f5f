package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
)

// syncBuffer is a bytes.Buffer safe for a writer goroutine and a polling
// reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// newTestCmd returns a command carrying ctx with captured output.
func newTestCmd(ctx context.Context) (*cobra.Command, *syncBuffer, *syncBuffer) {
	stdout, stderr := &syncBuffer{}, &syncBuffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetContext(ctx)
	return cmd, stdout, stderr
}

// resetFlags restores every flag global to its default.
func resetFlags(t *testing.T) {
	t.Helper()
	cfgFile = ""
	verbose = false
	rootFlags.format = "text"
	rootFlags.record = false
	reduceFlags.format = "text"
	addFlags.format = "text"
	historyFlags.limit = 20
	historyFlags.format = "text"
	historyFlags.prune = false
	watchFlags.format = "text"
	watchFlags.listen = ""
}

// writeResultsConfig writes a config enabling the SQLite results store in
// a temp dir, points cfgFile at it and returns the database path.
func writeResultsConfig(t *testing.T, extra string) string {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "runs.db")
	yaml := fmt.Sprintf(`results:
  enabled: true
  backend: sqlite
  sqlite:
    path: %s
watch:
  debounce_interval: 20ms
telemetry:
  logging:
    level: warn
%s`, dbPath, extra)

	cfgPath := filepath.Join(dir, "pairnum.yaml")
	if err := os.WriteFile(cfgPath, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	cfgFile = cfgPath
	return dbPath
}

func readTestdata(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}
