package main

import (
	"bytes"
	"runtime"
	"strings"
	"testing"
)

func TestVersionCommand(t *testing.T) {
	origVersion, origCommit := Version, GitCommit
	defer func() { Version, GitCommit = origVersion, origCommit }()

	Version = "0.1.0-test"
	GitCommit = "abc123"

	buf := &bytes.Buffer{}
	versionCmd.SetOut(buf)
	defer versionCmd.SetOut(nil)
	versionCmd.Run(versionCmd, nil)

	out := buf.String()
	for _, want := range []string{"pairnum 0.1.0-test", "Git Commit: abc123", runtime.Version()} {
		if !strings.Contains(out, want) {
			t.Errorf("version output missing %q:\n%s", want, out)
		}
	}
}
