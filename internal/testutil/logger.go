package testutil

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// NewBufferLogger returns a debug-level text logger backed by a buffer and the buffer for assertions.
func NewBufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, &buf
}

// LogLine returns the first log line containing every fragment, or "" when none does.
func LogLine(buf *bytes.Buffer, fragments ...string) string {
	for _, line := range strings.Split(buf.String(), "\n") {
		matched := line != ""
		for _, f := range fragments {
			if !strings.Contains(line, f) {
				matched = false
				break
			}
		}
		if matched {
			return line
		}
	}
	return ""
}

// AssertLogged fails the test unless one log line carries every fragment.
func AssertLogged(t *testing.T, buf *bytes.Buffer, fragments ...string) {
	t.Helper()
	if LogLine(buf, fragments...) == "" {
		t.Fatalf("expected a log line with %q, got:\n%s", fragments, buf.String())
	}
}
