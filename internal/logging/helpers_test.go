package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestHelpersAreNilSafe(t *testing.T) {
	Info(context.Background(), nil, "ignored")
	Warn(context.Background(), nil, "ignored")
	Error(context.Background(), nil, "ignored", errors.New("boom"))
}

func TestErrorAppendsErrorField(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Output: &buf})
	Error(context.Background(), logger, "save failed", errors.New("disk full"), FieldCollection, "players")

	out := buf.String()
	if !strings.Contains(out, "disk full") || !strings.Contains(out, "collection=players") {
		t.Fatalf("expected error and collection fields, got %s", out)
	}
}

func TestInfoPrefersContextLogger(t *testing.T) {
	var base, scoped bytes.Buffer
	ctx := WithLogger(context.Background(), NewLogger(Config{Output: &scoped}))
	Info(ctx, NewLogger(Config{Output: &base}), "scoped message")

	if base.Len() != 0 {
		t.Fatalf("expected base logger untouched, got %s", base.String())
	}
	if !strings.Contains(scoped.String(), "scoped message") {
		t.Fatalf("expected scoped logger output, got %s", scoped.String())
	}
}
