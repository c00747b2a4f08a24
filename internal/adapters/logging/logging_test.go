package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/cltnschlosser/swift-driver/internal/ports"
)

func TestNopLoggerImplementsInterface(_ *testing.T) {
	var _ ports.Logger = NewNopLogger()
}

func TestConsoleLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(WithOutput(&buf), WithLevel(ports.LevelWarn))
	ctx := context.Background()

	logger.Debug(ctx, "hidden")
	logger.Info(ctx, "hidden too")
	logger.Warn(ctx, "visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("low-severity messages leaked: %q", out)
	}
	if !strings.Contains(out, "WARN visible") {
		t.Errorf("warning missing: %q", out)
	}
}

func TestConsoleLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(WithOutput(&buf), WithLevel(ports.LevelDebug))
	child := logger.With(ports.F("mode", "batch"))
	child.Info(context.Background(), "planned", ports.F("jobs", 3))

	out := buf.String()
	for _, want := range []string{"INFO planned", "mode=batch", "jobs=3"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}
}
