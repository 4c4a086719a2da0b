package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/excalidocker/excalidocker/pkg/observability"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("parsed manifest") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("placed service") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("placed service") }, true},
		{"warn at info level", log.InfoLevel, func(l *log.Logger) { l.Warn("unknown dependency") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))

			if gotLog := buf.Len() > 0; gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, log.InfoLevel)).done("Generated 9 elements")

	out := buf.String()
	if !strings.Contains(out, "Generated 9 elements (") || !strings.Contains(out, "s)") {
		t.Errorf("progress.done() output = %q", out)
	}
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)

	if got := loggerFromContext(withLogger(context.Background(), custom)); got != custom {
		t.Error("loggerFromContext should return the attached logger")
	}
	if got := loggerFromContext(context.Background()); got != log.Default() {
		t.Error("loggerFromContext should fall back to log.Default()")
	}
}

func TestTraceHooks(t *testing.T) {
	var buf bytes.Buffer
	h := traceHooks{logger: newLogger(&buf, log.DebugLevel)}
	h.register()
	defer observability.Reset()

	ctx := context.Background()
	observability.Pipeline().OnStageStart(ctx, observability.StageParse, "compose.yaml")
	observability.Pipeline().OnStageComplete(ctx, observability.StageParse, "compose.yaml", time.Millisecond, errors.New("bad yaml"))
	observability.HTTP().OnResponse(ctx, "raw.githubusercontent.com", "/a/b", 200, 30*time.Millisecond)

	out := buf.String()
	for _, want := range []string{"stage started", "stage=parse", "stage failed", "bad yaml", "status=200"} {
		if !strings.Contains(out, want) {
			t.Errorf("trace output missing %q:\n%s", want, out)
		}
	}
}
