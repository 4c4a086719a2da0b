package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/excalidocker/excalidocker/pkg/observability"
)

// newLogger writes leveled logs with short "15:04:05.00" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs how long an operation took once it is done.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Generated 42 elements (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext falls back to log.Default() when ctx carries no logger.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// traceHooks reports pipeline stages and manifest downloads as debug logs.
// It is registered only when --verbose is set.
type traceHooks struct {
	logger *log.Logger
}

func (h traceHooks) register() {
	observability.SetPipelineHooks(h)
	observability.SetHTTPHooks(h)
}

func (h traceHooks) OnStageStart(_ context.Context, stage observability.Stage, input string) {
	h.logger.Debug("stage started", "stage", stage, "input", input)
}

func (h traceHooks) OnStageComplete(_ context.Context, stage observability.Stage, _ string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("stage failed", "stage", stage, "duration", d, "error", err)
		return
	}
	h.logger.Debug("stage done", "stage", stage, "duration", d)
}

func (h traceHooks) OnRequest(_ context.Context, host, path string) {
	h.logger.Debug("GET", "host", host, "path", path)
}

func (h traceHooks) OnResponse(_ context.Context, host, _ string, status int, d time.Duration) {
	h.logger.Debug("response", "host", host, "status", status, "duration", d.Round(time.Millisecond))
}

func (h traceHooks) OnError(_ context.Context, host, _ string, err error) {
	h.logger.Debug("request failed", "host", host, "error", err)
}
