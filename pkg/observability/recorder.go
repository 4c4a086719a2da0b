package observability

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"
)

// Recorder implements every hook interface by appending a short line per
// event, e.g. "stage done parse" or "cache hit https://...". It is safe for
// concurrent use and meant for tests and debugging:
//
//	rec := observability.NewRecorder()
//	rec.Register()
//	defer observability.Reset()
type Recorder struct {
	mu     sync.Mutex
	events []string
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder { return &Recorder{} }

// Register installs r for pipeline, cache and HTTP events.
func (r *Recorder) Register() {
	SetPipelineHooks(r)
	SetCacheHooks(r)
	SetHTTPHooks(r)
}

// Events returns a copy of the recorded events in order.
func (r *Recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.events)
}

func (r *Recorder) add(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, fmt.Sprintf(format, args...))
}

func (r *Recorder) OnStageStart(_ context.Context, stage Stage, _ string) {
	r.add("stage start %s", stage)
}

func (r *Recorder) OnStageComplete(_ context.Context, stage Stage, _ string, _ time.Duration, err error) {
	if err != nil {
		r.add("stage failed %s", stage)
		return
	}
	r.add("stage done %s", stage)
}

func (r *Recorder) OnCacheHit(_ context.Context, url string) {
	r.add("cache hit %s", url)
}

func (r *Recorder) OnCacheMiss(_ context.Context, url string) {
	r.add("cache miss %s", url)
}

func (r *Recorder) OnCacheSet(_ context.Context, url string, _ int) {
	r.add("cache set %s", url)
}

func (r *Recorder) OnRequest(_ context.Context, host, path string) {
	r.add("request %s%s", host, path)
}

func (r *Recorder) OnError(_ context.Context, host, _ string, _ error) {
	r.add("error %s", host)
}

func (r *Recorder) OnResponse(_ context.Context, host, _ string, status int, _ time.Duration) {
	r.add("response %s %d", host, status)
}
