// Package observability provides hooks for metrics, tracing, and logging.
//
// The CLI works without any hooks registered. Embedders that run the
// conversion inside a service can register hooks at startup to receive
// pipeline stage timings, manifest cache events and remote fetch results,
// without this module depending on a metrics backend:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnStageStart(ctx, observability.StageParse, input)
//	// ... do parsing ...
//	observability.Pipeline().OnStageComplete(ctx, observability.StageParse, input, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// Stage names a pipeline stage.
type Stage string

// Pipeline stages in execution order.
const (
	StageRead   Stage = "read"
	StageParse  Stage = "parse"
	StageLayout Stage = "layout"
	StageRender Stage = "render"
)

// PipelineHooks receives events from the conversion pipeline. input is the
// manifest path or URL.
type PipelineHooks interface {
	OnStageStart(ctx context.Context, stage Stage, input string)
	OnStageComplete(ctx context.Context, stage Stage, input string, duration time.Duration, err error)
}

// CacheHooks receives events from the remote manifest cache.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, url string)
	OnCacheMiss(ctx context.Context, url string)
	OnCacheSet(ctx context.Context, url string, size int)
}

// HTTPHooks receives events from remote manifest downloads.
type HTTPHooks interface {
	// OnRequest records an outgoing request.
	OnRequest(ctx context.Context, host, path string)

	// OnResponse records a response, whatever its status.
	OnResponse(ctx context.Context, host, path string, statusCode int, duration time.Duration)

	// OnError records a network failure or timeout.
	OnError(ctx context.Context, host, path string, err error)
}

// NoopPipelineHooks ignores every event.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnStageStart(context.Context, Stage, string)                        {}
func (NoopPipelineHooks) OnStageComplete(context.Context, Stage, string, time.Duration, error) {}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks ignores every event.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, error)                 {}

// slot holds one registered hook set, falling back to its default.
type slot[T any] struct {
	mu  sync.RWMutex
	cur T
	def T
}

func newSlot[T any](def T) *slot[T] { return &slot[T]{cur: def, def: def} }

func (s *slot[T]) get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// set ignores a nil h so callers cannot disable events by accident.
func (s *slot[T]) set(h T) {
	if any(h) == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = h
}

func (s *slot[T]) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = s.def
}

var (
	pipelineSlot = newSlot[PipelineHooks](NoopPipelineHooks{})
	cacheSlot    = newSlot[CacheHooks](NoopCacheHooks{})
	httpSlot     = newSlot[HTTPHooks](NoopHTTPHooks{})
)

// SetPipelineHooks registers h. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) { pipelineSlot.set(h) }

// SetCacheHooks registers h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) { cacheSlot.set(h) }

// SetHTTPHooks registers h. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) { httpSlot.set(h) }

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks { return pipelineSlot.get() }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return cacheSlot.get() }

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks { return httpSlot.get() }

// Reset restores the no-op defaults.
func Reset() {
	pipelineSlot.reset()
	cacheSlot.reset()
	httpSlot.reset()
}
