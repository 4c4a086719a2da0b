package observability

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"
)

func TestRegistryDefaults(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Errorf("Pipeline() = %T, want NoopPipelineHooks", Pipeline())
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("Cache() = %T, want NoopCacheHooks", Cache())
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Errorf("HTTP() = %T, want NoopHTTPHooks", HTTP())
	}
}

func TestRegistrySetAndReset(t *testing.T) {
	defer Reset()

	rec := NewRecorder()
	rec.Register()
	if Pipeline() != PipelineHooks(rec) || Cache() != CacheHooks(rec) || HTTP() != HTTPHooks(rec) {
		t.Fatal("Register should install the recorder for every hook kind")
	}

	SetPipelineHooks(nil)
	if Pipeline() != PipelineHooks(rec) {
		t.Error("SetPipelineHooks(nil) should keep the registered hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore the no-op pipeline hooks")
	}
}

func TestRecorder(t *testing.T) {
	ctx := context.Background()
	rec := NewRecorder()

	rec.OnStageStart(ctx, StageRead, "https://example.com/compose.yaml")
	rec.OnCacheMiss(ctx, "https://example.com/compose.yaml")
	rec.OnRequest(ctx, "example.com", "/compose.yaml")
	rec.OnResponse(ctx, "example.com", "/compose.yaml", 503, time.Millisecond)
	rec.OnError(ctx, "example.com", "/compose.yaml", errors.New("reset"))
	rec.OnStageComplete(ctx, StageRead, "https://example.com/compose.yaml", time.Second, errors.New("fetch"))

	want := []string{
		"stage start read",
		"cache miss https://example.com/compose.yaml",
		"request example.com/compose.yaml",
		"response example.com 503",
		"error example.com",
		"stage failed read",
	}
	if got := rec.Events(); !slices.Equal(got, want) {
		t.Errorf("Events() =\n%q\nwant\n%q", got, want)
	}
}

func TestRecorderConcurrent(t *testing.T) {
	rec := NewRecorder()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec.OnCacheHit(context.Background(), "u")
		}()
	}
	wg.Wait()
	if n := len(rec.Events()); n != 8 {
		t.Errorf("recorded %d events, want 8", n)
	}
}
