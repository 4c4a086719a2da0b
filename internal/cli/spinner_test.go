package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer is a bytes.Buffer safe for the spinner goroutine.
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

func TestSpinnerDrawsAndClears(t *testing.T) {
	var out syncBuffer
	s := startSpinner(context.Background(), &out, "Fetching compose.yaml...")
	time.Sleep(4 * spinnerInterval)
	s.stop()

	got := out.String()
	if !strings.Contains(got, "Fetching compose.yaml...") {
		t.Errorf("spinner output = %q", got)
	}
	if !strings.HasSuffix(got, "\r") {
		t.Errorf("spinner should end by clearing its line, got %q", got)
	}
	if s.ctx.Err() == nil {
		t.Error("spinner context still live after stop")
	}
}

func TestSpinnerFollowsContext(t *testing.T) {
	tests := []struct {
		name string
		ctx  func() (context.Context, context.CancelFunc)
	}{
		{"cancel", func() (context.Context, context.CancelFunc) {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			return ctx, cancel
		}},
		{"timeout", func() (context.Context, context.CancelFunc) {
			return context.WithTimeout(context.Background(), 20*time.Millisecond)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := tt.ctx()
			defer cancel()

			s := startSpinner(ctx, &syncBuffer{}, "waiting")
			select {
			case <-s.stopped:
			case <-time.After(time.Second):
				t.Fatal("spinner did not stop with its context")
			}
			if s.ctx.Err() == nil {
				t.Error("spinner context still live")
			}
		})
	}
}

func TestSpinnerStopTwice(t *testing.T) {
	s := startSpinner(context.Background(), &syncBuffer{}, "stopping")
	s.stop()
	s.stop()
	s.fail("Conversion failed")
}

func TestFetchSpinnerLocalInput(t *testing.T) {
	s := fetchSpinner(context.Background(), "docker-compose.yaml")
	if s != nil {
		t.Fatal("local input should not start a spinner")
	}
	s.stop()
	s.fail("ignored")
}
