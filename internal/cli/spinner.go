package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	errs "github.com/excalidocker/excalidocker/pkg/errors"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// spinner animates a status line while a remote manifest downloads. It
// stops by itself when ctx ends.
type spinner struct {
	w       io.Writer
	message string
	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{}
	once    sync.Once

	mu    sync.Mutex
	width int
}

// startSpinner begins drawing to w at once.
func startSpinner(ctx context.Context, w io.Writer, message string) *spinner {
	ctx, cancel := context.WithCancel(ctx)
	s := &spinner{
		w:       w,
		message: message,
		ctx:     ctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *spinner) run() {
	defer close(s.stopped)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	start := time.Now()
	for i := 0; ; i++ {
		select {
		case <-s.ctx.Done():
			s.clear()
			return
		case <-ticker.C:
			frame := spinnerFrames[i%len(spinnerFrames)]
			line := s.message
			if elapsed := time.Since(start); elapsed >= time.Second {
				line += fmt.Sprintf(" (%ds)", int(elapsed.Seconds()))
			}
			s.draw(styleIconSpinner.Render(frame)+" "+styleDim.Render(line), len(line)+2)
		}
	}
}

func (s *spinner) draw(rendered string, width int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\r%s", rendered)
	s.width = max(s.width, width)
}

func (s *spinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width > 0 {
		fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width))
	}
}

// fetchSpinner starts a spinner on stderr for remote inputs. Local paths
// get a nil spinner, whose methods do nothing.
func fetchSpinner(ctx context.Context, input string) *spinner {
	if !errs.IsRemote(input) {
		return nil
	}
	return startSpinner(ctx, os.Stderr, "Fetching "+input+"...")
}

// stop ends the animation and erases the line. It is safe to call twice.
func (s *spinner) stop() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		s.cancel()
		<-s.stopped
	})
}

// fail stops the spinner and prints message as an error.
func (s *spinner) fail(message string) {
	if s == nil {
		return
	}
	s.stop()
	printError("%s", message)
}
