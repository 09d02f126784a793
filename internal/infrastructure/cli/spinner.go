package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/doeshing/apidocgen/internal/domain"
	"github.com/doeshing/apidocgen/internal/ports"
)

// Spinner displays an animated spinner during long operations
type Spinner struct {
	frames   []string
	interval time.Duration
	writer   io.Writer
	stopChan chan struct{}
	wg       sync.WaitGroup
	running  bool
	mu       sync.Mutex
}

// NewSpinner creates a new spinner
func NewSpinner(w io.Writer) *Spinner {
	return &Spinner{
		frames:   []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		interval: 80 * time.Millisecond,
		writer:   w,
	}
}

// Start begins the spinner animation with a label. A stopped spinner can be started again.
func (s *Spinner) Start(label string) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	stop := make(chan struct{})
	s.stopChan = stop
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		idx := 0
		for {
			fmt.Fprintf(s.writer, "\r%s %s", s.frames[idx%len(s.frames)], label)
			idx++
			select {
			case <-stop:
				// Clear the spinner line
				fmt.Fprintf(s.writer, "\r\033[K")
				return
			case <-ticker.C:
			}
		}
	}()
}

// Stop stops the spinner animation
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	stop := s.stopChan
	s.mu.Unlock()

	close(stop)
	s.wg.Wait()
}

// spinningProvider shows the spinner while a model call is in flight.
type spinningProvider struct {
	ports.Provider
	spinner *Spinner
}

func (p spinningProvider) Generate(ctx context.Context, prompt string) (string, error) {
	p.spinner.Start(fmt.Sprintf("waiting for %s", p.Model().Name))
	defer p.spinner.Stop()
	return p.Provider.Generate(ctx, prompt)
}

// WithSpinner decorates providers with a stderr spinner when stderr is a terminal.
func WithSpinner() func(ports.Provider) ports.Provider {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		return nil
	}
	spinner := NewSpinner(os.Stderr)
	return func(p ports.Provider) ports.Provider {
		if p.Model().Kind() == domain.ProviderKindEcho {
			return p
		}
		return spinningProvider{Provider: p, spinner: spinner}
	}
}
