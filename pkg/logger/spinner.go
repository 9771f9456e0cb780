package logger

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner shows an animated indicator for long-running solver jobs.
type Spinner struct {
	mu       sync.Mutex
	active   bool
	message  string
	stopChan chan struct{}
}

// NewSpinner creates a spinner with the given message
func NewSpinner(message string) *Spinner {
	return &Spinner{message: message}
}

// Start begins the spinner animation
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active {
		return
	}
	s.active = true
	s.stopChan = make(chan struct{})

	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()

		frame := 0
		for {
			select {
			case <-s.stopChan:
				return
			case <-ticker.C:
				s.mu.Lock()
				fmt.Printf("\r%s %s", spinnerFrames[frame%len(spinnerFrames)], s.message)
				s.mu.Unlock()
				frame++
			}
		}
	}()
}

// UpdateMessage changes the spinner message in place
func (s *Spinner) UpdateMessage(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = message
}

// Stop halts the animation and clears the line
func (s *Spinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return
	}
	s.active = false
	close(s.stopChan)

	fmt.Printf("\r%s\r", strings.Repeat(" ", len(s.message)+2))
}
