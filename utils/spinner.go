package utils

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Spinner initializes the process indicator.
type Spinner struct {
	out      io.Writer
	stopChan chan struct{}
	done     sync.WaitGroup
}

// NewSpinner instantiates a new Spinner struct writing to out.
func NewSpinner(out io.Writer) *Spinner {
	return &Spinner{out: out}
}

// Start starts the process indicator.
func (s *Spinner) Start(message string) {
	s.stopChan = make(chan struct{}, 1)
	s.done.Add(1)

	go func() {
		defer s.done.Done()
		for {
			for _, r := range `-\|/` {
				select {
				case <-s.stopChan:
					fmt.Fprint(s.out, "\r")
					return
				default:
					fmt.Fprintf(s.out, "\r%s%s %c%s", message, SuccessColor, r, DefaultColor)
					time.Sleep(time.Millisecond * 100)
				}
			}
		}
	}()
}

// Stop stops the process indicator and waits for the last frame to be cleared.
func (s *Spinner) Stop() {
	s.stopChan <- struct{}{}
	s.done.Wait()
}
