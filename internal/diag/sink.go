// File: internal/diag/sink.go
// Package diag implements the process-wide diagnostic sink for ring
// buffer overflow/underflow events.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The ring buffer's hot path must stay non-blocking even on failure, so
// a diagnostic call only enqueues a line into an eapache/queue.Queue and
// returns; a single background goroutine drains the queue to the
// configured io.Writer.

package diag

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/eapache/queue"
	"github.com/momentics/bytering/api"
)

// Sink buffers diagnostic lines through a ring-buffer-backed FIFO and
// writes them out on its own goroutine.
type Sink struct {
	mu     sync.Mutex
	q      *queue.Queue
	out    io.Writer
	notify chan struct{}
}

var _ api.DiagnosticSink = (*Sink)(nil)

// NewSink creates a sink writing drained lines to out.
func NewSink(out io.Writer) *Sink {
	s := &Sink{
		q:      queue.New(),
		out:    out,
		notify: make(chan struct{}, 1),
	}
	go s.drain()
	return s
}

// Default is the zero-configuration sink used by ring buffers that are
// not given an explicit DiagnosticSink.
var Default = NewSink(os.Stderr)

// Overflow implements api.DiagnosticSink.
func (s *Sink) Overflow(requested, capacity, inUse int) {
	s.push(fmt.Sprintf("ring: bulk enqueue overflow requested=%d capacity=%d inUse=%d", requested, capacity, inUse))
}

// Underflow implements api.DiagnosticSink.
func (s *Sink) Underflow(requested int) {
	s.push(fmt.Sprintf("ring: bulk dequeue underflow requested=%d", requested))
}

func (s *Sink) push(line string) {
	s.mu.Lock()
	s.q.Add(line)
	s.mu.Unlock()
	select {
	case s.notify <- struct{}{}:
	default:
	}
}

func (s *Sink) drain() {
	for range s.notify {
		for {
			s.mu.Lock()
			if s.q.Length() == 0 {
				s.mu.Unlock()
				break
			}
			line := s.q.Remove().(string)
			s.mu.Unlock()
			fmt.Fprintln(s.out, line)
		}
	}
}
