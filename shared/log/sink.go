package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
)

// Sink writes trace lines to an io.Writer from a single worker goroutine,
// preserving submission order.
//
// Emit and Close are safe for concurrent use. Lines from concurrent callers
// are written in the order their Emit calls are serialized; lines from one
// goroutine keep their relative order.
type Sink struct {
	ID string

	lineCh  chan string
	done    chan struct{}
	closeMu sync.Mutex
	closed  bool
	err     error
}

// NewSink starts the worker. A non-positive bufferSize is treated as 1.
// Cancelling ctx stops the worker; lines still queued at that point are dropped.
func NewSink(ctx context.Context, bufferSize int, w io.Writer) *Sink {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	s := &Sink{
		ID:     uuid.New().String(),
		lineCh: make(chan string, bufferSize),
		done:   make(chan struct{}),
	}

	go func() {
		defer close(s.done)
		for {
			select {
			case line, ok := <-s.lineCh:
				if !ok {
					return
				}
				s.write(w, line)
			case <-ctx.Done():
				return
			}
		}
	}()

	return s
}

// Emit queues one line. A newline is appended by the worker.
// Lines emitted after Close, or after the worker stopped, are dropped.
func (s *Sink) Emit(line string) {
	s.closeMu.Lock()
	defer s.closeMu.Unlock()
	if s.closed {
		return
	}

	select {
	case <-s.done:
	case s.lineCh <- line:
	}
}

// Emitf formats and queues one line.
func (s *Sink) Emitf(format string, args ...any) {
	s.Emit(fmt.Sprintf(format, args...))
}

// Close flushes queued lines, stops the worker and returns the first write error.
// Calling Close more than once is safe.
func (s *Sink) Close() error {
	s.closeMu.Lock()
	if !s.closed {
		s.closed = true
		close(s.lineCh)
	}
	s.closeMu.Unlock()

	<-s.done
	return s.err
}

func (s *Sink) write(w io.Writer, line string) {
	if s.err != nil {
		return
	}
	if _, err := io.WriteString(w, line+"\n"); err != nil {
		s.err = fmt.Errorf("sink %s: %w", s.ID, err)
	}
}
