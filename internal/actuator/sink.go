package actuator

import (
	"errors"
	"fmt"
	"sync"

	"github.com/banshee-data/rover.sim/internal/navigation"
	"github.com/banshee-data/rover.sim/internal/sim"
)

// ErrSinkClosed is returned by Observe after Close.
var ErrSinkClosed = errors.New("actuator: sink closed")

// Sink writes one command line per tick to a Port:
//
//	CMD <tick> <v> <w>\n
//
// with v in units/s and w in rad/s, both to three decimals. Close sends a
// final zero command so the base is left stopped.
type Sink struct {
	mu     sync.Mutex
	port   Port
	closed bool
	last   navigation.Command
	lines  int
}

// NewSink returns a Sink writing to port.
func NewSink(port Port) *Sink {
	return &Sink{port: port}
}

// FormatCommand renders the wire line for one command.
func FormatCommand(tick int, c navigation.Command) string {
	return fmt.Sprintf("CMD %d %.3f %.3f\n", tick, c.V, c.W)
}

// Observe implements sim.Observer.
func (s *Sink) Observe(snap sim.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSinkClosed
	}
	if _, err := s.port.Write([]byte(FormatCommand(snap.Tick, snap.Command))); err != nil {
		return fmt.Errorf("write command for tick %d: %w", snap.Tick, err)
	}
	s.last = snap.Command
	s.lines++
	return nil
}

// Lines returns the number of command lines written so far.
func (s *Sink) Lines() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lines
}

// Last returns the most recent command written.
func (s *Sink) Last() navigation.Command {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Close stops the base and closes the port. Calling Close twice is a no-op.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	_, werr := s.port.Write([]byte(FormatCommand(-1, navigation.Command{})))
	cerr := s.port.Close()
	if werr != nil {
		return fmt.Errorf("send stop command: %w", werr)
	}
	return cerr
}
