// Package trace provides the emitter sink the coordinator reports step
// lifecycle transitions to. Emitters are pure conduits: any observer (an
// in-memory recorder, a streaming transport) can be plugged in without
// changing coordinator logic.
package trace

import (
	"sync"

	"github.com/carmesh/carmesh/core"
)

// Emitter receives one event per step-state transition. Implementations
// must be safe for concurrent use; the coordinator may settle steps from
// multiple goroutines' results in quick succession.
type Emitter interface {
	Emit(ev core.TraceEvent)
}

// EmitterFunc adapts a function to the Emitter interface.
type EmitterFunc func(ev core.TraceEvent)

// Emit implements Emitter.
func (f EmitterFunc) Emit(ev core.TraceEvent) { f(ev) }

// NoOp discards all events.
type NoOp struct{}

// Emit implements Emitter.
func (NoOp) Emit(core.TraceEvent) {}

// Recorder accumulates events in order. The coordinator creates one per
// request; its sequence becomes the definitive trace in the envelope.
type Recorder struct {
	mu     sync.Mutex
	events []core.TraceEvent
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder { return &Recorder{} }

// Emit implements Emitter.
func (r *Recorder) Emit(ev core.TraceEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

// Events returns a copy of the recorded sequence.
func (r *Recorder) Events() []core.TraceEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]core.TraceEvent, len(r.events))
	copy(out, r.events)
	return out
}

// Multi fans each event out to every child emitter in order.
type Multi struct {
	emitters []Emitter
}

// NewMulti combines emitters into one sink. Nil children are skipped.
func NewMulti(emitters ...Emitter) *Multi {
	m := &Multi{}
	for _, e := range emitters {
		if e != nil {
			m.emitters = append(m.emitters, e)
		}
	}
	return m
}

// Emit implements Emitter.
func (m *Multi) Emit(ev core.TraceEvent) {
	for _, e := range m.emitters {
		e.Emit(ev)
	}
}
