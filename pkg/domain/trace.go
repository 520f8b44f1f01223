package domain

import "time"

// Trace is the ordered list of notifications recorded during one scroll session.
type Trace struct {
	ID        string    `json:"id"`
	Scenario  string    `json:"scenario"`
	CreatedAt time.Time `json:"created_at"`
	Events    []Event   `json:"events"`
}

// Count returns how many events of the given type the trace holds.
func (t *Trace) Count(typ EventType) int {
	n := 0
	for _, e := range t.Events {
		if e.Type == typ {
			n++
		}
	}
	return n
}

// ForStep returns the events emitted for one step, in order.
func (t *Trace) ForStep(index int) []Event {
	var out []Event
	for _, e := range t.Events {
		if e.Index == index {
			out = append(out, e)
		}
	}
	return out
}

// Transitions returns only step enter and exit events, dropping progress and container events.
func (t *Trace) Transitions() []Event {
	var out []Event
	for _, e := range t.Events {
		if e.Type == EventStepEnter || e.Type == EventStepExit {
			out = append(out, e)
		}
	}
	return out
}
