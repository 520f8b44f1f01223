package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/scrolly/pkg/domain"
)

// Store implements ports.TraceStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Trace
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Trace),
	}
}

// Save persists a copy of the trace.
func (s *Store) Save(ctx context.Context, trace *domain.Trace) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[trace.ID] = clone(trace)
	return nil
}

// Load returns a copy so callers cannot mutate stored traces.
func (s *Store) Load(ctx context.Context, id string) (*domain.Trace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trace, ok := s.data[id]
	if !ok {
		return nil, domain.ErrTraceNotFound
	}
	return clone(trace), nil
}

// Delete removes the trace.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns trace IDs, oldest first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	traces := make([]*domain.Trace, 0, len(s.data))
	for _, t := range s.data {
		traces = append(traces, t)
	}
	sort.Slice(traces, func(i, j int) bool {
		if traces[i].CreatedAt.Equal(traces[j].CreatedAt) {
			return traces[i].ID < traces[j].ID
		}
		return traces[i].CreatedAt.Before(traces[j].CreatedAt)
	})

	ids := make([]string, len(traces))
	for i, t := range traces {
		ids[i] = t.ID
	}
	return ids, nil
}

func clone(t *domain.Trace) *domain.Trace {
	c := *t
	c.Events = append([]domain.Event(nil), t.Events...)
	return &c
}
