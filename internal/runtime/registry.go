package runtime

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/scrolly/pkg/domain"
	"github.com/aretw0/scrolly/pkg/ports"
)

// offsetAttribute is the data attribute holding a per-step offset override.
const offsetAttribute = "offset"

// Step is one observed element and its mutable lifecycle state.
type Step struct {
	Index     int
	Node      domain.Element
	Height    float64
	Offset    *domain.Offset
	Progress  float64
	State     domain.StepState
	Direction domain.Direction

	watchers   map[watcherKind]ports.Watcher
	generation uint64
}

func (s *Step) snapshot() domain.StepSnapshot {
	return domain.StepSnapshot{
		Index:     s.Index,
		Height:    s.Height,
		State:     s.State,
		Direction: s.Direction,
		Progress:  s.Progress,
		Offset:    s.Offset,
	}
}

// buildSteps creates one Step per element, indexed in selection order.
func buildSteps(elements []domain.Element, logger *slog.Logger) ([]*Step, error) {
	if len(elements) == 0 {
		return nil, domain.ErrNoSteps
	}

	steps := make([]*Step, 0, len(elements))
	for i, el := range elements {
		if el == nil {
			return nil, fmt.Errorf("%w: element %d is nil", domain.ErrNoSteps, i)
		}
		s := &Step{
			Index:    i,
			Node:     el,
			Height:   el.BoundingClientRect().Height,
			watchers: make(map[watcherKind]ports.Watcher),
		}

		if ds, ok := el.(ports.Dataset); ok {
			if raw, found := ds.Data(offsetAttribute); found {
				off, err := domain.ParseOffset(raw)
				if err != nil {
					logger.Warn("step offset override", "index", i, "err", err)
				}
				s.Offset = off
			}
		}

		if n, ok := el.(ports.Nested); ok && n.InScrollableAncestor() {
			logger.Warn("step geometry is unreliable", "index", i, "err", domain.ErrNestedScroll)
		}

		steps = append(steps, s)
	}
	return steps, nil
}
