package graph_test

import (
	"testing"

	"github.com/aretw0/scrolly/internal/presentation/graph"
	"github.com/aretw0/scrolly/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func enter(i int, dir domain.Direction, synthetic bool) domain.Event {
	return domain.Event{Type: domain.EventStepEnter, Index: i, Direction: dir, Synthetic: synthetic}
}

func exit(i int, dir domain.Direction) domain.Event {
	return domain.Event{Type: domain.EventStepExit, Index: i, Direction: dir}
}

func TestGenerateMermaid(t *testing.T) {
	down, up := domain.DirectionDown, domain.DirectionUp
	trace := &domain.Trace{Events: []domain.Event{
		enter(0, down, false), exit(0, down),
		enter(1, down, true), exit(1, down),
		enter(2, down, false), exit(2, up),
		enter(1, up, false), exit(1, up),
		enter(2, down, false),
	}}

	tests := []struct {
		name     string
		overlay  *graph.GraphOverlay
		contains []string
		absent   []string
	}{
		{
			name: "Nodes and Edges",
			contains: []string{
				"graph TD\n",
				`step_3["step 3"]`,
				`step_0 -. "down" .-> step_1`,
				`step_1 -- "down x2" --> step_2`,
				`step_2 -- "up" --> step_1`,
			},
			absent: []string{"classDef"},
		},
		{
			name:    "Overlay",
			overlay: &graph.GraphOverlay{Visited: true, Current: true},
			contains: []string{
				"class step_0 visited;",
				"class step_2 visited;",
				"class step_2 current;",
			},
			absent: []string{"class step_3 visited;"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := graph.GenerateMermaid(4, trace, tt.overlay)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			for _, bad := range tt.absent {
				assert.NotContains(t, out, bad)
			}
		})
	}
}

func TestGenerateMermaid_RepeatedEdges(t *testing.T) {
	down, up := domain.DirectionDown, domain.DirectionUp
	trace := &domain.Trace{Events: []domain.Event{
		enter(0, down, false), enter(1, down, false),
		enter(0, up, false), enter(1, down, false),
	}}
	out := graph.GenerateMermaid(2, trace, nil)
	assert.Contains(t, out, `step_0 -- "down x2" --> step_1`)
}
