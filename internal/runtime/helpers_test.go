package runtime

import (
	"fmt"
	"testing"

	"github.com/aretw0/scrolly/pkg/adapters/sim"
	"github.com/aretw0/scrolly/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newStory lays out an 800px header, n steps of 400px and a 1200px footer
// in an 800px viewport. Step i starts at 800+400i.
func newStory(n int, opts ...sim.Option) (*sim.Page, []*sim.Block) {
	page := sim.NewPage(800, opts...)
	page.Add("header", 0, 800)
	blocks := make([]*sim.Block, n)
	for i := range blocks {
		blocks[i] = page.Add("step", 0, 400)
	}
	page.Add("footer", 0, 1200)
	return page, blocks
}

func elements(blocks []*sim.Block) []domain.Element {
	out := make([]domain.Element, len(blocks))
	for i, b := range blocks {
		out[i] = b
	}
	return out
}

func settingsFor(blocks []*sim.Block) Settings {
	return Settings{
		Steps:     elements(blocks),
		Offset:    domain.DefaultOffset,
		Threshold: 4,
	}
}

type mark struct {
	kind     string
	index    int
	dir      domain.Direction
	progress float64
}

func (m mark) String() string {
	if m.kind == "progress" {
		return fmt.Sprintf("progress %d %.3f", m.index, m.progress)
	}
	return fmt.Sprintf("%s %d %s", m.kind, m.index, m.dir)
}

type recorder struct {
	marks []mark
}

func record(t *testing.T, e *Engine) *recorder {
	t.Helper()
	r := &recorder{}
	require.NoError(t, e.OnStepEnter(func(ev domain.StepEvent) {
		r.marks = append(r.marks, mark{kind: "enter", index: ev.Index, dir: ev.Direction})
	}))
	require.NoError(t, e.OnStepExit(func(ev domain.StepEvent) {
		r.marks = append(r.marks, mark{kind: "exit", index: ev.Index, dir: ev.Direction})
	}))
	require.NoError(t, e.OnStepProgress(func(ev domain.ProgressEvent) {
		r.marks = append(r.marks, mark{kind: "progress", index: ev.Index, progress: ev.Progress})
	}))
	return r
}

// transitions lists enter and exit marks only.
func (r *recorder) transitions() []string {
	var out []string
	for _, m := range r.marks {
		if m.kind != "progress" {
			out = append(out, m.String())
		}
	}
	return out
}

func (r *recorder) progress(index int) []float64 {
	var out []float64
	for _, m := range r.marks {
		if m.kind == "progress" && m.index == index {
			out = append(out, m.progress)
		}
	}
	return out
}

func (r *recorder) count(kind string, index int) int {
	n := 0
	for _, m := range r.marks {
		if m.kind == kind && m.index == index {
			n++
		}
	}
	return n
}

func (r *recorder) reset() {
	r.marks = nil
}

// assertWellFormed checks that every step alternates enter and exit starting with enter,
// and that progress stays in [0,1] and only arrives between an enter and its exit.
func assertWellFormed(t *testing.T, r *recorder) {
	t.Helper()
	open := map[int]bool{}
	for i, m := range r.marks {
		switch m.kind {
		case "enter":
			assert.False(t, open[m.index], "mark %d: %s while entered", i, m)
			open[m.index] = true
		case "exit":
			assert.True(t, open[m.index], "mark %d: %s without enter", i, m)
			open[m.index] = false
		case "progress":
			assert.True(t, open[m.index], "mark %d: %s outside enter", i, m)
			assert.GreaterOrEqual(t, m.progress, 0.0)
			assert.LessOrEqual(t, m.progress, 1.0)
		}
	}
}
