package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/scrolly/pkg/domain"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTrace() *domain.Trace {
	return &domain.Trace{
		ID:       "t-1",
		Scenario: "demo",
		Events: []domain.Event{
			{Type: domain.EventStepEnter, Index: 0, Direction: domain.DirectionDown, ScrollY: 400, Synthetic: true},
			{Type: domain.EventStepExit, Index: 0, Direction: domain.DirectionDown, ScrollY: 400, Progress: 1},
			{Type: domain.EventStepEnter, Index: 1, Direction: domain.DirectionDown, ScrollY: 400},
			{Type: domain.EventStepProgress, Index: 1, Direction: domain.DirectionDown, ScrollY: 500, Progress: 0.25},
		},
	}
}

func TestEventLog_Format(t *testing.T) {
	var buf bytes.Buffer
	log := NewEventLog(&buf, termenv.Ascii)
	hooks := log.Hooks()

	tr := sampleTrace()
	hooks.OnStepEnter(&tr.Events[0])
	hooks.OnStepProgress(&tr.Events[3])

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1, "progress is hidden by default")
	assert.Contains(t, lines[0], "enter")
	assert.Contains(t, lines[0], "step 0")
	assert.Contains(t, lines[0], "(catch-up)")

	assert.Contains(t, log.Format(&tr.Events[3]), "[#####...............] 0.250")
}

func TestEventLog_Container(t *testing.T) {
	var buf bytes.Buffer
	log := NewEventLog(&buf, termenv.Ascii)
	log.Hooks().OnContainerExit(&domain.Event{Type: domain.EventContainerExit, Index: -1, Direction: domain.DirectionDown, ScrollY: 1710})

	line := strings.TrimSpace(buf.String())
	assert.Contains(t, line, "exit")
	assert.Contains(t, line, "section")
	assert.NotContains(t, line, "step")
}

func TestReport_Section(t *testing.T) {
	tr := sampleTrace()
	tr.Events = append(tr.Events,
		domain.Event{Type: domain.EventContainerEnter, Index: -1, Direction: domain.DirectionDown},
	)
	md := Report(tr)
	assert.Contains(t, md, "Section: 1 enters, 0 exits.")
	assert.NotContains(t, md, "enter -1")
}

func TestReport(t *testing.T) {
	md := Report(sampleTrace())
	assert.Contains(t, md, "# demo")
	assert.Contains(t, md, "| 0 | 1 | 1 | 1 | 0.000 | down |")
	assert.Contains(t, md, "| 1 | 1 | 0 | 0 | 0.250 | down |")
	assert.Contains(t, md, "- `enter 1 down` at 400px")

	empty := Report(&domain.Trace{ID: "t-2"})
	assert.Contains(t, empty, "No step was entered")
}

func TestRenderer(t *testing.T) {
	render, err := NewRenderer("notty", 80)
	require.NoError(t, err)
	out, err := render(Report(sampleTrace()))
	require.NoError(t, err)
	assert.Contains(t, out, "demo")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, termenv.Ascii)
	assert.Contains(t, buf.String(), `|___/\___|_|`)
}
