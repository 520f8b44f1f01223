package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/scrolly/pkg/domain"
)

// Report renders a trace summary as Markdown: totals, then one row per step.
func Report(t *domain.Trace) string {
	var sb strings.Builder
	name := t.Scenario
	if name == "" {
		name = "trace"
	}
	fmt.Fprintf(&sb, "# %s\n\n", name)
	fmt.Fprintf(&sb, "Trace `%s`, %d notifications.\n\n", t.ID, len(t.Events))

	if enters := t.Count(domain.EventContainerEnter); enters > 0 {
		fmt.Fprintf(&sb, "Section: %d enters, %d exits.\n\n", enters, t.Count(domain.EventContainerExit))
	}

	maxIndex := -1
	for _, e := range t.Events {
		maxIndex = max(maxIndex, e.Index)
	}
	if maxIndex < 0 {
		sb.WriteString("_No step was entered._\n")
		return sb.String()
	}

	sb.WriteString("| Step | Enters | Exits | Catch-ups | Max progress | Last direction |\n")
	sb.WriteString("|---:|---:|---:|---:|---:|:---|\n")
	for i := 0; i <= maxIndex; i++ {
		var enters, exits, catchUps int
		var progress float64
		var last domain.Direction
		for _, e := range t.ForStep(i) {
			switch e.Type {
			case domain.EventStepEnter:
				enters++
				if e.Synthetic {
					catchUps++
				}
				last = e.Direction
			case domain.EventStepExit:
				exits++
				last = e.Direction
			case domain.EventStepProgress:
				progress = max(progress, e.Progress)
			}
		}
		dir := string(last)
		if dir == "" {
			dir = "-"
		}
		fmt.Fprintf(&sb, "| %d | %d | %d | %d | %.3f | %s |\n", i, enters, exits, catchUps, progress, dir)
	}

	sb.WriteString("\n## Transitions\n\n")
	for _, e := range t.Transitions() {
		verb := "enter"
		if e.Type == domain.EventStepExit {
			verb = "exit"
		}
		fmt.Fprintf(&sb, "- `%s %d %s` at %.0fpx\n", verb, e.Index, e.Direction, e.ScrollY)
	}
	return sb.String()
}
