package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/scrolly/pkg/domain"
)

// GraphOverlay selects the highlighting applied on top of the flowchart.
type GraphOverlay struct {
	// Visited styles every step that was entered at least once.
	Visited bool
	// Current styles the step still active at the end of the trace.
	Current bool
}

type edge struct {
	from, to  int
	dir       domain.Direction
	synthetic bool
}

// GenerateMermaid produces a Mermaid flowchart of the path the reader took through the steps.
// Each step is a node; each consecutive pair of enters becomes an edge labelled with the
// direction and how often it was taken. Edges into a caught-up step are dotted.
func GenerateMermaid(steps int, t *domain.Trace, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for i := range steps {
		sb.WriteString(fmt.Sprintf("    %s[\"step %d\"]\n", nodeID(i), i))
	}

	var order []edge
	counts := make(map[edge]int)
	visited := make(map[int]bool)
	active := -1
	prev := -1
	for _, e := range t.Events {
		switch e.Type {
		case domain.EventStepEnter:
			visited[e.Index] = true
			active = e.Index
			if prev >= 0 && prev != e.Index {
				k := edge{from: prev, to: e.Index, dir: e.Direction, synthetic: e.Synthetic}
				if counts[k] == 0 {
					order = append(order, k)
				}
				counts[k]++
			}
			prev = e.Index
		case domain.EventStepExit:
			if active == e.Index {
				active = -1
			}
		}
	}

	for _, k := range order {
		label := string(k.dir)
		if n := counts[k]; n > 1 {
			label = fmt.Sprintf("%s x%d", label, n)
		}
		arrow := fmt.Sprintf("-- \"%s\" -->", label)
		if k.synthetic {
			arrow = fmt.Sprintf("-. \"%s\" .->", label)
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", nodeID(k.from), arrow, nodeID(k.to)))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high contrast on light and dark themes alike.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		if overlay.Visited {
			for i := range steps {
				if visited[i] {
					sb.WriteString(fmt.Sprintf("    class %s visited;\n", nodeID(i)))
				}
			}
		}
		if overlay.Current && active >= 0 {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", nodeID(active)))
		}
	}

	return sb.String()
}

func nodeID(i int) string {
	return fmt.Sprintf("step_%d", i)
}
