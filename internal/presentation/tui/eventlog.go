package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/scrolly/pkg/domain"
	"github.com/muesli/termenv"
)

const barWidth = 20

// EventLog prints notifications as they are emitted, one colored line each.
type EventLog struct {
	w       io.Writer
	profile termenv.Profile
	// Progress includes stepProgress lines.
	Progress bool
}

// NewEventLog creates a log writing to w with the given color profile.
// termenv.Ascii disables colors.
func NewEventLog(w io.Writer, profile termenv.Profile) *EventLog {
	return &EventLog{w: w, profile: profile}
}

// Hooks returns lifecycle hooks that print each notification.
func (l *EventLog) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepEnter: func(e *domain.Event) { l.Print(e) },
		OnStepExit:  func(e *domain.Event) { l.Print(e) },
		OnStepProgress: func(e *domain.Event) {
			if l.Progress {
				l.Print(e)
			}
		},
		OnContainerEnter: func(e *domain.Event) { l.Print(e) },
		OnContainerExit:  func(e *domain.Event) { l.Print(e) },
	}
}

// Print writes one event.
func (l *EventLog) Print(e *domain.Event) {
	fmt.Fprintln(l.w, l.Format(e))
}

// Format renders one event without the trailing newline.
func (l *EventLog) Format(e *domain.Event) string {
	switch e.Type {
	case domain.EventContainerEnter, domain.EventContainerExit:
		verb := "enter"
		if e.Type == domain.EventContainerExit {
			verb = "exit"
		}
		label := l.profile.String(fmt.Sprintf("%-8s", verb)).Foreground(l.profile.Color("#fbbf24"))
		return fmt.Sprintf("%7.0f  %s  section  %-4s", e.ScrollY, label, arrow(e.Direction))
	}

	var label termenv.Style
	switch e.Type {
	case domain.EventStepEnter:
		label = l.profile.String("enter   ").Foreground(l.profile.Color("#34d399")).Bold()
	case domain.EventStepExit:
		label = l.profile.String("exit    ").Foreground(l.profile.Color("#f87171"))
	default:
		label = l.profile.String("progress").Foreground(l.profile.Color("#60a5fa")).Faint()
	}

	line := fmt.Sprintf("%7.0f  %s  step %-3d %-4s", e.ScrollY, label, e.Index, arrow(e.Direction))
	if e.Type == domain.EventStepProgress {
		return line + "  " + bar(e.Progress) + fmt.Sprintf(" %.3f", e.Progress)
	}

	var flags []string
	if e.Synthetic {
		flags = append(flags, "catch-up")
	}
	if e.Suppressed {
		flags = append(flags, "once")
	}
	if len(flags) > 0 {
		line += "  " + l.profile.String("("+strings.Join(flags, ", ")+")").Faint().String()
	}
	return line
}

func arrow(d domain.Direction) string {
	switch d {
	case domain.DirectionDown:
		return "↓"
	case domain.DirectionUp:
		return "↑"
	}
	return "·"
}

func bar(p float64) string {
	filled := int(p*barWidth + 0.5)
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled) + "]"
}
