package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/scrolly/pkg/domain"
)

// LoggingHooks logs every notification. Enter and exit go to INFO, progress to DEBUG.
// Container notifications go to INFO.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	log := func(level slog.Level) func(*domain.Event) {
		return func(e *domain.Event) {
			attrs := []any{
				"index", e.Index,
				"direction", e.Direction,
				"scroll_y", e.ScrollY,
			}
			if e.Type == domain.EventStepProgress {
				attrs = append(attrs, "progress", e.Progress)
			}
			if e.Synthetic {
				attrs = append(attrs, "synthetic", true)
			}
			if e.Suppressed {
				attrs = append(attrs, "suppressed", true)
			}
			logger.Log(context.Background(), level, string(e.Type), attrs...)
		}
	}
	return domain.LifecycleHooks{
		OnStepEnter:    log(slog.LevelInfo),
		OnStepExit:     log(slog.LevelInfo),
		OnStepProgress: log(slog.LevelDebug),

		OnContainerEnter: log(slog.LevelInfo),
		OnContainerExit:  log(slog.LevelInfo),
	}
}
