package observability

import (
	"errors"
	"fmt"

	"github.com/aretw0/scrolly/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts scroller notifications.
type Metrics struct {
	enters     *prometheus.CounterVec
	exits      *prometheus.CounterVec
	catchUps   *prometheus.CounterVec
	suppressed prometheus.Counter
	progress   prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
// Collectors already registered by a previous call are reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		enters: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scrolly_step_enter_total",
				Help: "Total number of stepEnter notifications",
			},
			[]string{"direction"},
		),
		exits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scrolly_step_exit_total",
				Help: "Total number of stepExit notifications",
			},
			[]string{"direction"},
		),
		catchUps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scrolly_step_catchup_total",
				Help: "Enter notifications synthesized for skipped steps",
			},
			[]string{"direction"},
		),
		suppressed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scrolly_step_enter_suppressed_total",
			Help: "Enters that skipped the user callback because of once mode",
		}),
		progress: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "scrolly_step_progress",
			Help:    "Distribution of emitted progress values",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		}),
	}

	if reg == nil {
		return m, nil
	}

	var err error
	if m.enters, err = register(reg, m.enters); err != nil {
		return nil, err
	}
	if m.exits, err = register(reg, m.exits); err != nil {
		return nil, err
	}
	if m.catchUps, err = register(reg, m.catchUps); err != nil {
		return nil, err
	}
	if m.suppressed, err = register(reg, m.suppressed); err != nil {
		return nil, err
	}
	if m.progress, err = register(reg, m.progress); err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing, nil
		}
	}
	return c, fmt.Errorf("register metrics: %w", err)
}

// Hooks returns lifecycle hooks feeding the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepEnter: func(e *domain.Event) {
			dir := string(e.Direction)
			m.enters.WithLabelValues(dir).Inc()
			if e.Synthetic {
				m.catchUps.WithLabelValues(dir).Inc()
			}
			if e.Suppressed {
				m.suppressed.Inc()
			}
		},
		OnStepExit: func(e *domain.Event) {
			m.exits.WithLabelValues(string(e.Direction)).Inc()
		},
		OnStepProgress: func(e *domain.Event) {
			m.progress.Observe(e.Progress)
		},
	}
}
