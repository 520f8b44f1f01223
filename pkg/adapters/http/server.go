package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"

	"github.com/aretw0/scrolly"
	"github.com/aretw0/scrolly/pkg/domain"
	"github.com/aretw0/scrolly/pkg/ports"
	"github.com/aretw0/scrolly/pkg/scenario"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxScenarioBytes bounds the body of POST /simulate.
const maxScenarioBytes = 1 << 20

// Server exposes scenario simulation and recorded traces over HTTP.
type Server struct {
	Runner   *scenario.Runner
	Store    ports.TraceStore
	Library  scenario.Library
	Streams  *StreamManager
	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// Option defines a functional option for configuring the Server.
type Option func(*Server)

// WithRunner sets the runner used for simulations. Its hooks usually carry the metrics.
func WithRunner(r *scenario.Runner) Option {
	return func(s *Server) {
		if r != nil {
			s.Runner = r
		}
	}
}

// WithLibrary enables the /scenarios routes.
func WithLibrary(lib scenario.Library) Option {
	return func(s *Server) {
		s.Library = lib
	}
}

// WithGatherer enables GET /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a server persisting traces to store.
func NewServer(store ports.TraceStore, opts ...Option) *Server {
	s := &Server{
		Runner:  scenario.NewRunner(),
		Store:   store,
		Streams: NewStreamManager(),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams.logger = s.logger
	return s
}

// NewHandler creates the HTTP handler for a trace store.
func NewHandler(store ports.TraceStore, opts ...Option) http.Handler {
	return NewServer(store, opts...).Routes()
}

// Routes builds the chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/events", s.SubscribeEvents)
	r.Post("/simulate", s.Simulate)

	r.Route("/traces", func(r chi.Router) {
		r.Get("/", s.ListTraces)
		r.Get("/{id}", s.GetTrace)
		r.Delete("/{id}", s.DeleteTrace)
		r.Get("/{id}/events", s.ReplayTrace)
	})

	if s.Library != nil {
		r.Get("/scenarios", s.ListScenarios)
		r.Post("/scenarios/{id}/run", s.RunScenario)
	}
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// TraceSummary is the listing form of a trace.
type TraceSummary struct {
	ID       string `json:"id"`
	Scenario string `json:"scenario"`
	Enters   int    `json:"enters"`
	Exits    int    `json:"exits"`
	Progress int    `json:"progress"`
}

func summarize(t *domain.Trace) TraceSummary {
	return TraceSummary{
		ID:       t.ID,
		Scenario: t.Scenario,
		Enters:   t.Count(domain.EventStepEnter),
		Exits:    t.Count(domain.EventStepExit),
		Progress: t.Count(domain.EventStepProgress),
	}
}

// Simulate handles POST /simulate. The body is a YAML or JSON scenario.
func (s *Server) Simulate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxScenarioBytes))
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	sc, err := scenario.Parse(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		s.logger.Warn("Simulate: invalid scenario", "error", err)
		return
	}
	s.run(w, r, sc)
}

// RunScenario handles POST /scenarios/{id}/run.
func (s *Server) RunScenario(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sc, err := s.Library.Get(r.Context(), id)
	if err != nil {
		status := http.StatusNotFound
		if errors.Is(err, domain.ErrInvalidScenario) {
			status = http.StatusUnprocessableEntity
		}
		http.Error(w, err.Error(), status)
		return
	}
	s.run(w, r, sc)
}

func (s *Server) run(w http.ResponseWriter, r *http.Request, sc *scenario.Scenario) {
	trace, err := s.Runner.Run(r.Context(), sc)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrInvalidScenario) || errors.Is(err, domain.ErrNoSteps) {
			status = http.StatusUnprocessableEntity
		}
		http.Error(w, fmt.Sprintf("Simulation error: %v", err), status)
		s.logger.Error("Simulation failed", "scenario", sc.Name, "error", err)
		return
	}

	if err := s.Store.Save(r.Context(), trace); err != nil {
		http.Error(w, fmt.Sprintf("Store error: %v", err), http.StatusInternalServerError)
		s.logger.Error("Trace save failed", "trace_id", trace.ID, "error", err)
		return
	}
	s.logger.Info("Simulation recorded", "scenario", sc.Name, "trace_id", trace.ID, "events", len(trace.Events))

	if msg, err := json.Marshal(summarize(trace)); err == nil {
		s.Streams.Broadcast(string(msg))
	}

	writeJSON(w, http.StatusCreated, trace)
}

// ListTraces handles GET /traces.
func (s *Server) ListTraces(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Store.List(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Store error: %v", err), http.StatusInternalServerError)
		return
	}
	sort.Strings(ids)

	out := make([]TraceSummary, 0, len(ids))
	for _, id := range ids {
		t, err := s.Store.Load(r.Context(), id)
		if errors.Is(err, domain.ErrTraceNotFound) {
			continue
		}
		if err != nil {
			http.Error(w, fmt.Sprintf("Store error: %v", err), http.StatusInternalServerError)
			return
		}
		out = append(out, summarize(t))
	}
	writeJSON(w, http.StatusOK, out)
}

// GetTrace handles GET /traces/{id}.
func (s *Server) GetTrace(w http.ResponseWriter, r *http.Request) {
	t, ok := s.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// DeleteTrace handles DELETE /traces/{id}.
func (s *Server) DeleteTrace(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		http.Error(w, fmt.Sprintf("Store error: %v", err), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) load(w http.ResponseWriter, r *http.Request) (*domain.Trace, bool) {
	id := chi.URLParam(r, "id")
	t, err := s.Store.Load(r.Context(), id)
	if errors.Is(err, domain.ErrTraceNotFound) {
		http.Error(w, fmt.Sprintf("trace %s not found", id), http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("Store error: %v", err), http.StatusInternalServerError)
		return nil, false
	}
	return t, true
}

// ListScenarios handles GET /scenarios.
func (s *Server) ListScenarios(w http.ResponseWriter, r *http.Request) {
	entries, err := s.Library.List(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Library error: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "scrolly-http",
		"version": scrolly.Version,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}
