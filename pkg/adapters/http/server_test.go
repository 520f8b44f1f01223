package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/scrolly/pkg/adapters/memory"
	"github.com/aretw0/scrolly/pkg/domain"
	"github.com/aretw0/scrolly/pkg/observability"
	"github.com/aretw0/scrolly/pkg/scenario"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const threeSteps = `
name: three-steps
layout: {header: 800, footer: 1200}
steps:
  - height: 400
  - height: 400
  - height: 400
script:
  - smooth: {to: 2000, step: 10}
  - smooth: {to: 0, step: 10}
`

type fakeLibrary map[string]string

func (f fakeLibrary) List(ctx context.Context) ([]scenario.Entry, error) {
	var out []scenario.Entry
	for id := range f {
		out = append(out, scenario.Entry{ID: id, Name: id})
	}
	return out, nil
}

func (f fakeLibrary) Get(ctx context.Context, id string) (*scenario.Scenario, error) {
	src, ok := f[id]
	if !ok {
		return nil, fmt.Errorf("scenario %s not found", id)
	}
	return scenario.Parse([]byte(src))
}

func simulate(t *testing.T, h http.Handler, body string) *domain.Trace {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/simulate", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var trace domain.Trace
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &trace))
	return &trace
}

func TestSimulate_RecordsTrace(t *testing.T) {
	store := memory.NewStore()
	h := NewHandler(store)

	trace := simulate(t, h, threeSteps)
	assert.NotEmpty(t, trace.ID)
	assert.Equal(t, "three-steps", trace.Scenario)
	assert.Equal(t, 6, trace.Count(domain.EventStepEnter))
	assert.Equal(t, 6, trace.Count(domain.EventStepExit))

	stored, err := store.Load(context.Background(), trace.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Events, len(trace.Events))
}

func TestSimulate_InvalidScenario(t *testing.T) {
	h := NewHandler(memory.NewStore())

	for name, body := range map[string]string{
		"malformed": "steps: [",
		"no steps":  "name: empty\nsteps: []\n",
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/simulate", strings.NewReader(body))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestTraces_CRUD(t *testing.T) {
	h := NewHandler(memory.NewStore())
	trace := simulate(t, h, threeSteps)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/traces", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var list []TraceSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, trace.ID, list[0].ID)
	assert.Equal(t, 6, list[0].Enters)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/traces/"+trace.ID, nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/traces/"+trace.ID, nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/traces/"+trace.ID, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReplayTrace(t *testing.T) {
	h := NewHandler(memory.NewStore())
	trace := simulate(t, h, threeSteps)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/traces/"+trace.ID+"/events", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))

	body := w.Body.String()
	assert.Equal(t, 6, strings.Count(body, "event: step_enter\n"))
	assert.True(t, strings.HasSuffix(body, fmt.Sprintf("event: done\ndata: %d\n\n", len(trace.Events))))
}

func TestSubscribeEvents(t *testing.T) {
	srv := NewServer(memory.NewStore())
	h := srv.Routes()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wSub := httptest.NewRecorder()
	reqSub := httptest.NewRequest(http.MethodGet, "/events", nil).WithContext(ctx)
	done := make(chan struct{})
	go func() {
		h.ServeHTTP(wSub, reqSub)
		close(done)
	}()

	require.Eventually(t, func() bool { return srv.Streams.Subscribers() == 1 }, time.Second, 10*time.Millisecond)

	trace := simulate(t, h, threeSteps)

	cancel()
	<-done

	output := wSub.Body.String()
	assert.Contains(t, output, "event: ping")
	assert.Contains(t, output, "event: trace")
	assert.Contains(t, output, trace.ID)
}

func TestScenarios(t *testing.T) {
	h := NewHandler(memory.NewStore(), WithLibrary(fakeLibrary{"three-steps": threeSteps}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/scenarios", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"three-steps"`)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/scenarios/three-steps/run", nil))
	assert.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/scenarios/missing/run", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMetricsAndInfo(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	h := NewHandler(memory.NewStore(),
		WithGatherer(reg),
		WithRunner(scenario.NewRunner(scenario.WithLifecycleHooks(m.Hooks()))),
	)
	simulate(t, h, threeSteps)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `scrolly_step_enter_total{direction="down"} 3`)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/info", nil))
	assert.Contains(t, w.Body.String(), `"app":"scrolly-http"`)
}
