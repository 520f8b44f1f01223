package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/scrolly/pkg/adapters/memory"
	"github.com/aretw0/scrolly/pkg/domain"
	"github.com/aretw0/scrolly/pkg/scenario"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoSteps = `
name: two-steps
layout: {header: 800, footer: 1200}
steps:
  - height: 400
  - height: 400
script:
  - scroll_to: 1000
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
	return scenario.Parse([]byte(f[id]))
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestSimulateScroll(t *testing.T) {
	store := memory.NewStore()
	s := NewServer(nil, store, nil)

	resp, err := s.handleSimulate(context.Background(), mcp.CallToolRequest{}, map[string]any{"scenario": twoSteps})
	require.NoError(t, err)

	assert.Equal(t, "two-steps", resp.Scenario)
	// scroll_to 1000 puts the line at 1400: step 0 is caught up, step 1 is active.
	assert.Len(t, resp.Transitions, 3)
	assert.Contains(t, resp.Transitions, "exit 0 down")
	assert.Equal(t, "enter 1 down", resp.Transitions[2])
	assert.Equal(t, 2, resp.Enters)

	_, err = store.Load(context.Background(), resp.TraceID)
	assert.NoError(t, err)
}

func TestSimulateScroll_Library(t *testing.T) {
	s := NewServer(nil, memory.NewStore(), fakeLibrary{"two-steps": twoSteps})

	resp, err := s.handleSimulate(context.Background(), mcp.CallToolRequest{}, map[string]any{"name": "two-steps"})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Enters)

	_, err = s.handleSimulate(context.Background(), mcp.CallToolRequest{}, map[string]any{})
	assert.Error(t, err)
}

func TestSimulateScroll_NoLibrary(t *testing.T) {
	s := NewServer(nil, memory.NewStore(), nil)
	_, err := s.handleSimulate(context.Background(), mcp.CallToolRequest{}, map[string]any{"name": "two-steps"})
	assert.ErrorContains(t, err, "no scenario library")
}

func TestTraceTools(t *testing.T) {
	s := NewServer(nil, memory.NewStore(), nil)
	resp, err := s.handleSimulate(context.Background(), mcp.CallToolRequest{}, map[string]any{"scenario": twoSteps})
	require.NoError(t, err)

	res, err := s.handleListTraces(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	assert.JSONEq(t, `["`+resp.TraceID+`"]`, textOf(t, res))

	req := mcp.CallToolRequest{}
	req.Params.Name = "get_trace"
	req.Params.Arguments = map[string]any{"id": resp.TraceID}
	res, err = s.handleGetTrace(context.Background(), req)
	require.NoError(t, err)

	var trace domain.Trace
	require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &trace))
	assert.Equal(t, resp.TraceID, trace.ID)
	assert.Equal(t, 2, trace.Count(domain.EventStepEnter))

	req.Params.Arguments = map[string]any{"id": "missing"}
	res, err = s.handleGetTrace(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestScenariosResource(t *testing.T) {
	s := NewServer(nil, memory.NewStore(), fakeLibrary{"two-steps": twoSteps})

	contents, err := s.readScenarios(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, ScenariosURI, text.URI)
	assert.Contains(t, text.Text, `"id":"two-steps"`)
}
