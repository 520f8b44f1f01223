package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/scrolly"
	"github.com/aretw0/scrolly/pkg/domain"
	"github.com/aretw0/scrolly/pkg/ports"
	"github.com/aretw0/scrolly/pkg/scenario"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ScenariosURI is the resource listing the scenario library.
const ScenariosURI = "scrolly://scenarios"

// SimulateResponse is the structured result of simulate_scroll.
type SimulateResponse struct {
	TraceID     string   `json:"trace_id" jsonschema_description:"ID of the stored trace"`
	Scenario    string   `json:"scenario" jsonschema_description:"Name of the simulated scenario"`
	Enters      int      `json:"enters" jsonschema_description:"Number of stepEnter notifications"`
	Exits       int      `json:"exits" jsonschema_description:"Number of stepExit notifications"`
	Progress    int      `json:"progress" jsonschema_description:"Number of stepProgress notifications"`
	Transitions []string `json:"transitions" jsonschema_description:"Enter and exit notifications in order, as 'enter <index> <direction>'"`
}

// Server exposes scroll simulation as an MCP server.
type Server struct {
	runner    *scenario.Runner
	store     ports.TraceStore
	library   scenario.Library
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance. library may be nil.
func NewServer(runner *scenario.Runner, store ports.TraceStore, library scenario.Library) *Server {
	if runner == nil {
		runner = scenario.NewRunner()
	}
	s := &Server{
		runner:    runner,
		store:     store,
		library:   library,
		mcpServer: server.NewMCPServer("scrolly-mcp", scrolly.Version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	simulateTool := mcp.NewTool("simulate_scroll",
		mcp.WithDescription("Replay a scroll scenario against a simulated page and record the step notifications."),
		mcp.WithString("scenario", mcp.Description("Scenario document, YAML or JSON (optional if name is given)")),
		mcp.WithString("name", mcp.Description("Name of a library scenario (optional if scenario is given)")),
		mcp.WithOutputSchema[SimulateResponse](),
	)
	s.mcpServer.AddTool(simulateTool, mcp.NewStructuredToolHandler(s.handleSimulate))

	s.mcpServer.AddTool(mcp.NewTool("list_traces",
		mcp.WithDescription("List the IDs of recorded traces."),
	), s.handleListTraces)

	s.mcpServer.AddTool(mcp.NewTool("get_trace",
		mcp.WithDescription("Get every notification of a recorded trace."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Trace ID")),
	), s.handleGetTrace)
}

func (s *Server) handleSimulate(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (SimulateResponse, error) {
	sc, err := s.resolve(ctx, args)
	if err != nil {
		return SimulateResponse{}, err
	}

	trace, err := s.runner.Run(ctx, sc)
	if err != nil {
		return SimulateResponse{}, fmt.Errorf("simulation failed: %w", err)
	}
	if err := s.store.Save(ctx, trace); err != nil {
		return SimulateResponse{}, fmt.Errorf("store failed: %w", err)
	}

	resp := SimulateResponse{
		TraceID:     trace.ID,
		Scenario:    trace.Scenario,
		Enters:      trace.Count(domain.EventStepEnter),
		Exits:       trace.Count(domain.EventStepExit),
		Progress:    trace.Count(domain.EventStepProgress),
		Transitions: []string{},
	}
	for _, e := range trace.Transitions() {
		verb := "enter"
		if e.Type == domain.EventStepExit {
			verb = "exit"
		}
		resp.Transitions = append(resp.Transitions, fmt.Sprintf("%s %d %s", verb, e.Index, e.Direction))
	}
	return resp, nil
}

func (s *Server) resolve(ctx context.Context, args map[string]any) (*scenario.Scenario, error) {
	if src, _ := args["scenario"].(string); src != "" {
		return scenario.Parse([]byte(src))
	}
	name, _ := args["name"].(string)
	if name == "" {
		return nil, errors.New("either scenario or name is required")
	}
	if s.library == nil {
		return nil, errors.New("no scenario library configured")
	}
	return s.library.Get(ctx, name)
}

func (s *Server) handleListTraces(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ids, err := s.store.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
	}
	jsonBytes, _ := json.Marshal(ids)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleGetTrace(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	trace, err := s.store.Load(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
	}
	jsonBytes, _ := json.Marshal(trace)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(ScenariosURI, "Scenario Library",
		mcp.WithMIMEType("application/json"),
	), s.readScenarios)
}

func (s *Server) readScenarios(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	entries := []scenario.Entry{}
	if s.library != nil {
		var err error
		if entries, err = s.library.List(ctx); err != nil {
			return nil, fmt.Errorf("failed to list scenarios: %w", err)
		}
	}
	jsonBytes, _ := json.Marshal(entries)

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      ScenariosURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
