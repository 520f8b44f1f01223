package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/scrolly/pkg/adapters/mcp"
	"github.com/aretw0/scrolly/pkg/scenario"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes scroll simulation as MCP tools (simulate_scroll, list_traces, get_trace)
and the scenario library as the scrolly://scenarios resource.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}
		store, closeStore, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		var lib scenario.Library
		if l, err := openLibrary(cmd); err != nil {
			return err
		} else if l != nil {
			lib = l
		}

		srv := mcp.NewServer(scenario.NewRunner(scenario.WithLogger(logger)), store, lib)

		switch transport {
		case "stdio":
			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)
			logger.Info("Starting scrolly MCP server (stdio)")
			return srv.ServeStdio()
		case "sse":
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ServeSSE(ctx, port)
		}
		return fmt.Errorf("unknown transport %q", transport)
	},
}

func init() {
	mcpCmd.Flags().String("transport", "stdio", "Transport (stdio, sse)")
	mcpCmd.Flags().Int("port", 8081, "Port for the sse transport")
	rootCmd.AddCommand(mcpCmd)
}
