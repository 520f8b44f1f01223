package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/scrolly/internal/presentation/graph"
	"github.com/aretw0/scrolly/internal/presentation/tui"
	"github.com/aretw0/scrolly/pkg/domain"
	"github.com/aretw0/scrolly/pkg/observability"
	"github.com/aretw0/scrolly/pkg/scenario"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <file|name>",
	Short: "Replay a scenario and print its notifications",
	Long: `Replays a scenario file (YAML or JSON) or a named scenario from the library
and prints every notification as it is emitted.

Output formats:
- log (default): one line per notification
- json: the recorded trace
- report: a Markdown summary, rendered when stdout is a terminal
- mermaid: a flowchart of the path through the steps`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		progress, _ := cmd.Flags().GetBool("progress")
		save, _ := cmd.Flags().GetBool("save")

		sc, err := loadScenario(cmd, args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		profile := colorProfile(cmd, out)
		hooks := observability.LoggingHooks(logger)
		if format == "log" {
			if isTerminal(out) {
				tui.PrintBanner(out, profile)
			}
			eventLog := tui.NewEventLog(out, profile)
			eventLog.Progress = progress
			hooks = hooks.Merge(eventLog.Hooks())
		}

		runner := scenario.NewRunner(scenario.WithLogger(logger), scenario.WithLifecycleHooks(hooks))
		trace, err := runner.Run(cmd.Context(), sc)
		if err != nil {
			return err
		}

		if save {
			store, closeStore, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer closeStore()
			if err := store.Save(cmd.Context(), trace); err != nil {
				return fmt.Errorf("failed to save trace: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "trace saved: %s\n", trace.ID)
		}

		switch format {
		case "log":
			return nil
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(trace)
		case "report":
			return printReport(cmd, trace)
		case "mermaid":
			fmt.Fprint(out, graph.GenerateMermaid(len(sc.Steps), trace, &graph.GraphOverlay{Visited: true, Current: true}))
			return nil
		}
		return fmt.Errorf("unknown format %q", format)
	},
}

func init() {
	simulateCmd.Flags().StringP("format", "f", "log", "Output format (log, json, report, mermaid)")
	simulateCmd.Flags().Bool("progress", false, "Include stepProgress lines in the log")
	simulateCmd.Flags().Bool("save", false, "Store the trace (see --redis)")
	rootCmd.AddCommand(simulateCmd)
}

// loadScenario reads a file when arg names one, and falls back to the library.
func loadScenario(cmd *cobra.Command, arg string) (*scenario.Scenario, error) {
	if _, err := os.Stat(arg); err == nil {
		return scenario.LoadFile(arg)
	}
	lib, err := openLibrary(cmd)
	if err != nil {
		return nil, err
	}
	if lib == nil {
		return nil, fmt.Errorf("%s: no such file and no scenario library", arg)
	}
	return lib.Get(cmd.Context(), arg)
}

func printReport(cmd *cobra.Command, trace *domain.Trace) error {
	md := tui.Report(trace)
	out := cmd.OutOrStdout()
	if !isTerminal(out) {
		_, err := fmt.Fprint(out, md)
		return err
	}

	width := 100
	if f, ok := out.(*os.File); ok {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			width = w
		}
	}
	style := ""
	if off, _ := cmd.Flags().GetBool("no-color"); off {
		style = "notty"
	}
	render, err := tui.NewRenderer(style, width)
	if err != nil {
		return fmt.Errorf("markdown renderer unavailable: %w", err)
	}
	rendered, err := render(md)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(out, rendered)
	return err
}
