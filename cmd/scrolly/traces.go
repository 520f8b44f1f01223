package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/aretw0/scrolly/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var tracesCmd = &cobra.Command{
	Use:   "traces",
	Short: "Inspect stored traces (requires --redis to outlive the process)",
}

var tracesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored trace IDs",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		ids, err := store.List(cmd.Context())
		if err != nil {
			return err
		}
		sort.Strings(ids)
		for _, id := range ids {
			fmt.Fprintln(cmd.OutOrStdout(), id)
		}
		return nil
	},
}

var tracesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a stored trace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		trace, err := store.Load(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(trace)
		}
		log := tui.NewEventLog(cmd.OutOrStdout(), colorProfile(cmd, cmd.OutOrStdout()))
		for i := range trace.Events {
			log.Print(&trace.Events[i])
		}
		return nil
	},
}

var tracesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored trace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer closeStore()
		return store.Delete(cmd.Context(), args[0])
	},
}

func init() {
	tracesShowCmd.Flags().Bool("json", false, "Print the raw trace")
	tracesCmd.AddCommand(tracesListCmd, tracesShowCmd, tracesDeleteCmd)
	rootCmd.AddCommand(tracesCmd)
}
