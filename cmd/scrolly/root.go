package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/scrolly/internal/logging"
	"github.com/aretw0/scrolly/pkg/adapters/loam"
	"github.com/aretw0/scrolly/pkg/adapters/memory"
	redisstore "github.com/aretw0/scrolly/pkg/adapters/redis"
	"github.com/aretw0/scrolly/pkg/ports"
	"github.com/muesli/termenv"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:   "scrolly",
	Short: "Scrolly drives scrollytelling steps from a trigger line",
	Long: `Scrolly replays scroll scenarios against a simulated page and reports the
stepEnter, stepExit and stepProgress notifications a scroller would emit.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("dir", "scenarios", "Directory containing the scenario library")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON lines")
	rootCmd.PersistentFlags().String("redis", "", "Redis URL for trace storage (redis://host:6379/0); memory when empty")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
}

func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	raw, _ := cmd.Flags().GetString("log-level")
	level, err := logging.ParseLevel(raw)
	if err != nil {
		return nil, err
	}
	asJSON, _ := cmd.Flags().GetBool("log-json")
	return logging.New(logging.Options{Level: level, JSON: asJSON, Output: cmd.ErrOrStderr()}), nil
}

// openStore returns the Redis store when --redis is set, an in-memory one otherwise.
// The returned closer is never nil.
func openStore(cmd *cobra.Command) (ports.TraceStore, func() error, error) {
	url, _ := cmd.Flags().GetString("redis")
	if url == "" {
		return memory.NewStore(), func() error { return nil }, nil
	}
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid redis url: %w", err)
	}
	store := redisstore.NewFromClient(goredis.NewClient(opts))
	if err := store.Ping(cmd.Context()); err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("redis unreachable: %w", err)
	}
	return store, store.Close, nil
}

// openLibrary opens the scenario library, or returns nil when the directory does not exist.
func openLibrary(cmd *cobra.Command) (*loam.Library, error) {
	dir, _ := cmd.Flags().GetString("dir")
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}
	return loam.Open(dir)
}

// colorProfile picks the terminal's profile, or Ascii when w is not a terminal or --no-color is set.
func colorProfile(cmd *cobra.Command, w io.Writer) termenv.Profile {
	if off, _ := cmd.Flags().GetBool("no-color"); off {
		return termenv.Ascii
	}
	if !isTerminal(w) {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
