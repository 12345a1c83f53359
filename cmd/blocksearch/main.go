package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"blocksearch/internal/config"
	"blocksearch/internal/searcher"
	"blocksearch/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "blocksearch",
	Short: "Split structured documents by heading level and search the fragments",
	Long: `blocksearch splits a structured document into one standalone document per
target-level section, attaches sidecar metadata describing each section's
place in the original hierarchy, and indexes and searches the split output
using only those sidecars.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if os.Getenv("BLOCKSEARCH_DEBUG") != "" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// openEngine builds the search engine over the configured root: settings
// store (best-effort), prefix router, and a freshly rebuilt index. The
// caller closes the returned store when non-nil.
func openEngine(cfg config.Config, log *slog.Logger) (*searcher.Engine, *store.Store, error) {
	var st *store.Store
	if cfg.SettingsDBPath != "" {
		opened, err := openStore(cfg.SettingsDBPath)
		if err != nil {
			log.Warn("settings store unavailable", "path", cfg.SettingsDBPath, "error", err)
		} else {
			st = opened
		}
	}

	var settings searcher.SettingsStore
	if st != nil {
		settings = st
	}
	router := searcher.NewPrefixManager(settings, log)
	index := searcher.NewIndex(cfg.SearchRoot, log)
	if err := index.Rebuild(); err != nil {
		if st != nil {
			st.Close()
		}
		return nil, nil, err
	}
	return searcher.NewEngine(index, router), st, nil
}

// openStore opens the settings database, creating its directory first.
func openStore(path string) (*store.Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return store.Open(path)
}
