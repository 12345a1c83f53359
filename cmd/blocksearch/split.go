package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"blocksearch/internal/config"
	"blocksearch/internal/pipeline"
	"blocksearch/internal/splitter"
	"github.com/spf13/cobra"
)

var splitFlags struct {
	output    string
	template  string
	level     int
	clean     bool
	archive   bool
	hierarchy bool
}

var splitCmd = &cobra.Command{
	Use:   "split <document>",
	Short: "Split a document into per-section files with sidecar metadata",
	Args:  cobra.ExactArgs(1),
	RunE:  runSplit,
}

func init() {
	splitCmd.Flags().StringVarP(&splitFlags.output, "output", "o", "", "output directory (default from config)")
	splitCmd.Flags().StringVarP(&splitFlags.template, "template", "t", "", "template document providing styles")
	splitCmd.Flags().IntVarP(&splitFlags.level, "level", "l", 0, "target heading level (default from config)")
	splitCmd.Flags().BoolVar(&splitFlags.clean, "clean", false, "remove intermediate headings before splitting")
	splitCmd.Flags().BoolVar(&splitFlags.archive, "archive", false, "also write a zip archive of the output")
	splitCmd.Flags().BoolVar(&splitFlags.hierarchy, "hierarchy", false, "mirror the section hierarchy as subdirectories")
	rootCmd.AddCommand(splitCmd)
}

func runSplit(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	log := newLogger()

	input := args[0]
	if _, err := os.Stat(input); err != nil {
		return fmt.Errorf("input document not found: %s", input)
	}

	req := pipeline.SplitRequest{
		InputPath:         input,
		TemplatePath:      splitFlags.template,
		OutputDir:         splitFlags.output,
		TargetLevel:       splitFlags.level,
		Clean:             splitFlags.clean,
		CreateArchive:     splitFlags.archive,
		PreserveHierarchy: splitFlags.hierarchy,
	}
	if req.TemplatePath == "" {
		req.TemplatePath = cfg.TemplatePath
	}
	if req.OutputDir == "" {
		req.OutputDir = cfg.OutputDir
	}

	// Ctrl-C requests cooperative cancellation; the section being
	// written still completes.
	token := splitter.NewToken()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	defer signal.Stop(sig)
	go func() {
		<-sig
		fmt.Fprintln(os.Stderr, statusStyle.Render("canceling, waiting for current section..."))
		token.Cancel()
	}()

	rememberPaths(cfg, log, input, req.OutputDir)

	runner := pipeline.NewRunner(cfg, log)
	out, err := runner.Split(req, token,
		func(msg string) { fmt.Println(statusStyle.Render(msg)) },
		func(pct int) { fmt.Printf("\r%s", statusStyle.Render(fmt.Sprintf("%3d%%", pct))) },
		func(total int) { fmt.Println(statusStyle.Render(fmt.Sprintf("%d sections found", total))) },
	)
	fmt.Println()
	if errors.Is(err, splitter.ErrCanceled) {
		fmt.Println(dimStyle.Render("canceled; partial output remains on disk"))
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Println(successStyle.Render("output written to " + out))
	return nil
}

// rememberPaths records the last-used input and output so the next
// invocation can default to them. Best-effort.
func rememberPaths(cfg config.Config, log *slog.Logger, input, output string) {
	if cfg.SettingsDBPath == "" {
		return
	}
	st, err := openStore(cfg.SettingsDBPath)
	if err != nil {
		log.Warn("settings store unavailable", "path", cfg.SettingsDBPath, "error", err)
		return
	}
	defer st.Close()
	if err := st.Set("last_input", input); err != nil {
		log.Warn("saving last input failed", "error", err)
	}
	if err := st.Set("last_output", output); err != nil {
		log.Warn("saving last output failed", "error", err)
	}
}
