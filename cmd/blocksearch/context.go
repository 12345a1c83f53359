package main

import (
	"fmt"
	"strings"

	"blocksearch/internal/config"
	"github.com/spf13/cobra"
)

var contextCmd = &cobra.Command{
	Use:   "context <document>",
	Short: "Show a split document's family: parent first, siblings in original order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		log := newLogger()

		engine, st, err := openEngine(cfg, log)
		if err != nil {
			return err
		}
		if st != nil {
			defer st.Close()
		}

		stem := strings.ToLower(args[0])
		rec, ok := engine.Index().Get(stem)
		if !ok {
			return fmt.Errorf("document not found: %s", args[0])
		}

		related := engine.Context(rec)
		if rec.OriginalDocPath != "" {
			fmt.Println(dimStyle.Render("original: " + rec.OriginalDocPath))
		}
		for _, r := range related {
			marker := "  "
			if r == rec {
				marker = "* "
			}
			pos := ""
			if r.PositionInOriginal != nil {
				pos = fmt.Sprintf(" [%d]", *r.PositionInOriginal)
			}
			fmt.Println(marker + titleStyle.Render(r.Name) + dimStyle.Render(pos))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(contextCmd)
}
