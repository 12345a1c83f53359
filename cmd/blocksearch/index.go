package main

import (
	"fmt"

	"blocksearch/internal/config"
	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild the document index and report what it found",
	Args:  cobra.NoArgs,
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

		ix := engine.Index()
		withMeta := 0
		for _, rec := range ix.Records() {
			if rec.HasHierarchy() {
				withMeta++
			}
		}
		fmt.Println(successStyle.Render(fmt.Sprintf("indexed %d documents under %s", ix.Len(), ix.Root())))
		fmt.Println(dimStyle.Render(fmt.Sprintf("%d carry hierarchy metadata", withMeta)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
}
