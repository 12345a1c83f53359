package main

import (
	"fmt"

	"blocksearch/internal/config"
	"blocksearch/internal/searcher"
	"github.com/spf13/cobra"
)

var searchFlags struct {
	sortKey     string
	desc        bool
	includePath bool
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the split documents under the configured root",
	Long: `Search matches every query token as a case-insensitive substring of the
document name. When the first word is a configured prefix the search is
routed to that prefix's folders; otherwise excluded folders are skipped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchFlags.sortKey, "sort", searcher.SortByName, "sort key: name, modified, created, size")
	searchCmd.Flags().BoolVar(&searchFlags.desc, "desc", false, "reverse the sort order")
	searchCmd.Flags().BoolVar(&searchFlags.includePath, "path", false, "also match tokens against the folder path")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	log := newLogger()

	engine, st, err := openEngine(cfg, log)
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close()
	}

	query := ""
	if len(args) > 0 {
		query = args[0]
	}
	includePath := cfg.IncludePath
	if cmd.Flags().Changed("path") {
		includePath = searchFlags.includePath
	}

	results := engine.Search(query, searcher.SearchOptions{
		SortKey:     searchFlags.sortKey,
		Reverse:     searchFlags.desc,
		IncludePath: includePath,
	})
	if len(results) == 0 {
		fmt.Println(dimStyle.Render("no matches"))
		return nil
	}
	for _, rec := range results {
		fmt.Println(renderRecord(rec))
	}
	fmt.Println(dimStyle.Render(fmt.Sprintf("%d documents", len(results))))
	return nil
}
