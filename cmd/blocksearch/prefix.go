package main

import (
	"fmt"
	"strings"

	"blocksearch/internal/config"
	"blocksearch/internal/searcher"
	"github.com/spf13/cobra"
)

var prefixCmd = &cobra.Command{
	Use:   "prefix",
	Short: "Manage prefix routes and folder exclusions",
}

var prefixListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured prefixes, their folders, and exclusions",
	Args:  cobra.NoArgs,
	RunE: withRouter(func(router *searcher.PrefixManager, args []string) error {
		prefixes := router.Prefixes()
		if len(prefixes) == 0 {
			fmt.Println(dimStyle.Render("no prefixes configured"))
		}
		for _, p := range prefixes {
			fmt.Println(titleStyle.Render(p))
			for _, f := range router.FoldersForPrefix(p) {
				fmt.Println("  " + f)
			}
		}
		if excluded := router.Exclusions(); len(excluded) > 0 {
			fmt.Println(dimStyle.Render("excluded: " + strings.Join(excluded, ", ")))
		}
		return nil
	}),
}

var prefixAddCmd = &cobra.Command{
	Use:   "add <prefix> <folder>",
	Short: "Route a prefix to a folder",
	Args:  cobra.ExactArgs(2),
	RunE: withRouter(func(router *searcher.PrefixManager, args []string) error {
		if !router.AddPrefixFolder(args[0], args[1]) {
			return fmt.Errorf("invalid prefix %q: must be non-empty and alphanumeric", args[0])
		}
		fmt.Println(successStyle.Render(fmt.Sprintf("%s -> %s", args[0], strings.Join(router.FoldersForPrefix(args[0]), ", "))))
		return nil
	}),
}

var prefixRemoveCmd = &cobra.Command{
	Use:   "remove <prefix> <folder>",
	Short: "Remove a folder from a prefix",
	Args:  cobra.ExactArgs(2),
	RunE: withRouter(func(router *searcher.PrefixManager, args []string) error {
		if !router.RemovePrefixFolder(args[0], args[1]) {
			return fmt.Errorf("unknown prefix: %s", args[0])
		}
		fmt.Println(successStyle.Render("removed"))
		return nil
	}),
}

var prefixExcludeCmd = &cobra.Command{
	Use:   "exclude <folder>",
	Short: "Hide a folder (and its subfolders) from unprefixed searches",
	Args:  cobra.ExactArgs(1),
	RunE: withRouter(func(router *searcher.PrefixManager, args []string) error {
		router.SetFolderExclusion(args[0], true)
		fmt.Println(successStyle.Render("excluded " + args[0]))
		return nil
	}),
}

var prefixIncludeCmd = &cobra.Command{
	Use:   "include <folder>",
	Short: "Remove a folder from the exclusion set",
	Args:  cobra.ExactArgs(1),
	RunE: withRouter(func(router *searcher.PrefixManager, args []string) error {
		router.SetFolderExclusion(args[0], false)
		fmt.Println(successStyle.Render("included " + args[0]))
		return nil
	}),
}

var prefixVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Report routed folders that no longer exist under the search root",
	Args:  cobra.NoArgs,
	RunE: withRouter(func(router *searcher.PrefixManager, args []string) error {
		cfg := config.Load()
		missing := router.VerifyFolders(cfg.SearchRoot)
		if len(missing) == 0 {
			fmt.Println(successStyle.Render("all routed folders exist"))
			return nil
		}
		for _, m := range missing {
			fmt.Println(errorStyle.Render(fmt.Sprintf("%s -> %s (missing)", m.Prefix, m.Folder)))
		}
		return nil
	}),
}

var prefixExportCmd = &cobra.Command{
	Use:   "export <file.csv>",
	Short: "Export the prefix table to CSV",
	Args:  cobra.ExactArgs(1),
	RunE: withRouter(func(router *searcher.PrefixManager, args []string) error {
		if err := router.ExportCSV(args[0]); err != nil {
			return err
		}
		fmt.Println(successStyle.Render("exported to " + args[0]))
		return nil
	}),
}

var prefixImportCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Replace the prefix table from CSV (exclusions are kept)",
	Args:  cobra.ExactArgs(1),
	RunE: withRouter(func(router *searcher.PrefixManager, args []string) error {
		if err := router.ImportCSV(args[0]); err != nil {
			return err
		}
		fmt.Println(successStyle.Render(fmt.Sprintf("imported %d prefixes", len(router.Prefixes()))))
		return nil
	}),
}

func init() {
	prefixCmd.AddCommand(prefixListCmd, prefixAddCmd, prefixRemoveCmd,
		prefixExcludeCmd, prefixIncludeCmd, prefixVerifyCmd,
		prefixExportCmd, prefixImportCmd)
	rootCmd.AddCommand(prefixCmd)
}

// withRouter opens the settings store and router without scanning the
// corpus; prefix management should not pay for an index rebuild.
func withRouter(fn func(router *searcher.PrefixManager, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		log := newLogger()

		var settings searcher.SettingsStore
		if cfg.SettingsDBPath != "" {
			st, err := openStore(cfg.SettingsDBPath)
			if err != nil {
				log.Warn("settings store unavailable", "path", cfg.SettingsDBPath, "error", err)
			} else {
				defer st.Close()
				settings = st
			}
		}
		return fn(searcher.NewPrefixManager(settings, log), args)
	}
}
