package cli

import (
	"fmt"
	"os"

	"github.com/jra3/orgmind/internal/search"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Fuzzy-search every line across the org corpus",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().IntP("limit", "l", 0, "maximum number of results (0 = unlimited)")
	searchCmd.Flags().StringP("format", "f", "", "output format: plain or json")
	searchCmd.Flags().IntP("snippet-size", "s", search.DefaultSnippetMaxSize, "maximum snippet size in Unicode scalar values")
	searchCmd.Flags().StringSliceP("tags", "t", nil, "only match lines whose enclosing heading carries all of these tags")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	eng, err := newEngine(cmd)
	if err != nil {
		return err
	}
	cfg := eng.Config()
	query := args[0]

	limit, _ := cmd.Flags().GetInt("limit")
	snippetSize, _ := cmd.Flags().GetInt("snippet-size")
	tags, _ := cmd.Flags().GetStringSlice("tags")

	results, err := eng.Search(query, tags, limit, snippetSize)
	if err != nil {
		return err
	}

	if resolvedFormat(cmd, cfg) == "json" {
		return printJSON(os.Stdout, map[string]any{
			"directory": cfg.OrgDirectory,
			"query":     query,
			"count":     len(results),
			"results":   results,
		})
	}

	if len(results) == 0 {
		fmt.Printf("No results found for query '%s' in %s\n", query, cfg.OrgDirectory)
		return nil
	}
	fmt.Printf("Found %s results for query '%s' in %s:\n", count(len(results)), query, cfg.OrgDirectory)
	renderSearchTable(os.Stdout, results)
	return nil
}
