package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ration/internal/core/domain"
)

var (
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the food dataset",
	Long: `Finds foods whose name contains the query, ignoring case.
Results are in dataset order and capped at the configured maximum.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 20, "maximum number of results to print (0 = all)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output the full result as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if app == nil || app.Search == nil {
		return errors.New("search service not configured")
	}

	result, err := app.Search.Search(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, result)
	}

	outputSearchTable(cmd, result)
	return nil
}

func outputSearchJSON(cmd *cobra.Command, result domain.SearchResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, result domain.SearchResult) {
	if result.Count == 0 {
		cmd.Println("No results found.")
		return
	}

	width := terminalWidth(cmd.OutOrStdout())
	shown := result.Results
	if searchLimit > 0 && len(shown) > searchLimit {
		shown = shown[:searchLimit]
	}

	cmd.Println(headingStyle.Render(fmt.Sprintf("%d matching foods", result.Count)))
	for i, rec := range shown {
		kcal := mutedStyle.Render("n/a")
		if rec.Calories != nil {
			kcal = valueStyle.Render(fmt.Sprintf("%.0f kcal", *rec.Calories))
		}
		cmd.Printf("  %4d  %s  %s\n", i+1, truncate(rec.Name, width-24), kcal)
	}

	if hidden := result.Count - len(shown); hidden > 0 {
		cmd.Println(mutedStyle.Render(fmt.Sprintf("  ... %d more (use -n 0 to show all)", hidden)))
	}
	if result.Truncated {
		cmd.Println(warnStyle.Render("Result limit reached; refine the query to see other matches."))
	}
	if result.Stats.ErrorsEncountered > 0 {
		cmd.Println(warnStyle.Render(fmt.Sprintf("Skipped %d malformed entries.", result.Stats.ErrorsEncountered)))
	}
}
