package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/deputes/internal/analyze"
	"github.com/ppiankov/deputes/internal/dataset"
)

var searchField string

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <csv> <term>",
	Short: "Search deputies by name substring",
	Long: `Search prints the deputies whose name contains the given term,
case-insensitively.

Example:
  deputes search data_deputes/deputes_unifie.csv macron
  deputes search data_deputes/deputes_unifie.csv dupont --field nom_circo`,
	Args: cobra.ExactArgs(2),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVar(&searchField, "field", analyze.FieldName, "field to search in")
}

func runSearch(cmd *cobra.Command, args []string) error {
	d, err := dataset.ReadCSV(args[0])
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	matches := d.FilterContains(searchField, args[1])
	if len(matches) == 0 {
		fmt.Printf("No deputy matches %q\n", args[1])
		return nil
	}

	fmt.Printf("%d match(es) for %q:\n", len(matches), args[1])
	for _, rec := range matches {
		fmt.Printf("  - %s", rec.String(analyze.FieldName))
		if circo := rec.String(analyze.FieldDistrict); circo != "" {
			fmt.Printf(" (%s)", circo)
		}
		if party := rec.String(analyze.FieldParty); party != "" {
			fmt.Printf(", %s", party)
		}
		fmt.Println()
	}

	return nil
}
