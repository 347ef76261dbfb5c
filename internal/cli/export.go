package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/deputes/internal/analyze"
	"github.com/ppiankov/deputes/internal/dataset"
)

var exportOut string

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <csv> <party>",
	Short: "Export one party's deputies to a CSV artifact",
	Long: `Export filters the dataset to the deputies whose party matches the given
name (case-insensitive substring) and writes them to their own CSV.

Example:
  deputes export data_deputes/deputes_unifie.csv "Renaissance"
  deputes export data_deputes/deputes_unifie.csv RN --out deputes_rn.csv`,
	Args: cobra.ExactArgs(2),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file (default: deputes_<party>.csv next to the input)")
}

func runExport(cmd *cobra.Command, args []string) error {
	input, party := args[0], args[1]

	d, err := dataset.ReadCSV(input)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	matches := d.FilterContains(analyze.FieldParty, party)
	if len(matches) == 0 {
		fmt.Printf("No deputy belongs to %q\n", party)
		return nil
	}

	out := exportOut
	if out == "" {
		slug := strings.ToLower(strings.ReplaceAll(party, " ", "_"))
		out = filepath.Join(filepath.Dir(input), "deputes_"+slug+".csv")
	}

	if err := dataset.WriteCSV(matches, out); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	fmt.Printf("✓ %d deputies of %q exported to %s\n", len(matches), party, out)
	return nil
}
