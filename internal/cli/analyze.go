package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/deputes/internal/analyze"
	"github.com/ppiankov/deputes/internal/dataset"
	"github.com/ppiankov/deputes/internal/llm"
)

var (
	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <csv>",
	Short: "Print descriptive statistics for a downloaded roster CSV",
	Long: `Analyze reads a previously downloaded CSV artifact and prints the party,
sex, age and profession breakdowns.

Example:
  deputes analyze data_deputes/deputes_unifie.csv
  deputes analyze data_deputes/deputes_unifie.csv --llm openai`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().BoolVar(&llmEnabled, "llm", false, "generate a natural-language summary")
	analyzeCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default when empty)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	d, err := dataset.ReadCSV(args[0])
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	report := analyze.Analyze(d)
	printReport(report)

	if llmEnabled {
		if err := printLLMSummary(report); err != nil {
			// The summary is a bonus; a provider problem is not a data problem.
			fmt.Fprintf(os.Stderr, "✗ LLM summary failed: %v\n", err)
		}
	}

	return nil
}

func printReport(r analyze.Report) {
	fmt.Printf("Deputies: %d (%d fields)\n", r.RecordCount, r.FieldCount)

	if len(r.Parties) > 0 {
		fmt.Println("\nParties:")
		for _, p := range r.Parties {
			fmt.Printf("  %-40s %4d (%.1f%%)\n", p.Value, p.Count, p.Percent)
		}
	}

	if len(r.Sexes) > 0 {
		fmt.Println("\nSex:")
		for _, s := range r.Sexes {
			fmt.Printf("  %-40s %4d (%.1f%%)\n", s.Value, s.Count, s.Percent)
		}
	}

	if r.HasAge {
		fmt.Println("\nAge:")
		fmt.Printf("  mean %.1f, median %.0f, youngest %.0f, oldest %.0f\n",
			r.Age.Mean, r.Age.Median, r.Age.Min, r.Age.Max)
	}

	if len(r.Departments) > 0 {
		fmt.Println("\nDepartments:")
		for _, dpt := range r.Departments {
			fmt.Printf("  %-40s %4d\n", dpt.Value, dpt.Count)
		}
	}

	if len(r.Professions) > 0 {
		fmt.Println("\nProfessions:")
		for _, p := range r.Professions {
			fmt.Printf("  %-40s %4d\n", p.Value, p.Count)
		}
	}
}

func printLLMSummary(report analyze.Report) error {
	cfg := buildConfig().LLM
	cfg.Provider = llmProvider
	cfg.Model = llmModel

	switch llmProvider {
	case "openai":
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "ollama":
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.BaseURL = baseURL
		}
	}

	provider, err := llm.NewProvider(cfg)
	if err != nil {
		return err
	}
	if provider == nil {
		return llm.ErrNoProvider
	}

	resp, err := provider.Summarize(context.Background(), llm.SummarizeRequest{Report: report})
	if err != nil {
		return err
	}

	fmt.Printf("\nSummary (%s):\n%s\n", resp.Model, resp.Summary)
	return nil
}
