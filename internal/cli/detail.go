package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/deputes/internal/analyze"
	"github.com/ppiankov/deputes/internal/worker"
)

var detailWorkers int

// detailCmd represents the detail command
var detailCmd = &cobra.Command{
	Use:   "detail <slug>...",
	Short: "Fetch one or more deputies' detail records",
	Long: `Detail fetches the full record of each deputy identified by slug
(e.g. "emmanuel-macron"). Several slugs are fetched concurrently, rate-limited
per host.

Example:
  deputes detail emmanuel-macron
  deputes detail emmanuel-macron jean-dupont --workers 2`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDetail,
}

func init() {
	rootCmd.AddCommand(detailCmd)

	detailCmd.Flags().IntVar(&detailWorkers, "workers", 4, "concurrent detail fetches")
	detailCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "per-request timeout")
	detailCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
}

func runDetail(cmd *cobra.Command, args []string) error {
	cfg := buildConfig()
	fetcher := newFetcher(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), timeout*time.Duration(len(args)+1))
	defer cancel()

	limiter := worker.NewLimiter(cfg.Rate.RequestsPerSecond, cfg.Rate.BurstSize)
	results := worker.FetchDetails(ctx, fetcher, limiter, "https://www.nosdeputes.fr", args, detailWorkers)

	sort.Slice(results, func(i, j int) bool { return results[i].Slug < results[j].Slug })

	failures := 0
	for _, r := range results {
		if r.Error != nil {
			failures++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", r.Slug, r.Error)
			continue
		}

		fmt.Printf("%s\n", r.Record.String(analyze.FieldName))
		for _, field := range []string{analyze.FieldDistrict, analyze.FieldParty, analyze.FieldProfession} {
			if v := r.Record.String(field); v != "" {
				fmt.Printf("  %s: %s\n", field, v)
			}
		}
		fmt.Println()
	}

	if failures == len(results) {
		fmt.Fprintln(os.Stderr, "✗ every detail lookup failed")
	}
	return nil
}
