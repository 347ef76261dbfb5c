package worker

import (
	"context"

	"github.com/ppiankov/deputes/internal/dataset"
)

// DetailFetcher is the subset of the fetch package detail jobs need.
type DetailFetcher interface {
	FetchDetail(ctx context.Context, slug string) (dataset.Record, error)
}

// DetailJob fetches one deputy's detail record.
type DetailJob struct {
	Slug    string
	Fetcher DetailFetcher
	Limiter *Limiter
	BaseURL string
}

// DetailResult pairs a slug with its fetched record or error.
type DetailResult struct {
	Slug   string
	Record dataset.Record
	Error  error
}

// GetError returns the job error.
func (r *DetailResult) GetError() error {
	return r.Error
}

// Execute fetches the detail record, waiting on the host limiter first.
func (j *DetailJob) Execute(ctx context.Context) Result {
	if j.Limiter != nil && j.BaseURL != "" {
		if err := j.Limiter.Wait(ctx, j.BaseURL); err != nil {
			return &DetailResult{Slug: j.Slug, Error: err}
		}
	}

	rec, err := j.Fetcher.FetchDetail(ctx, j.Slug)
	if err != nil {
		return &DetailResult{Slug: j.Slug, Error: err}
	}
	return &DetailResult{Slug: j.Slug, Record: rec}
}

// FetchDetails fetches several deputies' detail records concurrently.
// Result order is not guaranteed.
func FetchDetails(ctx context.Context, fetcher DetailFetcher, limiter *Limiter, baseURL string, slugs []string, workers int) []*DetailResult {
	if len(slugs) == 0 {
		return nil
	}

	pool := NewPool(workers)
	pool.Start()

	// The slug list can outnumber the pool's buffers, so feed the queue
	// from its own goroutine while this one drains results.
	go func() {
		for _, slug := range slugs {
			pool.Submit(&DetailJob{
				Slug:    slug,
				Fetcher: fetcher,
				Limiter: limiter,
				BaseURL: baseURL,
			})
		}
		pool.Close()
	}()

	out := make([]*DetailResult, 0, len(slugs))
	for r := range pool.Results() {
		out = append(out, r.(*DetailResult))
	}

	return out
}
