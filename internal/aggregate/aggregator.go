// Package aggregate queries every registered deputy source in declared
// order, isolates per-source failures, persists per-source CSV artifacts and
// selects a primary source for the unified artifact.
package aggregate

import (
	"context"
	"path/filepath"

	"github.com/ppiankov/deputes/internal/dataset"
	"github.com/ppiankov/deputes/internal/fetch"
	"github.com/ppiankov/deputes/internal/source"
)

// UnifiedArtifact is the file name of the primary-source CSV.
const UnifiedArtifact = "deputes_unifie.csv"

// SourceResult is the outcome of querying one source: a Dataset, or an
// absence. Never a partial dataset; any parse failure discards the whole
// source.
type SourceResult struct {
	Dataset dataset.Dataset
	Err     error
}

// Present reports whether the source yielded a usable dataset.
func (r SourceResult) Present() bool {
	return r.Err == nil && r.Dataset != nil
}

// Results maps source name to outcome for one aggregation run.
type Results map[string]SourceResult

// Fetcher is the subset of the fetch package the aggregator needs; narrowed
// for tests.
type Fetcher interface {
	FetchSource(ctx context.Context, src source.Source) (dataset.Dataset, error)
}

// Aggregator runs the sequential multi-source fetch. Each run starts every
// source fresh; nothing persists in memory across invocations.
type Aggregator struct {
	registry  source.Registry
	fetcher   Fetcher
	outputDir string
	reporter  Reporter
}

// New creates an Aggregator. A nil reporter discards diagnostics.
func New(registry source.Registry, fetcher Fetcher, outputDir string, reporter Reporter) *Aggregator {
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &Aggregator{
		registry:  registry,
		fetcher:   fetcher,
		outputDir: outputDir,
		reporter:  reporter,
	}
}

// Fetch attempts a single named source.
func (a *Aggregator) Fetch(ctx context.Context, name string) SourceResult {
	src, ok := a.registry.Find(name)
	if !ok {
		return SourceResult{Err: &source.SchemaError{Source: name, Reason: "not in registry"}}
	}
	d, err := a.fetcher.FetchSource(ctx, src)
	if err != nil {
		return SourceResult{Err: err}
	}
	return SourceResult{Dataset: d}
}

// FetchAll attempts every registered source in declared order, sequentially.
// A source's failure is logged and recorded as absent; it never affects the
// other sources' results. Each successful dataset is persisted to its
// source's artifact; persistence failure is reported but does not invalidate
// the in-memory result.
func (a *Aggregator) FetchAll(ctx context.Context) Results {
	results := make(Results, len(a.registry))

	for _, src := range a.registry {
		d, err := a.fetcher.FetchSource(ctx, src)
		if err != nil {
			a.reporter.Warnf("%s: %v", src.Name, err)
			results[src.Name] = SourceResult{Err: err}
			continue
		}

		results[src.Name] = SourceResult{Dataset: d}
		a.reporter.Infof("✓ %s: %d deputies", src.Name, len(d))

		// An empty roster is a valid answer but has no header to derive,
		// so there is nothing to persist.
		if len(d) == 0 {
			a.reporter.Infof("%s: empty roster, artifact skipped", src.Name)
			continue
		}

		path := filepath.Join(a.outputDir, src.Artifact)
		if err := dataset.WriteCSV(d, path); err != nil {
			a.reporter.Warnf("%s: %v", src.Name, &fetch.PersistenceError{Path: path, Err: err})
			continue
		}
		a.reporter.Infof("✓ %s: saved %s", src.Name, path)
	}

	return results
}

// SelectPrimary returns the dataset of the highest-priority present source,
// iterating the registry in its fixed declared order. A static priority
// list; no field-level merging across sources.
func (a *Aggregator) SelectPrimary(results Results) (dataset.Dataset, string, bool) {
	for _, src := range a.registry {
		if r, ok := results[src.Name]; ok && r.Present() {
			return r.Dataset, src.Name, true
		}
	}
	return nil, "", false
}

// WriteUnified persists the primary dataset as the unified artifact and
// returns its path. When no source succeeded it reports the failure and
// returns ok=false without writing anything.
func (a *Aggregator) WriteUnified(results Results) (string, bool) {
	d, name, ok := a.SelectPrimary(results)
	if !ok {
		a.reporter.Warnf("no source succeeded; unified artifact not written")
		return "", false
	}
	if len(d) == 0 {
		a.reporter.Infof("unified: primary source %s is empty, artifact skipped", name)
		return "", false
	}

	path := filepath.Join(a.outputDir, UnifiedArtifact)
	if err := dataset.WriteCSV(d, path); err != nil {
		a.reporter.Warnf("unified: %v", &fetch.PersistenceError{Path: path, Err: err})
		return "", false
	}

	a.reporter.Infof("✓ unified dataset (%s): %d deputies -> %s", name, len(d), path)
	return path, true
}
