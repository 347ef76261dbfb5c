package aggregate

// SourceSummary describes one source's outcome for reporting.
type SourceSummary struct {
	Name        string
	Present     bool
	RecordCount int
	FieldCount  int
	FieldSample []string
	Err         error
}

// Summary is the read-only comparison of all sources from one run.
type Summary struct {
	Sources []SourceSummary
}

// fieldSampleSize caps how many field names a summary shows per source.
const fieldSampleSize = 5

// Summarize builds a per-source report in registry order: present/absent,
// record count and a sample of field names. Pure reporting, no side effects.
func (a *Aggregator) Summarize(results Results) Summary {
	s := Summary{Sources: make([]SourceSummary, 0, len(a.registry))}

	for _, src := range a.registry {
		r, ok := results[src.Name]
		if !ok || !r.Present() {
			s.Sources = append(s.Sources, SourceSummary{Name: src.Name, Err: r.Err})
			continue
		}

		fields := r.Dataset.Fields()
		sample := fields
		if len(sample) > fieldSampleSize {
			sample = sample[:fieldSampleSize]
		}

		s.Sources = append(s.Sources, SourceSummary{
			Name:        src.Name,
			Present:     true,
			RecordCount: len(r.Dataset),
			FieldCount:  len(fields),
			FieldSample: sample,
		})
	}

	return s
}
