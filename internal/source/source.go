// Package source declares the fixed registry of deputy data sources and the
// normalization of their JSON responses into Datasets.
package source

// Source describes one named, independently queryable origin of the deputy
// roster.
type Source struct {
	// Name is the unique registry key
	Name string

	// URL is the JSON endpoint
	URL string

	// CollectionKey is the required top-level array field; its absence in a
	// response is a schema failure
	CollectionKey string

	// RecordKey, when non-empty, is the wrapper key each collection entry
	// nests the actual record under (e.g. {"depute": {...}})
	RecordKey string

	// Artifact is the per-source CSV file name
	Artifact string
}

// Registry is the fixed, ordered list of sources. Order is priority order for
// primary-source selection.
type Registry []Source

// DefaultRegistry returns the declared source list, highest priority first.
func DefaultRegistry() Registry {
	return Registry{
		{
			Name:          "nosdeputes",
			URL:           "https://www.nosdeputes.fr/deputes/json",
			CollectionKey: "deputes",
			RecordKey:     "depute",
			Artifact:      "deputes_nosdeputes.csv",
		},
		{
			Name:          "synthese",
			URL:           "https://www.nosdeputes.fr/synthese/data/json",
			CollectionKey: "deputes",
			RecordKey:     "",
			Artifact:      "deputes_synthese.csv",
		},
		{
			// Official-roster fallback. The historical data.assemblee-nationale.fr
			// exports moved between legislatures, so this mirrors the stable
			// NosDéputés API under its own artifact.
			Name:          "assemblee",
			URL:           "https://www.nosdeputes.fr/deputes/json",
			CollectionKey: "deputes",
			RecordKey:     "depute",
			Artifact:      "deputes_assemblee.csv",
		},
	}
}

// Find returns the source with the given name.
func (r Registry) Find(name string) (Source, bool) {
	for _, src := range r {
		if src.Name == name {
			return src, true
		}
	}
	return Source{}, false
}

// Names returns the registry's source names in declared order.
func (r Registry) Names() []string {
	names := make([]string, len(r))
	for i, src := range r {
		names[i] = src.Name
	}
	return names
}
