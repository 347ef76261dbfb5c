package source

import (
	"encoding/json"
	"fmt"

	"github.com/ppiankov/deputes/internal/dataset"
)

// SchemaError indicates the response parsed but did not have the expected
// structure. The whole source result is discarded rather than emitting
// ill-formed records.
type SchemaError struct {
	Source string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("unexpected schema from %s: %s", e.Source, e.Reason)
}

// NormalizeSingle extracts one record from a response whose CollectionKey
// holds a single object rather than an array (the per-deputy detail shape).
func NormalizeSingle(body []byte, src Source) (dataset.Record, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, &SchemaError{Source: src.Name, Reason: fmt.Sprintf("not a JSON object: %v", err)}
	}

	raw, ok := doc[src.CollectionKey]
	if !ok {
		return nil, &SchemaError{Source: src.Name, Reason: fmt.Sprintf("missing %q key", src.CollectionKey)}
	}

	var rec map[string]interface{}
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, &SchemaError{Source: src.Name, Reason: fmt.Sprintf("%q is not an object: %v", src.CollectionKey, err)}
	}

	return dataset.Record(rec), nil
}

// Normalize flattens a source's raw JSON response into a Dataset: the
// CollectionKey array is required at the top level, and when RecordKey is set
// each entry's nested record object is extracted.
func Normalize(body []byte, src Source) (dataset.Dataset, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, &SchemaError{Source: src.Name, Reason: fmt.Sprintf("not a JSON object: %v", err)}
	}

	raw, ok := doc[src.CollectionKey]
	if !ok {
		return nil, &SchemaError{Source: src.Name, Reason: fmt.Sprintf("missing %q key", src.CollectionKey)}
	}

	var entries []map[string]interface{}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, &SchemaError{Source: src.Name, Reason: fmt.Sprintf("%q is not an array of objects: %v", src.CollectionKey, err)}
	}

	out := make(dataset.Dataset, 0, len(entries))
	for i, entry := range entries {
		if src.RecordKey == "" {
			out = append(out, dataset.Record(entry))
			continue
		}

		nested, ok := entry[src.RecordKey].(map[string]interface{})
		if !ok {
			return nil, &SchemaError{Source: src.Name, Reason: fmt.Sprintf("entry %d missing %q wrapper", i, src.RecordKey)}
		}
		out = append(out, dataset.Record(nested))
	}

	return out, nil
}
