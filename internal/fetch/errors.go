package fetch

import "fmt"

// RetrievalError indicates a network-level failure: connection error, non-2xx
// status, or timeout. Recovered at the aggregator boundary.
type RetrievalError struct {
	Source string
	URL    string
	Err    error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieval failed for %s (%s): %v", e.Source, e.URL, e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// PersistenceError indicates an artifact could not be written. It never
// invalidates the in-memory source result.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
