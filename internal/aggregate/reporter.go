package aggregate

import (
	"fmt"
	"io"
)

// Reporter receives the aggregator's diagnostic output. Injecting it keeps
// the aggregation logic testable without capturing the console.
type Reporter interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

// WriterReporter prints diagnostics to a writer, one line each, with the ✓/✗
// prefixes the CLI uses elsewhere.
type WriterReporter struct {
	W io.Writer
}

func (r *WriterReporter) Infof(format string, args ...interface{}) {
	fmt.Fprintf(r.W, format+"\n", args...)
}

func (r *WriterReporter) Warnf(format string, args ...interface{}) {
	fmt.Fprintf(r.W, "✗ "+format+"\n", args...)
}

// NopReporter discards all diagnostics.
type NopReporter struct{}

func (NopReporter) Infof(string, ...interface{}) {}
func (NopReporter) Warnf(string, ...interface{}) {}
