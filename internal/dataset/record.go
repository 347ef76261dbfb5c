package dataset

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Record is one deputy's flattened field/value mapping. Field sets are
// determined by the remote source and vary across sources and records, so
// callers must treat missing fields defensively.
type Record map[string]interface{}

// Has reports whether the field is present and non-nil.
func (r Record) Has(field string) bool {
	v, ok := r[field]
	return ok && v != nil
}

// String returns the field value stringified, or "" when absent.
// JSON numbers are rendered without a trailing ".0" when integral.
func (r Record) String(field string) string {
	v, ok := r[field]
	if !ok || v == nil {
		return ""
	}
	return stringify(v)
}

// Float returns the field value as a float64 when it is numeric or a
// numeric string.
func (r Record) Float(field string) (float64, bool) {
	v, ok := r[field]
	if !ok || v == nil {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Contains reports whether the field's string value contains the substring,
// case-insensitively. Absent fields never match.
func (r Record) Contains(field, substring string) bool {
	if !r.Has(field) {
		return false
	}
	return strings.Contains(strings.ToLower(r.String(field)), strings.ToLower(substring))
}

func stringify(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Dataset is an ordered collection of Records from one successful fetch.
// Ordering reflects the order returned by the source. A Dataset is never
// mutated after normalization; filters return fresh slices.
type Dataset []Record

// Fields derives the column set: the first record's keys in sorted order,
// followed by any keys that appear only in later records (also sorted).
// Using the union of all records keeps CSV artifacts rectangular even when
// sources return uneven field sets.
func (d Dataset) Fields() []string {
	if len(d) == 0 {
		return nil
	}

	first := make([]string, 0, len(d[0]))
	for k := range d[0] {
		first = append(first, k)
	}
	sort.Strings(first)

	seen := make(map[string]bool, len(first))
	for _, k := range first {
		seen[k] = true
	}

	var extra []string
	for _, rec := range d[1:] {
		for k := range rec {
			if !seen[k] {
				seen[k] = true
				extra = append(extra, k)
			}
		}
	}
	sort.Strings(extra)

	return append(first, extra...)
}

// FilterContains returns the subsequence of records whose field contains the
// substring, case-insensitively.
func (d Dataset) FilterContains(field, substring string) Dataset {
	out := make(Dataset, 0)
	for _, rec := range d {
		if rec.Contains(field, substring) {
			out = append(out, rec)
		}
	}
	return out
}

// FilterEquals returns the subsequence of records whose field stringifies to
// exactly the given value.
func (d Dataset) FilterEquals(field, value string) Dataset {
	out := make(Dataset, 0)
	for _, rec := range d {
		if rec.Has(field) && rec.String(field) == value {
			out = append(out, rec)
		}
	}
	return out
}
