package dataset

import (
	"sort"
)

// ValueCount pairs a categorical value with how many records carry it.
type ValueCount struct {
	Value   string
	Count   int
	Percent float64
}

// CountByField tallies the distinct stringified values of a field, most
// frequent first (ties broken alphabetically for stable output). Records
// missing the field are skipped.
func (d Dataset) CountByField(field string) []ValueCount {
	counts := make(map[string]int)
	total := 0
	for _, rec := range d {
		if !rec.Has(field) {
			continue
		}
		counts[rec.String(field)]++
		total++
	}
	if total == 0 {
		return nil
	}

	out := make([]ValueCount, 0, len(counts))
	for v, c := range counts {
		out = append(out, ValueCount{
			Value:   v,
			Count:   c,
			Percent: float64(c) / float64(len(d)) * 100,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})

	return out
}

// CountValues tallies a plain value list, most frequent first (ties broken
// alphabetically). Percentages are relative to the list length.
func CountValues(values []string) []ValueCount {
	if len(values) == 0 {
		return nil
	}

	counts := make(map[string]int)
	for _, v := range values {
		counts[v]++
	}

	out := make([]ValueCount, 0, len(counts))
	for v, c := range counts {
		out = append(out, ValueCount{
			Value:   v,
			Count:   c,
			Percent: float64(c) / float64(len(values)) * 100,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})

	return out
}

// NumericSummary holds descriptive statistics for a numeric field.
type NumericSummary struct {
	Count  int
	Mean   float64
	Median float64
	Min    float64
	Max    float64
}

// SummarizeNumeric computes mean/median/min/max over the records where the
// field parses as a number. Returns ok=false when no record does.
func (d Dataset) SummarizeNumeric(field string) (NumericSummary, bool) {
	var values []float64
	for _, rec := range d {
		if f, ok := rec.Float(field); ok {
			values = append(values, f)
		}
	}
	if len(values) == 0 {
		return NumericSummary{}, false
	}

	sort.Float64s(values)

	sum := 0.0
	for _, v := range values {
		sum += v
	}

	median := values[len(values)/2]
	if len(values)%2 == 0 {
		median = (values[len(values)/2-1] + values[len(values)/2]) / 2
	}

	return NumericSummary{
		Count:  len(values),
		Mean:   sum / float64(len(values)),
		Median: median,
		Min:    values[0],
		Max:    values[len(values)-1],
	}, true
}
