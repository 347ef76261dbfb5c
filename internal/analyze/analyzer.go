// Package analyze computes descriptive statistics over a deputy dataset.
package analyze

import (
	"regexp"

	"github.com/ppiankov/deputes/internal/dataset"
)

// Well-known NosDéputés field names. Fields are probed defensively; a source
// that lacks one simply produces an empty section.
const (
	FieldName       = "nom"
	FieldParty      = "parti_ratt_financier"
	FieldSex        = "sexe"
	FieldAge        = "age"
	FieldProfession = "profession"
	FieldDistrict   = "nom_circo"
)

// topN caps the party, profession and department rankings.
const topN = 10

// departmentRe extracts the department code from a district name, e.g. "75"
// from "75 Paris 2e" or "971" from "971 Guadeloupe 1re".
var departmentRe = regexp.MustCompile(`\d{2,3}[A-Z]?`)

// Report is the computed statistics for one dataset.
type Report struct {
	RecordCount int
	FieldCount  int

	Parties     []dataset.ValueCount
	Sexes       []dataset.ValueCount
	Departments []dataset.ValueCount
	Professions []dataset.ValueCount

	Age    dataset.NumericSummary
	HasAge bool
}

// Analyze computes the full report. Sections whose field is absent from the
// dataset come back empty rather than failing.
func Analyze(d dataset.Dataset) Report {
	r := Report{
		RecordCount: len(d),
		FieldCount:  len(d.Fields()),
		Parties:     top(d.CountByField(FieldParty), topN),
		Sexes:       d.CountByField(FieldSex),
		Departments: top(dataset.CountValues(departmentCodes(d)), topN),
		Professions: top(d.CountByField(FieldProfession), topN),
	}

	if age, ok := d.SummarizeNumeric(FieldAge); ok {
		r.Age = age
		r.HasAge = true
	}

	return r
}

// departmentCodes collects the department code of every record whose
// district name carries one. Records without a recognizable code are
// skipped.
func departmentCodes(d dataset.Dataset) []string {
	var codes []string
	for _, rec := range d {
		if !rec.Has(FieldDistrict) {
			continue
		}
		if code := departmentRe.FindString(rec.String(FieldDistrict)); code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}

func top(counts []dataset.ValueCount, n int) []dataset.ValueCount {
	if len(counts) > n {
		return counts[:n]
	}
	return counts
}
