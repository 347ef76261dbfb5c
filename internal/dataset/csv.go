package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// utf8BOM is prepended to CSV artifacts so spreadsheet tools detect the
// encoding (matches the utf-8-sig convention of the upstream data community).
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV persists the dataset as a comma-separated artifact: UTF-8 with
// byte-order marker, header row from Fields(), one row per record, absent
// fields rendered empty.
func WriteCSV(d Dataset, path string) error {
	if len(d) == 0 {
		return fmt.Errorf("write csv: empty dataset")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	fields := d.Fields()
	if err := w.Write(fields); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := make([]string, len(fields))
	for _, rec := range d {
		for i, field := range fields {
			row[i] = rec.String(field)
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}

// ReadCSV loads a previously persisted artifact back into a Dataset. The
// byte-order marker is stripped if present; every value comes back as a
// string.
func ReadCSV(path string) (Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	r := csv.NewReader(bytes.NewReader(data))
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("parse csv: no header row")
	}

	header := rows[0]
	out := make(Dataset, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(Record, len(header))
		for i, field := range header {
			if i < len(row) {
				rec[field] = row[i]
			}
		}
		out = append(out, rec)
	}

	return out, nil
}
