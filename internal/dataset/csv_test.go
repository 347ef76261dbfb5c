package dataset

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestCSV_RoundTrip(t *testing.T) {
	d := Dataset{
		{"nom": "Emmanuel Macron", "parti_ratt_financier": "Renaissance", "age": float64(45)},
		{"nom": "Jean Dupont", "parti_ratt_financier": "LR", "age": float64(61)},
		{"nom": "Marie Martin", "parti_ratt_financier": "PS", "age": float64(52)},
	}

	path := filepath.Join(t.TempDir(), "deputes.csv")
	if err := WriteCSV(d, path); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	back, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(back) != 3 {
		t.Errorf("Expected 3 records, got %d", len(back))
	}

	gotFields := back.Fields()
	wantFields := d.Fields()
	sort.Strings(gotFields)
	sort.Strings(wantFields)
	if len(gotFields) != len(wantFields) {
		t.Fatalf("Expected %d fields, got %d", len(wantFields), len(gotFields))
	}
	for i := range wantFields {
		if gotFields[i] != wantFields[i] {
			t.Errorf("Field mismatch at %d: %s vs %s", i, gotFields[i], wantFields[i])
		}
	}

	if back[0].String("nom") != "Emmanuel Macron" {
		t.Errorf("Unexpected first record: %v", back[0])
	}
}

func TestWriteCSV_BOM(t *testing.T) {
	d := Dataset{{"nom": "A"}}
	path := filepath.Join(t.TempDir(), "bom.csv")
	if err := WriteCSV(d, path); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) {
		t.Error("Expected UTF-8 BOM prefix")
	}
}

func TestWriteCSV_MissingFieldsRenderEmpty(t *testing.T) {
	d := Dataset{
		{"nom": "A", "age": float64(30)},
		{"nom": "B"},
	}

	path := filepath.Join(t.TempDir(), "uneven.csv")
	if err := WriteCSV(d, path); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	back, err := ReadCSV(path)
	if err != nil {
		t.Fatal(err)
	}
	if back[1].String("age") != "" {
		t.Errorf("Expected empty age for second record, got %q", back[1].String("age"))
	}
}

func TestWriteCSV_EmptyDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := WriteCSV(Dataset{}, path); err == nil {
		t.Error("Expected error for empty dataset")
	}
}

func TestReadCSV_MissingFile(t *testing.T) {
	if _, err := ReadCSV(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Error("Expected error for missing file")
	}
}
