package aggregate

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/deputes/internal/dataset"
	"github.com/ppiankov/deputes/internal/fetch"
	"github.com/ppiankov/deputes/internal/model"
	"github.com/ppiankov/deputes/internal/source"
)

// stubFetcher returns canned results per source name.
type stubFetcher struct {
	datasets map[string]dataset.Dataset
	errs     map[string]error
	calls    []string
}

func (s *stubFetcher) FetchSource(_ context.Context, src source.Source) (dataset.Dataset, error) {
	s.calls = append(s.calls, src.Name)
	if err, ok := s.errs[src.Name]; ok {
		return nil, err
	}
	return s.datasets[src.Name], nil
}

// recordingReporter captures diagnostics per level.
type recordingReporter struct {
	infos []string
	warns []string
}

func (r *recordingReporter) Infof(format string, args ...interface{}) {
	r.infos = append(r.infos, fmt.Sprintf(format, args...))
}

func (r *recordingReporter) Warnf(format string, args ...interface{}) {
	r.warns = append(r.warns, fmt.Sprintf(format, args...))
}

func testRegistry() source.Registry {
	return source.Registry{
		{Name: "a", URL: "http://a", CollectionKey: "deputes", Artifact: "a.csv"},
		{Name: "b", URL: "http://b", CollectionKey: "deputes", Artifact: "b.csv"},
	}
}

func TestFetchAll_FailureIsolation(t *testing.T) {
	f := &stubFetcher{
		datasets: map[string]dataset.Dataset{
			"b": {{"nom": "X"}, {"nom": "Y"}},
		},
		errs: map[string]error{
			"a": fmt.Errorf("boom"),
		},
	}

	dir := t.TempDir()
	agg := New(testRegistry(), f, dir, nil)
	results := agg.FetchAll(context.Background())

	if results["a"].Present() {
		t.Error("Expected source a to be absent")
	}
	if !results["b"].Present() {
		t.Fatal("Expected source b to be present despite a's failure")
	}
	if len(results["b"].Dataset) != 2 {
		t.Errorf("Expected 2 records from b, got %d", len(results["b"].Dataset))
	}

	// Every source was attempted, in declared order.
	if len(f.calls) != 2 || f.calls[0] != "a" || f.calls[1] != "b" {
		t.Errorf("Unexpected attempt order: %v", f.calls)
	}

	// b's artifact was persisted, a's was not.
	if _, err := os.Stat(filepath.Join(dir, "b.csv")); err != nil {
		t.Errorf("Expected b.csv to exist: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "a.csv")); !os.IsNotExist(err) {
		t.Error("Expected a.csv to not exist")
	}
}

func TestFetch_SingleSource(t *testing.T) {
	f := &stubFetcher{
		datasets: map[string]dataset.Dataset{"b": {{"nom": "X"}}},
	}
	agg := New(testRegistry(), f, t.TempDir(), nil)

	r := agg.Fetch(context.Background(), "b")
	if !r.Present() || len(r.Dataset) != 1 {
		t.Errorf("Expected b present with 1 record, got %+v", r)
	}

	if r := agg.Fetch(context.Background(), "nope"); r.Present() || r.Err == nil {
		t.Errorf("Expected unknown source to be absent, got %+v", r)
	}
}

// A registry narrowed to one source still persists that source's artifact,
// the way the download command's --source flag runs it.
func TestFetchAll_SingleEntryRegistry(t *testing.T) {
	f := &stubFetcher{
		datasets: map[string]dataset.Dataset{"b": {{"nom": "X"}}},
	}

	full := testRegistry()
	src, ok := full.Find("b")
	if !ok {
		t.Fatal("Expected b in test registry")
	}

	dir := t.TempDir()
	agg := New(source.Registry{src}, f, dir, nil)
	results := agg.FetchAll(context.Background())

	if len(f.calls) != 1 || f.calls[0] != "b" {
		t.Errorf("Expected only b attempted, got %v", f.calls)
	}
	if _, err := os.Stat(filepath.Join(dir, "b.csv")); err != nil {
		t.Errorf("Expected b.csv to exist: %v", err)
	}

	if _, ok := agg.WriteUnified(results); !ok {
		t.Error("Expected unified artifact from the narrowed registry")
	}
}

func TestFetchAll_PersistenceFailureKeepsResult(t *testing.T) {
	f := &stubFetcher{
		datasets: map[string]dataset.Dataset{
			"a": {{"nom": "X"}},
			"b": {{"nom": "Y"}},
		},
	}

	// Unwritable output dir: a regular file where the dir should be.
	dir := filepath.Join(t.TempDir(), "blocked")
	if err := os.WriteFile(dir, []byte("file"), 0644); err != nil {
		t.Fatal(err)
	}

	agg := New(testRegistry(), f, filepath.Join(dir, "sub"), nil)
	results := agg.FetchAll(context.Background())

	if !results["a"].Present() || !results["b"].Present() {
		t.Error("Expected persistence failure to not invalidate in-memory results")
	}
}

func TestFetchAll_EmptyRoster(t *testing.T) {
	f := &stubFetcher{
		datasets: map[string]dataset.Dataset{
			"a": {},
			"b": {{"nom": "X"}},
		},
	}

	dir := t.TempDir()
	rep := &recordingReporter{}
	agg := New(testRegistry(), f, dir, rep)
	results := agg.FetchAll(context.Background())

	// An empty collection is a present result, it is just not persisted.
	if !results["a"].Present() {
		t.Error("Expected empty source a to be present")
	}
	if _, err := os.Stat(filepath.Join(dir, "a.csv")); !os.IsNotExist(err) {
		t.Error("Expected no artifact for the empty roster")
	}
	if len(rep.warns) != 0 {
		t.Errorf("Expected no warnings for an empty roster, got %v", rep.warns)
	}

	skipped := false
	for _, line := range rep.infos {
		if strings.Contains(line, "artifact skipped") {
			skipped = true
		}
	}
	if !skipped {
		t.Errorf("Expected an informational skip line, got %v", rep.infos)
	}
}

func TestWriteUnified_EmptyPrimary(t *testing.T) {
	dir := t.TempDir()
	rep := &recordingReporter{}
	agg := New(testRegistry(), &stubFetcher{}, dir, rep)

	results := Results{"a": {Dataset: dataset.Dataset{}}}
	if _, ok := agg.WriteUnified(results); ok {
		t.Error("Expected no unified artifact for an empty primary")
	}
	if _, err := os.Stat(filepath.Join(dir, UnifiedArtifact)); !os.IsNotExist(err) {
		t.Error("Expected unified artifact to not be written")
	}
	if len(rep.warns) != 0 {
		t.Errorf("Expected no warnings, got %v", rep.warns)
	}
}

func TestSelectPrimary_PriorityOrder(t *testing.T) {
	agg := New(testRegistry(), &stubFetcher{}, t.TempDir(), nil)

	bData := dataset.Dataset{{"nom": "B"}}
	results := Results{
		"a": {Err: fmt.Errorf("down")},
		"b": {Dataset: bData},
	}

	d, name, ok := agg.SelectPrimary(results)
	if !ok || name != "b" {
		t.Fatalf("Expected b selected, got (%s, %v)", name, ok)
	}
	if len(d) != 1 || d[0].String("nom") != "B" {
		t.Errorf("Expected b's dataset, got %v", d)
	}

	// With a present, it wins over b.
	results["a"] = SourceResult{Dataset: dataset.Dataset{{"nom": "A"}}}
	d, name, ok = agg.SelectPrimary(results)
	if !ok || name != "a" || d[0].String("nom") != "A" {
		t.Errorf("Expected a selected, got (%s, %v, %v)", name, ok, d)
	}
}

func TestSelectPrimary_AllAbsent(t *testing.T) {
	agg := New(testRegistry(), &stubFetcher{}, t.TempDir(), nil)
	results := Results{
		"a": {Err: fmt.Errorf("down")},
		"b": {Err: fmt.Errorf("down")},
	}
	if _, _, ok := agg.SelectPrimary(results); ok {
		t.Error("Expected no primary when all sources absent")
	}
}

func TestWriteUnified_NoSource(t *testing.T) {
	dir := t.TempDir()
	agg := New(testRegistry(), &stubFetcher{}, dir, nil)

	if _, ok := agg.WriteUnified(Results{}); ok {
		t.Error("Expected no unified artifact without any success")
	}
	if _, err := os.Stat(filepath.Join(dir, UnifiedArtifact)); !os.IsNotExist(err) {
		t.Error("Expected unified artifact to not be written")
	}
}

func TestSummarize(t *testing.T) {
	agg := New(testRegistry(), &stubFetcher{}, t.TempDir(), nil)

	results := Results{
		"a": {Err: fmt.Errorf("down")},
		"b": {Dataset: dataset.Dataset{
			{"nom": "X", "parti_ratt_financier": "LR", "age": float64(50), "sexe": "H", "profession": "Avocat", "nom_circo": "Paris"},
		}},
	}

	s := agg.Summarize(results)
	if len(s.Sources) != 2 {
		t.Fatalf("Expected 2 source summaries, got %d", len(s.Sources))
	}
	if s.Sources[0].Name != "a" || s.Sources[0].Present {
		t.Errorf("Expected a absent first, got %+v", s.Sources[0])
	}
	if !s.Sources[1].Present || s.Sources[1].RecordCount != 1 {
		t.Errorf("Expected b present with 1 record, got %+v", s.Sources[1])
	}
	if s.Sources[1].FieldCount != 6 {
		t.Errorf("Expected 6 fields, got %d", s.Sources[1].FieldCount)
	}
	if len(s.Sources[1].FieldSample) != 5 {
		t.Errorf("Expected field sample capped at 5, got %d", len(s.Sources[1].FieldSample))
	}
}

// End to end: one failing endpoint, one endpoint with 200 wrapped records.
func TestAggregator_EndToEnd(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer failing.Close()

	working := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `{"deputes": [`)
		for i := 0; i < 200; i++ {
			if i > 0 {
				_, _ = fmt.Fprint(w, ",")
			}
			_, _ = fmt.Fprintf(w, `{"depute": {"nom": "Depute %d", "age": %d}}`, i, 25+i%50)
		}
		_, _ = fmt.Fprint(w, `]}`)
	}))
	defer working.Close()

	registry := source.Registry{
		{Name: "sourceA", URL: failing.URL, CollectionKey: "deputes", RecordKey: "depute", Artifact: "a.csv"},
		{Name: "sourceB", URL: working.URL, CollectionKey: "deputes", RecordKey: "depute", Artifact: "b.csv"},
	}

	cfg := model.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "deputes-test", MaxBodyBytes: 1 << 20}
	dir := t.TempDir()
	agg := New(registry, fetch.NewFetcher(cfg, nil, 0), dir, nil)

	results := agg.FetchAll(context.Background())
	if results["sourceA"].Present() {
		t.Error("Expected sourceA absent")
	}
	if len(results["sourceB"].Dataset) != 200 {
		t.Fatalf("Expected 200 records from sourceB, got %d", len(results["sourceB"].Dataset))
	}

	d, name, ok := agg.SelectPrimary(results)
	if !ok || name != "sourceB" || len(d) != 200 {
		t.Fatalf("Expected sourceB primary with 200 records, got (%s, %v, %d)", name, ok, len(d))
	}

	path, ok := agg.WriteUnified(results)
	if !ok {
		t.Fatal("Expected unified artifact")
	}
	back, err := dataset.ReadCSV(path)
	if err != nil {
		t.Fatalf("Expected readable unified artifact, got %v", err)
	}
	if len(back) != 200 {
		t.Errorf("Expected 200 rows in unified artifact, got %d", len(back))
	}
}
