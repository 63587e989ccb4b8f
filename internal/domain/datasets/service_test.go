package datasets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cat-health-synth/internal/adapters/export/csvfile"
	"cat-health-synth/internal/domain/health"

	"github.com/go-chi/chi/v5"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	runs    map[string]Run
	records map[string][]StoredRecord
}

func newTestRepo() *testRepo {
	return &testRepo{runs: map[string]Run{}, records: map[string][]StoredRecord{}}
}

func (r *testRepo) CreateRun(ctx context.Context, run Run, recs []StoredRecord) error {
	if _, ok := r.runs[run.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.runs[run.ID] = run
	r.records[run.ID] = recs
	return nil
}

func (r *testRepo) GetRun(ctx context.Context, id string) (Run, error) {
	run, ok := r.runs[id]
	if !ok {
		return Run{}, ErrNotFound
	}
	return run, nil
}

func (r *testRepo) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	out := make([]Run, 0)
	for _, run := range r.runs {
		out = append(out, run)
	}
	return out, nil
}

func (r *testRepo) ListRecords(ctx context.Context, runID string, f RecordFilter) ([]StoredRecord, error) {
	out := make([]StoredRecord, 0)
	skipped := 0
	for _, rec := range r.records[runID] {
		if f.Status != "" && rec.Record.HealthStatus != f.Status {
			continue
		}
		if skipped < f.Offset {
			skipped++
			continue
		}
		out = append(out, rec)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

func (r *testRepo) SetExportURI(ctx context.Context, runID, uri string) error {
	run, ok := r.runs[runID]
	if !ok {
		return ErrNotFound
	}
	run.ExportURI = uri
	r.runs[runID] = run
	return nil
}

type fakeUploader struct {
	name string
	data []byte
}

func (u *fakeUploader) Upload(ctx context.Context, name, contentType string, data []byte) (string, error) {
	u.name, u.data = name, data
	return "s3://bucket/" + name, nil
}

type countRecorder struct{ total, noisy int }

func (c *countRecorder) RecordGenerated(_ string, noisy bool) {
	c.total++
	if noisy {
		c.noisy++
	}
}

var fixedNow = func() time.Time { return time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC) }

// -------------------------
// Tests
// -------------------------

func TestGenerate_PersistsRunWithCounts(t *testing.T) {
	repo := newTestRepo()
	rec := &countRecorder{}
	svc := NewService(repo, Options{Recorder: rec, Now: fixedNow})

	run, err := svc.Generate(context.Background(), GenerateInput{Records: 120, Supplement: 10, Seed: 77})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if run.Total != 130 || len(repo.records[run.ID]) != 130 {
		t.Fatalf("expected 130 records, got total=%d stored=%d", run.Total, len(repo.records[run.ID]))
	}
	if run.Seed != 77 || run.ParamsSource != "default" || !run.CreatedAt.Equal(fixedNow()) {
		t.Fatalf("unexpected run metadata %+v", run)
	}

	sum, noisy := 0, 0
	for _, st := range health.Statuses {
		sum += run.LabelCounts[st]
	}
	for i, sr := range repo.records[run.ID] {
		if sr.Seq != i {
			t.Fatalf("expected seq %d, got %d", i, sr.Seq)
		}
		if _, want := health.Score(sr.Record); want != sr.Record.HealthStatus {
			t.Fatalf("row %d: label %s differs from score %s", i, sr.Record.HealthStatus, want)
		}
		if sr.Category != sr.Record.HealthStatus {
			noisy++
		}
	}
	if sum != 130 {
		t.Fatalf("label counts should add to total, got %d", sum)
	}
	if run.LabelNoise != noisy || rec.noisy != noisy || rec.total != 130 {
		t.Fatalf("noise mismatch: run=%d recorder=%d stored=%d", run.LabelNoise, rec.noisy, noisy)
	}

	var pct float64
	for _, share := range run.Distribution() {
		pct += share.Percent
	}
	if pct < 99.999 || pct > 100.001 {
		t.Fatalf("distribution should add to 100%%, got %v", pct)
	}
}

func TestGenerate_SameSeedSameRecords(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, Options{Now: fixedNow})

	a, _ := svc.Generate(context.Background(), GenerateInput{Records: 30, Supplement: 3, Seed: 5})
	b, _ := svc.Generate(context.Background(), GenerateInput{Records: 30, Supplement: 3, Seed: 5})
	if a.ID == b.ID {
		t.Fatalf("expected distinct run ids")
	}
	ra, rb := repo.records[a.ID], repo.records[b.ID]
	for i := range ra {
		if ra[i].Record.Name != rb[i].Record.Name || ra[i].Record.Vitals != rb[i].Record.Vitals {
			t.Fatalf("row %d differs between runs with the same seed", i)
		}
	}
}

func TestGenerate_InvalidInput(t *testing.T) {
	svc := NewService(newTestRepo(), Options{})
	cases := []GenerateInput{
		{Records: -1},
		{Supplement: -2},
		{Records: MaxRecords, Supplement: 1},
	}
	for _, in := range cases {
		if _, err := svc.Generate(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%+v: expected ErrInvalidInput, got %v", in, err)
		}
	}
}

func TestGenerate_ZeroSeedIsRecorded(t *testing.T) {
	svc := NewService(newTestRepo(), Options{})
	run, err := svc.Generate(context.Background(), GenerateInput{Records: 1})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if run.Seed == 0 {
		t.Fatalf("expected an effective seed to be recorded")
	}
}

func TestListRecords_FilterAndValidation(t *testing.T) {
	svc := NewService(newTestRepo(), Options{Now: fixedNow})
	run, _ := svc.Generate(context.Background(), GenerateInput{Records: 0, Supplement: 40, Seed: 9})

	items, err := svc.ListRecords(context.Background(), run.ID, RecordFilter{Status: health.StatusUnhealthy})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != run.LabelCounts[health.StatusUnhealthy] {
		t.Fatalf("expected %d unhealthy, got %d", run.LabelCounts[health.StatusUnhealthy], len(items))
	}
	for _, it := range items {
		if it.Record.HealthStatus != health.StatusUnhealthy {
			t.Fatalf("filter leaked %s", it.Record.HealthStatus)
		}
	}

	if _, err := svc.ListRecords(context.Background(), run.ID, RecordFilter{Status: "Sick"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.ListRecords(context.Background(), "missing", RecordFilter{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestExportAndUpload(t *testing.T) {
	up := &fakeUploader{}
	svc := NewService(newTestRepo(), Options{Uploader: up, Now: fixedNow})
	run, _ := svc.Generate(context.Background(), GenerateInput{Records: 15, Supplement: 2, Seed: 3})

	var buf bytes.Buffer
	if err := svc.Export(context.Background(), run.ID, &buf); err != nil {
		t.Fatalf("export: %v", err)
	}
	recs, err := csvfile.ReadRecords(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(recs) != 17 {
		t.Fatalf("expected 17 exported rows, got %d", len(recs))
	}

	uploaded, err := svc.Upload(context.Background(), run.ID)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if uploaded.ExportURI != "s3://bucket/"+run.ID+".csv" || up.name != run.ID+".csv" {
		t.Fatalf("unexpected upload result %+v / %s", uploaded, up.name)
	}
	if !bytes.Equal(up.data, buf.Bytes()) {
		t.Fatalf("uploaded bytes differ from export")
	}
	stored, _ := svc.GetRun(context.Background(), run.ID)
	if stored.ExportURI != uploaded.ExportURI {
		t.Fatalf("export uri not persisted")
	}

	noSink := NewService(newTestRepo(), Options{})
	if _, err := noSink.Upload(context.Background(), run.ID); !errors.Is(err, ErrUploadNotConfigured) {
		t.Fatalf("expected ErrUploadNotConfigured, got %v", err)
	}
}

func TestHandlers_GenerateListExport(t *testing.T) {
	r := chi.NewRouter()
	RegisterRoutes(r, NewService(newTestRepo(), Options{Now: fixedNow}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/datasets", strings.NewReader(`{"records":20,"supplement":5,"seed":11}`)))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var run runResponse
	if err := json.Unmarshal(w.Body.Bytes(), &run); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if run.Total != 25 || len(run.Distribution) != 3 {
		t.Fatalf("unexpected run %+v", run)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/datasets/"+run.ID+"/records?limit=7&offset=2", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var recs []recordResponse
	_ = json.Unmarshal(w.Body.Bytes(), &recs)
	if len(recs) != 7 || recs[0].Seq != 2 {
		t.Fatalf("unexpected page: len=%d", len(recs))
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/datasets/"+run.ID+"/export", nil))
	if w.Code != http.StatusOK || !strings.HasPrefix(w.Body.String(), "species,name,breed") {
		t.Fatalf("unexpected export response %d", w.Code)
	}

	cases := []struct {
		method, path, body string
		want               int
	}{
		{http.MethodPost, "/datasets", "nope", http.StatusBadRequest},
		{http.MethodPost, "/datasets", `{"records":-1}`, http.StatusBadRequest},
		{http.MethodGet, "/datasets/unknown", "", http.StatusNotFound},
		{http.MethodGet, "/datasets/" + run.ID + "/records?status=sick", "", http.StatusBadRequest},
		{http.MethodGet, "/datasets/" + run.ID + "/records?limit=x", "", http.StatusBadRequest},
		{http.MethodPost, "/datasets/" + run.ID + "/upload", "", http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		w = httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body)))
		if w.Code != tc.want {
			t.Fatalf("%s %s: expected %d, got %d", tc.method, tc.path, tc.want, w.Code)
		}
	}
}
