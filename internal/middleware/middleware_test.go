package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cat-health-synth/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

type obsCall struct {
	route  string
	status int
}

type fakeObserver struct {
	calls []obsCall
}

func (f *fakeObserver) ObserveHTTP(route string, status int, _ time.Duration) {
	f.calls = append(f.calls, obsCall{route: route, status: status})
}

func newJSONLogger(buf *bytes.Buffer) logger.Logger {
	return logger.New(logger.Options{Level: logger.Debug, Format: logger.FormatJSON, Output: buf})
}

func TestAccessLog_UsesRoutePattern(t *testing.T) {
	var buf bytes.Buffer
	obs := &fakeObserver{}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(AccessLog(newJSONLogger(&buf), obs))
	r.Get("/datasets/{runID}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/datasets/abc", nil))

	if rr.Header().Get(RequestIDHeader) == "" {
		t.Fatalf("expected request id header")
	}
	if len(obs.calls) != 1 || obs.calls[0].route != "/datasets/{runID}" || obs.calls[0].status != 404 {
		t.Fatalf("unexpected observations %+v", obs.calls)
	}

	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("log line not json: %v (%s)", err, buf.String())
	}
	if line["level"] != "warn" || line["path"] != "/datasets/abc" || line["status"] != float64(404) {
		t.Fatalf("unexpected log line %v", line)
	}
}

func TestAccessLog_DefaultStatusOK(t *testing.T) {
	obs := &fakeObserver{}
	h := AccessLog(nil, obs)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	if len(obs.calls) != 1 || obs.calls[0].status != 200 || obs.calls[0].route != "unmatched" {
		t.Fatalf("unexpected observations %+v", obs.calls)
	}
}

func TestRecover_Returns500(t *testing.T) {
	var buf bytes.Buffer
	h := Recover(newJSONLogger(&buf))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/analyze", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	if !strings.Contains(buf.String(), "panic recovered") || !strings.Contains(buf.String(), "boom") {
		t.Fatalf("panic not logged: %s", buf.String())
	}
}
