package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"celula/internal/adapters/http/perf"
)

// TestTimingMiddleware_RecordsEntry verifies the perf entry carries method, path and status.
func TestTimingMiddleware_RecordsEntry(t *testing.T) {
	collector := perf.NewCollector(100)
	handler := Timing(collector, time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/visualizar-membros", nil))

	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
	snap := collector.Snapshot(time.Time{}, 5)
	if snap.TotalRecorded != 1 || len(snap.SlowestPaths) != 1 || snap.SlowestPaths[0].Path != "GET /visualizar-membros" {
		t.Errorf("snapshot = %+v", snap)
	}
}

// TestTimingMiddleware_SkipsStatic verifies static assets are excluded from timing.
func TestTimingMiddleware_SkipsStatic(t *testing.T) {
	collector := perf.NewCollector(100)
	handler := Timing(collector, 0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/static/app.css", nil))

	if collector.TotalRecorded() != 0 {
		t.Errorf("TotalRecorded = %d, want 0", collector.TotalRecorded())
	}
	if rr.Header().Get(RequestIDHeader) != "" {
		t.Error("static responses should not get a request id")
	}
}

// TestTimingMiddleware_RequestID verifies ids are generated, echoed and exposed on the context.
func TestTimingMiddleware_RequestID(t *testing.T) {
	var seen string
	handler := Timing(nil, 0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))
	if seen == "" || rr.Header().Get(RequestIDHeader) != seen {
		t.Errorf("generated id = %q, header = %q", seen, rr.Header().Get(RequestIDHeader))
	}

	const incoming = "2f1c8f8e-3b0f-4d55-9a43-1d2f3c4b5a69"
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RequestIDHeader, incoming)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if seen != incoming {
		t.Errorf("incoming id not kept: %q", seen)
	}

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RequestIDHeader, "<script>")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if seen == "<script>" {
		t.Error("malformed incoming id should be replaced")
	}
}

// TestTimingMiddleware_DefaultStatus verifies an untouched writer is recorded as 200.
func TestTimingMiddleware_DefaultStatus(t *testing.T) {
	collector := perf.NewCollector(10)
	handler := Timing(collector, 0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/login", nil))

	snap := collector.Snapshot(time.Time{}, 1)
	if snap.TotalRecorded != 1 {
		t.Fatalf("TotalRecorded = %d", snap.TotalRecorded)
	}
}

// BenchmarkTimingMiddleware measures per-request overhead.
func BenchmarkTimingMiddleware(b *testing.B) {
	handler := Timing(perf.NewCollector(perf.DefaultRingSize), 0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req := httptest.NewRequest("GET", "/visualizar-membros", nil)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}
}
