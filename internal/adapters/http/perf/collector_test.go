package perf

import (
	"sync"
	"testing"
	"time"
)

// TestCollector_RecordAndSnapshot verifies samples of each kind land in their own list.
func TestCollector_RecordAndSnapshot(t *testing.T) {
	c := NewCollector(100)
	now := time.Now()

	c.Record(Entry{Kind: KindRequest, Path: "GET /visualizar-membros", StatusCode: 200, DurationMs: 10, Timestamp: now})
	c.Record(Entry{Kind: KindRequest, Path: "GET /visualizar-membros", StatusCode: 200, DurationMs: 30, Timestamp: now})
	c.Record(Entry{Kind: KindQuery, Path: "memberStore.List", DurationMs: 5, Timestamp: now})
	c.Record(Entry{Kind: KindUpstream, Path: "GET membros", StatusCode: 200, DurationMs: 8, Timestamp: now})

	snap := c.Snapshot(now.Add(-time.Minute), 10)
	if snap.TotalRecorded != 4 {
		t.Errorf("TotalRecorded = %d, want 4", snap.TotalRecorded)
	}
	if len(snap.SlowestPaths) != 1 || snap.SlowestPaths[0].AvgMs != 20 {
		t.Fatalf("SlowestPaths = %+v, want one path averaging 20", snap.SlowestPaths)
	}
	if len(snap.SlowestQueries) != 1 {
		t.Errorf("SlowestQueries len = %d, want 1", len(snap.SlowestQueries))
	}
	if len(snap.SlowestUpstream) != 1 || snap.SlowestUpstream[0].Path != "GET membros" {
		t.Errorf("SlowestUpstream = %+v", snap.SlowestUpstream)
	}
}

// TestCollector_UpstreamErrors verifies transport failures and 5xx replies are counted.
func TestCollector_UpstreamErrors(t *testing.T) {
	c := NewCollector(10)
	now := time.Now()
	c.Record(Entry{Kind: KindUpstream, Path: "DELETE membros", StatusCode: 0, DurationMs: 1, Timestamp: now})
	c.Record(Entry{Kind: KindUpstream, Path: "POST relatorios", StatusCode: 502, DurationMs: 1, Timestamp: now})
	c.Record(Entry{Kind: KindUpstream, Path: "POST relatorios", StatusCode: 422, DurationMs: 1, Timestamp: now})

	snap := c.Snapshot(now.Add(-time.Minute), 10)
	if snap.UpstreamErrors != 2 {
		t.Errorf("UpstreamErrors = %d, want 2", snap.UpstreamErrors)
	}
}

// TestCollector_RingOverwrites verifies the oldest entries are overwritten when full.
func TestCollector_RingOverwrites(t *testing.T) {
	c := NewCollector(3)
	now := time.Now()
	for i := 0; i < 5; i++ {
		c.Record(Entry{Kind: KindRequest, Path: "GET /x", DurationMs: float64(i), Timestamp: now})
	}
	if c.TotalRecorded() != 5 {
		t.Errorf("TotalRecorded = %d, want 5", c.TotalRecorded())
	}
	snap := c.Snapshot(now.Add(-time.Minute), 10)
	if len(snap.SlowestPaths) != 1 || snap.SlowestPaths[0].Count != 3 {
		t.Errorf("SlowestPaths = %+v, want one path with 3 samples", snap.SlowestPaths)
	}
}

// TestCollector_Percentiles verifies P50/P95/P99 interpolation.
func TestCollector_Percentiles(t *testing.T) {
	c := NewCollector(200)
	now := time.Now()
	for i := 1; i <= 100; i++ {
		c.Record(Entry{Kind: KindRequest, Path: "GET /p", DurationMs: float64(i), Timestamp: now})
	}
	snap := c.Snapshot(now.Add(-time.Minute), 10)
	if snap.RequestP50Ms < 49 || snap.RequestP50Ms > 51 {
		t.Errorf("P50 = %v, want ~50", snap.RequestP50Ms)
	}
	if snap.RequestP95Ms < 94 || snap.RequestP95Ms > 96 {
		t.Errorf("P95 = %v, want ~95", snap.RequestP95Ms)
	}
	if snap.RequestP99Ms < 98 || snap.RequestP99Ms > 100 {
		t.Errorf("P99 = %v, want ~99", snap.RequestP99Ms)
	}
}

// TestCollector_SnapshotSince verifies entries older than since are skipped.
func TestCollector_SnapshotSince(t *testing.T) {
	c := NewCollector(100)
	c.Record(Entry{Kind: KindRequest, Path: "GET /old", DurationMs: 100, Timestamp: time.Now().Add(-2 * time.Hour)})
	c.Record(Entry{Kind: KindRequest, Path: "GET /new", DurationMs: 10, Timestamp: time.Now()})

	snap := c.Snapshot(time.Now().Add(-time.Hour), 10)
	if len(snap.SlowestPaths) != 1 || snap.SlowestPaths[0].Path != "GET /new" {
		t.Errorf("SlowestPaths = %+v, want only GET /new", snap.SlowestPaths)
	}
}

// TestCollector_NilRecord verifies a nil collector drops entries.
func TestCollector_NilRecord(t *testing.T) {
	var c *Collector
	c.Record(Entry{Kind: KindUpstream, Path: "GET membros", Timestamp: time.Now()})
}

// TestCollector_ConcurrentWrites verifies Record is goroutine safe.
func TestCollector_ConcurrentWrites(t *testing.T) {
	c := NewCollector(1000)
	now := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				c.Record(Entry{Kind: KindUpstream, Path: "GET membros", DurationMs: float64(n), Timestamp: now})
			}
		}(i)
	}
	wg.Wait()
	if c.TotalRecorded() != 1000 {
		t.Errorf("TotalRecorded = %d, want 1000", c.TotalRecorded())
	}
}

// BenchmarkCollectorRecord measures per-call cost of Record.
func BenchmarkCollectorRecord(b *testing.B) {
	c := NewCollector(DefaultRingSize)
	e := Entry{Kind: KindUpstream, Path: "GET membros", StatusCode: 200, DurationMs: 1.5, Timestamp: time.Now()}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		c.Record(e)
	}
}
