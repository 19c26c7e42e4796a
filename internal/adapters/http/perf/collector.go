// Package perf keeps a fixed-size ring of timing samples for inbound
// requests, database queries and outbound API calls.
package perf

import (
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultRingSize is the default capacity of the ring buffer.
const DefaultRingSize = 10000

// EntryKind says what a sample timed.
type EntryKind uint8

const (
	// KindRequest is an inbound HTTP request.
	KindRequest EntryKind = iota
	// KindQuery is a database call.
	KindQuery
	// KindUpstream is a call made to the backend API.
	KindUpstream
)

// String returns the kind name used in log events.
func (k EntryKind) String() string {
	switch k {
	case KindRequest:
		return "request"
	case KindQuery:
		return "query"
	case KindUpstream:
		return "upstream"
	}
	return "unknown"
}

// Entry is a single timing sample.
type Entry struct {
	Kind       EntryKind
	Path       string // "GET /visualizar-membros", "memberStore.List" or "GET membros"
	StatusCode int    // 0 for queries and transport failures
	DurationMs float64
	Timestamp  time.Time
}

// Collector is a ring buffer of entries. When full the oldest entry is
// overwritten. Aggregation only happens in Snapshot.
type Collector struct {
	mu      sync.Mutex
	entries []Entry
	pos     int
	count   atomic.Int64
}

// NewCollector creates a collector holding up to size entries.
// A non-positive size selects DefaultRingSize.
func NewCollector(size int) *Collector {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &Collector{entries: make([]Entry, size)}
}

// Record stores e, overwriting the oldest entry when the ring is full.
// A nil collector drops the entry.
func (c *Collector) Record(e Entry) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.entries[c.pos] = e
	c.pos = (c.pos + 1) % len(c.entries)
	c.mu.Unlock()
	c.count.Add(1)
}

// TotalRecorded returns how many entries were ever recorded.
func (c *Collector) TotalRecorded() int64 {
	return c.count.Load()
}

// Snapshot holds aggregated timing computed on read.
type Snapshot struct {
	TotalRecorded   int64
	RequestP50Ms    float64
	RequestP95Ms    float64
	RequestP99Ms    float64
	UpstreamP95Ms   float64
	UpstreamErrors  int
	SlowestPaths    []PathStat
	SlowestQueries  []PathStat
	SlowestUpstream []PathStat
}

// PathStat aggregates timing for one path, store method or upstream call.
type PathStat struct {
	Path    string
	AvgMs   float64
	MaxMs   float64
	Count   int
	TotalMs float64
}

// Snapshot aggregates entries recorded at or after since and keeps the topN
// slowest paths of each kind.
// POST: the ring itself is unchanged
func (c *Collector) Snapshot(since time.Time, topN int) Snapshot {
	c.mu.Lock()
	buf := make([]Entry, len(c.entries))
	copy(buf, c.entries)
	c.mu.Unlock()

	stats := map[EntryKind]map[string]*PathStat{
		KindRequest:  {},
		KindQuery:    {},
		KindUpstream: {},
	}
	durations := map[EntryKind][]float64{}
	upstreamErrors := 0

	for _, e := range buf {
		if e.Timestamp.IsZero() || e.Timestamp.Before(since) {
			continue
		}
		byPath, ok := stats[e.Kind]
		if !ok {
			continue
		}
		s := byPath[e.Path]
		if s == nil {
			s = &PathStat{Path: e.Path}
			byPath[e.Path] = s
		}
		s.Count++
		s.TotalMs += e.DurationMs
		s.MaxMs = math.Max(s.MaxMs, e.DurationMs)
		durations[e.Kind] = append(durations[e.Kind], e.DurationMs)
		if e.Kind == KindUpstream && (e.StatusCode == 0 || e.StatusCode >= 500) {
			upstreamErrors++
		}
	}

	snap := Snapshot{
		TotalRecorded:   c.TotalRecorded(),
		UpstreamErrors:  upstreamErrors,
		SlowestPaths:    topByAvg(stats[KindRequest], topN),
		SlowestQueries:  topByAvg(stats[KindQuery], topN),
		SlowestUpstream: topByAvg(stats[KindUpstream], topN),
	}
	if req := durations[KindRequest]; len(req) > 0 {
		sort.Float64s(req)
		snap.RequestP50Ms = percentile(req, 50)
		snap.RequestP95Ms = percentile(req, 95)
		snap.RequestP99Ms = percentile(req, 99)
	}
	if up := durations[KindUpstream]; len(up) > 0 {
		sort.Float64s(up)
		snap.UpstreamP95Ms = percentile(up, 95)
	}
	return snap
}

// percentile interpolates the p-th percentile of a sorted slice.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := (p / 100) * float64(len(sorted)-1)
	lower := int(math.Floor(idx))
	upper := int(math.Ceil(idx))
	if lower == upper || upper >= len(sorted) {
		return sorted[lower]
	}
	frac := idx - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac
}

// topByAvg returns up to n stats ordered by descending average.
func topByAvg(stats map[string]*PathStat, n int) []PathStat {
	list := make([]PathStat, 0, len(stats))
	for _, s := range stats {
		s.AvgMs = s.TotalMs / float64(s.Count)
		list = append(list, *s)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].AvgMs == list[j].AvgMs {
			return list[i].Path < list[j].Path
		}
		return list[i].AvgMs > list[j].AvgMs
	})
	if len(list) > n {
		list = list[:n]
	}
	return list
}
