package pipeline

import (
	"sort"
	"sync"
	"time"
)

type sample struct {
	timestamp  time.Time
	durationMs int64
}

// StatsSnapshot is a point-in-time aggregate of document processing
// latencies and output counts.
type StatsSnapshot struct {
	Count              int     `json:"count"`
	MinMs              int64   `json:"min_ms"`
	MaxMs              int64   `json:"max_ms"`
	AvgMs              float64 `json:"avg_ms"`
	P50Ms              float64 `json:"p50_ms"`
	P95Ms              float64 `json:"p95_ms"`
	P99Ms              float64 `json:"p99_ms"`
	DocumentsProcessed int64   `json:"documents_processed"`
	SegmentsProduced   int64   `json:"segments_produced"`
	ChunksProduced     int64   `json:"chunks_produced"`
}

// ProcessingStats tracks recent per-document latencies within a rolling
// window, plus lifetime output counters.
type ProcessingStats struct {
	mu      sync.Mutex
	samples []sample
	maxAge  time.Duration

	documents int64
	segments  int64
	chunks    int64
}

func NewProcessingStats(maxAge time.Duration) *ProcessingStats {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &ProcessingStats{
		samples: make([]sample, 0, 256),
		maxAge:  maxAge,
	}
}

// Record adds one completed document's latency and output counts.
func (s *ProcessingStats) Record(d time.Duration, segments, chunks int) {
	durationMs := d.Milliseconds()
	if durationMs < 0 {
		durationMs = 0
	}
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	s.samples = append(s.samples, sample{timestamp: now, durationMs: durationMs})
	s.documents++
	s.segments += int64(segments)
	s.chunks += int64(chunks)
}

func (s *ProcessingStats) Snapshot() StatsSnapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	snap := StatsSnapshot{
		DocumentsProcessed: s.documents,
		SegmentsProduced:   s.segments,
		ChunksProduced:     s.chunks,
	}
	if len(s.samples) == 0 {
		return snap
	}

	values := make([]int64, 0, len(s.samples))
	var sum int64
	for _, sm := range s.samples {
		values = append(values, sm.durationMs)
		sum += sm.durationMs
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	snap.Count = len(values)
	snap.MinMs = values[0]
	snap.MaxMs = values[len(values)-1]
	snap.AvgMs = float64(sum) / float64(len(values))
	snap.P50Ms = percentile(values, 50)
	snap.P95Ms = percentile(values, 95)
	snap.P99Ms = percentile(values, 99)
	return snap
}

func (s *ProcessingStats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.maxAge)
	writeIdx := 0
	for _, sm := range s.samples {
		if !sm.timestamp.Before(cutoff) {
			s.samples[writeIdx] = sm
			writeIdx++
		}
	}
	s.samples = s.samples[:writeIdx]
}

func percentile(sortedValues []int64, pct float64) float64 {
	if len(sortedValues) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sortedValues[0])
	}
	if pct >= 100 {
		return float64(sortedValues[len(sortedValues)-1])
	}

	index := (float64(len(sortedValues)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sortedValues) {
		return float64(sortedValues[lower])
	}
	weight := index - float64(lower)
	lo := float64(sortedValues[lower])
	hi := float64(sortedValues[upper])
	return lo + ((hi - lo) * weight)
}
