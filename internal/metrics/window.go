package metrics

import (
	"sort"
	"sync"
	"time"
)

type sample struct {
	timestamp time.Time
	duration  time.Duration
}

// WindowSnapshot is a point-in-time aggregate of transform latencies, in
// microseconds.
type WindowSnapshot struct {
	Count int     `json:"count"`
	MinUs int64   `json:"min_us"`
	MaxUs int64   `json:"max_us"`
	AvgUs float64 `json:"avg_us"`
	P50Us float64 `json:"p50_us"`
	P95Us float64 `json:"p95_us"`
	P99Us float64 `json:"p99_us"`
}

// Window tracks recent transform latencies within a rolling time window.
type Window struct {
	mu      sync.Mutex
	samples []sample
	maxAge  time.Duration
}

func NewWindow(maxAge time.Duration) *Window {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &Window{
		samples: make([]sample, 0, 256),
		maxAge:  maxAge,
	}
}

func (w *Window) Record(d time.Duration) {
	if d < 0 {
		d = 0
	}
	now := time.Now()

	w.mu.Lock()
	defer w.mu.Unlock()

	w.pruneLocked(now)
	w.samples = append(w.samples, sample{timestamp: now, duration: d})
}

func (w *Window) Snapshot() WindowSnapshot {
	now := time.Now()

	w.mu.Lock()
	defer w.mu.Unlock()

	w.pruneLocked(now)
	if len(w.samples) == 0 {
		return WindowSnapshot{}
	}

	values := make([]int64, 0, len(w.samples))
	var sum int64
	for _, s := range w.samples {
		us := s.duration.Microseconds()
		values = append(values, us)
		sum += us
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	return WindowSnapshot{
		Count: len(values),
		MinUs: values[0],
		MaxUs: values[len(values)-1],
		AvgUs: float64(sum) / float64(len(values)),
		P50Us: percentile(values, 50),
		P95Us: percentile(values, 95),
		P99Us: percentile(values, 99),
	}
}

func (w *Window) pruneLocked(now time.Time) {
	cutoff := now.Add(-w.maxAge)
	keep := 0
	for _, s := range w.samples {
		if !s.timestamp.Before(cutoff) {
			w.samples[keep] = s
			keep++
		}
	}
	w.samples = w.samples[:keep]
}

// percentile interpolates linearly between the two closest ranks.
func percentile(sorted []int64, pct float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sorted[0])
	}
	if pct >= 100 {
		return float64(sorted[len(sorted)-1])
	}

	index := (float64(len(sorted)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return float64(sorted[lower])
	}
	weight := index - float64(lower)
	lo := float64(sorted[lower])
	hi := float64(sorted[upper])
	return lo + ((hi - lo) * weight)
}
