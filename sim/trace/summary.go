package trace

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Counter is a Sink that tallies events by kind and measures how long each
// process waited between ProcessBlocked and ProcessWoken.
// It keeps O(blocked processes) state, so it can stay attached even when
// full recording is disabled.
type Counter struct {
	counts    map[Kind]int
	blockedAt map[string]int64
	waits     []float64
	totalTime int64
}

// NewCounter creates an empty Counter.
func NewCounter() *Counter {
	return &Counter{
		counts:    make(map[Kind]int),
		blockedAt: make(map[string]int64),
	}
}

// Emit records e.
func (c *Counter) Emit(e Event) {
	c.counts[e.Kind]++
	switch e.Kind {
	case ProcessBlocked:
		c.blockedAt[e.Process] = e.Clock
	case ProcessWoken:
		if at, ok := c.blockedAt[e.Process]; ok {
			c.waits = append(c.waits, float64(e.Clock-at))
			delete(c.blockedAt, e.Process)
		}
	case SimulationEnded:
		c.totalTime = e.Duration
	}
}

// Count returns how many events of kind k were seen.
func (c *Counter) Count(k Kind) int {
	return c.counts[k]
}

// TraceSummary aggregates statistics over one simulation run.
type TraceSummary struct {
	TotalTime  int64
	Counts     map[Kind]int
	HitRatio   float64 // hits / (hits + misses); 0 when no lookups happened
	BlockedCnt int     // processes that waited on the disk
	WaitMean   float64 // mean blocked-to-woken wait, in microseconds
	WaitP50    float64
	WaitP90    float64
	WaitP99    float64
	WaitMax    float64
}

// Summarize computes aggregate statistics from a Counter.
// Safe for nil or empty counters (returns zero-value fields).
func Summarize(c *Counter) *TraceSummary {
	summary := &TraceSummary{
		Counts: make(map[Kind]int),
	}
	if c == nil {
		return summary
	}
	for k, n := range c.counts {
		summary.Counts[k] = n
	}
	summary.TotalTime = c.totalTime

	lookups := c.counts[CacheHit] + c.counts[CacheMiss]
	if lookups > 0 {
		summary.HitRatio = float64(c.counts[CacheHit]) / float64(lookups)
	}

	summary.BlockedCnt = len(c.waits)
	if len(c.waits) > 0 {
		waits := append([]float64(nil), c.waits...)
		sort.Float64s(waits)
		summary.WaitMean = stat.Mean(waits, nil)
		summary.WaitP50 = stat.Quantile(0.50, stat.Empirical, waits, nil)
		summary.WaitP90 = stat.Quantile(0.90, stat.Empirical, waits, nil)
		summary.WaitP99 = stat.Quantile(0.99, stat.Empirical, waits, nil)
		summary.WaitMax = waits[len(waits)-1]
	}
	return summary
}
