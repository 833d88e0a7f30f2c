package sim

import (
	"fmt"
	"io"
	"sort"

	"github.com/inference-sim/disk-sim/sim/trace"
)

// Report is the outcome of one simulation run.
type Report struct {
	Strategy     Strategy
	TotalTime    int64 // simulated microseconds until the last process finished and the device went idle
	ParkTime     int64 // head rewind cost paid after the run; not part of TotalTime
	Truncated    bool  // the horizon stopped the run early
	SeekDistance int64 // tracks crossed by the head
	CacheLeft    []int64
	CacheRight   []int64
	Processes    []*Process
	Summary      *trace.TraceSummary
}

// Completed returns the number of processes that reached StateDone.
func (r *Report) Completed() int {
	n := 0
	for _, p := range r.Processes {
		if p.State == StateDone {
			n++
		}
	}
	return n
}

// Print writes a human-readable report to w.
func (r *Report) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Simulation Report ===")
	fmt.Fprintf(w, "Strategy             : %s\n", r.Strategy)
	fmt.Fprintf(w, "Total Time           : %d µs\n", r.TotalTime)
	if r.Truncated {
		fmt.Fprintln(w, "Truncated            : horizon reached before completion")
	}
	fmt.Fprintf(w, "Completed Processes  : %d/%d\n", r.Completed(), len(r.Processes))
	fmt.Fprintf(w, "Seek Distance        : %d tracks\n", r.SeekDistance)
	fmt.Fprintf(w, "Head Park Time       : %d µs\n", r.ParkTime)
	fmt.Fprintf(w, "Cache After Flush    : left=%v right=%v\n", r.CacheLeft, r.CacheRight)
	if s := r.Summary; s != nil {
		fmt.Fprintf(w, "Cache Hit Ratio      : %.2f (%d hits, %d misses)\n",
			s.HitRatio, s.Counts[trace.CacheHit], s.Counts[trace.CacheMiss])
		fmt.Fprintf(w, "Evictions            : %d\n", s.Counts[trace.Eviction])
		fmt.Fprintf(w, "Promotions/Demotions : %d/%d\n", s.Counts[trace.Promotion], s.Counts[trace.Demotion])
		fmt.Fprintf(w, "Disk Operations      : %d\n", s.Counts[trace.OperationCompleted])
		if s.BlockedCnt > 0 {
			fmt.Fprintf(w, "Disk Wait (µs)       : mean=%.2f p50=%.0f p90=%.0f p99=%.0f max=%.0f\n",
				s.WaitMean, s.WaitP50, s.WaitP90, s.WaitP99, s.WaitMax)
		}
	}

	procs := append([]*Process(nil), r.Processes...)
	sort.SliceStable(procs, func(i, j int) bool { return procs[i].CompletedAt < procs[j].CompletedAt })
	fmt.Fprintln(w, "--- Processes (by completion) ---")
	for _, p := range procs {
		fmt.Fprintf(w, "%-8s %-5s sector=%-6d dispatched=%-7d completed=%-7d latency=%d\n",
			p.Name, p.Op, p.Sector, p.DispatchedAt, p.CompletedAt, p.Latency())
	}
}
