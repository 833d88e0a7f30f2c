// Package trace provides structured event recording for the disk I/O simulation.
// This package has no dependencies on sim/; it stores pure data types.
package trace

import "fmt"

// Kind identifies what happened in a single trace Event.
type Kind int

const (
	CacheHit Kind = iota
	CacheMiss
	Eviction
	Promotion
	Demotion
	OperationStarted
	OperationCompleted
	ProcessBlocked
	ProcessWoken
	QuantumTick
	SimulationEnded
)

var kindNames = [...]string{
	CacheHit:           "cache-hit",
	CacheMiss:          "cache-miss",
	Eviction:           "eviction",
	Promotion:          "promotion",
	Demotion:           "demotion",
	OperationStarted:   "operation-started",
	OperationCompleted: "operation-completed",
	ProcessBlocked:     "process-blocked",
	ProcessWoken:       "process-woken",
	QuantumTick:        "quantum-tick",
	SimulationEnded:    "simulation-ended",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Segment names the buffer cache segment an Eviction refers to.
type Segment string

const (
	SegmentNone  Segment = ""
	SegmentLeft  Segment = "left"
	SegmentRight Segment = "right"
)

// Event captures a single observable step of the simulation.
// Fields that do not apply to a Kind are left at their zero value;
// Sector is -1 when no sector is involved.
type Event struct {
	Kind     Kind
	Clock    int64   // simulated microseconds when the event was emitted
	Sector   int64   // logical sector, or -1
	Process  string  // process name for ProcessBlocked / ProcessWoken
	Segment  Segment // cache segment for Eviction
	Duration int64   // disk time for OperationStarted, total time for SimulationEnded
}

func (e Event) String() string {
	switch e.Kind {
	case CacheHit, CacheMiss, Promotion, Demotion, OperationCompleted:
		return fmt.Sprintf("[%07d] %s sector=%d", e.Clock, e.Kind, e.Sector)
	case Eviction:
		return fmt.Sprintf("[%07d] %s sector=%d segment=%s", e.Clock, e.Kind, e.Sector, e.Segment)
	case OperationStarted:
		return fmt.Sprintf("[%07d] %s sector=%d duration=%d", e.Clock, e.Kind, e.Sector, e.Duration)
	case ProcessBlocked, ProcessWoken:
		return fmt.Sprintf("[%07d] %s process=%s sector=%d", e.Clock, e.Kind, e.Process, e.Sector)
	case SimulationEnded:
		return fmt.Sprintf("[%07d] %s total=%d", e.Clock, e.Kind, e.Duration)
	default:
		return fmt.Sprintf("[%07d] %s", e.Clock, e.Kind)
	}
}
