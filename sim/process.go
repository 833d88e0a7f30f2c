package sim

import (
	"fmt"
	"strings"
)

// Operation is the single syscall a simulated process issues.
type Operation int

const (
	OpRead Operation = iota
	OpWrite
)

func (o Operation) String() string {
	switch o {
	case OpRead:
		return "read"
	case OpWrite:
		return "write"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

// ParseOperation maps "read" or "r" and "write" or "w" (any case) to an Operation.
func ParseOperation(s string) (Operation, error) {
	switch strings.ToLower(s) {
	case "read", "r":
		return OpRead, nil
	case "write", "w":
		return OpWrite, nil
	default:
		return 0, fmt.Errorf("unknown operation %q; valid: read (r), write (w)", s)
	}
}

// ProcessState is the lifecycle position of a Process.
type ProcessState int

const (
	StateReady ProcessState = iota
	StateBlocked
	StateDone
)

func (s ProcessState) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateBlocked:
		return "blocked"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Process models a single workload entry: one named process issuing one
// read or write against one sector. Lifecycle: ready → (blocked →) done.
// Only the Scheduler changes State.
type Process struct {
	Name   string
	Op     Operation
	Sector int64
	State  ProcessState

	DispatchedAt int64 // clock when the syscall was issued; -1 until dispatched
	CompletedAt  int64 // clock when the process reached StateDone; -1 until then
}

// NewProcess creates a ready process.
func NewProcess(name string, op Operation, sector int64) *Process {
	return &Process{
		Name:         name,
		Op:           op,
		Sector:       sector,
		State:        StateReady,
		DispatchedAt: -1,
		CompletedAt:  -1,
	}
}

// Latency returns CompletedAt - DispatchedAt, or -1 if the process has not finished.
func (p *Process) Latency() int64 {
	if p.State != StateDone || p.DispatchedAt < 0 {
		return -1
	}
	return p.CompletedAt - p.DispatchedAt
}

func (p *Process) String() string {
	return fmt.Sprintf("%s(%s %d, %s)", p.Name, p.Op, p.Sector, p.State)
}
