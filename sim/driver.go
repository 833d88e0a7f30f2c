package sim

import (
	"fmt"
	"strings"

	"github.com/inference-sim/disk-sim/sim/trace"
)

// Strategy names a disk scheduling algorithm.
type Strategy string

const (
	StrategyFIFO  Strategy = "FIFO"
	StrategyLOOK  Strategy = "LOOK"
	StrategyNLOOK Strategy = "NLOOK"
)

// ValidStrategies is the set of recognized strategy names, in presentation order.
var ValidStrategies = []Strategy{StrategyFIFO, StrategyLOOK, StrategyNLOOK}

// ParseStrategy maps a case-insensitive name to a Strategy.
// Unrecognized names return an error wrapping ErrUnsupportedStrategy.
func ParseStrategy(name string) (Strategy, error) {
	s := Strategy(strings.ToUpper(strings.TrimSpace(name)))
	if !IsValidStrategy(s) {
		return "", fmt.Errorf("%w %q; valid: FIFO, LOOK, NLOOK", ErrUnsupportedStrategy, name)
	}
	return s, nil
}

// IsValidStrategy reports whether s is one of ValidStrategies.
func IsValidStrategy(s Strategy) bool {
	for _, v := range ValidStrategies {
		if s == v {
			return true
		}
	}
	return false
}

// Direction is the elevator's sweep direction over increasing track numbers.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	if d == Forward {
		return Backward
	}
	return Forward
}

func (d Direction) String() string {
	if d == Forward {
		return "forward"
	}
	return "backward"
}

// requestQueue holds admitted requests and picks the next one to serve.
// Implementations own their ordering policy.
type requestQueue interface {
	admit(sector int64)
	next(d *Driver) (int64, bool)
	len() int
}

// Driver is the single-device disk driver. At most one operation is active;
// everything else waits in the strategy's request queue.
type Driver struct {
	strategy  Strategy
	geometry  *Geometry
	queue     requestQueue
	direction Direction
	sink      trace.Sink

	active    int64
	hasActive bool
	finished  []int64
}

// NewDriver creates a Driver for strategy. The strategy is fixed for the
// driver's lifetime. maxGenerationQueueLength is only used by NLOOK.
func NewDriver(strategy Strategy, geometry *Geometry, maxGenerationQueueLength int, sink trace.Sink) (*Driver, error) {
	if sink == nil {
		sink = trace.Discard
	}
	d := &Driver{
		strategy:  strategy,
		geometry:  geometry,
		direction: Forward,
		sink:      sink,
	}
	switch strategy {
	case StrategyFIFO:
		d.queue = &fifoQueue{}
	case StrategyLOOK:
		d.queue = &lookQueue{}
	case StrategyNLOOK:
		if maxGenerationQueueLength <= 0 {
			return nil, fmt.Errorf("%w: max_generation_queue_length must be positive, got %d",
				ErrInvalidConfig, maxGenerationQueueLength)
		}
		d.queue = &nstepQueue{maxLen: maxGenerationQueueLength}
	default:
		return nil, fmt.Errorf("%w %q; valid: FIFO, LOOK, NLOOK", ErrUnsupportedStrategy, string(strategy))
	}
	return d, nil
}

// Strategy returns the configured strategy.
func (d *Driver) Strategy() Strategy { return d.strategy }

// Direction returns the current sweep direction.
func (d *Driver) Direction() Direction { return d.direction }

// ScheduleOperation admits a request for sector.
func (d *Driver) ScheduleOperation(sector int64) error {
	if err := d.geometry.CheckSector(sector); err != nil {
		return err
	}
	d.queue.admit(sector)
	return nil
}

// StartNextOperation picks the next request per strategy, marks it active and
// returns its duration. It does nothing when an operation is already active
// or nothing is queued.
func (d *Driver) StartNextOperation() (int64, bool) {
	if d.hasActive || d.queue.len() == 0 {
		return 0, false
	}
	sector, ok := d.queue.next(d)
	if !ok {
		return 0, false
	}
	d.active, d.hasActive = sector, true
	duration := d.geometry.OperationDuration(sector)
	d.sink.Emit(trace.Event{Kind: trace.OperationStarted, Sector: sector, Duration: duration})
	return duration, true
}

// CompleteActiveOperation moves the active sector to the finished queue and
// frees the device. Returns false when nothing was active.
func (d *Driver) CompleteActiveOperation() (int64, bool) {
	if !d.hasActive {
		return 0, false
	}
	sector := d.active
	d.active, d.hasActive = 0, false
	d.finished = append(d.finished, sector)
	d.sink.Emit(trace.Event{Kind: trace.OperationCompleted, Sector: sector})
	return sector, true
}

// TakeFinished pops the oldest finished sector.
func (d *Driver) TakeFinished() (int64, bool) {
	if len(d.finished) == 0 {
		return 0, false
	}
	sector := d.finished[0]
	d.finished = d.finished[1:]
	return sector, true
}

// Active returns the in-flight sector, if any.
func (d *Driver) Active() (int64, bool) {
	return d.active, d.hasActive
}

// Pending returns the number of queued, not yet started requests.
func (d *Driver) Pending() int {
	return d.queue.len()
}

// Idle reports that nothing is active, queued or awaiting collection.
func (d *Driver) Idle() bool {
	return !d.hasActive && d.queue.len() == 0 && len(d.finished) == 0
}
