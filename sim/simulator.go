// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/disk-sim/sim/trace"
)

// Simulator is the core object that holds simulation time, the pending
// interrupt timeline, and the components it steps: Scheduler, Driver and
// BufferCache. It is single-threaded; every component is owned by exactly
// one caller and mutated only from Run.
type Simulator struct {
	Config     Config
	Clock      *Clock
	Interrupts *InterruptHeap
	Geometry   *Geometry
	Cache      *BufferCache
	Driver     *Driver
	Scheduler  *Scheduler

	// Iterations counts loop passes (one per simulated microsecond advanced by the loop itself).
	Iterations int64

	sink    trace.Sink
	counter *trace.Counter
}

// NewSimulator validates cfg and every process's sector, then wires the
// components together. sink receives every event; nil discards them.
func NewSimulator(cfg Config, strategy Strategy, processes []*Process, sink trace.Sink) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sink == nil {
		sink = trace.Discard
	}

	clock := &Clock{}
	counter := trace.NewCounter()
	stamped := trace.Stamped(clock.Now, trace.MultiSink{counter, sink})

	geometry := NewGeometry(cfg.Disk)
	for _, p := range processes {
		if err := geometry.CheckSector(p.Sector); err != nil {
			return nil, fmt.Errorf("process %s: %w", p.Name, err)
		}
	}
	cache, err := NewBufferCache(cfg.Cache, geometry.NumSectors(), stamped)
	if err != nil {
		return nil, err
	}
	driver, err := NewDriver(strategy, geometry, cfg.MaxGenerationQueueLength, stamped)
	if err != nil {
		return nil, err
	}

	return &Simulator{
		Config:     cfg,
		Clock:      clock,
		Interrupts: NewInterruptHeap(),
		Geometry:   geometry,
		Cache:      cache,
		Driver:     driver,
		Scheduler:  NewScheduler(cfg.Timing, clock, cache, driver, processes, stamped),
		sink:       stamped,
		counter:    counter,
	}, nil
}

// Run advances the simulation until every process is done and the device is
// idle, or until the horizon is passed. The cache is flushed and the head
// parked before the report is built.
func (sim *Simulator) Run() (*Report, error) {
	logrus.Infof("Starting simulation: strategy=%s processes=%d cache=%d/%d",
		sim.Driver.Strategy(), len(sim.Scheduler.Processes()),
		sim.Cache.LeftCapacity(), sim.Cache.RightCapacity())

	truncated := false
	for !sim.done() {
		if sim.Config.Horizon > 0 && sim.Clock.Now() > sim.Config.Horizon {
			logrus.Warnf("[tick %07d] horizon %d reached with work outstanding; stopping", sim.Clock.Now(), sim.Config.Horizon)
			truncated = true
			break
		}
		if err := sim.tick(); err != nil {
			return nil, err
		}
	}

	// The last pass still advanced the clock by one after its work.
	total := sim.Clock.Now()
	if sim.Iterations > 0 {
		total--
	}
	sim.Cache.Flush()
	park := sim.Geometry.Park()
	sim.sink.Emit(trace.Event{Kind: trace.SimulationEnded, Sector: -1, Duration: total})
	logrus.Infof("[tick %07d] Simulation ended", total)

	return &Report{
		Strategy:     sim.Driver.Strategy(),
		TotalTime:    total,
		ParkTime:     park,
		Truncated:    truncated,
		SeekDistance: sim.Geometry.SeekDistance(),
		CacheLeft:    sim.Cache.Left(),
		CacheRight:   sim.Cache.Right(),
		Processes:    sim.Scheduler.Processes(),
		Summary:      trace.Summarize(sim.counter),
	}, nil
}

func (sim *Simulator) done() bool {
	return !sim.Scheduler.Busy() && sim.Driver.Idle() && sim.Interrupts.Len() == 0
}

// tick runs one loop pass: fire a due interrupt, handle a quantum boundary,
// start the next disk operation, then advance the clock by one.
func (sim *Simulator) tick() error {
	if sim.Interrupts.Due(sim.Clock.Now()) {
		intr, _ := sim.Interrupts.PopNext()
		sim.Driver.CompleteActiveOperation()
		sim.Clock.Advance(sim.Config.Timing.DiskInterruptTime)
		logrus.Debugf("[tick %07d] interrupt: sector %d (due %d)", sim.Clock.Now(), intr.Sector, intr.Time)
		if err := sim.Scheduler.Step(); err != nil {
			return err
		}
	}

	if sim.Clock.Now()%sim.Config.Timing.QuantumTime == 0 {
		sim.sink.Emit(trace.Event{Kind: trace.QuantumTick, Sector: -1})
		if err := sim.Scheduler.Step(); err != nil {
			return err
		}
	}

	if duration, ok := sim.Driver.StartNextOperation(); ok {
		sector, _ := sim.Driver.Active()
		sim.Interrupts.Schedule(sim.Clock.Now()+duration, sector)
		logrus.Debugf("[tick %07d] disk: sector %d started, completes at %d", sim.Clock.Now(), sector, sim.Clock.Now()+duration)
	}

	sim.Clock.Advance(1)
	sim.Iterations++
	return nil
}
