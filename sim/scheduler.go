package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/disk-sim/sim/trace"
)

// Scheduler dispatches ready processes one at a time, turns cache misses into
// disk requests, and wakes blocked processes when their sector's operation
// completes. Every fixed CPU cost it models is charged to the shared clock.
type Scheduler struct {
	timing    TimingConfig
	clock     *Clock
	cache     *BufferCache
	driver    *Driver
	sink      trace.Sink
	ready     *ReadyQueue
	blocked   *BlockedTable
	processes []*Process
	busy      bool
}

// NewScheduler creates a Scheduler with every process in the ready queue,
// in the order given.
func NewScheduler(timing TimingConfig, clock *Clock, cache *BufferCache, driver *Driver, processes []*Process, sink trace.Sink) *Scheduler {
	if sink == nil {
		sink = trace.Discard
	}
	s := &Scheduler{
		timing:    timing,
		clock:     clock,
		cache:     cache,
		driver:    driver,
		sink:      sink,
		ready:     &ReadyQueue{},
		blocked:   NewBlockedTable(),
		processes: processes,
	}
	for _, p := range processes {
		s.ready.Enqueue(p)
	}
	s.busy = s.ready.Len() > 0
	return s
}

// Step drains finished disk operations, dispatches at most one ready process,
// and recomputes Busy.
func (s *Scheduler) Step() error {
	if err := s.drainInterrupts(); err != nil {
		return err
	}
	if p := s.ready.Dequeue(); p != nil {
		if err := s.dispatch(p); err != nil {
			return err
		}
	}
	s.busy = s.ready.Len() > 0 || s.blocked.Len() > 0
	return nil
}

// Busy reports whether any process is still ready or blocked.
func (s *Scheduler) Busy() bool { return s.busy }

// Ready returns the ready queue.
func (s *Scheduler) Ready() *ReadyQueue { return s.ready }

// Blocked returns the blocked table.
func (s *Scheduler) Blocked() *BlockedTable { return s.blocked }

// Processes returns every process, in workload order.
func (s *Scheduler) Processes() []*Process { return s.processes }

// drainInterrupts caches each finished sector and wakes everything waiting on it.
func (s *Scheduler) drainInterrupts() error {
	for {
		sector, ok := s.driver.TakeFinished()
		if !ok {
			return nil
		}
		if err := s.cache.Put(sector); err != nil {
			return err
		}
		for _, p := range s.blocked.Wake(sector) {
			s.sink.Emit(trace.Event{Kind: trace.ProcessWoken, Sector: sector, Process: p.Name})
			if p.Op == OpRead {
				s.clock.Advance(s.timing.PostReadBurst)
			}
			p.State = StateDone
			p.CompletedAt = s.clock.Now()
			logrus.Debugf("[tick %07d] %s woken on sector %d", s.clock.Now(), p.Name, sector)
		}
	}
}

func (s *Scheduler) dispatch(p *Process) error {
	p.DispatchedAt = s.clock.Now()
	if p.Op == OpWrite {
		s.clock.Advance(s.timing.PreWriteBurst)
		s.clock.Advance(s.timing.SyscallWriteTime)
	} else {
		s.clock.Advance(s.timing.SyscallReadTime)
	}

	if s.cache.Get(p.Sector) {
		p.State = StateDone
		p.CompletedAt = s.clock.Now()
		logrus.Debugf("[tick %07d] %s %s sector %d: cache hit", s.clock.Now(), p.Name, p.Op, p.Sector)
		return nil
	}

	if err := s.driver.ScheduleOperation(p.Sector); err != nil {
		return err
	}
	p.State = StateBlocked
	s.blocked.Block(p.Sector, p)
	s.sink.Emit(trace.Event{Kind: trace.ProcessBlocked, Sector: p.Sector, Process: p.Name})
	logrus.Debugf("[tick %07d] %s %s sector %d: blocked", s.clock.Now(), p.Name, p.Op, p.Sector)
	return nil
}
