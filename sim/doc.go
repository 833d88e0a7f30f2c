// Package sim provides the core discrete-event simulation engine for the
// disk I/O subsystem: a process dispatcher, a two-segment buffer cache, and
// a single-device disk driver with interchangeable scheduling strategies.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - process.go: Process lifecycle (ready → blocked → done)
//   - scheduler.go: one dispatch/interrupt-handling Step
//   - simulator.go: the time-stepped event loop that ties everything together
//
// # Components
//
// Leaves first:
//   - Geometry (geometry.go): track/sector layout and operation durations
//   - BufferCache (bcache.go): left/right promotion cache
//   - Driver (driver.go, driver_strategies.go): request queues, the single
//     active-operation slot, and the FIFO, LOOK and NLOOK strategies
//   - Scheduler (scheduler.go): ready queue and blocked table
//   - Simulator (simulator.go): clock, interrupt timeline, termination
//
// Every component receives an immutable Config slice at construction and
// reports what it does as trace.Event values through a trace.Sink; rendering
// is left to callers (see cmd/).
//
// # Time
//
// The clock counts microseconds. The loop advances it by one per pass; the
// Scheduler and interrupt handling add fixed costs on top. All costs are
// integer constants, so runs are fully deterministic.
package sim
