package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inference-sim/disk-sim/sim/trace"
)

// testConfig returns small round constants so timelines in this package's
// tests can be traced by hand: syscall 7, interrupt 5, quantum 50,
// pre-write 10, post-read 10, 100 tracks × 100 sectors, 3µs per track,
// rotation 4, access 1, rewind 20, generations of 4.
func testConfig() Config {
	return Config{
		Timing: TimingConfig{
			SyscallReadTime:   7,
			SyscallWriteTime:  7,
			DiskInterruptTime: 5,
			QuantumTime:       50,
			PreWriteBurst:     10,
			PostReadBurst:     10,
		},
		Cache: CacheConfig{TotalBufferCount: 10, RightBufferCount: 5},
		Disk: DiskConfig{
			TracksPerDisk:    100,
			SectorsPerTrack:  100,
			PerTrackSeekCost: 3,
			RewindSeekCost:   20,
			RotationDelay:    4,
			SectorAccessTime: 1,
		},
		MaxGenerationQueueLength: 4,
	}
}

type schedulerFixture struct {
	clock     *Clock
	cache     *BufferCache
	driver    *Driver
	scheduler *Scheduler
	rec       *trace.SimulationTrace
}

func newSchedulerFixture(t *testing.T, strategy Strategy, processes ...*Process) *schedulerFixture {
	t.Helper()
	cfg := testConfig()
	clock := &Clock{}
	rec := trace.NewSimulationTrace(trace.TraceLevelEvents)
	sink := trace.Stamped(clock.Now, rec)
	geometry := NewGeometry(cfg.Disk)
	cache, err := NewBufferCache(cfg.Cache, geometry.NumSectors(), sink)
	require.NoError(t, err)
	driver, err := NewDriver(strategy, geometry, cfg.MaxGenerationQueueLength, sink)
	require.NoError(t, err)
	return &schedulerFixture{
		clock:     clock,
		cache:     cache,
		driver:    driver,
		scheduler: NewScheduler(cfg.Timing, clock, cache, driver, processes, sink),
		rec:       rec,
	}
}

func runSimulation(t *testing.T, cfg Config, strategy Strategy, processes ...*Process) (*Report, *trace.SimulationTrace) {
	t.Helper()
	rec := trace.NewSimulationTrace(trace.TraceLevelEvents)
	s, err := NewSimulator(cfg, strategy, processes, rec)
	require.NoError(t, err)
	report, err := s.Run()
	require.NoError(t, err)
	return report, rec
}
