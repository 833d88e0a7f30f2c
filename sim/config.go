package sim

import "fmt"

// TimingConfig groups the fixed CPU and interrupt costs, in microseconds.
type TimingConfig struct {
	SyscallReadTime   int64 `yaml:"syscall_read_time"`   // charged when a read syscall is issued
	SyscallWriteTime  int64 `yaml:"syscall_write_time"`  // charged when a write syscall is issued
	DiskInterruptTime int64 `yaml:"disk_interrupt_time"` // charged when a completion interrupt is handled
	QuantumTime       int64 `yaml:"quantum_time"`        // timer-driven dispatch period (must be > 0)
	PreWriteBurst     int64 `yaml:"pre_write_burst"`     // CPU burst before a write syscall
	PostReadBurst     int64 `yaml:"post_read_burst"`     // CPU burst after a read completes
}

// CacheConfig groups buffer cache capacities.
type CacheConfig struct {
	TotalBufferCount int `yaml:"total_buffer_count"` // left + right capacity
	RightBufferCount int `yaml:"right_buffer_count"` // "proven hot" segment capacity (< total)
}

// DiskConfig groups disk geometry and access costs.
type DiskConfig struct {
	TracksPerDisk    int64 `yaml:"tracks_per_disk"`
	SectorsPerTrack  int64 `yaml:"sectors_per_track"`
	PerTrackSeekCost int64 `yaml:"per_track_seek_cost"` // µs per track of head travel
	RewindSeekCost   int64 `yaml:"rewind_seek_cost"`    // µs to park the head on track 0
	RotationDelay    int64 `yaml:"rotation_delay"`      // fixed per-operation rotational latency
	SectorAccessTime int64 `yaml:"sector_access_time"`  // fixed per-operation transfer time
}

// Config is the immutable configuration handed to every component at construction.
type Config struct {
	Timing TimingConfig `yaml:"timing"`
	Cache  CacheConfig  `yaml:"cache"`
	Disk   DiskConfig   `yaml:"disk"`
	// MaxGenerationQueueLength bounds each N-step-LOOK generation (must be > 0).
	MaxGenerationQueueLength int `yaml:"max_generation_queue_length"`
	// Horizon stops the run once the clock passes it. 0 means unlimited.
	Horizon int64 `yaml:"horizon"`
}

// DefaultConfig returns the stock timing and geometry used by the CLI
// when no defaults file overrides it.
func DefaultConfig() Config {
	return Config{
		Timing: TimingConfig{
			SyscallReadTime:   150,
			SyscallWriteTime:  150,
			DiskInterruptTime: 50,
			QuantumTime:       2000,
			PreWriteBurst:     7000,
			PostReadBurst:     7000,
		},
		Cache: CacheConfig{
			TotalBufferCount: 10,
			RightBufferCount: 5,
		},
		Disk: DiskConfig{
			TracksPerDisk:    10,
			SectorsPerTrack:  500,
			PerTrackSeekCost: 500,
			RewindSeekCost:   10,
			RotationDelay:    4000,
			SectorAccessTime: 16,
		},
		MaxGenerationQueueLength: 3,
	}
}

// NumSectors returns the number of addressable sectors on the disk.
func (c Config) NumSectors() int64 {
	return c.Disk.TracksPerDisk * c.Disk.SectorsPerTrack
}

// Validate checks every constant and capacity. The returned error wraps
// ErrInvalidConfig or ErrInvalidCacheConfiguration.
func (c Config) Validate() error {
	for _, f := range []struct {
		name string
		v    int64
	}{
		{"syscall_read_time", c.Timing.SyscallReadTime},
		{"syscall_write_time", c.Timing.SyscallWriteTime},
		{"disk_interrupt_time", c.Timing.DiskInterruptTime},
		{"pre_write_burst", c.Timing.PreWriteBurst},
		{"post_read_burst", c.Timing.PostReadBurst},
		{"per_track_seek_cost", c.Disk.PerTrackSeekCost},
		{"rewind_seek_cost", c.Disk.RewindSeekCost},
		{"rotation_delay", c.Disk.RotationDelay},
		{"sector_access_time", c.Disk.SectorAccessTime},
		{"horizon", c.Horizon},
	} {
		if f.v < 0 {
			return fmt.Errorf("%w: %s must be non-negative, got %d", ErrInvalidConfig, f.name, f.v)
		}
	}
	if c.Timing.QuantumTime <= 0 {
		return fmt.Errorf("%w: quantum_time must be positive, got %d", ErrInvalidConfig, c.Timing.QuantumTime)
	}
	if c.Disk.TracksPerDisk <= 0 || c.Disk.SectorsPerTrack <= 0 {
		return fmt.Errorf("%w: disk geometry must be positive, got %d tracks x %d sectors",
			ErrInvalidConfig, c.Disk.TracksPerDisk, c.Disk.SectorsPerTrack)
	}
	if c.MaxGenerationQueueLength <= 0 {
		return fmt.Errorf("%w: max_generation_queue_length must be positive, got %d",
			ErrInvalidConfig, c.MaxGenerationQueueLength)
	}
	return validateCacheCapacity(c.Cache.TotalBufferCount, c.Cache.RightBufferCount)
}

func validateCacheCapacity(total, right int) error {
	if total <= 0 {
		return fmt.Errorf("%w: total_buffer_count must be positive, got %d", ErrInvalidCacheConfiguration, total)
	}
	if right < 0 {
		return fmt.Errorf("%w: right_buffer_count must be non-negative, got %d", ErrInvalidCacheConfiguration, right)
	}
	if right >= total {
		return fmt.Errorf("%w: right_buffer_count (%d) must be less than total_buffer_count (%d)",
			ErrInvalidCacheConfiguration, right, total)
	}
	return nil
}
