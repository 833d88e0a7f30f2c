package sim

import "errors"

// Validation errors. All of them are raised before or at admission time;
// a simulation that has started never fails.
var (
	// ErrInvalidConfig reports a non-positive timing or geometry constant.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrInvalidCacheConfiguration reports segment capacities that cannot be honoured.
	ErrInvalidCacheConfiguration = errors.New("invalid cache configuration")
	// ErrUnsupportedStrategy reports an unrecognized disk scheduling strategy.
	ErrUnsupportedStrategy = errors.New("unsupported strategy")
	// ErrInvalidSector reports a sector outside [0, TracksPerDisk*SectorsPerTrack).
	ErrInvalidSector = errors.New("invalid sector")
)
