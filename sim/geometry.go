package sim

import "fmt"

// Geometry models the disk's track/sector layout and the head position.
// Durations are pure functions of the head's current track and the target;
// the only mutable state is where the head was left by the last operation.
type Geometry struct {
	cfg DiskConfig

	currentTrack  int64
	currentSector int64
	seekDistance  int64 // total tracks travelled, for reporting
}

// NewGeometry creates a Geometry with the head parked on track 0.
func NewGeometry(cfg DiskConfig) *Geometry {
	return &Geometry{cfg: cfg}
}

// NumSectors returns the number of addressable sectors.
func (g *Geometry) NumSectors() int64 {
	return g.cfg.TracksPerDisk * g.cfg.SectorsPerTrack
}

// Track returns the track holding sector.
func (g *Geometry) Track(sector int64) int64 {
	return sector / g.cfg.SectorsPerTrack
}

// Offset returns sector's position within its track.
func (g *Geometry) Offset(sector int64) int64 {
	return sector % g.cfg.SectorsPerTrack
}

// CheckSector returns an error wrapping ErrInvalidSector when sector is
// not addressable on this disk.
func (g *Geometry) CheckSector(sector int64) error {
	if sector < 0 || sector >= g.NumSectors() {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidSector, sector, g.NumSectors())
	}
	return nil
}

// CurrentTrack returns the track under the head.
func (g *Geometry) CurrentTrack() int64 { return g.currentTrack }

// CurrentSector returns the last sector served.
func (g *Geometry) CurrentSector() int64 { return g.currentSector }

// SeekDistance returns the total number of tracks the head has crossed.
func (g *Geometry) SeekDistance() int64 { return g.seekDistance }

// SeekTime returns the cost of moving the head from its current track to track.
func (g *Geometry) SeekTime(track int64) int64 {
	return abs64(g.currentTrack-track) * g.cfg.PerTrackSeekCost
}

// OperationDuration returns seek + rotation + access time for serving sector,
// then moves the head there.
func (g *Geometry) OperationDuration(sector int64) int64 {
	track := g.Track(sector)
	d := g.SeekTime(track) + g.cfg.RotationDelay + g.cfg.SectorAccessTime
	g.seekDistance += abs64(g.currentTrack - track)
	g.currentTrack = track
	g.currentSector = sector
	return d
}

// Park rewinds the head to track 0 and returns the rewind cost,
// or 0 when the head is already there.
func (g *Geometry) Park() int64 {
	if g.currentTrack == 0 && g.currentSector == 0 {
		return 0
	}
	g.currentTrack = 0
	g.currentSector = 0
	return g.cfg.RewindSeekCost
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
