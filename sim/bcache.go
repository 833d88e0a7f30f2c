package sim

import (
	"container/list"
	"fmt"

	"github.com/inference-sim/disk-sim/sim/trace"
)

// segment is one most-recently-used-first partition of the buffer cache.
// The index gives O(1) lookup and removal by sector.
type segment struct {
	capacity int
	order    *list.List // front = most recently used
	index    map[int64]*list.Element
}

func newSegment(capacity int) *segment {
	return &segment{
		capacity: capacity,
		order:    list.New(),
		index:    make(map[int64]*list.Element, capacity),
	}
}

func (s *segment) len() int {
	return s.order.Len()
}

func (s *segment) full() bool {
	return s.order.Len() >= s.capacity
}

func (s *segment) contains(sector int64) bool {
	_, ok := s.index[sector]
	return ok
}

func (s *segment) pushFront(sector int64) {
	s.index[sector] = s.order.PushFront(sector)
}

func (s *segment) remove(sector int64) {
	if e, ok := s.index[sector]; ok {
		s.order.Remove(e)
		delete(s.index, sector)
	}
}

func (s *segment) moveToFront(sector int64) {
	if e, ok := s.index[sector]; ok {
		s.order.MoveToFront(e)
	}
}

func (s *segment) popBack() (int64, bool) {
	e := s.order.Back()
	if e == nil {
		return 0, false
	}
	sector := e.Value.(int64)
	s.order.Remove(e)
	delete(s.index, sector)
	return sector, true
}

func (s *segment) snapshot() []int64 {
	out := make([]int64, 0, s.order.Len())
	for e := s.order.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(int64))
	}
	return out
}

func (s *segment) clear() {
	s.order.Init()
	s.index = make(map[int64]*list.Element, s.capacity)
}

// BufferCache is a two-segment promotion cache over logical sectors.
//
// New sectors enter the left segment ("loaded, not yet proven hot"). A hit in
// left promotes the sector into the right segment ("verified hot"); when right
// is full its least recently used entry is demoted back into left, which may
// in turn evict left's oldest entry. Eviction drops the sector outright:
// there is no write-back.
type BufferCache struct {
	left, right *segment
	numSectors  int64
	sink        trace.Sink
}

// NewBufferCache creates an empty cache. rightCapacity must be below the
// total; the left segment gets the remainder. A zero right capacity turns
// the cache into a single LRU segment.
func NewBufferCache(cfg CacheConfig, numSectors int64, sink trace.Sink) (*BufferCache, error) {
	if err := validateCacheCapacity(cfg.TotalBufferCount, cfg.RightBufferCount); err != nil {
		return nil, err
	}
	if sink == nil {
		sink = trace.Discard
	}
	return &BufferCache{
		left:       newSegment(cfg.TotalBufferCount - cfg.RightBufferCount),
		right:      newSegment(cfg.RightBufferCount),
		numSectors: numSectors,
		sink:       sink,
	}, nil
}

// Get reports whether sector is cached. A hit in left promotes the sector
// into right; a hit in right refreshes its recency. A miss changes nothing.
func (c *BufferCache) Get(sector int64) bool {
	if !c.Contains(sector) {
		c.sink.Emit(trace.Event{Kind: trace.CacheMiss, Sector: sector})
		return false
	}
	c.sink.Emit(trace.Event{Kind: trace.CacheHit, Sector: sector})
	c.touch(sector)
	return true
}

// Put inserts sector at the front of left, evicting left's oldest entry when
// full. A sector that is already resident is refreshed exactly as Get would.
func (c *BufferCache) Put(sector int64) error {
	if sector < 0 || sector >= c.numSectors {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidSector, sector, c.numSectors)
	}
	if c.Contains(sector) {
		c.touch(sector)
		return nil
	}
	c.insertLeft(sector)
	return nil
}

// Flush drops every cached sector.
func (c *BufferCache) Flush() {
	c.left.clear()
	c.right.clear()
}

// Contains reports residency without touching recency.
func (c *BufferCache) Contains(sector int64) bool {
	return c.left.contains(sector) || c.right.contains(sector)
}

// Left returns the left segment, most recently used first.
func (c *BufferCache) Left() []int64 { return c.left.snapshot() }

// Right returns the right segment, most recently used first.
func (c *BufferCache) Right() []int64 { return c.right.snapshot() }

// Len returns the number of cached sectors.
func (c *BufferCache) Len() int { return c.left.len() + c.right.len() }

// LeftCapacity returns the left segment's capacity.
func (c *BufferCache) LeftCapacity() int { return c.left.capacity }

// RightCapacity returns the right segment's capacity.
func (c *BufferCache) RightCapacity() int { return c.right.capacity }

func (c *BufferCache) touch(sector int64) {
	if c.right.contains(sector) {
		c.right.moveToFront(sector)
		return
	}
	c.promote(sector)
}

// promote moves sector from left to right. At most one entry migrates back:
// right's LRU tail, reinserted into left after sector has left it.
func (c *BufferCache) promote(sector int64) {
	c.left.remove(sector)
	if c.right.capacity == 0 {
		c.left.pushFront(sector)
		return
	}
	demoted, hasDemoted := int64(0), false
	if c.right.full() {
		demoted, hasDemoted = c.right.popBack()
	}
	c.right.pushFront(sector)
	c.sink.Emit(trace.Event{Kind: trace.Promotion, Sector: sector})
	if hasDemoted {
		c.sink.Emit(trace.Event{Kind: trace.Demotion, Sector: demoted})
		c.insertLeft(demoted)
	}
}

func (c *BufferCache) insertLeft(sector int64) {
	if c.left.full() {
		if victim, ok := c.left.popBack(); ok {
			c.sink.Emit(trace.Event{Kind: trace.Eviction, Sector: victim, Segment: trace.SegmentLeft})
		}
	}
	c.left.pushFront(sector)
}
