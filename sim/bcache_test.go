package sim

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/disk-sim/sim/trace"
)

func newTestCache(t *testing.T, total, right int) (*BufferCache, *trace.SimulationTrace) {
	t.Helper()
	rec := trace.NewSimulationTrace(trace.TraceLevelEvents)
	c, err := NewBufferCache(CacheConfig{TotalBufferCount: total, RightBufferCount: right}, 10000, rec)
	require.NoError(t, err)
	return c, rec
}

func putAll(t *testing.T, c *BufferCache, sectors ...int64) {
	t.Helper()
	for _, s := range sectors {
		require.NoError(t, c.Put(s))
	}
}

func TestBufferCache_Put_EvictsLeastRecentlyInserted(t *testing.T) {
	// GIVEN a cache with 5 left and 5 right buffers, left filled with 1..5
	c, rec := newTestCache(t, 10, 5)
	putAll(t, c, 1, 2, 3, 4, 5)
	assert.Equal(t, []int64{5, 4, 3, 2, 1}, c.Left())

	// WHEN a sixth sector is inserted
	putAll(t, c, 6)

	// THEN sector 1 is evicted and left holds [6 5 4 3 2]
	assert.Equal(t, []int64{6, 5, 4, 3, 2}, c.Left())
	assert.Empty(t, c.Right())
	assert.False(t, c.Contains(1))
	evictions := rec.OfKind(trace.Eviction)
	require.Len(t, evictions, 1)
	assert.Equal(t, int64(1), evictions[0].Sector)
	assert.Equal(t, trace.SegmentLeft, evictions[0].Segment)
}

func TestBufferCache_Get_LeftHitPromotesToRight(t *testing.T) {
	// GIVEN left = [6 5 4 3 2]
	c, rec := newTestCache(t, 10, 5)
	putAll(t, c, 1, 2, 3, 4, 5, 6)

	// WHEN sector 5 is looked up
	hit := c.Get(5)

	// THEN it is a hit, 5 leaves left and sits at the front of right
	assert.True(t, hit)
	assert.Equal(t, []int64{6, 4, 3, 2}, c.Left())
	assert.Equal(t, []int64{5}, c.Right())
	assert.Len(t, rec.OfKind(trace.Promotion), 1)
	assert.Len(t, rec.OfKind(trace.CacheHit), 1)
}

func TestBufferCache_Get_RightHitRefreshesRecency(t *testing.T) {
	c, _ := newTestCache(t, 10, 5)
	putAll(t, c, 1, 2, 3)
	c.Get(1)
	c.Get(2)
	c.Get(3)
	require.Equal(t, []int64{3, 2, 1}, c.Right())

	assert.True(t, c.Get(1))
	assert.Equal(t, []int64{1, 3, 2}, c.Right())
	assert.Empty(t, c.Left())
}

func TestBufferCache_Get_Miss_NoStateChange(t *testing.T) {
	c, rec := newTestCache(t, 10, 5)
	putAll(t, c, 1, 2)

	assert.False(t, c.Get(99))
	assert.Equal(t, []int64{2, 1}, c.Left())
	assert.Empty(t, c.Right())
	assert.Len(t, rec.OfKind(trace.CacheMiss), 1)
}

func TestBufferCache_PromotionOverflow_DemotesRightTailIntoLeft(t *testing.T) {
	// GIVEN right full with [2 3 4 6 5] and left = [7]
	c, rec := newTestCache(t, 10, 5)
	putAll(t, c, 1, 2, 3, 4, 5, 6)
	for _, s := range []int64{5, 6, 4, 3, 2} {
		require.True(t, c.Get(s))
	}
	require.Equal(t, []int64{2, 3, 4, 6, 5}, c.Right())
	require.Empty(t, c.Left())
	putAll(t, c, 7)

	// WHEN 7 is promoted
	require.True(t, c.Get(7))

	// THEN right's LRU tail (5) is demoted back into left
	assert.Equal(t, []int64{7, 2, 3, 4, 6}, c.Right())
	assert.Equal(t, []int64{5}, c.Left())
	demotions := rec.OfKind(trace.Demotion)
	require.Len(t, demotions, 1)
	assert.Equal(t, int64(5), demotions[0].Sector)
}

func TestBufferCache_Put_ResidentSectorBehavesLikeGet(t *testing.T) {
	c, _ := newTestCache(t, 10, 5)
	putAll(t, c, 1, 2)

	// Put of a left-resident sector promotes instead of duplicating.
	putAll(t, c, 1)
	assert.Equal(t, []int64{2}, c.Left())
	assert.Equal(t, []int64{1}, c.Right())
	assert.Equal(t, 2, c.Len())

	// Put of a right-resident sector only refreshes it.
	putAll(t, c, 2, 2)
	assert.Equal(t, []int64{2, 1}, c.Right())
	assert.Equal(t, 2, c.Len())
}

func TestBufferCache_Flush_EverySubsequentLookupMisses(t *testing.T) {
	// GIVEN an arbitrary sequence of puts and gets
	c, _ := newTestCache(t, 10, 5)
	rng := rand.New(rand.NewSource(7))
	seen := map[int64]bool{}
	for i := 0; i < 500; i++ {
		s := int64(rng.Intn(30))
		seen[s] = true
		if rng.Intn(2) == 0 {
			putAll(t, c, s)
		} else {
			c.Get(s)
		}
	}

	// WHEN the cache is flushed
	c.Flush()

	// THEN every sector misses
	for s := range seen {
		assert.False(t, c.Get(s), "sector %d hit after flush", s)
	}
	assert.Equal(t, 0, c.Len())
}

func TestBufferCache_Invariants_HoldUnderRandomOperations(t *testing.T) {
	for _, tc := range []struct {
		name         string
		total, right int
	}{
		{"balanced", 10, 5},
		{"left-heavy", 8, 1},
		{"right-heavy", 6, 5},
		{"single-segment", 4, 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestCache(t, tc.total, tc.right)
			rng := rand.New(rand.NewSource(int64(tc.total*31 + tc.right)))
			for i := 0; i < 2000; i++ {
				s := int64(rng.Intn(25))
				if rng.Intn(3) == 0 {
					c.Get(s)
				} else {
					putAll(t, c, s)
				}

				left, right := c.Left(), c.Right()
				if len(left) > c.LeftCapacity() || len(right) > c.RightCapacity() {
					t.Fatalf("op %d: capacity exceeded: |left|=%d/%d |right|=%d/%d",
						i, len(left), c.LeftCapacity(), len(right), c.RightCapacity())
				}
				inLeft := map[int64]bool{}
				for _, v := range left {
					if inLeft[v] {
						t.Fatalf("op %d: sector %d duplicated in left", i, v)
					}
					inLeft[v] = true
				}
				inRight := map[int64]bool{}
				for _, v := range right {
					if inLeft[v] || inRight[v] {
						t.Fatalf("op %d: sector %d resident twice", i, v)
					}
					inRight[v] = true
				}
			}
		})
	}
}

func TestBufferCache_ZeroRightCapacity_ActsAsLRU(t *testing.T) {
	c, rec := newTestCache(t, 3, 0)
	putAll(t, c, 1, 2, 3)

	assert.True(t, c.Get(1))
	assert.Equal(t, []int64{1, 3, 2}, c.Left())
	assert.Empty(t, c.Right())
	assert.Empty(t, rec.OfKind(trace.Promotion))

	putAll(t, c, 4)
	assert.Equal(t, []int64{4, 1, 3}, c.Left())
}

func TestNewBufferCache_InvalidCapacities(t *testing.T) {
	tests := []struct {
		name         string
		total, right int
	}{
		{"right equals total", 10, 10},
		{"right exceeds total", 4, 9},
		{"zero total", 0, 0},
		{"negative right", 5, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBufferCache(CacheConfig{TotalBufferCount: tt.total, RightBufferCount: tt.right}, 100, nil)
			if !errors.Is(err, ErrInvalidCacheConfiguration) {
				t.Errorf("err = %v, want ErrInvalidCacheConfiguration", err)
			}
		})
	}
}

func TestBufferCache_Put_OutOfRange_ReturnsInvalidSector(t *testing.T) {
	c, _ := newTestCache(t, 4, 1)

	for _, s := range []int64{-1, 10000, 1 << 40} {
		err := c.Put(s)
		assert.ErrorIs(t, err, ErrInvalidSector, "sector %d", s)
	}
	assert.Equal(t, 0, c.Len())
}
