package workload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/disk-sim/sim"
)

func TestDemo_ValidForDefaultGeometry(t *testing.T) {
	cfg := sim.DefaultConfig()
	names := map[string]bool{}
	for _, e := range Demo() {
		assert.False(t, names[e.Name], "duplicate name %s", e.Name)
		names[e.Name] = true
		assert.GreaterOrEqual(t, e.Sector, int64(0))
		assert.Less(t, e.Sector, cfg.NumSectors())
	}
}

func TestDemo_FixedWorkload(t *testing.T) {
	want := []Entry{
		{"qqq", sim.OpWrite, 100},
		{"eee", sim.OpRead, 2300},
		{"www", sim.OpRead, 200},
		{"bbb", sim.OpWrite, 3000},
		{"aaa", sim.OpRead, 100},
		{"ccc", sim.OpWrite, 2050},
		{"nnn", sim.OpRead, 228},
		{"ddd", sim.OpWrite, 3000},
	}
	assert.Equal(t, want, Demo())
}

func TestGenerate_ExplicitThenRandom(t *testing.T) {
	// GIVEN two explicit processes and three random ones
	spec := &WorkloadSpec{
		Processes: []ProcessSpec{
			{Name: "a", Op: "R", Sector: 5},
			{Name: "b", Op: "write", Sector: 9},
		},
		Random: &RandomSpec{Count: 3, Seed: 1, NamePrefix: "x"},
	}

	// WHEN generated
	entries, err := Generate(spec, 100)
	require.NoError(t, err)

	// THEN explicit entries come first in file order
	require.Len(t, entries, 5)
	assert.Equal(t, Entry{Name: "a", Op: sim.OpRead, Sector: 5}, entries[0])
	assert.Equal(t, Entry{Name: "b", Op: sim.OpWrite, Sector: 9}, entries[1])
	assert.Equal(t, []string{"x1", "x2", "x3"}, []string{entries[2].Name, entries[3].Name, entries[4].Name})
}

func TestGenerate_InvalidSpec_ReturnsError(t *testing.T) {
	_, err := Generate(&WorkloadSpec{}, 100)
	assert.Error(t, err)
}

func TestRandom_SameSeed_SameEntries(t *testing.T) {
	r := RandomSpec{Count: 50, Seed: 42, WriteFraction: 0.3, HotFraction: 0.5, HotSectors: 4}
	assert.Equal(t, Random(r, 10000), Random(r, 10000))

	other := r
	other.Seed = 43
	assert.NotEqual(t, Random(r, 10000), Random(other, 10000))
}

func TestRandom_SectorsInRange(t *testing.T) {
	entries := Random(RandomSpec{Count: 200, Seed: 7}, 37)
	require.Len(t, entries, 200)
	for _, e := range entries {
		assert.GreaterOrEqual(t, e.Sector, int64(0))
		assert.Less(t, e.Sector, int64(37))
	}
	assert.Equal(t, "r1", entries[0].Name)
}

func TestRandom_WriteFractionExtremes(t *testing.T) {
	for _, e := range Random(RandomSpec{Count: 30, Seed: 3, WriteFraction: 0}, 100) {
		assert.Equal(t, sim.OpRead, e.Op)
	}
	for _, e := range Random(RandomSpec{Count: 30, Seed: 3, WriteFraction: 1}, 100) {
		assert.Equal(t, sim.OpWrite, e.Op)
	}
}

func TestRandom_FullHotFraction_UsesOnlyHotSet(t *testing.T) {
	// GIVEN every request drawn from a hot set of two sectors
	entries := Random(RandomSpec{Count: 100, Seed: 9, HotFraction: 1, HotSectors: 2}, 10000)

	// THEN at most two distinct sectors appear
	distinct := map[int64]bool{}
	for _, e := range entries {
		distinct[e.Sector] = true
	}
	assert.LessOrEqual(t, len(distinct), 2)
}

func TestRandom_OperationDrawsDoNotShiftSectors(t *testing.T) {
	// Changing only the write fraction must leave the sector sequence alone
	a := Random(RandomSpec{Count: 20, Seed: 5, WriteFraction: 0.1}, 10000)
	b := Random(RandomSpec{Count: 20, Seed: 5, WriteFraction: 0.9}, 10000)
	for i := range a {
		assert.Equal(t, a[i].Sector, b[i].Sector, "entry %d", i)
	}
}

func TestToProcesses_PreservesOrderAndState(t *testing.T) {
	procs := ToProcesses([]Entry{{"a", sim.OpRead, 1}, {"b", sim.OpWrite, 2}})
	require.Len(t, procs, 2)
	assert.Equal(t, "a", procs[0].Name)
	assert.Equal(t, sim.OpWrite, procs[1].Op)
	assert.Equal(t, sim.StateReady, procs[1].State)
	assert.Equal(t, int64(-1), procs[0].CompletedAt)
}
