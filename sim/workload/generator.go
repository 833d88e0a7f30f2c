package workload

import (
	"fmt"

	"github.com/inference-sim/disk-sim/sim"
)

// Entry is one workload triple, consumed once at simulation start.
type Entry struct {
	Name   string
	Op     sim.Operation
	Sector int64
}

// Demo returns the fixed demonstration workload: eight processes over
// tracks 0 to 6 of the stock disk, with repeated sectors 100 and 3000.
func Demo() []Entry {
	return []Entry{
		{"qqq", sim.OpWrite, 100},
		{"eee", sim.OpRead, 2300},
		{"www", sim.OpRead, 200},
		{"bbb", sim.OpWrite, 3000},
		{"aaa", sim.OpRead, 100},
		{"ccc", sim.OpWrite, 2050},
		{"nnn", sim.OpRead, 228},
		{"ddd", sim.OpWrite, 3000},
	}
}

// Generate expands spec into entries. Deterministic given the same spec.
func Generate(spec *WorkloadSpec, numSectors int64) ([]Entry, error) {
	if err := spec.Validate(numSectors); err != nil {
		return nil, fmt.Errorf("invalid workload spec: %w", err)
	}
	entries := make([]Entry, 0, len(spec.Processes))
	for _, p := range spec.Processes {
		op, _ := sim.ParseOperation(p.Op) // validated above
		entries = append(entries, Entry{Name: p.Name, Op: op, Sector: p.Sector})
	}
	if spec.Random != nil {
		entries = append(entries, Random(*spec.Random, numSectors)...)
	}
	return entries, nil
}

// Random generates r.Count entries over [0, numSectors). The hot set is
// drawn uniformly up front, so it is scattered across tracks.
func Random(r RandomSpec, numSectors int64) []Entry {
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(r.Seed))
	sectorRNG := rng.ForSubsystem(sim.SubsystemSectors)
	opRNG := rng.ForSubsystem(sim.SubsystemOperations)

	hot := make([]int64, 0, r.HotSectors)
	for len(hot) < r.HotSectors && int64(len(hot)) < numSectors {
		hot = append(hot, sectorRNG.Int63n(numSectors))
	}

	prefix := r.NamePrefix
	if prefix == "" {
		prefix = "r"
	}
	entries := make([]Entry, 0, r.Count)
	for i := 0; i < r.Count; i++ {
		var sector int64
		if len(hot) > 0 && sectorRNG.Float64() < r.HotFraction {
			sector = hot[sectorRNG.Intn(len(hot))]
		} else {
			sector = sectorRNG.Int63n(numSectors)
		}
		op := sim.OpRead
		if opRNG.Float64() < r.WriteFraction {
			op = sim.OpWrite
		}
		entries = append(entries, Entry{
			Name:   fmt.Sprintf("%s%d", prefix, i+1),
			Op:     op,
			Sector: sector,
		})
	}
	return entries
}

// ToProcesses creates one ready process per entry, preserving order.
func ToProcesses(entries []Entry) []*sim.Process {
	procs := make([]*sim.Process, 0, len(entries))
	for _, e := range entries {
		procs = append(procs, sim.NewProcess(e.Name, e.Op, e.Sector))
	}
	return procs
}
