// Package testutil provides shared test infrastructure for the disk simulator.
// It holds the golden dataset types and assertion helpers used by sim tests.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one hand-traced run: a workload, the strategy, and the
// cache shape it ran with.
type GoldenTestCase struct {
	Name             string          `json:"name"`
	Strategy         string          `json:"strategy"`
	TotalBufferCount int             `json:"total_buffer_count"`
	RightBufferCount int             `json:"right_buffer_count"`
	Processes        []GoldenProcess `json:"processes"`
	Metrics          GoldenMetrics   `json:"metrics"`
}

// GoldenProcess is one workload entry.
type GoldenProcess struct {
	Name   string `json:"name"`
	Op     string `json:"op"`
	Sector int64  `json:"sector"`
}

// GoldenMetrics represents the expected outcome of a golden test case.
type GoldenMetrics struct {
	// Exact match metrics
	TotalTime    int64            `json:"total_time"`
	ParkTime     int64            `json:"park_time"`
	SeekDistance int64            `json:"seek_distance"`
	CacheHits    int              `json:"cache_hits"`
	CacheMisses  int              `json:"cache_misses"`
	DiskOps      int              `json:"disk_ops"`
	CompletedAt  map[string]int64 `json:"completed_at"`

	// Derived
	HitRatio float64 `json:"hit_ratio"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
