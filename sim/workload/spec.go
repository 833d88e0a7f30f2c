package workload

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/disk-sim/sim"
)

// WorkloadSpec is the top-level workload configuration.
// Loaded from YAML via LoadWorkloadSpec(path). Explicit processes come
// first, in file order; a random section appends generated ones after them.
type WorkloadSpec struct {
	Version   string        `yaml:"version"`
	Processes []ProcessSpec `yaml:"processes"`
	Random    *RandomSpec   `yaml:"random,omitempty"`
}

// ProcessSpec is one explicit (name, operation, sector) triple.
type ProcessSpec struct {
	Name   string `yaml:"name"`
	Op     string `yaml:"op"`
	Sector int64  `yaml:"sector"`
}

// RandomSpec describes a seeded synthetic workload. A HotFraction share of
// requests target a small hot set of sectors, the rest are uniform over the disk.
type RandomSpec struct {
	Count         int     `yaml:"count"`
	Seed          int64   `yaml:"seed"`
	WriteFraction float64 `yaml:"write_fraction"`
	HotFraction   float64 `yaml:"hot_fraction"`
	HotSectors    int     `yaml:"hot_sectors"`
	NamePrefix    string  `yaml:"name_prefix,omitempty"` // default "r"
}

// LoadWorkloadSpec reads and parses a YAML workload specification file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadWorkloadSpec(path string) (*WorkloadSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workload spec: %w", err)
	}
	var spec WorkloadSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing workload spec: %w", err)
	}
	return &spec, nil
}

// Validate checks names, operations and parameter ranges, and that every
// explicit sector lies in [0, numSectors). Sector errors wrap sim.ErrInvalidSector.
func (s *WorkloadSpec) Validate(numSectors int64) error {
	if s.Version != "" && s.Version != "1" {
		return fmt.Errorf("unsupported workload version %q; valid: 1", s.Version)
	}
	if len(s.Processes) == 0 && s.Random == nil {
		return fmt.Errorf("at least one process or a random section required")
	}
	names := make(map[string]bool, len(s.Processes))
	for i, p := range s.Processes {
		prefix := fmt.Sprintf("processes[%d]", i)
		if p.Name == "" {
			return fmt.Errorf("%s: name must not be empty", prefix)
		}
		if names[p.Name] {
			return fmt.Errorf("%s: duplicate name %q", prefix, p.Name)
		}
		names[p.Name] = true
		if _, err := sim.ParseOperation(p.Op); err != nil {
			return fmt.Errorf("%s: %w", prefix, err)
		}
		if p.Sector < 0 || p.Sector >= numSectors {
			return fmt.Errorf("%s: %w: %d not in [0, %d)", prefix, sim.ErrInvalidSector, p.Sector, numSectors)
		}
	}
	if s.Random != nil {
		if err := s.Random.validate(); err != nil {
			return fmt.Errorf("random: %w", err)
		}
	}
	return nil
}

func (r *RandomSpec) validate() error {
	if r.Count <= 0 {
		return fmt.Errorf("count must be positive, got %d", r.Count)
	}
	if err := validateFraction("write_fraction", r.WriteFraction); err != nil {
		return err
	}
	if err := validateFraction("hot_fraction", r.HotFraction); err != nil {
		return err
	}
	if r.HotFraction > 0 && r.HotSectors <= 0 {
		return fmt.Errorf("hot_sectors must be positive when hot_fraction > 0, got %d", r.HotSectors)
	}
	return nil
}

func validateFraction(name string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return fmt.Errorf("%s must be a finite number, got %f", name, val)
	}
	if val < 0 || val > 1 {
		return fmt.Errorf("%s must be in [0, 1], got %f", name, val)
	}
	return nil
}
