package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/disk-sim/sim"
)

// defaultsFilePath is where run, compare and defaults look for timing and
// geometry constants unless --config names another file.
const defaultsFilePath = "defaults.yaml"

// Defaults represents the full defaults.yaml structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type Defaults struct {
	Version  string     `yaml:"version"`
	Strategy string     `yaml:"strategy"`
	Sim      sim.Config `yaml:",inline"`
}

// builtinDefaults is used when no defaults file exists.
func builtinDefaults() Defaults {
	return Defaults{
		Version:  "1",
		Strategy: string(sim.StrategyLOOK),
		Sim:      sim.DefaultConfig(),
	}
}

// loadDefaultsConfig parses a defaults file over the built-in values, so a
// file only needs to name the constants it changes. Uses strict field checking.
// A missing file is not an error when required is false.
func loadDefaultsConfig(path string, required bool) (Defaults, error) {
	d := builtinDefaults()
	data, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			logrus.Debugf("no defaults file at %s, using built-in constants", path)
			return d, nil
		}
		return d, fmt.Errorf("reading defaults file %s: %w", path, err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&d); err != nil {
		return d, fmt.Errorf("parsing defaults YAML %s: %w", path, err)
	}
	if d.Version != "" && d.Version != "1" {
		return d, fmt.Errorf("unsupported defaults version %q; valid: 1", d.Version)
	}
	return d, nil
}

// marshalDefaults renders d back to YAML for the defaults subcommand.
func marshalDefaults(d Defaults) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
