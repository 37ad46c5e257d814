// Package config holds the small set of options the AC solver recognises:
// physical constants and analysis defaults, as an explicit immutable value
// threaded into circuit construction and analysis rather than a
// process-wide singleton.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/acirc/acsolver/internal/consts"
)

// Constants holds the physical constants used by noise calculations.
type Constants struct {
	KB float64 `yaml:"kB"`
	T  float64 `yaml:"T"`
}

// Analysis holds defaults consulted by the analysis drivers.
type Analysis struct {
	DefaultInputImpedance float64 `yaml:"default_input_impedance"`
	PrintProgress         bool    `yaml:"print_progress"`
}

// Config is the complete, immutable set of recognised options. The
// zero-value Config is not valid; use Default() or Load().
type Config struct {
	Constants Constants `yaml:"constants"`
	Analysis  Analysis  `yaml:"analysis"`
}

// Default returns the built-in defaults: CODATA Boltzmann constant, 25 C,
// 50 ohm default input impedance, progress reporting on.
func Default() Config {
	return Config{
		Constants: Constants{
			KB: consts.Boltzmann,
			T:  consts.RoomTemperature,
		},
		Analysis: Analysis{
			DefaultInputImpedance: consts.DefaultInputImpedance,
			PrintProgress:         true,
		},
	}
}

// Load reads a YAML configuration file, overlaying any fields present onto
// the built-in defaults. A missing file is not an error; Default() is
// returned unchanged in that case.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return cfg, nil
}
