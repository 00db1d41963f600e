package ballast

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WorldConfig is the tunable part of a simulation, loadable from a YAML
// file. Solver iteration counts and stabilization factors are deliberately
// not configurable; they are part of the engine's contract.
type WorldConfig struct {
	// Gravity is the constant acceleration, in m/s².
	Gravity [3]float32 `yaml:"gravity"`
	// Substeps is how many times each Step timestep is subdivided.
	Substeps uint16 `yaml:"substeps"`
}

// DefaultWorldConfig returns earth gravity and four substeps.
func DefaultWorldConfig() WorldConfig {
	return WorldConfig{
		Gravity:  [3]float32{0, -9.81, 0},
		Substeps: 4,
	}
}

// LoadWorldConfig reads a WorldConfig from a YAML file. Missing fields keep
// their defaults; unknown fields are rejected.
func LoadWorldConfig(path string) (WorldConfig, error) {
	cfg := DefaultWorldConfig()

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open world config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("decode world config %s: %w", path, err)
	}

	if cfg.Substeps == 0 {
		return cfg, fmt.Errorf("world config %s: substeps must be positive", path)
	}

	return cfg, nil
}
