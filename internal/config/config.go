// Package config loads the YAML-encoded run configuration and fixture
// translations cmd/penrose operates on, using gopkg.in/yaml.v3.
package config

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/xiaoyxue/penrose/internal/core/energy"
	"github.com/xiaoyxue/penrose/internal/core/rng"
	"github.com/xiaoyxue/penrose/internal/core/sample"
	"github.com/xiaoyxue/penrose/internal/core/state"
)

// Config is the run configuration a build/eval/resample invocation reads
// before touching a fixture translation.
type Config struct {
	CanvasWidth  float64 `yaml:"canvas_width"`
	CanvasHeight float64 `yaml:"canvas_height"`
	Seed         uint64  `yaml:"seed"`
	Weight       float64 `yaml:"weight"`
	Resamples    int     `yaml:"resamples"`
}

// Default mirrors internal/shapeset's and internal/core/state's own
// defaults, used when no config file is given on the command line.
func Default() Config {
	return Config{
		CanvasWidth:  400,
		CanvasHeight: 400,
		Seed:         rng.DefaultSeed,
		Weight:       energy.InitWeight,
		Resamples:    500,
	}
}

// Load parses a YAML config document, filling in Default's values for any
// field the document omits.
func Load(r io.Reader) (Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&c); err != nil && err != io.EOF {
		return Config{}, err
	}
	return c, nil
}

// Params converts a Config into the state.Params New builds a State from.
func (c Config) Params() state.Params {
	return state.Params{
		Canvas:    sample.Canvas{Width: c.CanvasWidth, Height: c.CanvasHeight},
		Seed:      c.Seed,
		Weight:    c.Weight,
		Resamples: c.Resamples,
	}
}
