package city

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Params holds the tunable rates and seeding ranges for the city sim.
type Params struct {
	GrowthRate float64 `yaml:"growth_rate"`
	DecayRate  float64 `yaml:"decay_rate"`
	// Diffusion above ~0.5 destabilizes the explicit scheme and starts
	// to oscillate. Documented bound, not enforced.
	Diffusion   float64 `yaml:"diffusion"`
	RegenRate   float64 `yaml:"regen_rate"`
	Consumption float64 `yaml:"consumption"`
	SeasonAmp   float64 `yaml:"season_amp"`

	CoreCountMin  int `yaml:"core_count_min"`
	CoreCountMax  int `yaml:"core_count_max"`
	CoreRadiusMin int `yaml:"core_radius_min"`
	CoreRadiusMax int `yaml:"core_radius_max"`
}

// Config controls the city simulation dimensions and tunables.
type Config struct {
	Width  int
	Height int

	// Seed is the default terrain seed. Reset treats an argument of 0
	// as "use this value"; any other argument is used verbatim.
	Seed int64

	// Diagnostics enables the pre-clamp excursion check in the step
	// engine, surfacing unstable configurations as ErrNumericInstability
	// instead of silently clamping them away.
	Diagnostics bool

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:  256,
		Height: 256,
		Seed:   1337,
		Params: Params{
			GrowthRate:    0.055,
			DecayRate:     0.02,
			Diffusion:     0.35,
			RegenRate:     0.02,
			Consumption:   0.03,
			SeasonAmp:     0.6,
			CoreCountMin:  6,
			CoreCountMax:  10,
			CoreRadiusMin: 3,
			CoreRadiusMax: 8,
		},
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["diagnostics"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Diagnostics = parsed
		}
	}
	if v, ok := cfg["growth_rate"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.GrowthRate = parsed
		}
	}
	if v, ok := cfg["decay_rate"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.DecayRate = parsed
		}
	}
	if v, ok := cfg["diffusion"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.Diffusion = parsed
		}
	}
	if v, ok := cfg["regen_rate"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.RegenRate = parsed
		}
	}
	if v, ok := cfg["consumption"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.Consumption = parsed
		}
	}
	if v, ok := cfg["season_amp"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.SeasonAmp = parsed
		}
	}
	if v, ok := cfg["core_count_min"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.CoreCountMin = parsed
		}
	}
	if v, ok := cfg["core_count_max"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.CoreCountMax = parsed
		}
	}
	if c.Params.CoreCountMax < c.Params.CoreCountMin {
		c.Params.CoreCountMax = c.Params.CoreCountMin
	}
	if v, ok := cfg["core_radius_min"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 1 {
			c.Params.CoreRadiusMin = parsed
		}
	}
	if v, ok := cfg["core_radius_max"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 1 {
			c.Params.CoreRadiusMax = parsed
		}
	}
	if c.Params.CoreRadiusMax < c.Params.CoreRadiusMin {
		c.Params.CoreRadiusMax = c.Params.CoreRadiusMin
	}
	return c
}

// LoadPreset reads a YAML params file and returns the defaults with the
// file's values layered on top. Keys absent from the file keep their
// default values.
func LoadPreset(path string) (Params, error) {
	p := DefaultConfig().Params
	raw, err := os.ReadFile(path)
	if err != nil {
		return p, err
	}
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return p, fmt.Errorf("preset %s: %w", path, err)
	}
	if p.CoreCountMax < p.CoreCountMin {
		p.CoreCountMax = p.CoreCountMin
	}
	if p.CoreRadiusMax < p.CoreRadiusMin {
		p.CoreRadiusMax = p.CoreRadiusMin
	}
	return p, nil
}
