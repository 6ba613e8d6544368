package city

import (
	"fmt"
	"math"

	"citydyn/internal/core"
)

// Pulse increments and decay constants, applied by TriggerBoom /
// TriggerBust and once per tick by decayPulses.
const (
	pulseIncrement = 0.9
	pulseDecay     = 0.97
	boomFloorStep  = 0.0005
	bustFloorStep  = 0.0004
)

// World holds all state for one city simulation instance: the four
// double-buffered fields, the two pulse scalars, and the tick counter
// driving the season phase. Instances are independent; nothing is
// shared or global.
type World struct {
	cfg Config

	w, h int
	grid *core.FieldGrid

	boom float64
	bust float64
	tick int

	display []uint8

	rng      *core.RNG
	seedUsed int64

	// abandoned counts cells that took the abandonment correction on
	// the most recent tick.
	abandoned int

	stepErr error
}

// New returns a city simulation with the provided dimensions using
// defaults for everything else.
func New(w, h int) (*World, error) {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns a city world configured from the provided
// options. Fields start zeroed; call Reset to seed terrain and cores.
func NewWithConfig(cfg Config) (*World, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, cfg.Width, cfg.Height)
	}
	w := &World{
		cfg:     cfg,
		w:       cfg.Width,
		h:       cfg.Height,
		grid:    core.NewFieldGrid(cfg.Width, cfg.Height),
		display: make([]uint8, cfg.Width*cfg.Height),
		rng:     core.NewRNG(cfg.Seed),
	}
	return w, nil
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "city" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.w, H: w.h} }

// Cells exposes the current display buffer.
func (w *World) Cells() []uint8 { return w.display }

// Density exposes the current density buffer.
func (w *World) Density() []float32 { return w.grid.Cur(core.FieldDensity) }

// Infrastructure exposes the current infrastructure buffer.
func (w *World) Infrastructure() []float32 { return w.grid.Cur(core.FieldInfrastructure) }

// Resources exposes the current resources buffer.
func (w *World) Resources() []float32 { return w.grid.Cur(core.FieldResources) }

// Signal exposes the current signal buffer.
func (w *World) Signal() []float32 { return w.grid.Cur(core.FieldSignal) }

// Boom returns the current boom pulse level.
func (w *World) Boom() float64 { return w.boom }

// Bust returns the current bust pulse level.
func (w *World) Bust() float64 { return w.bust }

// Tick returns the number of completed ticks since the last Reset.
func (w *World) Tick() int { return w.tick }

// Seed returns the seed the current world state was grown from: the
// value passed to the last Reset, or the configured seed when Reset
// received the 0 sentinel.
func (w *World) Seed() int64 { return w.seedUsed }

// Season returns the seasonal modulation for the upcoming tick, a slow
// oscillation around 0.5 with amplitude cfg.Params.SeasonAmp.
func (w *World) Season() float64 {
	return 0.5 + w.cfg.Params.SeasonAmp*0.5*math.Sin(float64(w.tick)*0.0025)
}

// AbandonedLastTick reports how many cells took the abandonment
// correction on the most recent tick.
func (w *World) AbandonedLastTick() int { return w.abandoned }

// Err returns the error recorded by the most recent Step, if any.
// Advance reports errors directly; Step stores them here because the
// registry interface has no error return.
func (w *World) Err() error { return w.stepErr }

// Configure replaces the tunables. The new values take effect on the
// next Advance; seeding ranges apply on the next Reset.
func (w *World) Configure(p Params) {
	if p.CoreCountMax < p.CoreCountMin {
		p.CoreCountMax = p.CoreCountMin
	}
	if p.CoreRadiusMax < p.CoreRadiusMin {
		p.CoreRadiusMax = p.CoreRadiusMin
	}
	w.cfg.Params = p
}

// TriggerBoom fires the boom pulse: a step increase that then decays
// geometrically over the following ticks.
func (w *World) TriggerBoom() {
	w.boom = math.Min(1, w.boom+pulseIncrement)
}

// TriggerBust fires the bust pulse.
func (w *World) TriggerBust() {
	w.bust = math.Min(1, w.bust+pulseIncrement)
}

// decayPulses applies the once-per-tick geometric decay with a linear
// floor step, clamped at zero. Runs after the step engine has read the
// pre-decay values for the tick.
func (w *World) decayPulses() {
	w.boom = math.Max(0, w.boom*pulseDecay-boomFloorStep)
	w.bust = math.Max(0, w.bust*pulseDecay-bustFloorStep)
}

// ReadField returns the current value of the named field at (x, y).
// Coordinates are not wrapped: out-of-range values are the caller's
// error, reported as ErrCoordinateRange.
func (w *World) ReadField(name string, x, y int) (float32, error) {
	f, err := fieldByName(name)
	if err != nil {
		return 0, err
	}
	if x < 0 || x >= w.w || y < 0 || y >= w.h {
		return 0, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrCoordinateRange, x, y, w.w, w.h)
	}
	return w.grid.Cur(f)[w.grid.Index(x, y)], nil
}

func fieldByName(name string) (core.FieldID, error) {
	switch name {
	case "density":
		return core.FieldDensity, nil
	case "infrastructure":
		return core.FieldInfrastructure, nil
	case "resources":
		return core.FieldResources, nil
	case "signal":
		return core.FieldSignal, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, name)
}

func init() {
	core.Register("city", func(cfg map[string]string) core.Sim {
		c := FromMap(cfg)
		// FromMap rejects non-positive dimensions, so construction
		// cannot fail here.
		w, _ := NewWithConfig(c)
		return w
	})
}
