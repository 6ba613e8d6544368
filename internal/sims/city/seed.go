package city

import (
	"math"

	"citydyn/internal/core"
)

// Reset reseeds the world: fresh resource terrain, fresh proto-cores,
// tick counter and pulses back to zero. A seed of 0 falls back to the
// configured seed. Every randomized draw goes through the seeded RNG,
// so identical seeds reproduce identical worlds.
func (w *World) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	w.rng = core.NewRNG(effective)
	w.seedUsed = effective

	w.grid.Clear()
	w.seedTerrain(effective)
	w.seedCores()

	w.tick = 0
	w.boom = 0
	w.bust = 0
	w.abandoned = 0
	w.stepErr = nil

	w.rebuildDisplay()
}

// seedTerrain lays down the resource base: two octaves of coordinate
// noise over a 0.35 floor, landing roughly in [0.2, 0.85].
func (w *World) seedTerrain(seed int64) {
	res := w.grid.Cur(core.FieldResources)
	coarse := float64(17 * seed)
	fine := float64(137 * seed)
	for y := 0; y < w.h; y++ {
		fy := float64(y)
		for x := 0; x < w.w; x++ {
			fx := float64(x)
			v := 0.35 +
				0.35*core.Noise(0.7*fx, 0.7*fy, coarse) +
				0.15*core.Noise(3.3*fx, 3.3*fy, fine)
			res[y*w.w+x] = core.Clamp01(float32(v))
		}
	}
}

// seedCores stamps a handful of circular proto-cores that raise
// density, infrastructure and signal. Values combine via running max so
// overlapping cores reinforce instead of erasing each other.
func (w *World) seedCores() {
	p := w.cfg.Params
	count := p.CoreCountMin
	if p.CoreCountMax > p.CoreCountMin {
		count += w.rng.IntN(p.CoreCountMax - p.CoreCountMin + 1)
	}

	for c := 0; c < count; c++ {
		cx := w.rng.IntN(w.w)
		cy := w.rng.IntN(w.h)
		radius := p.CoreRadiusMin
		if p.CoreRadiusMax > p.CoreRadiusMin {
			radius += w.rng.IntN(p.CoreRadiusMax - p.CoreRadiusMin + 1)
		}
		if radius < 1 {
			radius = 1
		}
		w.stampCore(cx, cy, radius)
	}
}

func (w *World) stampCore(cx, cy, radius int) {
	r := float64(radius)
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			dist := math.Sqrt(float64(dx*dx + dy*dy))
			if dist > r {
				continue
			}
			// Cores are small relative to the grid, so a local offset
			// with wrapped writes is enough; no wrapped distance needed.
			t := 1 - dist/r
			x, y := w.grid.Wrap(cx+dx, cy+dy)
			w.raiseField(core.FieldDensity, x, y, float32(0.55*t+0.1))
			w.raiseField(core.FieldInfrastructure, x, y, float32(0.4*t))
			w.raiseField(core.FieldSignal, x, y, float32(0.6*t+0.2))
		}
	}
}

func (w *World) raiseField(f core.FieldID, x, y int, v float32) {
	idx := y*w.w + x
	buf := w.grid.Cur(f)
	if v > buf[idx] {
		buf[idx] = core.Clamp01(v)
	}
}
