package city

import (
	"fmt"
	"math"

	"citydyn/internal/core"
)

// Abandonment threshold: cells whose infrastructure collapses below
// this level while still densely populated take an extra density loss.
const (
	abandonInfraMax  = 0.12
	abandonDensity   = 0.6
	abandonBaseLoss  = 0.03
	abandonInfraLoss = 0.05
)

// stabilityTolerance bounds how far a pre-clamp value may excurse
// outside the unit interval before the diagnostics check treats the
// configuration as unstable. Ordinary growth and diffusion overshoot a
// little every tick; oscillation overshoots a lot.
const stabilityTolerance = 0.5

// Advance computes one tick: every cell's next state from the frozen
// current buffers plus the global season and pulse values, then a
// single swap, the pulse decay and a display rebuild. The rule is
// purely local, so cell order does not matter.
//
// A NaN, an infinity, or (with Diagnostics enabled) a pre-clamp value
// outside the tolerance aborts the tick before the swap and returns
// ErrNumericInstability; the partially written next buffers are never
// promoted.
func (w *World) Advance() error {
	p := w.cfg.Params
	season := w.Season()
	boom, bust := w.boom, w.bust
	diff := p.Diffusion * 0.2
	tick := float64(w.tick)

	den := w.grid.Cur(core.FieldDensity)
	inf := w.grid.Cur(core.FieldInfrastructure)
	res := w.grid.Cur(core.FieldResources)
	sig := w.grid.Cur(core.FieldSignal)
	denN := w.grid.Next(core.FieldDensity)
	infN := w.grid.Next(core.FieldInfrastructure)
	resN := w.grid.Next(core.FieldResources)
	sigN := w.grid.Next(core.FieldSignal)

	sigSeed := 999 + tick*0.001
	infSeed := 321 + tick

	abandoned := 0
	for y := 0; y < w.h; y++ {
		fy := float64(y)
		for x := 0; x < w.w; x++ {
			idx := y*w.w + x
			fx := float64(x)

			d := float64(den[idx])
			i := float64(inf[idx])
			r := float64(res[idx])
			s := float64(sig[idx])

			lapD := float64(w.grid.Laplacian4(core.FieldDensity, x, y))
			lapI := float64(w.grid.Laplacian4(core.FieldInfrastructure, x, y))
			lapR := float64(w.grid.Laplacian4(core.FieldResources, x, y))
			lapS := float64(w.grid.Laplacian4(core.FieldSignal, x, y))

			// Resources: diffuse, regenerate toward saturation (season
			// and boom help), drain with density scaled by
			// infrastructure throughput, extra drain during a bust.
			regen := p.RegenRate * (0.4 + 0.6*season + 0.8*boom)
			cons := p.Consumption * (0.6 + 0.7*i)
			rNext := r + diff*lapR + regen*(1-r) - cons*d - 0.08*bust*(0.3+d)

			// Signal diffuses faster than the other fields, relaxes
			// toward local infrastructure, decays slowly, and gets a
			// small stochastic kick that breaks symmetry.
			sNext := s + diff*1.25*lapS + 0.08*(i-s) - 0.01*s +
				(core.Noise(2.7*fx, 2.7*fy, sigSeed)-0.5)*0.003

			// Infrastructure builds toward density faster when
			// resources are plentiful, sags when they are scarce,
			// erodes during a bust, and takes pseudo-random wear.
			iNext := i + diff*0.6*lapI + 0.12*(d-i)*(0.5+0.6*r) -
				0.015*(1-r) - 0.02*bust -
				0.01*(core.Noise(fx, fy, infSeed)-0.5)

			// Density: logistic growth gated by attractiveness and
			// resource availability, decay driven by scarcity,
			// congestion and bust.
			attractiveness := 0.35 + 0.65*(0.6*s+0.4*i)
			congestion := math.Max(0, d-0.65) * 0.6
			growth := p.GrowthRate * d * (1 - d) * attractiveness *
				(0.3 + 0.7*r) * (1 + 0.8*boom)
			decay := p.DecayRate * (0.35 + 0.65*(1-r)) *
				(0.5 + congestion) * (1 + 0.8*bust)
			dNext := d + growth - decay + diff*0.28*lapD

			// Abandonment: a dense cell whose infrastructure has
			// collapsed loses extra population. Thresholds test the
			// pre-tick values, never the half-updated ones.
			if i < abandonInfraMax && d > abandonDensity {
				dNext -= abandonBaseLoss + abandonInfraLoss*(abandonInfraMax-i)
				abandoned++
			}

			if err := w.checkStable(x, y, dNext, iNext, rNext, sNext); err != nil {
				return err
			}

			denN[idx] = core.Clamp01(float32(dNext))
			infN[idx] = core.Clamp01(float32(iNext))
			resN[idx] = core.Clamp01(float32(rNext))
			sigN[idx] = core.Clamp01(float32(sNext))
		}
	}

	w.grid.Swap()
	w.tick++
	w.abandoned = abandoned
	w.decayPulses()
	w.rebuildDisplay()
	return nil
}

// Step adapts Advance to the registry interface, which has no error
// return. Any instability error is recorded and exposed via Err; the
// world stops advancing once one is recorded.
func (w *World) Step() {
	if w.stepErr != nil {
		return
	}
	if err := w.Advance(); err != nil {
		w.stepErr = err
	}
}

func (w *World) checkStable(x, y int, vals ...float64) error {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite value at (%d,%d) on tick %d", ErrNumericInstability, x, y, w.tick)
		}
		if w.cfg.Diagnostics && (v < -stabilityTolerance || v > 1+stabilityTolerance) {
			return fmt.Errorf("%w: pre-clamp value %.3f at (%d,%d) on tick %d (diffusion too high?)", ErrNumericInstability, v, x, y, w.tick)
		}
	}
	return nil
}
