package city

import (
	"errors"
	"testing"

	"citydyn/internal/core"
)

// bareWorld returns a 10x10 world with zeroed fields and no diffusion,
// bypassing the seeder so scenarios can stage exact cell states.
func bareWorld(t *testing.T) *World {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Width = 10
	cfg.Height = 10
	cfg.Params.Diffusion = 0
	world, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return world
}

func TestGrowthAtHealthyCell(t *testing.T) {
	world := bareWorld(t)
	world.grid.Set(core.FieldDensity, 5, 5, 0.5)
	world.grid.Set(core.FieldInfrastructure, 5, 5, 1.0)
	world.grid.Set(core.FieldResources, 5, 5, 1.0)

	if err := world.Advance(); err != nil {
		t.Fatal(err)
	}

	if got := world.Density()[world.grid.Index(5, 5)]; got <= 0.5 {
		t.Fatalf("well-supplied cell density = %f, want growth above 0.5", got)
	}
	if world.AbandonedLastTick() != 0 {
		t.Fatal("abandonment must not fire while infrastructure is high")
	}

	// With diffusion off, nothing leaks into the empty neighbors.
	for idx, v := range world.Density() {
		if idx == world.grid.Index(5, 5) {
			continue
		}
		if v != 0 {
			t.Fatalf("density[%d] = %f, want empty cells to stay at 0", idx, v)
		}
	}
}

func TestAbandonmentCollapse(t *testing.T) {
	world := bareWorld(t)
	world.grid.Set(core.FieldDensity, 5, 5, 0.8)
	// Infrastructure stays at zero: below the 0.12 threshold.

	if err := world.Advance(); err != nil {
		t.Fatal(err)
	}

	got := world.Density()[world.grid.Index(5, 5)]
	if got > 0.8-abandonBaseLoss {
		t.Fatalf("collapsed cell density = %f, want a drop of at least %f", got, abandonBaseLoss)
	}
	if world.AbandonedLastTick() != 1 {
		t.Fatalf("abandonment events = %d, want exactly 1", world.AbandonedLastTick())
	}
}

func TestAbandonmentUsesPreTickValues(t *testing.T) {
	world := bareWorld(t)
	// Infrastructure just above the threshold: the branch must not fire
	// even though this tick's update will drag infrastructure lower.
	world.grid.Set(core.FieldDensity, 5, 5, 0.8)
	world.grid.Set(core.FieldInfrastructure, 5, 5, 0.13)

	if err := world.Advance(); err != nil {
		t.Fatal(err)
	}
	if world.AbandonedLastTick() != 0 {
		t.Fatal("abandonment fired although pre-tick infrastructure was above the threshold")
	}
}

func TestBoomBoostsResourceRegen(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 32
	cfg.Height = 32

	newRun := func() *World {
		world, err := NewWithConfig(cfg)
		if err != nil {
			t.Fatal(err)
		}
		world.Reset(5)
		return world
	}

	base := newRun()
	boomed := newRun()
	boomed.TriggerBoom()

	if err := base.Advance(); err != nil {
		t.Fatal(err)
	}
	if err := boomed.Advance(); err != nil {
		t.Fatal(err)
	}

	var baseSum, boomSum float64
	for i := range base.Resources() {
		b := base.Resources()[i]
		o := boomed.Resources()[i]
		if o < b {
			t.Fatalf("resources[%d] dropped under boom: %f < %f", i, o, b)
		}
		baseSum += float64(b)
		boomSum += float64(o)
	}
	if boomSum <= baseSum {
		t.Fatalf("boom regen did not raise resources: %f <= %f", boomSum, baseSum)
	}

	center := base.grid.Index(16, 16)
	if boomed.Resources()[center] <= base.Resources()[center] {
		t.Fatal("boom regen should strictly raise an unsaturated cell")
	}
}

func TestDiagnosticsFlagInstability(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 4
	cfg.Height = 4
	cfg.Diagnostics = true
	cfg.Params.Diffusion = 5 // far beyond the documented 0.5 bound

	world, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	// A resource checkerboard maximizes the Laplacian everywhere.
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if (x+y)%2 == 0 {
				world.grid.Set(core.FieldResources, x, y, 1)
			}
		}
	}

	if err := world.Advance(); !errors.Is(err, ErrNumericInstability) {
		t.Fatalf("Advance error = %v, want ErrNumericInstability", err)
	}

	// The registry adapter records the error and freezes the world.
	world.Step()
	if !errors.Is(world.Err(), ErrNumericInstability) {
		t.Fatalf("Err() = %v, want recorded instability", world.Err())
	}
	tick := world.Tick()
	world.Step()
	if world.Tick() != tick {
		t.Fatal("world must stop advancing after an instability error")
	}
}

func TestFailedTickDoesNotSwap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 4
	cfg.Height = 4
	cfg.Diagnostics = true
	cfg.Params.Diffusion = 5

	world, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if (x+y)%2 == 0 {
				world.grid.Set(core.FieldResources, x, y, 1)
			}
		}
	}
	before := append([]float32(nil), world.Resources()...)

	if err := world.Advance(); err == nil {
		t.Fatal("expected instability")
	}
	for i := range before {
		if world.Resources()[i] != before[i] {
			t.Fatal("aborted tick leaked partially computed state into the current buffers")
		}
	}
	if world.Tick() != 0 {
		t.Fatal("aborted tick must not advance the clock")
	}
}
