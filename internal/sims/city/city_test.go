package city

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func TestResetDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 32
	cfg.Height = 24
	cfg.Seed = 99

	world, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	world.Reset(0)

	initialDensity := append([]float32(nil), world.Density()...)
	initialInfra := append([]float32(nil), world.Infrastructure()...)
	initialResources := append([]float32(nil), world.Resources()...)
	initialSignal := append([]float32(nil), world.Signal()...)
	initialCells := append([]uint8(nil), world.Cells()...)

	if len(initialDensity) == 0 {
		t.Fatal("world must allocate field buffers")
	}

	// Mutate state to ensure Reset rebuilds from scratch.
	world.Density()[0] = 1
	world.Resources()[1] = 0
	world.TriggerBoom()
	if err := world.Advance(); err != nil {
		t.Fatal(err)
	}

	world.Reset(0)

	if !slices.Equal(initialDensity, world.Density()) {
		t.Fatal("Reset with config seed not deterministic for density")
	}
	if !slices.Equal(initialInfra, world.Infrastructure()) {
		t.Fatal("Reset with config seed not deterministic for infrastructure")
	}
	if !slices.Equal(initialResources, world.Resources()) {
		t.Fatal("Reset with config seed not deterministic for resources")
	}
	if !slices.Equal(initialSignal, world.Signal()) {
		t.Fatal("Reset with config seed not deterministic for signal")
	}
	if !slices.Equal(initialCells, world.Cells()) {
		t.Fatal("Reset with config seed not deterministic for display buffer")
	}
	if world.Tick() != 0 || world.Boom() != 0 || world.Bust() != 0 {
		t.Fatal("Reset must zero the tick counter and pulses")
	}

	world.Reset(777)
	seedResources := append([]float32(nil), world.Resources()...)
	world.Reset(777)
	if !slices.Equal(seedResources, world.Resources()) {
		t.Fatal("Reset with explicit seed not deterministic")
	}
	if slices.Equal(initialResources, seedResources) {
		t.Fatal("different seeds should produce different terrain")
	}
}

func TestResetSeedSentinel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 16
	cfg.Height = 12
	cfg.Seed = 99

	a, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	a.Reset(0)
	if a.Seed() != 99 {
		t.Fatalf("Seed() after Reset(0) = %d, want fallback to configured 99", a.Seed())
	}

	b, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	b.Reset(99)
	if b.Seed() != 99 {
		t.Fatalf("Seed() after Reset(99) = %d, want 99", b.Seed())
	}
	if !slices.Equal(a.Resources(), b.Resources()) || !slices.Equal(a.Density(), b.Density()) {
		t.Fatal("Reset(0) must grow the same world as Reset(cfg.Seed)")
	}

	a.Reset(777)
	if a.Seed() != 777 {
		t.Fatalf("Seed() after Reset(777) = %d, want the explicit seed verbatim", a.Seed())
	}
}

func TestStepDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 24
	cfg.Height = 24

	run := func() *World {
		world, err := NewWithConfig(cfg)
		if err != nil {
			t.Fatal(err)
		}
		world.Reset(41)
		for i := 0; i < 50; i++ {
			if i == 10 {
				world.TriggerBoom()
			}
			if i == 30 {
				world.TriggerBust()
			}
			if err := world.Advance(); err != nil {
				t.Fatal(err)
			}
		}
		return world
	}

	a := run()
	b := run()

	if !slices.Equal(a.Density(), b.Density()) {
		t.Fatal("density diverged between identical runs")
	}
	if !slices.Equal(a.Infrastructure(), b.Infrastructure()) {
		t.Fatal("infrastructure diverged between identical runs")
	}
	if !slices.Equal(a.Resources(), b.Resources()) {
		t.Fatal("resources diverged between identical runs")
	}
	if !slices.Equal(a.Signal(), b.Signal()) {
		t.Fatal("signal diverged between identical runs")
	}
	if a.Boom() != b.Boom() || a.Bust() != b.Bust() {
		t.Fatal("pulses diverged between identical runs")
	}
}

func TestFieldsStayBounded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 32
	cfg.Height = 32

	world, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	world.Reset(7)
	world.TriggerBoom()

	for i := 0; i < 200; i++ {
		if i == 60 {
			world.TriggerBust()
		}
		if err := world.Advance(); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
	}

	for name, buf := range map[string][]float32{
		"density":        world.Density(),
		"infrastructure": world.Infrastructure(),
		"resources":      world.Resources(),
		"signal":         world.Signal(),
	} {
		for idx, v := range buf {
			if v < 0 || v > 1 || math.IsNaN(float64(v)) {
				t.Fatalf("%s[%d] = %f escaped [0,1]", name, idx, v)
			}
		}
	}
}

func TestPulseBoundsAndMonotoneDecay(t *testing.T) {
	world, err := New(8, 8)
	if err != nil {
		t.Fatal(err)
	}
	world.Reset(1)

	world.TriggerBoom()
	world.TriggerBoom()
	if world.Boom() != 1 {
		t.Fatalf("boom after two triggers = %f, want cap at 1", world.Boom())
	}
	world.TriggerBust()
	if got := world.Bust(); math.Abs(got-0.9) > 1e-12 {
		t.Fatalf("bust after one trigger = %f, want 0.9", got)
	}

	prevBoom, prevBust := world.Boom(), world.Bust()
	for i := 0; i < 400; i++ {
		if err := world.Advance(); err != nil {
			t.Fatal(err)
		}
		boom, bust := world.Boom(), world.Bust()
		if boom < 0 || bust < 0 || boom > 1 || bust > 1 {
			t.Fatalf("pulse escaped [0,1]: boom=%f bust=%f", boom, bust)
		}
		if boom > prevBoom || bust > prevBust {
			t.Fatalf("pulse decay not monotone on tick %d", i)
		}
		prevBoom, prevBust = boom, bust
	}
	if prevBoom != 0 || prevBust != 0 {
		t.Fatalf("pulses should decay to zero, got boom=%f bust=%f", prevBoom, prevBust)
	}
}

func TestSeasonOscillatesAroundHalf(t *testing.T) {
	world, err := New(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	amp := world.cfg.Params.SeasonAmp

	if got := world.Season(); math.Abs(got-0.5) > 1e-12 {
		t.Fatalf("season at tick 0 = %f, want 0.5", got)
	}

	low, high := 1.0, 0.0
	for tick := 0; tick < 5000; tick += 25 {
		world.tick = tick
		s := world.Season()
		if s < 0.5-amp/2-1e-9 || s > 0.5+amp/2+1e-9 {
			t.Fatalf("season %f at tick %d escapes amplitude band", s, tick)
		}
		low = math.Min(low, s)
		high = math.Max(high, s)
	}
	if high-low < amp/2 {
		t.Fatalf("season barely moved (%f..%f), expected a full swing", low, high)
	}
}

func TestConstructorRejectsBadDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 5}, {5, 0}, {-1, 5}, {5, -3}} {
		if _, err := New(dims[0], dims[1]); !errors.Is(err, ErrInvalidDimension) {
			t.Fatalf("New(%d,%d) error = %v, want ErrInvalidDimension", dims[0], dims[1], err)
		}
	}
}

func TestReadField(t *testing.T) {
	world, err := New(10, 8)
	if err != nil {
		t.Fatal(err)
	}
	world.Reset(3)

	got, err := world.ReadField("resources", 4, 5)
	if err != nil {
		t.Fatal(err)
	}
	if want := world.Resources()[5*10+4]; got != want {
		t.Fatalf("ReadField = %f, want %f", got, want)
	}

	if _, err := world.ReadField("altitude", 0, 0); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("unknown field error = %v, want ErrUnknownField", err)
	}
	for _, c := range [][2]int{{-1, 0}, {10, 0}, {0, -1}, {0, 8}} {
		if _, err := world.ReadField("density", c[0], c[1]); !errors.Is(err, ErrCoordinateRange) {
			t.Fatalf("ReadField(%d,%d) error = %v, want ErrCoordinateRange", c[0], c[1], err)
		}
	}
}

func TestSeededCoresRaiseAllThreeLayers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 48
	cfg.Height = 48

	world, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	world.Reset(11)

	var peakDensity, peakInfra, peakSignal float32
	for i := range world.Density() {
		peakDensity = max(peakDensity, world.Density()[i])
		peakInfra = max(peakInfra, world.Infrastructure()[i])
		peakSignal = max(peakSignal, world.Signal()[i])
	}
	// A core center stamps density 0.65, infrastructure 0.4, signal 0.8.
	if peakDensity < 0.6 {
		t.Fatalf("peak density %f, expected a core center near 0.65", peakDensity)
	}
	if peakInfra < 0.35 {
		t.Fatalf("peak infrastructure %f, expected a core center near 0.4", peakInfra)
	}
	if peakSignal < 0.75 {
		t.Fatalf("peak signal %f, expected a core center near 0.8", peakSignal)
	}

	for i, v := range world.Resources() {
		if v < 0.15 || v > 0.9 {
			t.Fatalf("terrain resources[%d] = %f outside the expected band", i, v)
		}
	}
}
