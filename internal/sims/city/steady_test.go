package city

import (
	"errors"
	"testing"
)

func TestRunSteadyDeterministicTelemetry(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 24
	cfg.Height = 24

	a, err := RunSteady(cfg, 9, 40)
	if err != nil {
		t.Fatal(err)
	}
	b, err := RunSteady(cfg, 9, 40)
	if err != nil {
		t.Fatal(err)
	}

	if a != b {
		t.Fatalf("telemetry diverged between identical runs: %+v vs %+v", a, b)
	}
	if a.Steps != 40 {
		t.Fatalf("steps = %d, want 40", a.Steps)
	}
	if a.MeanDensity < 0 || a.MeanDensity > 1 || a.MeanResources < 0 || a.MeanResources > 1 {
		t.Fatalf("telemetry means escaped [0,1]: %+v", a)
	}
	if a.PeakDensity < a.MeanDensity {
		t.Fatalf("peak density %f below mean %f", a.PeakDensity, a.MeanDensity)
	}
	if a.MinResources > a.MeanResources {
		t.Fatalf("min resources %f above mean %f", a.MinResources, a.MeanResources)
	}
}

func TestRunSteadyZeroSteps(t *testing.T) {
	result, err := RunSteady(DefaultConfig(), 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if result.Steps != 0 {
		t.Fatalf("steps = %d, want 0", result.Steps)
	}
}

func TestRunSteadyPropagatesConstructionError(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 0
	if _, err := RunSteady(cfg, 1, 10); !errors.Is(err, ErrInvalidDimension) {
		t.Fatalf("error = %v, want ErrInvalidDimension", err)
	}
}
