package city

// SteadyResult captures telemetry from a deterministic headless run
// used for parameter exploration.
type SteadyResult struct {
	// Steps reports how many ticks the run executed.
	Steps int
	// MeanDensity and PeakDensity summarize the final density field.
	MeanDensity float64
	PeakDensity float64
	// MeanInfrastructure summarizes the final infrastructure field.
	MeanInfrastructure float64
	// MeanResources and MinResources summarize the final resource field.
	MeanResources float64
	MinResources  float64
	// AbandonmentEvents totals the cells that took the abandonment
	// correction across the whole run.
	AbandonmentEvents int
}

// RunSteady seeds a fresh world from cfg, advances it for the requested
// number of ticks and returns field telemetry. The run is fully
// deterministic for a given cfg and seed. An instability error aborts
// the run and is returned with the telemetry gathered so far.
func RunSteady(cfg Config, seed int64, steps int) (SteadyResult, error) {
	result := SteadyResult{}
	if steps <= 0 {
		return result, nil
	}

	world, err := NewWithConfig(cfg)
	if err != nil {
		return result, err
	}
	world.Reset(seed)

	for step := 0; step < steps; step++ {
		if err := world.Advance(); err != nil {
			result.Steps = step
			return result, err
		}
		result.AbandonmentEvents += world.AbandonedLastTick()
	}
	result.Steps = steps

	den := world.Density()
	inf := world.Infrastructure()
	res := world.Resources()
	total := len(den)
	if total == 0 {
		return result, nil
	}

	var denSum, infSum, resSum float64
	peak := float64(den[0])
	minRes := float64(res[0])
	for i := 0; i < total; i++ {
		d := float64(den[i])
		denSum += d
		if d > peak {
			peak = d
		}
		infSum += float64(inf[i])
		r := float64(res[i])
		resSum += r
		if r < minRes {
			minRes = r
		}
	}
	result.MeanDensity = denSum / float64(total)
	result.PeakDensity = peak
	result.MeanInfrastructure = infSum / float64(total)
	result.MeanResources = resSum / float64(total)
	result.MinResources = minRes
	return result, nil
}
