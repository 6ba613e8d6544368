package city

import (
	"strconv"

	"citydyn/internal/core"
)

// Parameters reports the current tunables grouped for presentation.
func (w *World) Parameters() core.ParameterSnapshot {
	params := w.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", w.cfg.Width),
				intParam("h", "Height", w.cfg.Height),
				int64Param("seed", "Seed", w.cfg.Seed),
			},
		},
		{
			Name: "Rates",
			Params: []core.Parameter{
				floatParam("growth_rate", "Growth rate", params.GrowthRate),
				floatParam("decay_rate", "Decay rate", params.DecayRate),
				floatParam("diffusion", "Diffusion", params.Diffusion),
				floatParam("regen_rate", "Resource regen", params.RegenRate),
				floatParam("consumption", "Consumption", params.Consumption),
				floatParam("season_amp", "Season amplitude", params.SeasonAmp),
			},
		},
		{
			Name: "Seeding",
			Params: []core.Parameter{
				intParam("core_count_min", "Core count min", params.CoreCountMin),
				intParam("core_count_max", "Core count max", params.CoreCountMax),
				intParam("core_radius_min", "Core radius min", params.CoreRadiusMin),
				intParam("core_radius_max", "Core radius max", params.CoreRadiusMax),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the tunables adjustable at runtime. Diffusion
// is capped at its documented stability bound; the other rates share a
// generous range.
func (w *World) ParameterControls() []core.ParameterControl {
	rate := func(key, label string, max float64) core.ParameterControl {
		return core.ParameterControl{
			Key:    key,
			Label:  label,
			Type:   core.ParamTypeFloat,
			Step:   0.005,
			Min:    0,
			Max:    max,
			HasMin: true,
			HasMax: true,
		}
	}
	seeding := func(key, label string, min float64) core.ParameterControl {
		return core.ParameterControl{
			Key:    key,
			Label:  label,
			Type:   core.ParamTypeInt,
			Step:   1,
			Min:    min,
			Max:    32,
			HasMin: true,
			HasMax: true,
		}
	}
	return []core.ParameterControl{
		rate("growth_rate", "Growth rate", 0.3),
		rate("decay_rate", "Decay rate", 0.3),
		rate("diffusion", "Diffusion", 0.5),
		rate("regen_rate", "Resource regen", 0.3),
		rate("consumption", "Consumption", 0.3),
		rate("season_amp", "Season amplitude", 1),
		seeding("core_count_min", "Core count min", 0),
		seeding("core_count_max", "Core count max", 0),
		seeding("core_radius_min", "Core radius min", 1),
		seeding("core_radius_max", "Core radius max", 1),
	}
}

// SetFloatParameter updates a floating-point tunable, clamping it into
// the control's range. It reports whether the key was recognized.
func (w *World) SetFloatParameter(key string, value float64) bool {
	var target *float64
	max := 0.3
	switch key {
	case "growth_rate":
		target = &w.cfg.Params.GrowthRate
	case "decay_rate":
		target = &w.cfg.Params.DecayRate
	case "diffusion":
		target = &w.cfg.Params.Diffusion
		max = 0.5
	case "regen_rate":
		target = &w.cfg.Params.RegenRate
	case "consumption":
		target = &w.cfg.Params.Consumption
	case "season_amp":
		target = &w.cfg.Params.SeasonAmp
		max = 1
	default:
		return false
	}
	if value < 0 {
		value = 0
	}
	if value > max {
		value = max
	}
	*target = value
	return true
}

// SetIntParameter updates an integer seeding tunable, effective on the
// next Reset. It reports whether the key was recognized.
func (w *World) SetIntParameter(key string, value int) bool {
	if value < 0 {
		value = 0
	}
	switch key {
	case "core_count_min":
		w.cfg.Params.CoreCountMin = value
		if w.cfg.Params.CoreCountMax < value {
			w.cfg.Params.CoreCountMax = value
		}
	case "core_count_max":
		w.cfg.Params.CoreCountMax = value
		if w.cfg.Params.CoreCountMin > value {
			w.cfg.Params.CoreCountMin = value
		}
	case "core_radius_min":
		if value < 1 {
			value = 1
		}
		w.cfg.Params.CoreRadiusMin = value
		if w.cfg.Params.CoreRadiusMax < value {
			w.cfg.Params.CoreRadiusMax = value
		}
	case "core_radius_max":
		if value < 1 {
			value = 1
		}
		w.cfg.Params.CoreRadiusMax = value
		if w.cfg.Params.CoreRadiusMin > value {
			w.cfg.Params.CoreRadiusMin = value
		}
	default:
		return false
	}
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.Itoa(value)}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.FormatInt(value, 10)}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeFloat, Value: strconv.FormatFloat(value, 'g', -1, 64)}
}
