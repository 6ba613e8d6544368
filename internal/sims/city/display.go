package city

import (
	"image/color"

	"citydyn/internal/core"
)

// The display buffer packs a quantized view of the continuous fields
// into one byte per cell: four bits of density level and two bits of
// infrastructure level index a 64-entry palette.
const (
	displayDensityLevels = 16
	displayDensityMask   = 0x0f
	displayInfraShift    = 4
	displayInfraLevels   = 4
)

var cityPalette = buildCityPalette()

// Palette exposes the color palette used for rendering the city world.
func (w *World) Palette() []color.RGBA {
	return cityPalette
}

func buildCityPalette() []color.RGBA {
	ground := color.NRGBA{R: 26, G: 30, B: 24, A: 255}
	dense := color.NRGBA{R: 236, G: 200, B: 120, A: 255}
	roads := color.NRGBA{R: 96, G: 116, B: 142, A: 255}

	palette := make([]color.RGBA, displayDensityLevels*displayInfraLevels)
	for i := range palette {
		dLevel := i & displayDensityMask
		iLevel := i >> displayInfraShift
		base := blendColors(ground, dense, float64(dLevel)/float64(displayDensityLevels-1))
		tinted := blendColors(base, roads, 0.35*float64(iLevel)/float64(displayInfraLevels-1))
		palette[i] = color.RGBA{R: tinted.R, G: tinted.G, B: tinted.B, A: tinted.A}
	}
	return palette
}

func blendColors(base, overlay color.NRGBA, overlayWeight float64) color.NRGBA {
	if overlayWeight <= 0 {
		return base
	}
	if overlayWeight >= 1 {
		return overlay
	}
	inv := 1 - overlayWeight
	return color.NRGBA{
		R: uint8(float64(base.R)*inv + float64(overlay.R)*overlayWeight + 0.5),
		G: uint8(float64(base.G)*inv + float64(overlay.G)*overlayWeight + 0.5),
		B: uint8(float64(base.B)*inv + float64(overlay.B)*overlayWeight + 0.5),
		A: uint8(float64(base.A)*inv + float64(overlay.A)*overlayWeight + 0.5),
	}
}

func encodeDisplayValue(density, infrastructure float32) uint8 {
	d := int(density * float32(displayDensityLevels))
	if d >= displayDensityLevels {
		d = displayDensityLevels - 1
	}
	i := int(infrastructure * float32(displayInfraLevels))
	if i >= displayInfraLevels {
		i = displayInfraLevels - 1
	}
	return uint8(d | i<<displayInfraShift)
}

func (w *World) rebuildDisplay() {
	den := w.grid.Cur(core.FieldDensity)
	inf := w.grid.Cur(core.FieldInfrastructure)
	for idx := range w.display {
		w.display[idx] = encodeDisplayValue(den[idx], inf[idx])
	}
}
