//go:build ebiten

package ui

import (
	"fmt"
	"image/color"

	"citydyn/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

type statusProvider interface {
	Tick() int
	Seed() int64
	Season() float64
	Boom() float64
	Bust() float64
}

type parameterProvider interface {
	Parameters() core.ParameterSnapshot
}

const (
	hudMarginX   = 6
	hudLineStep  = 14
	hudFirstLine = 16
)

// HUD draws a small status column over the simulation view: sim name,
// clock, pulse levels and the current tunables. Toggled with the H key.
type HUD struct {
	sim     core.Sim
	visible bool
}

// NewHUD constructs a HUD for the provided simulation.
func NewHUD(sim core.Sim) *HUD {
	return &HUD{sim: sim, visible: true}
}

// Toggle flips HUD visibility.
func (h *HUD) Toggle() { h.visible = !h.visible }

// Draw renders the HUD text onto the screen.
func (h *HUD) Draw(screen *ebiten.Image) {
	if !h.visible || h.sim == nil {
		return
	}

	lines := []string{h.sim.Name()}
	if st, ok := h.sim.(statusProvider); ok {
		lines = append(lines,
			fmt.Sprintf("seed %d  tick %d  season %.2f", st.Seed(), st.Tick(), st.Season()),
			fmt.Sprintf("boom %.2f  bust %.2f", st.Boom(), st.Bust()),
		)
	}
	if pp, ok := h.sim.(parameterProvider); ok {
		for _, group := range pp.Parameters().Groups {
			lines = append(lines, group.Name)
			for _, p := range group.Params {
				lines = append(lines, fmt.Sprintf("  %s %s", p.Label, p.Value))
			}
		}
	}
	lines = append(lines,
		"space pause  n step  r reset  s reseed",
		"b boom  x bust  tab/-/= tune  h hud  q quit",
	)

	face := basicfont.Face7x13
	y := hudFirstLine
	shadow := color.RGBA{A: 220}
	fg := color.RGBA{R: 235, G: 235, B: 225, A: 255}
	for _, line := range lines {
		text.Draw(screen, line, face, hudMarginX+1, y+1, shadow)
		text.Draw(screen, line, face, hudMarginX, y, fg)
		y += hudLineStep
	}
}
