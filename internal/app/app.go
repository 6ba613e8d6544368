//go:build ebiten

package app

import (
	"image/color"
	"strconv"
	"time"

	"citydyn/internal/core"
	"citydyn/internal/render"
	"citydyn/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type paletteProvider interface {
	Palette() []color.RGBA
}

type pulseTrigger interface {
	TriggerBoom()
	TriggerBust()
}

type errReporter interface {
	Err() error
}

type parameterSource interface {
	core.ParameterControlsProvider
	Parameters() core.ParameterSnapshot
}

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	hud     *ui.HUD

	scale    int
	paused   bool
	tickOnce bool
	seed     int64
	control  int
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, scale int, seed int64) *Game {
	return &Game{
		sim:     sim,
		painter: render.NewGridPainter(sim.Size().W, sim.Size().H),
		hud:     ui.NewHUD(sim),
		scale:   scale,
		seed:    seed,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame input and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.hud.Toggle()
	}
	if pt, ok := g.sim.(pulseTrigger); ok {
		if inpututil.IsKeyJustPressed(ebiten.KeyB) {
			pt.TriggerBoom()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyX) {
			pt.TriggerBust()
		}
	}
	if ps, ok := g.sim.(parameterSource); ok {
		g.handleTuning(ps)
	}

	if (!g.paused) || g.tickOnce {
		g.sim.Step()
		g.tickOnce = false
		if er, ok := g.sim.(errReporter); ok {
			if err := er.Err(); err != nil {
				return err
			}
		}
	}
	return nil
}

// handleTuning lets the keyboard walk the sim's control list (tab) and
// nudge the selected tunable (minus/equal) by its step, clamped to the
// control's bounds.
func (g *Game) handleTuning(ps parameterSource) {
	controls := ps.ParameterControls()
	if len(controls) == 0 {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.control = (g.control + 1) % len(controls)
	}
	if g.control >= len(controls) {
		g.control = 0
	}

	direction := 0
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		direction = -1
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		direction = 1
	}
	if direction == 0 {
		return
	}

	ctl := controls[g.control]
	raw, ok := lookupParameter(ps.Parameters(), ctl.Key)
	if !ok {
		return
	}
	switch ctl.Type {
	case core.ParamTypeFloat:
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return
		}
		value += float64(direction) * ctl.Step
		if ctl.HasMin && value < ctl.Min {
			value = ctl.Min
		}
		if ctl.HasMax && value > ctl.Max {
			value = ctl.Max
		}
		if fs, ok := g.sim.(core.FloatParameterSetter); ok {
			fs.SetFloatParameter(ctl.Key, value)
		}
	case core.ParamTypeInt:
		value, err := strconv.Atoi(raw)
		if err != nil {
			return
		}
		step := int(ctl.Step)
		if step == 0 {
			step = 1
		}
		value += direction * step
		if ctl.HasMin && value < int(ctl.Min) {
			value = int(ctl.Min)
		}
		if ctl.HasMax && value > int(ctl.Max) {
			value = int(ctl.Max)
		}
		if is, ok := g.sim.(core.IntParameterSetter); ok {
			is.SetIntParameter(ctl.Key, value)
		}
	}
}

func lookupParameter(snapshot core.ParameterSnapshot, key string) (string, bool) {
	for _, group := range snapshot.Groups {
		for _, p := range group.Params {
			if p.Key == key {
				return p.Value, true
			}
		}
	}
	return "", false
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	var palette []color.RGBA
	if pp, ok := g.sim.(paletteProvider); ok {
		palette = pp.Palette()
	}
	g.painter.Blit(screen, g.sim.Cells(), palette, g.scale)
	g.hud.Draw(screen)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W * g.scale, s.H * g.scale
}
