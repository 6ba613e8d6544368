//go:build ebiten

package main

import (
	"errors"
	"flag"
	"fmt"
	"log"

	"citydyn/internal/app"
	"citydyn/internal/core"
	"citydyn/internal/sims/city"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		log.Fatalf("unknown sim %q", cfg.Sim)
	}

	sim := factory(map[string]string{
		"w":    fmt.Sprint(cfg.Width),
		"h":    fmt.Sprint(cfg.Height),
		"seed": fmt.Sprint(cfg.Seed),
	})

	if cfg.Preset != "" {
		params, err := city.LoadPreset(cfg.Preset)
		if err != nil {
			log.Fatalf("load preset: %v", err)
		}
		world, ok := sim.(*city.World)
		if !ok {
			log.Fatalf("sim %q does not accept presets", cfg.Sim)
		}
		world.Configure(params)
	}

	sim.Reset(cfg.Seed)

	game := app.New(sim, cfg.Scale, cfg.Seed)
	size := sim.Size()

	ebiten.SetWindowTitle("citydyn — " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
