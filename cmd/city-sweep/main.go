package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"
	"sort"
	"sync"
	"time"

	"citydyn/internal/sims/city"
)

type paramSet struct {
	growth      float64
	decay       float64
	diffusion   float64
	regen       float64
	consumption float64
}

func (p paramSet) String() string {
	return fmt.Sprintf("growth=%.3f decay=%.3f diffusion=%.2f regen=%.3f consumption=%.3f",
		p.growth, p.decay, p.diffusion, p.regen, p.consumption)
}

type sweepResult struct {
	params paramSet
	result city.SteadyResult
	err    error
}

// score ranks configurations: dense, built-up cities that keep their
// resource base alive and avoid mass abandonment come out on top.
func (r sweepResult) score() float64 {
	if r.err != nil {
		return -1
	}
	s := r.result.MeanDensity + 0.5*r.result.MeanInfrastructure + 0.25*r.result.MeanResources
	s -= float64(r.result.AbandonmentEvents) / float64(r.result.Steps+1) * 0.001
	return s
}

func main() {
	steps := flag.Int("steps", 600, "ticks to simulate per configuration")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	width := flag.Int("w", 96, "grid width")
	height := flag.Int("h", 96, "grid height")
	seed := flag.Int64("seed", 1337, "seed shared by every run")
	top := flag.Int("top", 12, "how many ranked results to print")
	preset := flag.String("preset", "", "YAML preset supplying the non-swept parameters")
	flag.Parse()

	baseCfg := city.DefaultConfig()
	baseCfg.Width = *width
	baseCfg.Height = *height
	baseCfg.Seed = *seed
	if *preset != "" {
		params, err := city.LoadPreset(*preset)
		if err != nil {
			log.Fatalf("load preset: %v", err)
		}
		baseCfg.Params = params
	}

	growthOptions := []float64{0.035, 0.055, 0.08}
	decayOptions := []float64{0.012, 0.02, 0.032}
	diffusionOptions := []float64{0.2, 0.35, 0.5}
	regenOptions := []float64{0.012, 0.02, 0.03}
	consumptionOptions := []float64{0.02, 0.03, 0.045}

	var sets []paramSet
	for _, g := range growthOptions {
		for _, d := range decayOptions {
			for _, df := range diffusionOptions {
				for _, rg := range regenOptions {
					for _, cs := range consumptionOptions {
						sets = append(sets, paramSet{growth: g, decay: d, diffusion: df, regen: rg, consumption: cs})
					}
				}
			}
		}
	}

	if *workers < 1 {
		*workers = 1
	}

	jobs := make(chan paramSet)
	results := make([]sweepResult, 0, len(sets))
	var mu sync.Mutex
	var wg sync.WaitGroup

	started := time.Now()
	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for set := range jobs {
				cfg := baseCfg
				cfg.Params.GrowthRate = set.growth
				cfg.Params.DecayRate = set.decay
				cfg.Params.Diffusion = set.diffusion
				cfg.Params.RegenRate = set.regen
				cfg.Params.Consumption = set.consumption

				res, err := city.RunSteady(cfg, *seed, *steps)
				mu.Lock()
				results = append(results, sweepResult{params: set, result: res, err: err})
				mu.Unlock()
			}
		}()
	}
	for _, set := range sets {
		jobs <- set
	}
	close(jobs)
	wg.Wait()

	sort.Slice(results, func(i, j int) bool {
		return results[i].score() > results[j].score()
	})

	fmt.Printf("swept %d configurations on %dx%d for %d ticks in %s\n\n",
		len(results), *width, *height, *steps, time.Since(started).Round(time.Millisecond))

	limit := *top
	if limit > len(results) {
		limit = len(results)
	}
	for i := 0; i < limit; i++ {
		r := results[i]
		if r.err != nil {
			fmt.Printf("%2d. %s  FAILED: %v\n", i+1, r.params, r.err)
			continue
		}
		fmt.Printf("%2d. %s\n    density mean=%.3f peak=%.3f  infra=%.3f  resources mean=%.3f min=%.3f  abandoned=%d\n",
			i+1, r.params,
			r.result.MeanDensity, r.result.PeakDensity, r.result.MeanInfrastructure,
			r.result.MeanResources, r.result.MinResources, r.result.AbandonmentEvents)
	}
}
