package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"winter/internal/config"
	"winter/internal/trace"
)

func main() {
	var overrides config.Overrides
	overrides.Bind(flag.CommandLine)
	seeds := flag.Int("seeds", 0, "number of seeds to sweep (0 uses the config value)")
	workers := flag.Int("workers", -1, "worker goroutines (0 means one per CPU, -1 uses the config value)")
	out := flag.String("out", "", "CSV frame log path (empty uses the config value)")
	flag.Parse()

	cfg, err := overrides.Resolve(flag.CommandLine)
	if err != nil {
		log.Fatal(err)
	}
	if *seeds > 0 {
		cfg.Trace.Seeds = *seeds
	}
	if *workers >= 0 {
		cfg.Trace.Workers = *workers
	}
	if *out != "" {
		cfg.Trace.Out = *out
	}

	scenario := trace.Scenario{
		Params:     cfg.Snow,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		WarmFrames: cfg.Trace.WarmFrames,
		MaxFrames:  cfg.Trace.MaxFrames,
	}

	var rec *trace.Recorder
	if cfg.Trace.Out != "" {
		f, err := os.Create(cfg.Trace.Out)
		if err != nil {
			log.Fatalf("creating %s: %v", cfg.Trace.Out, err)
		}
		defer f.Close()
		rec = trace.NewRecorder(f)
		scenario.Record = true
	}

	list := make([]int64, cfg.Trace.Seeds)
	for i := range list {
		list[i] = cfg.Seed + int64(i)
	}

	fmt.Printf("Tracing %d seeds (%dx%d, %d particles, %d warm frames)\n",
		len(list), scenario.Width, scenario.Height, scenario.Params.Count, scenario.WarmFrames)

	start := time.Now()
	results, err := trace.Sweep(scenario, list, cfg.Trace.Workers, rec)
	if err != nil {
		log.Fatal(err)
	}
	for _, res := range results {
		status := "drained"
		if !res.Completed {
			status = "timed out"
		}
		fmt.Printf("seed=%d particles=%d %s after %d frames speed=%.2f size=%.2f\n",
			res.Seed, res.Particles, status, res.DrainFrames, res.MeanSpeed, res.MeanSize)
	}
	fmt.Printf("\n%s (elapsed %s)\n", trace.Summarize(results), time.Since(start).Round(time.Millisecond))
}
