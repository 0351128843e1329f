// Profiling:
// go build ./profile/kernel
// ./kernel -strategy parent -frames 600
// go tool pprof -http=":8000" -nodefraction=0.001 ./kernel cpu.pprof

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/pkg/profile"

	"github.com/edwinsyarief/flipboard/config"
	"github.com/edwinsyarief/flipboard/ecs"
	"github.com/edwinsyarief/flipboard/frame"
	"github.com/edwinsyarief/flipboard/kernel"
	"github.com/edwinsyarief/flipboard/profiler"
	"github.com/edwinsyarief/flipboard/spawn"
)

func main() {
	cfgPath := flag.String("config", "", "YAML config file (defaults when empty)")
	strategy := flag.String("strategy", "", "override strategy: matrix, rotate or parent")
	count := flag.Int("count", -1, "override sprite count")
	frames := flag.Int("frames", -1, "override frame count, 0 runs until interrupted")
	workers := flag.Int("workers", -1, "override worker count")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			log.Fatalf("[Bench] %v", err)
		}
	}
	if *strategy != "" {
		cfg.Strategy = *strategy
	}
	if *count >= 0 {
		cfg.Spawn.Count = *count
	}
	if *frames >= 0 {
		cfg.Frames = *frames
	}
	if *workers >= 0 {
		cfg.Dispatch.Workers = *workers
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[Bench] invalid config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	p := profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	err := run(ctx, cfg)
	p.Stop()
	if err != nil && ctx.Err() == nil {
		log.Fatalf("[Bench] %v", err)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	opts, err := cfg.KernelOptions()
	if err != nil {
		return err
	}
	w := ecs.NewWorld(cfg.Spawn.Count*2 + 1)
	k, err := kernel.New(w, opts)
	if err != nil {
		return err
	}
	defer k.Close()

	start := time.Now()
	if err := k.Spawn(spawn.NewGenerator(cfg.Seed, cfg.HalfExtents()), cfg.Spawn.Count); err != nil {
		return err
	}
	workers := opts.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	log.Printf("[Bench] spawned %d sprites (%s, look %q, %d triangles) in %v",
		k.Count(), k.Strategy(), k.Look().Name, k.Look().Mesh.Triangles(), time.Since(start))
	log.Printf("[Bench] dispatch: %d workers, batches of %d, parallel %t", workers, opts.BatchSize, workers > 1)

	d := frame.NewDriver(w, k, cfg.CameraInput(), nil)
	profiler.NewReporter(cfg.Profiler.ReportEvery, nil).Attach(d.Bus())

	start = time.Now()
	err = d.Run(ctx, cfg.Frames, cfg.Delta)
	elapsed := time.Since(start)
	if d.Frames() > 0 {
		log.Printf("[Bench] %d frames in %v (%v per frame)", d.Frames(), elapsed, elapsed/time.Duration(d.Frames()))
	}
	return err
}
