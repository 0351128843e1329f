// Profiling:
// go build ./profile/spawn
// go tool pprof -http=":8000" -nodefraction=0.001 ./spawn mem.pprof

package main

import (
	"log"

	"github.com/pkg/profile"

	"github.com/edwinsyarief/flipboard/ecs"
	"github.com/edwinsyarief/flipboard/kernel"
	"github.com/edwinsyarief/flipboard/spawn"
)

func main() {
	rounds := 20
	entities := kernel.DefaultMaxEntities
	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	for _, s := range []kernel.Strategy{kernel.StrategyMatrix, kernel.StrategyRotate, kernel.StrategyParent} {
		if err := run(s, rounds, entities); err != nil {
			p.Stop()
			log.Fatalf("[Bench] %s: %v", s, err)
		}
	}
	p.Stop()
}

func run(s kernel.Strategy, rounds, numEntities int) error {
	opts := kernel.DefaultOptions(s)
	opts.Workers = 1
	for i := range rounds {
		w := ecs.NewWorld(numEntities)
		k, err := kernel.New(w, opts)
		if err != nil {
			return err
		}
		if err := k.Spawn(spawn.NewGenerator(uint64(i), spawn.DefaultHalfExtents), numEntities); err != nil {
			k.Close()
			return err
		}
		k.Close()
	}
	return nil
}
