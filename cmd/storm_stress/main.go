// Headless stress run of the cube storm: fills the physics world to growing
// caps and times the fixed-step simulation.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"time"

	"folio3d/internal/assets"
	"folio3d/internal/clock"
	"folio3d/internal/engine"
	"folio3d/internal/physics"
	"folio3d/internal/spawner"
)

func main() {
	seconds := flag.Int("seconds", 20, "simulated seconds per run")
	flag.Parse()

	for _, n := range []int{15, 50, 100, 200, 400} {
		run(n, time.Duration(*seconds)*time.Second)
	}
}

func run(maxCubes int, length time.Duration) {
	loader := assets.NewManager(assets.HeadlessBackend{})
	defer loader.Unload()

	sched := clock.NewScheduler()
	world := physics.NewWorld()
	world.Ground = physics.Ground{Enabled: true, Y: 1, HalfExtent: 6, Friction: 0.3}
	scene := engine.NewScene("stress")

	cfg := spawner.DefaultConfig()
	cfg.MaxCubes = maxCubes
	cfg.InitialCubes = maxCubes
	cfg.BurstStagger = 10 * time.Millisecond
	cfg.SpawnInterval = 500 * time.Millisecond
	sp := spawner.New(cfg, loader, sched, world, scene, rand.New(rand.NewSource(42)))
	sp.SpawnBurst(cfg.InitialCubes)

	fixedStep := float64(physics.DefaultFixedStep)
	step := time.Duration(fixedStep * float64(time.Second))
	var stepTime time.Duration
	var frames, peak int
	for now := time.Duration(0); now <= length; now += step {
		sched.Advance(now)
		loader.Poll()

		start := time.Now()
		world.Step(physics.DefaultFixedStep)
		stepTime += time.Since(start)

		sp.Tick(now)
		peak = max(peak, sp.Len())
		frames++
	}
	sp.Teardown()

	fmt.Printf("%4d cap: peak %4d live | spawned %5d culled %5d dropped %5d | step %8v avg\n",
		maxCubes, peak, sp.Spawned(), sp.Culled(), sp.Dropped(),
		(stepTime / time.Duration(frames)).Round(time.Microsecond))
}
