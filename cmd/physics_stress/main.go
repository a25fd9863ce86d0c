// Stress test comparing serial vs parallel narrow phase on a random pile of bodies
package main

import (
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"impulse3d/internal/config"
	"impulse3d/internal/engine"
	"impulse3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const ticks = 200

func main() {
	fmt.Printf("CPUs: %d\n\n", runtime.NumCPU())

	testCounts := []int{50, 100, 200, 400, 800}
	for _, count := range testCounts {
		serial, serialStats := run(count, 1)
		parallel, parallelStats := run(count, runtime.NumCPU())

		speedup := float64(serial) / float64(parallel)
		fmt.Printf("%4d bodies: serial %9v/tick (%5d contacts) | %d workers %9v/tick (%5d contacts) | %.1fx speedup\n",
			count, serial.Round(time.Microsecond), serialStats.Contacts,
			runtime.NumCPU(), parallel.Round(time.Microsecond), parallelStats.Contacts, speedup)
	}
}

// run drops count random boxes and spheres onto a floor and times the average tick
func run(count, workers int) (time.Duration, physics.TickStats) {
	cfg := config.Default()
	cfg.Workers = workers
	s := physics.NewSolver(cfg)

	floor := engine.NewTransform()
	addBody(s, &floor, physics.NewBox(rl.Vector3{}, rl.Vector3{X: 50, Y: 0.5, Z: 50}), true, 0)

	// Same seed for both runs so they simulate the same pile
	rng := rand.New(rand.NewSource(42))
	spawnSize := float32(10) + float32(count)/20

	for i := 0; i < count; i++ {
		t := engine.NewTransform()
		t.Position = rl.Vector3{
			X: rng.Float32()*spawnSize - spawnSize/2,
			Y: 1 + rng.Float32()*spawnSize,
			Z: rng.Float32()*spawnSize - spawnSize/2,
		}
		t.SetEulerDegrees(rl.Vector3{X: rng.Float32() * 90, Y: rng.Float32() * 90})

		var shape physics.Shape
		if i%2 == 0 {
			shape = physics.NewSphere(rl.Vector3{}, 0.3+rng.Float32()*0.4)
		} else {
			half := 0.3 + rng.Float32()*0.4
			shape = physics.NewBox(rl.Vector3{}, rl.Vector3{X: half, Y: half, Z: half})
		}
		addBody(s, &t, shape, false, 1+rng.Float32())
	}

	start := time.Now()
	var stats physics.TickStats
	for i := 0; i < ticks; i++ {
		s.Tick()
		stats.Contacts += s.Stats().Contacts
	}
	return time.Since(start) / ticks, stats
}

func addBody(s *physics.Solver, t *engine.Transform, shape physics.Shape, isStatic bool, mass float32) {
	h, err := s.CreateRigidBody(t, shape, s.Gravity(), isStatic, mass)
	if err != nil {
		panic(fmt.Sprintf("Failed to create body: %v", err))
	}
	if err := s.AddRigidBody(h); err != nil {
		panic(fmt.Sprintf("Failed to add body: %v", err))
	}
}
