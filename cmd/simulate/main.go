// Runs a scene file headless for a fixed duration and prints where everything ended up
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"impulse3d/internal/components"
	"impulse3d/internal/config"
	"impulse3d/internal/engine"
	"impulse3d/internal/physics"
	"impulse3d/internal/world"
)

func main() {
	scenePath := flag.String("scene", "scenes/pile.yaml", "scene file (.json or .yaml)")
	configPath := flag.String("config", config.DefaultPath, "physics config (.json or .yaml)")
	duration := flag.Float64("duration", 5, "simulated seconds")
	frame := flag.Float64("frame", 1.0/60, "frame delta fed to the accumulator")
	workers := flag.Int("workers", 0, "override narrow-phase workers (0 keeps the config value)")
	savePath := flag.String("save", "", "write the final state to this scene file")
	tag := flag.String("tag", "", "only report objects with this tag")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}

	w := world.New(cfg)
	if err := w.LoadScene(*scenePath); err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	enters, exits, contacts := 0, 0, 0
	w.Solver.OnCollisionEnter.AddListener(func(physics.CollisionPair) { enters++ })
	w.Solver.OnCollisionExit.AddListener(func(physics.CollisionPair) { exits++ })
	w.Solver.OnContact.AddListener(func(c physics.Contact) {
		if c.Resolved {
			contacts++
		}
	})

	ticks := 0
	for elapsed := 0.0; elapsed < *duration; elapsed += *frame {
		ticks += w.Update(float32(*frame))
	}

	fmt.Printf("%d ticks | %d enters | %d exits | %d contacts resolved\n\n", ticks, enters, exits, contacts)
	report := w.Scene.GameObjects
	if *tag != "" {
		report = w.Scene.FindByTag(*tag)
	}
	for _, g := range report {
		p := g.Transform.Position
		state := ""
		if rb := engine.GetComponent[*components.Rigidbody](g); rb != nil && rb.IsSleeping() {
			state = "asleep"
		}
		fmt.Printf("%-16s (%7.3f, %7.3f, %7.3f) %s\n", g.Name, p.X, p.Y, p.Z, state)
	}

	if *savePath != "" {
		if err := w.SaveScene(*savePath); err != nil {
			fmt.Printf("❌ %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\n✅ Saved %s\n", *savePath)
	}
}
