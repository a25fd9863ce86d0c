package physics

import (
	"testing"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"impulse3d/internal/config"
	"impulse3d/internal/engine"
)

func vecNear(a, b rl.Vector3, tol float32) bool {
	return nearlyEqual(a, b, tol)
}

func near(a, b, tol float32) bool {
	return math32.Abs(a-b) <= tol
}

func transformAt(pos rl.Vector3) *engine.Transform {
	t := engine.NewTransform()
	t.Position = pos
	return &t
}

func boxAt(pos, half rl.Vector3) Collider {
	return Collider{Shape: NewBox(rl.Vector3{}, half), Transform: transformAt(pos)}
}

func sphereAt(pos rl.Vector3, radius float32) Collider {
	return Collider{Shape: NewSphere(rl.Vector3{}, radius), Transform: transformAt(pos)}
}

func unitBox() rl.Vector3 {
	return rl.Vector3{X: 1, Y: 1, Z: 1}
}

// weightless returns defaults with gravity switched off
func weightless() config.Physics {
	cfg := config.Default()
	cfg.Gravity = [3]float32{}
	return cfg
}

// mustBody creates and activates a body, failing the test on error
func mustBody(t *testing.T, s *Solver, pos rl.Vector3, shape Shape, isStatic bool, mass float32) (Handle, *RigidBody) {
	t.Helper()
	h, err := s.CreateRigidBody(transformAt(pos), shape, s.Gravity(), isStatic, mass)
	if err != nil {
		t.Fatalf("CreateRigidBody: %v", err)
	}
	if err := s.AddRigidBody(h); err != nil {
		t.Fatalf("AddRigidBody: %v", err)
	}
	body, err := s.Body(h)
	if err != nil {
		t.Fatalf("Body: %v", err)
	}
	return h, body
}
