package physics

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func newSphereBody(t *testing.T, pos rl.Vector3, isStatic bool, mass float32) *RigidBody {
	t.Helper()
	b, err := NewRigidBody(transformAt(pos), NewSphere(rl.Vector3{}, 1), rl.Vector3{}, isStatic, mass)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestElasticHeadOnCollision(t *testing.T) {
	s := NewSolver(weightless())
	a := newSphereBody(t, rl.Vector3{X: -1}, false, 2)
	b := newSphereBody(t, rl.Vector3{X: 1}, false, 2)
	a.Bounciness, b.Bounciness = 1, 1
	a.Velocity = rl.Vector3{X: 3}
	b.Velocity = rl.Vector3{X: -3}

	contact := ContactPoint{Location: rl.Vector3{}, Normal: rl.Vector3{X: 1}}
	if !s.resolveContact(a, b, contact) {
		t.Fatal("Approaching contact was skipped")
	}

	if a.Velocity != (rl.Vector3{X: -3}) || b.Velocity != (rl.Vector3{X: 3}) {
		t.Errorf("Expected velocities negated, got %v and %v", a.Velocity, b.Velocity)
	}
	if a.AngularVelocity != (rl.Vector3{}) || b.AngularVelocity != (rl.Vector3{}) {
		t.Errorf("Head-on impulse should not spin, got %v and %v", a.AngularVelocity, b.AngularVelocity)
	}
}

func TestRestitutionUsesLowerBounciness(t *testing.T) {
	s := NewSolver(weightless())
	a := newSphereBody(t, rl.Vector3{X: -1}, false, 1)
	b := newSphereBody(t, rl.Vector3{X: 1}, false, 1)
	a.Bounciness, b.Bounciness = 0, 1
	a.Velocity = rl.Vector3{X: 2}
	b.Velocity = rl.Vector3{X: -2}

	s.resolveContact(a, b, ContactPoint{Normal: rl.Vector3{X: 1}})

	// Perfectly inelastic: both end at rest along the normal
	if !near(a.Velocity.X, 0, 1e-6) || !near(b.Velocity.X, 0, 1e-6) {
		t.Errorf("Expected zero normal velocity, got %v and %v", a.Velocity, b.Velocity)
	}
}

func TestSeparatingContactSkipped(t *testing.T) {
	s := NewSolver(weightless())
	a := newSphereBody(t, rl.Vector3{X: -1}, false, 1)
	b := newSphereBody(t, rl.Vector3{X: 1}, false, 1)
	a.Velocity = rl.Vector3{X: -1}
	b.Velocity = rl.Vector3{X: 1}
	startA := a.Transform.Position

	if s.resolveContact(a, b, ContactPoint{Normal: rl.Vector3{X: 1}, PenetrationDepth: 0.5}) {
		t.Error("Separating contact should be skipped")
	}
	if a.Velocity != (rl.Vector3{X: -1}) || a.Transform.Position != startA {
		t.Errorf("Skipped contact changed body A: %v at %v", a.Velocity, a.Transform.Position)
	}
}

func TestBothStaticSkipped(t *testing.T) {
	s := NewSolver(weightless())
	a := newSphereBody(t, rl.Vector3{}, true, 0)
	b := newSphereBody(t, rl.Vector3{X: 1}, true, 0)

	if s.resolveContact(a, b, ContactPoint{Normal: rl.Vector3{X: 1}, PenetrationDepth: 1}) {
		t.Error("Two static bodies must never be resolved")
	}
}

func TestFrictionSlowsSliding(t *testing.T) {
	s := NewSolver(weightless())
	floor := newSphereBody(t, rl.Vector3{Y: -100}, true, 0)
	ball := newSphereBody(t, rl.Vector3{Y: 1}, false, 1)
	floor.Bounciness, ball.Bounciness = 0, 0
	ball.Velocity = rl.Vector3{X: 2, Y: -1}

	s.resolveContact(floor, ball, ContactPoint{Location: rl.Vector3{}, Normal: rl.Vector3{Y: 1}})

	if !near(ball.Velocity.Y, 0, 1e-6) {
		t.Errorf("Expected normal velocity removed, got %v", ball.Velocity.Y)
	}
	// mu = sqrt(0.1^2 + 0.1^2), capped by j = 1
	if !near(ball.Velocity.X, 2-0.141421, 1e-4) {
		t.Errorf("Expected friction-limited slide 1.8586, got %v", ball.Velocity.X)
	}
	if ball.AngularVelocity.Z >= 0 {
		t.Errorf("Friction at the base should start a forward roll about -Z, got %v", ball.AngularVelocity)
	}
}

func TestFrictionCoefficientSelection(t *testing.T) {
	a := newSphereBody(t, rl.Vector3{}, false, 1)
	b := newSphereBody(t, rl.Vector3{}, false, 1)
	a.StaticFriction, b.StaticFriction = 0.3, 0.4
	a.DynamicFriction, b.DynamicFriction = 0.6, 0.8

	if mu := frictionCoefficient(a, b, false); !near(mu, 0.5, 1e-6) {
		t.Errorf("Expected static coefficient 0.5, got %v", mu)
	}
	if mu := frictionCoefficient(a, b, true); !near(mu, 1, 1e-6) {
		t.Errorf("Expected dynamic coefficient 1, got %v", mu)
	}
}

func TestPositionalCorrection(t *testing.T) {
	n := rl.Vector3{Y: 1}

	if got := positionalCorrection(ContactPoint{Normal: n}, 1, 1, 0.01, 0.2); got != (rl.Vector3{}) {
		t.Errorf("Zero penetration should not correct, got %v", got)
	}
	if got := positionalCorrection(ContactPoint{Normal: n, PenetrationDepth: 0.01}, 1, 1, 0.01, 0.2); got != (rl.Vector3{}) {
		t.Errorf("Penetration within slop should not correct, got %v", got)
	}

	got := positionalCorrection(ContactPoint{Normal: n, PenetrationDepth: 0.51}, 1, 1, 0.01, 0.2)
	if !vecNear(got, rl.Vector3{Y: 0.05}, 1e-6) {
		t.Errorf("Expected (0,0.05,0), got %v", got)
	}
}

func TestZeroPenetrationLeavesPositions(t *testing.T) {
	s := NewSolver(weightless())
	a := newSphereBody(t, rl.Vector3{X: -1}, false, 1)
	b := newSphereBody(t, rl.Vector3{X: 1}, false, 1)
	a.Velocity = rl.Vector3{X: 1}

	s.resolveContact(a, b, ContactPoint{Normal: rl.Vector3{X: 1}})

	if a.Transform.Position != (rl.Vector3{X: -1}) || b.Transform.Position != (rl.Vector3{X: 1}) {
		t.Errorf("Zero-depth contact moved bodies to %v and %v", a.Transform.Position, b.Transform.Position)
	}
}
