package physics

import (
	"math/rand/v2"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var seeds = []rl.Vector3{
	{X: 1},
	{X: -1},
	{Y: 1},
	{Z: -1},
	{X: 1, Y: 1, Z: 1},
	{X: -0.3, Y: 0.7, Z: 0.2},
}

func TestGJKSeparatedBoxes(t *testing.T) {
	a := boxAt(rl.Vector3{}, unitBox())
	b := boxAt(rl.Vector3{X: 2.5}, unitBox())

	for _, seed := range seeds {
		if _, hit := GJKSeeded(a, b, seed, DefaultGJKIterations); hit {
			t.Errorf("seed %v: separated boxes reported as intersecting", seed)
		}
	}
}

func TestGJKOverlappingBoxes(t *testing.T) {
	a := boxAt(rl.Vector3{}, unitBox())
	b := boxAt(rl.Vector3{X: 1.5}, unitBox())

	simplex, hit := GJK(a, b)
	if !hit {
		t.Fatal("Expected intersection for boxes overlapping by 0.5")
	}
	if simplex.Len() != 4 {
		t.Errorf("Expected a tetrahedron, got %d points", simplex.Len())
	}

	for _, seed := range seeds {
		if _, hit := GJKSeeded(a, b, seed, DefaultGJKIterations); !hit {
			t.Errorf("seed %v: overlap missed", seed)
		}
	}
}

func TestGJKSpheres(t *testing.T) {
	a := sphereAt(rl.Vector3{}, 1)

	if _, hit := GJK(a, sphereAt(rl.Vector3{Y: 1.8}, 1)); !hit {
		t.Error("Expected overlapping spheres to intersect")
	}
	if _, hit := GJK(a, sphereAt(rl.Vector3{Y: 2.2}, 1)); hit {
		t.Error("Expected separated spheres not to intersect")
	}
}

func TestSimplexPushFront(t *testing.T) {
	var s Simplex
	for i := 1; i <= 5; i++ {
		s.PushFront(rl.Vector3{X: float32(i)})
	}
	if s.Len() != 4 {
		t.Fatalf("Expected 4 points, got %d", s.Len())
	}
	if p := s.Points(); p[0].X != 5 || p[3].X != 2 {
		t.Errorf("Expected newest first [5..2], got %v", p)
	}
}

// shrink scales an OBB's extents, used to stay clear of touching configurations
func shrink(o OBB, f float32) OBB {
	o.HalfSize = rl.Vector3Scale(o.HalfSize, f)
	return o
}

// GJK must agree with SAT whenever the answer is not within 2% of touching
func TestGJKMatchesSAT(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	randVec := func(lo, hi float32) rl.Vector3 {
		r := func() float32 { return lo + (hi-lo)*rng.Float32() }
		return rl.Vector3{X: r(), Y: r(), Z: r()}
	}

	checked := 0
	for i := 0; i < 200; i++ {
		a := boxAt(randVec(-1.5, 1.5), randVec(0.3, 1.2))
		b := boxAt(randVec(-1.5, 1.5), randVec(0.3, 1.2))
		a.Transform.SetEulerDegrees(randVec(0, 360))
		b.Transform.SetEulerDegrees(randVec(0, 360))

		oa, ob := NewOBB(a.Shape, a.Transform), NewOBB(b.Shape, b.Transform)
		inner := shrink(oa, 0.98).IntersectsOBB(shrink(ob, 0.98))
		outer := shrink(oa, 1.02).IntersectsOBB(shrink(ob, 1.02))
		if inner != outer {
			continue
		}
		checked++

		if _, hit := GJK(a, b); hit != inner {
			t.Errorf("case %d: GJK=%v SAT=%v for %+v vs %+v", i, hit, inner, oa, ob)
		}
	}
	if checked < 100 {
		t.Errorf("Only %d cases were clear of touching", checked)
	}
}

func TestGJKBoxSphereMatchesOBB(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 100; i++ {
		box := boxAt(rl.Vector3{}, rl.Vector3{X: 1, Y: 0.5, Z: 2})
		box.Transform.SetEulerDegrees(rl.Vector3{X: 360 * rng.Float32(), Y: 360 * rng.Float32()})
		center := rl.Vector3{X: 4*rng.Float32() - 2, Y: 4*rng.Float32() - 2, Z: 6*rng.Float32() - 3}
		const radius = 0.75

		o := NewOBB(box.Shape, box.Transform)
		inner := o.IntersectsSphere(center, radius*0.98)
		if inner != o.IntersectsSphere(center, radius*1.02) {
			continue
		}
		if _, hit := GJK(box, sphereAt(center, radius)); hit != inner {
			t.Errorf("case %d: GJK=%v OBB=%v for sphere at %v", i, hit, inner, center)
		}
	}
}
