package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"impulse3d/internal/engine"
)

// DefaultGJKIterations bounds the simplex search when no config is supplied
const DefaultGJKIterations = 64

// Collider pairs a convex shape with the transform that places it
type Collider struct {
	Shape     Shape
	Transform *engine.Transform
}

func (c Collider) support(dir rl.Vector3) rl.Vector3 {
	return c.Shape.Support(c.Transform, dir)
}

// minkowskiSupport returns the support point of A - B along dir
func minkowskiSupport(a, b Collider, dir rl.Vector3) rl.Vector3 {
	return sub(a.support(dir), b.support(negate(dir)))
}

// Simplex holds up to four Minkowski-difference points, newest first
type Simplex struct {
	points [4]rl.Vector3
	size   int
}

// PushFront inserts p as the newest point, dropping the oldest if full
func (s *Simplex) PushFront(p rl.Vector3) {
	s.points = [4]rl.Vector3{p, s.points[0], s.points[1], s.points[2]}
	s.size = min(s.size+1, 4)
}

func (s *Simplex) set(points ...rl.Vector3) {
	s.size = copy(s.points[:], points)
}

func (s *Simplex) Len() int {
	return s.size
}

func (s *Simplex) Points() []rl.Vector3 {
	return s.points[:s.size]
}

// GJK reports whether two convex colliders overlap, seeding the search along +X
func GJK(a, b Collider) (Simplex, bool) {
	return GJKSeeded(a, b, rl.Vector3{X: 1}, DefaultGJKIterations)
}

// GJKSeeded runs GJK from an arbitrary seed direction. When it reports an
// intersection the returned simplex is a tetrahedron enclosing the origin.
// Hitting maxIterations counts as no intersection.
func GJKSeeded(a, b Collider, seed rl.Vector3, maxIterations int) (Simplex, bool) {
	if isZero(seed) {
		seed = rl.Vector3{X: 1}
	}

	var simplex Simplex
	point := minkowskiSupport(a, b, seed)
	simplex.PushFront(point)
	dir := negate(point)

	for i := 0; i < maxIterations; i++ {
		point = minkowskiSupport(a, b, dir)
		if dot(point, dir) <= 0 {
			return simplex, false
		}

		simplex.PushFront(point)
		if nextSimplex(&simplex, &dir) {
			return simplex, true
		}
	}
	return simplex, false
}

func sameDirection(dir, ao rl.Vector3) bool {
	return dot(dir, ao) > 0
}

func nextSimplex(s *Simplex, dir *rl.Vector3) bool {
	switch s.size {
	case 2:
		return gjkLine(s, dir)
	case 3:
		return gjkTriangle(s, dir)
	case 4:
		return gjkTetrahedron(s, dir)
	}
	return false
}

// edgeDirection points from the edge towards the origin, perpendicular to it
func edgeDirection(edge, ao rl.Vector3) rl.Vector3 {
	d := cross(cross(edge, ao), edge)
	if isZero(d) {
		// Origin sits on the edge's line; any normal of it will do
		return anyPerpendicular(edge)
	}
	return d
}

func gjkLine(s *Simplex, dir *rl.Vector3) bool {
	a, b := s.points[0], s.points[1]
	ab := sub(b, a)
	ao := negate(a)

	if sameDirection(ab, ao) {
		*dir = edgeDirection(ab, ao)
	} else {
		s.set(a)
		*dir = ao
	}
	return false
}

func gjkTriangle(s *Simplex, dir *rl.Vector3) bool {
	a, b, c := s.points[0], s.points[1], s.points[2]
	ab := sub(b, a)
	ac := sub(c, a)
	ao := negate(a)
	abc := cross(ab, ac)

	if sameDirection(cross(abc, ac), ao) {
		if sameDirection(ac, ao) {
			s.set(a, c)
			*dir = edgeDirection(ac, ao)
			return false
		}
		s.set(a, b)
		return gjkLine(s, dir)
	}

	if sameDirection(cross(ab, abc), ao) {
		s.set(a, b)
		return gjkLine(s, dir)
	}

	if sameDirection(abc, ao) {
		*dir = abc
	} else {
		s.set(a, c, b)
		*dir = negate(abc)
	}
	return false
}

// outward flips n so that it points away from the vertex opposite the face
func outward(n, toOpposite rl.Vector3) rl.Vector3 {
	if dot(n, toOpposite) > 0 {
		return negate(n)
	}
	return n
}

func gjkTetrahedron(s *Simplex, dir *rl.Vector3) bool {
	a, b, c, d := s.points[0], s.points[1], s.points[2], s.points[3]
	ab := sub(b, a)
	ac := sub(c, a)
	ad := sub(d, a)
	ao := negate(a)

	abc := outward(cross(ab, ac), ad)
	acd := outward(cross(ac, ad), ab)
	adb := outward(cross(ad, ab), ac)

	if sameDirection(abc, ao) {
		s.set(a, b, c)
		return gjkTriangle(s, dir)
	}
	if sameDirection(acd, ao) {
		s.set(a, c, d)
		return gjkTriangle(s, dir)
	}
	if sameDirection(adb, ao) {
		s.set(a, d, b)
		return gjkTriangle(s, dir)
	}
	return true
}
