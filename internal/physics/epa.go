package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	// EdgeTolerance is the EPA convergence distance. It is also added to every
	// manifold depth and used to merge nearby contact points.
	EdgeTolerance = 0.01

	DefaultEPAIterations = 64
)

// EPAResult is the minimum translation found by EPA. Normal points from A
// towards B. Converged is false when the iteration cap cut the search short;
// the result is then the closest face seen so far.
type EPAResult struct {
	Normal     rl.Vector3
	Depth      float32
	Iterations int
	Converged  bool
}

type polytopeFace struct {
	a, b, c  int
	normal   rl.Vector3
	distance float32
}

type edge struct {
	a, b int
}

// Polytope is the expanding hull around the origin. It lives for one EPA call.
type Polytope struct {
	vertices []rl.Vector3
	faces    []polytopeFace
}

var tetrahedronFaces = [4][3]int{
	{0, 1, 2},
	{0, 3, 1},
	{0, 2, 3},
	{1, 3, 2},
}

func newPolytope(simplex Simplex) *Polytope {
	p := &Polytope{vertices: append([]rl.Vector3(nil), simplex.Points()...)}
	for _, f := range tetrahedronFaces {
		p.faces = append(p.faces, p.makeFace(f[0], f[1], f[2]))
	}
	return p
}

// makeFace orients the face normal away from the origin. Zero-area faces get
// an infinite distance so they are never picked as the closest.
func (p *Polytope) makeFace(a, b, c int) polytopeFace {
	va, vb, vc := p.vertices[a], p.vertices[b], p.vertices[c]
	n := normalize(cross(sub(vb, va), sub(vc, va)))
	if isZero(n) {
		return polytopeFace{a: a, b: b, c: c, distance: math32.Inf(1)}
	}
	d := dot(n, va)
	if d < 0 {
		n = negate(n)
		d = -d
	}
	return polytopeFace{a: a, b: b, c: c, normal: n, distance: d}
}

func (p *Polytope) closest() int {
	best := 0
	for i := 1; i < len(p.faces); i++ {
		if p.faces[i].distance < p.faces[best].distance {
			best = i
		}
	}
	return best
}

func (p *Polytope) hasVertex(v rl.Vector3) bool {
	for _, w := range p.vertices {
		if w == v {
			return true
		}
	}
	return false
}

// addUniqueEdge keeps only horizon edges: an edge seen twice borders two
// removed faces and is dropped.
func addUniqueEdge(edges []edge, a, b int) []edge {
	for i, e := range edges {
		if (e.a == b && e.b == a) || (e.a == a && e.b == b) {
			return append(edges[:i], edges[i+1:]...)
		}
	}
	return append(edges, edge{a, b})
}

// expand adds support as a vertex and rebuilds the hull around it
func (p *Polytope) expand(support rl.Vector3) {
	var horizon []edge
	kept := p.faces[:0]
	for _, f := range p.faces {
		if !math32.IsInf(f.distance, 1) && dot(f.normal, sub(support, p.vertices[f.a])) > 0 {
			horizon = addUniqueEdge(horizon, f.a, f.b)
			horizon = addUniqueEdge(horizon, f.b, f.c)
			horizon = addUniqueEdge(horizon, f.c, f.a)
			continue
		}
		kept = append(kept, f)
	}
	p.faces = kept

	idx := len(p.vertices)
	p.vertices = append(p.vertices, support)
	for _, e := range horizon {
		p.faces = append(p.faces, p.makeFace(e.a, e.b, idx))
	}
}

// converged reports that support cannot push face any further: it is already
// a hull vertex, or it lies within EdgeTolerance of the face plane.
func (p *Polytope) converged(face polytopeFace, support rl.Vector3) bool {
	return p.hasVertex(support) || dot(face.normal, support)-face.distance < EdgeTolerance
}

// EPA expands GJK's terminal tetrahedron until the face closest to the origin
// stops moving. A simplex with fewer than four points yields a zero result.
func EPA(a, b Collider, simplex Simplex, maxIterations int) EPAResult {
	if simplex.Len() < 4 {
		return EPAResult{Normal: rl.Vector3{X: 1}}
	}

	p := newPolytope(simplex)
	minFace := p.faces[p.closest()]

	iterations := 0
	for iterations < maxIterations {
		iterations++
		support := minkowskiSupport(a, b, minFace.normal)
		if p.converged(minFace, support) {
			return EPAResult{
				Normal:     minFace.normal,
				Depth:      minFace.distance,
				Iterations: iterations,
				Converged:  true,
			}
		}

		p.expand(support)
		if len(p.faces) == 0 {
			break
		}
		minFace = p.faces[p.closest()]
	}

	return EPAResult{
		Normal:     minFace.normal,
		Depth:      minFace.distance,
		Iterations: iterations,
		Converged:  false,
	}
}
