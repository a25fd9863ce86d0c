package physics

import (
	"errors"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Thickness keeps points lying on a clip plane from being rejected
const Thickness = 0.001

// MaxManifoldPoints caps the contacts produced for one convex pair
const MaxManifoldPoints = 4

// ErrMalformedFace means a face produced two identical edge planes, which only
// happens when its vertex loop is not convex and consistently wound.
var ErrMalformedFace = errors.New("physics: malformed face winding")

type ContactPoint struct {
	Location         rl.Vector3
	Normal           rl.Vector3 // unit, from A towards B
	PenetrationDepth float32
}

type plane struct {
	point  rl.Vector3
	normal rl.Vector3
}

func (p plane) distance(v rl.Vector3) float32 {
	return dot(sub(v, p.point), p.normal)
}

func faceCentroid(vertices []rl.Vector3) rl.Vector3 {
	var sum rl.Vector3
	for _, v := range vertices {
		sum = add(sum, v)
	}
	return scale(sum, 1/float32(len(vertices)))
}

// edgePlanes returns the side planes of a reference face, normals pointing out
// of the face. Duplicate normals are reported as ErrMalformedFace.
func edgePlanes(face Face) ([]plane, error) {
	n := len(face.Vertices)
	center := faceCentroid(face.Vertices)
	planes := make([]plane, 0, n)
	for i := 0; i < n; i++ {
		v1 := face.Vertices[i]
		v2 := face.Vertices[(i+1)%n]
		normal := normalize(cross(sub(v2, v1), face.Normal))
		if dot(normal, sub(v1, center)) < 0 {
			normal = negate(normal)
		}
		for _, p := range planes {
			if nearlyEqual(p.normal, normal, 1e-4) {
				return nil, ErrMalformedFace
			}
		}
		planes = append(planes, plane{point: v1, normal: normal})
	}
	return planes, nil
}

// clipPolygon is one Sutherland-Hodgman pass keeping the side of p opposite
// its normal, plus Thickness.
func clipPolygon(polygon []rl.Vector3, p plane) []rl.Vector3 {
	if len(polygon) == 0 {
		return nil
	}
	out := make([]rl.Vector3, 0, len(polygon)+1)
	prev := polygon[len(polygon)-1]
	prevDist := p.distance(prev) - Thickness
	for _, cur := range polygon {
		curDist := p.distance(cur) - Thickness
		if curDist <= 0 {
			if prevDist > 0 {
				out = append(out, intersect(prev, cur, prevDist, curDist))
			}
			out = append(out, cur)
		} else if prevDist <= 0 {
			out = append(out, intersect(prev, cur, prevDist, curDist))
		}
		prev, prevDist = cur, curDist
	}
	return out
}

func intersect(a, b rl.Vector3, da, db float32) rl.Vector3 {
	t := da / (da - db)
	return rl.Vector3Lerp(a, b, t)
}

// clipFace clips incident against the side planes and face plane of
// reference. Survivors are moved halfway onto the reference plane.
func clipFace(incident, reference Face) ([]rl.Vector3, error) {
	planes, err := edgePlanes(reference)
	if err != nil {
		return nil, err
	}
	refPlane := plane{point: reference.Vertices[0], normal: reference.Normal}
	planes = append(planes, refPlane)

	polygon := incident.Vertices
	for _, p := range planes {
		polygon = clipPolygon(polygon, p)
	}

	for i, v := range polygon {
		projected := sub(v, scale(refPlane.normal, refPlane.distance(v)))
		polygon[i] = rl.Vector3Lerp(v, projected, 0.5)
	}
	return polygon, nil
}

func appendUnique(points []rl.Vector3, candidates ...rl.Vector3) []rl.Vector3 {
next:
	for _, c := range candidates {
		for _, p := range points {
			if rl.Vector3Distance(p, c) < EdgeTolerance {
				continue next
			}
		}
		points = append(points, c)
	}
	return points
}

// reduceManifold keeps the extreme points along two tangent directions
func reduceManifold(points []rl.Vector3, normal rl.Vector3) []rl.Vector3 {
	t1, t2 := tangentBasis(normal)
	extreme := func(dir rl.Vector3) int {
		best, bestDot := 0, math32.Inf(-1)
		for i, p := range points {
			if d := dot(p, dir); d > bestDot {
				best, bestDot = i, d
			}
		}
		return best
	}

	var picked []rl.Vector3
	for _, dir := range []rl.Vector3{t1, negate(t1), t2, negate(t2)} {
		picked = appendUnique(picked, points[extreme(dir)])
	}
	return picked
}

// BuildManifold turns an EPA result into contact points. Box faces are
// clipped against each other in both directions; a single-point face (a
// sphere) is returned as the only contact.
func BuildManifold(a, b Collider, normal rl.Vector3, depth float32) ([]ContactPoint, error) {
	faceA := a.Shape.AlignedFace(a.Transform, normal)
	faceB := b.Shape.AlignedFace(b.Transform, negate(normal))

	var points []rl.Vector3
	switch {
	case len(faceA.Vertices) == 1:
		points = faceA.Vertices
	case len(faceB.Vertices) == 1:
		points = faceB.Vertices
	default:
		clippedA, err := clipFace(faceA, faceB)
		if err != nil {
			return nil, err
		}
		clippedB, err := clipFace(faceB, faceA)
		if err != nil {
			return nil, err
		}
		points = appendUnique(nil, clippedA...)
		points = appendUnique(points, clippedB...)
	}

	if len(points) == 0 {
		// Edge-on contact where the faces do not overlap after clipping
		points = []rl.Vector3{rl.Vector3Lerp(a.support(normal), b.support(negate(normal)), 0.5)}
	}
	if len(points) > MaxManifoldPoints {
		points = reduceManifold(points, normal)
	}

	contacts := make([]ContactPoint, len(points))
	for i, p := range points {
		contacts[i] = ContactPoint{
			Location:         p,
			Normal:           normal,
			PenetrationDepth: depth + EdgeTolerance,
		}
	}
	return contacts, nil
}
