package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"impulse3d/internal/engine"
)

type ShapeKind int

const (
	ShapeBox ShapeKind = iota
	ShapeSphere
	// ShapeComposite groups convex children. It is never handed to GJK
	// directly; the narrow phase tests its children one by one.
	ShapeComposite
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeBox:
		return "box"
	case ShapeSphere:
		return "sphere"
	case ShapeComposite:
		return "composite"
	}
	return "unknown"
}

// Shape holds local-space geometry only. Position, rotation and scale come from
// the owning Transform at query time, so a Shape can be shared between bodies.
type Shape struct {
	Kind        ShapeKind
	Center      rl.Vector3
	HalfExtents rl.Vector3 // box
	Radius      float32    // sphere
	Children    []Shape    // composite, always flat
}

// Face is a convex polygon wound counter-clockwise about Normal. Spheres yield
// a single vertex.
type Face struct {
	Vertices []rl.Vector3
	Normal   rl.Vector3
}

func NewBox(center, halfExtents rl.Vector3) Shape {
	return Shape{Kind: ShapeBox, Center: center, HalfExtents: halfExtents}
}

func NewSphere(center rl.Vector3, radius float32) Shape {
	return Shape{Kind: ShapeSphere, Center: center, Radius: radius}
}

// NewComposite flattens nested composites so every child is convex
func NewComposite(children ...Shape) Shape {
	flat := make([]Shape, 0, len(children))
	for _, c := range children {
		if c.Kind == ShapeComposite {
			flat = append(flat, NewComposite(c.Children...).Children...)
			continue
		}
		flat = append(flat, c)
	}
	return Shape{Kind: ShapeComposite, Children: flat}
}

// convexParts returns the shapes GJK may see: itself, or a composite's children
func (s Shape) convexParts() []Shape {
	if s.Kind == ShapeComposite {
		return s.Children
	}
	return []Shape{s}
}

func (s Shape) worldSphere(t *engine.Transform) (rl.Vector3, float32) {
	return t.TransformPoint(s.Center), s.Radius * t.MaxScale()
}

// Support returns the world-space point of s farthest along dir. dir need not
// be normalized.
func (s Shape) Support(t *engine.Transform, dir rl.Vector3) rl.Vector3 {
	switch s.Kind {
	case ShapeBox:
		corners := NewOBB(s, t).Corners()
		best := corners[0]
		bestDot := dot(best, dir)
		for _, c := range corners[1:] {
			if d := dot(c, dir); d > bestDot {
				best, bestDot = c, d
			}
		}
		return best
	case ShapeSphere:
		center, r := s.worldSphere(t)
		return add(center, scale(normalize(dir), r))
	case ShapeComposite:
		var best rl.Vector3
		bestDot := math32.Inf(-1)
		for _, c := range s.Children {
			p := c.Support(t, dir)
			if d := dot(p, dir); d > bestDot {
				best, bestDot = p, d
			}
		}
		return best
	}
	return rl.Vector3{}
}

// AlignedFace returns the face of s whose outward normal best matches dir.
// Boxes compare |dot| against right, up and forward in that order and keep the
// earlier axis on ties.
func (s Shape) AlignedFace(t *engine.Transform, dir rl.Vector3) Face {
	dir = normalize(dir)
	switch s.Kind {
	case ShapeBox:
		return boxFace(NewOBB(s, t), dir)
	case ShapeSphere:
		return Face{Vertices: []rl.Vector3{s.Support(t, dir)}, Normal: dir}
	case ShapeComposite:
		// The child reaching farthest along dir owns the face
		bestDot := math32.Inf(-1)
		var face Face
		for _, c := range s.Children {
			if d := dot(c.Support(t, dir), dir); d > bestDot {
				bestDot = d
				face = c.AlignedFace(t, dir)
			}
		}
		return face
	}
	return Face{Normal: dir}
}

func boxFace(o OBB, dir rl.Vector3) Face {
	axis := 0
	best := math32.Abs(dot(dir, o.Axes[0]))
	for i := 1; i < 3; i++ {
		if d := math32.Abs(dot(dir, o.Axes[i])); d > best {
			axis, best = i, d
		}
	}

	normal := o.Axes[axis]
	ui, vi := (axis+1)%3, (axis+2)%3
	u := scale(o.Axes[ui], o.half(ui))
	v := scale(o.Axes[vi], o.half(vi))
	if dot(dir, normal) < 0 {
		normal = negate(normal)
		u, v = v, u
	}

	// cross(u, v) points along normal, so this loop is counter-clockwise about it
	c := add(o.Center, scale(normal, o.half(axis)))
	return Face{
		Vertices: []rl.Vector3{
			sub(sub(c, u), v),
			sub(add(c, u), v),
			add(add(c, u), v),
			add(sub(c, u), v),
		},
		Normal: normal,
	}
}

// Bounds returns the world-space AABB of s
func (s Shape) Bounds(t *engine.Transform) AABB {
	switch s.Kind {
	case ShapeBox:
		corners := NewOBB(s, t).Corners()
		return aabbFromPoints(corners[:])
	case ShapeSphere:
		center, r := s.worldSphere(t)
		return NewAABBFromCenter(center, rl.Vector3{X: r, Y: r, Z: r})
	case ShapeComposite:
		if len(s.Children) == 0 {
			p := t.Position
			return AABB{Min: p, Max: p}
		}
		box := s.Children[0].Bounds(t)
		for _, c := range s.Children[1:] {
			box = box.Union(c.Bounds(t))
		}
		return box
	}
	return AABB{}
}

// centroid is the local-space center of mass, assuming uniform density per child
func (s Shape) centroid() rl.Vector3 {
	if s.Kind != ShapeComposite || len(s.Children) == 0 {
		return s.Center
	}
	var sum rl.Vector3
	for _, c := range s.Children {
		sum = add(sum, c.centroid())
	}
	return scale(sum, 1/float32(len(s.Children)))
}

// localInertia returns the principal moments of inertia about the centroid,
// with the transform's scale already applied.
func (s Shape) localInertia(mass float32, scl rl.Vector3) rl.Vector3 {
	switch s.Kind {
	case ShapeBox:
		w := math32.Abs(2 * s.HalfExtents.X * scl.X)
		h := math32.Abs(2 * s.HalfExtents.Y * scl.Y)
		d := math32.Abs(2 * s.HalfExtents.Z * scl.Z)
		k := mass / 12
		return rl.Vector3{
			X: k * (h*h + d*d),
			Y: k * (w*w + d*d),
			Z: k * (w*w + h*h),
		}
	case ShapeSphere:
		r := s.Radius * math32.Max(math32.Abs(scl.X), math32.Max(math32.Abs(scl.Y), math32.Abs(scl.Z)))
		i := 2.0 / 3.0 * mass * r * r
		return rl.Vector3{X: i, Y: i, Z: i}
	case ShapeComposite:
		if len(s.Children) == 0 {
			return rl.Vector3{}
		}
		// Mass split evenly, each child shifted by the parallel axis theorem
		m := mass / float32(len(s.Children))
		com := rl.Vector3Multiply(s.centroid(), scl)
		var total rl.Vector3
		for _, c := range s.Children {
			i := c.localInertia(m, scl)
			o := sub(rl.Vector3Multiply(c.centroid(), scl), com)
			i.X += m * (o.Y*o.Y + o.Z*o.Z)
			i.Y += m * (o.X*o.X + o.Z*o.Z)
			i.Z += m * (o.X*o.X + o.Y*o.Y)
			total = add(total, i)
		}
		return total
	}
	return rl.Vector3{}
}
