package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"impulse3d/internal/engine"
)

// OBB is a box shape resolved into world space through its owner's Transform
type OBB struct {
	Center   rl.Vector3    // World-space center
	HalfSize rl.Vector3    // Half-extents along Axes, already scaled
	Axes     [3]rl.Vector3 // Right, Up, Forward of the owning transform
}

// cornerSigns fixes the corner enumeration order. Support ties resolve to the
// earliest entry.
var cornerSigns = [8]rl.Vector3{
	{X: -1, Y: -1, Z: -1},
	{X: 1, Y: -1, Z: -1},
	{X: -1, Y: 1, Z: -1},
	{X: 1, Y: 1, Z: -1},
	{X: -1, Y: -1, Z: 1},
	{X: 1, Y: -1, Z: 1},
	{X: -1, Y: 1, Z: 1},
	{X: 1, Y: 1, Z: 1},
}

// NewOBB resolves a box shape through t. Negative scale flips nothing; only its
// magnitude is applied to the half extents.
func NewOBB(s Shape, t *engine.Transform) OBB {
	return OBB{
		Center: t.TransformPoint(s.Center),
		HalfSize: rl.Vector3{
			X: math32.Abs(s.HalfExtents.X * t.Scale.X),
			Y: math32.Abs(s.HalfExtents.Y * t.Scale.Y),
			Z: math32.Abs(s.HalfExtents.Z * t.Scale.Z),
		},
		Axes: [3]rl.Vector3{t.Right(), t.Up(), t.Forward()},
	}
}

func (o OBB) half(i int) float32 {
	switch i {
	case 0:
		return o.HalfSize.X
	case 1:
		return o.HalfSize.Y
	}
	return o.HalfSize.Z
}

// Corners returns the eight world-space corners in cornerSigns order
func (o OBB) Corners() [8]rl.Vector3 {
	var out [8]rl.Vector3
	ex := scale(o.Axes[0], o.HalfSize.X)
	ey := scale(o.Axes[1], o.HalfSize.Y)
	ez := scale(o.Axes[2], o.HalfSize.Z)
	for i, s := range cornerSigns {
		p := o.Center
		p = add(p, scale(ex, s.X))
		p = add(p, scale(ey, s.Y))
		p = add(p, scale(ez, s.Z))
		out[i] = p
	}
	return out
}

// ToLocal expresses a world point in the box frame, relative to its center
func (o OBB) ToLocal(p rl.Vector3) rl.Vector3 {
	d := sub(p, o.Center)
	return rl.Vector3{X: dot(d, o.Axes[0]), Y: dot(d, o.Axes[1]), Z: dot(d, o.Axes[2])}
}

// ToWorldDirection maps a direction in the box frame back to world space
func (o OBB) ToWorldDirection(d rl.Vector3) rl.Vector3 {
	w := scale(o.Axes[0], d.X)
	w = add(w, scale(o.Axes[1], d.Y))
	return add(w, scale(o.Axes[2], d.Z))
}

// IntersectsOBB tests if two OBBs intersect using the Separating Axis Theorem
func (a OBB) IntersectsOBB(b OBB) bool {
	t := sub(b.Center, a.Center)

	// 3 face normals from each box plus 9 edge cross products
	for i := 0; i < 3; i++ {
		if !overlapOnAxis(a, b, a.Axes[i], t) {
			return false
		}
	}
	for i := 0; i < 3; i++ {
		if !overlapOnAxis(a, b, b.Axes[i], t) {
			return false
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			axis := cross(a.Axes[i], b.Axes[j])
			// Parallel edges give no new axis
			if rl.Vector3Length(axis) > 0.0001 {
				if !overlapOnAxis(a, b, normalize(axis), t) {
					return false
				}
			}
		}
	}
	return true
}

func (o OBB) projectedRadius(axis rl.Vector3) float32 {
	return o.HalfSize.X*math32.Abs(dot(o.Axes[0], axis)) +
		o.HalfSize.Y*math32.Abs(dot(o.Axes[1], axis)) +
		o.HalfSize.Z*math32.Abs(dot(o.Axes[2], axis))
}

// overlapOnAxis checks if two OBBs overlap when projected onto a given axis
func overlapOnAxis(a, b OBB, axis, t rl.Vector3) bool {
	return math32.Abs(dot(t, axis)) <= a.projectedRadius(axis)+b.projectedRadius(axis)
}

// IntersectsSphere tests if an OBB intersects with a sphere
func (o OBB) IntersectsSphere(center rl.Vector3, radius float32) bool {
	local := o.ToLocal(center)
	closest := rl.Vector3{
		X: clamp(local.X, -o.HalfSize.X, o.HalfSize.X),
		Y: clamp(local.Y, -o.HalfSize.Y, o.HalfSize.Y),
		Z: clamp(local.Z, -o.HalfSize.Z, o.HalfSize.Z),
	}
	return lengthSqr(sub(local, closest)) <= radius*radius
}
