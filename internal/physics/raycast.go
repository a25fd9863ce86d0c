package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"impulse3d/internal/engine"
)

type RaycastHit struct {
	Handle   Handle
	Point    rl.Vector3
	Normal   rl.Vector3
	Distance float32
}

// Raycast returns the closest active body hit within maxDistance
func (s *Solver) Raycast(origin, direction rl.Vector3, maxDistance float32) (RaycastHit, bool) {
	direction = normalize(direction)
	if isZero(direction) {
		return RaycastHit{}, false
	}

	var closest RaycastHit
	closest.Distance = maxDistance
	hit := false

	for _, h := range s.active {
		slot, _ := s.bodies.get(h)
		if info, ok := raycastShape(origin, direction, slot.body.Shape, slot.body.Transform, closest.Distance); ok {
			if !hit || info.Distance < closest.Distance {
				closest = info
				closest.Handle = h
				hit = true
			}
		}
	}
	return closest, hit
}

func raycastShape(origin, direction rl.Vector3, shape Shape, t *engine.Transform, maxDistance float32) (RaycastHit, bool) {
	switch shape.Kind {
	case ShapeBox:
		return raycastBox(origin, direction, NewOBB(shape, t), maxDistance)
	case ShapeSphere:
		center, r := shape.worldSphere(t)
		return raycastSphere(origin, direction, center, r, maxDistance)
	case ShapeComposite:
		var best RaycastHit
		found := false
		for _, child := range shape.Children {
			if info, ok := raycastShape(origin, direction, child, t, maxDistance); ok {
				if !found || info.Distance < best.Distance {
					best, found = info, true
				}
			}
		}
		return best, found
	}
	return RaycastHit{}, false
}

func axisComponent(v rl.Vector3, i int) float32 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	}
	return v.Z
}

func axisVector(i int, length float32) rl.Vector3 {
	switch i {
	case 0:
		return rl.Vector3{X: length}
	case 1:
		return rl.Vector3{Y: length}
	}
	return rl.Vector3{Z: length}
}

// raycastBox runs the slab test in the box's own frame, so rotated boxes work
// the same as axis-aligned ones.
func raycastBox(origin, direction rl.Vector3, box OBB, maxDistance float32) (RaycastHit, bool) {
	o := box.ToLocal(origin)
	d := rl.Vector3{X: dot(direction, box.Axes[0]), Y: dot(direction, box.Axes[1]), Z: dot(direction, box.Axes[2])}

	tmin, tmax := math32.Inf(-1), math32.Inf(1)
	enterAxis, exitAxis := -1, -1
	var enterSign, exitSign float32

	for i := 0; i < 3; i++ {
		oi, di, hi := axisComponent(o, i), axisComponent(d, i), box.half(i)
		if di == 0 {
			if oi < -hi || oi > hi {
				return RaycastHit{}, false
			}
			continue
		}
		t1 := (-hi - oi) / di
		t2 := (hi - oi) / di
		sign := float32(-1)
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1
		}
		if t1 > tmin {
			tmin, enterAxis, enterSign = t1, i, sign
		}
		if t2 < tmax {
			tmax, exitAxis, exitSign = t2, i, -sign
		}
	}

	if tmin > tmax || tmax < 0 {
		return RaycastHit{}, false
	}

	// Starting inside the box reports the exit face
	t, axis, sign := tmin, enterAxis, enterSign
	if t < 0 {
		t, axis, sign = tmax, exitAxis, exitSign
	}
	if t > maxDistance || axis < 0 {
		return RaycastHit{}, false
	}

	return RaycastHit{
		Point:    add(origin, scale(direction, t)),
		Normal:   box.ToWorldDirection(axisVector(axis, sign)),
		Distance: t,
	}, true
}

func raycastSphere(origin, direction, center rl.Vector3, radius, maxDistance float32) (RaycastHit, bool) {
	oc := sub(origin, center)
	a := dot(direction, direction)
	b := 2.0 * dot(oc, direction)
	c := dot(oc, oc) - radius*radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return RaycastHit{}, false
	}

	t := (-b - math32.Sqrt(discriminant)) / (2 * a)
	if t < 0 {
		t = (-b + math32.Sqrt(discriminant)) / (2 * a)
	}
	if t < 0 || t > maxDistance {
		return RaycastHit{}, false
	}

	point := add(origin, scale(direction, t))
	return RaycastHit{Point: point, Normal: normalize(sub(point, center)), Distance: t}, true
}
