package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// cross computes the cross product of two vectors
func cross(a, b rl.Vector3) rl.Vector3 {
	return rl.Vector3CrossProduct(a, b)
}

func dot(a, b rl.Vector3) float32 {
	return rl.Vector3DotProduct(a, b)
}

func add(a, b rl.Vector3) rl.Vector3 {
	return rl.Vector3Add(a, b)
}

func sub(a, b rl.Vector3) rl.Vector3 {
	return rl.Vector3Subtract(a, b)
}

func scale(v rl.Vector3, s float32) rl.Vector3 {
	return rl.Vector3Scale(v, s)
}

func negate(v rl.Vector3) rl.Vector3 {
	return rl.Vector3Negate(v)
}

// normalize returns the zero vector for zero input instead of NaNs
func normalize(v rl.Vector3) rl.Vector3 {
	l := rl.Vector3Length(v)
	if l == 0 {
		return rl.Vector3{}
	}
	return rl.Vector3Scale(v, 1/l)
}

func lengthSqr(v rl.Vector3) float32 {
	return rl.Vector3LengthSqr(v)
}

func isZero(v rl.Vector3) bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// nearlyEqual compares two points component-wise
func nearlyEqual(a, b rl.Vector3, tolerance float32) bool {
	return math32.Abs(a.X-b.X) <= tolerance &&
		math32.Abs(a.Y-b.Y) <= tolerance &&
		math32.Abs(a.Z-b.Z) <= tolerance
}

// clamp restricts a value to a range
func clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// anyPerpendicular returns a unit vector orthogonal to v
func anyPerpendicular(v rl.Vector3) rl.Vector3 {
	return normalize(rl.Vector3Perpendicular(v))
}

// tangentBasis builds two unit vectors spanning the plane orthogonal to normal
func tangentBasis(normal rl.Vector3) (rl.Vector3, rl.Vector3) {
	t1 := rl.Vector3{X: 1}
	if math32.Abs(normal.X) > 0.9 {
		t1 = rl.Vector3{Y: 1}
	}
	t1 = normalize(sub(t1, scale(normal, dot(t1, normal))))
	t2 := normalize(cross(normal, t1))
	return t1, t2
}
