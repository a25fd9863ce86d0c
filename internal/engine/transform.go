package engine

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Transform places an entity in the world. Position and rotation are mutated by
// the physics solver; scale is read-only from its perspective.
type Transform struct {
	Position rl.Vector3
	Rotation rl.Quaternion
	Scale    rl.Vector3
}

func NewTransform() Transform {
	return Transform{
		Position: rl.Vector3{},
		Rotation: rl.QuaternionIdentity(),
		Scale:    rl.Vector3{X: 1, Y: 1, Z: 1},
	}
}

// Right returns the rotated local X axis
func (t *Transform) Right() rl.Vector3 {
	return rl.Vector3RotateByQuaternion(rl.Vector3{X: 1}, t.Rotation)
}

// Up returns the rotated local Y axis
func (t *Transform) Up() rl.Vector3 {
	return rl.Vector3RotateByQuaternion(rl.Vector3{Y: 1}, t.Rotation)
}

// Forward returns the rotated local Z axis
func (t *Transform) Forward() rl.Vector3 {
	return rl.Vector3RotateByQuaternion(rl.Vector3{Z: 1}, t.Rotation)
}

// TransformPoint maps a local-space point to world space (scale, then rotate, then translate).
func (t *Transform) TransformPoint(local rl.Vector3) rl.Vector3 {
	scaled := rl.Vector3Multiply(local, t.Scale)
	return rl.Vector3Add(t.Position, rl.Vector3RotateByQuaternion(scaled, t.Rotation))
}

// RotateAxisAngle integrates a world-space angular velocity (radians/sec) over dt.
// A zero angular velocity leaves the rotation untouched, since its axis is undefined.
func (t *Transform) RotateAxisAngle(angularVelocity rl.Vector3, dt float32) {
	speed := rl.Vector3Length(angularVelocity)
	if speed == 0 {
		return
	}
	axis := rl.Vector3Scale(angularVelocity, 1/speed)
	delta := rl.QuaternionFromAxisAngle(axis, speed*dt)
	t.Rotation = rl.QuaternionNormalize(rl.QuaternionMultiply(delta, t.Rotation))
}

// SetEulerDegrees sets the rotation from pitch/yaw/roll in degrees (X, Y, Z).
func (t *Transform) SetEulerDegrees(euler rl.Vector3) {
	t.Rotation = rl.QuaternionFromEuler(euler.X*rl.Deg2rad, euler.Y*rl.Deg2rad, euler.Z*rl.Deg2rad)
}

// EulerDegrees is the inverse of SetEulerDegrees, used when saving scenes.
func (t *Transform) EulerDegrees() rl.Vector3 {
	return rl.Vector3Scale(rl.QuaternionToEuler(t.Rotation), rl.Rad2deg)
}

// MaxScale returns the largest absolute scale component. Spheres use it for their radius.
func (t *Transform) MaxScale() float32 {
	return math32.Max(math32.Abs(t.Scale.X), math32.Max(math32.Abs(t.Scale.Y), math32.Abs(t.Scale.Z)))
}
