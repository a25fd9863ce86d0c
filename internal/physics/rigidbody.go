package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"impulse3d/internal/engine"
)

// Material defaults for bodies built by NewRigidBody
const (
	DefaultBounciness      = 0.5
	DefaultStaticFriction  = 0.2
	DefaultDynamicFriction = 0.1
)

// DefaultRestVelocity is the speed under which Integrate snaps motion to zero
const DefaultRestVelocity = 0.01

// RigidBody carries the dynamic state of one simulated entity. The Transform
// is owned by the entity; the body only writes Position and Rotation.
type RigidBody struct {
	Transform *engine.Transform
	Shape     Shape

	IsStatic        bool
	// Kinematic bodies move with their velocity but are never pushed
	IsKinematic     bool
	Mass            float32 // ignored when static
	Bounciness      float32
	StaticFriction  float32
	DynamicFriction float32
	Gravity         rl.Vector3

	Velocity        rl.Vector3
	AngularVelocity rl.Vector3 // radians per second, world space

	// Accumulators, cleared by every Integrate
	NetForce  rl.Vector3
	NetTorque rl.Vector3

	// A sleeping body is held in place like a static one until woken
	IsSleeping bool
	quietTicks int
}

// NewRigidBody validates the mass up front so the solver never divides by it.
func NewRigidBody(t *engine.Transform, shape Shape, gravity rl.Vector3, isStatic bool, mass float32) (*RigidBody, error) {
	if t == nil {
		return nil, &ConfigurationError{Field: "transform", Value: nil, Err: ErrNilTransform}
	}
	if !isStatic && !(mass > 0) {
		return nil, &ConfigurationError{Field: "mass", Value: mass, Err: ErrInvalidMass}
	}
	return &RigidBody{
		Transform:       t,
		Shape:           shape,
		IsStatic:        isStatic,
		Mass:            mass,
		Bounciness:      DefaultBounciness,
		StaticFriction:  DefaultStaticFriction,
		DynamicFriction: DefaultDynamicFriction,
		Gravity:         gravity,
	}, nil
}

func (r *RigidBody) collider() Collider {
	return Collider{Shape: r.Shape, Transform: r.Transform}
}

// immovable bodies take no impulses: static, kinematic or asleep
func (r *RigidBody) immovable() bool {
	return r.IsStatic || r.IsKinematic || r.IsSleeping
}

// resting bodies neither move nor need pair tests among themselves
func (r *RigidBody) resting() bool {
	return r.IsStatic || r.IsSleeping
}

// Wake returns a sleeping body to the simulation
func (r *RigidBody) Wake() {
	if !r.IsSleeping {
		return
	}
	r.IsSleeping = false
	r.quietTicks = 0
}

// movingFaster reports an awake dynamic or kinematic body at or above speed
func (r *RigidBody) movingFaster(speed float32) bool {
	if r.resting() {
		return false
	}
	return rl.Vector3Length(r.Velocity) >= speed || rl.Vector3Length(r.AngularVelocity) >= speed
}

// updateSleep counts quiet ticks and puts the body to sleep after enough
// of them. Static and kinematic bodies never sleep.
func (r *RigidBody) updateSleep(speed float32, ticks int) {
	if r.IsStatic || r.IsKinematic || r.IsSleeping {
		return
	}
	if r.movingFaster(speed) {
		r.quietTicks = 0
		return
	}
	r.quietTicks++
	if r.quietTicks >= ticks {
		r.IsSleeping = true
		r.quietTicks = 0
		r.Velocity = rl.Vector3{}
		r.AngularVelocity = rl.Vector3{}
	}
}

func (r *RigidBody) InverseMass() float32 {
	if r.immovable() {
		return 0
	}
	return 1 / r.Mass
}

// CenterOfMass is the world-space centroid of the body's shape
func (r *RigidBody) CenterOfMass() rl.Vector3 {
	return r.Transform.TransformPoint(r.Shape.centroid())
}

// InverseInertiaWorld returns R * I⁻¹ * Rᵀ built from the body's basis
// vectors. The result is symmetric, so raylib's storage order does not matter.
// Static bodies get the zero matrix.
func (r *RigidBody) InverseInertiaWorld() rl.Matrix {
	var m rl.Matrix
	m.M15 = 1
	if r.immovable() {
		return m
	}

	inertia := r.Shape.localInertia(r.Mass, r.Transform.Scale)
	inv := [3]float32{invOrZero(inertia.X), invOrZero(inertia.Y), invOrZero(inertia.Z)}
	axes := [3]rl.Vector3{r.Transform.Right(), r.Transform.Up(), r.Transform.Forward()}

	var e [3][3]float32
	for i, a := range axes {
		v := [3]float32{a.X, a.Y, a.Z}
		for row := 0; row < 3; row++ {
			for col := 0; col < 3; col++ {
				e[row][col] += inv[i] * v[row] * v[col]
			}
		}
	}

	m.M0, m.M4, m.M8 = e[0][0], e[0][1], e[0][2]
	m.M1, m.M5, m.M9 = e[1][0], e[1][1], e[1][2]
	m.M2, m.M6, m.M10 = e[2][0], e[2][1], e[2][2]
	return m
}

func invOrZero(v float32) float32 {
	if v == 0 {
		return 0
	}
	return 1 / v
}

// applyInverseInertia multiplies v by the world inverse inertia tensor
func (r *RigidBody) applyInverseInertia(v rl.Vector3) rl.Vector3 {
	return rl.Vector3Transform(v, r.InverseInertiaWorld())
}

// AddForce accumulates force for the next Integrate, waking the body
func (r *RigidBody) AddForce(force rl.Vector3) {
	if r.IsStatic || r.IsKinematic {
		return
	}
	r.Wake()
	r.NetForce = add(r.NetForce, force)
}

func (r *RigidBody) AddTorque(torque rl.Vector3) {
	if r.IsStatic || r.IsKinematic {
		return
	}
	r.Wake()
	r.NetTorque = add(r.NetTorque, torque)
}

// ApplyGravity accumulates the body's weight
func (r *RigidBody) ApplyGravity() {
	if r.immovable() {
		return
	}
	r.NetForce = add(r.NetForce, scale(r.Gravity, r.Mass))
}

// ApplyImpulse changes velocity instantly, waking the body. rel is the
// application point relative to the center of mass.
func (r *RigidBody) ApplyImpulse(impulse, rel rl.Vector3) {
	if r.IsStatic || r.IsKinematic {
		return
	}
	r.Wake()
	r.applyImpulse(impulse, rel)
}

// applyImpulse is the solver's path; immovable bodies ignore it.
func (r *RigidBody) applyImpulse(impulse, rel rl.Vector3) {
	if r.immovable() {
		return
	}
	r.Velocity = add(r.Velocity, scale(impulse, r.InverseMass()))
	r.AngularVelocity = add(r.AngularVelocity, r.applyInverseInertia(cross(rel, impulse)))
}

// PointVelocity is the world velocity of a point at rel from the center of mass
func (r *RigidBody) PointVelocity(rel rl.Vector3) rl.Vector3 {
	return add(r.Velocity, cross(r.AngularVelocity, rel))
}

// Integrate advances the body by dt. Speeds under restVelocity snap to zero
// first. Position and rotation move with the current velocity, then the
// accumulated force and torque update it. Accumulators are always cleared.
// Kinematic bodies only move; sleeping ones stay put.
func (r *RigidBody) Integrate(dt, restVelocity float32) {
	defer r.clearAccumulators()
	if r.resting() {
		return
	}
	if r.IsKinematic {
		r.Transform.Position = add(r.Transform.Position, scale(r.Velocity, dt))
		r.Transform.RotateAxisAngle(r.AngularVelocity, dt)
		return
	}

	if rl.Vector3Length(r.Velocity) < restVelocity {
		r.Velocity = rl.Vector3{}
	}
	if rl.Vector3Length(r.AngularVelocity) < restVelocity {
		r.AngularVelocity = rl.Vector3{}
	}

	r.Transform.Position = add(r.Transform.Position, scale(r.Velocity, dt))
	r.Transform.RotateAxisAngle(r.AngularVelocity, dt)

	r.Velocity = add(r.Velocity, scale(r.NetForce, r.InverseMass()*dt))
	r.AngularVelocity = add(r.AngularVelocity, scale(r.applyInverseInertia(r.NetTorque), dt))
}

func (r *RigidBody) clearAccumulators() {
	r.NetForce = rl.Vector3{}
	r.NetTorque = rl.Vector3{}
}
