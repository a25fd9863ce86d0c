package components

import (
	"impulse3d/internal/engine"
	"impulse3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func init() {
	engine.RegisterComponent("Rigidbody", func(props map[string]any) engine.Component {
		rb := NewRigidbody()
		rb.Deserialize(props)
		return rb
	}, func(c engine.Component) map[string]any {
		if rb, ok := c.(*Rigidbody); ok {
			return rb.Serialize()
		}
		return nil
	})
}

// Rigidbody makes its GameObject dynamic. The settings are copied onto the
// solver body when the object is added to a world; after that, read and
// push the body through Body().
type Rigidbody struct {
	engine.BaseComponent
	Mass            float32
	Bounciness      float32 // 0 = no bounce, 1 = perfect bounce
	StaticFriction  float32
	DynamicFriction float32
	UseGravity      bool
	IsKinematic     bool // moves with its velocity but is never pushed
	InitialVelocity rl.Vector3

	handle physics.Handle
	body   *physics.RigidBody
}

func NewRigidbody() *Rigidbody {
	return &Rigidbody{
		Mass:            1.0,
		Bounciness:      physics.DefaultBounciness,
		StaticFriction:  physics.DefaultStaticFriction,
		DynamicFriction: physics.DefaultDynamicFriction,
		UseGravity:      true,
	}
}

// Bind attaches the solver body created for this component.
func (r *Rigidbody) Bind(h physics.Handle, body *physics.RigidBody) {
	r.handle = h
	r.body = body
	if body == nil {
		return
	}
	body.Bounciness = r.Bounciness
	body.StaticFriction = r.StaticFriction
	body.DynamicFriction = r.DynamicFriction
	body.IsKinematic = r.IsKinematic
	body.Velocity = r.InitialVelocity
}

// Unbind forgets the solver body, e.g. after the object left its world.
func (r *Rigidbody) Unbind() {
	r.handle = physics.Handle{}
	r.body = nil
}

func (r *Rigidbody) Handle() physics.Handle {
	return r.handle
}

// Body returns the live solver body, or nil while unbound.
func (r *Rigidbody) Body() *physics.RigidBody {
	return r.body
}

// Velocity reports the live velocity once bound, the initial one before.
func (r *Rigidbody) Velocity() rl.Vector3 {
	if r.body == nil {
		return r.InitialVelocity
	}
	return r.body.Velocity
}

// IsSleeping reports whether the solver has put the body to sleep
func (r *Rigidbody) IsSleeping() bool {
	return r.body != nil && r.body.IsSleeping
}

// Wake returns a sleeping body to the simulation
func (r *Rigidbody) Wake() {
	if r.body != nil {
		r.body.Wake()
	}
}

func (r *Rigidbody) AddForce(force rl.Vector3) {
	if r.body != nil {
		r.body.AddForce(force)
	}
}

// ApplyImpulse pushes the body at a world point.
func (r *Rigidbody) ApplyImpulse(impulse, point rl.Vector3) {
	if r.body != nil {
		r.body.ApplyImpulse(impulse, rl.Vector3Subtract(point, r.body.CenterOfMass()))
	}
}

func (r *Rigidbody) Serialize() map[string]any {
	return map[string]any{
		"mass":            r.Mass,
		"bounciness":      r.Bounciness,
		"staticFriction":  r.StaticFriction,
		"dynamicFriction": r.DynamicFriction,
		"useGravity":      r.UseGravity,
		"isKinematic":     r.IsKinematic,
		"velocity":        engine.VectorProp(r.Velocity()),
	}
}

func (r *Rigidbody) Deserialize(data map[string]any) {
	if m, ok := engine.PropFloat(data, "mass"); ok {
		r.Mass = m
	}
	if b, ok := engine.PropFloat(data, "bounciness"); ok {
		r.Bounciness = b
	}
	if f, ok := engine.PropFloat(data, "staticFriction"); ok {
		r.StaticFriction = f
	}
	if f, ok := engine.PropFloat(data, "dynamicFriction"); ok {
		r.DynamicFriction = f
	}
	if g, ok := engine.PropBool(data, "useGravity"); ok {
		r.UseGravity = g
	}
	if k, ok := engine.PropBool(data, "isKinematic"); ok {
		r.IsKinematic = k
	}
	if v, ok := engine.PropVector3(data, "velocity"); ok {
		r.InitialVelocity = v
	}
}
