package components

import (
	"impulse3d/internal/engine"
	"impulse3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func init() {
	engine.RegisterComponent("SphereCollider", func(props map[string]any) engine.Component {
		s := NewSphereCollider(0.5)
		if r, ok := engine.PropFloat(props, "radius"); ok {
			s.Radius = r
		}
		if offset, ok := engine.PropVector3(props, "offset"); ok {
			s.Offset = offset
		}
		return s
	}, func(c engine.Component) map[string]any {
		s, ok := c.(*SphereCollider)
		if !ok {
			return nil
		}
		return map[string]any{
			"radius": s.Radius,
			"offset": engine.VectorProp(s.Offset),
		}
	})
}

type SphereCollider struct {
	engine.BaseComponent
	Radius float32
	Offset rl.Vector3
}

func NewSphereCollider(radius float32) *SphereCollider {
	return &SphereCollider{
		Radius: radius,
		Offset: rl.Vector3{},
	}
}

func (s *SphereCollider) Shape() physics.Shape {
	return physics.NewSphere(s.Offset, s.Radius)
}

// GetCenter returns the world-space center of this collider
func (s *SphereCollider) GetCenter() rl.Vector3 {
	g := s.GetGameObject()
	return g.Transform.TransformPoint(s.Offset)
}
