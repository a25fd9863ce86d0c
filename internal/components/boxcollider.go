package components

import (
	"impulse3d/internal/engine"
	"impulse3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func init() {
	engine.RegisterComponent("BoxCollider", func(props map[string]any) engine.Component {
		b := NewBoxCollider(rl.Vector3{X: 1, Y: 1, Z: 1})
		if size, ok := engine.PropVector3(props, "size"); ok {
			b.Size = size
		}
		if offset, ok := engine.PropVector3(props, "offset"); ok {
			b.Offset = offset
		}
		return b
	}, func(c engine.Component) map[string]any {
		b, ok := c.(*BoxCollider)
		if !ok {
			return nil
		}
		return map[string]any{
			"size":   engine.VectorProp(b.Size),
			"offset": engine.VectorProp(b.Offset),
		}
	})
}

// BoxCollider is a box of full edge lengths Size, centred Offset from its
// object in local space.
type BoxCollider struct {
	engine.BaseComponent
	Size   rl.Vector3
	Offset rl.Vector3
}

func NewBoxCollider(size rl.Vector3) *BoxCollider {
	return &BoxCollider{
		Size:   size,
		Offset: rl.Vector3{},
	}
}

func (b *BoxCollider) Shape() physics.Shape {
	return physics.NewBox(b.Offset, rl.Vector3Scale(b.Size, 0.5))
}

// GetAABB returns the world-space bounds of the rotated box
func (b *BoxCollider) GetAABB() physics.AABB {
	g := b.GetGameObject()
	return b.Shape().Bounds(&g.Transform)
}
