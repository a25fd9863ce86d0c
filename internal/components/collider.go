package components

import (
	"impulse3d/internal/engine"
	"impulse3d/internal/physics"
)

// Collider is implemented by every component that gives its GameObject a shape.
type Collider interface {
	engine.Component
	Shape() physics.Shape
}

// ShapeOf merges every collider on g into one shape. A single collider is used
// as is; several become a composite. ok is false when g has no collider.
func ShapeOf(g *engine.GameObject) (shape physics.Shape, ok bool) {
	var parts []physics.Shape
	for _, c := range g.Components() {
		if col, isCollider := c.(Collider); isCollider {
			parts = append(parts, col.Shape())
		}
	}
	switch len(parts) {
	case 0:
		return physics.Shape{}, false
	case 1:
		return parts[0], true
	}
	return physics.NewComposite(parts...), true
}
