package engine

import rl "github.com/gen2brain/raylib-go/raylib"

// RaycastResult is a ray hit resolved to the object it struck.
type RaycastResult struct {
	GameObject *GameObject
	Point      rl.Vector3
	Normal     rl.Vector3
	Distance   float32
}

// WorldAccess is what components may ask of the world they live in without
// importing it.
type WorldAccess interface {
	SpawnObject(g *GameObject) error
	Destroy(g *GameObject)
	Raycast(origin, direction rl.Vector3, maxDistance float32) (RaycastResult, bool)
}
