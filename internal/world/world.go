package world

import (
	"errors"
	"fmt"
	"log/slog"

	"impulse3d/internal/components"
	"impulse3d/internal/config"
	"impulse3d/internal/engine"
	"impulse3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ErrNotInWorld is returned for objects the world does not know about.
var ErrNotInWorld = errors.New("world: object not in world")

// World binds a scene's game objects to a physics solver. Objects with a
// collider get a solver body; a Rigidbody makes that body dynamic, otherwise
// it is static.
type World struct {
	Scene  *engine.Scene
	Solver *physics.Solver
	logger *slog.Logger

	handles map[uint64]physics.Handle
	objects map[physics.Handle]engine.GameObjectRef
}

var _ engine.WorldAccess = (*World)(nil)

func New(cfg config.Physics) *World {
	w := &World{
		Scene:   engine.NewScene("Main"),
		Solver:  physics.NewSolver(cfg),
		logger:  slog.Default().With("component", "world"),
		handles: make(map[uint64]physics.Handle),
		objects: make(map[physics.Handle]engine.GameObjectRef),
	}
	w.Solver.OnCollisionEnter.AddListener(func(p physics.CollisionPair) {
		w.dispatch(p, engine.CollisionHandler.OnCollisionEnter)
	})
	w.Solver.OnCollisionExit.AddListener(func(p physics.CollisionPair) {
		w.dispatch(p, engine.CollisionHandler.OnCollisionExit)
	})
	return w
}

func (w *World) SetLogger(l *slog.Logger) {
	if l == nil {
		return
	}
	w.logger = l.With("component", "world")
	w.Solver.SetLogger(l)
}

// AddObject puts g in the scene and, if it has colliders, in the solver.
// Nothing is added when the body is rejected.
func (w *World) AddObject(g *engine.GameObject) error {
	if g.Scene == w.Scene {
		return nil
	}

	if shape, ok := components.ShapeOf(g); ok {
		rb := engine.GetComponent[*components.Rigidbody](g)
		isStatic := rb == nil

		var gravity rl.Vector3
		var mass float32
		if rb != nil {
			mass = rb.Mass
			if rb.UseGravity {
				gravity = w.Solver.Gravity()
			}
		}

		h, err := w.Solver.CreateRigidBody(&g.Transform, shape, gravity, isStatic, mass)
		if err != nil {
			return fmt.Errorf("add %q: %w", g.Name, err)
		}
		if err := w.Solver.AddRigidBody(h); err != nil {
			return fmt.Errorf("add %q: %w", g.Name, err)
		}
		if rb != nil {
			body, _ := w.Solver.Body(h)
			rb.Bind(h, body)
		}
		w.handles[g.UID] = h
		w.objects[h] = engine.RefTo(g)
	}

	w.Scene.AddGameObject(g)
	return nil
}

// SpawnObject adds an object at runtime, same as AddObject.
func (w *World) SpawnObject(g *engine.GameObject) error {
	return w.AddObject(g)
}

// Instantiate clones template under name at position and adds the copy.
// The template itself need not be in the world.
func (w *World) Instantiate(template *engine.GameObject, name string, position rl.Vector3) (*engine.GameObject, error) {
	g, err := template.Clone(name)
	if err != nil {
		return nil, fmt.Errorf("instantiate %q: %w", template.Name, err)
	}
	g.Transform.Position = position
	if err := w.AddObject(g); err != nil {
		return nil, err
	}
	return g, nil
}

// RemoveObject takes g out of the solver and the scene.
func (w *World) RemoveObject(g *engine.GameObject) error {
	if g.Scene != w.Scene {
		return fmt.Errorf("remove %q: %w", g.Name, ErrNotInWorld)
	}
	if h, ok := w.handles[g.UID]; ok {
		if err := w.Solver.RemoveRigidBody(h); err != nil {
			return fmt.Errorf("remove %q: %w", g.Name, err)
		}
		delete(w.handles, g.UID)
		delete(w.objects, h)
		if rb := engine.GetComponent[*components.Rigidbody](g); rb != nil {
			rb.Unbind()
		}
	}
	w.Scene.RemoveGameObject(g)
	return nil
}

// Destroy removes g, logging instead of returning failures.
func (w *World) Destroy(g *engine.GameObject) {
	if err := w.RemoveObject(g); err != nil {
		w.logger.Warn("destroy failed", "object", g.Name, "error", err)
	}
}

// Update advances the simulation by a frame and returns the ticks run.
func (w *World) Update(deltaTime float32) int {
	return w.Solver.Update(deltaTime)
}

// Handle returns the solver handle of g, if it has a body.
func (w *World) Handle(g *engine.GameObject) (physics.Handle, bool) {
	h, ok := w.handles[g.UID]
	return h, ok
}

// ObjectFor resolves a solver handle back to its game object.
func (w *World) ObjectFor(h physics.Handle) *engine.GameObject {
	return w.objects[h].Get(w.Scene)
}

func (w *World) Raycast(origin, direction rl.Vector3, maxDistance float32) (engine.RaycastResult, bool) {
	hit, ok := w.Solver.Raycast(origin, direction, maxDistance)
	if !ok {
		return engine.RaycastResult{}, false
	}
	return engine.RaycastResult{
		GameObject: w.ObjectFor(hit.Handle),
		Point:      hit.Point,
		Normal:     hit.Normal,
		Distance:   hit.Distance,
	}, true
}

// GetCollidableObjects returns all GameObjects that have a solver body
func (w *World) GetCollidableObjects() []*engine.GameObject {
	var result []*engine.GameObject
	for _, g := range w.Scene.GameObjects {
		if _, ok := w.handles[g.UID]; ok {
			result = append(result, g)
		}
	}
	return result
}

func (w *World) dispatch(p physics.CollisionPair, call func(engine.CollisionHandler, *engine.GameObject)) {
	a, b := w.ObjectFor(p.A), w.ObjectFor(p.B)
	if a == nil || b == nil {
		return
	}
	notify(a, b, call)
	notify(b, a, call)
}

func notify(g, other *engine.GameObject, call func(engine.CollisionHandler, *engine.GameObject)) {
	for _, c := range g.Components() {
		if handler, ok := c.(engine.CollisionHandler); ok {
			call(handler, other)
		}
	}
}
