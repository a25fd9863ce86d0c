package components

import (
	"testing"

	"impulse3d/internal/engine"
	"impulse3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestBoxColliderShape(t *testing.T) {
	col := NewBoxCollider(rl.Vector3{X: 2, Y: 4, Z: 6})
	col.Offset = rl.Vector3{Y: 1}

	s := col.Shape()
	if s.Kind != physics.ShapeBox {
		t.Fatalf("Expected a box, got %v", s.Kind)
	}
	if s.HalfExtents != (rl.Vector3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("Expected half extents (1,2,3), got %v", s.HalfExtents)
	}
	if s.Center != col.Offset {
		t.Errorf("Expected center %v, got %v", col.Offset, s.Center)
	}
}

func TestBoxColliderAABB(t *testing.T) {
	g := engine.NewGameObject("Crate")
	g.Transform.Position = rl.Vector3{X: 10}
	col := NewBoxCollider(rl.Vector3{X: 2, Y: 2, Z: 2})
	g.AddComponent(col)

	box := col.GetAABB()
	if box.Min != (rl.Vector3{X: 9, Y: -1, Z: -1}) || box.Max != (rl.Vector3{X: 11, Y: 1, Z: 1}) {
		t.Errorf("Expected [(9,-1,-1) (11,1,1)], got %v", box)
	}
}

func TestSphereColliderCenter(t *testing.T) {
	g := engine.NewGameObject("Ball")
	g.Transform.Position = rl.Vector3{Y: 3}
	col := NewSphereCollider(0.5)
	col.Offset = rl.Vector3{X: 1}
	g.AddComponent(col)

	if c := col.GetCenter(); c != (rl.Vector3{X: 1, Y: 3}) {
		t.Errorf("Expected center (1,3,0), got %v", c)
	}
	if s := col.Shape(); s.Kind != physics.ShapeSphere || s.Radius != 0.5 {
		t.Errorf("Expected a sphere of radius 0.5, got %+v", s)
	}
}

func TestShapeOf(t *testing.T) {
	empty := engine.NewGameObject("Empty")
	if _, ok := ShapeOf(empty); ok {
		t.Error("Object without colliders should have no shape")
	}

	single := engine.NewGameObject("Single")
	single.AddComponent(NewSphereCollider(1))
	if s, ok := ShapeOf(single); !ok || s.Kind != physics.ShapeSphere {
		t.Errorf("Expected the sphere itself, got %+v", s)
	}

	dumbbell := engine.NewGameObject("Dumbbell")
	dumbbell.AddComponent(NewRigidbody())
	left := NewSphereCollider(0.5)
	left.Offset = rl.Vector3{X: -1}
	right := NewSphereCollider(0.5)
	right.Offset = rl.Vector3{X: 1}
	dumbbell.AddComponent(left)
	dumbbell.AddComponent(right)

	s, ok := ShapeOf(dumbbell)
	if !ok || s.Kind != physics.ShapeComposite || len(s.Children) != 2 {
		t.Errorf("Expected a two-part composite, got %+v", s)
	}
}

func TestRigidbodyBind(t *testing.T) {
	tr := engine.NewTransform()
	body, err := physics.NewRigidBody(&tr, physics.NewSphere(rl.Vector3{}, 1), rl.Vector3{}, false, 2)
	if err != nil {
		t.Fatal(err)
	}

	rb := NewRigidbody()
	rb.Bounciness = 0.9
	rb.StaticFriction = 0.6
	rb.InitialVelocity = rl.Vector3{X: 3}
	if rb.Velocity() != rb.InitialVelocity {
		t.Errorf("Unbound velocity should be the initial one, got %v", rb.Velocity())
	}

	rb.Bind(physics.Handle{}, body)
	if body.Bounciness != 0.9 || body.StaticFriction != 0.6 || body.Velocity != (rl.Vector3{X: 3}) {
		t.Errorf("Settings were not copied to the body: %+v", body)
	}

	rb.ApplyImpulse(rl.Vector3{X: 2}, tr.Position)
	if rb.Velocity() != (rl.Vector3{X: 4}) {
		t.Errorf("Expected velocity (4,0,0), got %v", rb.Velocity())
	}

	rb.Unbind()
	if rb.Body() != nil {
		t.Error("Unbind should drop the body")
	}
	rb.AddForce(rl.Vector3{X: 1})
}

func TestClonedRigidbodyIsUnbound(t *testing.T) {
	tmpl := engine.NewGameObject("Template")
	rb := NewRigidbody()
	rb.Mass = 3
	tmpl.AddComponent(rb)
	body, err := physics.NewRigidBody(&tmpl.Transform, physics.NewSphere(rl.Vector3{}, 1), rl.Vector3{}, false, 3)
	if err != nil {
		t.Fatal(err)
	}
	rb.Bind(physics.Handle{}, body)

	ghost, err := tmpl.Clone("Ghost")
	if err != nil {
		t.Fatal(err)
	}
	clone := engine.GetComponent[*Rigidbody](ghost)
	if clone == nil || clone == rb || clone.Mass != 3 {
		t.Fatalf("Expected a separate rigidbody of mass 3, got %+v", clone)
	}
	if clone.Body() != nil || !clone.Handle().IsZero() {
		t.Errorf("Clone should start unbound, got body %p handle %v", clone.Body(), clone.Handle())
	}
	if clone.GetGameObject() != ghost {
		t.Error("Clone should belong to the new GameObject")
	}

	clone.AddForce(rl.Vector3{X: 100})
	clone.ApplyImpulse(rl.Vector3{X: 5}, rl.Vector3{})
	if body.NetForce != (rl.Vector3{}) || body.Velocity != (rl.Vector3{}) {
		t.Errorf("Clone reached the template's body: force %v velocity %v", body.NetForce, body.Velocity)
	}
}

func TestRigidbodyKinematicAndSleep(t *testing.T) {
	tr := engine.NewTransform()
	body, _ := physics.NewRigidBody(&tr, physics.NewSphere(rl.Vector3{}, 1), rl.Vector3{}, false, 1)
	rb := NewRigidbody()
	rb.IsKinematic = true
	if rb.IsSleeping() {
		t.Error("Unbound rigidbody cannot sleep")
	}

	rb.Bind(physics.Handle{}, body)
	if !body.IsKinematic {
		t.Error("Kinematic flag was not copied to the body")
	}

	body.IsSleeping = true
	if !rb.IsSleeping() {
		t.Error("Expected the live sleep state")
	}
	rb.Wake()
	if rb.IsSleeping() {
		t.Error("Wake should clear the sleep state")
	}
}

func TestRigidbodyRegistryRoundTrip(t *testing.T) {
	rb := NewRigidbody()
	rb.Mass = 4
	rb.UseGravity = false
	rb.IsKinematic = true
	rb.InitialVelocity = rl.Vector3{Y: 2}

	name, props, ok := engine.SerializeComponent(rb)
	if !ok || name != "Rigidbody" {
		t.Fatalf("Expected Rigidbody, got %q", name)
	}

	// Scene files decode numbers as float64 and lists as []any
	decoded := map[string]any{
		"mass":        float64(props["mass"].(float32)),
		"useGravity":  props["useGravity"],
		"isKinematic": props["isKinematic"],
		"velocity":    []any{0.0, 2.0, 0.0},
	}
	c, ok := engine.CreateComponent(name, decoded)
	if !ok {
		t.Fatal("Rigidbody is not registered")
	}
	got := c.(*Rigidbody)
	if got.Mass != 4 || got.UseGravity || !got.IsKinematic || got.InitialVelocity != (rl.Vector3{Y: 2}) {
		t.Errorf("Expected mass 4 without gravity moving up, got %+v", got)
	}
	if got.Bounciness != physics.DefaultBounciness {
		t.Errorf("Missing keys should keep defaults, got bounciness %v", got.Bounciness)
	}
}

func TestColliderRegistry(t *testing.T) {
	c, ok := engine.CreateComponent("BoxCollider", map[string]any{"size": []any{2, 2, 2}})
	if !ok {
		t.Fatal("BoxCollider is not registered")
	}
	if box := c.(*BoxCollider); box.Size != (rl.Vector3{X: 2, Y: 2, Z: 2}) {
		t.Errorf("Expected size (2,2,2), got %v", box.Size)
	}

	c, ok = engine.CreateComponent("SphereCollider", map[string]any{"radius": 3})
	if !ok {
		t.Fatal("SphereCollider is not registered")
	}
	if s := c.(*SphereCollider); s.Radius != 3 {
		t.Errorf("Expected radius 3, got %v", s.Radius)
	}
}
