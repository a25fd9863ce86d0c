package physics

import (
	"testing"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestBoxSupport(t *testing.T) {
	box := boxAt(rl.Vector3{}, rl.Vector3{X: 1, Y: 2, Z: 3})

	got := box.support(rl.Vector3{X: 1, Y: 1, Z: 1})
	if !vecNear(got, rl.Vector3{X: 1, Y: 2, Z: 3}, 1e-6) {
		t.Errorf("Expected (1,2,3), got %v", got)
	}

	// Ties resolve to the first corner in enumeration order
	got = box.support(rl.Vector3{X: -1})
	if !vecNear(got, rl.Vector3{X: -1, Y: -2, Z: -3}, 1e-6) {
		t.Errorf("Expected (-1,-2,-3), got %v", got)
	}
}

func TestSphereSupport(t *testing.T) {
	sphere := sphereAt(rl.Vector3{X: 1}, 2)

	got := sphere.support(rl.Vector3{Y: 3})
	if !vecNear(got, rl.Vector3{X: 1, Y: 2}, 1e-6) {
		t.Errorf("Expected (1,2,0), got %v", got)
	}

	sphere.Transform.Scale = rl.Vector3{X: 1, Y: 3, Z: -2}
	got = sphere.support(rl.Vector3{Z: -1})
	if !vecNear(got, rl.Vector3{X: 1, Z: -6}, 1e-5) {
		t.Errorf("Scaled radius should use the largest scale, got %v", got)
	}
}

func TestBoxAlignedFace(t *testing.T) {
	tests := []struct {
		name   string
		dir    rl.Vector3
		normal rl.Vector3
	}{
		{"down", rl.Vector3{X: 0.2, Y: -0.9, Z: 0.1}, rl.Vector3{Y: -1}},
		{"right", rl.Vector3{X: 3}, rl.Vector3{X: 1}},
		{"back", rl.Vector3{X: 0.1, Z: -1}, rl.Vector3{Z: -1}},
		{"tie prefers right", rl.Vector3{X: 1, Y: 1}, rl.Vector3{X: 1}},
		{"tie prefers up over forward", rl.Vector3{Y: -1, Z: 1}, rl.Vector3{Y: -1}},
	}

	half := rl.Vector3{X: 1, Y: 2, Z: 3}
	box := boxAt(rl.Vector3{X: 5}, half)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			face := box.Shape.AlignedFace(box.Transform, tt.dir)
			if !vecNear(face.Normal, tt.normal, 1e-6) {
				t.Fatalf("Expected normal %v, got %v", tt.normal, face.Normal)
			}
			if len(face.Vertices) != 4 {
				t.Fatalf("Expected 4 vertices, got %d", len(face.Vertices))
			}

			v := face.Vertices
			winding := cross(sub(v[1], v[0]), sub(v[2], v[0]))
			if dot(winding, face.Normal) <= 0 {
				t.Errorf("Face is not counter-clockwise about its normal: %v", v)
			}

			// Every vertex lies on the face plane
			offset := dot(face.Normal, add(rl.Vector3{X: 5}, rl.Vector3Multiply(tt.normal, half)))
			for _, p := range v {
				if !near(dot(face.Normal, p), offset, 1e-5) {
					t.Errorf("Vertex %v is off the face plane", p)
				}
			}

			if _, err := edgePlanes(face); err != nil {
				t.Errorf("edgePlanes: %v", err)
			}
		})
	}
}

func TestSphereAlignedFace(t *testing.T) {
	sphere := sphereAt(rl.Vector3{}, 1)
	face := sphere.Shape.AlignedFace(sphere.Transform, rl.Vector3{Y: 4})

	if len(face.Vertices) != 1 {
		t.Fatalf("Expected a single point, got %d", len(face.Vertices))
	}
	if !vecNear(face.Normal, rl.Vector3{Y: 1}, 1e-6) {
		t.Errorf("Normal should be normalized, got %v", face.Normal)
	}
	if !vecNear(face.Vertices[0], rl.Vector3{Y: 1}, 1e-6) {
		t.Errorf("Expected (0,1,0), got %v", face.Vertices[0])
	}
}

func TestRotatedBoxBounds(t *testing.T) {
	box := boxAt(rl.Vector3{}, unitBox())
	box.Transform.Rotation = rl.QuaternionFromAxisAngle(rl.Vector3{Y: 1}, math32.Pi/4)

	b := box.Shape.Bounds(box.Transform)
	if !near(b.Max.X, math32.Sqrt2, 1e-4) || !near(b.Min.Z, -math32.Sqrt2, 1e-4) {
		t.Errorf("Expected +-sqrt2 on X and Z, got %v", b)
	}
	if !near(b.Max.Y, 1, 1e-5) {
		t.Errorf("Y extent should be untouched, got %v", b.Max.Y)
	}
}

func TestCompositeFlattens(t *testing.T) {
	inner := NewComposite(NewSphere(rl.Vector3{X: 2}, 1), NewSphere(rl.Vector3{X: -2}, 1))
	c := NewComposite(NewBox(rl.Vector3{}, unitBox()), inner)

	if len(c.Children) != 3 {
		t.Fatalf("Expected 3 children, got %d", len(c.Children))
	}
	for _, child := range c.Children {
		if child.Kind == ShapeComposite {
			t.Error("Nested composite was not flattened")
		}
	}

	tr := transformAt(rl.Vector3{})
	if got := c.Support(tr, rl.Vector3{X: 1}); !vecNear(got, rl.Vector3{X: 3}, 1e-6) {
		t.Errorf("Composite support should reach the far sphere, got %v", got)
	}
	b := c.Bounds(tr)
	if !near(b.Min.X, -3, 1e-6) || !near(b.Max.X, 3, 1e-6) {
		t.Errorf("Expected X bounds [-3,3], got %v", b)
	}
}

func TestLocalInertia(t *testing.T) {
	one := rl.Vector3{X: 1, Y: 1, Z: 1}

	box := NewBox(rl.Vector3{}, rl.Vector3{X: 1, Y: 2, Z: 3}).localInertia(12, one)
	// dims 2, 4, 6
	if !vecNear(box, rl.Vector3{X: 52, Y: 40, Z: 20}, 1e-4) {
		t.Errorf("Box inertia = %v, want (52,40,20)", box)
	}

	sphere := NewSphere(rl.Vector3{}, 1).localInertia(3, one)
	if !vecNear(sphere, rl.Vector3{X: 2, Y: 2, Z: 2}, 1e-5) {
		t.Errorf("Sphere inertia = %v, want 2 on every axis", sphere)
	}
}
