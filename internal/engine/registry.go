package engine

import (
	"fmt"
	"maps"
	"slices"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ComponentFactory creates a Component from scene-file props.
type ComponentFactory func(props map[string]any) Component

// ComponentSerializer converts a Component back to props for saving.
// It returns nil for components it does not own.
type ComponentSerializer func(c Component) map[string]any

type componentEntry struct {
	factory    ComponentFactory
	serializer ComponentSerializer
}

var componentRegistry = map[string]componentEntry{}

// RegisterComponent makes a component type loadable from scene files under name.
// Registering the same name twice panics.
func RegisterComponent(name string, factory ComponentFactory, serializer ComponentSerializer) {
	if _, exists := componentRegistry[name]; exists {
		panic(fmt.Sprintf("component %q already registered", name))
	}
	componentRegistry[name] = componentEntry{factory: factory, serializer: serializer}
}

// CreateComponent looks up a registered component by name and builds it from props.
func CreateComponent(name string, props map[string]any) (Component, bool) {
	entry, ok := componentRegistry[name]
	if !ok {
		return nil, false
	}
	return entry.factory(props), true
}

// SerializeComponent asks every registered serializer for c.
// Returns (name, props, true) if one recognised it.
func SerializeComponent(c Component) (string, map[string]any, bool) {
	for _, name := range RegisteredComponents() {
		entry := componentRegistry[name]
		if entry.serializer == nil {
			continue
		}
		if props := entry.serializer(c); props != nil {
			return name, props, true
		}
	}
	return "", nil, false
}

// RegisteredComponents returns the registered names in sorted order.
func RegisteredComponents() []string {
	return slices.Sorted(maps.Keys(componentRegistry))
}

// PropFloat reads a number from props. JSON decodes numbers as float64,
// YAML as int or float64; both are accepted.
func PropFloat(props map[string]any, key string) (float32, bool) {
	return toFloat(props[key])
}

func PropBool(props map[string]any, key string) (bool, bool) {
	b, ok := props[key].(bool)
	return b, ok
}

// PropVector3 reads a three-element number list from props.
func PropVector3(props map[string]any, key string) (rl.Vector3, bool) {
	var raw []any
	switch v := props[key].(type) {
	case []any:
		raw = v
	case []float32:
		if len(v) == 3 {
			return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}, true
		}
		return rl.Vector3{}, false
	default:
		return rl.Vector3{}, false
	}
	if len(raw) != 3 {
		return rl.Vector3{}, false
	}
	var out [3]float32
	for i, item := range raw {
		f, ok := toFloat(item)
		if !ok {
			return rl.Vector3{}, false
		}
		out[i] = f
	}
	return rl.Vector3{X: out[0], Y: out[1], Z: out[2]}, true
}

// VectorProp is the inverse of PropVector3.
func VectorProp(v rl.Vector3) []float32 {
	return []float32{v.X, v.Y, v.Z}
}

func toFloat(v any) (float32, bool) {
	switch n := v.(type) {
	case float64:
		return float32(n), true
	case float32:
		return n, true
	case int:
		return float32(n), true
	case int64:
		return float32(n), true
	}
	return 0, false
}
