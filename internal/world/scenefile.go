package world

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"impulse3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"
)

// --- File types ---

type SceneFile struct {
	Objects []ObjectDef `json:"objects" yaml:"objects"`
}

// ObjectDef is one game object. Rotation is Euler degrees.
type ObjectDef struct {
	Name       string         `json:"name" yaml:"name"`
	Tags       []string       `json:"tags,omitempty" yaml:"tags,omitempty"`
	Position   [3]float32     `json:"position" yaml:"position"`
	Rotation   [3]float32     `json:"rotation" yaml:"rotation"`
	Scale      [3]float32     `json:"scale" yaml:"scale"`
	Components []ComponentDef `json:"components" yaml:"components"`
}

// ComponentDef holds a registered component's props plus its "type" name.
type ComponentDef map[string]any

func (d ComponentDef) Type() string {
	name, _ := d["type"].(string)
	return name
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// --- Loading ---

// LoadScene adds every object in the JSON or YAML file at path. Unknown
// component types are skipped with a warning; a body the solver rejects
// aborts the load.
func (w *World) LoadScene(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read scene: %w", err)
	}

	var sf SceneFile
	if isYAML(path) {
		err = yaml.Unmarshal(data, &sf)
	} else {
		err = json.Unmarshal(data, &sf)
	}
	if err != nil {
		return fmt.Errorf("parse scene: %w", err)
	}

	for _, objDef := range sf.Objects {
		g := w.buildObject(objDef)
		if err := w.AddObject(g); err != nil {
			return fmt.Errorf("load scene %s: %w", path, err)
		}
	}

	w.logger.Info("scene loaded", "path", path, "objects", len(sf.Objects), "bodies", len(w.handles))
	return nil
}

func (w *World) buildObject(objDef ObjectDef) *engine.GameObject {
	g := engine.NewGameObject(objDef.Name)
	g.Tags = objDef.Tags
	g.Transform.Position = toVector(objDef.Position)
	g.Transform.SetEulerDegrees(toVector(objDef.Rotation))

	// Default scale to 1 if zero
	if objDef.Scale != [3]float32{} {
		g.Transform.Scale = toVector(objDef.Scale)
	}

	for _, def := range objDef.Components {
		comp, ok := engine.CreateComponent(def.Type(), def)
		if !ok {
			w.logger.Warn("unknown component", "object", objDef.Name, "type", def.Type())
			continue
		}
		g.AddComponent(comp)
	}
	return g
}

func toVector(v [3]float32) rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

func fromVector(v rl.Vector3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

// --- Saving ---

// SaveScene writes the current state of every object, including live
// positions and velocities, as JSON or YAML by extension.
func (w *World) SaveScene(path string) error {
	var sf SceneFile

	for _, g := range w.Scene.GameObjects {
		objDef := ObjectDef{
			Name:     g.Name,
			Tags:     g.Tags,
			Position: fromVector(g.Transform.Position),
			Rotation: fromVector(g.Transform.EulerDegrees()),
			Scale:    fromVector(g.Transform.Scale),
		}

		for _, c := range g.Components() {
			name, props, ok := engine.SerializeComponent(c)
			if !ok {
				continue
			}
			def := ComponentDef{"type": name}
			for k, v := range props {
				def[k] = v
			}
			objDef.Components = append(objDef.Components, def)
		}

		sf.Objects = append(sf.Objects, objDef)
	}

	var data []byte
	var err error
	if isYAML(path) {
		data, err = yaml.Marshal(sf)
	} else {
		data, err = json.MarshalIndent(sf, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal scene: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write scene: %w", err)
	}

	return nil
}
