package engine

import (
	"fmt"
	"reflect"

	"github.com/jinzhu/copier"
)

// CloneComponent deep-copies the exported state of c into a new component of
// the same type. Unexported runtime state, such as the owning GameObject or a
// solver binding, is left zero.
func CloneComponent(c Component) (Component, error) {
	t := reflect.TypeOf(c)
	if t == nil || t.Kind() != reflect.Pointer || t.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("clone %T: component must be a pointer to a struct", c)
	}
	dst := reflect.New(t.Elem())
	if err := copyExported(dst.Elem(), reflect.ValueOf(c).Elem()); err != nil {
		return nil, fmt.Errorf("clone %T: %w", c, err)
	}
	clone, ok := dst.Interface().(Component)
	if !ok {
		return nil, fmt.Errorf("clone %T: copy is not a component", c)
	}
	return clone, nil
}

// copyExported walks src field by field. Exported embedded structs are walked
// too, so settings promoted from them survive while their private state does not.
func copyExported(dst, src reflect.Value) error {
	for i := 0; i < src.NumField(); i++ {
		field := src.Type().Field(i)
		if !field.IsExported() {
			continue
		}
		from, to := src.Field(i), dst.Field(i)
		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			if err := copyExported(to, from); err != nil {
				return err
			}
			continue
		}

		var err error
		switch from.Kind() {
		case reflect.Slice, reflect.Map:
			if !from.IsNil() {
				err = copier.CopyWithOption(to.Addr().Interface(), from.Interface(), copier.Option{DeepCopy: true})
			}
		case reflect.Pointer:
			if !from.IsNil() {
				fresh := reflect.New(from.Type().Elem())
				err = copier.CopyWithOption(fresh.Interface(), from.Interface(), copier.Option{DeepCopy: true})
				to.Set(fresh)
			}
		default:
			to.Set(from)
		}
		if err != nil {
			return fmt.Errorf("field %s: %w", field.Name, err)
		}
	}
	return nil
}

// Clone copies g under a new name and UID. The copy is not in any scene.
func (g *GameObject) Clone(name string) (*GameObject, error) {
	out := NewGameObject(name)
	out.Tags = append([]string(nil), g.Tags...)
	out.Transform = g.Transform
	out.Active = g.Active
	for _, c := range g.components {
		clone, err := CloneComponent(c)
		if err != nil {
			return nil, err
		}
		out.AddComponent(clone)
	}
	return out, nil
}
