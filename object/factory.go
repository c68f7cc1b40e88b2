package object

import (
	"fmt"
	"reflect"
)

// Factory creates fresh values for auto-vivified path intermediates.
type Factory interface {
	Create(t reflect.Type) (reflect.Value, error)
}

// DefaultFactory materializes zero values for the constructible kinds:
// structs, pointers to them, maps, slices and basics. The empty interface
// resolves to map[string]any so untyped graphs can grow by key.
type DefaultFactory struct{}

func (f DefaultFactory) Create(t reflect.Type) (reflect.Value, error) {
	switch t.Kind() {
	case reflect.Interface:
		if t.NumMethod() == 0 {
			return reflect.ValueOf(map[string]any{}), nil
		}

		return reflect.Value{}, fmt.Errorf("%w: interface %s", ErrNoDefaultConstructor, t)
	case reflect.Pointer:
		elem, err := f.Create(t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}

		p := reflect.New(t.Elem())
		p.Elem().Set(elem)

		return p, nil
	case reflect.Map:
		return reflect.MakeMap(t), nil
	case reflect.Slice:
		return reflect.MakeSlice(t, 0, 0), nil
	case reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrNoDefaultConstructor, t)
	default:
		return reflect.New(t).Elem(), nil
	}
}
