package object

import (
	"fmt"
	"reflect"

	"propgraph/meta"
	"propgraph/prop"
)

// MapWrapper accesses map-shaped values by key presence rather than
// reflective accessors. A read of a missing key is absent, never an error,
// and never creates the key.
type MapWrapper struct {
	view  *View
	value reflect.Value
}

// NewMapWrapper wraps a map value for view.
func NewMapWrapper(view *View, v reflect.Value) *MapWrapper {
	return &MapWrapper{view: view, value: v}
}

func (w *MapWrapper) Get(seg prop.Segment) (reflect.Value, error) {
	if seg.HasIndex {
		coll, err := w.view.getPath(seg.Name)
		if err != nil {
			return reflect.Value{}, err
		}

		return indexedGet(coll, seg)
	}

	key, err := mapKey(w.value.Type().Key(), seg.Name)
	if err != nil {
		// An inconvertible key cannot be present.
		return reflect.Value{}, nil
	}

	item := w.value.MapIndex(key)
	if !item.IsValid() {
		return reflect.Value{}, nil
	}

	return item, nil
}

func (w *MapWrapper) Set(seg prop.Segment, value reflect.Value) error {
	if seg.HasIndex {
		coll, err := w.view.getPath(seg.Name)
		if err != nil {
			return err
		}

		return indexedSet(coll, seg, value)
	}

	key, err := mapKey(w.value.Type().Key(), seg.Name)
	if err != nil {
		return err
	}

	item, err := meta.Coerce(value, w.value.Type().Elem())
	if err != nil {
		return fmt.Errorf("key %q: %w", seg.Name, err)
	}

	w.value.SetMapIndex(key, item)

	return nil
}

// FindProperty reports map keys as their own canonical names.
func (w *MapWrapper) FindProperty(name string, _ bool) (string, bool) {
	return name, true
}

func (w *MapWrapper) GetterNames() []string { return w.keyNames() }

func (w *MapWrapper) SetterNames() []string { return w.keyNames() }

func (w *MapWrapper) keyNames() []string {
	keys := w.value.MapKeys()

	names := make([]string, 0, len(keys))
	for _, key := range keys {
		k := concrete(key)
		if k.Kind() == reflect.String {
			names = append(names, k.String())
		} else {
			names = append(names, fmt.Sprint(key.Interface()))
		}
	}

	return names
}

// GetterType reports the runtime type of a present value, the map's
// element type otherwise.
func (w *MapWrapper) GetterType(path string) (reflect.Type, error) {
	seg, err := prop.Parse(path)
	if err != nil {
		return nil, err
	}

	if seg.HasRest() {
		child, err := w.view.ViewOf(seg.IndexedName)
		if err != nil {
			return nil, err
		}

		if child.IsNull() {
			return anyType, nil
		}

		return child.GetterType(seg.Rest)
	}

	item, err := w.Get(seg)
	if err != nil {
		return nil, err
	}

	if c := concrete(item); c.IsValid() {
		return c.Type(), nil
	}

	return w.value.Type().Elem(), nil
}

func (w *MapWrapper) SetterType(path string) (reflect.Type, error) {
	seg, err := prop.Parse(path)
	if err != nil {
		return nil, err
	}

	if seg.HasRest() {
		child, err := w.view.ViewOf(seg.IndexedName)
		if err != nil {
			return nil, err
		}

		if child.IsNull() {
			return anyType, nil
		}

		return child.SetterType(seg.Rest)
	}

	return w.value.Type().Elem(), nil
}

func (w *MapWrapper) HasGetter(path string) bool {
	seg, err := prop.Parse(path)
	if err != nil {
		return false
	}

	if !seg.HasRest() {
		return w.containsSegment(seg)
	}

	if !w.containsSegment(seg) {
		return false
	}

	child, err := w.view.ViewOf(seg.IndexedName)
	if err != nil {
		return false
	}

	if child.IsNull() {
		return true
	}

	return child.HasGetter(seg.Rest)
}

// HasSetter is always true: a map accepts any key.
func (w *MapWrapper) HasSetter(string) bool { return true }

func (w *MapWrapper) containsSegment(seg prop.Segment) bool {
	key, err := mapKey(w.value.Type().Key(), seg.Name)
	if err != nil {
		return false
	}

	if !w.value.MapIndex(key).IsValid() {
		return false
	}

	if !seg.HasIndex {
		return true
	}

	item, err := w.Get(seg)

	return err == nil && item.IsValid()
}

func (w *MapWrapper) Instantiate(name string, seg prop.Segment, factory Factory) (*View, error) {
	t := w.value.Type().Elem()

	fresh, err := factory.Create(t)
	if err != nil {
		return nil, &ConstructionError{Property: name, Type: t, Err: err}
	}

	if err := w.Set(seg, fresh); err != nil {
		return nil, &ConstructionError{Property: name, Type: t, Err: err}
	}

	bound, err := w.Get(seg)
	if err != nil {
		return nil, &ConstructionError{Property: name, Type: t, Err: err}
	}

	return w.view.child(bound), nil
}

func (w *MapWrapper) IsSequence() bool { return false }

func (w *MapWrapper) Append(any) error { return ErrUnsupportedOperation }

func (w *MapWrapper) AppendAll([]any) error { return ErrUnsupportedOperation }
