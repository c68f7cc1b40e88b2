package object

import (
	"fmt"
	"reflect"

	"propgraph/meta"
	"propgraph/prop"
)

// SliceWrapper accesses slice- and array-shaped values. Every access
// requires an index parsed as an integer ordinal; named metadata queries
// are never answered the way a bean answers them.
type SliceWrapper struct {
	view  *View
	value reflect.Value
}

// NewSliceWrapper wraps a slice or array value for view.
func NewSliceWrapper(view *View, v reflect.Value) *SliceWrapper {
	return &SliceWrapper{view: view, value: v}
}

func (w *SliceWrapper) Get(seg prop.Segment) (reflect.Value, error) {
	if !seg.HasIndex {
		return reflect.Value{}, fmt.Errorf("%w: sequence access requires an index", ErrInvalidIndex)
	}

	return indexedGet(w.value, seg)
}

func (w *SliceWrapper) Set(seg prop.Segment, value reflect.Value) error {
	if !seg.HasIndex {
		return fmt.Errorf("%w: sequence access requires an index", ErrInvalidIndex)
	}

	return indexedSet(w.value, seg, value)
}

func (w *SliceWrapper) FindProperty(string, bool) (string, bool) { return "", false }

func (w *SliceWrapper) GetterNames() []string { return nil }

func (w *SliceWrapper) SetterNames() []string { return nil }

func (w *SliceWrapper) GetterType(path string) (reflect.Type, error) {
	seg, err := prop.Parse(path)
	if err != nil {
		return nil, err
	}

	if !seg.HasIndex {
		return nil, fmt.Errorf("%w: sequence access requires an index", ErrInvalidIndex)
	}

	if seg.HasRest() {
		child, err := w.view.ViewOf(seg.IndexedName)
		if err != nil {
			return nil, err
		}

		if child.IsNull() {
			return w.value.Type().Elem(), nil
		}

		return child.GetterType(seg.Rest)
	}

	return w.value.Type().Elem(), nil
}

func (w *SliceWrapper) SetterType(path string) (reflect.Type, error) {
	return w.GetterType(path)
}

func (w *SliceWrapper) HasGetter(path string) bool {
	seg, err := prop.Parse(path)
	if err != nil || !seg.HasIndex {
		return false
	}

	if _, err := ordinal(seg, w.value.Len()); err != nil {
		return false
	}

	if !seg.HasRest() {
		return true
	}

	child, err := w.view.ViewOf(seg.IndexedName)
	if err != nil || child.IsNull() {
		return false
	}

	return child.HasGetter(seg.Rest)
}

func (w *SliceWrapper) HasSetter(path string) bool {
	return w.HasGetter(path)
}

func (w *SliceWrapper) Instantiate(name string, seg prop.Segment, _ Factory) (*View, error) {
	return nil, fmt.Errorf("%w: cannot auto-create %q inside a sequence", ErrUnsupportedOperation, name)
}

func (w *SliceWrapper) IsSequence() bool { return true }

// Append grows the slice in place. The slice header must be addressable,
// which it is whenever the sequence was reached through a settable parent.
func (w *SliceWrapper) Append(value any) error {
	if w.value.Kind() != reflect.Slice {
		return fmt.Errorf("%w: append to %s", ErrUnsupportedOperation, w.value.Kind())
	}

	if !w.value.CanSet() {
		return fmt.Errorf("%w: slice header", meta.ErrNotAddressable)
	}

	item, err := meta.Coerce(reflect.ValueOf(value), w.value.Type().Elem())
	if err != nil {
		return err
	}

	w.value.Set(reflect.Append(w.value, item))

	return nil
}

func (w *SliceWrapper) AppendAll(values []any) error {
	for _, value := range values {
		if err := w.Append(value); err != nil {
			return err
		}
	}

	return nil
}
