package object

import (
	"reflect"

	"propgraph/prop"
)

// Wrapper is the per-instance value-access strategy bound at construction
// to exactly one root value. The three builtin variants cover bean, map and
// sequence shapes.
type Wrapper interface {
	// Get reads the value addressed by one path segment.
	Get(seg prop.Segment) (reflect.Value, error)
	// Set writes the value addressed by one path segment.
	Set(seg prop.Segment, value reflect.Value) error

	// FindProperty resolves a possibly mis-cased name to its canonical form.
	FindProperty(name string, loose bool) (string, bool)
	// GetterNames lists readable properties.
	GetterNames() []string
	// SetterNames lists writable properties.
	SetterNames() []string
	// GetterType resolves the value type a path reads.
	GetterType(path string) (reflect.Type, error)
	// SetterType resolves the value type a path writes.
	SetterType(path string) (reflect.Type, error)
	// HasGetter reports whether the path is readable. Never errors.
	HasGetter(path string) bool
	// HasSetter reports whether the path is writable. Never errors.
	HasSetter(path string) bool

	// Instantiate creates, binds and wraps a fresh intermediate value for
	// the head segment during a deep set. name is the full path being
	// written, kept for diagnostics.
	Instantiate(name string, seg prop.Segment, factory Factory) (*View, error)

	// IsSequence reports whether the wrapped value supports append.
	IsSequence() bool
	// Append adds one element to a sequence.
	Append(value any) error
	// AppendAll adds every element to a sequence.
	AppendAll(values []any) error
}

// Selector lets callers plug custom wrappers in front of the builtin
// strategies.
type Selector interface {
	// HasWrapperFor reports whether this selector wants to wrap value.
	HasWrapperFor(value any) bool
	// WrapperFor builds the wrapper for value, owned by view.
	WrapperFor(view *View, value any) Wrapper
}

// selectWrapper picks the access strategy for a value: an explicit Wrapper
// wins, then registered selectors in order, then map, sequence and finally
// bean by runtime shape.
func selectWrapper(v *View, rv reflect.Value) Wrapper {
	var raw any
	if rv.CanInterface() {
		raw = rv.Interface()
	}

	if w, ok := raw.(Wrapper); ok {
		return w
	}

	for _, s := range v.selectors {
		if s.HasWrapperFor(raw) {
			return s.WrapperFor(v, raw)
		}
	}

	base := rv
	for base.Kind() == reflect.Pointer && !base.IsNil() {
		base = base.Elem()
	}

	switch base.Kind() {
	case reflect.Map:
		return NewMapWrapper(v, base)
	case reflect.Slice, reflect.Array:
		return NewSliceWrapper(v, base)
	default:
		return NewBeanWrapper(v, base)
	}
}
