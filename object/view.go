package object

import (
	"reflect"

	"propgraph/meta"
	"propgraph/prop"
)

// View drives recursive get/set across path segments over one wrapped
// value. Views are created per encountered value during a walk and never
// cached; a view does not own the value it wraps.
type View struct {
	value     reflect.Value
	wrapper   Wrapper
	factory   Factory
	cache     *meta.Cache
	selectors []Selector
}

// Null is the distinguished view of "no value yet". Every operation on it
// degrades to a no-op or a null result instead of failing.
var Null = &View{}

// ForValue wraps a value for path access. A nil value yields Null. Pass a
// pointer when the walk needs to mutate struct properties in place.
func ForValue(value any, factory Factory, cache *meta.Cache, selectors ...Selector) *View {
	if factory == nil {
		factory = DefaultFactory{}
	}

	if cache == nil {
		cache = meta.NewCache()
	}

	return newView(reflect.ValueOf(value), factory, cache, selectors)
}

func newView(rv reflect.Value, factory Factory, cache *meta.Cache, selectors []Selector) *View {
	for rv.Kind() == reflect.Interface {
		rv = rv.Elem()
	}

	if !rv.IsValid() {
		return Null
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		if rv.IsNil() {
			return Null
		}
	}

	v := &View{value: rv, factory: factory, cache: cache, selectors: selectors}
	v.wrapper = selectWrapper(v, rv)

	return v
}

// IsNull reports whether this is the Null view.
func (v *View) IsNull() bool { return v.wrapper == nil }

// Value returns the wrapped value, nil for Null.
func (v *View) Value() any {
	if v.IsNull() || !v.value.CanInterface() {
		return nil
	}

	return v.value.Interface()
}

// Wrapper exposes the bound access strategy, nil for Null.
func (v *View) Wrapper() Wrapper { return v.wrapper }

// Get reads the value at a property path. A null anywhere along the chain
// short-circuits to nil.
func (v *View) Get(path string) (any, error) {
	rv, err := v.getPath(path)
	if err != nil {
		return nil, err
	}

	return toAny(rv), nil
}

func (v *View) getPath(path string) (reflect.Value, error) {
	if v.IsNull() {
		return reflect.Value{}, nil
	}

	seg, err := prop.Parse(path)
	if err != nil {
		return reflect.Value{}, err
	}

	if !seg.HasRest() {
		return v.wrapper.Get(seg)
	}

	child, err := v.viewOfSegment(seg)
	if err != nil {
		return reflect.Value{}, err
	}

	if child.IsNull() {
		return reflect.Value{}, nil
	}

	return child.getPath(seg.Rest)
}

// Set writes a value at a property path. Missing intermediates are
// auto-vivified through the construction policy, except that writing nil
// through an absent chain is a no-op: the walk never materializes objects
// purely to store a null.
func (v *View) Set(path string, value any) error {
	return v.setPath(path, reflect.ValueOf(value))
}

func (v *View) setPath(path string, value reflect.Value) error {
	if v.IsNull() {
		return nil
	}

	seg, err := prop.Parse(path)
	if err != nil {
		return err
	}

	if !seg.HasRest() {
		return v.wrapper.Set(seg, value)
	}

	child, err := v.viewOfSegment(seg)
	if err != nil {
		return err
	}

	if child.IsNull() {
		if isNilValue(value) {
			return nil
		}

		child, err = v.wrapper.Instantiate(path, seg, v.factory)
		if err != nil {
			return err
		}
	}

	return child.setPath(seg.Rest, value)
}

// ViewOf wraps the value at a path in a new view of the same environment.
func (v *View) ViewOf(path string) (*View, error) {
	if v.IsNull() {
		return Null, nil
	}

	rv, err := v.getPath(path)
	if err != nil {
		return nil, err
	}

	return v.child(rv), nil
}

func (v *View) viewOfSegment(seg prop.Segment) (*View, error) {
	head := seg
	head.Rest = ""

	rv, err := v.wrapper.Get(head)
	if err != nil {
		return nil, err
	}

	return v.child(rv), nil
}

func (v *View) child(rv reflect.Value) *View {
	return newView(rv, v.factory, v.cache, v.selectors)
}

// FindProperty resolves a path of possibly mis-cased names to canonical
// dotted form.
func (v *View) FindProperty(name string, loose bool) (string, bool) {
	if v.IsNull() {
		return "", false
	}

	return v.wrapper.FindProperty(name, loose)
}

// GetterNames lists readable properties of the wrapped value.
func (v *View) GetterNames() []string {
	if v.IsNull() {
		return nil
	}

	return v.wrapper.GetterNames()
}

// SetterNames lists writable properties of the wrapped value.
func (v *View) SetterNames() []string {
	if v.IsNull() {
		return nil
	}

	return v.wrapper.SetterNames()
}

// GetterType resolves the value type a path reads, preferring live
// intermediate values over declared types.
func (v *View) GetterType(path string) (reflect.Type, error) {
	if v.IsNull() {
		return nil, nil
	}

	return v.wrapper.GetterType(path)
}

// SetterType resolves the value type a path writes.
func (v *View) SetterType(path string) (reflect.Type, error) {
	if v.IsNull() {
		return nil, nil
	}

	return v.wrapper.SetterType(path)
}

// HasGetter reports whether the path is readable. Never errors.
func (v *View) HasGetter(path string) bool {
	return !v.IsNull() && v.wrapper.HasGetter(path)
}

// HasSetter reports whether the path is writable. Never errors.
func (v *View) HasSetter(path string) bool {
	return !v.IsNull() && v.wrapper.HasSetter(path)
}

// IsSequence reports whether the wrapped value supports append.
func (v *View) IsSequence() bool {
	return !v.IsNull() && v.wrapper.IsSequence()
}

// Append adds an element to a wrapped sequence.
func (v *View) Append(value any) error {
	if v.IsNull() {
		return nil
	}

	return v.wrapper.Append(value)
}

// AppendAll adds every element to a wrapped sequence.
func (v *View) AppendAll(values []any) error {
	if v.IsNull() {
		return nil
	}

	return v.wrapper.AppendAll(values)
}

func toAny(rv reflect.Value) any {
	if !rv.IsValid() || !rv.CanInterface() {
		return nil
	}

	return rv.Interface()
}

func isNilValue(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan,
		reflect.Func, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}
