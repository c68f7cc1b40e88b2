package object

import (
	"reflect"

	"propgraph/meta"
	"propgraph/prop"
)

// BeanWrapper accesses struct-shaped values through cached accessor
// metadata. Indexed segments resolve the named property's current value
// first and apply index semantics to that value, not to the bean itself.
type BeanWrapper struct {
	view  *View
	value reflect.Value
	meta  *meta.TypeMeta
	types *meta.TypeView
}

// NewBeanWrapper wraps a struct-shaped value for view. Pass the
// dereferenced, addressable struct value when mutation is needed.
func NewBeanWrapper(view *View, v reflect.Value) *BeanWrapper {
	return &BeanWrapper{
		view:  view,
		value: v,
		meta:  view.cache.For(v.Type()),
		types: meta.ViewType(v.Type(), view.cache),
	}
}

func (w *BeanWrapper) Get(seg prop.Segment) (reflect.Value, error) {
	if seg.HasIndex {
		coll, err := w.view.getPath(seg.Name)
		if err != nil {
			return reflect.Value{}, err
		}

		return indexedGet(coll, seg)
	}

	acc, err := w.meta.Getter(seg.Name)
	if err != nil {
		return reflect.Value{}, err
	}

	return acc.Get(w.value)
}

func (w *BeanWrapper) Set(seg prop.Segment, value reflect.Value) error {
	if seg.HasIndex {
		coll, err := w.view.getPath(seg.Name)
		if err != nil {
			return err
		}

		return indexedSet(coll, seg, value)
	}

	acc, err := w.meta.Setter(seg.Name)
	if err != nil {
		return err
	}

	return acc.Set(w.value, value)
}

func (w *BeanWrapper) FindProperty(name string, loose bool) (string, bool) {
	return w.types.FindProperty(name, loose)
}

func (w *BeanWrapper) GetterNames() []string { return w.meta.GetterNames() }

func (w *BeanWrapper) SetterNames() []string { return w.meta.SetterNames() }

// GetterType prefers the runtime type of the live intermediate value and
// falls back to the declared type when the chain is still null.
func (w *BeanWrapper) GetterType(path string) (reflect.Type, error) {
	seg, err := prop.Parse(path)
	if err != nil {
		return nil, err
	}

	if !seg.HasRest() {
		return w.types.GetterType(path)
	}

	child, err := w.view.ViewOf(seg.IndexedName)
	if err != nil || child.IsNull() {
		return w.types.GetterType(path)
	}

	return child.GetterType(seg.Rest)
}

func (w *BeanWrapper) SetterType(path string) (reflect.Type, error) {
	seg, err := prop.Parse(path)
	if err != nil {
		return nil, err
	}

	if !seg.HasRest() {
		return w.types.SetterType(path)
	}

	child, err := w.view.ViewOf(seg.IndexedName)
	if err != nil || child.IsNull() {
		return w.types.SetterType(path)
	}

	return child.SetterType(seg.Rest)
}

func (w *BeanWrapper) HasGetter(path string) bool {
	seg, err := prop.Parse(path)
	if err != nil {
		return false
	}

	if !seg.HasRest() {
		return w.types.HasGetter(path)
	}

	if !w.types.HasGetter(seg.IndexedName) {
		return false
	}

	child, err := w.view.ViewOf(seg.IndexedName)
	if err != nil || child.IsNull() {
		return w.types.HasGetter(path)
	}

	return child.HasGetter(seg.Rest)
}

func (w *BeanWrapper) HasSetter(path string) bool {
	seg, err := prop.Parse(path)
	if err != nil {
		return false
	}

	if !seg.HasRest() {
		return w.types.HasSetter(path)
	}

	if !w.types.HasSetter(seg.IndexedName) {
		return false
	}

	child, err := w.view.ViewOf(seg.IndexedName)
	if err != nil || child.IsNull() {
		return w.types.HasSetter(path)
	}

	return child.HasSetter(seg.Rest)
}

// Instantiate creates the head property via the factory, binds it into the
// bean and returns a view over the bound value, so further writes land in
// the graph rather than in a detached copy.
func (w *BeanWrapper) Instantiate(name string, seg prop.Segment, factory Factory) (*View, error) {
	t, err := w.types.SetterType(seg.Name)
	if err != nil {
		return nil, &ConstructionError{Property: name, Err: err}
	}

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

func (w *BeanWrapper) IsSequence() bool { return false }

func (w *BeanWrapper) Append(any) error { return ErrUnsupportedOperation }

func (w *BeanWrapper) AppendAll([]any) error { return ErrUnsupportedOperation }
