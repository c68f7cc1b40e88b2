package meta

import (
	"reflect"

	"propgraph/prop"
)

// TypeView navigates property paths over declared types only, without a
// live instance: canonical name resolution and getter/setter type lookup
// recurse through the nested type reached by each segment's getter.
type TypeView struct {
	cache *Cache
	meta  *TypeMeta
}

// ViewType returns a TypeView over t backed by the given cache.
func ViewType(t reflect.Type, cache *Cache) *TypeView {
	return &TypeView{cache: cache, meta: cache.For(t)}
}

// Meta exposes the underlying type metadata.
func (tv *TypeView) Meta() *TypeMeta { return tv.meta }

// Constructible reports default-constructibility of the viewed type.
func (tv *TypeView) Constructible() bool { return tv.meta.Constructible() }

// GetterNames lists readable properties of the viewed type.
func (tv *TypeView) GetterNames() []string { return tv.meta.GetterNames() }

// SetterNames lists writable properties of the viewed type.
func (tv *TypeView) SetterNames() []string { return tv.meta.SetterNames() }

func (tv *TypeView) viewOf(t reflect.Type) *TypeView {
	return ViewType(t, tv.cache)
}

// segmentGetterType resolves the declared getter type of one segment,
// refining a sequence through its element type when the segment is indexed.
func (tv *TypeView) segmentGetterType(seg prop.Segment) (reflect.Type, error) {
	t, err := tv.meta.GetterType(seg.Name)
	if err != nil {
		return nil, err
	}

	if seg.HasIndex && isSequenceType(t) {
		t = t.Elem()
	}

	return t, nil
}

// GetterType walks the path and returns the declared type of its final
// getter. A trailing index on a sequence-typed property resolves to the
// element type.
func (tv *TypeView) GetterType(path string) (reflect.Type, error) {
	seg, err := prop.Parse(path)
	if err != nil {
		return nil, err
	}

	if seg.HasRest() {
		t, err := tv.segmentGetterType(seg)
		if err != nil {
			return nil, err
		}

		return tv.viewOf(t).GetterType(seg.Rest)
	}

	return tv.segmentGetterType(seg)
}

// SetterType walks the path and returns the declared parameter type of its
// final setter. Intermediate segments navigate through getter types.
func (tv *TypeView) SetterType(path string) (reflect.Type, error) {
	seg, err := prop.Parse(path)
	if err != nil {
		return nil, err
	}

	if seg.HasRest() {
		t, err := tv.segmentGetterType(seg)
		if err != nil {
			return nil, err
		}

		return tv.viewOf(t).SetterType(seg.Rest)
	}

	return tv.meta.SetterType(seg.Name)
}

// HasGetter reports whether every segment of the path is readable,
// short-circuiting false at the first that is not. Malformed paths are
// simply not readable.
func (tv *TypeView) HasGetter(path string) bool {
	seg, err := prop.Parse(path)
	if err != nil {
		return false
	}

	if !tv.meta.HasGetter(seg.Name) {
		return false
	}

	if !seg.HasRest() {
		return true
	}

	t, err := tv.segmentGetterType(seg)
	if err != nil {
		return false
	}

	return tv.viewOf(t).HasGetter(seg.Rest)
}

// HasSetter reports whether the path resolves to a writable property,
// navigating intermediate segments through getter types.
func (tv *TypeView) HasSetter(path string) bool {
	seg, err := prop.Parse(path)
	if err != nil {
		return false
	}

	if !seg.HasRest() {
		return tv.meta.HasSetter(seg.Name)
	}

	if !tv.meta.HasSetter(seg.Name) {
		return false
	}

	t, err := tv.segmentGetterType(seg)
	if err != nil {
		return false
	}

	return tv.viewOf(t).HasSetter(seg.Rest)
}

// FindProperty resolves a path of possibly mis-cased names to its
// canonical dotted form. When loose is true, underscores in the input are
// ignored, so "USER_NAME" matches "userName".
func (tv *TypeView) FindProperty(path string, loose bool) (string, bool) {
	if loose {
		path = prop.StripUnderscores(path)
	}

	return tv.buildProperty(path)
}

func (tv *TypeView) buildProperty(path string) (string, bool) {
	seg, err := prop.Parse(path)
	if err != nil {
		return "", false
	}

	canonical, ok := tv.meta.FindName(seg.Name)
	if !ok {
		return "", false
	}

	if !seg.HasRest() {
		return canonical, true
	}

	t, err := tv.meta.GetterType(canonical)
	if err != nil {
		return "", false
	}

	rest, ok := tv.viewOf(t).buildProperty(seg.Rest)
	if !ok {
		return "", false
	}

	return canonical + "." + rest, true
}

func isSequenceType(t reflect.Type) bool {
	return t.Kind() == reflect.Slice || t.Kind() == reflect.Array
}
