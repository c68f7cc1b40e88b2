package meta

import (
	"fmt"
	"reflect"
	"strings"

	"propgraph/prop"
)

// TypeMeta is the cached accessor set of a single type: one read and one
// write Accessor per property plus the resolved value types and a
// case-insensitive name index. Built once, immutable thereafter, safe for
// concurrent readers.
type TypeMeta struct {
	typ reflect.Type

	getters  map[string]Accessor
	setters  map[string]Accessor
	getTypes map[string]reflect.Type
	setTypes map[string]reflect.Type

	getterNames []string
	setterNames []string

	byUpper map[string]string

	constructible bool
}

// NewTypeMeta builds the metadata for t. Pointers are resolved to their
// element type first. Construction never fails: conflicts are parked in
// ambiguous accessors that error at first use.
func NewTypeMeta(t reflect.Type) *TypeMeta {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	m := &TypeMeta{
		typ:           t,
		getters:       map[string]Accessor{},
		setters:       map[string]Accessor{},
		getTypes:      map[string]reflect.Type{},
		setTypes:      map[string]reflect.Type{},
		byUpper:       map[string]string{},
		constructible: constructible(t),
	}

	if t.Kind() == reflect.Struct {
		m.addGetterMethods()
		m.addSetterMethods()
		m.addFields()
	}

	for _, name := range m.getterNames {
		m.byUpper[strings.ToUpper(name)] = name
	}

	for _, name := range m.setterNames {
		m.byUpper[strings.ToUpper(name)] = name
	}

	return m
}

// accessorMethods collects the full method set of the type, pointer
// receivers included. Methods promoted from embedded types arrive already
// de-duplicated and shadowed by the shallowest declaration.
func (m *TypeMeta) accessorMethods() []reflect.Method {
	pt := reflect.PointerTo(m.typ)

	methods := make([]reflect.Method, 0, pt.NumMethod())
	for i := 0; i < pt.NumMethod(); i++ {
		methods = append(methods, pt.Method(i))
	}

	return methods
}

func (m *TypeMeta) addGetterMethods() {
	// A property may collect both a Get and an Is candidate.
	candidates := map[string][]reflect.Method{}

	var order []string

	for _, method := range m.accessorMethods() {
		// Receiver is the first parameter of a Method's Func.
		if method.Type.NumIn() != 1 || method.Type.NumOut() != 1 {
			continue
		}

		if !prop.IsGetterName(method.Name) {
			continue
		}

		name, ok := prop.MethodToProperty(method.Name)
		if !ok {
			continue
		}

		if _, seen := candidates[name]; !seen {
			order = append(order, name)
		}

		candidates[name] = append(candidates[name], method)
	}

	for _, name := range order {
		m.resolveGetterConflict(name, candidates[name])
	}
}

// resolveGetterConflict picks one getter per property: boolean "Is" beats
// "Get", a more concrete result type beats one it is assignable to, and
// anything else is ambiguous.
func (m *TypeMeta) resolveGetterConflict(name string, candidates []reflect.Method) {
	winner := candidates[0]
	ambiguous := false

	boolType := reflect.TypeOf(true)

	for _, candidate := range candidates[1:] {
		winnerType := winner.Type.Out(0)
		candidateType := candidate.Type.Out(0)

		switch {
		case candidateType == winnerType:
			if candidateType != boolType {
				ambiguous = true
			} else if strings.HasPrefix(candidate.Name, "Is") {
				winner = candidate
			}
		case winnerType.AssignableTo(candidateType):
			// keep winner, it is the more concrete type
		case candidateType.AssignableTo(winnerType):
			winner = candidate
		default:
			ambiguous = true
		}

		if ambiguous {
			break
		}
	}

	typ := winner.Type.Out(0)

	var acc Accessor = methodGetter{name: winner.Name, typ: typ}
	if ambiguous {
		acc = ambiguousAccessor{
			typ: typ,
			reason: fmt.Sprintf("conflicting getters for property %q on %s break unique resolution",
				name, m.typ),
		}
	}

	m.getters[name] = acc
	m.getTypes[name] = typ
	m.getterNames = append(m.getterNames, name)
}

func (m *TypeMeta) addSetterMethods() {
	candidates := map[string][]reflect.Method{}

	var order []string

	for _, method := range m.accessorMethods() {
		if method.Type.NumIn() != 2 || !prop.IsSetterName(method.Name) {
			continue
		}

		name, ok := prop.MethodToProperty(method.Name)
		if !ok {
			continue
		}

		if _, seen := candidates[name]; !seen {
			order = append(order, name)
		}

		candidates[name] = append(candidates[name], method)
	}

	for _, name := range order {
		m.resolveSetterConflict(name, candidates[name])
	}
}

// resolveSetterConflict prefers the setter whose parameter matches the
// resolved getter type, then the more concrete parameter type.
func (m *TypeMeta) resolveSetterConflict(name string, candidates []reflect.Method) {
	getterType := m.getTypes[name]
	_, getterAmbiguous := m.getters[name].(ambiguousAccessor)

	var match *reflect.Method

	for i := range candidates {
		setter := candidates[i]
		paramType := setter.Type.In(1)

		if !getterAmbiguous && paramType == getterType {
			match = &candidates[i]

			break
		}

		if match == nil {
			match = &candidates[i]

			continue
		}

		matchParam := match.Type.In(1)

		switch {
		case matchParam.AssignableTo(paramType):
			match = &candidates[i]
		case paramType.AssignableTo(matchParam):
			// keep match
		default:
			m.setters[name] = ambiguousAccessor{
				typ: matchParam,
				reason: fmt.Sprintf("conflicting setters for property %q on %s with types %s and %s",
					name, m.typ, matchParam, paramType),
			}
			m.setTypes[name] = matchParam
			m.setterNames = append(m.setterNames, name)

			return
		}
	}

	m.setters[name] = methodSetter{name: match.Name, typ: match.Type.In(1)}
	m.setTypes[name] = match.Type.In(1)
	m.setterNames = append(m.setterNames, name)
}

// addFields registers every exported field without a method accessor,
// walking embedded structs breadth-first so shallower declarations shadow
// deeper ones.
func (m *TypeMeta) addFields() {
	type frame struct {
		typ   reflect.Type
		index []int
	}

	queue := []frame{{typ: m.typ}}

	for len(queue) > 0 {
		f := queue[0]
		queue = queue[1:]

		for i := 0; i < f.typ.NumField(); i++ {
			field := f.typ.Field(i)
			index := append(append([]int{}, f.index...), i)

			if field.Anonymous {
				et := field.Type
				for et.Kind() == reflect.Pointer {
					et = et.Elem()
				}

				if et.Kind() == reflect.Struct {
					queue = append(queue, frame{typ: et, index: index})
				}
			}

			if !field.IsExported() {
				continue
			}

			name := prop.Decapitalize(field.Name)
			acc := fieldAccessor{name: field.Name, index: index, typ: field.Type}

			if _, ok := m.getters[name]; !ok {
				m.getters[name] = acc
				m.getTypes[name] = field.Type
				m.getterNames = append(m.getterNames, name)
			}

			if _, ok := m.setters[name]; !ok {
				m.setters[name] = acc
				m.setTypes[name] = field.Type
				m.setterNames = append(m.setterNames, name)
			}
		}
	}
}

// Type returns the type this metadata describes.
func (m *TypeMeta) Type() reflect.Type { return m.typ }

// Constructible reports whether the type can be created by a default
// construction policy without further information.
func (m *TypeMeta) Constructible() bool { return m.constructible }

// Getter returns the read accessor for a property.
func (m *TypeMeta) Getter(name string) (Accessor, error) {
	acc, ok := m.getters[name]
	if !ok {
		return nil, fmt.Errorf("%w: no getter for %q on %s", ErrPropertyNotFound, name, m.typ)
	}

	return acc, nil
}

// Setter returns the write accessor for a property.
func (m *TypeMeta) Setter(name string) (Accessor, error) {
	acc, ok := m.setters[name]
	if !ok {
		return nil, fmt.Errorf("%w: no setter for %q on %s", ErrPropertyNotFound, name, m.typ)
	}

	return acc, nil
}

// GetterType returns the declared result type of a property's getter.
func (m *TypeMeta) GetterType(name string) (reflect.Type, error) {
	t, ok := m.getTypes[name]
	if !ok {
		return nil, fmt.Errorf("%w: no getter for %q on %s", ErrPropertyNotFound, name, m.typ)
	}

	return t, nil
}

// SetterType returns the declared parameter type of a property's setter.
func (m *TypeMeta) SetterType(name string) (reflect.Type, error) {
	t, ok := m.setTypes[name]
	if !ok {
		return nil, fmt.Errorf("%w: no setter for %q on %s", ErrPropertyNotFound, name, m.typ)
	}

	return t, nil
}

// HasGetter reports whether the property is readable. It never errors,
// ambiguous accessors included.
func (m *TypeMeta) HasGetter(name string) bool {
	_, ok := m.getters[name]

	return ok
}

// HasSetter reports whether the property is writable.
func (m *TypeMeta) HasSetter(name string) bool {
	_, ok := m.setters[name]

	return ok
}

// GetterNames lists readable properties in discovery order.
func (m *TypeMeta) GetterNames() []string { return m.getterNames }

// SetterNames lists writable properties in discovery order.
func (m *TypeMeta) SetterNames() []string { return m.setterNames }

// FindName resolves a case-insensitive spelling to the canonical property
// name. On case collisions the last registered name wins.
func (m *TypeMeta) FindName(name string) (string, bool) {
	canonical, ok := m.byUpper[strings.ToUpper(name)]

	return canonical, ok
}

func constructible(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Struct, reflect.Map, reflect.Slice, reflect.Array,
		reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	case reflect.Interface:
		// The empty interface is materialized as a map.
		return t.NumMethod() == 0
	default:
		return false
	}
}
