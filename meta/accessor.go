package meta

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrPropertyNotFound  = errors.New("no such property")
	ErrAmbiguousAccessor = errors.New("ambiguous accessor")
	ErrNotAddressable    = errors.New("target value is not addressable")
	ErrNotAssignable     = errors.New("value is not assignable to property type")
)

// Accessor reads or writes one property's value on a target instance.
// Implementations wrap either an accessor method or a struct field.
type Accessor interface {
	// Get reads the property from target.
	Get(target reflect.Value) (reflect.Value, error)
	// Set writes value into the property of target.
	Set(target reflect.Value, value reflect.Value) error
	// Type is the declared value type of the property.
	Type() reflect.Type
}

type methodGetter struct {
	name string
	typ  reflect.Type
}

func (a methodGetter) Get(target reflect.Value) (reflect.Value, error) {
	m, err := boundMethod(target, a.name)
	if err != nil {
		return reflect.Value{}, err
	}

	return m.Call(nil)[0], nil
}

func (a methodGetter) Set(reflect.Value, reflect.Value) error {
	return fmt.Errorf("%w: %s is read-only", ErrNotAssignable, a.name)
}

func (a methodGetter) Type() reflect.Type { return a.typ }

type methodSetter struct {
	name string
	typ  reflect.Type
}

func (a methodSetter) Get(reflect.Value) (reflect.Value, error) {
	return reflect.Value{}, fmt.Errorf("%w: %s is write-only", ErrPropertyNotFound, a.name)
}

func (a methodSetter) Set(target reflect.Value, value reflect.Value) error {
	m, err := boundMethod(target, a.name)
	if err != nil {
		return err
	}

	arg, err := Coerce(value, a.typ)
	if err != nil {
		return fmt.Errorf("%s: %w", a.name, err)
	}

	m.Call([]reflect.Value{arg})

	return nil
}

func (a methodSetter) Type() reflect.Type { return a.typ }

type fieldAccessor struct {
	name  string
	index []int
	typ   reflect.Type
}

func (a fieldAccessor) Get(target reflect.Value) (reflect.Value, error) {
	f, err := a.field(target)
	if err != nil {
		return reflect.Value{}, err
	}

	return f, nil
}

func (a fieldAccessor) Set(target reflect.Value, value reflect.Value) error {
	f, err := a.field(target)
	if err != nil {
		return err
	}

	if !f.CanSet() {
		return fmt.Errorf("%w: field %s", ErrNotAddressable, a.name)
	}

	v, err := Coerce(value, a.typ)
	if err != nil {
		return fmt.Errorf("field %s: %w", a.name, err)
	}

	f.Set(v)

	return nil
}

func (a fieldAccessor) Type() reflect.Type { return a.typ }

func (a fieldAccessor) field(target reflect.Value) (reflect.Value, error) {
	v := deref(target)
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%w: %s on %s", ErrPropertyNotFound, a.name, target.Type())
	}

	f, err := v.FieldByIndexErr(a.index)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("field %s: %w", a.name, err)
	}

	return f, nil
}

// ambiguousAccessor defers a getter/setter conflict from metadata build
// time to first use.
type ambiguousAccessor struct {
	typ    reflect.Type
	reason string
}

func (a ambiguousAccessor) Get(reflect.Value) (reflect.Value, error) {
	return reflect.Value{}, fmt.Errorf("%w: %s", ErrAmbiguousAccessor, a.reason)
}

func (a ambiguousAccessor) Set(reflect.Value, reflect.Value) error {
	return fmt.Errorf("%w: %s", ErrAmbiguousAccessor, a.reason)
}

func (a ambiguousAccessor) Type() reflect.Type { return a.typ }

// boundMethod resolves a named method against target, reaching through the
// address when the method has a pointer receiver.
func boundMethod(target reflect.Value, name string) (reflect.Value, error) {
	v := target
	if v.Kind() != reflect.Pointer && v.CanAddr() {
		v = v.Addr()
	}

	m := v.MethodByName(name)
	if !m.IsValid() && v.Kind() == reflect.Pointer {
		m = v.Elem().MethodByName(name)
	}

	if !m.IsValid() {
		return reflect.Value{}, fmt.Errorf("%w: method %s needs an addressable %s",
			ErrNotAddressable, name, target.Type())
	}

	return m, nil
}

// Coerce adapts value to the property type t: nil becomes the zero value,
// assignable values pass through, convertible values are converted.
func Coerce(value reflect.Value, t reflect.Type) (reflect.Value, error) {
	if !value.IsValid() {
		return reflect.Zero(t), nil
	}

	if value.Kind() == reflect.Interface && value.Type() != t {
		value = value.Elem()
		if !value.IsValid() {
			return reflect.Zero(t), nil
		}
	}

	switch {
	case value.Type().AssignableTo(t):
		return value, nil
	case value.Type().ConvertibleTo(t) && preservesValue(value, t):
		return value.Convert(t), nil
	default:
		return reflect.Value{}, fmt.Errorf("%w: %s into %s", ErrNotAssignable, value.Type(), t)
	}
}

// preservesValue guards the conversion fallback against the lossy pairs
// Convert allows: an integer converted to string becomes its code-point
// string, and narrowing numeric conversions truncate or wrap. A numeric
// conversion is accepted only when it round-trips unchanged.
func preservesValue(value reflect.Value, t reflect.Type) bool {
	if !isNumericKind(value.Kind()) {
		return true
	}

	if !isNumericKind(t.Kind()) {
		return false
	}

	converted := value.Convert(t)

	return converted.Convert(value.Type()).Equal(value)
}

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func deref(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.Kind() == reflect.Pointer && v.IsNil() {
			return v
		}

		v = v.Elem()
	}

	return v
}
