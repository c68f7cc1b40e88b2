package object

import (
	"fmt"
	"reflect"
	"strconv"

	"propgraph/meta"
	"propgraph/prop"
	"propgraph/utils"
)

var anyType = reflect.TypeOf((*any)(nil)).Elem()

// indexedGet applies an index token to a resolved collection-like value:
// sequences take a decimal ordinal, maps take the token as a literal key.
// A missing map key is absent, not an error.
func indexedGet(coll reflect.Value, seg prop.Segment) (reflect.Value, error) {
	c := concrete(coll)

	switch c.Kind() {
	case reflect.Map:
		key, err := mapKey(c.Type().Key(), seg.Index)
		if err != nil {
			return reflect.Value{}, err
		}

		item := c.MapIndex(key)
		if !item.IsValid() {
			return reflect.Value{}, nil
		}

		return item, nil
	case reflect.Slice, reflect.Array:
		i, err := ordinal(seg, c.Len())
		if err != nil {
			return reflect.Value{}, err
		}

		return c.Index(i), nil
	default:
		return reflect.Value{}, fmt.Errorf("%w: property %q is not indexable", ErrInvalidIndex, seg.Name)
	}
}

// indexedSet is the write counterpart of indexedGet.
func indexedSet(coll reflect.Value, seg prop.Segment, value reflect.Value) error {
	c := concrete(coll)

	switch c.Kind() {
	case reflect.Map:
		if c.IsNil() {
			return fmt.Errorf("%w: property %q is a nil map", meta.ErrNotAssignable, seg.Name)
		}

		key, err := mapKey(c.Type().Key(), seg.Index)
		if err != nil {
			return err
		}

		item, err := meta.Coerce(value, c.Type().Elem())
		if err != nil {
			return fmt.Errorf("property %q[%s]: %w", seg.Name, seg.Index, err)
		}

		c.SetMapIndex(key, item)

		return nil
	case reflect.Slice, reflect.Array:
		i, err := ordinal(seg, c.Len())
		if err != nil {
			return err
		}

		slot := c.Index(i)
		if !slot.CanSet() {
			return fmt.Errorf("%w: element %d of property %q", meta.ErrNotAddressable, i, seg.Name)
		}

		item, err := meta.Coerce(value, slot.Type())
		if err != nil {
			return fmt.Errorf("property %q[%d]: %w", seg.Name, i, err)
		}

		slot.Set(item)

		return nil
	default:
		return fmt.Errorf("%w: property %q is not indexable", ErrInvalidIndex, seg.Name)
	}
}

// ordinal parses a sequence index and checks it against the length.
func ordinal(seg prop.Segment, length int) (int, error) {
	i, err := strconv.Atoi(seg.Index)
	if err != nil || i < 0 {
		return 0, fmt.Errorf("%w: %q is not an ordinal for property %q", ErrInvalidIndex, seg.Index, seg.Name)
	}

	if !utils.IsInRange(0, i, length-1) {
		return 0, fmt.Errorf("%w: ordinal %d for property %q of length %d",
			ErrIndexOutOfRange, i, seg.Name, length)
	}

	return i, nil
}

// mapKey converts an index token to the map's key type.
func mapKey(t reflect.Type, token string) (reflect.Value, error) {
	switch t.Kind() {
	case reflect.String:
		return reflect.ValueOf(token).Convert(t), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: key %q for %s", ErrInvalidIndex, token, t)
		}

		return reflect.ValueOf(n).Convert(t), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(token, 10, 64)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: key %q for %s", ErrInvalidIndex, token, t)
		}

		return reflect.ValueOf(n).Convert(t), nil
	case reflect.Interface:
		if t.NumMethod() == 0 {
			return reflect.ValueOf(token), nil
		}

		return reflect.Value{}, fmt.Errorf("%w: unsupported key type %s", ErrInvalidIndex, t)
	default:
		return reflect.Value{}, fmt.Errorf("%w: unsupported key type %s", ErrInvalidIndex, t)
	}
}

// concrete unwraps interfaces and non-nil pointers down to the value that
// carries the data.
func concrete(v reflect.Value) reflect.Value {
	for {
		switch {
		case v.Kind() == reflect.Interface && !v.IsNil():
			v = v.Elem()
		case v.Kind() == reflect.Pointer && !v.IsNil():
			v = v.Elem()
		default:
			return v
		}
	}
}
