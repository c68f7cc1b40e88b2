package object

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrNoDefaultConstructor = errors.New("no default constructor for type")
	ErrInvalidIndex         = errors.New("invalid index")
	ErrIndexOutOfRange      = errors.New("index out of range")
	ErrUnsupportedOperation = errors.New("operation not supported by this wrapper")
)

// ConstructionError reports a failed auto-vivification of an intermediate
// value during a deep set.
type ConstructionError struct {
	// Property is the path being written when construction failed.
	Property string
	// Type is the declared type that could not be created, if known.
	Type reflect.Type
	// Err is the underlying cause.
	Err error
}

func (e *ConstructionError) Error() string {
	typ := "unknown type"
	if e.Type != nil {
		typ = e.Type.String()
	}

	return fmt.Sprintf("cannot create property %q as %s: %v", e.Property, typ, e.Err)
}

func (e *ConstructionError) Unwrap() error { return e.Err }
