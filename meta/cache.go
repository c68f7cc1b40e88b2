package meta

import (
	"reflect"
	"sync"
)

// Cache memoizes TypeMeta per type identity. Population is idempotent:
// concurrent first resolution of the same type may compute redundantly,
// but every caller observes the single stored result.
type Cache struct {
	disabled bool
	entries  sync.Map // reflect.Type -> *TypeMeta
}

// NewCache returns a caching resolver.
func NewCache() *Cache {
	return &Cache{}
}

// NewUncached returns a resolver that rebuilds metadata on every call,
// for tests that need fresh, unshared resolution.
func NewUncached() *Cache {
	return &Cache{disabled: true}
}

// For resolves the metadata of t, building it on first request. Pointer
// types share the entry of their element type.
func (c *Cache) For(t reflect.Type) *TypeMeta {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if c.disabled {
		return NewTypeMeta(t)
	}

	if m, ok := c.entries.Load(t); ok {
		return m.(*TypeMeta)
	}

	m, _ := c.entries.LoadOrStore(t, NewTypeMeta(t))

	return m.(*TypeMeta)
}
