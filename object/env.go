package object

import "propgraph/meta"

// systemCache backs the package-level entry points: metadata is resolved
// once per type for the life of the process.
var systemCache = meta.NewCache()

// Wrap views a value through the default environment: DefaultFactory, the
// process-wide metadata cache and no custom selectors.
func Wrap(value any) *View {
	return ForValue(value, DefaultFactory{}, systemCache)
}

// Get reads the value at a property path of root.
func Get(root any, path string) (any, error) {
	return Wrap(root).Get(path)
}

// Set writes a value at a property path of root. Pass a pointer root when
// the path mutates struct properties.
func Set(root any, path string, value any) error {
	return Wrap(root).Set(path, value)
}
