// Package prop provides property path parsing and accessor naming rules.
//
// Key functions:
//   - Parse: splits a dotted/indexed path into its head segment and rest
//   - MethodToProperty: derives a property name from a Get/Is/Set method
//   - StripUnderscores: normalizes names for loose property lookup
package prop
