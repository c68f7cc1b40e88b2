// Package object walks property paths over live object graphs.
//
// Key types:
//   - Wrapper: per-instance access strategy (bean, map or sequence shape)
//   - View: recursive get/set orchestration over one wrapped root value
//   - Factory: construction policy for auto-vivified intermediate values
//   - Selector: extension point consulted before the builtin wrappers
//
// Package-level Get and Set operate through a default environment with a
// process-wide metadata cache.
package object
