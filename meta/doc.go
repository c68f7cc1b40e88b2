// Package meta computes and caches per-type accessor metadata.
//
// Key types:
//   - Accessor: uniform read/write capability over a method or a field
//   - TypeMeta: the resolved accessor set of one type, built once
//   - Cache: concurrent, idempotent TypeMeta memoization by type identity
//   - TypeView: instance-free path navigation over declared types
package meta
