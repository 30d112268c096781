// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic. Backends live under internal/platform and
// must enforce uniqueness and ownership in the database itself rather than
// with read-then-write checks in Go.
package store
