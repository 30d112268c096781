// Package sqlite provides the embedded SQLite implementations of the store
// interfaces, backed by the pure-Go modernc.org/sqlite driver.
//
// It serves single-node deployments and the in-memory variant used by tests:
// Open(ctx, MemoryPath, ...) yields a private database that enforces the same
// UNIQUE, CHECK and foreign key constraints as the PostgreSQL schema.
// Timestamps are stored as Unix milliseconds in UTC.
package sqlite
