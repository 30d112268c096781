// Package postgres provides the PostgreSQL implementations of the store
// interfaces defined in internal/store, together with connection setup,
// embedded schema migrations and driver error translation.
//
// Stores accept a store.DBTX so that the same code runs against a pooled
// *sql.DB or a *sql.Tx.
package postgres
