// Package service contains the application use cases for task management.
//
// Services receive their repositories (internal/store interfaces) through
// constructor injection and never depend on a concrete backend. Every task
// operation takes the authenticated caller explicitly; ownership is enforced
// by the owner-scoped store queries, so a task belonging to someone else is
// reported exactly like a task that does not exist.
//
// Store errors are translated here: not-found conditions become
// ErrTaskNotFound, and unexpected failures are logged with the operation,
// the caller and the filter before being returned as a TaskServiceError that
// matches ErrPersistence.
package service
