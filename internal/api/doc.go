// Package api handles incoming HTTP requests for the task tracker: request
// decoding and validation, translating service errors to status codes, and
// response formatting. Handlers receive the authenticated caller from the
// context populated by middleware.AuthMiddleware and pass it explicitly to
// the services.
package api
