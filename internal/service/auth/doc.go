// Package auth implements credential hashing, HS256 access tokens and the
// sign-up / sign-in flows built on top of them.
package auth
