// Package client contains the client-side building blocks that sit between
// the services and the outside world.
//
// # Overview
//
// The package provides:
//  1. Local storage bootstrap (InitDatabase, RunMigrations, OpenStorage): it
//     opens the configured key/value backend (SQLite with embedded goose
//     migrations, Redis, or memory) and hands back a metadata.Repository.
//  2. The Remote contract for backend calls that have no local equivalent
//     (current-user lookup, token refresh, password change and reset), and
//     Offline, the implementation used while no backend exists.
//
// # Error Handling
//
// Conditions are exposed as sentinel errors that callers can match with
// errors.Is: ErrUnavailable, ErrUnauthorized, ErrUnknownBackend.
//
// See Also
//
//   - Interface:  Remote
//   - Offline:    Offline
//   - DB helpers: InitDatabase, RunMigrations, OpenStorage
package client
