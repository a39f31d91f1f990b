// Package metadata provides the client's durable key/value storage.
//
// # Overview
//
// The auth flow keeps a handful of small values across runs: the session
// token, the serialized profile and the whole-state snapshot (see the
// StorageKey* constants in internal/common). Repository is the contract the
// services depend on; three backends implement it:
//
//   - SQLiteRepository: a "metadata" table in the local SQLite database
//     (schema managed by goose, see internal/client/migrations)
//   - RedisRepository: plain string keys under a prefix in Redis
//   - MemoryRepository: a map, for tests and the "memory" storage backend
//
// # Contract
//
// Get returns (nil, nil) for a missing key. Delete of a missing key is not an
// error. SetMany writes all pairs or none where the backend supports it.
// Errors are wrapped with the operation and key, e.g.
// "failed to get metadata[auth_token]: ...".
//
// Typical Usage
//
//	repo := metadata.NewSQLiteRepository(db)
//	_ = repo.Set(ctx, common.StorageKeyAuthToken, []byte(token))
//	v, _ := repo.Get(ctx, common.StorageKeyAuthToken)
package metadata
