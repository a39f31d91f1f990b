package client

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/dmitrijs2005/khula/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/khula/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func TestInitDatabase_CreatesMetadataTable(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "khula.db")

	db, err := InitDatabase(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.PingContext(ctx))
	assert.True(t, tableExists(t, db, "goose_db_version"))
	assert.True(t, tableExists(t, db, "metadata"))
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "khula.db")

	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(ctx, db))
	require.NoError(t, RunMigrations(ctx, db), "second run should be a no-op")
	assert.True(t, tableExists(t, db, "metadata"))
}

func TestInitDatabase_BadPath(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "missing", "dir", "khula.db")

	_, err := InitDatabase(context.Background(), dsn)
	require.Error(t, err)
}

func TestOpenStorage_SQLitePersistsAcrossOpens(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "khula.db")

	st, err := OpenStorage(ctx, StorageOptions{Backend: BackendSQLite, DSN: dsn})
	require.NoError(t, err)
	require.IsType(t, &metadata.SQLiteRepository{}, st.Metadata)
	require.NoError(t, st.Metadata.Set(ctx, common.StorageKeyAuthToken, []byte("tok")))
	require.NoError(t, st.Close())

	st, err = OpenStorage(ctx, StorageOptions{DSN: dsn})
	require.NoError(t, err)
	defer st.Close()

	v, err := st.Metadata.Get(ctx, common.StorageKeyAuthToken)
	require.NoError(t, err)
	assert.Equal(t, []byte("tok"), v)
}

func TestOpenStorage_Redis(t *testing.T) {
	srv := miniredis.RunT(t)
	ctx := context.Background()

	for _, addr := range []string{srv.Addr(), "redis://" + srv.Addr() + "/0"} {
		st, err := OpenStorage(ctx, StorageOptions{Backend: BackendRedis, RedisAddr: addr})
		require.NoError(t, err)
		require.NoError(t, st.Metadata.Set(ctx, "k", []byte("v")))
		require.NoError(t, st.Close())
	}
	assert.True(t, srv.Exists(metadata.DefaultRedisPrefix+"k"))
}

func TestOpenStorage_RedisUnreachable(t *testing.T) {
	srv := miniredis.RunT(t)
	addr := srv.Addr()
	srv.Close()

	_, err := OpenStorage(context.Background(), StorageOptions{Backend: BackendRedis, RedisAddr: addr})
	require.ErrorIs(t, err, ErrUnavailable)

	_, err = OpenStorage(context.Background(), StorageOptions{Backend: BackendRedis, RedisAddr: "redis://:bad:url"})
	require.Error(t, err)
}

func TestOpenStorage_MemoryAndUnknown(t *testing.T) {
	st, err := OpenStorage(context.Background(), StorageOptions{Backend: BackendMemory})
	require.NoError(t, err)
	require.NoError(t, st.Close())
	assert.IsType(t, &metadata.MemoryRepository{}, st.Metadata)

	_, err = OpenStorage(context.Background(), StorageOptions{Backend: "etcd"})
	require.ErrorIs(t, err, ErrUnknownBackend)
}
