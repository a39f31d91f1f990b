package metadata

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_Contract(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	v, err := r.Get(ctx, "absent")
	require.NoError(t, err)
	assert.Nil(t, v)

	in := []byte("v")
	require.NoError(t, r.Set(ctx, "k", in))
	in[0] = 'x'

	v, err = r.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), v, "stored value is a copy")

	require.NoError(t, r.SetMany(ctx, map[string][]byte{"a": []byte("1"), "k": []byte("2")}))
	m, err := r.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"a": []byte("1"), "k": []byte("2")}, m)

	require.NoError(t, r.Delete(ctx, "a"))
	require.NoError(t, r.Delete(ctx, "a"))
	require.NoError(t, r.Clear(ctx))

	m, err = r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, m)
}

// All backends must satisfy Repository.
var (
	_ Repository = (*SQLiteRepository)(nil)
	_ Repository = (*RedisRepository)(nil)
	_ Repository = (*MemoryRepository)(nil)
)
