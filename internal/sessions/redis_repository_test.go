package sessions

import (
	"context"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestRedisRepository_CreateGetDelete(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	repo := NewRedisRepository(client, "test:auth:")

	ctx := context.Background()
	s := &Session{
		Key:       "k1",
		Email:     "me@example.com",
		CreatedAt: time.Now().UTC(),
		ExpiresAt: time.Now().UTC().Add(5 * time.Second),
	}

	require.NoError(t, repo.Create(ctx, s))
	require.True(t, m.Exists("test:auth:k1"))

	got, err := repo.GetByKey(ctx, "k1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, s.Email, got.Email)

	// test deletion
	require.NoError(t, repo.DeleteByKey(ctx, "k1"))
	got2, err := repo.GetByKey(ctx, "k1")
	require.NoError(t, err)
	require.Nil(t, got2)
}

func TestRedisRepository_TTLExpiry(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	repo := NewRedisRepository(client, "")

	ctx := context.Background()
	s := &Session{
		Key:       "k2",
		Email:     "me@example.com",
		CreatedAt: time.Now().UTC(),
		ExpiresAt: time.Now().UTC().Add(1 * time.Second),
	}

	require.NoError(t, repo.Create(ctx, s))
	require.True(t, m.Exists("padserver:auth:k2"))

	// visible immediately
	got, err := repo.GetByKey(ctx, "k2")
	require.NoError(t, err)
	require.NotNil(t, got)

	// advance miniredis clock past TTL
	m.FastForward(2 * time.Second)

	got2, err := repo.GetByKey(ctx, "k2")
	require.NoError(t, err)
	require.Nil(t, got2)
}
