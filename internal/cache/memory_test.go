package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreTTL(t *testing.T) {
	s := NewMemoryStore(10 * time.Millisecond)
	defer s.Close()

	ctx := context.Background()
	key := KeyDetail("bulbasaur")
	val := []byte(`{"name":"bulbasaur"}`)

	require.NoError(t, s.Set(ctx, key, val, 20*time.Millisecond))

	got, hit, err := s.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, hit, "expected hit immediately after Set")
	assert.Equal(t, val, got)

	// Wait for TTL to expire
	time.Sleep(30 * time.Millisecond)

	_, hit, err = s.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, hit, "expected miss after TTL expiry")
}

func TestMemoryStoreMiss(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	defer s.Close()

	_, hit, err := s.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestMemoryStoreCopiesValue(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	defer s.Close()

	ctx := context.Background()
	val := []byte("original")
	require.NoError(t, s.Set(ctx, "k", val, time.Minute))

	// Mutating the caller's buffer must not affect the cached record.
	val[0] = 'X'

	got, hit, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, []byte("original"), got)
}

func TestMemoryStoreNonPositiveTTLDeletes(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, s.Set(ctx, "k", []byte("v"), 0))

	_, hit, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 0, s.Len())
}

func TestKeyHelpers(t *testing.T) {
	assert.Equal(t, "detail:25", KeyDetail("25"))
	assert.Equal(t, "full-detail:4", KeyFullDetail(4))
	assert.Equal(t, "detail", KeyKind(KeyDetail("pikachu")))
	assert.Equal(t, "full-detail", KeyKind(KeyFullDetail(1)))
	assert.Equal(t, "all-index", KeyKind(KeyIndex))
}
