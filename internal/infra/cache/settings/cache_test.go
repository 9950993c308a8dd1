package settings

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

func newCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCache(client, time.Minute), mr
}

func TestCache_SetGetInvalidate(t *testing.T) {
	cache, mr := newCache(t)
	ctx := context.Background()

	_, err := cache.Get(ctx, "b1")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, cache.Set(ctx, &domain.BranchSettings{
		BranchID: "b1",
		OperatingHours: domain.OperatingHours{
			domain.Monday: {IsOpen: true, Open: "09:00", Close: "18:00"},
		},
		SlotDurationMinutes: 30,
	}))
	assert.True(t, mr.Exists("salon:branch-settings:b1"))

	got, err := cache.Get(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, 30, got.SlotDurationMinutes)
	assert.Equal(t, "09:00", got.OperatingHours[domain.Monday].Open)

	require.NoError(t, cache.Invalidate(ctx, "b1"))
	_, err = cache.Get(ctx, "b1")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestCache_TTL(t *testing.T) {
	cache, mr := newCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, domain.DefaultBranchSettings("b2")))
	mr.FastForward(2 * time.Minute)

	_, err := cache.Get(ctx, "b2")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestCache_CorruptEntryIsMiss(t *testing.T) {
	cache, mr := newCache(t)
	require.NoError(t, mr.Set("salon:branch-settings:b3", "{not json"))

	_, err := cache.Get(context.Background(), "b3")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestCache_RedisDown(t *testing.T) {
	cache, mr := newCache(t)
	mr.Close()

	_, err := cache.Get(context.Background(), "b1")
	assert.ErrorIs(t, err, ErrCache)
}
