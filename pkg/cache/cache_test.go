package cache

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type product struct {
	Name    string  `json:"name"`
	Ratings float64 `json:"ratings"`
}

func TestMemory_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := NewMemory()

	var got product
	hit, err := m.GetJSON(ctx, ProductKey("1"), &got)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, m.SetJSON(ctx, ProductKey("1"), product{Name: "lamp", Ratings: 4.5}))
	hit, err = m.GetJSON(ctx, ProductKey("1"), &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, product{Name: "lamp", Ratings: 4.5}, got)

	require.NoError(t, m.Delete(ctx, ProductKey("1")))
	assert.Zero(t, m.Len())
}

func TestNoop(t *testing.T) {
	t.Parallel()

	hit, err := Noop{}.GetJSON(context.Background(), "k", &product{})
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestNewRedis_MissingAddr(t *testing.T) {
	t.Parallel()

	_, err := NewRedis(context.Background(), "", time.Minute)
	require.Error(t, err)
}

func TestRedis_UnreachableServerSurfacesError(t *testing.T) {
	t.Parallel()

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	c := NewRedisWithClient(rdb, time.Minute)
	t.Cleanup(func() { _ = c.Close() })

	_, err := c.GetJSON(context.Background(), ProductKey("x"), &product{})
	require.Error(t, err)
	require.NoError(t, c.Delete(context.Background()))
}
