package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotevault/internal/domain"
)

type fakeClient struct {
	values  map[string]string
	ttls    map[string]time.Duration
	failing error
}

func newFakeClient() *fakeClient {
	return &fakeClient{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeClient) Get(_ context.Context, key string) *goredis.StringCmd {
	if f.failing != nil {
		return goredis.NewStringResult("", f.failing)
	}

	v, ok := f.values[key]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}

	return goredis.NewStringResult(v, nil)
}

func (f *fakeClient) Set(_ context.Context, key string, value any, exp time.Duration) *goredis.StatusCmd {
	if f.failing != nil {
		return goredis.NewStatusResult("", f.failing)
	}

	f.values[key] = value.(string)
	f.ttls[key] = exp

	return goredis.NewStatusResult("OK", nil)
}

func (f *fakeClient) Ping(context.Context) *goredis.StatusCmd {
	return goredis.NewStatusResult("PONG", f.failing)
}

func TestCache_RoundTrip(t *testing.T) {
	client := newFakeClient()
	cache := NewCache(client, "quotevault:", time.Hour)
	ctx := context.Background()

	_, ok, err := cache.GetString(ctx, "user:u1:quotevault_settings")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.SetString(ctx, "user:u1:quotevault_settings", `{"fontSize":16}`))

	v, ok, err := cache.GetString(ctx, "user:u1:quotevault_settings")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"fontSize":16}`, v)

	assert.Contains(t, client.values, "quotevault:user:u1:quotevault_settings")
	assert.Equal(t, time.Hour, client.ttls["quotevault:user:u1:quotevault_settings"])
}

func TestCache_FailuresAreUnavailable(t *testing.T) {
	client := newFakeClient()
	client.failing = errors.New("i/o timeout")
	cache := NewCache(client, "", 0)
	ctx := context.Background()

	_, _, err := cache.GetString(ctx, "k")
	assert.True(t, domain.IsUnavailable(err))

	err = cache.SetString(ctx, "k", "v")
	assert.True(t, domain.IsUnavailable(err))

	assert.Error(t, cache.Check(ctx))
	assert.Equal(t, "redis", cache.Name())
}
