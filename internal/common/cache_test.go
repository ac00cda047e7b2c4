package common

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedStats struct {
	Count  int            `json:"count"`
	BySize map[string]int `json:"bySize"`
}

func TestCacheService_GetOrSetAndPrefixDelete(t *testing.T) {
	c := NewCacheService(time.Minute, time.Minute)
	calls := 0
	loader := func() (any, error) {
		calls++
		return "maverick", nil
	}

	v, err := c.GetOrSet("USERNAME_1", time.Minute, loader)
	require.NoError(t, err)
	assert.Equal(t, "maverick", v)
	_, err = c.GetOrSet("USERNAME_1", time.Minute, loader)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	c.Set("FLEET_STATS_u1|a", 1, time.Minute)
	c.Set("FLEET_STATS_u1|b", 2, time.Minute)
	c.Set("FLEET_STATS_u2|a", 3, time.Minute)
	c.DeletePrefix("FLEET_STATS_u1")

	_, found := c.Get("FLEET_STATS_u1|a")
	assert.False(t, found)
	_, found = c.Get("FLEET_STATS_u2|a")
	assert.True(t, found)
}

func TestCacheService_LoaderErrorNotCached(t *testing.T) {
	c := NewCacheService(time.Minute, time.Minute)
	_, err := c.GetOrSet("k", time.Minute, func() (any, error) { return nil, errors.New("down") })
	assert.Error(t, err)
	_, found := c.Get("k")
	assert.False(t, found)
}

func TestDecode(t *testing.T) {
	direct := cachedStats{Count: 2}
	got, ok := Decode[cachedStats](direct)
	require.True(t, ok)
	assert.Equal(t, 2, got.Count)

	got, ok = Decode[cachedStats](&direct)
	require.True(t, ok)
	assert.Equal(t, 2, got.Count)

	// shape Redis returns after a JSON round trip
	generic := map[string]interface{}{"count": float64(4), "bySize": map[string]interface{}{"S": float64(1)}}
	got, ok = Decode[cachedStats](generic)
	require.True(t, ok)
	assert.Equal(t, 4, got.Count)
	assert.Equal(t, 1, got.BySize["S"])

	_, ok = Decode[cachedStats](nil)
	assert.False(t, ok)

	_, ok = Decode[cachedStats]("not an object")
	assert.False(t, ok)
}
