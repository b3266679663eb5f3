package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radieske/treasure-table-poc/pkg/contracts/events"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisCache(client, time.Minute), mr
}

func sampleMatches() []events.Match {
	return []events.Match{
		{
			ID:       101,
			Status:   "IN_PLAY",
			HomeTeam: events.Team{ID: 1, Name: "Gremio"},
			AwayTeam: events.Team{ID: 2, Name: "Internacional"},
		},
	}
}

func TestSetLiveGetLiveRoundtrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetLive(ctx, "PL", sampleMatches()))

	got, ok, err := c.GetLive(ctx, "PL")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, int64(101), got[0].ID)
	assert.Equal(t, "Gremio", got[0].HomeTeam.Name)
}

func TestGetLiveMissingLeague(t *testing.T) {
	c, _ := newTestCache(t)

	got, ok, err := c.GetLive(context.Background(), "CL")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestSetLiveExpiresAfterTTL(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetLive(ctx, "SA", sampleMatches()))
	mr.FastForward(2 * time.Minute)

	_, ok, err := c.GetLive(ctx, "SA")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestSetLiveIsolatesLeagues(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetLive(ctx, "PL", sampleMatches()))

	_, ok, err := c.GetLive(ctx, "BL1")
	assert.NoError(t, err)
	assert.False(t, ok)
}
