package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	ctopics "github.com/radieske/treasure-table-poc/pkg/contracts/topics"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "3000", cfg.HTTPPort)
	assert.Equal(t, ctopics.BetPlaced, cfg.TopicBetPlaced)
	assert.Equal(t, []string{"CL", "PL", "PD", "SA", "BL1", "FL1"}, cfg.LeagueCodes)
	assert.Equal(t, []string{"Ruperto", "Juan", "Mauricio"}, cfg.SeedPlayers)
	assert.Equal(t, "Ruperto", cfg.FirstPlayer)
	assert.Equal(t, int64(60000), cfg.StartingBalance)
	assert.Equal(t, time.Minute, cfg.PollInterval)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("KAFKA_TOPIC_BET_PLACED", "apostas.confirmadas")
	t.Setenv("LEAGUE_CODES", "PL, SA ,")
	t.Setenv("STARTING_BALANCE", "1000")
	t.Setenv("POLL_INTERVAL", "15s")

	cfg := Load()

	assert.Equal(t, "apostas.confirmadas", cfg.TopicBetPlaced)
	assert.Equal(t, []string{"PL", "SA"}, cfg.LeagueCodes)
	assert.Equal(t, int64(1000), cfg.StartingBalance)
	assert.Equal(t, 15*time.Second, cfg.PollInterval)
}
