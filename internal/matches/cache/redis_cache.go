package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/radieske/treasure-table-poc/pkg/contracts/events"
)

// RedisCache espelha no Redis o último snapshot de partidas ao vivo por liga.
// Espelho efêmero (TTL), sem pretensão de durabilidade.
type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewRedisCache cria o espelho com TTL configurável.
func NewRedisCache(c *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: c, TTL: ttl}
}

// key gera a chave Redis das partidas ao vivo de uma liga.
func key(leagueCode string) string { return "matches:live:" + leagueCode }

// SetLive grava o snapshot corrente da liga com o TTL definido.
func (r *RedisCache) SetLive(ctx context.Context, leagueCode string, ms []events.Match) error {
	b, err := json.Marshal(ms)
	if err != nil {
		return err
	}
	return r.Client.Set(ctx, key(leagueCode), b, r.TTL).Err()
}

// GetLive lê o snapshot da liga, devolvendo false se a chave não existe.
func (r *RedisCache) GetLive(ctx context.Context, leagueCode string) ([]events.Match, bool, error) {
	b, err := r.Client.Get(ctx, key(leagueCode)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var ms []events.Match
	if err := json.Unmarshal(b, &ms); err != nil {
		return nil, false, err
	}
	return ms, true, nil
}
