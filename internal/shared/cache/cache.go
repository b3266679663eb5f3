package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis abre e valida a conexão com o Redis usado como espelho de cache
func ConnectRedis(addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}
