// Package cache wires the shared response cache. Parsed-response bytes and
// decoded shapes are both stored through the same gocache interface, backed
// in-process by default and by redis when the stage config names an address.
package cache

import (
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	gocachestore "github.com/eko/gocache/store/go_cache/v4"
	redisstore "github.com/eko/gocache/store/redis/v4"
	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const defaultExpiration = 90 * time.Minute

// New returns a byte cache backed by redis when redisAddress is non-empty,
// otherwise by an in-process store.
func New(redisAddress string, redisPassword string) *cache.Cache[[]byte] {
	if redisAddress != "" {
		log.Debug().Str("address", redisAddress).Msg("Using redis response cache")

		client := redis.NewClient(&redis.Options{
			Addr:     redisAddress,
			Password: redisPassword,
		})

		return cache.New[[]byte](redisstore.NewRedis(client, store.WithExpiration(defaultExpiration)))
	}

	memoryStore := gocachestore.NewGoCache(gocache.New(defaultExpiration, 2*defaultExpiration))

	return cache.New[[]byte](memoryStore)
}
