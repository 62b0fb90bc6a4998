package credstore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisOpTimeout = 2 * time.Second

// Redis stores the session slots in Redis, for deployments where several
// processes of the same user agent share one signed-in identity (a kiosk
// fleet, a daemon plus its CLI). Both slots live under a caller-chosen
// prefix and are written and cleared in one transactional pipeline.
//
// Per the Store contract every operation is total: an unavailable server
// reads as absent and drops writes.
type Redis struct {
	client redis.UniversalClient
	prefix string
}

// NewRedis creates a Redis-backed store. prefix namespaces the two slot
// keys, e.g. "authgate:kiosk-3".
func NewRedis(client redis.UniversalClient, prefix string) *Redis {
	if prefix == "" {
		prefix = "authgate"
	}
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) tokenKey() string   { return r.prefix + ":" + TokenKey }
func (r *Redis) profileKey() string { return r.prefix + ":" + ProfileKey }

func (r *Redis) Token() (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	token, err := r.client.Get(ctx, r.tokenKey()).Result()
	if err != nil || token == "" {
		return "", false
	}
	return token, true
}

func (r *Redis) Profile() ([]byte, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	profile, err := r.client.Get(ctx, r.profileKey()).Bytes()
	if err != nil {
		return nil, false
	}
	return profile, true
}

func (r *Redis) Set(token string, profile []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	_, _ = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.tokenKey(), token, 0)
		pipe.Set(ctx, r.profileKey(), profile, 0)
		return nil
	})
}

func (r *Redis) Clear() {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	_ = r.client.Del(ctx, r.tokenKey(), r.profileKey()).Err()
}
