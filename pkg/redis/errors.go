package redis

import "github.com/shuldan/modular/pkg/errors"

var newRedisCode = errors.WithPrefix("REDIS")

var (
	ErrNoAddress      = newRedisCode().New("no redis address configured")
	ErrInvalidAddress = newRedisCode().New("invalid redis address {{.addr}}")
	ErrInvalidDB      = newRedisCode().New("invalid redis database index {{.db}}")
	ErrPingFailed     = newRedisCode().New("redis ping to {{.addrs}} failed")
	ErrNotInitialized = newRedisCode().New("redis client is not initialized")
)
