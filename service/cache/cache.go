package cache

import (
	"errors"
	"time"

	"github.com/rsandx/oasis-nft-port/base/ctx"
)

var (
	// ErrNotFound will throw if the key is absent or expired
	ErrNotFound = errors.New("cache key not found")
)

// Service is a byte-value cache with per-entry TTL.
type Service interface {
	Get(ctx ctx.Ctx, key string) ([]byte, error)
	Set(ctx ctx.Ctx, key string, value []byte, ttl time.Duration) error
	Del(ctx ctx.Ctx, key string) error
}
