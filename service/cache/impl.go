package cache

import (
	"time"

	"github.com/coocood/freecache"

	"github.com/rsandx/oasis-nft-port/base/ctx"
)

type impl struct {
	cache *freecache.Cache
}

// New creates an in-process freecache backed cache of sizeBytes capacity.
func New(sizeBytes int) Service {
	return &impl{
		cache: freecache.NewCache(sizeBytes),
	}
}

func (im *impl) Get(context ctx.Ctx, key string) ([]byte, error) {
	val, err := im.cache.Get([]byte(key))
	if err == freecache.ErrNotFound {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return val, nil
}

func (im *impl) Set(context ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	return im.cache.Set([]byte(key), value, int(ttl/time.Second))
}

func (im *impl) Del(context ctx.Ctx, key string) error {
	im.cache.Del([]byte(key))
	return nil
}
