package link

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/farmpool/poold/types"
)

// Cached remembers linked accounts for a while. Unlinked farmers are looked up
// every time so a new link is picked up immediately.
type Cached struct {
	next  AccountLinker
	cache *cache.Cache
}

func NewCached(next AccountLinker, ttl time.Duration) *Cached {
	return &Cached{
		next:  next,
		cache: cache.New(ttl, 2*ttl),
	}
}

func (c *Cached) LookupAccount(ctx context.Context, launcherID types.Bytes32) (uint64, bool, error) {
	key := launcherID.String()
	if puid, found := c.cache.Get(key); found {
		return puid.(uint64), true, nil
	}
	puid, linked, err := c.next.LookupAccount(ctx, launcherID)
	if err != nil || !linked {
		return puid, linked, err
	}
	c.cache.SetDefault(key, puid)
	return puid, true, nil
}

// Forget drops the cached link of launcherID.
func (c *Cached) Forget(launcherID types.Bytes32) {
	c.cache.Delete(launcherID.String())
}
