package spin

import (
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/feedspin/feedspin/internal/domain"
)

// configCache is an in-memory LRU for merchant wheel configurations. The TTL
// is short: a stale prize table only mislabels the wheel briefly, while stock
// correctness never depends on the cache - the conditional decrement at write
// time is the authority on quantity.
type configCache struct {
	lru *expirable.LRU[uuid.UUID, *domain.WheelConfig]
}

// newConfigCache creates a cache holding up to size merchants for ttl.
func newConfigCache(size int, ttl time.Duration) *configCache {
	return &configCache{
		lru: expirable.NewLRU[uuid.UUID, *domain.WheelConfig](size, nil, ttl),
	}
}

func (c *configCache) Get(merchantID uuid.UUID) (*domain.WheelConfig, bool) {
	return c.lru.Get(merchantID)
}

func (c *configCache) Set(merchantID uuid.UUID, cfg *domain.WheelConfig) {
	c.lru.Add(merchantID, cfg)
}

// Invalidate removes a merchant's entry. Used when configuration changes.
func (c *configCache) Invalidate(merchantID uuid.UUID) {
	c.lru.Remove(merchantID)
}
