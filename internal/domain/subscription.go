package domain

import (
	"sync"
	"time"
)

// SubscriptionRecord is one cached membership verification outcome.
type SubscriptionRecord struct {
	UserID    int64
	IsMember  bool
	CheckedAt time.Time
}

// SubscriptionCache stores membership check results. A record older than
// the TTL is stale and ignored on lookup. Records are overwritten on
// every verification and never explicitly deleted.
type SubscriptionCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	records map[int64]SubscriptionRecord
	now     func() time.Time
}

// NewSubscriptionCache creates a cache with the given freshness window.
func NewSubscriptionCache(ttl time.Duration) *SubscriptionCache {
	return &SubscriptionCache{
		ttl:     ttl,
		records: make(map[int64]SubscriptionRecord),
		now:     time.Now,
	}
}

// Lookup returns the cached membership value; ok is false when the
// record is absent or stale.
func (c *SubscriptionCache) Lookup(userID int64) (isMember, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, found := c.records[userID]
	if !found || c.now().Sub(rec.CheckedAt) > c.ttl {
		return false, false
	}
	return rec.IsMember, true
}

// Put overwrites the user's record with the outcome and current time.
func (c *SubscriptionCache) Put(userID int64, isMember bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records[userID] = SubscriptionRecord{
		UserID:    userID,
		IsMember:  isMember,
		CheckedAt: c.now(),
	}
}
