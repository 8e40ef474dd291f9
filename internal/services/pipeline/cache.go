package pipeline

import (
	"crypto/md5"
	"encoding/hex"
	"sync"

	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/models"
)

// CacheKey returns the deterministic fingerprint for a request. Brand
// customization is excluded, so callers must bypass the cache entirely when
// a brand kit is present.
func CacheKey(req *models.DesignRequest) string {
	sum := md5.Sum([]byte(req.Fingerprint()))
	return hex.EncodeToString(sum[:])
}

// PlanCache is a bounded map from request fingerprint to a previously
// generated content plan. On overflow the single oldest-inserted entry is
// evicted; insertion order, not true LRU. Entries have no TTL and live for
// the process lifetime or until evicted by capacity pressure.
type PlanCache struct {
	mu       sync.RWMutex
	capacity int
	entries  map[string]*models.ContentPlan
	order    []string
}

// NewPlanCache creates a cache with the given capacity. Capacity below 1 is
// coerced to 1.
func NewPlanCache(capacity int) *PlanCache {
	if capacity < 1 {
		capacity = 1
	}
	return &PlanCache{
		capacity: capacity,
		entries:  make(map[string]*models.ContentPlan, capacity),
		order:    make([]string, 0, capacity),
	}
}

// Get returns the cached plan for a fingerprint, or nil on miss. Plans are
// immutable after insertion, so concurrent readers share the same instance.
func (c *PlanCache) Get(fingerprint string) *models.ContentPlan {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries[fingerprint]
}

// Put stores a plan, evicting the oldest-inserted entry when at capacity.
// Re-inserting an existing fingerprint replaces the plan without changing
// its insertion position.
func (c *PlanCache) Put(fingerprint string, plan *models.ContentPlan) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[fingerprint]; exists {
		c.entries[fingerprint] = plan
		return
	}

	if len(c.entries) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[fingerprint] = plan
	c.order = append(c.order, fingerprint)
}

// Len returns the number of cached plans
func (c *PlanCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
