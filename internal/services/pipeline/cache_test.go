package pipeline

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/models"
)

func TestCacheKey_Deterministic(t *testing.T) {
	a := &models.DesignRequest{RawInput: "2BHK flats in Pune", Category: "ready-to-move", Platform: "Instagram Story", Style: "modern"}
	b := &models.DesignRequest{RawInput: "2BHK flats in Pune", Category: "ready-to-move", Platform: "Instagram Story", Style: "modern"}

	assert.Equal(t, CacheKey(a), CacheKey(b))
	assert.Len(t, CacheKey(a), 32)
}

func TestCacheKey_IgnoresBrandFields(t *testing.T) {
	plain := &models.DesignRequest{RawInput: "villa plots", Category: "new-launch", Platform: "Instagram Story", Style: "modern"}
	branded := &models.DesignRequest{RawInput: "villa plots", Category: "new-launch", Platform: "Instagram Story", Style: "modern", BrandKitID: "bk_123", BrandInfo: "ACME Homes"}

	// Brand fields are excluded from the fingerprint; the orchestrator
	// bypasses the cache for branded requests instead.
	assert.Equal(t, CacheKey(plain), CacheKey(branded))
}

func TestCacheKey_DistinctRequests(t *testing.T) {
	a := &models.DesignRequest{RawInput: "flats", Category: "ready-to-move", Platform: "Instagram Story", Style: "modern"}
	b := &models.DesignRequest{RawInput: "flats", Category: "ready-to-move", Platform: "Instagram Post", Style: "modern"}

	assert.NotEqual(t, CacheKey(a), CacheKey(b))
}

func TestPlanCache_GetPut(t *testing.T) {
	cache := NewPlanCache(10)

	assert.Nil(t, cache.Get("missing"))

	plan := &models.ContentPlan{VisualPrompt: "sunset tower"}
	cache.Put("k1", plan)

	got := cache.Get("k1")
	assert.Same(t, plan, got)
	assert.Equal(t, 1, cache.Len())
}

func TestPlanCache_EvictsOldestAtCapacity(t *testing.T) {
	cache := NewPlanCache(3)
	for i := 0; i < 3; i++ {
		cache.Put(fmt.Sprintf("k%d", i), &models.ContentPlan{VisualPrompt: fmt.Sprintf("p%d", i)})
	}

	cache.Put("k3", &models.ContentPlan{VisualPrompt: "p3"})

	assert.Equal(t, 3, cache.Len())
	assert.Nil(t, cache.Get("k0"), "oldest entry should be evicted")
	assert.NotNil(t, cache.Get("k1"))
	assert.NotNil(t, cache.Get("k2"))
	assert.NotNil(t, cache.Get("k3"))
}

func TestPlanCache_ReplaceDoesNotEvict(t *testing.T) {
	cache := NewPlanCache(2)
	cache.Put("a", &models.ContentPlan{VisualPrompt: "first"})
	cache.Put("b", &models.ContentPlan{VisualPrompt: "second"})

	// Replacing an existing key must not trigger eviction
	cache.Put("a", &models.ContentPlan{VisualPrompt: "updated"})

	assert.Equal(t, 2, cache.Len())
	assert.Equal(t, "updated", cache.Get("a").VisualPrompt)
	assert.NotNil(t, cache.Get("b"))
}

func TestPlanCache_MinimumCapacity(t *testing.T) {
	cache := NewPlanCache(0)
	cache.Put("a", &models.ContentPlan{})
	cache.Put("b", &models.ContentPlan{})

	assert.Equal(t, 1, cache.Len())
	assert.Nil(t, cache.Get("a"))
	assert.NotNil(t, cache.Get("b"))
}
