package samples

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/common"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir(), common.GetLogger())
	require.NoError(t, err)
	return store
}

func testSample(id string) *models.Sample {
	return &models.Sample{
		ID:       id,
		RawInput: "2BHK flats in Baner",
		Category: "ready-to-move",
		Platform: "Instagram Story",
		Style:    "modern",
	}
}

func TestStore_AppendAndGet(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Append(testSample("s1")))
	require.NoError(t, store.Append(testSample("s2")))

	got, err := store.Get("s2")
	require.NoError(t, err)
	assert.Equal(t, "s2", got.ID)
	assert.Equal(t, "2BHK flats in Baner", got.RawInput)

	_, err = store.Get("missing")
	assert.Error(t, err)
}

func TestStore_AppendRequiresID(t *testing.T) {
	store := newTestStore(t)
	err := store.Append(&models.Sample{})
	assert.Error(t, err)
}

func TestStore_ConcurrentAppends(t *testing.T) {
	store := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			assert.NoError(t, store.Append(testSample(fmt.Sprintf("s%02d", n))))
		}(i)
	}
	wg.Wait()

	listed, err := store.List(models.SampleFilter{})
	require.NoError(t, err)
	assert.Len(t, listed, 50, "interleaved appends never corrupt records")
}

func TestStore_ListFilters(t *testing.T) {
	store := newTestStore(t)

	a := testSample("a")
	a.Category = "luxury"
	a.TenantID = "t1"
	b := testSample("b")
	b.Platform = "Facebook Post"
	c := testSample("c")
	for _, s := range []*models.Sample{a, b, c} {
		require.NoError(t, store.Append(s))
	}

	byCategory, err := store.List(models.SampleFilter{Category: "luxury"})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "a", byCategory[0].ID)

	byTenant, err := store.List(models.SampleFilter{TenantID: "t1"})
	require.NoError(t, err)
	require.Len(t, byTenant, 1)

	byPlatform, err := store.List(models.SampleFilter{Platform: "Instagram Story"})
	require.NoError(t, err)
	assert.Len(t, byPlatform, 2)
}

func TestStore_ListLimitTakesNewestTail(t *testing.T) {
	store := newTestStore(t)
	for i := 0; i < 10; i++ {
		require.NoError(t, store.Append(testSample(fmt.Sprintf("s%d", i))))
	}

	listed, err := store.List(models.SampleFilter{Limit: 3})
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "s7", listed[0].ID, "limit keeps the most recent records")
	assert.Equal(t, "s9", listed[2].ID)
}

func TestStore_Update(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Append(testSample("s1")))

	ok, err := store.Update("s1", func(s *models.Sample) {
		s.Feedback = &models.Feedback{Type: models.FeedbackApprove, Rating: 5}
		s.SelectedForTraining = true
	})
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := store.Get("s1")
	require.NoError(t, err)
	require.NotNil(t, got.Feedback)
	assert.Equal(t, models.FeedbackApprove, got.Feedback.Type)
	assert.True(t, got.SelectedForTraining)

	ok, err = store.Update("missing", func(s *models.Sample) {})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_SkipsCorruptLines(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir, common.GetLogger())
	require.NoError(t, err)

	require.NoError(t, store.Append(testSample("good")))

	f, err := os.OpenFile(filepath.Join(dir, metadataFile), os.O_WRONLY|os.O_APPEND, 0644)
	require.NoError(t, err)
	_, err = f.WriteString("{truncated json\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.NoError(t, store.Append(testSample("after")))

	listed, err := store.List(models.SampleFilter{})
	require.NoError(t, err)
	require.Len(t, listed, 2, "a corrupt line never poisons surrounding records")
	assert.Equal(t, "good", listed[0].ID)
	assert.Equal(t, "after", listed[1].ID)
}

func TestStore_Stats(t *testing.T) {
	store := newTestStore(t)

	approved := testSample("a")
	approved.Feedback = &models.Feedback{Type: models.FeedbackApprove}
	approved.EvaluationScores = &models.EvaluationScores{
		Photorealism: 8, LayoutAlignment: 8, Readability: 8, Relevance: 8, OverallQuality: 8,
	}
	rejected := testSample("r")
	rejected.Feedback = &models.Feedback{Type: models.FeedbackReject}
	rejected.Category = "luxury"
	pending := testSample("p")

	for _, s := range []*models.Sample{approved, rejected, pending} {
		require.NoError(t, store.Append(s))
	}

	stats, err := store.Stats("")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalSamples)
	assert.Equal(t, 1, stats.ApprovedSamples)
	assert.Equal(t, 1, stats.RejectedSamples)
	assert.Equal(t, 1, stats.PendingSamples)
	assert.InDelta(t, 8.0, stats.AvgScore, 0.001)
	assert.Equal(t, 2, stats.CategoryDistribution["ready-to-move"])
	assert.Equal(t, 1, stats.CategoryDistribution["luxury"])
}

func TestStore_StatsScopedToTenant(t *testing.T) {
	store := newTestStore(t)

	mine := testSample("mine")
	mine.TenantID = "t1"
	other := testSample("other")
	other.TenantID = "t2"
	require.NoError(t, store.Append(mine))
	require.NoError(t, store.Append(other))

	stats, err := store.Stats("t1")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalSamples)
}
