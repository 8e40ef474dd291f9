package feedback

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/common"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/models"
)

type memoryStore struct {
	samples map[string]*models.Sample
}

func newMemoryStore(samples ...*models.Sample) *memoryStore {
	m := &memoryStore{samples: make(map[string]*models.Sample)}
	for _, s := range samples {
		m.samples[s.ID] = s
	}
	return m
}

func (m *memoryStore) Append(sample *models.Sample) error {
	m.samples[sample.ID] = sample
	return nil
}

func (m *memoryStore) Get(id string) (*models.Sample, error) {
	s, ok := m.samples[id]
	if !ok {
		return nil, errors.New("sample not found: " + id)
	}
	return s, nil
}

func (m *memoryStore) List(filter models.SampleFilter) ([]*models.Sample, error) {
	var result []*models.Sample
	for _, s := range m.samples {
		result = append(result, s)
	}
	return result, nil
}

func (m *memoryStore) Update(id string, mutate func(*models.Sample)) (bool, error) {
	s, ok := m.samples[id]
	if !ok {
		return false, nil
	}
	mutate(s)
	return true, nil
}

func (m *memoryStore) Stats(tenantID string) (*models.DatasetStats, error) {
	return &models.DatasetStats{TotalSamples: len(m.samples)}, nil
}

type recordingImageStorage struct {
	deleted []string
}

func (r *recordingImageStorage) Save(image []byte, id, tenantID, subfolder string) (string, error) {
	return id + ".png", nil
}

func (r *recordingImageStorage) Load(reference string) ([]byte, error) {
	return nil, errors.New("not found")
}

func (r *recordingImageStorage) Delete(reference string) (bool, error) {
	r.deleted = append(r.deleted, reference)
	return true, nil
}

func TestSubmit_AutoSelectsHighRatedApprovals(t *testing.T) {
	tests := []struct {
		name     string
		feedback *models.Feedback
		selected bool
	}{
		{name: "approve rated 5", feedback: &models.Feedback{Type: models.FeedbackApprove, Rating: 5}, selected: true},
		{name: "approve rated 4", feedback: &models.Feedback{Type: models.FeedbackApprove, Rating: 4}, selected: true},
		{name: "approve rated 3", feedback: &models.Feedback{Type: models.FeedbackApprove, Rating: 3}, selected: false},
		{name: "approve unrated", feedback: &models.Feedback{Type: models.FeedbackApprove}, selected: false},
		{name: "reject rated 5", feedback: &models.Feedback{Type: models.FeedbackReject, Rating: 5}, selected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryStore(&models.Sample{ID: "s1"})
			svc := NewService(store, &recordingImageStorage{}, common.GetLogger())

			require.NoError(t, svc.Submit("s1", tt.feedback))

			sample, err := store.Get("s1")
			require.NoError(t, err)
			assert.Equal(t, tt.selected, sample.SelectedForTraining)
			require.NotNil(t, sample.Feedback)
			assert.False(t, sample.Feedback.SubmittedAt.IsZero(), "submission time backfilled")
		})
	}
}

func TestSubmit_UnknownSample(t *testing.T) {
	svc := NewService(newMemoryStore(), &recordingImageStorage{}, common.GetLogger())
	err := svc.Submit("missing", &models.Feedback{Type: models.FeedbackApprove})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSubmit_LastWriteWins(t *testing.T) {
	store := newMemoryStore(&models.Sample{ID: "s1"})
	svc := NewService(store, &recordingImageStorage{}, common.GetLogger())

	require.NoError(t, svc.Submit("s1", &models.Feedback{Type: models.FeedbackApprove, Rating: 5}))
	require.NoError(t, svc.Submit("s1", &models.Feedback{Type: models.FeedbackReject, Comments: "colors off"}))

	sample, _ := store.Get("s1")
	assert.Equal(t, models.FeedbackReject, sample.Feedback.Type)
	assert.Equal(t, "colors off", sample.Feedback.Comments)
}

func TestDelete_WritesTombstoneAndRemovesImage(t *testing.T) {
	store := newMemoryStore(&models.Sample{
		ID:                  "s1",
		ImagePath:           "global/generated/s1.png",
		SelectedForTraining: true,
	})
	images := &recordingImageStorage{}
	svc := NewService(store, images, common.GetLogger())

	require.NoError(t, svc.Delete("s1"))

	sample, err := store.Get("s1")
	require.NoError(t, err, "dataset line is preserved")
	assert.True(t, sample.Deleted())
	assert.False(t, sample.SelectedForTraining, "deleted samples leave the training set")
	assert.Equal(t, []string{"global/generated/s1.png"}, images.deleted)
}

func TestDelete_UnknownSample(t *testing.T) {
	svc := NewService(newMemoryStore(), &recordingImageStorage{}, common.GetLogger())
	assert.Error(t, svc.Delete("missing"))
}

func TestSetSelectedForTraining(t *testing.T) {
	store := newMemoryStore(&models.Sample{ID: "s1"})
	svc := NewService(store, &recordingImageStorage{}, common.GetLogger())

	require.NoError(t, svc.SetSelectedForTraining("s1", true))
	sample, _ := store.Get("s1")
	assert.True(t, sample.SelectedForTraining)

	require.NoError(t, svc.SetSelectedForTraining("s1", false))
	sample, _ = store.Get("s1")
	assert.False(t, sample.SelectedForTraining)

	assert.Error(t, svc.SetSelectedForTraining("missing", true))
}
