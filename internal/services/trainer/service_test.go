package trainer

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/common"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/models"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/services/learning"
)

type fakeSampleStore struct {
	samples []*models.Sample
}

func (f *fakeSampleStore) Append(sample *models.Sample) error { return nil }

func (f *fakeSampleStore) Get(id string) (*models.Sample, error) {
	return nil, errors.New("not found")
}

func (f *fakeSampleStore) List(filter models.SampleFilter) ([]*models.Sample, error) {
	return append([]*models.Sample(nil), f.samples...), nil
}

func (f *fakeSampleStore) Update(id string, mutate func(*models.Sample)) (bool, error) {
	return false, nil
}

func (f *fakeSampleStore) Stats(tenantID string) (*models.DatasetStats, error) {
	return &models.DatasetStats{}, nil
}

type fakeRegistry struct {
	jobs   map[string]*models.TrainingJob
	models []*models.ModelInfo // newest-first
}

func newFakeRegistry(modelList ...*models.ModelInfo) *fakeRegistry {
	return &fakeRegistry{
		jobs:   make(map[string]*models.TrainingJob),
		models: modelList,
	}
}

func (f *fakeRegistry) SaveTrainingJob(job *models.TrainingJob) error {
	copied := *job
	f.jobs[job.ID] = &copied
	return nil
}

func (f *fakeRegistry) GetTrainingJob(id string) (*models.TrainingJob, error) {
	job, ok := f.jobs[id]
	if !ok {
		return nil, errors.New("training job not found: " + id)
	}
	return job, nil
}

func (f *fakeRegistry) ListTrainingJobs(limit int) ([]*models.TrainingJob, error) {
	var result []*models.TrainingJob
	for _, job := range f.jobs {
		result = append(result, job)
	}
	return result, nil
}

func (f *fakeRegistry) RegisterModel(model *models.ModelInfo) error {
	f.models = append([]*models.ModelInfo{model}, f.models...)
	return nil
}

func (f *fakeRegistry) SetActiveModel(modelType, modelID string) error {
	for _, m := range f.models {
		if m.Type == modelType {
			m.IsActive = m.ID == modelID
		}
	}
	return nil
}

func (f *fakeRegistry) GetActiveModel(modelType string) (*models.ModelInfo, error) {
	for _, m := range f.models {
		if m.Type == modelType && m.IsActive {
			return m, nil
		}
	}
	return nil, errors.New("no active model for type: " + modelType)
}

func (f *fakeRegistry) ListModels(modelType string) ([]*models.ModelInfo, error) {
	var result []*models.ModelInfo
	for _, m := range f.models {
		if modelType != "" && m.Type != modelType {
			continue
		}
		result = append(result, m)
	}
	return result, nil
}

func trainingSamples(n int) []*models.Sample {
	samples := make([]*models.Sample, 0, n)
	for i := 0; i < n; i++ {
		samples = append(samples, &models.Sample{
			ID:           fmt.Sprintf("s%d", i),
			RawInput:     "2BHK flats in Baner",
			VisualPrompt: "modern tower at dusk",
			Category:     "ready-to-move",
			Platform:     "Instagram Story",
			Style:        "modern",
			ImagePath:    fmt.Sprintf("global/generated/s%d.png", i),
		})
	}
	return samples
}

func newTestTrainer(t *testing.T, registry *fakeRegistry, samples []*models.Sample) *Service {
	t.Helper()
	logger := common.GetLogger()
	selector := learning.NewSelector(&common.LearningConfig{
		LowScoreWeight:     0.4,
		LowFrequencyWeight: 0.3,
		ApprovedWeight:     0.3,
		GiniThreshold:      0.3,
	}, &fakeSampleStore{samples: samples}, logger)

	cfg := &common.TrainingConfig{
		ExportDir:  t.TempDir(),
		MinSamples: 3,
		TargetSize: 100,
	}
	return NewService(cfg, selector, registry, nil, logger)
}

func readJSONLRecords(t *testing.T, path string) []map[string]interface{} {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var records []map[string]interface{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var record map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &record))
		records = append(records, record)
	}
	require.NoError(t, scanner.Err())
	return records
}

func TestStartRound_PreparesImagenDataset(t *testing.T) {
	registry := newFakeRegistry()
	svc := newTestTrainer(t, registry, trainingSamples(5))

	job, err := svc.StartRound(&models.TrainingRequest{ModelType: "imagen"})
	require.NoError(t, err)

	assert.Equal(t, models.TrainingCompleted, job.Status)
	assert.NotNil(t, job.CompletedAt)
	assert.Equal(t, 5.0, job.Metrics["sample_count"])

	records := readJSONLRecords(t, job.DatasetPath)
	require.Len(t, records, 5)
	assert.Contains(t, records[0], "image_path")
	assert.Contains(t, records[0], "prompt")

	stored, err := registry.GetTrainingJob(job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TrainingCompleted, stored.Status)
}

func TestStartRound_GeminiDatasetShape(t *testing.T) {
	svc := newTestTrainer(t, newFakeRegistry(), trainingSamples(3))

	job, err := svc.StartRound(&models.TrainingRequest{ModelType: "gemini"})
	require.NoError(t, err)

	records := readJSONLRecords(t, job.DatasetPath)
	require.Len(t, records, 3)
	assert.Contains(t, records[0], "input_text")
	assert.Contains(t, records[0], "output_text")
	assert.Contains(t, records[0]["input_text"], "Category: ready-to-move")
}

func TestStartRound_DefaultsToImagen(t *testing.T) {
	svc := newTestTrainer(t, newFakeRegistry(), trainingSamples(3))

	job, err := svc.StartRound(&models.TrainingRequest{})
	require.NoError(t, err)
	assert.Equal(t, "imagen", job.ModelType)
}

func TestStartRound_RejectsUnknownModelType(t *testing.T) {
	svc := newTestTrainer(t, newFakeRegistry(), trainingSamples(5))

	_, err := svc.StartRound(&models.TrainingRequest{ModelType: "diffusion"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid model type")
}

func TestStartRound_RequiresMinimumSamples(t *testing.T) {
	svc := newTestTrainer(t, newFakeRegistry(), trainingSamples(2))

	_, err := svc.StartRound(&models.TrainingRequest{ModelType: "imagen"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not enough training data")
}

func TestActivateModel(t *testing.T) {
	registry := newFakeRegistry(
		&models.ModelInfo{ID: "m2", Type: "imagen"},
		&models.ModelInfo{ID: "m1", Type: "imagen", IsActive: true},
	)
	svc := newTestTrainer(t, registry, nil)

	activated, err := svc.ActivateModel("m2")
	require.NoError(t, err)
	assert.True(t, activated.IsActive)

	active, err := svc.ActiveModel("imagen")
	require.NoError(t, err)
	assert.Equal(t, "m2", active.ID)

	_, err = svc.ActivateModel("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model not found")
}

func TestRollback(t *testing.T) {
	registry := newFakeRegistry(
		&models.ModelInfo{ID: "v3", Type: "imagen", IsActive: true},
		&models.ModelInfo{ID: "v2", Type: "imagen"},
		&models.ModelInfo{ID: "v1", Type: "imagen"},
	)
	svc := newTestTrainer(t, registry, nil)

	rolled, err := svc.Rollback("imagen", 1)
	require.NoError(t, err)
	assert.Equal(t, "v2", rolled.ID)

	active, err := svc.ActiveModel("imagen")
	require.NoError(t, err)
	assert.Equal(t, "v2", active.ID)

	_, err = svc.Rollback("imagen", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot rollback")
}

func TestRollback_NoActiveModel(t *testing.T) {
	registry := newFakeRegistry(&models.ModelInfo{ID: "v1", Type: "imagen"})
	svc := newTestTrainer(t, registry, nil)

	_, err := svc.Rollback("imagen", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no active model")
}

func TestExportDataset(t *testing.T) {
	svc := newTestTrainer(t, newFakeRegistry(), trainingSamples(4))

	path, count, err := svc.ExportDataset("")
	require.NoError(t, err)
	assert.Equal(t, 4, count)
	assert.FileExists(t, path)

	empty := newTestTrainer(t, newFakeRegistry(), nil)
	_, _, err = empty.ExportDataset("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no samples")
}
