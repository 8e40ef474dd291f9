package badger

import (
	"fmt"
	"sort"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/interfaces"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/models"
)

// ModelRegistry implements the ModelRegistry interface for Badger.
// It records training rounds and tracks which model version is active
// per model type, enabling rollback.
type ModelRegistry struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewModelRegistry creates a new ModelRegistry instance
func NewModelRegistry(db *BadgerDB, logger arbor.ILogger) interfaces.ModelRegistry {
	return &ModelRegistry{
		db:     db,
		logger: logger,
	}
}

func (s *ModelRegistry) SaveTrainingJob(job *models.TrainingJob) error {
	if job.ID == "" {
		return fmt.Errorf("training job ID is required")
	}
	if job.StartedAt.IsZero() {
		job.StartedAt = time.Now()
	}

	if err := s.db.Store().Upsert(job.ID, job); err != nil {
		return fmt.Errorf("failed to save training job: %w", err)
	}
	return nil
}

func (s *ModelRegistry) GetTrainingJob(id string) (*models.TrainingJob, error) {
	var job models.TrainingJob
	if err := s.db.Store().Get(id, &job); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("training job not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get training job: %w", err)
	}
	return &job, nil
}

func (s *ModelRegistry) ListTrainingJobs(limit int) ([]*models.TrainingJob, error) {
	var jobs []models.TrainingJob
	if err := s.db.Store().Find(&jobs, nil); err != nil {
		return nil, fmt.Errorf("failed to list training jobs: %w", err)
	}

	// Newest first
	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].StartedAt.After(jobs[j].StartedAt)
	})
	if limit > 0 && len(jobs) > limit {
		jobs = jobs[:limit]
	}

	result := make([]*models.TrainingJob, len(jobs))
	for i := range jobs {
		result[i] = &jobs[i]
	}
	return result, nil
}

func (s *ModelRegistry) RegisterModel(model *models.ModelInfo) error {
	if model.ID == "" {
		return fmt.Errorf("model ID is required")
	}
	if model.CreatedAt.IsZero() {
		model.CreatedAt = time.Now()
	}

	if err := s.db.Store().Upsert(model.ID, model); err != nil {
		return fmt.Errorf("failed to register model: %w", err)
	}
	return nil
}

// SetActiveModel marks modelID active and deactivates every other model of
// the same type. Used both for promotion after training and for rollback.
func (s *ModelRegistry) SetActiveModel(modelType, modelID string) error {
	var target models.ModelInfo
	if err := s.db.Store().Get(modelID, &target); err != nil {
		if err == badgerhold.ErrNotFound {
			return fmt.Errorf("model not found: %s", modelID)
		}
		return fmt.Errorf("failed to get model: %w", err)
	}
	if target.Type != modelType {
		return fmt.Errorf("model %s has type %s, expected %s", modelID, target.Type, modelType)
	}

	models_, err := s.ListModels(modelType)
	if err != nil {
		return err
	}
	for _, m := range models_ {
		active := m.ID == modelID
		if m.IsActive == active {
			continue
		}
		m.IsActive = active
		if err := s.db.Store().Upsert(m.ID, m); err != nil {
			return fmt.Errorf("failed to update model %s: %w", m.ID, err)
		}
	}

	s.logger.Info().
		Str("model_type", modelType).
		Str("model_id", modelID).
		Msg("Active model updated")

	return nil
}

func (s *ModelRegistry) GetActiveModel(modelType string) (*models.ModelInfo, error) {
	var found []models.ModelInfo
	err := s.db.Store().Find(&found, badgerhold.Where("Type").Eq(modelType).Index("Type").And("IsActive").Eq(true))
	if err != nil {
		return nil, fmt.Errorf("failed to find active model: %w", err)
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("no active model for type: %s", modelType)
	}
	return &found[0], nil
}

func (s *ModelRegistry) ListModels(modelType string) ([]*models.ModelInfo, error) {
	var found []models.ModelInfo
	var err error
	if modelType != "" {
		err = s.db.Store().Find(&found, badgerhold.Where("Type").Eq(modelType).Index("Type"))
	} else {
		err = s.db.Store().Find(&found, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].CreatedAt.After(found[j].CreatedAt)
	})

	result := make([]*models.ModelInfo, len(found))
	for i := range found {
		result[i] = &found[i]
	}
	return result, nil
}
