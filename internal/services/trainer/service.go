package trainer

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/common"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/interfaces"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/models"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/services/learning"
)

// Service prepares training rounds: it selects samples via the
// active-learning selector, exports them as JSONL datasets, and records
// the round in the model registry. Actual fine-tuning submission is an
// external concern; jobs here complete at the prepared stage.
type Service struct {
	selector *learning.Selector
	registry interfaces.ModelRegistry
	events   interfaces.EventService
	logger   arbor.ILogger

	exportDir  string
	minSamples int
	targetSize int
}

// NewService creates a trainer service
func NewService(cfg *common.TrainingConfig, selector *learning.Selector, registry interfaces.ModelRegistry, events interfaces.EventService, logger arbor.ILogger) *Service {
	minSamples := cfg.MinSamples
	if minSamples <= 0 {
		minSamples = 10
	}
	targetSize := cfg.TargetSize
	if targetSize <= 0 {
		targetSize = 500
	}
	return &Service{
		selector:   selector,
		registry:   registry,
		events:     events,
		logger:     logger,
		exportDir:  cfg.ExportDir,
		minSamples: minSamples,
		targetSize: targetSize,
	}
}

// StartRound selects training samples, exports the dataset, and records a
// new training job. Fails when the dataset has too few usable samples.
func (s *Service) StartRound(req *models.TrainingRequest) (*models.TrainingJob, error) {
	modelType := req.ModelType
	if modelType == "" {
		modelType = "imagen"
	}
	if modelType != "imagen" && modelType != "gemini" {
		return nil, fmt.Errorf("invalid model type '%s': must be 'imagen' or 'gemini'", modelType)
	}

	samples, err := s.selector.SelectForTraining(s.targetSize, req.TenantID, learning.DefaultSelectionOptions())
	if err != nil {
		return nil, err
	}
	if len(samples) < s.minSamples {
		return nil, fmt.Errorf("not enough training data: found %d samples, need at least %d", len(samples), s.minSamples)
	}

	job := &models.TrainingJob{
		ID:        common.NewTrainingJobID(),
		Status:    models.TrainingPreparing,
		ModelType: modelType,
		StartedAt: time.Now().UTC(),
		TenantID:  req.TenantID,
	}
	if err := s.registry.SaveTrainingJob(job); err != nil {
		return nil, err
	}

	datasetPath, err := s.exportRound(job.ID, modelType, samples)
	if err != nil {
		job.Status = models.TrainingFailed
		job.Error = err.Error()
		s.registry.SaveTrainingJob(job)
		return nil, fmt.Errorf("dataset preparation failed: %w", err)
	}

	now := time.Now().UTC()
	job.Status = models.TrainingCompleted
	job.DatasetPath = datasetPath
	job.CompletedAt = &now
	job.Metrics = map[string]float64{
		"sample_count": float64(len(samples)),
	}
	if err := s.registry.SaveTrainingJob(job); err != nil {
		return nil, err
	}
	s.publishStatus(job)

	s.logger.Info().
		Str("job_id", job.ID).
		Str("model_type", modelType).
		Int("samples", len(samples)).
		Str("dataset", datasetPath).
		Msg("Training round prepared")

	return job, nil
}

// GetJob returns a training job by ID
func (s *Service) GetJob(id string) (*models.TrainingJob, error) {
	return s.registry.GetTrainingJob(id)
}

// ListJobs returns recent training jobs
func (s *Service) ListJobs(limit int) ([]*models.TrainingJob, error) {
	return s.registry.ListTrainingJobs(limit)
}

// ListModels returns registered models, optionally filtered by type
func (s *Service) ListModels(modelType string) ([]*models.ModelInfo, error) {
	return s.registry.ListModels(modelType)
}

// ActivateModel promotes a registered model to active for its type
func (s *Service) ActivateModel(modelID string) (*models.ModelInfo, error) {
	all, err := s.registry.ListModels("")
	if err != nil {
		return nil, err
	}
	var target *models.ModelInfo
	for _, m := range all {
		if m.ID == modelID {
			target = m
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("model not found: %s", modelID)
	}
	if err := s.registry.SetActiveModel(target.Type, modelID); err != nil {
		return nil, err
	}
	target.IsActive = true
	return target, nil
}

// ActiveModel returns the currently active model for a type
func (s *Service) ActiveModel(modelType string) (*models.ModelInfo, error) {
	return s.registry.GetActiveModel(modelType)
}

// Rollback steps the active model back the given number of versions.
// Models are ordered newest-first by registration time.
func (s *Service) Rollback(modelType string, versions int) (*models.ModelInfo, error) {
	if versions < 1 {
		versions = 1
	}
	all, err := s.registry.ListModels(modelType)
	if err != nil {
		return nil, err
	}

	activeIdx := -1
	for i, m := range all {
		if m.IsActive {
			activeIdx = i
			break
		}
	}
	if activeIdx < 0 {
		return nil, fmt.Errorf("no active model for type: %s", modelType)
	}
	targetIdx := activeIdx + versions
	if targetIdx >= len(all) {
		return nil, fmt.Errorf("cannot rollback %d versions", versions)
	}

	target := all[targetIdx]
	if err := s.registry.SetActiveModel(modelType, target.ID); err != nil {
		return nil, err
	}
	target.IsActive = true
	return target, nil
}

// ExportDataset exports the highest-priority samples for external training
// and returns the export path plus the number of exported samples.
func (s *Service) ExportDataset(tenantID string) (string, int, error) {
	samples, err := s.selector.SelectForTraining(1000, tenantID, learning.DefaultSelectionOptions())
	if err != nil {
		return "", 0, err
	}
	if len(samples) == 0 {
		return "", 0, fmt.Errorf("no samples to export")
	}

	name := fmt.Sprintf("export_%s", time.Now().UTC().Format("20060102_150405"))
	path, err := s.writeJSONL(name, samples, func(sample *models.Sample) interface{} {
		return sample
	})
	if err != nil {
		return "", 0, err
	}
	return path, len(samples), nil
}

// exportRound writes the per-model-type training file for one round
func (s *Service) exportRound(jobID, modelType string, samples []*models.Sample) (string, error) {
	name := fmt.Sprintf("training_%s_%s_%s", modelType, time.Now().UTC().Format("20060102_150405"), jobID)

	if modelType == "imagen" {
		// Imagen tuning wants image references paired with their prompts
		return s.writeJSONL(name, samples, func(sample *models.Sample) interface{} {
			return map[string]interface{}{
				"image_path": sample.ImagePath,
				"prompt":     sample.VisualPrompt,
				"category":   sample.Category,
			}
		})
	}

	// Gemini tuning wants input/output text pairs
	return s.writeJSONL(name, samples, func(sample *models.Sample) interface{} {
		output, _ := json.Marshal(map[string]interface{}{
			"visual_prompt": sample.VisualPrompt,
			"copy":          sample.Copy,
			"layout":        sample.Layout,
		})
		input := fmt.Sprintf("Generate a design plan for:\nCategory: %s\nPlatform: %s\nStyle: %s\nDetails: %s",
			sample.Category, sample.Platform, sample.Style, sample.RawInput)
		return map[string]string{
			"input_text":  input,
			"output_text": string(output),
		}
	})
}

func (s *Service) writeJSONL(name string, samples []*models.Sample, transform func(*models.Sample) interface{}) (string, error) {
	if err := os.MkdirAll(s.exportDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(s.exportDir, name+".jsonl")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, sample := range samples {
		data, err := json.Marshal(transform(sample))
		if err != nil {
			return "", fmt.Errorf("failed to marshal export record: %w", err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return "", fmt.Errorf("failed to write export record: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush export file: %w", err)
	}
	return path, nil
}

func (s *Service) publishStatus(job *models.TrainingJob) {
	if s.events == nil {
		return
	}
	s.events.Publish(context.Background(), interfaces.Event{
		Type: interfaces.EventTrainingStatus,
		Payload: map[string]interface{}{
			"job_id": job.ID,
			"status": string(job.Status),
		},
	})
}
