package feedback

import (
	"fmt"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/interfaces"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/models"
)

// Ratings at or above this auto-select an approved sample for training
const autoSelectRating = 4

// Service records user feedback against dataset samples and manages the
// training-selection flag. Feedback is last-write-wins; one sample carries
// at most one feedback record.
type Service struct {
	store  interfaces.SampleStore
	images interfaces.ImageStorage
	logger arbor.ILogger
}

// NewService creates a feedback service over the sample store
func NewService(store interfaces.SampleStore, images interfaces.ImageStorage, logger arbor.ILogger) *Service {
	return &Service{
		store:  store,
		images: images,
		logger: logger,
	}
}

// Submit attaches feedback to a sample. Approvals rated 4 or higher are
// automatically selected for training.
func (s *Service) Submit(sampleID string, fb *models.Feedback) error {
	if fb.SubmittedAt.IsZero() {
		fb.SubmittedAt = time.Now().UTC()
	}

	updated, err := s.store.Update(sampleID, func(sample *models.Sample) {
		sample.Feedback = fb
		if fb.Type == models.FeedbackApprove && fb.Rating >= autoSelectRating {
			sample.SelectedForTraining = true
		}
	})
	if err != nil {
		return err
	}
	if !updated {
		return fmt.Errorf("design not found: %s", sampleID)
	}

	s.logger.Info().
		Str("sample_id", sampleID).
		Str("feedback_type", string(fb.Type)).
		Int("rating", fb.Rating).
		Msg("Feedback recorded")

	return nil
}

// Get returns the sample with its feedback state
func (s *Service) Get(sampleID string) (*models.Sample, error) {
	return s.store.Get(sampleID)
}

// SetSelectedForTraining toggles the training-selection flag directly
func (s *Service) SetSelectedForTraining(sampleID string, selected bool) error {
	updated, err := s.store.Update(sampleID, func(sample *models.Sample) {
		sample.SelectedForTraining = selected
	})
	if err != nil {
		return err
	}
	if !updated {
		return fmt.Errorf("design not found: %s", sampleID)
	}
	return nil
}

// Stats summarizes feedback across the dataset
func (s *Service) Stats(tenantID string) (*models.DatasetStats, error) {
	return s.store.Stats(tenantID)
}

// Delete soft-deletes a sample by writing a tombstone feedback record and
// removing its raster. The dataset line itself is preserved.
func (s *Service) Delete(sampleID string) error {
	sample, err := s.store.Get(sampleID)
	if err != nil {
		return err
	}

	updated, err := s.store.Update(sampleID, func(sample *models.Sample) {
		sample.Feedback = &models.Feedback{
			Type:        models.FeedbackDeleted,
			SubmittedAt: time.Now().UTC(),
		}
		sample.SelectedForTraining = false
	})
	if err != nil {
		return err
	}
	if !updated {
		return fmt.Errorf("design not found: %s", sampleID)
	}

	if sample.ImagePath != "" {
		if _, err := s.images.Delete(sample.ImagePath); err != nil {
			s.logger.Warn().
				Err(err).
				Str("sample_id", sampleID).
				Msg("Failed to delete design image")
		}
	}

	s.logger.Info().Str("sample_id", sampleID).Msg("Design soft-deleted")
	return nil
}
