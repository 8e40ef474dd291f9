package samples

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ternarybob/arbor"

	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/interfaces"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/models"
)

const metadataFile = "metadata.jsonl"

// Store is a concurrency-safe JSONL sample store. Each record is one line
// of JSON; appends are a single write under the file lock, updates rewrite
// the whole file under the same lock. Corrupt lines are skipped on read so
// one bad record never poisons the dataset.
type Store struct {
	basePath string
	logger   arbor.ILogger

	// Per-file locks, created lazily. The registry itself is guarded by mu.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewStore creates a sample store rooted at basePath
func NewStore(basePath string, logger arbor.ILogger) (*Store, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create dataset directory: %w", err)
	}
	return &Store{
		basePath: basePath,
		logger:   logger,
		locks:    make(map[string]*sync.Mutex),
	}, nil
}

var _ interfaces.SampleStore = (*Store)(nil)

func (s *Store) fileLock(filename string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[filename]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[filename] = lock
	}
	return lock
}

// Append adds a fully-populated sample as one new line. Called only after
// a pipeline run has completely succeeded.
func (s *Store) Append(sample *models.Sample) error {
	if sample.ID == "" {
		return fmt.Errorf("sample ID is required")
	}

	data, err := json.Marshal(sample)
	if err != nil {
		return fmt.Errorf("failed to marshal sample: %w", err)
	}

	lock := s.fileLock(metadataFile)
	lock.Lock()
	defer lock.Unlock()

	f, err := os.OpenFile(filepath.Join(s.basePath, metadataFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to append sample: %w", err)
	}
	return nil
}

// Get returns the sample with the given ID, or an error when absent
func (s *Store) Get(id string) (*models.Sample, error) {
	records, err := s.readAll()
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == id {
			return &records[i], nil
		}
	}
	return nil, fmt.Errorf("sample not found: %s", id)
}

// List returns samples matching the filter, newest-first insertion order
// preserved. A zero Limit defaults to 1000.
func (s *Store) List(filter models.SampleFilter) ([]*models.Sample, error) {
	records, err := s.readAll()
	if err != nil {
		return nil, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 1000
	}
	if len(records) > limit {
		records = records[len(records)-limit:]
	}

	var result []*models.Sample
	for i := range records {
		r := &records[i]
		if filter.TenantID != "" && r.TenantID != filter.TenantID {
			continue
		}
		if filter.Category != "" && r.Category != filter.Category {
			continue
		}
		if filter.Platform != "" && r.Platform != filter.Platform {
			continue
		}
		if filter.Style != "" && r.Style != filter.Style {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

// Update applies mutate to the sample with the given ID and rewrites the
// file. Returns false when no sample matched.
func (s *Store) Update(id string, mutate func(*models.Sample)) (bool, error) {
	lock := s.fileLock(metadataFile)
	lock.Lock()
	defer lock.Unlock()

	records, err := s.readAllLocked()
	if err != nil {
		return false, err
	}

	updated := false
	for i := range records {
		if records[i].ID == id {
			mutate(&records[i])
			updated = true
			break
		}
	}
	if !updated {
		return false, nil
	}

	if err := s.writeAllLocked(records); err != nil {
		return false, err
	}
	return true, nil
}

// Stats summarizes the dataset, optionally scoped to one tenant
func (s *Store) Stats(tenantID string) (*models.DatasetStats, error) {
	records, err := s.readAll()
	if err != nil {
		return nil, err
	}

	stats := &models.DatasetStats{
		CategoryDistribution: make(map[string]int),
		PlatformDistribution: make(map[string]int),
		StyleDistribution:    make(map[string]int),
	}

	var scoreSum float64
	var scoreCount int

	for i := range records {
		r := &records[i]
		if tenantID != "" && r.TenantID != tenantID {
			continue
		}
		stats.TotalSamples++

		if r.Feedback != nil {
			switch r.Feedback.Type {
			case models.FeedbackApprove:
				stats.ApprovedSamples++
			case models.FeedbackReject:
				stats.RejectedSamples++
			}
		} else {
			stats.PendingSamples++
		}

		if r.EvaluationScores != nil {
			scoreSum += r.EvaluationScores.Average()
			scoreCount++
		}

		if r.Category != "" {
			stats.CategoryDistribution[r.Category]++
		}
		if r.Platform != "" {
			stats.PlatformDistribution[r.Platform]++
		}
		if r.Style != "" {
			stats.StyleDistribution[r.Style]++
		}
	}

	if scoreCount > 0 {
		stats.AvgScore = scoreSum / float64(scoreCount)
	}
	return stats, nil
}

func (s *Store) readAll() ([]models.Sample, error) {
	lock := s.fileLock(metadataFile)
	lock.Lock()
	defer lock.Unlock()
	return s.readAllLocked()
}

func (s *Store) readAllLocked() ([]models.Sample, error) {
	path := filepath.Join(s.basePath, metadataFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer f.Close()

	var records []models.Sample
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var sample models.Sample
		if err := json.Unmarshal(line, &sample); err != nil {
			s.logger.Warn().Err(err).Msg("Skipping corrupt dataset line")
			continue
		}
		records = append(records, sample)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}
	return records, nil
}

func (s *Store) writeAllLocked(records []models.Sample) error {
	path := filepath.Join(s.basePath, metadataFile)
	tmp := path + ".tmp"

	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to open temp dataset file: %w", err)
	}

	w := bufio.NewWriter(f)
	for i := range records {
		data, err := json.Marshal(&records[i])
		if err != nil {
			f.Close()
			os.Remove(tmp)
			return fmt.Errorf("failed to marshal sample: %w", err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			f.Close()
			os.Remove(tmp)
			return fmt.Errorf("failed to write sample: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to flush dataset file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to close dataset file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace dataset file: %w", err)
	}
	return nil
}
