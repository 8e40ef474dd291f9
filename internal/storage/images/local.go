package images

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/interfaces"
)

// LocalStorage persists design rasters on the local filesystem under
// basePath/<tenant>/<subfolder>/<id>.png. Tenant-less images go under
// "global". Returned references are paths relative to basePath so the
// dataset stays portable when the images root moves.
type LocalStorage struct {
	basePath string
	logger   arbor.ILogger
}

// NewLocalStorage creates an image store rooted at basePath
func NewLocalStorage(basePath string, logger arbor.ILogger) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create images directory: %w", err)
	}
	return &LocalStorage{
		basePath: basePath,
		logger:   logger,
	}, nil
}

var _ interfaces.ImageStorage = (*LocalStorage)(nil)

// Save writes image bytes and returns the reference to store on the sample
func (s *LocalStorage) Save(image []byte, id, tenantID, subfolder string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("image ID is required")
	}
	if subfolder == "" {
		subfolder = "generated"
	}
	tenant := tenantID
	if tenant == "" {
		tenant = "global"
	}

	relative := filepath.Join(tenant, subfolder, id+".png")
	full := filepath.Join(s.basePath, relative)

	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return "", fmt.Errorf("failed to create image directory: %w", err)
	}
	if err := os.WriteFile(full, image, 0644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}

	s.logger.Debug().
		Str("reference", relative).
		Int("bytes", len(image)).
		Msg("Image saved")

	return relative, nil
}

// Load reads image bytes for a previously saved reference
func (s *LocalStorage) Load(reference string) ([]byte, error) {
	full, err := s.resolve(reference)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image not found: %s", reference)
		}
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	return data, nil
}

// Delete removes a stored image. Returns false when the reference did not
// exist; only soft-delete flows call this.
func (s *LocalStorage) Delete(reference string) (bool, error) {
	full, err := s.resolve(reference)
	if err != nil {
		return false, err
	}
	if err := os.Remove(full); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to delete image: %w", err)
	}
	return true, nil
}

// resolve rejects references that would escape the images root
func (s *LocalStorage) resolve(reference string) (string, error) {
	if reference == "" {
		return "", fmt.Errorf("image reference is required")
	}
	clean := filepath.Clean(reference)
	if filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("invalid image reference: %s", reference)
	}
	return filepath.Join(s.basePath, clean), nil
}
