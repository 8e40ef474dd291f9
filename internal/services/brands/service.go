package brands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ternarybob/arbor"
	"gopkg.in/yaml.v3"

	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/common"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/interfaces"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/models"
)

// Service manages brand kits: CRUD over badger storage, YAML preset
// loading at startup, logo assets, and translation of a kit into prompt
// context and layout overrides.
type Service struct {
	storage interfaces.BrandKitStorage
	images  interfaces.ImageStorage
	logger  arbor.ILogger
}

// NewService creates a brand kit service
func NewService(storage interfaces.BrandKitStorage, images interfaces.ImageStorage, logger arbor.ILogger) *Service {
	return &Service{
		storage: storage,
		images:  images,
		logger:  logger,
	}
}

// Create stores a new brand kit for a tenant
func (s *Service) Create(kit *models.BrandKit) (*models.BrandKit, error) {
	if kit.ID == "" {
		kit.ID = common.NewBrandKitID()
	}
	kit.ApplyDefaults()
	if err := s.storage.SaveBrandKit(kit); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("brand_kit_id", kit.ID).
		Str("tenant_id", kit.TenantID).
		Msg("Brand kit created")

	return kit, nil
}

// Get returns a brand kit by ID
func (s *Service) Get(id string) (*models.BrandKit, error) {
	return s.storage.GetBrandKit(id)
}

// List returns brand kits, optionally scoped to one tenant
func (s *Service) List(tenantID string) ([]*models.BrandKit, error) {
	return s.storage.ListBrandKits(tenantID)
}

// UploadLogo stores a logo raster for the kit and records its reference
func (s *Service) UploadLogo(kitID string, logo []byte) (string, error) {
	kit, err := s.storage.GetBrandKit(kitID)
	if err != nil {
		return "", err
	}

	reference, err := s.images.Save(logo, "logo_"+kitID, kit.TenantID, "logos")
	if err != nil {
		return "", fmt.Errorf("failed to save logo: %w", err)
	}

	kit.LogoPath = reference
	if err := s.storage.SaveBrandKit(kit); err != nil {
		return "", err
	}
	return reference, nil
}

// ContextForPrompt renders a kit as plan-prompt instructions. Satisfies the
// pipeline's brand context dependency.
func (s *Service) ContextForPrompt(kitID string) (string, error) {
	kit, err := s.storage.GetBrandKit(kitID)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("Brand Identity:\n")
	fmt.Fprintf(&sb, "- Name: %s\n", kit.Name)
	fmt.Fprintf(&sb, "- Primary Color: %s\n", kit.PrimaryColor)
	fmt.Fprintf(&sb, "- Secondary Color: %s\n", kit.SecondaryColor)
	fmt.Fprintf(&sb, "- Accent Color: %s\n", kit.AccentColor)
	fmt.Fprintf(&sb, "- Font Style: %s\n", kit.FontFamily)
	if kit.Tagline != "" {
		fmt.Fprintf(&sb, "- Tagline: %s\n", kit.Tagline)
	}
	return strings.TrimSpace(sb.String()), nil
}

// ApplyToLayout overrides plan layout colors with the kit's palette
func (s *Service) ApplyToLayout(kit *models.BrandKit, layout *models.LayoutConfig) {
	layout.HeadlineColor = kit.SecondaryColor
	layout.AccentColor = kit.AccentColor
}

// LoadPresets reads YAML brand kit presets from dir and upserts each one.
// Missing directory is not an error; presets are optional seed data.
func (s *Service) LoadPresets(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug().Str("dir", dir).Msg("No brand kit preset directory")
			return nil
		}
		return fmt.Errorf("failed to read brand kit directory: %w", err)
	}

	loaded := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || (!strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml")) {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			s.logger.Warn().Err(err).Str("file", name).Msg("Failed to read brand kit preset")
			continue
		}

		var kit models.BrandKit
		if err := yaml.Unmarshal(data, &kit); err != nil {
			s.logger.Warn().Err(err).Str("file", name).Msg("Failed to parse brand kit preset")
			continue
		}
		if kit.Name == "" {
			s.logger.Warn().Str("file", name).Msg("Brand kit preset has no name, skipping")
			continue
		}

		// Preset identity is derived from the filename so reloading is
		// idempotent.
		kit.ID = "bk_preset_" + strings.TrimSuffix(strings.TrimSuffix(name, ".yaml"), ".yml")
		if err := s.storage.SaveBrandKit(&kit); err != nil {
			s.logger.Warn().Err(err).Str("file", name).Msg("Failed to save brand kit preset")
			continue
		}
		loaded++
	}

	if loaded > 0 {
		s.logger.Info().Int("count", loaded).Str("dir", dir).Msg("Brand kit presets loaded")
	}
	return nil
}
