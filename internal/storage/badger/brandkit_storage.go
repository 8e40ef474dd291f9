package badger

import (
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/interfaces"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/models"
)

// BrandKitStorage implements the BrandKitStorage interface for Badger
type BrandKitStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewBrandKitStorage creates a new BrandKitStorage instance
func NewBrandKitStorage(db *BadgerDB, logger arbor.ILogger) interfaces.BrandKitStorage {
	return &BrandKitStorage{
		db:     db,
		logger: logger,
	}
}

func (s *BrandKitStorage) SaveBrandKit(kit *models.BrandKit) error {
	if kit.ID == "" {
		return fmt.Errorf("brand kit ID is required")
	}

	kit.ApplyDefaults()
	if kit.CreatedAt.IsZero() {
		kit.CreatedAt = time.Now()
	}

	if err := s.db.Store().Upsert(kit.ID, kit); err != nil {
		return fmt.Errorf("failed to save brand kit: %w", err)
	}
	return nil
}

func (s *BrandKitStorage) GetBrandKit(id string) (*models.BrandKit, error) {
	var kit models.BrandKit
	if err := s.db.Store().Get(id, &kit); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("brand kit not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get brand kit: %w", err)
	}
	return &kit, nil
}

// ListBrandKits returns all kits, or only those owned by tenantID when set
func (s *BrandKitStorage) ListBrandKits(tenantID string) ([]*models.BrandKit, error) {
	var kits []models.BrandKit
	var err error
	if tenantID != "" {
		err = s.db.Store().Find(&kits, badgerhold.Where("TenantID").Eq(tenantID).Index("TenantID"))
	} else {
		err = s.db.Store().Find(&kits, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list brand kits: %w", err)
	}

	result := make([]*models.BrandKit, len(kits))
	for i := range kits {
		result[i] = &kits[i]
	}
	return result, nil
}
