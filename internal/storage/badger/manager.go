package badger

import (
	"github.com/ternarybob/arbor"

	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/common"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/interfaces"
)

// Manager implements the StorageManager interface for Badger
type Manager struct {
	db       *BadgerDB
	tenant   interfaces.TenantStorage
	brandKit interfaces.BrandKitStorage
	registry interfaces.ModelRegistry
	logger   arbor.ILogger
}

// NewManager creates a new Badger storage manager
func NewManager(logger arbor.ILogger, config *common.BadgerConfig) (interfaces.StorageManager, error) {
	db, err := NewBadgerDB(logger, config)
	if err != nil {
		return nil, err
	}

	manager := &Manager{
		db:       db,
		tenant:   NewTenantStorage(db, logger),
		brandKit: NewBrandKitStorage(db, logger),
		registry: NewModelRegistry(db, logger),
		logger:   logger,
	}

	logger.Info().Msg("Badger storage manager initialized")

	return manager, nil
}

// TenantStorage returns the Tenant storage interface
func (m *Manager) TenantStorage() interfaces.TenantStorage {
	return m.tenant
}

// BrandKitStorage returns the BrandKit storage interface
func (m *Manager) BrandKitStorage() interfaces.BrandKitStorage {
	return m.brandKit
}

// ModelRegistry returns the model registry interface
func (m *Manager) ModelRegistry() interfaces.ModelRegistry {
	return m.registry
}

// Close closes the database connection
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
