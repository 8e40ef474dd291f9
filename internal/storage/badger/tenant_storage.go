package badger

import (
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/interfaces"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/models"
)

// TenantStorage implements the TenantStorage interface for Badger
type TenantStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewTenantStorage creates a new TenantStorage instance
func NewTenantStorage(db *BadgerDB, logger arbor.ILogger) interfaces.TenantStorage {
	return &TenantStorage{
		db:     db,
		logger: logger,
	}
}

func (s *TenantStorage) SaveTenant(tenant *models.Tenant) error {
	if tenant.ID == "" {
		return fmt.Errorf("tenant ID is required")
	}

	if tenant.CreatedAt.IsZero() {
		tenant.CreatedAt = time.Now()
	}

	if err := s.db.Store().Upsert(tenant.ID, tenant); err != nil {
		return fmt.Errorf("failed to save tenant: %w", err)
	}
	return nil
}

func (s *TenantStorage) GetTenant(id string) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := s.db.Store().Get(id, &tenant); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("tenant not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	return &tenant, nil
}

// GetTenantByAPIKey resolves a tenant from its API key. The APIKey field is
// indexed so authentication stays cheap as the tenant count grows.
func (s *TenantStorage) GetTenantByAPIKey(apiKey string) (*models.Tenant, error) {
	var tenants []models.Tenant
	err := s.db.Store().Find(&tenants, badgerhold.Where("APIKey").Eq(apiKey).Index("APIKey"))
	if err != nil {
		return nil, fmt.Errorf("failed to find tenant by API key: %w", err)
	}
	if len(tenants) == 0 {
		return nil, fmt.Errorf("no tenant registered for API key")
	}
	return &tenants[0], nil
}

func (s *TenantStorage) ListTenants() ([]*models.Tenant, error) {
	var tenants []models.Tenant
	if err := s.db.Store().Find(&tenants, nil); err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}

	result := make([]*models.Tenant, len(tenants))
	for i := range tenants {
		result[i] = &tenants[i]
	}
	return result, nil
}
