package tenants

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/common"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/interfaces"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/models"
)

// Default quota for newly registered tenants
const defaultUsageQuota = 1000

// Service manages tenant registration, API key authentication, and usage
// accounting.
type Service struct {
	storage interfaces.TenantStorage
	logger  arbor.ILogger
}

// NewService creates a tenant service over the given storage
func NewService(storage interfaces.TenantStorage, logger arbor.ILogger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// Create registers a new tenant with a fresh API key
func (s *Service) Create(req *models.TenantCreateRequest) (*models.Tenant, error) {
	tenant := &models.Tenant{
		ID:         common.NewTenantID(),
		Name:       req.Name,
		Email:      req.Email,
		APIKey:     common.NewAPIKey(),
		IsActive:   true,
		UsageQuota: defaultUsageQuota,
	}
	if err := s.storage.SaveTenant(tenant); err != nil {
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}

	s.logger.Info().
		Str("tenant_id", tenant.ID).
		Str("name", tenant.Name).
		Msg("Tenant created")

	return tenant, nil
}

// Get returns a tenant by ID
func (s *Service) Get(id string) (*models.Tenant, error) {
	return s.storage.GetTenant(id)
}

// List returns all registered tenants
func (s *Service) List() ([]*models.Tenant, error) {
	return s.storage.ListTenants()
}

// Authenticate resolves a tenant from its API key. Inactive tenants fail
// authentication.
func (s *Service) Authenticate(apiKey string) (*models.Tenant, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	tenant, err := s.storage.GetTenantByAPIKey(apiKey)
	if err != nil {
		return nil, fmt.Errorf("invalid API key")
	}
	if !tenant.IsActive {
		return nil, fmt.Errorf("tenant account is disabled")
	}
	return tenant, nil
}

// CheckQuota reports whether the tenant may run another generation
func (s *Service) CheckQuota(tenantID string) bool {
	tenant, err := s.storage.GetTenant(tenantID)
	if err != nil {
		return false
	}
	return !tenant.QuotaExceeded()
}

// IncrementUsage counts one generation against the tenant's quota
func (s *Service) IncrementUsage(tenantID string) error {
	tenant, err := s.storage.GetTenant(tenantID)
	if err != nil {
		return err
	}
	tenant.UsageCount++
	return s.storage.SaveTenant(tenant)
}

// UsageStats returns the tenant's quota consumption summary
func (s *Service) UsageStats(tenantID string) (map[string]interface{}, error) {
	tenant, err := s.storage.GetTenant(tenantID)
	if err != nil {
		return nil, err
	}

	stats := map[string]interface{}{
		"tenant_id":   tenant.ID,
		"name":        tenant.Name,
		"usage_count": tenant.UsageCount,
		"usage_quota": tenant.UsageQuota,
		"remaining":   tenant.UsageQuota - tenant.UsageCount,
	}
	if tenant.UsageQuota > 0 {
		stats["percent_used"] = float64(tenant.UsageCount) / float64(tenant.UsageQuota) * 100
	}
	return stats, nil
}
