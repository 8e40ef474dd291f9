package tenants

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/common"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/models"
)

type memoryTenantStorage struct {
	tenants map[string]*models.Tenant
	saveErr error
}

func newMemoryTenantStorage() *memoryTenantStorage {
	return &memoryTenantStorage{tenants: make(map[string]*models.Tenant)}
}

func (m *memoryTenantStorage) SaveTenant(tenant *models.Tenant) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	copied := *tenant
	m.tenants[tenant.ID] = &copied
	return nil
}

func (m *memoryTenantStorage) GetTenant(id string) (*models.Tenant, error) {
	t, ok := m.tenants[id]
	if !ok {
		return nil, errors.New("tenant not found")
	}
	copied := *t
	return &copied, nil
}

func (m *memoryTenantStorage) GetTenantByAPIKey(apiKey string) (*models.Tenant, error) {
	for _, t := range m.tenants {
		if t.APIKey == apiKey {
			copied := *t
			return &copied, nil
		}
	}
	return nil, errors.New("tenant not found")
}

func (m *memoryTenantStorage) ListTenants() ([]*models.Tenant, error) {
	var result []*models.Tenant
	for _, t := range m.tenants {
		copied := *t
		result = append(result, &copied)
	}
	return result, nil
}

func newTestService() (*Service, *memoryTenantStorage) {
	storage := newMemoryTenantStorage()
	return NewService(storage, common.GetLogger()), storage
}

func TestCreate(t *testing.T) {
	svc, _ := newTestService()

	tenant, err := svc.Create(&models.TenantCreateRequest{Name: "Acme Realty", Email: "ops@acme.test"})
	require.NoError(t, err)

	assert.NotEmpty(t, tenant.ID)
	assert.NotEmpty(t, tenant.APIKey)
	assert.True(t, tenant.IsActive)
	assert.Equal(t, defaultUsageQuota, tenant.UsageQuota)
	assert.Equal(t, 0, tenant.UsageCount)

	second, err := svc.Create(&models.TenantCreateRequest{Name: "Other", Email: "x@y.test"})
	require.NoError(t, err)
	assert.NotEqual(t, tenant.APIKey, second.APIKey, "every tenant gets a unique key")
}

func TestAuthenticate(t *testing.T) {
	svc, storage := newTestService()
	tenant, err := svc.Create(&models.TenantCreateRequest{Name: "Acme", Email: "a@b.test"})
	require.NoError(t, err)

	resolved, err := svc.Authenticate(tenant.APIKey)
	require.NoError(t, err)
	assert.Equal(t, tenant.ID, resolved.ID)

	_, err = svc.Authenticate("")
	assert.Error(t, err)

	_, err = svc.Authenticate("bogus-key")
	assert.Error(t, err)

	// Disabled accounts fail even with a valid key
	stored := storage.tenants[tenant.ID]
	stored.IsActive = false
	_, err = svc.Authenticate(tenant.APIKey)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disabled")
}

func TestCheckQuotaAndIncrementUsage(t *testing.T) {
	svc, storage := newTestService()
	tenant, err := svc.Create(&models.TenantCreateRequest{Name: "Acme", Email: "a@b.test"})
	require.NoError(t, err)

	assert.True(t, svc.CheckQuota(tenant.ID))
	assert.False(t, svc.CheckQuota("missing"))

	require.NoError(t, svc.IncrementUsage(tenant.ID))
	got, err := svc.Get(tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.UsageCount)

	storage.tenants[tenant.ID].UsageCount = defaultUsageQuota
	assert.False(t, svc.CheckQuota(tenant.ID), "quota boundary is inclusive")
}

func TestQuotaUnlimitedWhenZero(t *testing.T) {
	svc, storage := newTestService()
	tenant, err := svc.Create(&models.TenantCreateRequest{Name: "Acme", Email: "a@b.test"})
	require.NoError(t, err)

	storage.tenants[tenant.ID].UsageQuota = 0
	storage.tenants[tenant.ID].UsageCount = 99999
	assert.True(t, svc.CheckQuota(tenant.ID), "zero quota means unlimited")
}

func TestUsageStats(t *testing.T) {
	svc, storage := newTestService()
	tenant, err := svc.Create(&models.TenantCreateRequest{Name: "Acme", Email: "a@b.test"})
	require.NoError(t, err)
	storage.tenants[tenant.ID].UsageCount = 250

	stats, err := svc.UsageStats(tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, 250, stats["usage_count"])
	assert.Equal(t, defaultUsageQuota, stats["usage_quota"])
	assert.Equal(t, defaultUsageQuota-250, stats["remaining"])
	assert.InDelta(t, 25.0, stats["percent_used"].(float64), 0.001)

	_, err = svc.UsageStats("missing")
	assert.Error(t, err)
}
