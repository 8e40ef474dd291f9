package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/common"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/models"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/services/tenants"
)

type memoryTenantStorage struct {
	tenants map[string]*models.Tenant
}

func newMemoryTenantStorage() *memoryTenantStorage {
	return &memoryTenantStorage{tenants: make(map[string]*models.Tenant)}
}

func (m *memoryTenantStorage) SaveTenant(tenant *models.Tenant) error {
	copied := *tenant
	m.tenants[tenant.ID] = &copied
	return nil
}

func (m *memoryTenantStorage) GetTenant(id string) (*models.Tenant, error) {
	t, ok := m.tenants[id]
	if !ok {
		return nil, errors.New("tenant not found")
	}
	return t, nil
}

func (m *memoryTenantStorage) GetTenantByAPIKey(apiKey string) (*models.Tenant, error) {
	for _, t := range m.tenants {
		if t.APIKey == apiKey {
			return t, nil
		}
	}
	return nil, errors.New("tenant not found")
}

func (m *memoryTenantStorage) ListTenants() ([]*models.Tenant, error) {
	var result []*models.Tenant
	for _, t := range m.tenants {
		result = append(result, t)
	}
	return result, nil
}

func newTenantHandler() (*TenantHandler, *tenants.Service) {
	logger := common.GetLogger()
	svc := tenants.NewService(newMemoryTenantStorage(), logger)
	return NewTenantHandler(svc, logger), svc
}

func TestTenantCreateHandler(t *testing.T) {
	h, _ := newTenantHandler()

	body := `{"name":"Acme Realty","email":"ops@acme.test"}`
	w := httptest.NewRecorder()
	h.CreateHandler(w, httptest.NewRequest("POST", "/api/tenants", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, w.Code)
	var created models.Tenant
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.NotEmpty(t, created.APIKey, "key returned once, at creation")
	assert.True(t, created.IsActive)
}

func TestTenantCreateHandler_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing name", body: `{"email":"a@b.test"}`},
		{name: "missing email", body: `{"name":"Acme"}`},
		{name: "malformed email", body: `{"name":"Acme","email":"not-an-email"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTenantHandler()
			w := httptest.NewRecorder()
			h.CreateHandler(w, httptest.NewRequest("POST", "/api/tenants", strings.NewReader(tt.body)))
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestTenantListHandler_HidesAPIKeys(t *testing.T) {
	h, svc := newTenantHandler()
	_, err := svc.Create(&models.TenantCreateRequest{Name: "Acme", Email: "a@b.test"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	h.ListHandler(w, httptest.NewRequest("GET", "/api/tenants", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "api_key")

	var resp struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
}

func TestTenantRoutes(t *testing.T) {
	h, svc := newTenantHandler()
	tenant, err := svc.Create(&models.TenantCreateRequest{Name: "Acme", Email: "a@b.test"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	h.TenantRoutes(w, httptest.NewRequest("GET", "/api/tenants/"+tenant.ID, nil))
	require.Equal(t, http.StatusOK, w.Code)
	var got models.Tenant
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, tenant.ID, got.ID)

	w = httptest.NewRecorder()
	h.TenantRoutes(w, httptest.NewRequest("GET", "/api/tenants/"+tenant.ID+"/usage", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var usage map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &usage))
	assert.Equal(t, tenant.ID, usage["tenant_id"])

	w = httptest.NewRecorder()
	h.TenantRoutes(w, httptest.NewRequest("GET", "/api/tenants/ghost", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
