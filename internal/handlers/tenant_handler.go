package handlers

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"

	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/models"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/services/tenants"
)

// TenantHandler serves tenant registration and usage endpoints
type TenantHandler struct {
	service  *tenants.Service
	validate *validator.Validate
	logger   arbor.ILogger
}

// NewTenantHandler creates a tenant handler
func NewTenantHandler(service *tenants.Service, logger arbor.ILogger) *TenantHandler {
	return &TenantHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
	}
}

// CreateHandler registers a new tenant.
// POST /api/tenants
func (h *TenantHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var req models.TenantCreateRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	tenant, err := h.service.Create(&req)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	WriteJSON(w, http.StatusCreated, tenant)
}

// ListHandler lists registered tenants without exposing API keys.
// GET /api/tenants
func (h *TenantHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List()
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// API keys are returned only at creation time
	type tenantSummary struct {
		ID         string `json:"id"`
		Name       string `json:"name"`
		Email      string `json:"email"`
		IsActive   bool   `json:"is_active"`
		UsageCount int    `json:"usage_count"`
		UsageQuota int    `json:"usage_quota"`
	}
	summaries := make([]tenantSummary, 0, len(list))
	for _, t := range list {
		summaries = append(summaries, tenantSummary{
			ID:         t.ID,
			Name:       t.Name,
			Email:      t.Email,
			IsActive:   t.IsActive,
			UsageCount: t.UsageCount,
			UsageQuota: t.UsageQuota,
		})
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"tenants": summaries,
		"count":   len(summaries),
	})
}

// TenantRoutes dispatches /api/tenants/{id} and /api/tenants/{id}/usage
func (h *TenantHandler) TenantRoutes(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/tenants/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}
	id := parts[0]

	if len(parts) == 2 && parts[1] == "usage" {
		if !RequireMethod(w, r, "GET") {
			return
		}
		h.usageStats(w, r, id)
		return
	}
	if len(parts) != 1 {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}

	if !RequireMethod(w, r, "GET") {
		return
	}
	tenant, err := h.service.Get(id)
	if err != nil {
		WriteError(w, http.StatusNotFound, "Tenant not found")
		return
	}
	WriteJSON(w, http.StatusOK, tenant)
}

func (h *TenantHandler) usageStats(w http.ResponseWriter, r *http.Request, id string) {
	stats, err := h.service.UsageStats(id)
	if err != nil {
		WriteError(w, http.StatusNotFound, "Tenant not found")
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}
