package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"

	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/interfaces"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/models"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/services/pdf"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/services/pipeline"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/services/tenants"
)

// DesignHandler serves design generation and retrieval endpoints
type DesignHandler struct {
	orchestrator *pipeline.Orchestrator
	tenantSvc    *tenants.Service
	store        interfaces.SampleStore
	images       interfaces.ImageStorage
	exporter     *pdf.Exporter
	validate     *validator.Validate
	logger       arbor.ILogger
}

// NewDesignHandler creates a design handler
func NewDesignHandler(orchestrator *pipeline.Orchestrator, tenantSvc *tenants.Service, store interfaces.SampleStore, images interfaces.ImageStorage, exporter *pdf.Exporter, logger arbor.ILogger) *DesignHandler {
	return &DesignHandler{
		orchestrator: orchestrator,
		tenantSvc:    tenantSvc,
		store:        store,
		images:       images,
		exporter:     exporter,
		validate:     validator.New(),
		logger:       logger,
	}
}

// resolveTenant authenticates the optional X-API-Key header. Anonymous
// requests pass through with a nil tenant; an invalid key is rejected.
func (h *DesignHandler) resolveTenant(w http.ResponseWriter, r *http.Request) (*models.Tenant, bool) {
	apiKey := r.Header.Get("X-API-Key")
	if apiKey == "" {
		return nil, true
	}
	tenant, err := h.tenantSvc.Authenticate(apiKey)
	if err != nil {
		WriteError(w, http.StatusUnauthorized, err.Error())
		return nil, false
	}
	return tenant, true
}

// decodeRequest parses and validates the design request body
func (h *DesignHandler) decodeRequest(w http.ResponseWriter, r *http.Request) (*models.DesignRequest, bool) {
	var req models.DesignRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return nil, false
	}
	if err := h.validate.Struct(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return nil, false
	}
	return &req, true
}

// GenerateHandler runs the full pipeline for one design.
// POST /api/design/generate
func (h *DesignHandler) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	tenant, ok := h.resolveTenant(w, r)
	if !ok {
		return
	}
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	if tenant != nil {
		if !h.tenantSvc.CheckQuota(tenant.ID) {
			WriteError(w, http.StatusTooManyRequests, "Usage quota exceeded")
			return
		}
		req.TenantID = tenant.ID
		if err := h.tenantSvc.IncrementUsage(tenant.ID); err != nil {
			h.logger.Warn().Err(err).Str("tenant_id", tenant.ID).Msg("Failed to record usage")
		}
	}

	resp, err := h.orchestrator.Generate(r.Context(), req)
	if err != nil {
		h.writePipelineError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, resp)
}

// EnsembleHandler generates several variations and picks the best.
// POST /api/design/ensemble?num_variations=3
func (h *DesignHandler) EnsembleHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	tenant, ok := h.resolveTenant(w, r)
	if !ok {
		return
	}
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	numVariations := 3
	if v := r.URL.Query().Get("num_variations"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			numVariations = n
		}
	}
	if req.NumVariations > 0 {
		numVariations = req.NumVariations
	}

	if tenant != nil {
		if !h.tenantSvc.CheckQuota(tenant.ID) {
			WriteError(w, http.StatusTooManyRequests, "Usage quota exceeded")
			return
		}
		req.TenantID = tenant.ID
		if err := h.tenantSvc.IncrementUsage(tenant.ID); err != nil {
			h.logger.Warn().Err(err).Str("tenant_id", tenant.ID).Msg("Failed to record usage")
		}
	}

	resp, err := h.orchestrator.GenerateEnsemble(r.Context(), req, numVariations)
	if err != nil {
		h.writePipelineError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, resp)
}

// ListHandler lists persisted designs with optional filters.
// GET /api/design?category=...&platform=...&style=...&limit=...
func (h *DesignHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	tenant, ok := h.resolveTenant(w, r)
	if !ok {
		return
	}

	filter := models.SampleFilter{
		Category: r.URL.Query().Get("category"),
		Platform: r.URL.Query().Get("platform"),
		Style:    r.URL.Query().Get("style"),
	}
	if tenant != nil {
		filter.TenantID = tenant.ID
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filter.Limit = n
		}
	}

	all, err := h.store.List(filter)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Soft-deleted designs are hidden from listings
	visible := make([]*models.Sample, 0, len(all))
	for _, s := range all {
		if !s.Deleted() {
			visible = append(visible, s)
		}
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"designs": visible,
		"count":   len(visible),
	})
}

// DesignRoutes dispatches /api/design/{id} and /api/design/{id}/pdf
func (h *DesignHandler) DesignRoutes(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/design/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		WriteError(w, http.StatusNotFound, "Design not found")
		return
	}
	id := parts[0]

	if len(parts) == 2 && parts[1] == "pdf" {
		if !RequireMethod(w, r, "GET") {
			return
		}
		h.exportPDF(w, r, id)
		return
	}
	if len(parts) != 1 {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}

	switch r.Method {
	case "GET":
		h.getDesign(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *DesignHandler) getDesign(w http.ResponseWriter, r *http.Request, id string) {
	tenant, ok := h.resolveTenant(w, r)
	if !ok {
		return
	}

	sample, err := h.store.Get(id)
	if err != nil {
		WriteError(w, http.StatusNotFound, "Design not found")
		return
	}
	if sample.Deleted() {
		WriteError(w, http.StatusNotFound, "Design not found")
		return
	}
	if tenant != nil && sample.TenantID != "" && sample.TenantID != tenant.ID {
		WriteError(w, http.StatusForbidden, "Not authorized")
		return
	}

	WriteJSON(w, http.StatusOK, sample)
}

func (h *DesignHandler) exportPDF(w http.ResponseWriter, r *http.Request, id string) {
	sample, err := h.store.Get(id)
	if err != nil || sample.Deleted() {
		WriteError(w, http.StatusNotFound, "Design not found")
		return
	}

	image, err := h.images.Load(sample.ImagePath)
	if err != nil {
		WriteError(w, http.StatusNotFound, "Design image not found")
		return
	}

	data, err := h.exporter.Export(sample, image)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="design_`+id+`.pdf"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// writePipelineError maps stage errors to HTTP status codes: timeouts to
// 504, everything else to 500, preserving stage tag and suggestion.
func (h *DesignHandler) writePipelineError(w http.ResponseWriter, err error) {
	var stageErr *pipeline.StageError
	if errors.As(err, &stageErr) {
		status := http.StatusInternalServerError
		if strings.Contains(stageErr.Message, "timed out") {
			status = http.StatusGatewayTimeout
		}
		WriteStageError(w, status, stageErr.Stage, stageErr.Message, stageErr.Suggestion)
		return
	}
	WriteError(w, http.StatusInternalServerError, err.Error())
}
