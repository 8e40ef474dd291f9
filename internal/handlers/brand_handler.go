package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"

	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/models"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/services/brands"
)

// Accepted logo upload size
const maxLogoBytes = 5 << 20

// BrandHandler serves brand kit CRUD and logo upload endpoints
type BrandHandler struct {
	service  *brands.Service
	validate *validator.Validate
	logger   arbor.ILogger
}

// NewBrandHandler creates a brand kit handler
func NewBrandHandler(service *brands.Service, logger arbor.ILogger) *BrandHandler {
	return &BrandHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
	}
}

// CreateHandler stores a new brand kit.
// POST /api/brands
func (h *BrandHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var kit models.BrandKit
	if err := DecodeJSON(r, &kit); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if kit.Name == "" {
		WriteError(w, http.StatusBadRequest, "Brand kit name is required")
		return
	}

	created, err := h.service.Create(&kit)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	WriteJSON(w, http.StatusCreated, created)
}

// ListHandler lists brand kits, optionally scoped to one tenant.
// GET /api/brands?tenant_id=...
func (h *BrandHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	kits, err := h.service.List(r.URL.Query().Get("tenant_id"))
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"brand_kits": kits,
		"count":      len(kits),
	})
}

// BrandRoutes dispatches /api/brands/{id} and /api/brands/{id}/logo
func (h *BrandHandler) BrandRoutes(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/brands/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}
	id := parts[0]

	if len(parts) == 2 && parts[1] == "logo" {
		if !RequireMethod(w, r, "POST") {
			return
		}
		h.uploadLogo(w, r, id)
		return
	}
	if len(parts) != 1 {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}

	if !RequireMethod(w, r, "GET") {
		return
	}
	kit, err := h.service.Get(id)
	if err != nil {
		WriteError(w, http.StatusNotFound, "Brand kit not found")
		return
	}
	WriteJSON(w, http.StatusOK, kit)
}

// uploadLogo accepts either a multipart form with a "file" field or a raw
// image body.
func (h *BrandHandler) uploadLogo(w http.ResponseWriter, r *http.Request, id string) {
	var logo []byte

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxLogoBytes); err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
			return
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			WriteError(w, http.StatusBadRequest, "Missing file field")
			return
		}
		defer file.Close()
		logo, err = io.ReadAll(io.LimitReader(file, maxLogoBytes))
		if err != nil {
			WriteError(w, http.StatusBadRequest, "Failed to read upload: "+err.Error())
			return
		}
	} else {
		var err error
		logo, err = io.ReadAll(io.LimitReader(r.Body, maxLogoBytes))
		if err != nil {
			WriteError(w, http.StatusBadRequest, "Failed to read upload: "+err.Error())
			return
		}
	}

	if len(logo) == 0 {
		WriteError(w, http.StatusBadRequest, "Empty logo upload")
		return
	}

	reference, err := h.service.UploadLogo(id, logo)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			WriteError(w, http.StatusNotFound, "Brand kit not found")
			return
		}
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"brand_kit_id": id,
		"logo_path":    reference,
	})
}
