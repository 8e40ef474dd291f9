package handlers

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"

	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/models"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/services/feedback"
)

// FeedbackHandler serves feedback submission and dataset stats endpoints
type FeedbackHandler struct {
	service  *feedback.Service
	validate *validator.Validate
	logger   arbor.ILogger
}

// NewFeedbackHandler creates a feedback handler
func NewFeedbackHandler(service *feedback.Service, logger arbor.ILogger) *FeedbackHandler {
	return &FeedbackHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
	}
}

type feedbackRequest struct {
	SampleID    string                 `json:"sample_id" validate:"required"`
	Type        string                 `json:"type" validate:"required,oneof=approve reject edit"`
	Rating      int                    `json:"rating" validate:"omitempty,min=1,max=5"`
	Comments    string                 `json:"comments"`
	Corrections map[string]interface{} `json:"corrections"`
	SubmittedBy string                 `json:"submitted_by"`
}

// SubmitHandler records feedback against a design.
// POST /api/feedback
func (h *FeedbackHandler) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req feedbackRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	fb := &models.Feedback{
		Type:        models.FeedbackType(req.Type),
		Rating:      req.Rating,
		Comments:    req.Comments,
		Corrections: req.Corrections,
		SubmittedBy: req.SubmittedBy,
	}
	if err := h.service.Submit(req.SampleID, fb); err != nil {
		if strings.Contains(err.Error(), "not found") {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "recorded",
		"sample_id": req.SampleID,
	})
}

// StatsHandler summarizes feedback over the dataset.
// GET /api/feedback/stats?tenant_id=...
func (h *FeedbackHandler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	stats, err := h.service.Stats(r.URL.Query().Get("tenant_id"))
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}

// FeedbackRoutes dispatches /api/feedback/{id} and /api/feedback/{id}/select
func (h *FeedbackHandler) FeedbackRoutes(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/feedback/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}
	id := parts[0]

	if len(parts) == 2 && parts[1] == "select" {
		if !RequireMethod(w, r, "POST") {
			return
		}
		h.setSelected(w, r, id)
		return
	}
	if len(parts) != 1 {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}

	switch r.Method {
	case "GET":
		h.getFeedback(w, r, id)
	case "DELETE":
		h.deleteDesign(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *FeedbackHandler) getFeedback(w http.ResponseWriter, r *http.Request, id string) {
	sample, err := h.service.Get(id)
	if err != nil {
		WriteError(w, http.StatusNotFound, "Design not found")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"sample_id":             sample.ID,
		"feedback":              sample.Feedback,
		"selected_for_training": sample.SelectedForTraining,
	})
}

func (h *FeedbackHandler) setSelected(w http.ResponseWriter, r *http.Request, id string) {
	var body struct {
		Selected *bool `json:"selected"`
	}
	if err := DecodeJSON(r, &body); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	selected := true
	if body.Selected != nil {
		selected = *body.Selected
	}

	if err := h.service.SetSelectedForTraining(id, selected); err != nil {
		if strings.Contains(err.Error(), "not found") {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"sample_id":             id,
		"selected_for_training": selected,
	})
}

func (h *FeedbackHandler) deleteDesign(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.service.Delete(id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "deleted",
		"sample_id": id,
	})
}
