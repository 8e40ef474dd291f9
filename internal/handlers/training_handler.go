package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/models"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/services/learning"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/services/trainer"
)

// TrainingHandler serves training round, model registry, and dataset
// analysis endpoints
type TrainingHandler struct {
	trainer  *trainer.Service
	selector *learning.Selector
	logger   arbor.ILogger
}

// NewTrainingHandler creates a training handler
func NewTrainingHandler(trainerSvc *trainer.Service, selector *learning.Selector, logger arbor.ILogger) *TrainingHandler {
	return &TrainingHandler{
		trainer:  trainerSvc,
		selector: selector,
		logger:   logger,
	}
}

// TrainModelHandler starts a new training round.
// POST /api/training/train-model
func (h *TrainingHandler) TrainModelHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req models.TrainingRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	job, err := h.trainer.StartRound(&req)
	if err != nil {
		msg := err.Error()
		switch {
		case strings.Contains(msg, "invalid model type"):
			WriteError(w, http.StatusBadRequest, msg)
		case strings.Contains(msg, "not enough training data"):
			WriteError(w, http.StatusBadRequest, msg)
		default:
			WriteError(w, http.StatusInternalServerError, msg)
		}
		return
	}
	WriteJSON(w, http.StatusOK, job)
}

// JobsHandler lists recent training jobs.
// GET /api/training/jobs?limit=...
func (h *TrainingHandler) JobsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	jobs, err := h.trainer.ListJobs(limit)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"jobs":  jobs,
		"count": len(jobs),
	})
}

// ModelsHandler lists registered models.
// GET /api/training/models?type=imagen
func (h *TrainingHandler) ModelsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	list, err := h.trainer.ListModels(r.URL.Query().Get("type"))
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"models": list,
		"count":  len(list),
	})
}

// ActivateModelHandler promotes a model to active.
// POST /api/training/models/activate {"model_id": "..."}
func (h *TrainingHandler) ActivateModelHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var body struct {
		ModelID string `json:"model_id"`
	}
	if err := DecodeJSON(r, &body); err != nil || body.ModelID == "" {
		WriteError(w, http.StatusBadRequest, "model_id is required")
		return
	}

	model, err := h.trainer.ActivateModel(body.ModelID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, model)
}

// RollbackHandler steps the active model back by N versions.
// POST /api/training/models/rollback {"model_type": "imagen", "versions": 1}
func (h *TrainingHandler) RollbackHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var body struct {
		ModelType string `json:"model_type"`
		Versions  int    `json:"versions"`
	}
	if err := DecodeJSON(r, &body); err != nil || body.ModelType == "" {
		WriteError(w, http.StatusBadRequest, "model_type is required")
		return
	}

	model, err := h.trainer.Rollback(body.ModelType, body.Versions)
	if err != nil {
		msg := err.Error()
		switch {
		case strings.Contains(msg, "no active model"):
			WriteError(w, http.StatusNotFound, msg)
		case strings.Contains(msg, "cannot rollback"):
			WriteError(w, http.StatusBadRequest, msg)
		default:
			WriteError(w, http.StatusInternalServerError, msg)
		}
		return
	}
	WriteJSON(w, http.StatusOK, model)
}

// DatasetRoutes serves dataset balance and suggestion endpoints.
// GET /api/training/dataset/balance
// GET /api/training/dataset/underrepresented?threshold=0.1
// GET /api/training/dataset/suggest
// POST /api/training/dataset/export
func (h *TrainingHandler) DatasetRoutes(w http.ResponseWriter, r *http.Request, action string) {
	tenantID := r.URL.Query().Get("tenant_id")

	switch action {
	case "balance":
		if !RequireMethod(w, r, "GET") {
			return
		}
		report, err := h.selector.BalanceReport(tenantID)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, report)

	case "underrepresented":
		if !RequireMethod(w, r, "GET") {
			return
		}
		threshold := 0.1
		if v := r.URL.Query().Get("threshold"); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 && f < 1 {
				threshold = f
			}
		}
		result, err := h.selector.Underrepresented(threshold, tenantID)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, result)

	case "suggest":
		if !RequireMethod(w, r, "GET") {
			return
		}
		params, err := h.selector.SuggestNextParams(tenantID)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, params)

	case "export":
		if !RequireMethod(w, r, "POST") {
			return
		}
		path, count, err := h.trainer.ExportDataset(tenantID)
		if err != nil {
			if strings.Contains(err.Error(), "no samples") {
				WriteError(w, http.StatusBadRequest, err.Error())
				return
			}
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"export_path":  path,
			"sample_count": count,
		})

	default:
		WriteError(w, http.StatusNotFound, "Not found")
	}
}

// TrainingRoutes dispatches /api/training/* sub-paths
func (h *TrainingHandler) TrainingRoutes(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/training/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}

	switch parts[0] {
	case "train-model":
		h.TrainModelHandler(w, r)
	case "jobs":
		h.JobsHandler(w, r)
	case "training-status":
		if len(parts) != 2 || parts[1] == "" {
			WriteError(w, http.StatusNotFound, "Not found")
			return
		}
		h.jobStatus(w, r, parts[1])
	case "models":
		switch {
		case len(parts) == 1:
			h.ModelsHandler(w, r)
		case len(parts) == 2 && parts[1] == "activate":
			h.ActivateModelHandler(w, r)
		case len(parts) == 2 && parts[1] == "rollback":
			h.RollbackHandler(w, r)
		case len(parts) == 2 && parts[1] == "active":
			h.activeModel(w, r)
		default:
			WriteError(w, http.StatusNotFound, "Not found")
		}
	case "dataset":
		if len(parts) != 2 {
			WriteError(w, http.StatusNotFound, "Not found")
			return
		}
		h.DatasetRoutes(w, r, parts[1])
	default:
		WriteError(w, http.StatusNotFound, "Not found")
	}
}

func (h *TrainingHandler) jobStatus(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, "GET") {
		return
	}
	job, err := h.trainer.GetJob(id)
	if err != nil {
		WriteError(w, http.StatusNotFound, "Training job not found")
		return
	}
	WriteJSON(w, http.StatusOK, job)
}

func (h *TrainingHandler) activeModel(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}
	modelType := r.URL.Query().Get("type")
	if modelType == "" {
		modelType = "imagen"
	}
	model, err := h.trainer.ActiveModel(modelType)
	if err != nil {
		WriteError(w, http.StatusNotFound, "No active model for type: "+modelType)
		return
	}
	WriteJSON(w, http.StatusOK, model)
}
