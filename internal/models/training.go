package models

import "time"

// TrainingStatus tracks a training round through its lifecycle
type TrainingStatus string

const (
	TrainingPending   TrainingStatus = "pending"
	TrainingPreparing TrainingStatus = "preparing"
	TrainingUploading TrainingStatus = "uploading"
	TrainingRunning   TrainingStatus = "training"
	TrainingCompleted TrainingStatus = "completed"
	TrainingFailed    TrainingStatus = "failed"
)

// TrainingRequest starts a new training round
type TrainingRequest struct {
	ModelType    string  `json:"model_type"` // "imagen" or "gemini"
	Epochs       int     `json:"epochs" validate:"omitempty,min=1"`
	LearningRate float64 `json:"learning_rate"`
	TenantID     string  `json:"tenant_id,omitempty"`
}

// TrainingJob records one training round. Submission and monitoring are
// stubs; the job carries dataset preparation results only.
type TrainingJob struct {
	ID          string             `json:"id" badgerhold:"key"`
	Status      TrainingStatus     `json:"status"`
	ModelType   string             `json:"model_type"`
	StartedAt   time.Time          `json:"started_at"`
	CompletedAt *time.Time         `json:"completed_at,omitempty"`
	Metrics     map[string]float64 `json:"metrics,omitempty"`
	ModelPath   string             `json:"model_path,omitempty"`
	DatasetPath string             `json:"dataset_path,omitempty"`
	Error       string             `json:"error,omitempty"`
	TenantID    string             `json:"tenant_id,omitempty"`
}

// ModelInfo is one entry in the model registry
type ModelInfo struct {
	ID        string             `json:"id" badgerhold:"key"`
	Name      string             `json:"name"`
	Type      string             `json:"type" badgerholdIndex:"Type"`
	Version   string             `json:"version"`
	CreatedAt time.Time          `json:"created_at"`
	IsActive  bool               `json:"is_active"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
	Path      string             `json:"path,omitempty"`
}

// BalanceReport is the dataset-balance metric computed over category,
// platform, and style distributions
type BalanceReport struct {
	BalanceScore    float64  `json:"balance_score"`
	CategoryGini    float64  `json:"category_gini"`
	PlatformGini    float64  `json:"platform_gini"`
	StyleGini       float64  `json:"style_gini"`
	Recommendations []string `json:"recommendations"`
}
