package interfaces

import (
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/models"
)

// SampleStore is the durable, concurrency-safe record of every generated or
// uploaded sample plus user feedback and evaluation scores. Appends happen
// only after a pipeline fully succeeds; updates are field-level merges.
type SampleStore interface {
	Append(sample *models.Sample) error
	Get(id string) (*models.Sample, error)
	List(filter models.SampleFilter) ([]*models.Sample, error)
	Update(id string, mutate func(*models.Sample)) (bool, error)
	Stats(tenantID string) (*models.DatasetStats, error)
}

// ImageStorage persists rasters by reference; records never embed binary data
type ImageStorage interface {
	Save(image []byte, id, tenantID, subfolder string) (string, error)
	Load(reference string) ([]byte, error)
	Delete(reference string) (bool, error)
}

// TenantStorage persists tenants and resolves them by API key
type TenantStorage interface {
	SaveTenant(tenant *models.Tenant) error
	GetTenant(id string) (*models.Tenant, error)
	GetTenantByAPIKey(apiKey string) (*models.Tenant, error)
	ListTenants() ([]*models.Tenant, error)
}

// BrandKitStorage persists brand kits
type BrandKitStorage interface {
	SaveBrandKit(kit *models.BrandKit) error
	GetBrandKit(id string) (*models.BrandKit, error)
	ListBrandKits(tenantID string) ([]*models.BrandKit, error)
}

// ModelRegistry persists training jobs and model versions
type ModelRegistry interface {
	SaveTrainingJob(job *models.TrainingJob) error
	GetTrainingJob(id string) (*models.TrainingJob, error)
	ListTrainingJobs(limit int) ([]*models.TrainingJob, error)
	RegisterModel(model *models.ModelInfo) error
	SetActiveModel(modelType, modelID string) error
	GetActiveModel(modelType string) (*models.ModelInfo, error)
	ListModels(modelType string) ([]*models.ModelInfo, error)
}

// StorageManager aggregates the badger-backed storage interfaces
type StorageManager interface {
	TenantStorage() TenantStorage
	BrandKitStorage() BrandKitStorage
	ModelRegistry() ModelRegistry
	Close() error
}
