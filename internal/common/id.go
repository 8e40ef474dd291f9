package common

import (
	"strings"

	"github.com/google/uuid"
)

// NewSampleID generates a unique dataset sample ID.
// Sample ids are bare UUIDs so they double as image file names.
func NewSampleID() string {
	return uuid.New().String()
}

// NewTenantID generates a unique tenant ID with the "tn_" prefix
func NewTenantID() string {
	return "tn_" + uuid.New().String()
}

// NewAPIKey generates a tenant API key.
// Format: sk_<32 hex chars>
func NewAPIKey() string {
	return "sk_" + strings.ReplaceAll(uuid.New().String(), "-", "")
}

// NewBrandKitID generates a unique brand kit ID with the "bk_" prefix
func NewBrandKitID() string {
	return "bk_" + uuid.New().String()
}

// NewTrainingJobID generates a unique training job ID with the "tr_" prefix
func NewTrainingJobID() string {
	return "tr_" + uuid.New().String()
}

// NewModelID generates a unique model registry ID with the "mdl_" prefix
func NewModelID() string {
	return "mdl_" + uuid.New().String()
}
