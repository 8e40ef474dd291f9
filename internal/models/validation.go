package models

// ValidationResult is the outcome of static layout analysis over a composed
// design. Findings never block pipeline completion; is_valid is false only
// when the image itself could not be decoded.
type ValidationResult struct {
	IsValid         bool              `json:"is_valid"`
	Errors          []string          `json:"errors"`
	Warnings        []string          `json:"warnings"`
	AutoCorrections map[string]string `json:"auto_corrections"`
}

// NewValidationResult returns an empty, passing result
func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		IsValid:         true,
		Errors:          []string{},
		Warnings:        []string{},
		AutoCorrections: map[string]string{},
	}
}
