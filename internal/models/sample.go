package models

import "time"

// EvaluationScores holds the five scoring dimensions returned by the design
// evaluator. Each dimension is constrained to [0,10].
type EvaluationScores struct {
	Photorealism    float64 `json:"photorealism"`
	LayoutAlignment float64 `json:"layout_alignment"`
	Readability     float64 `json:"readability"`
	Relevance       float64 `json:"real_estate_relevance"`
	OverallQuality  float64 `json:"overall_quality"`
}

// Average returns the mean of the five dimensions
func (s *EvaluationScores) Average() float64 {
	return (s.Photorealism + s.LayoutAlignment + s.Readability + s.Relevance + s.OverallQuality) / 5
}

// Clamp forces every dimension into [0,10]
func (s *EvaluationScores) Clamp() {
	for _, v := range []*float64{&s.Photorealism, &s.LayoutAlignment, &s.Readability, &s.Relevance, &s.OverallQuality} {
		if *v < 0 {
			*v = 0
		}
		if *v > 10 {
			*v = 10
		}
	}
}

// NeutralScores returns the default scores used when evaluation fails
func NeutralScores() *EvaluationScores {
	return &EvaluationScores{
		Photorealism:    5.0,
		LayoutAlignment: 5.0,
		Readability:     5.0,
		Relevance:       5.0,
		OverallQuality:  5.0,
	}
}

// FeedbackType classifies user feedback on a generated design
type FeedbackType string

const (
	FeedbackApprove FeedbackType = "approve"
	FeedbackReject  FeedbackType = "reject"
	FeedbackEdit    FeedbackType = "edit"
	// FeedbackDeleted marks a soft-deleted sample; records are never
	// physically removed from the dataset file.
	FeedbackDeleted FeedbackType = "deleted"
)

// Feedback is attached to exactly one sample; last write wins
type Feedback struct {
	Type        FeedbackType           `json:"feedback_type"`
	Rating      int                    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Comments    string                 `json:"comments,omitempty"`
	Corrections map[string]interface{} `json:"corrections,omitempty"`
	SubmittedAt time.Time              `json:"submitted_at"`
	SubmittedBy string                 `json:"submitted_by,omitempty"`
}

// Sample is one persisted generation (or uploaded example) with its plan,
// image reference, scores, and feedback. Appended to the dataset only after
// the full pipeline succeeds; afterwards mutated only by feedback submission
// or training-selection toggling.
type Sample struct {
	ID                  string            `json:"id"`
	Timestamp           time.Time         `json:"timestamp"`
	RawInput            string            `json:"raw_input"`
	VisualPrompt        string            `json:"visual_prompt"`
	Category            string            `json:"category"`
	Platform            string            `json:"platform"`
	Style               string            `json:"style"`
	ColorTheme          string            `json:"color_theme,omitempty"`
	Layout              LayoutConfig      `json:"layout_config"`
	Copy                DesignCopy        `json:"copy"`
	ImagePath           string            `json:"image_path"`
	EvaluationScores    *EvaluationScores `json:"evaluation_scores,omitempty"`
	Feedback            *Feedback         `json:"feedback,omitempty"`
	SelectedForTraining bool              `json:"selected_for_training"`
	TenantID            string            `json:"tenant_id,omitempty"`
}

// Deleted reports whether the sample has been soft-deleted
func (s *Sample) Deleted() bool {
	return s.Feedback != nil && s.Feedback.Type == FeedbackDeleted
}

// DatasetStats summarizes the dataset for feedback and training endpoints
type DatasetStats struct {
	TotalSamples         int            `json:"total_samples"`
	ApprovedSamples      int            `json:"approved_samples"`
	RejectedSamples      int            `json:"rejected_samples"`
	PendingSamples       int            `json:"pending_samples"`
	AvgScore             float64        `json:"avg_score"`
	CategoryDistribution map[string]int `json:"category_distribution"`
	PlatformDistribution map[string]int `json:"platform_distribution"`
	StyleDistribution    map[string]int `json:"style_distribution"`
}

// SampleFilter narrows dataset listings
type SampleFilter struct {
	TenantID string
	Category string
	Platform string
	Style    string
	Limit    int
}
