package models

import "strings"

// DesignRequest is the inbound request for a single or ensemble generation.
// Immutable once submitted; brand customization deliberately excluded from
// the plan cache fingerprint.
type DesignRequest struct {
	RawInput      string `json:"raw_input" validate:"required"`
	Category      string `json:"category"`
	Platform      string `json:"platform"`
	Style         string `json:"style"`
	ColorTheme    string `json:"color_theme,omitempty"`
	AspectRatio   string `json:"aspect_ratio"`
	BrandInfo     string `json:"brand_info,omitempty"`
	BrandKitID    string `json:"brand_kit_id,omitempty"`
	TenantID      string `json:"tenant_id,omitempty"`
	NumVariations int    `json:"num_variations" validate:"omitempty,min=1,max=5"`
}

// ApplyDefaults fills unset request fields with the service defaults
func (r *DesignRequest) ApplyDefaults() {
	if r.Category == "" {
		r.Category = "ready-to-move"
	}
	if r.Platform == "" {
		r.Platform = "Instagram Story"
	}
	if r.Style == "" {
		r.Style = "modern"
	}
	if r.AspectRatio == "" {
		r.AspectRatio = "9:16"
	}
	if r.NumVariations <= 0 {
		r.NumVariations = 1
	}
}

// DesignCopy holds the marketing copy of a content plan
type DesignCopy struct {
	Headline     string   `json:"headline"`
	Subtext      string   `json:"subtext"`
	CTA          string   `json:"cta"`
	Keywords     []string `json:"keywords,omitempty"`
	FeatureLine1 string   `json:"feature_line_1,omitempty"`
	FeatureLine2 string   `json:"feature_line_2,omitempty"`
	BrandName    string   `json:"brand_name,omitempty"`
}

// LayoutConfig holds element positions and the color scheme of a plan
type LayoutConfig struct {
	TitlePosition    string `json:"title_position"`
	PricePosition    string `json:"price_position"`
	LogoPosition     string `json:"logo_position"`
	HeadlineColor    string `json:"headline_color"`
	SubtextColor     string `json:"subtext_color"`
	AccentColor      string `json:"accent_color"`
	HighlightColor   string `json:"highlight_color"`
	ContactBgColor   string `json:"contact_bg_color"`
	RibbonPosition   string `json:"ribbon_position,omitempty"`
	RibbonBgColor    string `json:"ribbon_bg_color,omitempty"`
	FeaturesPosition string `json:"features_position,omitempty"`
	ContactPosition  string `json:"contact_position,omitempty"`
	OverlayType      string `json:"overlay_type,omitempty"`
}

// DefaultLayoutConfig returns the layout used when the plan generator
// omits layout details
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		TitlePosition:    "top-center",
		PricePosition:    "bottom-right",
		LogoPosition:     "bottom-left",
		HeadlineColor:    "#1B3A5F",
		SubtextColor:     "#FFFFFF",
		AccentColor:      "#C41E3A",
		HighlightColor:   "#FFD700",
		ContactBgColor:   "#1B3A5F",
		RibbonPosition:   "upper-center",
		RibbonBgColor:    "#8B0000",
		FeaturesPosition: "bottom-center",
		ContactPosition:  "bottom",
		OverlayType:      "none",
	}
}

// ContentPlan is the structured creative brief produced once per generation
type ContentPlan struct {
	VisualPrompt string       `json:"visual_prompt"`
	Copy         DesignCopy   `json:"copy"`
	Layout       LayoutConfig `json:"layout"`
	Reasoning    string       `json:"reasoning"`
}

// FallbackPlan builds the recovery plan substituted when the plan generator
// returns malformed output. Never surfaced to the caller as a failure.
func FallbackPlan(req *DesignRequest) *ContentPlan {
	subtext := "Contact for details"
	if req.RawInput != "" {
		runes := []rune(req.RawInput)
		if len(runes) > 50 {
			runes = runes[:50]
		}
		subtext = string(runes)
	}
	return &ContentPlan{
		VisualPrompt: "Modern real estate photography of " + req.Category,
		Copy: DesignCopy{
			Headline: "Premium Property",
			Subtext:  subtext,
			CTA:      "Contact Us",
			Keywords: []string{},
		},
		Layout:    DefaultLayoutConfig(),
		Reasoning: "Fallback due to error",
	}
}

// DesignImage carries the finished raster back to the caller
type DesignImage struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"` // Base64
}

// DesignResponse is the outbound result of one pipeline run
type DesignResponse struct {
	ID     string                 `json:"id"`
	Image  DesignImage            `json:"image"`
	Plan   *ContentPlan           `json:"plan"`
	Meta   map[string]interface{} `json:"meta"`
	Scores *EvaluationScores      `json:"scores,omitempty"`
}

// MultiDesignResponse is the outbound result of an ensemble run
type MultiDesignResponse struct {
	Designs            []*DesignResponse `json:"designs"`
	BestDesignID       string            `json:"best_design_id"`
	SelectionReasoning string            `json:"selection_reasoning"`
}

// Selection is the comparator verdict over ensemble candidates
type Selection struct {
	BestIndex int    `json:"best_index"`
	Reasoning string `json:"reasoning"`
	Rankings  []int  `json:"rankings,omitempty"`
}

// Fingerprint returns the plan cache key material for a request.
// Brand customization is excluded on purpose: brand-specific output must
// never be shared across requests.
func (r *DesignRequest) Fingerprint() string {
	return strings.Join([]string{r.RawInput, r.Category, r.Platform, r.Style}, ":")
}
