package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"google.golang.org/genai"

	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/common"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/models"
)

// GeminiPlanner implements plan generation using the Gemini API.
// The model is instructed to emit strict JSON; any parse failure is
// reported to the caller so the orchestrator can substitute a fallback plan.
type GeminiPlanner struct {
	config  *common.GeminiConfig
	logger  arbor.ILogger
	client  *genai.Client
	timeout time.Duration
}

// NewGeminiPlanner creates a new Gemini plan generation service.
//
// Initialization resolves the API key from configuration (populated from
// GEMINI_API_KEY by the config loader), applies model defaults, parses the
// per-call timeout, and builds the genai client against the Gemini API
// backend.
func NewGeminiPlanner(config *common.Config, logger arbor.ILogger) (*GeminiPlanner, error) {
	if config.Gemini.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required for plan generation (set via GEMINI_API_KEY or gemini.api_key in config)")
	}

	if config.Gemini.PlanModel == "" {
		config.Gemini.PlanModel = "gemini-2.0-flash"
	}

	timeout, err := time.ParseDuration(config.Gemini.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid timeout duration '%s': %w", config.Gemini.Timeout, err)
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.Gemini.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize genai client: %w", err)
	}

	service := &GeminiPlanner{
		config:  &config.Gemini,
		logger:  logger,
		client:  client,
		timeout: timeout,
	}

	logger.Info().
		Str("plan_model", config.Gemini.PlanModel).
		Dur("timeout", timeout).
		Msg("Gemini plan service initialized successfully")

	return service, nil
}

// GeneratePlan produces a structured content plan for a design request.
//
// The prompt encodes the poster layout contract (60% visual section, 40%
// text section) and the exact JSON shape of the plan. brandContext carries
// optional brand kit instructions and is interpolated verbatim.
//
// Returns an error when the model output cannot be parsed as a plan; the
// orchestrator decides whether to surface or recover from that.
func (s *GeminiPlanner) GeneratePlan(ctx context.Context, req *models.DesignRequest, brandContext string) (*models.ContentPlan, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	startTime := time.Now()
	s.logger.Debug().
		Str("category", req.Category).
		Str("platform", req.Platform).
		Msg("Starting plan generation")

	prompt := buildPlanPrompt(req, brandContext)

	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(s.config.Temperature),
		ResponseMIMEType: "application/json",
	}

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	resp, err := s.client.Models.GenerateContent(timeoutCtx, s.config.PlanModel, contents, config)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("category", req.Category).
			Msg("Plan generation failed")
		return nil, fmt.Errorf("plan generation failed: %w", err)
	}

	text := extractResponseText(resp)
	if text == "" {
		return nil, fmt.Errorf("no response generated from plan model")
	}

	var plan models.ContentPlan
	if err := json.Unmarshal([]byte(stripJSONFences(text)), &plan); err != nil {
		return nil, fmt.Errorf("plan output is not valid JSON: %w", err)
	}
	if plan.VisualPrompt == "" || plan.Copy.Headline == "" {
		return nil, fmt.Errorf("plan output is missing required fields")
	}

	s.logger.Info().
		Str("headline", plan.Copy.Headline).
		Dur("duration", time.Since(startTime)).
		Msg("Plan generation completed successfully")

	return &plan, nil
}

// extractResponseText collects text parts from the first candidate that
// produced any.
func extractResponseText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	if resp != nil && len(resp.Candidates) > 0 {
		for _, candidate := range resp.Candidates {
			if candidate.Content == nil {
				continue
			}
			for _, part := range candidate.Content.Parts {
				if part.Text != "" {
					sb.WriteString(part.Text)
				}
			}
			if sb.Len() > 0 {
				break
			}
		}
	}
	return sb.String()
}

func buildPlanPrompt(req *models.DesignRequest, brandContext string) string {
	brandInfo := req.BrandInfo
	if brandInfo == "" {
		brandInfo = "LOTLITE REAL ESTATE"
	}
	colorTheme := req.ColorTheme
	if colorTheme == "" {
		colorTheme = "professional-red-black"
	}

	var sb strings.Builder
	sb.WriteString(`You are a Professional Real Estate Marketing Graphic Designer specialized in creating high-impact property advertisements.

POSTER LAYOUT STRUCTURE (MUST FOLLOW):
The poster is divided into two main sections:
- TOP 60%: Property building image/graphic
- BOTTOM 40%: White/light background with text content

GRAPHIC SECTION (Top 60%):
- High-quality property building image
- LOGO: Company logo in TOP-LEFT CORNER of the entire graphic (overlaid on image)
- Brand watermark in bottom-right corner of this section

TEXT SECTION LAYOUT (Bottom 40%):

1. HEADLINE (CENTER): Bold, attention-grabbing headline in the CENTER
   - Example: "READY TO MOVE FLATS AVAILABLE"
   - Use UPPERCASE for impact
   - Key words in accent red, other words in Black

2. PHONE NUMBER: Displayed prominently BELOW the headline
   - Centered with black background pill/button, white text

3. PROPERTY DETAILS (LOWER SECTION):
   - Subtext: Property type and availability info
   - Feature lines: BHK details, amenities, area, etc.
   - Mix of black text with red accent for numbers

`)
	if brandContext != "" {
		sb.WriteString(brandContext)
		sb.WriteString("\n\n")
	}
	fmt.Fprintf(&sb, `INPUT CONTEXT:
Property Info: %s
Category: %s
Brand Info: %s
Platform: %s
Style: %s
Color Theme: %s

ANALYZE the property info and create compelling marketing copy.

OUTPUT FORMAT (JSON ONLY):
{
  "visual_prompt": "Create a clean, professional real estate property image showing modern residential building/towers with clear architectural details. Blue sky background. No text on the image.",
  "copy": {
    "headline": "READY TO MOVE | FLATS AVAILABLE IN [LOCATION]",
    "subtext": "X BHK PREMIUM APARTMENTS",
    "feature_line_1": "Carpet Area: XXX Sq.Ft.",
    "feature_line_2": "Price: XX Lakhs | Near [Landmark]",
    "cta": "+91 90111 35889",
    "brand_name": "LOTLITE REAL ESTATE",
    "keywords": ["ready-to-move", "flats", "apartments"]
  },
  "layout": {
    "title_position": "center",
    "logo_position": "top-left-text-area",
    "phone_position": "center-below-headline",
    "details_position": "lower-section",
    "headline_color": "#000000",
    "highlight_color": "#FFD700",
    "accent_color": "#E31837",
    "subtext_color": "#000000",
    "contact_bg_color": "#000000",
    "overlay_type": "none"
  },
  "reasoning": "Image on top (60%%), text below (40%%). Logo top-left of text area, centered headline, phone below headline, property details in lower section."
}
`, req.RawInput, req.Category, brandInfo, req.Platform, req.Style, colorTheme)

	return sb.String()
}
