package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"google.golang.org/genai"

	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/common"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/models"
)

// EvaluatorService scores finished designs with a Gemini vision model and
// arbitrates between ensemble candidates.
//
// Scoring is advisory: a failed evaluation degrades to neutral scores
// rather than failing the pipeline.
type EvaluatorService struct {
	config  *common.GeminiConfig
	logger  arbor.ILogger
	client  *genai.Client
	timeout time.Duration
}

// NewEvaluatorService creates a new design evaluation service
func NewEvaluatorService(config *common.Config, logger arbor.ILogger) (*EvaluatorService, error) {
	if config.Gemini.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required for design evaluation (set via GEMINI_API_KEY or gemini.api_key in config)")
	}

	if config.Gemini.EvalModel == "" {
		config.Gemini.EvalModel = "gemini-2.0-flash"
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

	service := &EvaluatorService{
		config:  &config.Gemini,
		logger:  logger,
		client:  client,
		timeout: timeout,
	}

	logger.Info().
		Str("eval_model", config.Gemini.EvalModel).
		Msg("Evaluator service initialized successfully")

	return service, nil
}

// EvaluateDesign scores a composed design on the five quality dimensions.
// Returns neutral midpoint scores when the model call or parsing fails.
func (s *EvaluatorService) EvaluateDesign(ctx context.Context, image []byte, plan *models.ContentPlan, category, platform string) (*models.EvaluationScores, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prompt := fmt.Sprintf(`You are an expert Real Estate Marketing Design Evaluator.

Analyze the provided real estate marketing design image and rate it on these criteria (0-10 scale):

1. PHOTOREALISM (0-10): How realistic and high-quality does the property/architecture look?
   - 0: Very fake/AI-looking
   - 5: Acceptable but noticeable artifacts
   - 10: Indistinguishable from professional photography

2. LAYOUT_ALIGNMENT (0-10): How well organized is the visual composition?
   - Are text elements properly positioned?
   - Is there good balance between image and text?
   - Are margins/padding consistent?

3. READABILITY (0-10): How easy is it to read all text elements?
   - Is contrast sufficient?
   - Are fonts appropriately sized?
   - Do text elements overlap with busy backgrounds?

4. REAL_ESTATE_RELEVANCE (0-10): How appropriate is this for real estate marketing?
   - Does it look professional for property listings?
   - Would a real estate agent use this?
   - Does it convey trust and quality?

5. OVERALL_QUALITY (0-10): Overall impression as a marketing asset.

CONTEXT:
- Property Category: %s
- Target Platform: %s
- Intended Headline: %s
- Intended Subtext: %s

OUTPUT JSON ONLY:
{
    "photorealism": 0-10,
    "layout_alignment": 0-10,
    "readability": 0-10,
    "real_estate_relevance": 0-10,
    "overall_quality": 0-10,
    "feedback": "Brief feedback for improvement"
}`, category, platform, plan.Copy.Headline, plan.Copy.Subtext)

	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
		genai.NewPartFromBytes(image, "image/png"),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}

	resp, err := s.client.Models.GenerateContent(timeoutCtx, s.config.EvalModel, contents, config)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Msg("Design evaluation failed, using neutral scores")
		return models.NeutralScores(), nil
	}

	text := extractResponseText(resp)
	var scores models.EvaluationScores
	if err := json.Unmarshal([]byte(stripJSONFences(text)), &scores); err != nil {
		s.logger.Warn().
			Err(err).
			Msg("Evaluation output was not valid JSON, using neutral scores")
		return models.NeutralScores(), nil
	}
	scores.Clamp()

	s.logger.Debug().
		Float64("overall_quality", scores.OverallQuality).
		Float64("average", scores.Average()).
		Msg("Design evaluated")

	return &scores, nil
}

// CompareDesigns picks the best of several candidate designs.
// A single candidate short-circuits without a model call.
func (s *EvaluatorService) CompareDesigns(ctx context.Context, images [][]byte, category, platform string) (*models.Selection, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("no designs to compare")
	}
	if len(images) == 1 {
		return &models.Selection{
			BestIndex: 0,
			Reasoning: "Single design provided",
			Rankings:  []int{0},
		}, nil
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prompt := fmt.Sprintf(`You are comparing %d real estate marketing designs.

Context:
- Property Category: %s
- Target Platform: %s

For each design, evaluate:
1. Visual quality
2. Professional appeal
3. Readability
4. Brand consistency

Select the BEST design by index (0-based).

OUTPUT JSON ONLY:
{
    "best_index": 0,
    "reasoning": "Brief explanation of why this design is best",
    "rankings": [list of indices from best to worst]
}`, len(images), category, platform)

	parts := []*genai.Part{genai.NewPartFromText(prompt)}
	for i, img := range images {
		parts = append(parts,
			genai.NewPartFromBytes(img, "image/png"),
			genai.NewPartFromText(fmt.Sprintf("Design %d", i)),
		)
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}

	resp, err := s.client.Models.GenerateContent(timeoutCtx, s.config.EvalModel, contents, config)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Int("candidates", len(images)).
			Msg("Design comparison failed, falling back to first candidate")
		return &models.Selection{
			BestIndex: 0,
			Reasoning: fmt.Sprintf("Fallback selection due to error: %v", err),
		}, nil
	}

	text := extractResponseText(resp)
	var selection models.Selection
	if err := json.Unmarshal([]byte(stripJSONFences(text)), &selection); err != nil {
		s.logger.Warn().
			Err(err).
			Msg("Comparison output was not valid JSON, falling back to first candidate")
		return &models.Selection{
			BestIndex: 0,
			Reasoning: fmt.Sprintf("Fallback selection due to error: %v", err),
		}, nil
	}
	if selection.BestIndex < 0 || selection.BestIndex >= len(images) {
		selection.BestIndex = 0
	}
	if selection.Reasoning == "" {
		selection.Reasoning = "Selected based on overall quality"
	}
	if len(selection.Rankings) == 0 {
		selection.Rankings = make([]int, len(images))
		for i := range selection.Rankings {
			selection.Rankings[i] = i
		}
	}

	s.logger.Info().
		Int("best_index", selection.BestIndex).
		Int("candidates", len(images)).
		Msg("Design comparison completed")

	return &selection, nil
}
