package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ternarybob/arbor"

	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/common"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/models"
)

// ClaudePlanner implements plan generation using the Anthropic Claude API.
// It shares the prompt contract with the Gemini planner so the two are
// interchangeable behind the provider factory.
type ClaudePlanner struct {
	config    *common.ClaudeConfig
	logger    arbor.ILogger
	client    *anthropic.Client
	timeout   time.Duration
	maxTokens int
}

// NewClaudePlanner creates a new Claude plan generation service
func NewClaudePlanner(config *common.Config, logger arbor.ILogger) (*ClaudePlanner, error) {
	if config.Claude.APIKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required for Claude plan generation (set via ANTHROPIC_API_KEY or claude.api_key in config)")
	}

	if config.Claude.Model == "" {
		config.Claude.Model = "claude-haiku-3-5-20241022"
	}

	timeout, err := time.ParseDuration(config.Claude.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid timeout duration '%s': %w", config.Claude.Timeout, err)
	}

	maxTokens := config.Claude.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 8192
	}

	client := anthropic.NewClient(
		option.WithAPIKey(config.Claude.APIKey),
	)

	service := &ClaudePlanner{
		config:    &config.Claude,
		logger:    logger,
		client:    &client,
		timeout:   timeout,
		maxTokens: maxTokens,
	}

	logger.Info().
		Str("model", config.Claude.Model).
		Dur("timeout", timeout).
		Int("max_tokens", maxTokens).
		Msg("Claude plan service initialized successfully")

	return service, nil
}

// GeneratePlan produces a structured content plan for a design request
func (s *ClaudePlanner) GeneratePlan(ctx context.Context, req *models.DesignRequest, brandContext string) (*models.ContentPlan, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	startTime := time.Now()
	s.logger.Debug().
		Str("category", req.Category).
		Str("platform", req.Platform).
		Msg("Starting Claude plan generation")

	prompt := buildPlanPrompt(req, brandContext)

	message, err := s.client.Messages.New(timeoutCtx, anthropic.MessageNewParams{
		Model:     anthropic.Model(s.config.Model),
		MaxTokens: int64(s.maxTokens),
		System: []anthropic.TextBlockParam{
			{Text: "Respond with JSON only. No markdown fences, no commentary."},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("category", req.Category).
			Msg("Claude plan generation failed")
		return nil, fmt.Errorf("plan generation failed: %w", err)
	}

	var text string
	for _, block := range message.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
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
		Msg("Claude plan generation completed successfully")

	return &plan, nil
}
