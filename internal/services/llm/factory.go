package llm

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/common"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/interfaces"
)

// NewPlanGenerator creates the plan generation implementation selected by
// llm.default_provider. Gemini is the default; Claude is opt-in and needs
// its own API key.
func NewPlanGenerator(cfg *common.Config, logger arbor.ILogger) (interfaces.PlanGenerator, error) {
	provider := cfg.LLM.DefaultProvider
	if provider == "" {
		provider = common.LLMProviderGemini
	}

	logger.Info().Str("provider", string(provider)).Msg("Initializing plan generation service")

	switch provider {
	case common.LLMProviderGemini:
		return NewGeminiPlanner(cfg, logger)
	case common.LLMProviderClaude:
		return NewClaudePlanner(cfg, logger)
	default:
		return nil, fmt.Errorf("invalid LLM provider '%s': must be 'gemini' or 'claude'", provider)
	}
}
