package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/common"
)

// ImagenService renders photorealistic background images via the Imagen API.
//
// Calls are throttled by a token-bucket limiter so ensemble fan-out does not
// burst past the project quota. Retry and overall-timeout policy are owned
// by the pipeline, not here.
type ImagenService struct {
	config  *common.GeminiConfig
	logger  arbor.ILogger
	client  *genai.Client
	limiter *rate.Limiter
	timeout time.Duration
}

// NewImagenService creates a new Imagen background generation service
func NewImagenService(config *common.Config, logger arbor.ILogger) (*ImagenService, error) {
	if config.Gemini.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required for image generation (set via GEMINI_API_KEY or gemini.api_key in config)")
	}

	if config.Gemini.ImageModel == "" {
		config.Gemini.ImageModel = "imagen-3.0-generate-002"
	}

	timeout, err := time.ParseDuration(config.Gemini.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid timeout duration '%s': %w", config.Gemini.Timeout, err)
	}

	interval := common.ParseDurationOr(config.Gemini.RateLimit, time.Second)

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.Gemini.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize genai client: %w", err)
	}

	service := &ImagenService{
		config:  &config.Gemini,
		logger:  logger,
		client:  client,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		timeout: timeout,
	}

	logger.Info().
		Str("image_model", config.Gemini.ImageModel).
		Dur("rate_interval", interval).
		Msg("Imagen service initialized successfully")

	return service, nil
}

// GenerateImage renders a single background image for the given visual
// prompt and aspect ratio, returning the raw image bytes.
func (s *ImagenService) GenerateImage(ctx context.Context, visualPrompt, aspectRatio string) ([]byte, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait cancelled: %w", err)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	startTime := time.Now()
	s.logger.Info().
		Str("aspect_ratio", aspectRatio).
		Str("prompt", truncate(visualPrompt, 50)).
		Msg("Generating background image")

	fullPrompt := fmt.Sprintf(`PROMPT: %s

QUALITY REQUIREMENTS:
- Photorealistic, 8k resolution, architectural digest style
- Soft natural lighting
- NO TEXT, NO WATERMARKS, NO LOGOS on the generated image itself`, visualPrompt)

	resp, err := s.client.Models.GenerateImages(timeoutCtx, s.config.ImageModel, fullPrompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    aspectRatio,
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("prompt", truncate(visualPrompt, 100)).
			Msg("Image generation failed")
		return nil, fmt.Errorf("image generation failed: %w", err)
	}

	if resp == nil || len(resp.GeneratedImages) == 0 {
		return nil, fmt.Errorf("no image generated from Imagen API")
	}
	generated := resp.GeneratedImages[0]
	if generated.Image == nil || len(generated.Image.ImageBytes) == 0 {
		return nil, fmt.Errorf("empty image data in Imagen response")
	}

	s.logger.Info().
		Int("bytes", len(generated.Image.ImageBytes)).
		Dur("duration", time.Since(startTime)).
		Msg("Image generated successfully")

	return generated.Image.ImageBytes, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
