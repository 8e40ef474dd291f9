package pipeline

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/common"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/interfaces"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/models"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/services/compose"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/services/validate"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/worker"
)

// BrandContextProvider resolves a brand kit into prompt instructions.
// Satisfied by the brands service.
type BrandContextProvider interface {
	ContextForPrompt(kitID string) (string, error)
}

// Orchestrator drives one design through the generation pipeline:
// plan, image, compose, validate, evaluate, persist.
//
// Stage failure policy, in order:
//   - plan: malformed model output degrades to a deterministic fallback plan
//   - image: retried with exponential backoff under an overall deadline;
//     exhaustion is fatal and reported as a stage error
//   - compose: failure degrades to the raw background
//   - validate: always succeeds, findings are attached to the response
//   - evaluate: failure degrades to no scores
//   - persist: runs only after everything above, so the dataset never holds
//     partial pipelines
type Orchestrator struct {
	planner   interfaces.PlanGenerator
	imager    interfaces.ImageGenerator
	evaluator interfaces.DesignEvaluator
	composer  *compose.Engine
	validator *validate.Validator
	pool      *worker.Pool
	store     interfaces.SampleStore
	images    interfaces.ImageStorage
	events    interfaces.EventService
	brands    BrandContextProvider
	cache     *PlanCache
	retrier   *Retrier
	logger    arbor.ILogger

	imageTimeout  time.Duration
	maxVariations int
}

// NewOrchestrator wires the pipeline from its stage services
func NewOrchestrator(
	cfg *common.Config,
	planner interfaces.PlanGenerator,
	imager interfaces.ImageGenerator,
	evaluator interfaces.DesignEvaluator,
	composer *compose.Engine,
	validator *validate.Validator,
	pool *worker.Pool,
	store interfaces.SampleStore,
	images interfaces.ImageStorage,
	events interfaces.EventService,
	brands BrandContextProvider,
	logger arbor.ILogger,
) *Orchestrator {
	policy := BackoffPolicy{
		MaxAttempts: cfg.Pipeline.MaxRetries,
		Base:        common.ParseDurationOr(cfg.Pipeline.RetryBase, 2*time.Second),
	}

	maxVariations := cfg.Pipeline.MaxVariations
	if maxVariations <= 0 {
		maxVariations = 5
	}

	return &Orchestrator{
		planner:       planner,
		imager:        imager,
		evaluator:     evaluator,
		composer:      composer,
		validator:     validator,
		pool:          pool,
		store:         store,
		images:        images,
		events:        events,
		brands:        brands,
		cache:         NewPlanCache(cfg.Pipeline.PlanCacheSize),
		retrier:       NewRetrier(policy),
		logger:        logger,
		imageTimeout:  common.ParseDurationOr(cfg.Pipeline.ImageTimeout, 60*time.Second),
		maxVariations: maxVariations,
	}
}

// Generate runs the full pipeline for a single design
func (o *Orchestrator) Generate(ctx context.Context, req *models.DesignRequest) (*models.DesignResponse, error) {
	req.ApplyDefaults()

	startTime := time.Now()
	o.logger.Info().
		Str("category", req.Category).
		Str("platform", req.Platform).
		Msg("Design generation started")

	resp, _, err := o.run(ctx, req)
	if err != nil {
		return nil, err
	}

	o.logger.Info().
		Str("design_id", resp.ID).
		Dur("duration", time.Since(startTime)).
		Msg("Design generation completed")

	return resp, nil
}

// run executes the pipeline stages and returns the response plus the raw
// composed image bytes for ensemble comparison.
func (o *Orchestrator) run(ctx context.Context, req *models.DesignRequest) (*models.DesignResponse, []byte, error) {
	startTime := time.Now()

	brandContext := ""
	if req.BrandKitID != "" && o.brands != nil {
		bc, err := o.brands.ContextForPrompt(req.BrandKitID)
		if err != nil {
			o.logger.Warn().
				Err(err).
				Str("brand_kit_id", req.BrandKitID).
				Msg("Brand kit lookup failed, continuing without brand context")
		} else {
			brandContext = bc
		}
	}

	// Stage 1: plan. Brand-customized requests bypass the cache both ways
	// so branded copy never leaks into unbranded requests.
	o.publishStage(ctx, StagePlan, "started")
	cacheKey := CacheKey(req)
	var plan *models.ContentPlan
	usedCache := false
	if req.BrandKitID == "" {
		if cached := o.cache.Get(cacheKey); cached != nil {
			plan = cached
			usedCache = true
			o.logger.Info().Str("cache_key", cacheKey[:8]).Msg("Plan retrieved from cache")
		}
	}
	if plan == nil {
		generated, err := o.planner.GeneratePlan(ctx, req, brandContext)
		if err != nil {
			o.logger.Warn().Err(err).Msg("Plan generation failed, using fallback plan")
			generated = models.FallbackPlan(req)
		}
		plan = generated
		if req.BrandKitID == "" {
			o.cache.Put(cacheKey, plan)
		}
	}
	o.publishStage(ctx, StagePlan, "completed")

	// Stage 2: background image with retry under an overall deadline
	o.publishStage(ctx, StageImage, "started")
	background, err := o.generateBackground(ctx, plan.VisualPrompt, req.AspectRatio)
	if err != nil {
		o.publishStage(ctx, StageImage, "failed")
		return nil, nil, err
	}
	o.publishStage(ctx, StageImage, "completed")

	// Stage 3: composition, offloaded to the worker pool. A composition
	// failure degrades to the raw background rather than failing the run.
	o.publishStage(ctx, StageCompose, "started")
	final := background
	var composeErr error
	var composed []byte
	if poolErr := o.pool.Run(ctx, func() {
		composed, composeErr = o.composer.Compose(background, plan)
	}); poolErr != nil {
		return nil, nil, fmt.Errorf("composition cancelled: %w", poolErr)
	}
	if composeErr != nil {
		o.logger.Warn().Err(composeErr).Msg("Composition failed, using raw background")
	} else {
		final = composed
	}
	o.publishStage(ctx, StageCompose, "completed")

	// Stage 4: validation, advisory only
	validation := o.validator.ValidateDesign(final, plan, req.AspectRatio)

	// Stage 5: evaluation, advisory only
	o.publishStage(ctx, StageEvaluate, "started")
	scores, err := o.evaluator.EvaluateDesign(ctx, final, plan, req.Category, req.Platform)
	if err != nil {
		o.logger.Warn().Err(err).Msg("Evaluation failed, persisting without scores")
		scores = nil
	}
	o.publishStage(ctx, StageEvaluate, "completed")

	// Stage 6: persist image and sample
	sampleID, err := o.persist(ctx, req, plan, final, scores)
	if err != nil {
		return nil, nil, err
	}

	resp := &models.DesignResponse{
		ID: sampleID,
		Image: models.DesignImage{
			MimeType: "image/png",
			Data:     base64.StdEncoding.EncodeToString(final),
		},
		Plan: plan,
		Meta: map[string]interface{}{
			"category":                req.Category,
			"platform":                req.Platform,
			"style":                   req.Style,
			"generated_at":            time.Now().UTC().Format(time.RFC3339),
			"generation_time_seconds": time.Since(startTime).Seconds(),
			"validation":              validation,
			"cached_plan":             usedCache,
		},
		Scores: scores,
	}
	return resp, final, nil
}

// generateBackground wraps the image generator with the retry policy and
// the overall stage deadline.
func (o *Orchestrator) generateBackground(ctx context.Context, visualPrompt, aspectRatio string) ([]byte, error) {
	stageCtx, cancel := context.WithTimeout(ctx, o.imageTimeout)
	defer cancel()

	var background []byte
	err := o.retrier.Do(stageCtx, func(ctx context.Context) error {
		data, err := o.imager.GenerateImage(ctx, visualPrompt, aspectRatio)
		if err != nil {
			return err
		}
		background = data
		return nil
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			o.logger.Error().
				Dur("timeout", o.imageTimeout).
				Msg("Image generation timed out")
			return nil, NewImageTimeoutError(err)
		}
		o.logger.Error().Err(err).Msg("Image generation failed")
		return nil, NewImageFailedError(err)
	}
	return background, nil
}

// persist saves the raster and appends the dataset sample. Runs only after
// every upstream stage has produced its output.
func (o *Orchestrator) persist(ctx context.Context, req *models.DesignRequest, plan *models.ContentPlan, final []byte, scores *models.EvaluationScores) (string, error) {
	o.publishStage(ctx, StagePersist, "started")

	sampleID := common.NewSampleID()
	imagePath, err := o.images.Save(final, sampleID, req.TenantID, "generated")
	if err != nil {
		return "", fmt.Errorf("failed to save design image: %w", err)
	}

	sample := &models.Sample{
		ID:               sampleID,
		Timestamp:        time.Now().UTC(),
		RawInput:         req.RawInput,
		VisualPrompt:     plan.VisualPrompt,
		Category:         req.Category,
		Platform:         req.Platform,
		Style:            req.Style,
		ColorTheme:       req.ColorTheme,
		Layout:           plan.Layout,
		Copy:             plan.Copy,
		ImagePath:        imagePath,
		EvaluationScores: scores,
		TenantID:         req.TenantID,
	}
	if err := o.store.Append(sample); err != nil {
		return "", fmt.Errorf("failed to persist sample: %w", err)
	}

	o.publishStage(ctx, StagePersist, "completed")
	if o.events != nil {
		o.events.Publish(ctx, interfaces.Event{
			Type: interfaces.EventSamplePersisted,
			Payload: map[string]interface{}{
				"sample_id": sampleID,
				"category":  req.Category,
				"platform":  req.Platform,
			},
		})
	}
	return sampleID, nil
}

func (o *Orchestrator) publishStage(ctx context.Context, stage, status string) {
	if o.events == nil {
		return
	}
	o.events.Publish(ctx, interfaces.Event{
		Type: interfaces.EventPipelineStage,
		Payload: map[string]interface{}{
			"stage":  stage,
			"status": status,
		},
	})
}
