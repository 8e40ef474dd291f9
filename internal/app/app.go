package app

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"

	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/common"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/handlers"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/interfaces"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/services/brands"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/services/compose"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/services/events"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/services/feedback"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/services/learning"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/services/llm"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/services/pdf"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/services/pipeline"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/services/tenants"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/services/trainer"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/services/validate"
	badgerstore "github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/storage/badger"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/storage/images"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/storage/samples"
	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/worker"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	// Storage
	StorageManager interfaces.StorageManager
	SampleStore    interfaces.SampleStore
	ImageStorage   interfaces.ImageStorage

	// Events
	EventService interfaces.EventService

	// Generation
	Orchestrator *pipeline.Orchestrator
	ComposePool  *worker.Pool

	// Domain services
	TenantService   *tenants.Service
	BrandService    *brands.Service
	FeedbackService *feedback.Service
	Selector        *learning.Selector
	TrainerService  *trainer.Service
	PDFExporter     *pdf.Exporter

	// Background scheduler
	cron *cron.Cron

	// HTTP handlers
	APIHandler      *handlers.APIHandler
	DesignHandler   *handlers.DesignHandler
	FeedbackHandler *handlers.FeedbackHandler
	TenantHandler   *handlers.TenantHandler
	BrandHandler    *handlers.BrandHandler
	TrainingHandler *handlers.TrainingHandler
	WSHandler       *handlers.WebSocketHandler
}

// New wires every service and handler from configuration
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if err := app.initStorage(); err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	app.EventService = events.NewService(logger)
	app.WSHandler = handlers.NewWebSocketHandler(app.EventService, logger)
	app.WSHandler.SubscribeToEvents()

	if err := app.initServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.initHandlers()
	app.initScheduler()

	logger.Info().
		Str("environment", cfg.Environment).
		Str("provider", string(cfg.LLM.DefaultProvider)).
		Msg("Application initialization complete")

	return app, nil
}

// initStorage opens badger, the dataset store, and the image store
func (a *App) initStorage() error {
	manager, err := badgerstore.NewManager(a.Logger, &a.Config.Storage.Badger)
	if err != nil {
		return err
	}
	a.StorageManager = manager

	store, err := samples.NewStore(a.Config.Storage.Filesystem.Dataset, a.Logger)
	if err != nil {
		return err
	}
	a.SampleStore = store

	imageStore, err := images.NewLocalStorage(a.Config.Storage.Filesystem.Images, a.Logger)
	if err != nil {
		return err
	}
	a.ImageStorage = imageStore

	a.Logger.Info().
		Str("badger", a.Config.Storage.Badger.Path).
		Str("dataset", a.Config.Storage.Filesystem.Dataset).
		Str("images", a.Config.Storage.Filesystem.Images).
		Msg("Storage initialized")

	return nil
}

// initServices builds the generation pipeline and domain services
func (a *App) initServices() error {
	planner, err := llm.NewPlanGenerator(a.Config, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to create plan generator: %w", err)
	}
	imager, err := llm.NewImagenService(a.Config, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to create image generator: %w", err)
	}
	evaluator, err := llm.NewEvaluatorService(a.Config, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to create evaluator: %w", err)
	}

	fonts, err := compose.NewFontCache()
	if err != nil {
		return fmt.Errorf("failed to load fonts: %w", err)
	}
	composer := compose.NewEngine(fonts, a.Config.Pipeline.LogoPath, a.Logger)
	validator := validate.NewValidator()

	workers := a.Config.Pipeline.ComposeWorkers
	if workers <= 0 {
		workers = 2
	}
	a.ComposePool = worker.NewPool(workers, a.Logger)
	a.ComposePool.Start()

	a.TenantService = tenants.NewService(a.StorageManager.TenantStorage(), a.Logger)
	a.BrandService = brands.NewService(a.StorageManager.BrandKitStorage(), a.ImageStorage, a.Logger)
	if err := a.BrandService.LoadPresets(a.Config.Storage.BrandKits.Dir); err != nil {
		a.Logger.Warn().Err(err).Msg("Failed to load brand kit presets")
	}

	a.Orchestrator = pipeline.NewOrchestrator(
		a.Config,
		planner,
		imager,
		evaluator,
		composer,
		validator,
		a.ComposePool,
		a.SampleStore,
		a.ImageStorage,
		a.EventService,
		a.BrandService,
		a.Logger,
	)

	a.FeedbackService = feedback.NewService(a.SampleStore, a.ImageStorage, a.Logger)
	a.Selector = learning.NewSelector(&a.Config.Learning, a.SampleStore, a.Logger)
	a.TrainerService = trainer.NewService(
		&a.Config.Training,
		a.Selector,
		a.StorageManager.ModelRegistry(),
		a.EventService,
		a.Logger,
	)
	a.PDFExporter = pdf.NewExporter(a.Logger)

	return nil
}

// initHandlers builds the HTTP handler set
func (a *App) initHandlers() {
	a.APIHandler = handlers.NewAPIHandler()
	a.DesignHandler = handlers.NewDesignHandler(
		a.Orchestrator,
		a.TenantService,
		a.SampleStore,
		a.ImageStorage,
		a.PDFExporter,
		a.Logger,
	)
	a.FeedbackHandler = handlers.NewFeedbackHandler(a.FeedbackService, a.Logger)
	a.TenantHandler = handlers.NewTenantHandler(a.TenantService, a.Logger)
	a.BrandHandler = handlers.NewBrandHandler(a.BrandService, a.Logger)
	a.TrainingHandler = handlers.NewTrainingHandler(a.TrainerService, a.Selector, a.Logger)
}

// initScheduler starts the cron scheduler for dataset balance snapshots
func (a *App) initScheduler() {
	if !a.Config.Scheduler.Enabled {
		return
	}

	a.cron = cron.New()
	schedule := a.Config.Scheduler.BalanceSchedule
	if schedule == "" {
		schedule = "0 6 * * *"
	}

	_, err := a.cron.AddFunc(schedule, func() {
		report, err := a.Selector.BalanceReport("")
		if err != nil {
			a.Logger.Warn().Err(err).Msg("Dataset balance snapshot failed")
			return
		}
		a.Logger.Info().
			Float64("balance_score", report.BalanceScore).
			Float64("category_gini", report.CategoryGini).
			Float64("platform_gini", report.PlatformGini).
			Float64("style_gini", report.StyleGini).
			Msg("Dataset balance snapshot")
	})
	if err != nil {
		a.Logger.Warn().Err(err).Str("schedule", schedule).Msg("Failed to register balance schedule")
		return
	}

	a.cron.Start()
	a.Logger.Info().Str("schedule", schedule).Msg("Scheduler started")
}

// Close shuts down background work and storage in reverse dependency order
func (a *App) Close() error {
	if a.cron != nil {
		ctx := a.cron.Stop()
		<-ctx.Done()
		a.Logger.Info().Msg("Scheduler stopped")
	}

	if a.ComposePool != nil {
		a.ComposePool.Stop()
		a.Logger.Info().Msg("Worker pool stopped")
	}

	if a.StorageManager != nil {
		if err := a.StorageManager.Close(); err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
		a.Logger.Info().Msg("Storage closed")
	}

	return nil
}
