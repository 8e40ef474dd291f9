package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string          `toml:"environment"` // "development" or "production"
	Server      ServerConfig    `toml:"server"`
	Storage     StorageConfig   `toml:"storage"`
	Logging     LoggingConfig   `toml:"logging"`
	Gemini      GeminiConfig    `toml:"gemini"`
	Claude      ClaudeConfig    `toml:"claude"`
	LLM         LLMConfig       `toml:"llm"`
	Pipeline    PipelineConfig  `toml:"pipeline"`
	Learning    LearningConfig  `toml:"learning"`
	Training    TrainingConfig  `toml:"training"`
	Scheduler   SchedulerConfig `toml:"scheduler"`
}

type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

type StorageConfig struct {
	Badger     BadgerConfig     `toml:"badger"`
	Filesystem FilesystemConfig `toml:"filesystem"`
	BrandKits  BrandKitsConfig  `toml:"brand_kits"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

type FilesystemConfig struct {
	Images  string `toml:"images"`  // Root directory for stored raster images
	Dataset string `toml:"dataset"` // Directory holding the JSONL sample metadata
}

// BrandKitsConfig contains configuration for brand kit preset loading
type BrandKitsConfig struct {
	Dir string `toml:"dir"` // Directory containing brand kit preset files (YAML)
}

type LoggingConfig struct {
	Level      string   `toml:"level"`       // "debug", "info", "warn", "error"
	Format     string   `toml:"format"`      // "json" or "text"
	Output     []string `toml:"output"`      // "stdout", "file"
	TimeFormat string   `toml:"time_format"` // Time format for logs (default: "15:04:05.000")
}

// GeminiConfig contains Google Gemini API configuration for all AI services
type GeminiConfig struct {
	APIKey      string  `toml:"api_key"`
	PlanModel   string  `toml:"plan_model"`  // Text model producing content plans
	ImageModel  string  `toml:"image_model"` // Imagen model producing backgrounds
	EvalModel   string  `toml:"eval_model"`  // Vision model scoring finished designs
	Timeout     string  `toml:"timeout"`     // Per-call timeout, e.g. "30s"
	RateLimit   string  `toml:"rate_limit"`  // Minimum interval between image calls
	Temperature float32 `toml:"temperature"`
}

// ClaudeConfig contains Anthropic Claude API configuration
type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`
	MaxTokens   int     `toml:"max_tokens"`
	Timeout     string  `toml:"timeout"`
	Temperature float32 `toml:"temperature"`
}

// LLMProvider identifies which provider backs the plan generator
type LLMProvider string

const (
	LLMProviderGemini LLMProvider = "gemini"
	LLMProviderClaude LLMProvider = "claude"
)

// LLMConfig selects the plan generation provider
type LLMConfig struct {
	DefaultProvider LLMProvider `toml:"default_provider"`
}

// PipelineConfig tunes the generation pipeline
type PipelineConfig struct {
	PlanCacheSize  int    `toml:"plan_cache_size"` // Bounded plan cache capacity
	MaxRetries     int    `toml:"max_retries"`     // Image generation retry attempts
	RetryBase      string `toml:"retry_base"`      // Exponential backoff base, e.g. "2s"
	ImageTimeout   string `toml:"image_timeout"`   // Overall timeout spanning all retries
	MaxVariations  int    `toml:"max_variations"`  // Ensemble fan-out cap
	ComposeWorkers int    `toml:"compose_workers"` // Worker pool size for CPU-bound composition
	LogoPath       string `toml:"logo_path"`       // Default logo asset (text badge fallback when missing)
}

// LearningConfig tunes the active-learning selector
type LearningConfig struct {
	LowScoreWeight     float64 `toml:"low_score_weight"`
	LowFrequencyWeight float64 `toml:"low_frequency_weight"`
	ApprovedWeight     float64 `toml:"approved_weight"`
	GiniThreshold      float64 `toml:"gini_threshold"`
}

// TrainingConfig contains configuration for training round preparation
type TrainingConfig struct {
	ExportDir  string `toml:"export_dir"`  // Directory for exported training datasets
	MinSamples int    `toml:"min_samples"` // Minimum selected samples to start a round
	TargetSize int    `toml:"target_size"` // Samples selected per round
}

// SchedulerConfig contains cron schedules for background tasks
type SchedulerConfig struct {
	Enabled         bool   `toml:"enabled"`
	BalanceSchedule string `toml:"balance_schedule"` // Cron schedule for dataset balance snapshots
}

// NewDefaultConfig returns a Config populated with defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "localhost",
			Port: 8085,
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path:           "./data/badger",
				ResetOnStartup: false,
			},
			Filesystem: FilesystemConfig{
				Images:  "./data/images",
				Dataset: "./data/dataset",
			},
			BrandKits: BrandKitsConfig{
				Dir: "./brandkits",
			},
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			Output:     []string{"stdout"},
			TimeFormat: "15:04:05.000",
		},
		Gemini: GeminiConfig{
			APIKey:      "", // User must provide API key (no fallback)
			PlanModel:   "gemini-2.0-flash",
			ImageModel:  "imagen-3.0-generate-002",
			EvalModel:   "gemini-2.0-flash",
			Timeout:     "30s",
			RateLimit:   "1s",
			Temperature: 0.7,
		},
		Claude: ClaudeConfig{
			APIKey:      "",
			Model:       "claude-haiku-3-5-20241022",
			MaxTokens:   8192,
			Timeout:     "30s",
			Temperature: 0.7,
		},
		LLM: LLMConfig{
			DefaultProvider: LLMProviderGemini,
		},
		Pipeline: PipelineConfig{
			PlanCacheSize:  100,
			MaxRetries:     3,
			RetryBase:      "2s",
			ImageTimeout:   "60s",
			MaxVariations:  5,
			ComposeWorkers: 2,
			LogoPath:       "./public/logo.png",
		},
		Learning: LearningConfig{
			LowScoreWeight:     0.4,
			LowFrequencyWeight: 0.3,
			ApprovedWeight:     0.3,
			GiniThreshold:      0.3,
		},
		Training: TrainingConfig{
			ExportDir:  "./data/training",
			MinSamples: 10,
			TargetSize: 500,
		},
		Scheduler: SchedulerConfig{
			Enabled:         true,
			BalanceSchedule: "0 6 * * *",
		},
	}
}

// LoadFromFile loads configuration with priority: defaults -> file -> env
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files; later files override
// earlier files, then environment variables override all file configs.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("DESIGNER_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	if port := os.Getenv("DESIGNER_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("DESIGNER_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	if badgerPath := os.Getenv("DESIGNER_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}
	if imagesDir := os.Getenv("DESIGNER_IMAGES_DIR"); imagesDir != "" {
		config.Storage.Filesystem.Images = imagesDir
	}
	if datasetDir := os.Getenv("DESIGNER_DATASET_DIR"); datasetDir != "" {
		config.Storage.Filesystem.Dataset = datasetDir
	}

	if level := os.Getenv("DESIGNER_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("DESIGNER_LOG_OUTPUT"); output != "" {
		outputs := []string{}
		for _, o := range strings.Split(output, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}

	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		config.Gemini.APIKey = apiKey
	}
	if apiKey := os.Getenv("ANTHROPIC_API_KEY"); apiKey != "" {
		config.Claude.APIKey = apiKey
	}
	if provider := os.Getenv("DESIGNER_LLM_PROVIDER"); provider != "" {
		config.LLM.DefaultProvider = LLMProvider(provider)
	}
}

// ParseDurationOr parses a duration string, falling back to def on error
func ParseDurationOr(value string, def time.Duration) time.Duration {
	if value == "" {
		return def
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return d
}
