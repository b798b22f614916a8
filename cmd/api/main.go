package main

import (
	"os"
	"runtime"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gramvaani/gramvaani-api/internal/ai"
	"github.com/gramvaani/gramvaani-api/internal/config"
	"github.com/gramvaani/gramvaani-api/internal/db"
	"github.com/gramvaani/gramvaani-api/internal/logger"
	"github.com/gramvaani/gramvaani-api/internal/repository"
	"github.com/gramvaani/gramvaani-api/internal/router"
	"github.com/gramvaani/gramvaani-api/internal/s3"
	"go.uber.org/zap"
)

// init is called before the main function.
func init() {
	// Initialize structured logger (dev mode if GIN_MODE != release)
	isDev := os.Getenv("GIN_MODE") != "release"
	logger.Init(isDev)

	// Configure the runtime
	ConfigureRuntime()
}

// Entry point for the API.
func main() {
	defer logger.Sync()

	// Load the config
	var cfg *config.Config
	if c, err := config.LoadConfig(); err != nil {
		logger.Get().Fatal("failed to load config", zap.Error(err))
	} else {
		cfg = c
	}

	// Check that all ENV variables are set. A misconfigured service must
	// never start serving requests.
	if err := cfg.CheckConfigEnvFields(); err != nil {
		logger.Get().Fatal("missing required config fields", zap.Error(err))
	}

	// Load prompts from YAML
	prompts, err := config.LoadPrompts("configs/prompts.yaml")
	if err != nil {
		logger.Get().Fatal("failed to load prompts", zap.Error(err))
	}
	cfg.Prompts = prompts

	// Select the store: postgres when DATABASE_URL is set, otherwise the
	// ephemeral in-memory store.
	var store repository.Store
	if cfg.EnvVars.DatabaseUrl != "" {
		database, err := db.New(cfg)
		if err != nil {
			logger.Get().Fatal("failed to connect to database", zap.Error(err))
		}
		sqlDB, err := database.DB()
		if err != nil {
			logger.Get().Fatal("failed to get underlying sql.DB", zap.Error(err))
		}
		defer sqlDB.Close()

		if err := db.SeedTestUser(database); err != nil {
			logger.Get().Warn("failed to seed test user", zap.Error(err))
		}

		store = repository.NewPostgresStore(database)
	} else {
		logger.Get().Warn("DATABASE_URL not set, using in-memory store")
		store = repository.NewMemoryStore()
	}

	// Construct the AI collaborators. Constructor failures are fatal
	// configuration errors, not per-request conditions.
	providers, err := buildProviders(cfg)
	if err != nil {
		logger.Get().Fatal("failed to construct AI providers", zap.Error(err))
	}

	// Create a new gin router
	gin.SetMode(gin.ReleaseMode)
	r, err := router.SetupRouter(cfg, store, providers)
	if err != nil {
		logger.Get().Fatal("failed to set up router", zap.Error(err))
	}

	// Run the server
	logger.Get().Info("starting server", zap.String("port", cfg.EnvVars.Port))
	r.Run(":" + cfg.EnvVars.Port)
}

// buildProviders wires the generation, transcription, synthesis, and audio
// archive collaborators from config.
func buildProviders(cfg *config.Config) (router.Providers, error) {
	var providers router.Providers

	switch strings.ToLower(cfg.EnvVars.AIProvider) {
	case "anthropic":
		gen, err := ai.NewAnthropicProvider(cfg.EnvVars.AnthropicAPIKey)
		if err != nil {
			return providers, err
		}
		providers.Gen = gen
	default:
		gen, err := ai.NewAzureChatProvider(cfg.EnvVars.AzureOpenAIEndpoint, cfg.EnvVars.AzureOpenAIAPIKey, cfg.EnvVars.AzureOpenAIDeployment)
		if err != nil {
			return providers, err
		}
		providers.Gen = gen
	}

	stt, err := ai.NewWhisperProvider(cfg.EnvVars.OpenAIAPIKey)
	if err != nil {
		return providers, err
	}
	providers.STT = stt

	tts, err := ai.NewTTSProvider(cfg.EnvVars.OpenAIAPIKey)
	if err != nil {
		return providers, err
	}
	providers.TTS = tts

	// Archive is optional; nil disables it
	if archive := s3.NewAudioArchive(cfg); archive != nil {
		providers.Archive = archive
	}

	return providers, nil
}

// ConfigureRuntime sets the number of operating system threads.
func ConfigureRuntime() {
	nuCPU := runtime.NumCPU()
	runtime.GOMAXPROCS(nuCPU)
	logger.Get().Info("runtime configured", zap.Int("cpus", nuCPU))
}
