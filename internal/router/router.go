package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gramvaani/gramvaani-api/internal/ai"
	"github.com/gramvaani/gramvaani-api/internal/config"
	"github.com/gramvaani/gramvaani-api/internal/geo"
	"github.com/gramvaani/gramvaani-api/internal/handlers"
	"github.com/gramvaani/gramvaani-api/internal/logger"
	"github.com/gramvaani/gramvaani-api/internal/middleware"
	"github.com/gramvaani/gramvaani-api/internal/pipeline"
	"github.com/gramvaani/gramvaani-api/internal/repository"
	"github.com/gramvaani/gramvaani-api/internal/service"
	"github.com/gramvaani/gramvaani-api/internal/weather"
)

// Providers bundles the external AI collaborators the router wires into the
// request pipeline. Constructed (and validated) at startup in main.
type Providers struct {
	Gen     ai.Generation
	STT     ai.Transcription
	TTS     ai.Synthesis
	Archive pipeline.Archiver
}

// SetupRouter sets up the Gin router.
func SetupRouter(cfg *config.Config, store repository.Store, providers Providers) (*gin.Engine, error) {
	// Create default Gin router
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowCredentials = true
	corsConfig.AllowOrigins = cfg.EnvVars.AllowedOrigins
	r.Use(cors.New(corsConfig))

	// Add request ID middleware for request correlation
	r.Use(logger.RequestIDMiddleware())

	// Query pipeline setup
	answerPipeline, err := pipeline.New(providers.Gen, cfg.Prompts, config.DefaultTuning())
	if err != nil {
		return nil, err
	}
	normalizer := pipeline.NewNormalizer(providers.STT)
	renderer := pipeline.NewRenderer(providers.TTS, store, providers.Archive)

	// User-related routes setup
	userService := service.NewUserService(cfg, store)
	userHandler := handlers.NewUserHandler(userService)

	// Assistant routes setup
	assistantService := service.NewAssistantService(cfg, normalizer, answerPipeline, renderer)
	assistantHandler := handlers.NewAssistantHandler(assistantService, store)

	// Advisory routes setup
	weatherClient := weather.NewClient(cfg.EnvVars.OpenWeatherAPIKey)
	advisoryService := service.NewAdvisoryService(cfg, providers.Gen, weatherClient, renderer)
	advisoryHandler := handlers.NewAdvisoryHandler(advisoryService)

	// Location routes setup
	locationHandler := handlers.NewLocationHandler(cfg, geo.NewClient())

	// Health routes setup
	healthHandler := handlers.NewHealthHandler(store)

	r.GET("/", healthHandler.Root)
	r.GET("/health", healthHandler.Health)

	// Routes that don't require token verification
	apiPublic := r.Group("/api")
	{
		apiPublic.POST("/signup", userHandler.Signup)
		apiPublic.POST("/login", userHandler.Login)
		apiPublic.POST("/refresh", userHandler.RefreshToken)

		apiPublic.GET("/location", locationHandler.GetLocation)
		apiPublic.POST("/reverse-geocode", locationHandler.ReverseGeocode)
	}

	// Routes that require token verification
	apiProtected := r.Group("/api")
	{
		apiProtected.Use(middleware.VerifyTokenMiddleware(cfg))
		apiProtected.Use(middleware.AttachUserToContext(userService))

		apiProtected.GET("/me", userHandler.Me)
		apiProtected.GET("/queries", assistantHandler.ListQueries)

		apiProtected.POST("/weather", advisoryHandler.GetWeather)
		apiProtected.POST("/crop-prices", advisoryHandler.GetCropPrices)
		apiProtected.POST("/gov-schemes", middleware.RateLimitByIP(5, 10*time.Minute, 30*time.Minute), advisoryHandler.GetGovSchemes)
	}

	// The query endpoints predate the /api prefix; clients still call them
	// at the root, so they keep their original paths.
	aiRateLimit := middleware.RateLimitByIP(5, 10*time.Minute, 30*time.Minute)
	r.POST("/process-audio", middleware.VerifyTokenMiddleware(cfg), middleware.AttachUserToContext(userService), aiRateLimit, assistantHandler.ProcessAudio)
	r.POST("/process-text", middleware.VerifyTokenMiddleware(cfg), middleware.AttachUserToContext(userService), aiRateLimit, assistantHandler.ProcessText)

	return r, nil
}
