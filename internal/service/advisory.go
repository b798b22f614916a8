package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/gramvaani/gramvaani-api/internal/ai"
	"github.com/gramvaani/gramvaani-api/internal/config"
	"github.com/gramvaani/gramvaani-api/internal/models"
	"github.com/gramvaani/gramvaani-api/internal/pipeline"
	"github.com/gramvaani/gramvaani-api/internal/weather"
)

// Simulated mandi prices in rupees per quintal, pending a live market feed.
var cropBasePrices = map[string]int{
	"wheat":     2000,
	"rice":      2400,
	"corn":      1600,
	"barley":    1800,
	"sugarcane": 5000,
	"cotton":    6000,
	"soybean":   4400,
	"mustard":   5600,
	"onion":     3000,
	"potato":    1400,
	"tomato":    3600,
	"chili":     8000,
}

const defaultCropPrice = 2500

// AdvisoryService serves the weather, crop price, and government scheme
// lookups. Responses are logged to the user's query history under their
// category tags.
type AdvisoryService struct {
	Cfg      *config.Config
	Gen      ai.Generation
	Weather  *weather.Client
	Renderer *pipeline.Renderer
}

// NewAdvisoryService creates a new AdvisoryService.
func NewAdvisoryService(cfg *config.Config, gen ai.Generation, weatherClient *weather.Client, renderer *pipeline.Renderer) *AdvisoryService {
	return &AdvisoryService{
		Cfg:      cfg,
		Gen:      gen,
		Weather:  weatherClient,
		Renderer: renderer,
	}
}

// homeCity picks the city for a request: the explicit one, else the first
// component of the user's stored location, else the configured default.
func (s *AdvisoryService) homeCity(user *models.User, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if user.Location != "" {
		return strings.TrimSpace(strings.SplitN(user.Location, ",", 2)[0])
	}
	return s.Cfg.EnvVars.DefaultMarket
}

// GetWeather fetches current weather for the city and logs the lookup.
func (s *AdvisoryService) GetWeather(ctx context.Context, user *models.User, city string) (string, error) {
	resolved := s.homeCity(user, city)

	report, err := s.Weather.Current(ctx, resolved)
	if err != nil {
		return "", err
	}

	text := report.Summary()
	s.Renderer.Log(user.Email, "weather: "+resolved, text, models.CategoryWeather)
	return text, nil
}

// GetCropPrice answers a market price query from the price table. Unknown
// crops get the default price rather than an error.
func (s *AdvisoryService) GetCropPrice(ctx context.Context, user *models.User, crop, market string) string {
	resolved := s.homeCity(user, market)

	price, ok := cropBasePrices[strings.ToLower(crop)]
	if !ok {
		price = defaultCropPrice
	}

	text := fmt.Sprintf("Current price of %s in %s market is ₹%d per quintal", crop, resolved, price)
	s.Renderer.Log(user.Email, "crop: "+crop, text, models.CategoryCrop)
	return text
}

// GetGovSchemes answers a government-scheme question with a single
// generation call under the schemes persona.
func (s *AdvisoryService) GetGovSchemes(ctx context.Context, user *models.User, topic string) (string, error) {
	tuning := config.DefaultTuning()

	query := fmt.Sprintf("Tell me about government schemes related to %s", topic)
	text, err := s.Gen.Complete(ctx, s.Cfg.Prompts.Schemes.System, query, tuning.AnswerMaxTokens, tuning.AnswerTemperature)
	if err != nil {
		return "", fmt.Errorf("schemes generation failed: %w", err)
	}

	s.Renderer.Log(user.Email, "schemes: "+topic, text, models.CategorySchemes)
	return text, nil
}
