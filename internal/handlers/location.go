package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gramvaani/gramvaani-api/internal/config"
	"github.com/gramvaani/gramvaani-api/internal/geo"
	"github.com/gramvaani/gramvaani-api/internal/logger"
	"go.uber.org/zap"
)

// LocationHandler serves the IP-lookup and reverse-geocode endpoints.
type LocationHandler struct {
	Cfg *config.Config
	Geo *geo.Client
}

// NewLocationHandler is the constructor function for initializing a new LocationHandler.
func NewLocationHandler(cfg *config.Config, geoClient *geo.Client) *LocationHandler {
	return &LocationHandler{Cfg: cfg, Geo: geoClient}
}

// GetLocation resolves the caller's coarse location from their IP. Lookup
// failures fall back to the configured default location rather than erroring.
func (h *LocationHandler) GetLocation(c *gin.Context) {
	loc, err := h.Geo.Lookup(c.Request.Context())
	if err != nil {
		logger.Get().Warn("location lookup failed", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"location": h.Cfg.EnvVars.DefaultLocation})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"city":     loc.City,
		"region":   loc.Region,
		"country":  loc.Country,
		"location": loc.Location,
	})
}

// ReverseGeocode resolves GPS coordinates to an address. Failures degrade to
// formatted coordinates, never an error response.
func (h *LocationHandler) ReverseGeocode(c *gin.Context) {
	var request struct {
		Latitude  float64 `json:"latitude" binding:"required"`
		Longitude float64 `json:"longitude" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "latitude and longitude are required"})
		return
	}

	address, err := h.Geo.ReverseGeocode(c.Request.Context(), request.Latitude, request.Longitude)
	if err != nil {
		logger.Get().Warn("reverse geocoding failed", zap.Error(err))
		address = geo.CoordinateFallback(request.Latitude, request.Longitude)
	}

	c.JSON(http.StatusOK, gin.H{
		"address": address,
		"coordinates": gin.H{
			"latitude":  request.Latitude,
			"longitude": request.Longitude,
		},
	})
}
