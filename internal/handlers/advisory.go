package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gramvaani/gramvaani-api/internal/service"
	"github.com/gramvaani/gramvaani-api/internal/util"
)

// AdvisoryHandler serves the weather, crop price, and government scheme
// endpoints.
type AdvisoryHandler struct {
	Service *service.AdvisoryService
}

// NewAdvisoryHandler is the constructor function for initializing a new AdvisoryHandler.
func NewAdvisoryHandler(advisoryService *service.AdvisoryService) *AdvisoryHandler {
	return &AdvisoryHandler{Service: advisoryService}
}

// GetWeather returns current weather for the requested or home city.
func (h *AdvisoryHandler) GetWeather(c *gin.Context) {
	user, err := util.GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var request struct {
		City     string `json:"city"`
		Language string `json:"language"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	text, err := h.Service.GetWeather(c.Request.Context(), user, request.City)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Weather data not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"text": text, "audio_data": nil})
}

// GetCropPrices returns the market price for a crop.
func (h *AdvisoryHandler) GetCropPrices(c *gin.Context) {
	user, err := util.GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var request struct {
		Crop     string `json:"crop" binding:"required"`
		Market   string `json:"market"`
		Language string `json:"language"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Crop field is required"})
		return
	}

	text := h.Service.GetCropPrice(c.Request.Context(), user, request.Crop, request.Market)
	c.JSON(http.StatusOK, gin.H{"text": text, "audio_data": nil})
}

// GetGovSchemes answers a government-scheme question.
func (h *AdvisoryHandler) GetGovSchemes(c *gin.Context) {
	user, err := util.GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var request struct {
		Topic    string `json:"topic" binding:"required"`
		Language string `json:"language"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Topic field is required"})
		return
	}

	text, err := h.Service.GetGovSchemes(c.Request.Context(), user, request.Topic)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"text": text, "audio_data": nil})
}
