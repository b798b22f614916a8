package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gramvaani/gramvaani-api/internal/repository"
)

// HealthHandler serves the root banner and health check.
type HealthHandler struct {
	Store repository.Store
}

// NewHealthHandler is the constructor function for initializing a new HealthHandler.
func NewHealthHandler(store repository.Store) *HealthHandler {
	return &HealthHandler{Store: store}
}

// Root returns the API banner.
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Gram Vaani API is running"})
}

// Health reports store connectivity and the registered user count.
func (h *HealthHandler) Health(c *gin.Context) {
	if err := h.Store.Ping(); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
			"error":    err.Error(),
		})
		return
	}

	count, err := h.Store.UserCount()
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status":   "unhealthy",
			"database": "connected",
			"error":    err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
		"users":    count,
	})
}
