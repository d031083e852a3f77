package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meetflow/internal/api/middleware"
	"meetflow/internal/api/v1/services"
)

// StatsHandler handles statistics-related HTTP requests
type StatsHandler struct {
	service services.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(service services.StatsService) *StatsHandler {
	return &StatsHandler{
		service: service,
	}
}

// GetSystemStats handles GET /api/v1/stats
func (h *StatsHandler) GetSystemStats(c *gin.Context) {
	stats, err := h.service.GetSystemStats(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
