package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meetflow/internal/api/middleware"
	"meetflow/internal/api/v1/services"
)

// ModelHandler handles whisper model catalog requests
type ModelHandler struct {
	service services.ModelService
}

// NewModelHandler creates a new model handler
func NewModelHandler(service services.ModelService) *ModelHandler {
	return &ModelHandler{
		service: service,
	}
}

// List handles GET /api/v1/models
//
// @Summary List whisper models
// @Description Lists the supported whisper model sizes with download and load state
// @Tags models
// @Produce json
// @Success 200 {object} dto.ModelListResponse "Model catalog"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /models [get]
func (h *ModelHandler) List(c *gin.Context) {
	response, err := h.service.ListModels(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
