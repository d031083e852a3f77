package handlers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"meetflow/internal/api/middleware"
	"meetflow/internal/api/v1/dto"
	"meetflow/internal/api/v1/services"
)

// ExportHandler handles export-related HTTP requests
type ExportHandler struct {
	service services.ExportService
}

// NewExportHandler creates a new export handler
func NewExportHandler(service services.ExportService) *ExportHandler {
	return &ExportHandler{
		service: service,
	}
}

// Export handles GET /api/v1/export
// Streams an xlsx workbook of meetings to the client
func (h *ExportHandler) Export(c *gin.Context) {
	var query dto.ExportQuery

	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("meetings-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.service.ExportMeetings(c.Request.Context(), query, c.Writer); err != nil {
		// Once workbook bytes are on the wire the status code is locked in.
		if c.Writer.Written() {
			c.Error(err)
			return
		}
		c.Writer.Header().Del("Content-Type")
		c.Writer.Header().Del("Content-Disposition")
		middleware.HandleError(c, err)
	}
}
