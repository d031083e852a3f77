package routes

import (
	"github.com/gin-gonic/gin"

	"meetflow/internal/api/v1/handlers"
	"meetflow/internal/api/v1/services"
)

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, container *ServiceContainer) {
	// Meeting routes
	meetingHandler := handlers.NewMeetingHandler(container.MeetingService)
	meetings := router.Group("/meetings")
	{
		meetings.POST("", meetingHandler.Upload)
		meetings.GET("", meetingHandler.List)
		meetings.GET("/:id", meetingHandler.Get)
		meetings.GET("/:id/transcript", meetingHandler.GetTranscript)
	}

	// Model catalog routes
	if container.ModelService != nil {
		modelHandler := handlers.NewModelHandler(container.ModelService)
		router.GET("/models", modelHandler.List)
	}

	// Stats routes
	if container.StatsService != nil {
		statsHandler := handlers.NewStatsHandler(container.StatsService)
		router.GET("/stats", statsHandler.GetSystemStats)
	}

	// Export routes
	if container.ExportService != nil {
		exportHandler := handlers.NewExportHandler(container.ExportService)
		router.GET("/export", exportHandler.Export)
	}
}

// ServiceContainer holds all services needed by handlers
type ServiceContainer struct {
	MeetingService services.MeetingService
	ModelService   services.ModelService
	StatsService   services.StatsService
	ExportService  services.ExportService
}
