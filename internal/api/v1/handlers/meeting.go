package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"meetflow/internal/api/errors"
	"meetflow/internal/api/middleware"
	"meetflow/internal/api/v1/dto"
	"meetflow/internal/api/v1/services"
)

// MeetingHandler handles meeting-related API endpoints
type MeetingHandler struct {
	service services.MeetingService
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(service services.MeetingService) *MeetingHandler {
	return &MeetingHandler{
		service: service,
	}
}

// Upload handles POST /api/v1/meetings
// Uploads an audio file and runs it through the meeting pipeline
//
// @Summary Upload a meeting recording
// @Description Uploads an audio file, transcribes it locally and analyzes the transcript. Analysis failures still return the transcript with status transcript_only.
// @Tags meetings
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Audio file to process"
// @Param title formData string false "Meeting title, defaults to the file name"
// @Param model_size formData string false "Whisper model size" Enums(tiny,base,small)
// @Param language formData string false "Spoken language hint, e.g. en"
// @Param skip_analysis formData bool false "Skip summary and action item extraction"
// @Success 201 {object} dto.MeetingResponse "Meeting processed"
// @Failure 400 {object} errors.APIError "Unsupported audio format"
// @Failure 422 {object} errors.APIError "Validation error or unreadable upload"
// @Failure 502 {object} errors.APIError "Analysis backend unavailable"
// @Failure 503 {object} errors.APIError "Whisper model could not be loaded"
// @Router /meetings [post]
func (h *MeetingHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("No file uploaded"))
		return
	}
	defer file.Close()

	var form dto.UploadMeetingForm
	form.FileName = header.Filename
	if err := middleware.ValidateForm(c, &form); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.CreateFromUpload(c.Request.Context(), &form, file)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Get handles GET /api/v1/meetings/:id
// Retrieves a specific meeting by ID
//
// @Summary Get meeting by ID
// @Description Retrieves a processed meeting with transcript, summary and action items
// @Tags meetings
// @Accept json
// @Produce json
// @Param id path string true "Meeting ID"
// @Success 200 {object} dto.MeetingResponse "Meeting details"
// @Failure 404 {object} errors.APIError "Meeting not found"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /meetings/{id} [get]
func (h *MeetingHandler) Get(c *gin.Context) {
	response, err := h.service.GetMeeting(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetTranscript handles GET /api/v1/meetings/:id/transcript
// Returns the raw transcript text of a meeting
//
// @Summary Get meeting transcript
// @Description Returns the plain transcript text without analysis metadata
// @Tags meetings
// @Produce plain
// @Param id path string true "Meeting ID"
// @Success 200 {string} string "Transcript text"
// @Failure 404 {object} errors.APIError "Meeting not found"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /meetings/{id}/transcript [get]
func (h *MeetingHandler) GetTranscript(c *gin.Context) {
	transcript, err := h.service.GetTranscript(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.String(http.StatusOK, transcript)
}

// List handles GET /api/v1/meetings
// Lists meetings with pagination and optional status filtering
//
// @Summary List meetings with pagination
// @Description Retrieves a paginated list of meetings, newest first, with optional filtering by pipeline status
// @Tags meetings
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1) minimum(1)
// @Param limit query int false "Items per page" default(20) minimum(1) maximum(100)
// @Param status query string false "Filter by status" Enums(completed,transcript_only,failed)
// @Success 200 {object} dto.PaginatedMeetingsResponse "List of meetings with pagination"
// @Failure 400 {object} errors.APIError "Bad request - invalid query parameters"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Header 200 {string} X-Total-Count "Total number of meetings"
// @Router /meetings [get]
func (h *MeetingHandler) List(c *gin.Context) {
	var query dto.ListMeetingsQuery

	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.ListMeetings(c.Request.Context(), query)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.Header("X-Total-Count", strconv.Itoa(response.Pagination.Total))

	c.JSON(http.StatusOK, response)
}
