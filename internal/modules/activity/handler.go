package activity

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"berrystore/internal/pkg/response"
	"berrystore/internal/pkg/validator"
)

type LogRequest struct {
	EventType string         `json:"eventType" validate:"required"`
	Details   map[string]any `json:"details"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts event ingestion: anonymous visitors log
// page views too, so this stays outside the auth group.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/activity", h.Log)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/activity", h.List)
}

// Log godoc
// @Summary Record an activity event
// @Tags Activity
// @Accept json
// @Produce json
// @Param request body LogRequest true "Event (eventType, details)"
// @Success 201 {object} domain.Activity
// @Failure 400 {object} map[string]string
// @Router /api/activity [post]
func (h *Handler) Log(c *gin.Context) {
	var req LogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if fieldErrs := validator.Validate(req); fieldErrs != nil {
		response.Error(c, http.StatusBadRequest, "eventType is required")
		return
	}

	// user_id is present only when the caller went through auth.
	a, err := h.service.Log(c.Request.Context(), c.GetString("user_id"), req.EventType, req.Details)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to record activity")
		return
	}
	c.JSON(http.StatusCreated, a)
}

// List godoc
// @Summary List recent activity events
// @Tags Activity
// @Produce json
// @Security BearerAuth
// @Param event_type query string false "Filter by event type"
// @Param limit query int false "Max rows (default 50)"
// @Success 200 {array} domain.Activity
// @Router /api/activity [get]
func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	activities, err := h.service.List(c.Request.Context(), c.Query("event_type"), limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch activity")
		return
	}
	c.JSON(http.StatusOK, activities)
}
