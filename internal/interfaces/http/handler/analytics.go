package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/perfhub/backend/internal/application/performance"
	"github.com/perfhub/backend/internal/interfaces/http/middleware"
)

// AnalyticsHandler handles aggregation and reporting HTTP requests
type AnalyticsHandler struct {
	BaseHandler
	analyticsService *performance.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService *performance.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// Summary aggregates subject totals over a scope and period. The scope
// defaults to self; team and org scopes are narrowed to what the caller's
// role may see.
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req performance.SummaryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	summary, err := h.analyticsService.Summary(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// Breakdown returns one subject's per-indicator contributions for a period
func (h *AnalyticsHandler) Breakdown(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	subjectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid subject ID")
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		h.BadRequest(c, "Invalid month query parameter")
		return
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		h.BadRequest(c, "Invalid year query parameter")
		return
	}

	breakdown, err := h.analyticsService.Breakdown(c.Request.Context(), actor, subjectID, month, year)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, breakdown)
}

// Trend returns a subject's monthly score averages, oldest first. The
// window defaults to the configured trend length when months is absent.
func (h *AnalyticsHandler) Trend(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	subjectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid subject ID")
		return
	}

	months := 0
	if raw := c.Query("months"); raw != "" {
		months, err = strconv.Atoi(raw)
		if err != nil {
			h.BadRequest(c, "Invalid months query parameter")
			return
		}
	}

	trend, err := h.analyticsService.Trend(c.Request.Context(), actor, subjectID, months)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, trend)
}

// Performers ranks subjects in scope by average score for a period
func (h *AnalyticsHandler) Performers(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req performance.SummaryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	performers, err := h.analyticsService.Performers(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, performers)
}
