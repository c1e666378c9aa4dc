package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/perfhub/backend/internal/application/performance"
	"github.com/perfhub/backend/internal/interfaces/http/middleware"
)

// ScoreHandler handles score record HTTP requests
type ScoreHandler struct {
	BaseHandler
	scoreService *performance.ScoreService
}

// NewScoreHandler creates a new score handler
func NewScoreHandler(scoreService *performance.ScoreService) *ScoreHandler {
	return &ScoreHandler{
		scoreService: scoreService,
	}
}

// Submit records a measurement for a subject, indicator, and period.
// One record per subject, indicator, and month: a second submission for
// the same period returns a 409.
func (h *ScoreHandler) Submit(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req performance.SubmitScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	rec, err := h.scoreService.Submit(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, rec)
}

// Get returns a single score record, subject to the caller's visibility
func (h *ScoreHandler) Get(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid score record ID")
		return
	}

	rec, err := h.scoreService.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rec)
}

// List returns score records visible to the caller, filtered and paged
func (h *ScoreHandler) List(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	filter := performance.ScoreListFilter{Page: 1, PageSize: 20}
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	recs, total, err := h.scoreService.List(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, recs, total, filter.Page, filter.PageSize)
}

// Update corrects an unverified measurement. Verified records are
// immutable and answer with a 422.
func (h *ScoreHandler) Update(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid score record ID")
		return
	}

	var req performance.UpdateScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	rec, err := h.scoreService.UpdateValue(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rec)
}

// Verify locks a score record. Only managers and admins may verify, and
// a record cannot be verified twice.
func (h *ScoreHandler) Verify(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid score record ID")
		return
	}

	rec, err := h.scoreService.Verify(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rec)
}
