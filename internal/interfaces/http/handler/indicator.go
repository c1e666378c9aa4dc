package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/perfhub/backend/internal/application/performance"
	"github.com/perfhub/backend/internal/interfaces/http/middleware"
)

// IndicatorHandler handles KPI indicator HTTP requests
type IndicatorHandler struct {
	BaseHandler
	indicatorService *performance.IndicatorService
}

// NewIndicatorHandler creates a new indicator handler
func NewIndicatorHandler(indicatorService *performance.IndicatorService) *IndicatorHandler {
	return &IndicatorHandler{
		indicatorService: indicatorService,
	}
}

// Create defines a new indicator. The role's combined active weight must
// stay within its budget, so creation can fail with a 422 when the new
// weight would push the total over 100.
func (h *IndicatorHandler) Create(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req performance.CreateIndicatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	ind, err := h.indicatorService.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, ind)
}

// Get returns a single indicator by ID
func (h *IndicatorHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid indicator ID")
		return
	}

	ind, err := h.indicatorService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ind)
}

// List returns indicators, optionally filtered by role and including
// inactive definitions
func (h *IndicatorHandler) List(c *gin.Context) {
	var filter performance.IndicatorListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	inds, err := h.indicatorService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, inds)
}

// Update modifies an indicator's name, weight, target, unit, or category
func (h *IndicatorHandler) Update(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid indicator ID")
		return
	}

	var req performance.UpdateIndicatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	ind, err := h.indicatorService.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ind)
}

// Activate re-enables an indicator. Its weight counts against the role
// budget again, so activation can fail with a 422.
func (h *IndicatorHandler) Activate(c *gin.Context) {
	h.setStatus(c, h.indicatorService.Activate)
}

// Deactivate retires an indicator. Existing score records keep their
// snapshots; new submissions against it are rejected.
func (h *IndicatorHandler) Deactivate(c *gin.Context) {
	h.setStatus(c, h.indicatorService.Deactivate)
}

// Allocation reports a role's weight budget usage
func (h *IndicatorHandler) Allocation(c *gin.Context) {
	role := c.Query("role")
	if role == "" {
		h.BadRequest(c, "Missing role query parameter")
		return
	}

	alloc, err := h.indicatorService.Allocation(c.Request.Context(), role)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, alloc)
}

func (h *IndicatorHandler) setStatus(c *gin.Context, change func(ctx context.Context, actor performance.Actor, id uuid.UUID) (*performance.IndicatorResponse, error)) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid indicator ID")
		return
	}

	ind, err := change(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ind)
}
