package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/perfhub/backend/internal/application/identity"
	domainidentity "github.com/perfhub/backend/internal/domain/identity"
	"github.com/perfhub/backend/internal/interfaces/http/middleware"
)

// DepartmentHandler handles department management HTTP requests
type DepartmentHandler struct {
	BaseHandler
	departmentService *identity.DepartmentService
}

// NewDepartmentHandler creates a new department handler
func NewDepartmentHandler(departmentService *identity.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{
		departmentService: departmentService,
	}
}

// Create registers a new department
func (h *DepartmentHandler) Create(c *gin.Context) {
	actorRole, err := getActorRole(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req identity.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	dept, err := h.departmentService.Create(c.Request.Context(), actorRole, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, dept)
}

// Get returns a single department by ID
func (h *DepartmentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid department ID")
		return
	}

	dept, err := h.departmentService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dept)
}

// List returns all departments
func (h *DepartmentHandler) List(c *gin.Context) {
	depts, err := h.departmentService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, depts)
}

// Update renames a department or changes its description
func (h *DepartmentHandler) Update(c *gin.Context) {
	actorRole, err := getActorRole(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid department ID")
		return
	}

	var req identity.UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	dept, err := h.departmentService.Update(c.Request.Context(), actorRole, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dept)
}

// Activate re-enables a deactivated department
func (h *DepartmentHandler) Activate(c *gin.Context) {
	h.setStatus(c, h.departmentService.Activate)
}

// Deactivate disables a department
func (h *DepartmentHandler) Deactivate(c *gin.Context) {
	h.setStatus(c, h.departmentService.Deactivate)
}

func (h *DepartmentHandler) setStatus(c *gin.Context, change func(ctx context.Context, actorRole domainidentity.Role, id uuid.UUID) (*identity.DepartmentResponse, error)) {
	actorRole, err := getActorRole(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid department ID")
		return
	}

	dept, err := change(c.Request.Context(), actorRole, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dept)
}
