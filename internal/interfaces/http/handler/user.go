package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/perfhub/backend/internal/application/identity"
	domainidentity "github.com/perfhub/backend/internal/domain/identity"
	"github.com/perfhub/backend/internal/interfaces/http/middleware"
)

// UserHandler handles user management HTTP requests
type UserHandler struct {
	BaseHandler
	userService *identity.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *identity.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// Create registers a new user account
func (h *UserHandler) Create(c *gin.Context) {
	actorRole, err := getActorRole(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req identity.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	user, err := h.userService.Create(c.Request.Context(), actorRole, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, user)
}

// Get returns a single user by ID
func (h *UserHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// List returns a page of users
func (h *UserHandler) List(c *gin.Context) {
	filter := identity.UserListFilter{Page: 1, PageSize: 20}
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	users, total, err := h.userService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, users, total, filter.Page, filter.PageSize)
}

// Update modifies a user's profile, role, or department
func (h *UserHandler) Update(c *gin.Context) {
	actorRole, err := getActorRole(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	var req identity.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	user, err := h.userService.Update(c.Request.Context(), actorRole, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// Activate re-enables a deactivated user account
func (h *UserHandler) Activate(c *gin.Context) {
	h.setStatus(c, h.userService.Activate)
}

// Deactivate disables a user account. Deactivated users cannot log in and
// are excluded from analytics aggregation.
func (h *UserHandler) Deactivate(c *gin.Context) {
	h.setStatus(c, h.userService.Deactivate)
}

func (h *UserHandler) setStatus(c *gin.Context, change func(ctx context.Context, actorRole domainidentity.Role, id uuid.UUID) (*identity.UserResponse, error)) {
	actorRole, err := getActorRole(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := change(c.Request.Context(), actorRole, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}
