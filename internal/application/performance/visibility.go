package performance

import (
	"context"

	"github.com/google/uuid"

	"github.com/perfhub/backend/internal/domain/identity"
	"github.com/perfhub/backend/internal/domain/shared"
)

// Actor identifies the authenticated caller of an operation. It carries just
// the claims needed for authorization decisions.
type Actor struct {
	ID           uuid.UUID
	Role         identity.Role
	DepartmentID uuid.UUID
}

// VisibilityResolver decides which subjects an actor may see. Everyone sees
// themselves and their own department; record-level reads of another subject
// need a manager in the same department or org-wide read; org scope is
// admin-only. The resolver is stateless and resolves from current data on
// every call, so role or department changes take effect immediately.
type VisibilityResolver struct {
	users identity.UserRepository
}

// NewVisibilityResolver creates a new VisibilityResolver.
func NewVisibilityResolver(users identity.UserRepository) *VisibilityResolver {
	return &VisibilityResolver{users: users}
}

// CanView reports whether the actor may read data about the given subject.
func (r *VisibilityResolver) CanView(ctx context.Context, actor Actor, subjectID uuid.UUID) (bool, error) {
	if actor.ID == subjectID {
		return true, nil
	}
	if actor.Role.HasOrgWideRead() {
		return true, nil
	}
	if actor.Role != identity.RoleManager {
		return false, nil
	}

	subject, err := r.users.FindByID(ctx, subjectID)
	if err != nil {
		return false, err
	}
	return subject.DepartmentID == actor.DepartmentID, nil
}

// RequireView is CanView returning shared.ErrForbidden on denial.
func (r *VisibilityResolver) RequireView(ctx context.Context, actor Actor, subjectID uuid.UUID) error {
	ok, err := r.CanView(ctx, actor, subjectID)
	if err != nil {
		return err
	}
	if !ok {
		return shared.ErrForbidden
	}
	return nil
}

// VisibleSubjects resolves the full set of subject IDs the actor may see for
// the given scope. Team scope is always the actor's own department including
// the actor; the department restriction, not a role gate, is what bounds it.
// Org scope requires org-wide read.
func (r *VisibilityResolver) VisibleSubjects(ctx context.Context, actor Actor, scope Scope) ([]uuid.UUID, error) {
	switch scope {
	case ScopeSelf:
		return []uuid.UUID{actor.ID}, nil

	case ScopeTeam:
		return r.users.FindIDsByDepartment(ctx, actor.DepartmentID)

	case ScopeOrg:
		if !actor.Role.HasOrgWideRead() {
			return nil, shared.ErrForbidden
		}
		return r.users.FindAllIDs(ctx)

	default:
		return nil, shared.NewDomainError("INVALID_SCOPE", "Scope must be one of: self, team, org")
	}
}

// Scope names an aggregation boundary for analytics queries.
type Scope string

const (
	ScopeSelf Scope = "self"
	ScopeTeam Scope = "team"
	ScopeOrg  Scope = "org"
)

// ParseScope validates and converts a string into a Scope. Empty defaults to
// self.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case "":
		return ScopeSelf, nil
	case ScopeSelf, ScopeTeam, ScopeOrg:
		return Scope(s), nil
	default:
		return "", shared.NewDomainError("INVALID_SCOPE", "Scope must be one of: self, team, org")
	}
}
