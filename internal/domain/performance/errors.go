package performance

import (
	"fmt"

	"github.com/perfhub/backend/internal/domain/identity"
	"github.com/perfhub/backend/internal/domain/shared"
)

// WeightExceededError is returned when reserving weight for an indicator would
// push the role's active weight total over MaxRoleWeight. WouldBeTotal carries
// the total the reservation would have produced so callers can report it.
type WeightExceededError struct {
	Role         identity.Role
	WouldBeTotal int
	domainErr    *shared.DomainError
}

// NewWeightExceededError creates a WeightExceededError for the given role and total
func NewWeightExceededError(role identity.Role, wouldBeTotal int) *WeightExceededError {
	return &WeightExceededError{
		Role:         role,
		WouldBeTotal: wouldBeTotal,
		domainErr: shared.NewDomainError("WEIGHT_EXCEEDED",
			fmt.Sprintf("Active indicator weights for role %s would total %d%%, exceeding the %d%% budget", role, wouldBeTotal, MaxRoleWeight)),
	}
}

// Error implements the error interface
func (e *WeightExceededError) Error() string {
	return e.domainErr.Message
}

// Unwrap exposes the underlying domain error so errors.As can normalize it
// to an HTTP response
func (e *WeightExceededError) Unwrap() error {
	return e.domainErr
}

// Domain errors for score submission and verification
var (
	ErrDuplicatePeriod   = shared.NewDomainError("DUPLICATE_PERIOD", "A score already exists for this subject, indicator, and period")
	ErrRoleMismatch      = shared.NewDomainError("ROLE_MISMATCH", "Indicator does not apply to the subject's role")
	ErrAlreadyVerified   = shared.NewDomainError("ALREADY_VERIFIED", "Score record is already verified")
	ErrIndicatorNotFound = shared.NewDomainError("NOT_FOUND", "Indicator not found")
)
