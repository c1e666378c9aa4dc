package performance

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/perfhub/backend/internal/domain/identity"
	"github.com/perfhub/backend/internal/domain/shared"
)

// MaxRoleWeight is the weight budget shared by all active indicators of a role.
const MaxRoleWeight = 100

// IndicatorKind classifies how an indicator is measured
type IndicatorKind string

const (
	KindQuantitative IndicatorKind = "quantitative"
	KindQualitative  IndicatorKind = "qualitative"
)

// IsValid reports whether the kind is one of the known kinds
func (k IndicatorKind) IsValid() bool {
	return k == KindQuantitative || k == KindQualitative
}

// Indicator is a named, weighted performance measure scoped to a role.
// The sum of weights over a role's active indicators must never exceed
// MaxRoleWeight; that budget is enforced by the weight ledger at save time,
// not here.
type Indicator struct {
	shared.BaseAggregateRoot
	Name     string
	Weight   int // share of the role's budget, 0-100
	Kind     IndicatorKind
	Unit     string
	Target   decimal.Decimal // always > 0
	Role     identity.Role
	Category string
	Active   bool
}

// NewIndicator creates a new indicator with required fields
func NewIndicator(name string, weight int, kind IndicatorKind, target decimal.Decimal, role identity.Role) (*Indicator, error) {
	if err := validateIndicatorName(name); err != nil {
		return nil, err
	}
	if err := validateWeight(weight); err != nil {
		return nil, err
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Indicator kind must be quantitative or qualitative")
	}
	if !target.IsPositive() {
		return nil, shared.NewDomainError("INVALID_TARGET", "Indicator target must be greater than zero")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role: "+string(role))
	}

	ind := &Indicator{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Weight:            weight,
		Kind:              kind,
		Target:            target,
		Role:              role,
		Active:            true,
	}

	ind.AddDomainEvent(NewIndicatorCreatedEvent(ind))

	return ind, nil
}

// Update updates the indicator's definition fields. Weight budget enforcement
// happens in the weight ledger before the updated indicator is saved.
func (i *Indicator) Update(name string, weight int, target decimal.Decimal) error {
	if err := validateIndicatorName(name); err != nil {
		return err
	}
	if err := validateWeight(weight); err != nil {
		return err
	}
	if !target.IsPositive() {
		return shared.NewDomainError("INVALID_TARGET", "Indicator target must be greater than zero")
	}

	i.Name = strings.TrimSpace(name)
	i.Weight = weight
	i.Target = target
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	i.AddDomainEvent(NewIndicatorUpdatedEvent(i))

	return nil
}

// SetUnit sets the measurement unit label
func (i *Indicator) SetUnit(unit string) {
	i.Unit = strings.TrimSpace(unit)
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
}

// SetCategory sets the display category
func (i *Indicator) SetCategory(category string) {
	i.Category = strings.TrimSpace(category)
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
}

// Deactivate soft-deletes the indicator. Inactive indicators no longer count
// against the role's weight budget and stop accepting submissions.
func (i *Indicator) Deactivate() error {
	if !i.Active {
		return shared.NewDomainError("ALREADY_INACTIVE", "Indicator is already inactive")
	}

	i.Active = false
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// Activate re-activates a soft-deleted indicator. The caller must re-reserve
// the indicator's weight in the ledger before saving.
func (i *Indicator) Activate() error {
	if i.Active {
		return shared.NewDomainError("ALREADY_ACTIVE", "Indicator is already active")
	}

	i.Active = true
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// AppliesTo reports whether the indicator applies to a subject with the given role
func (i *Indicator) AppliesTo(role identity.Role) bool {
	return i.Active && i.Role == role
}

func validateIndicatorName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Indicator name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Indicator name cannot exceed 200 characters")
	}
	return nil
}

func validateWeight(weight int) error {
	if weight < 0 || weight > MaxRoleWeight {
		return shared.NewDomainError("INVALID_WEIGHT", "Indicator weight must be between 0 and 100")
	}
	return nil
}
