package performance

import (
	"github.com/shopspring/decimal"

	"github.com/perfhub/backend/internal/domain/shared"
)

var hundred = decimal.NewFromInt(100)

// ComputeFinalScore converts one raw measurement into its weighted score
// contribution. Achievement is value/target expressed as a percentage and
// capped at 100, so over-achievement never earns more than the indicator's
// own weight; the weighted result is clamped to [0, 100].
//
// The target is guaranteed positive by indicator validation; the check here
// is defensive so a bad stored definition fails loudly instead of producing
// a division artifact.
func ComputeFinalScore(value, target decimal.Decimal, weight int) (decimal.Decimal, error) {
	if value.IsNegative() {
		return decimal.Zero, shared.NewDomainError("INVALID_VALUE", "Score value cannot be negative")
	}
	if !target.IsPositive() {
		return decimal.Zero, shared.NewDomainError("INVALID_TARGET", "Indicator target must be greater than zero")
	}
	if weight < 0 || weight > MaxRoleWeight {
		return decimal.Zero, shared.NewDomainError("INVALID_WEIGHT", "Indicator weight must be between 0 and 100")
	}

	achievement := value.Div(target).Mul(hundred)
	if achievement.GreaterThan(hundred) {
		achievement = hundred
	}

	final := achievement.Mul(decimal.NewFromInt(int64(weight))).Div(hundred)

	if final.IsNegative() {
		return decimal.Zero, nil
	}
	if final.GreaterThan(hundred) {
		return hundred, nil
	}
	return final, nil
}
