package performance

import (
	"fmt"
	"time"

	"github.com/perfhub/backend/internal/domain/shared"
)

// Period identifies one scoring cycle as a (month, year) pair.
type Period struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// NewPeriod creates a validated period
func NewPeriod(month, year int) (Period, error) {
	p := Period{Month: month, Year: year}
	if err := p.Validate(); err != nil {
		return Period{}, err
	}
	return p, nil
}

// CurrentPeriod returns the period containing the given time
func CurrentPeriod(now time.Time) Period {
	return Period{Month: int(now.Month()), Year: now.Year()}
}

// Validate checks the period fields are in range
func (p Period) Validate() error {
	if p.Month < 1 || p.Month > 12 {
		return shared.NewDomainError("INVALID_PERIOD", "Period month must be between 1 and 12")
	}
	if p.Year < 2000 || p.Year > 2200 {
		return shared.NewDomainError("INVALID_PERIOD", "Period year must be between 2000 and 2200")
	}
	return nil
}

// IsZero reports whether the period is unset
func (p Period) IsZero() bool {
	return p.Month == 0 && p.Year == 0
}

// Before reports whether p is chronologically before other
func (p Period) Before(other Period) bool {
	if p.Year != other.Year {
		return p.Year < other.Year
	}
	return p.Month < other.Month
}

// String returns the period in YYYY-MM form
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}
