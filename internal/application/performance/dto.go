package performance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/perfhub/backend/internal/domain/performance"
)

// CreateIndicatorRequest represents a request to define a new indicator
type CreateIndicatorRequest struct {
	Name     string          `json:"name" binding:"required,min=1,max=200"`
	Weight   int             `json:"weight" binding:"min=0,max=100"`
	Kind     string          `json:"kind" binding:"required,oneof=quantitative qualitative"`
	Unit     string          `json:"unit" binding:"max=50"`
	Target   decimal.Decimal `json:"target" binding:"required"`
	Role     string          `json:"role" binding:"required,oneof=employee manager admin"`
	Category string          `json:"category" binding:"max=100"`
}

// UpdateIndicatorRequest represents a request to update an indicator definition
type UpdateIndicatorRequest struct {
	Name     *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Weight   *int             `json:"weight" binding:"omitempty,min=0,max=100"`
	Target   *decimal.Decimal `json:"target"`
	Unit     *string          `json:"unit" binding:"omitempty,max=50"`
	Category *string          `json:"category" binding:"omitempty,max=100"`
}

// IndicatorListFilter represents filter options for the indicator list
type IndicatorListFilter struct {
	Role            string `form:"role" binding:"omitempty,oneof=employee manager admin"`
	IncludeInactive bool   `form:"include_inactive"`
}

// IndicatorResponse represents an indicator in API responses
type IndicatorResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Weight    int             `json:"weight"`
	Kind      string          `json:"kind"`
	Unit      string          `json:"unit"`
	Target    decimal.Decimal `json:"target"`
	Role      string          `json:"role"`
	Category  string          `json:"category"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Version   int             `json:"version"`
}

// WeightAllocationResponse reports a role's weight budget usage
type WeightAllocationResponse struct {
	Role           string `json:"role"`
	Allocated      int    `json:"allocated"`
	Budget         int    `json:"budget"`
	Remaining      int    `json:"remaining"`
	FullyAllocated bool   `json:"fully_allocated"`
}

// SubmitScoreRequest represents a request to record a measurement
type SubmitScoreRequest struct {
	SubjectID   uuid.UUID       `json:"subject_id" binding:"required"`
	IndicatorID uuid.UUID       `json:"indicator_id" binding:"required"`
	Value       decimal.Decimal `json:"value"`
	Month       int             `json:"month" binding:"required,min=1,max=12"`
	Year        int             `json:"year" binding:"required,min=2000,max=2200"`
}

// UpdateScoreRequest represents a request to correct an unverified measurement
type UpdateScoreRequest struct {
	Value decimal.Decimal `json:"value"`
}

// ScoreListFilter represents filter options for the score record list
type ScoreListFilter struct {
	SubjectID   *uuid.UUID `form:"subject_id"`
	IndicatorID *uuid.UUID `form:"indicator_id"`
	Month       *int       `form:"month" binding:"omitempty,min=1,max=12"`
	Year        *int       `form:"year" binding:"omitempty,min=2000,max=2200"`
	Verified    *bool      `form:"verified"`
	Page        int        `form:"page" binding:"min=1"`
	PageSize    int        `form:"page_size" binding:"min=1,max=100"`
}

// ScoreRecordResponse represents a score record in API responses
type ScoreRecordResponse struct {
	ID             uuid.UUID       `json:"id"`
	SubjectID      uuid.UUID       `json:"subject_id"`
	IndicatorID    uuid.UUID       `json:"indicator_id"`
	Value          decimal.Decimal `json:"value"`
	TargetSnapshot decimal.Decimal `json:"target_snapshot"`
	WeightSnapshot int             `json:"weight_snapshot"`
	Kind           string          `json:"kind"`
	Month          int             `json:"month"`
	Year           int             `json:"year"`
	FinalScore     decimal.Decimal `json:"final_score"`
	Verified       bool            `json:"verified"`
	VerifiedBy     *uuid.UUID      `json:"verified_by,omitempty"`
	VerifiedAt     *time.Time      `json:"verified_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// SummaryRequest represents an analytics summary query
type SummaryRequest struct {
	Scope string `form:"scope" binding:"omitempty,oneof=self team org"`
	Month int    `form:"month" binding:"required,min=1,max=12"`
	Year  int    `form:"year" binding:"required,min=2000,max=2200"`
}

// PercentilesResponse holds the distribution cut points of final scores
type PercentilesResponse struct {
	P25 decimal.Decimal `json:"p25"`
	P50 decimal.Decimal `json:"p50"`
	P75 decimal.Decimal `json:"p75"`
	P90 decimal.Decimal `json:"p90"`
}

// SummaryResponse aggregates the final scores recorded in a scope and period.
// RecordCount is the number of score records the statistics fold over.
type SummaryResponse struct {
	Scope        string              `json:"scope"`
	Month        int                 `json:"month"`
	Year         int                 `json:"year"`
	SubjectCount int                 `json:"subject_count"`
	RecordCount  int                 `json:"record_count"`
	Mean         decimal.Decimal     `json:"mean"`
	Min          decimal.Decimal     `json:"min"`
	Max          decimal.Decimal     `json:"max"`
	Percentiles  PercentilesResponse `json:"percentiles"`
}

// BreakdownItem is one indicator's contribution to a subject's total
type BreakdownItem struct {
	IndicatorID   uuid.UUID       `json:"indicator_id"`
	IndicatorName string          `json:"indicator_name"`
	Weight        int             `json:"weight"`
	Value         decimal.Decimal `json:"value"`
	Target        decimal.Decimal `json:"target"`
	FinalScore    decimal.Decimal `json:"final_score"`
	Verified      bool            `json:"verified"`
}

// BreakdownResponse details a single subject's score for one period. Mean,
// Variance, and Percentiles describe the distribution of the per-indicator
// final scores; Variance is the population variance.
type BreakdownResponse struct {
	SubjectID   uuid.UUID           `json:"subject_id"`
	Month       int                 `json:"month"`
	Year        int                 `json:"year"`
	Total       decimal.Decimal     `json:"total"`
	Mean        decimal.Decimal     `json:"mean"`
	Variance    decimal.Decimal     `json:"variance"`
	Percentiles PercentilesResponse `json:"percentiles"`
	Items       []BreakdownItem     `json:"items"`
}

// TrendPoint is a subject's average final score for one period
type TrendPoint struct {
	Month   int             `json:"month"`
	Year    int             `json:"year"`
	Average decimal.Decimal `json:"average"`
}

// TrendResponse is a subject's per-period averages, oldest first
type TrendResponse struct {
	SubjectID uuid.UUID    `json:"subject_id"`
	Months    int          `json:"months"`
	Points    []TrendPoint `json:"points"`
}

// PerformerEntry ranks one subject by average final score
type PerformerEntry struct {
	SubjectID   uuid.UUID       `json:"subject_id"`
	DisplayName string          `json:"display_name"`
	Average     decimal.Decimal `json:"average"`
}

// PerformersResponse lists the best and worst subjects in scope for a period
type PerformersResponse struct {
	Scope  string           `json:"scope"`
	Month  int              `json:"month"`
	Year   int              `json:"year"`
	Top    []PerformerEntry `json:"top"`
	Bottom []PerformerEntry `json:"bottom"`
}

// ToIndicatorResponse converts a domain Indicator to IndicatorResponse
func ToIndicatorResponse(ind *performance.Indicator) IndicatorResponse {
	return IndicatorResponse{
		ID:        ind.ID,
		Name:      ind.Name,
		Weight:    ind.Weight,
		Kind:      string(ind.Kind),
		Unit:      ind.Unit,
		Target:    ind.Target,
		Role:      string(ind.Role),
		Category:  ind.Category,
		Active:    ind.Active,
		CreatedAt: ind.CreatedAt,
		UpdatedAt: ind.UpdatedAt,
		Version:   ind.GetVersion(),
	}
}

// ToScoreRecordResponse converts a domain ScoreRecord to ScoreRecordResponse
func ToScoreRecordResponse(rec *performance.ScoreRecord) ScoreRecordResponse {
	return ScoreRecordResponse{
		ID:             rec.ID,
		SubjectID:      rec.SubjectID,
		IndicatorID:    rec.IndicatorID,
		Value:          rec.Value,
		TargetSnapshot: rec.TargetSnapshot,
		WeightSnapshot: rec.WeightSnapshot,
		Kind:           string(rec.Kind),
		Month:          rec.Period.Month,
		Year:           rec.Period.Year,
		FinalScore:     rec.FinalScore,
		Verified:       rec.Verified,
		VerifiedBy:     rec.VerifiedBy,
		VerifiedAt:     rec.VerifiedAt,
		CreatedAt:      rec.CreatedAt,
		UpdatedAt:      rec.UpdatedAt,
	}
}
