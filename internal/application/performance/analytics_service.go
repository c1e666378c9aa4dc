package performance

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/perfhub/backend/internal/domain/identity"
	"github.com/perfhub/backend/internal/domain/performance"
	"github.com/perfhub/backend/internal/domain/shared"
)

// DefaultTrendMonths bounds trend queries when no configuration overrides it.
const DefaultTrendMonths = 12

// performerListSize is how many subjects the top and bottom lists each hold.
const performerListSize = 5

// AnalyticsCache caches aggregated results. Get reports whether the key was
// present. Implementations handle serialization and expiry; a nil cache on
// the service disables caching entirely.
type AnalyticsCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
}

// AnalyticsService aggregates score records into summaries, breakdowns,
// trends, and rankings. All queries resolve their subject set through the
// visibility resolver on every call, so access changes apply immediately;
// only the computed aggregates are cached.
type AnalyticsService struct {
	scores      performance.ScoreRecordRepository
	indicators  performance.IndicatorRepository
	users       identity.UserRepository
	visibility  *VisibilityResolver
	cache       AnalyticsCache
	trendMonths int
}

// NewAnalyticsService creates a new AnalyticsService. cache may be nil;
// trendMonths <= 0 falls back to DefaultTrendMonths.
func NewAnalyticsService(
	scores performance.ScoreRecordRepository,
	indicators performance.IndicatorRepository,
	users identity.UserRepository,
	visibility *VisibilityResolver,
	cache AnalyticsCache,
	trendMonths int,
) *AnalyticsService {
	if trendMonths <= 0 {
		trendMonths = DefaultTrendMonths
	}
	return &AnalyticsService{
		scores:      scores,
		indicators:  indicators,
		users:       users,
		visibility:  visibility,
		cache:       cache,
		trendMonths: trendMonths,
	}
}

// Summary computes the distribution of the final scores recorded in a scope
// and period: record count, mean, min, max, and the p25/p50/p75/p90 cut
// points, folded over the individual records rather than per-subject rollups.
// An empty scope yields all-zero statistics rather than an error.
func (s *AnalyticsService) Summary(ctx context.Context, actor Actor, req SummaryRequest) (*SummaryResponse, error) {
	scope, err := ParseScope(req.Scope)
	if err != nil {
		return nil, err
	}
	period, err := performance.NewPeriod(req.Month, req.Year)
	if err != nil {
		return nil, err
	}

	cacheKey := s.summaryCacheKey(actor, scope, period)
	if s.cache != nil && cacheKey != "" {
		var cached SummaryResponse
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	subjectIDs, err := s.visibility.VisibleSubjects(ctx, actor, scope)
	if err != nil {
		return nil, err
	}

	recs, err := s.periodRecords(ctx, subjectIDs, period)
	if err != nil {
		return nil, err
	}

	sorted := make([]decimal.Decimal, 0, len(recs))
	for _, rec := range recs {
		sorted = append(sorted, rec.FinalScore)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })

	resp := &SummaryResponse{
		Scope:        string(scope),
		Month:        period.Month,
		Year:         period.Year,
		SubjectCount: len(subjectIDs),
		RecordCount:  len(sorted),
	}

	if len(sorted) > 0 {
		sum := decimal.Zero
		for _, score := range sorted {
			sum = sum.Add(score)
		}
		resp.Mean = sum.Div(decimal.NewFromInt(int64(len(sorted))))
		resp.Min = sorted[0]
		resp.Max = sorted[len(sorted)-1]
	}
	resp.Percentiles = PercentilesResponse{
		P25: percentile(sorted, 25),
		P50: percentile(sorted, 50),
		P75: percentile(sorted, 75),
		P90: percentile(sorted, 90),
	}

	if s.cache != nil && cacheKey != "" {
		_ = s.cache.Set(ctx, cacheKey, resp)
	}

	return resp, nil
}

// Breakdown details one subject's score for a period, one row per indicator
// the subject has a record for, together with the distribution of those
// per-indicator final scores: mean, population variance, and percentiles.
func (s *AnalyticsService) Breakdown(ctx context.Context, actor Actor, subjectID uuid.UUID, month, year int) (*BreakdownResponse, error) {
	if err := s.visibility.RequireView(ctx, actor, subjectID); err != nil {
		return nil, err
	}
	period, err := performance.NewPeriod(month, year)
	if err != nil {
		return nil, err
	}

	recs, err := s.scores.FindForSubjects(ctx, []uuid.UUID{subjectID}, performance.ScoreFilter{
		Month: &period.Month,
		Year:  &period.Year,
	})
	if err != nil {
		return nil, err
	}

	names, err := s.indicatorNames(ctx, recs)
	if err != nil {
		return nil, err
	}

	resp := &BreakdownResponse{
		SubjectID: subjectID,
		Month:     period.Month,
		Year:      period.Year,
		Total:     decimal.Zero,
		Items:     make([]BreakdownItem, 0, len(recs)),
	}
	for _, rec := range recs {
		resp.Total = resp.Total.Add(rec.FinalScore)
		resp.Items = append(resp.Items, BreakdownItem{
			IndicatorID:   rec.IndicatorID,
			IndicatorName: names[rec.IndicatorID],
			Weight:        rec.WeightSnapshot,
			Value:         rec.Value,
			Target:        rec.TargetSnapshot,
			FinalScore:    rec.FinalScore,
			Verified:      rec.Verified,
		})
	}
	sort.Slice(resp.Items, func(i, j int) bool {
		return resp.Items[i].IndicatorName < resp.Items[j].IndicatorName
	})

	sorted := make([]decimal.Decimal, 0, len(recs))
	for _, rec := range recs {
		sorted = append(sorted, rec.FinalScore)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })

	if n := len(sorted); n > 0 {
		count := decimal.NewFromInt(int64(n))
		resp.Mean = resp.Total.Div(count)

		sumSquares := decimal.Zero
		for _, score := range sorted {
			diff := score.Sub(resp.Mean)
			sumSquares = sumSquares.Add(diff.Mul(diff))
		}
		resp.Variance = sumSquares.Div(count)
	}
	resp.Percentiles = PercentilesResponse{
		P25: percentile(sorted, 25),
		P50: percentile(sorted, 50),
		P75: percentile(sorted, 75),
		P90: percentile(sorted, 90),
	}

	return resp, nil
}

// Trend returns a subject's average final score per period, oldest first.
// Only periods with at least one record appear; the series is capped to the
// most recent months buckets. months is clamped to the configured window.
func (s *AnalyticsService) Trend(ctx context.Context, actor Actor, subjectID uuid.UUID, months int) (*TrendResponse, error) {
	if err := s.visibility.RequireView(ctx, actor, subjectID); err != nil {
		return nil, err
	}

	if months <= 0 || months > s.trendMonths {
		months = s.trendMonths
	}

	recs, err := s.scores.FindForSubjects(ctx, []uuid.UUID{subjectID}, performance.ScoreFilter{})
	if err != nil {
		return nil, err
	}

	sums := make(map[performance.Period]decimal.Decimal)
	counts := make(map[performance.Period]int64)
	for _, rec := range recs {
		sums[rec.Period] = sums[rec.Period].Add(rec.FinalScore)
		counts[rec.Period]++
	}

	periods := make([]performance.Period, 0, len(sums))
	for p := range sums {
		periods = append(periods, p)
	}
	sort.Slice(periods, func(i, j int) bool {
		if periods[i].Year != periods[j].Year {
			return periods[i].Year < periods[j].Year
		}
		return periods[i].Month < periods[j].Month
	})
	if len(periods) > months {
		periods = periods[len(periods)-months:]
	}

	points := make([]TrendPoint, 0, len(periods))
	for _, p := range periods {
		points = append(points, TrendPoint{
			Month:   p.Month,
			Year:    p.Year,
			Average: sums[p].Div(decimal.NewFromInt(counts[p])),
		})
	}

	return &TrendResponse{
		SubjectID: subjectID,
		Months:    months,
		Points:    points,
	}, nil
}

// Performers ranks the subjects in scope by average final score for a period
// and returns the top and bottom five. Subjects without records are excluded
// from both lists.
func (s *AnalyticsService) Performers(ctx context.Context, actor Actor, req SummaryRequest) (*PerformersResponse, error) {
	scope, err := ParseScope(req.Scope)
	if err != nil {
		return nil, err
	}
	if scope == ScopeSelf {
		return nil, shared.NewDomainError("INVALID_SCOPE", "Rankings require team or org scope")
	}
	period, err := performance.NewPeriod(req.Month, req.Year)
	if err != nil {
		return nil, err
	}

	subjectIDs, err := s.visibility.VisibleSubjects(ctx, actor, scope)
	if err != nil {
		return nil, err
	}

	averages, err := s.subjectAverages(ctx, subjectIDs, period)
	if err != nil {
		return nil, err
	}

	scored := make([]uuid.UUID, 0, len(averages))
	for id := range averages {
		scored = append(scored, id)
	}
	users, err := s.users.FindByIDs(ctx, scored)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(users))
	for _, u := range users {
		names[u.ID] = u.DisplayName
	}

	entries := make([]PerformerEntry, 0, len(averages))
	for id, avg := range averages {
		entries = append(entries, PerformerEntry{
			SubjectID:   id,
			DisplayName: names[id],
			Average:     avg,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Average.Equal(entries[j].Average) {
			return entries[i].Average.GreaterThan(entries[j].Average)
		}
		return entries[i].DisplayName < entries[j].DisplayName
	})

	resp := &PerformersResponse{
		Scope: string(scope),
		Month: period.Month,
		Year:  period.Year,
		Top:   topN(entries, performerListSize),
	}

	bottom := make([]PerformerEntry, len(entries))
	copy(bottom, entries)
	for i, j := 0, len(bottom)-1; i < j; i, j = i+1, j-1 {
		bottom[i], bottom[j] = bottom[j], bottom[i]
	}
	resp.Bottom = topN(bottom, performerListSize)

	return resp, nil
}

// periodRecords loads every score record for the given subjects in one period.
func (s *AnalyticsService) periodRecords(ctx context.Context, subjectIDs []uuid.UUID, period performance.Period) ([]*performance.ScoreRecord, error) {
	if len(subjectIDs) == 0 {
		return nil, nil
	}
	return s.scores.FindForSubjects(ctx, subjectIDs, performance.ScoreFilter{
		Month: &period.Month,
		Year:  &period.Year,
	})
}

// subjectAverages computes the mean final score per subject for one period.
// Subjects with no records are absent from the result.
func (s *AnalyticsService) subjectAverages(ctx context.Context, subjectIDs []uuid.UUID, period performance.Period) (map[uuid.UUID]decimal.Decimal, error) {
	recs, err := s.periodRecords(ctx, subjectIDs, period)
	if err != nil {
		return nil, err
	}

	sums := make(map[uuid.UUID]decimal.Decimal)
	counts := make(map[uuid.UUID]int64)
	for _, rec := range recs {
		sums[rec.SubjectID] = sums[rec.SubjectID].Add(rec.FinalScore)
		counts[rec.SubjectID]++
	}

	averages := make(map[uuid.UUID]decimal.Decimal, len(sums))
	for id, sum := range sums {
		averages[id] = sum.Div(decimal.NewFromInt(counts[id]))
	}
	return averages, nil
}

func (s *AnalyticsService) indicatorNames(ctx context.Context, recs []*performance.ScoreRecord) (map[uuid.UUID]string, error) {
	seen := make(map[uuid.UUID]struct{}, len(recs))
	ids := make([]uuid.UUID, 0, len(recs))
	for _, rec := range recs {
		if _, ok := seen[rec.IndicatorID]; !ok {
			seen[rec.IndicatorID] = struct{}{}
			ids = append(ids, rec.IndicatorID)
		}
	}
	if len(ids) == 0 {
		return map[uuid.UUID]string{}, nil
	}

	inds, err := s.indicators.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(inds))
	for _, ind := range inds {
		names[ind.ID] = ind.Name
	}
	return names, nil
}

// summaryCacheKey builds a cache key for scope-level aggregates. Self scope
// is never cached: it is cheap to compute and keyed to one person.
func (s *AnalyticsService) summaryCacheKey(actor Actor, scope Scope, period performance.Period) string {
	switch scope {
	case ScopeTeam:
		return fmt.Sprintf("analytics:summary:team:%s:%s", actor.DepartmentID, period)
	case ScopeOrg:
		return fmt.Sprintf("analytics:summary:org:%s", period)
	default:
		return ""
	}
}

// percentile returns the pth percentile of an ascending-sorted slice using
// the nearest-rank rule with a floored index: element floor(p*N/100), clamped
// to the last element. Empty input yields zero.
func percentile(sorted []decimal.Decimal, p int) decimal.Decimal {
	if len(sorted) == 0 {
		return decimal.Zero
	}
	idx := p * len(sorted) / 100
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func topN(entries []PerformerEntry, n int) []PerformerEntry {
	if len(entries) < n {
		n = len(entries)
	}
	out := make([]PerformerEntry, n)
	copy(out, entries[:n])
	return out
}
