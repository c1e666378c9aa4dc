package performance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perfhub/backend/internal/domain/identity"
)

func newTestIndicator(t *testing.T) *Indicator {
	t.Helper()
	ind, err := NewIndicator("Sales", 20, KindQuantitative, d("90"), identity.RoleEmployee)
	require.NoError(t, err)
	return ind
}

func TestNewScoreRecord(t *testing.T) {
	period := Period{Month: 3, Year: 2026}

	t.Run("snapshots indicator and computes final score", func(t *testing.T) {
		ind := newTestIndicator(t)
		subjectID := uuid.New()

		rec, err := NewScoreRecord(subjectID, ind, d("99"), period)
		require.NoError(t, err)

		assert.Equal(t, subjectID, rec.SubjectID)
		assert.Equal(t, ind.ID, rec.IndicatorID)
		assert.True(t, rec.TargetSnapshot.Equal(d("90")))
		assert.Equal(t, 20, rec.WeightSnapshot)
		assert.Equal(t, KindQuantitative, rec.Kind)
		assert.Equal(t, period, rec.Period)
		assert.True(t, rec.FinalScore.Equal(d("20")))
		assert.False(t, rec.Verified)
		assert.Nil(t, rec.VerifiedBy)
		assert.Nil(t, rec.VerifiedAt)
	})

	t.Run("publishes ScoreSubmitted event", func(t *testing.T) {
		rec, err := NewScoreRecord(uuid.New(), newTestIndicator(t), d("45"), period)
		require.NoError(t, err)

		events := rec.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeScoreSubmitted, events[0].EventType())
	})

	t.Run("fails without subject", func(t *testing.T) {
		_, err := NewScoreRecord(uuid.Nil, newTestIndicator(t), d("45"), period)
		require.Error(t, err)
	})

	t.Run("fails with invalid period", func(t *testing.T) {
		_, err := NewScoreRecord(uuid.New(), newTestIndicator(t), d("45"), Period{Month: 13, Year: 2026})
		require.Error(t, err)
	})

	t.Run("fails with negative value", func(t *testing.T) {
		_, err := NewScoreRecord(uuid.New(), newTestIndicator(t), d("-1"), period)
		require.Error(t, err)
	})
}

func TestScoreRecord_UpdateValue(t *testing.T) {
	period := Period{Month: 3, Year: 2026}

	t.Run("recomputes final score", func(t *testing.T) {
		rec, err := NewScoreRecord(uuid.New(), newTestIndicator(t), d("45"), period)
		require.NoError(t, err)
		assert.True(t, rec.FinalScore.Equal(d("10")))

		require.NoError(t, rec.UpdateValue(d("90")))
		assert.True(t, rec.FinalScore.Equal(d("20")))
		assert.Equal(t, 2, rec.GetVersion())
	})

	t.Run("rejects edits on verified records", func(t *testing.T) {
		rec, err := NewScoreRecord(uuid.New(), newTestIndicator(t), d("45"), period)
		require.NoError(t, err)
		require.NoError(t, rec.Verify(uuid.New(), time.Now()))

		err = rec.UpdateValue(d("90"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "verified")
		assert.True(t, rec.FinalScore.Equal(d("10")), "final score must stay frozen")
	})

	t.Run("rejects negative value", func(t *testing.T) {
		rec, err := NewScoreRecord(uuid.New(), newTestIndicator(t), d("45"), period)
		require.NoError(t, err)
		require.Error(t, rec.UpdateValue(d("-2")))
	})
}

func TestScoreRecord_Verify(t *testing.T) {
	period := Period{Month: 3, Year: 2026}

	t.Run("marks record verified", func(t *testing.T) {
		rec, err := NewScoreRecord(uuid.New(), newTestIndicator(t), d("45"), period)
		require.NoError(t, err)

		verifier := uuid.New()
		at := time.Now()
		require.NoError(t, rec.Verify(verifier, at))

		assert.True(t, rec.Verified)
		require.NotNil(t, rec.VerifiedBy)
		assert.Equal(t, verifier, *rec.VerifiedBy)
		require.NotNil(t, rec.VerifiedAt)
		assert.Equal(t, at, *rec.VerifiedAt)

		events := rec.GetDomainEvents()
		require.Len(t, events, 2)
		assert.Equal(t, EventTypeScoreVerified, events[1].EventType())
	})

	t.Run("double verification fails and keeps the original timestamp", func(t *testing.T) {
		rec, err := NewScoreRecord(uuid.New(), newTestIndicator(t), d("45"), period)
		require.NoError(t, err)

		first := uuid.New()
		firstAt := time.Now().Add(-time.Hour)
		require.NoError(t, rec.Verify(first, firstAt))

		err = rec.Verify(uuid.New(), time.Now())
		assert.ErrorIs(t, err, ErrAlreadyVerified)
		assert.Equal(t, first, *rec.VerifiedBy)
		assert.Equal(t, firstAt, *rec.VerifiedAt)
	})

	t.Run("fails without verifier", func(t *testing.T) {
		rec, err := NewScoreRecord(uuid.New(), newTestIndicator(t), d("45"), period)
		require.NoError(t, err)
		require.Error(t, rec.Verify(uuid.Nil, time.Now()))
	})
}

func TestPeriod(t *testing.T) {
	t.Run("validates month and year ranges", func(t *testing.T) {
		_, err := NewPeriod(0, 2026)
		require.Error(t, err)
		_, err = NewPeriod(13, 2026)
		require.Error(t, err)
		_, err = NewPeriod(6, 1999)
		require.Error(t, err)

		p, err := NewPeriod(6, 2026)
		require.NoError(t, err)
		assert.Equal(t, "2026-06", p.String())
	})

	t.Run("orders chronologically", func(t *testing.T) {
		assert.True(t, Period{Month: 12, Year: 2025}.Before(Period{Month: 1, Year: 2026}))
		assert.True(t, Period{Month: 1, Year: 2026}.Before(Period{Month: 2, Year: 2026}))
		assert.False(t, Period{Month: 2, Year: 2026}.Before(Period{Month: 2, Year: 2026}))
	})
}
