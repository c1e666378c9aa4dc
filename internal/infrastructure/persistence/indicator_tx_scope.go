package persistence

import (
	"context"
	"hash/fnv"

	"gorm.io/gorm"

	appperf "github.com/perfhub/backend/internal/application/performance"
	"github.com/perfhub/backend/internal/domain/identity"
	"github.com/perfhub/backend/internal/domain/performance"
)

// GormIndicatorTxScope implements IndicatorTxScope using GORM transactions.
// It serializes weight budget checks per role with a Postgres transaction-level
// advisory lock, so two concurrent saves against the same role cannot both
// read the old weight sum and overshoot the budget. Saves against different
// roles do not block each other.
type GormIndicatorTxScope struct {
	db *gorm.DB
}

// NewGormIndicatorTxScope creates a new GormIndicatorTxScope
func NewGormIndicatorTxScope(db *gorm.DB) *GormIndicatorTxScope {
	return &GormIndicatorTxScope{db: db}
}

// ExecuteWithRoleLock runs fn inside a transaction holding the role's advisory
// lock. The lock is released automatically at commit or rollback.
func (s *GormIndicatorTxScope) ExecuteWithRoleLock(ctx context.Context, role identity.Role, fn func(indicators performance.IndicatorRepository) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", roleLockKey(role)).Error; err != nil {
			return err
		}
		return fn(NewGormIndicatorRepository(tx))
	})
}

// roleLockKey derives a stable advisory lock key from the role name
func roleLockKey(role identity.Role) int64 {
	h := fnv.New64a()
	h.Write([]byte("indicator-weight:" + string(role)))
	return int64(h.Sum64())
}

// Ensure GormIndicatorTxScope implements IndicatorTxScope
var _ appperf.IndicatorTxScope = (*GormIndicatorTxScope)(nil)
