package handler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/perfhub/backend/internal/domain/identity"
	"github.com/perfhub/backend/internal/domain/performance"
)

type mockIndicatorRepository struct {
	mock.Mock
}

func (m *mockIndicatorRepository) Create(ctx context.Context, ind *performance.Indicator) error {
	args := m.Called(ctx, ind)
	return args.Error(0)
}

func (m *mockIndicatorRepository) Update(ctx context.Context, ind *performance.Indicator) error {
	args := m.Called(ctx, ind)
	return args.Error(0)
}

func (m *mockIndicatorRepository) FindByID(ctx context.Context, id uuid.UUID) (*performance.Indicator, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*performance.Indicator), args.Error(1)
}

func (m *mockIndicatorRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*performance.Indicator, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*performance.Indicator), args.Error(1)
}

func (m *mockIndicatorRepository) FindAll(ctx context.Context, role *identity.Role, includeInactive bool) ([]*performance.Indicator, error) {
	args := m.Called(ctx, role, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*performance.Indicator), args.Error(1)
}

func (m *mockIndicatorRepository) FindActiveByRole(ctx context.Context, role identity.Role) ([]*performance.Indicator, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*performance.Indicator), args.Error(1)
}

func (m *mockIndicatorRepository) SumActiveWeightByRole(ctx context.Context, role identity.Role, excludeID *uuid.UUID) (int, error) {
	args := m.Called(ctx, role, excludeID)
	return args.Int(0), args.Error(1)
}

type mockScoreRecordRepository struct {
	mock.Mock
}

func (m *mockScoreRecordRepository) Create(ctx context.Context, rec *performance.ScoreRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *mockScoreRecordRepository) Update(ctx context.Context, rec *performance.ScoreRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *mockScoreRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*performance.ScoreRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*performance.ScoreRecord), args.Error(1)
}

func (m *mockScoreRecordRepository) List(ctx context.Context, filter performance.ScoreFilter, page, pageSize int) ([]*performance.ScoreRecord, int64, error) {
	args := m.Called(ctx, filter, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*performance.ScoreRecord), args.Get(1).(int64), args.Error(2)
}

func (m *mockScoreRecordRepository) FindForSubjects(ctx context.Context, subjectIDs []uuid.UUID, filter performance.ScoreFilter) ([]*performance.ScoreRecord, error) {
	args := m.Called(ctx, subjectIDs, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*performance.ScoreRecord), args.Error(1)
}

func (m *mockScoreRecordRepository) MarkVerified(ctx context.Context, id, verifier uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, verifier, at)
	return args.Error(0)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) Update(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *mockUserRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*identity.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*identity.User), args.Error(1)
}

func (m *mockUserRepository) FindAll(ctx context.Context, page, pageSize int) ([]*identity.User, int64, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*identity.User), args.Get(1).(int64), args.Error(2)
}

func (m *mockUserRepository) FindIDsByDepartment(ctx context.Context, departmentID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, departmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *mockUserRepository) FindAllIDs(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *mockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}
