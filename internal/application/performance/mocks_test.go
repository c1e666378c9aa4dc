package performance

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/perfhub/backend/internal/domain/identity"
	"github.com/perfhub/backend/internal/domain/performance"
)

// MockIndicatorRepository is a mock implementation of performance.IndicatorRepository
type MockIndicatorRepository struct {
	mock.Mock
}

func (m *MockIndicatorRepository) Create(ctx context.Context, ind *performance.Indicator) error {
	args := m.Called(ctx, ind)
	return args.Error(0)
}

func (m *MockIndicatorRepository) Update(ctx context.Context, ind *performance.Indicator) error {
	args := m.Called(ctx, ind)
	return args.Error(0)
}

func (m *MockIndicatorRepository) FindByID(ctx context.Context, id uuid.UUID) (*performance.Indicator, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*performance.Indicator), args.Error(1)
}

func (m *MockIndicatorRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*performance.Indicator, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*performance.Indicator), args.Error(1)
}

func (m *MockIndicatorRepository) FindAll(ctx context.Context, role *identity.Role, includeInactive bool) ([]*performance.Indicator, error) {
	args := m.Called(ctx, role, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*performance.Indicator), args.Error(1)
}

func (m *MockIndicatorRepository) FindActiveByRole(ctx context.Context, role identity.Role) ([]*performance.Indicator, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*performance.Indicator), args.Error(1)
}

func (m *MockIndicatorRepository) SumActiveWeightByRole(ctx context.Context, role identity.Role, excludeID *uuid.UUID) (int, error) {
	args := m.Called(ctx, role, excludeID)
	return args.Int(0), args.Error(1)
}

// MockScoreRecordRepository is a mock implementation of performance.ScoreRecordRepository
type MockScoreRecordRepository struct {
	mock.Mock
}

func (m *MockScoreRecordRepository) Create(ctx context.Context, rec *performance.ScoreRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockScoreRecordRepository) Update(ctx context.Context, rec *performance.ScoreRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockScoreRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*performance.ScoreRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*performance.ScoreRecord), args.Error(1)
}

func (m *MockScoreRecordRepository) List(ctx context.Context, filter performance.ScoreFilter, page, pageSize int) ([]*performance.ScoreRecord, int64, error) {
	args := m.Called(ctx, filter, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*performance.ScoreRecord), args.Get(1).(int64), args.Error(2)
}

func (m *MockScoreRecordRepository) FindForSubjects(ctx context.Context, subjectIDs []uuid.UUID, filter performance.ScoreFilter) ([]*performance.ScoreRecord, error) {
	args := m.Called(ctx, subjectIDs, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*performance.ScoreRecord), args.Error(1)
}

func (m *MockScoreRecordRepository) MarkVerified(ctx context.Context, id, verifier uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, verifier, at)
	return args.Error(0)
}

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*identity.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, page, pageSize int) ([]*identity.User, int64, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*identity.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) FindIDsByDepartment(ctx context.Context, departmentID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, departmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockUserRepository) FindAllIDs(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

// RecordingNotifier captures notifications for assertions
type RecordingNotifier struct {
	mu            sync.Mutex
	notifications []Notification
}

func (n *RecordingNotifier) Notify(_ context.Context, notification Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notifications = append(n.notifications, notification)
	return nil
}

func (n *RecordingNotifier) Notifications() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	result := make([]Notification, len(n.notifications))
	copy(result, n.notifications)
	return result
}
