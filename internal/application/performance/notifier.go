package performance

import (
	"context"

	"github.com/google/uuid"

	"github.com/perfhub/backend/internal/domain/performance"
)

// Notification is the closed set of notification payloads the performance
// services emit. The unexported marker keeps the set closed: dispatchers can
// switch over the concrete types exhaustively without a default case for
// unknown variants.
type Notification interface {
	notification()
}

// ScoreSubmittedNotification is sent when a new measurement is recorded.
type ScoreSubmittedNotification struct {
	RecordID      uuid.UUID
	SubjectID     uuid.UUID
	IndicatorID   uuid.UUID
	IndicatorName string
	Period        performance.Period
	SubmittedBy   uuid.UUID
}

func (ScoreSubmittedNotification) notification() {}

// ScoreVerifiedNotification is sent when a score record is verified.
type ScoreVerifiedNotification struct {
	RecordID      uuid.UUID
	SubjectID     uuid.UUID
	IndicatorID   uuid.UUID
	IndicatorName string
	Period        performance.Period
	VerifiedBy    uuid.UUID
}

func (ScoreVerifiedNotification) notification() {}

// Notifier delivers notifications to interested parties. Delivery is
// best-effort: the services never roll back a committed write because a
// notification failed, so implementations are responsible for their own
// error handling.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// NoOpNotifier discards all notifications. Useful for tests.
type NoOpNotifier struct{}

// Notify discards the notification.
func (NoOpNotifier) Notify(_ context.Context, _ Notification) error {
	return nil
}
