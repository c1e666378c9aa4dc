package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appperf "github.com/perfhub/backend/internal/application/performance"
	"github.com/perfhub/backend/internal/domain/shared"
)

// Event types published by the dispatcher. Delivery channels subscribe to
// these on the event bus.
const (
	EventTypeScoreSubmitted = "notification.score.submitted"
	EventTypeScoreVerified  = "notification.score.verified"
)

// ScoreNotificationEvent is the bus envelope for score notifications.
type ScoreNotificationEvent struct {
	shared.BaseDomainEvent
	RecordID      uuid.UUID `json:"record_id"`
	SubjectID     uuid.UUID `json:"subject_id"`
	IndicatorID   uuid.UUID `json:"indicator_id"`
	IndicatorName string    `json:"indicator_name"`
	Period        string    `json:"period"`
	ActorID       uuid.UUID `json:"actor_id"`
}

// Dispatcher translates score notifications into events on the event bus.
// It implements the application layer's Notifier; the services treat delivery
// as best-effort, so handler failures never propagate back into the write
// path.
type Dispatcher struct {
	bus    shared.EventPublisher
	logger *zap.Logger
}

// NewDispatcher creates a new Dispatcher
func NewDispatcher(bus shared.EventPublisher, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{bus: bus, logger: logger}
}

// Notify publishes the notification on the event bus
func (d *Dispatcher) Notify(ctx context.Context, n appperf.Notification) error {
	switch v := n.(type) {
	case appperf.ScoreSubmittedNotification:
		event := &ScoreNotificationEvent{
			BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeScoreSubmitted, "ScoreRecord", v.RecordID),
			RecordID:        v.RecordID,
			SubjectID:       v.SubjectID,
			IndicatorID:     v.IndicatorID,
			IndicatorName:   v.IndicatorName,
			Period:          v.Period.String(),
			ActorID:         v.SubmittedBy,
		}
		d.logger.Debug("dispatching score submitted notification",
			zap.String("record_id", v.RecordID.String()),
			zap.String("subject_id", v.SubjectID.String()),
			zap.String("period", event.Period),
		)
		return d.bus.Publish(ctx, event)

	case appperf.ScoreVerifiedNotification:
		event := &ScoreNotificationEvent{
			BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeScoreVerified, "ScoreRecord", v.RecordID),
			RecordID:        v.RecordID,
			SubjectID:       v.SubjectID,
			IndicatorID:     v.IndicatorID,
			IndicatorName:   v.IndicatorName,
			Period:          v.Period.String(),
			ActorID:         v.VerifiedBy,
		}
		d.logger.Debug("dispatching score verified notification",
			zap.String("record_id", v.RecordID.String()),
			zap.String("subject_id", v.SubjectID.String()),
			zap.String("period", event.Period),
		)
		return d.bus.Publish(ctx, event)

	default:
		return fmt.Errorf("unknown notification type %T", n)
	}
}

// Ensure Dispatcher implements Notifier
var _ appperf.Notifier = (*Dispatcher)(nil)

// LogHandler is the default delivery channel: it writes each score
// notification to the structured log. Real channels (email, chat webhooks)
// subscribe to the same event types.
type LogHandler struct {
	logger *zap.Logger
}

// NewLogHandler creates a new LogHandler
func NewLogHandler(logger *zap.Logger) *LogHandler {
	return &LogHandler{logger: logger}
}

// Handle logs the notification event
func (h *LogHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	n, ok := event.(*ScoreNotificationEvent)
	if !ok {
		return nil
	}

	h.logger.Info("score notification",
		zap.String("event_type", n.EventType()),
		zap.String("record_id", n.RecordID.String()),
		zap.String("subject_id", n.SubjectID.String()),
		zap.String("indicator", n.IndicatorName),
		zap.String("period", n.Period),
		zap.String("actor_id", n.ActorID.String()),
	)
	return nil
}

// EventTypes returns the event types this handler is interested in
func (h *LogHandler) EventTypes() []string {
	return []string{EventTypeScoreSubmitted, EventTypeScoreVerified}
}

// Ensure LogHandler implements EventHandler
var _ shared.EventHandler = (*LogHandler)(nil)
