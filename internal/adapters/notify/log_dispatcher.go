package notify

import (
	"context"
	"log/slog"

	portssvc "github.com/SscSPs/mission_finance_app/internal/core/ports/services"
)

// LogDispatcher writes notification events to the structured log. Used when
// no broker is configured.
type LogDispatcher struct{}

// Ensure LogDispatcher implements portssvc.NotificationDispatcher
var _ portssvc.NotificationDispatcher = (*LogDispatcher)(nil)

// NewLogDispatcher creates a log-only dispatcher.
func NewLogDispatcher() *LogDispatcher {
	return &LogDispatcher{}
}

// Dispatch logs the event and returns.
func (d *LogDispatcher) Dispatch(ctx context.Context, event portssvc.NotificationEvent) {
	slog.InfoContext(ctx, "Notification event",
		"eventType", event.EventType,
		"subjectKind", event.SubjectKind,
		"subjectID", event.SubjectID,
		"actorID", event.ActorID)
}
