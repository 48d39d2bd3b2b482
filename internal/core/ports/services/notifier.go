package services

import (
	"context"
	"time"
)

// NotificationEvent describes a state transition worth telling users about.
type NotificationEvent struct {
	EventType   string    `json:"eventType"` // e.g. "opening_balance.approved"
	SubjectKind string    `json:"subjectKind"`
	SubjectID   string    `json:"subjectID"`
	ActorID     string    `json:"actorID"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// NotificationDispatcher delivers advisory user-facing alerts. Dispatch is
// fire-and-forget from the caller's point of view: a delivery failure is
// logged by the dispatcher and must never roll back the financial
// transaction that triggered it.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, event NotificationEvent)
}
