package ports

import (
	"context"

	"jobmatch/internal/core/domain/model/kernel"
)

// EventType names a lifecycle event sent to users.
type EventType string

const (
	EventNewJobNearby   EventType = "NEW_JOB_NEARBY"
	EventQuoteReceived  EventType = "QUOTE_RECEIVED"
	EventJobClaimed     EventType = "JOB_CLAIMED"
	EventOfferReceived  EventType = "OFFER_RECEIVED"
	EventQuoteAccepted  EventType = "QUOTE_ACCEPTED"
	EventOfferConfirmed EventType = "OFFER_CONFIRMED"
	EventOfferExpired   EventType = "OFFER_EXPIRED"
	EventJobExpired     EventType = "JOB_EXPIRED"
	EventJobStarted     EventType = "JOB_STARTED"
	EventJobCompleted   EventType = "JOB_COMPLETED"
	EventJobCancelled   EventType = "JOB_CANCELLED"
	EventJobDisputed    EventType = "JOB_DISPUTED"
)

// Notification is the decision to tell users about an event. Delivery is the
// notifier's business.
type Notification struct {
	TargetUserIDs []kernel.UUID
	Type          EventType
	Title         string
	Message       string
	Payload       map[string]string
}

// Notifier delivers notifications. Callers treat it as fire-and-forget: a failure
// is logged and never fails the lifecycle operation that triggered it.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}
