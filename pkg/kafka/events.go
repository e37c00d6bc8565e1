package kafka

import (
	"context"
	"time"
)

// Event types published on the booking events topic
const (
	EventBookingCreated   = "booking.created"
	EventBookingPaid      = "booking.paid"
	EventBookingCancelled = "booking.cancelled"
	EventCreativeReviewed = "creative.reviewed"
)

// CurrentSchemaVersion is attached to every published event
const CurrentSchemaVersion = "1.0"

// BookingEvent is the payload shared by all booking lifecycle events
type BookingEvent struct {
	BookingID      string    `json:"booking_id"`
	BillboardID    string    `json:"billboard_id"`
	AdvertiserName string    `json:"advertiser_name"`
	StartDate      string    `json:"start_date"`
	StartTime      string    `json:"start_time"`
	Duration       int       `json:"duration"`
	TotalAmount    float64   `json:"total_amount"`
	Status         string    `json:"status"`
	ApprovalStatus string    `json:"approval_status,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// Publisher publishes booking lifecycle events. Implementations must be
// safe for concurrent use.
type Publisher interface {
	PublishBookingEvent(ctx context.Context, eventType string, event BookingEvent) error
	Close() error
}

// NoopPublisher discards events. Used when Kafka is disabled.
type NoopPublisher struct{}

func (NoopPublisher) PublishBookingEvent(ctx context.Context, eventType string, event BookingEvent) error {
	return nil
}

func (NoopPublisher) Close() error { return nil }
