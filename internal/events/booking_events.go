// Package events defines the booking lifecycle events published to Kafka.
package events

import "time"

const (
	// Source identifies this service in CloudEvent envelopes.
	Source = "service-shareit"

	TopicBookingEvents = "shareit.booking.events"

	BookingRequested = "booking.requested"
	BookingApproved  = "booking.approved"
	BookingRejected  = "booking.rejected"
)

// BookingRequestedEvent is emitted when a booker opens a WAITING booking.
type BookingRequestedEvent struct {
	BookingID  int64     `json:"booking_id"`
	ItemID     int64     `json:"item_id"`
	BookerID   int64     `json:"booker_id"`
	OwnerID    int64     `json:"owner_id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BookingDecidedEvent is emitted when the owner approves or rejects a booking.
type BookingDecidedEvent struct {
	BookingID  int64     `json:"booking_id"`
	ItemID     int64     `json:"item_id"`
	BookerID   int64     `json:"booker_id"`
	OwnerID    int64     `json:"owner_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// DecisionType returns the event type for a decided status.
func DecisionType(approved bool) string {
	if approved {
		return BookingApproved
	}
	return BookingRejected
}
