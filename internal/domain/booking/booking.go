package booking

import (
	"fmt"
	"time"

	"github.com/shareit/service-shareit/internal/platform/domain"
)

const (
	MsgStartAfterEnd          = "start time cannot be after end time"
	MsgStartEqualsEnd         = "start time cannot be equal to end time"
	MsgStartInPast            = "start time cannot be in the past"
	MsgBookerIsOwner          = "User with id: %d is the owner of item with id: %d"
	MsgStatusChangeNotAllowed = "status change not allowed"
)

// Bookable is the view of an item needed to open a booking on it.
type Bookable interface {
	ID() int64
	OwnerID() int64
	IsAvailable() bool
}

// Booking is the aggregate root for a time-bounded rental of one item.
// Related entities are referenced by id only.
type Booking struct {
	id       int64
	itemID   int64
	bookerID int64
	start    time.Time
	end      time.Time
	status   BookingStatus

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// ValidatePeriod checks the requested range against now. The first violated rule wins.
func ValidatePeriod(start, end, now time.Time) error {
	switch {
	case start.After(end):
		return domain.NewBadRequestError(MsgStartAfterEnd)
	case start.Equal(end):
		return domain.NewBadRequestError(MsgStartEqualsEnd)
	case start.Before(now):
		return domain.NewBadRequestError(MsgStartInPast)
	}
	return nil
}

// NewBooking opens a WAITING booking for bookerID on item.
func NewBooking(item Bookable, bookerID int64, start, end, now time.Time) (*Booking, error) {
	if err := ValidatePeriod(start, end, now); err != nil {
		return nil, err
	}
	if item.OwnerID() == bookerID {
		return nil, domain.NewNotFoundErrorf(MsgBookerIsOwner, bookerID, item.ID())
	}
	if !item.IsAvailable() {
		return nil, domain.NewBadRequestError(fmt.Sprintf("item with id: %d is not available for booking", item.ID()))
	}

	now = now.UTC()
	return &Booking{
		itemID:    item.ID(),
		bookerID:  bookerID,
		start:     start.UTC(),
		end:       end.UTC(),
		status:    StatusWaiting,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructBooking rebuilds a Booking from persistence data (no validation).
func ReconstructBooking(
	id, itemID, bookerID int64,
	start, end time.Time,
	status BookingStatus,
	version int64,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		itemID:    itemID,
		bookerID:  bookerID,
		start:     start.UTC(),
		end:       end.UTC(),
		status:    status,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// CanTransition reports whether the owner may still decide on this booking.
func (b *Booking) CanTransition() bool {
	return !b.status.IsTerminal()
}

// Apply records the owner's decision. A decided booking is never changed again.
func (b *Booking) Apply(approved bool, now time.Time) error {
	target := decisionStatus(approved)
	if !b.status.CanTransitionTo(target) {
		return domain.NewBadRequestError(MsgStatusChangeNotAllowed)
	}
	b.status = target
	b.updatedAt = now.UTC()
	return nil
}

// IsBookedBy returns true if userID requested this booking.
func (b *Booking) IsBookedBy(userID int64) bool {
	return b.bookerID == userID
}

// IncrementVersion bumps the optimistic lock version before an update.
func (b *Booking) IncrementVersion() {
	b.version++
}

func (b *Booking) ID() int64             { return b.id }
func (b *Booking) ItemID() int64         { return b.itemID }
func (b *Booking) BookerID() int64       { return b.bookerID }
func (b *Booking) Start() time.Time      { return b.start }
func (b *Booking) End() time.Time        { return b.end }
func (b *Booking) Status() BookingStatus { return b.status }
func (b *Booking) Version() int64        { return b.version }
func (b *Booking) CreatedAt() time.Time  { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time  { return b.updatedAt }
