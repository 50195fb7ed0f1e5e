package booking

import (
	"context"
	"time"
)

// BookingRepository defines the persistence contract for booking aggregates.
type BookingRepository interface {
	// FindByID retrieves a booking, returning a NotFound error when absent.
	FindByID(ctx context.Context, id int64) (*Booking, error)

	// Find returns one page of bookings matching q ordered by start descending.
	Find(ctx context.Context, q Query) ([]*Booking, error)

	// FindLastApproved returns, per item, the APPROVED booking with the latest end before the bound.
	FindLastApproved(ctx context.Context, itemIDs []int64, endBefore time.Time) (map[int64]*Booking, error)

	// FindNextApproved returns, per item, the APPROVED booking with the earliest start after the bound.
	FindNextApproved(ctx context.Context, itemIDs []int64, startAfter time.Time) (map[int64]*Booking, error)

	// ExistsFinished reports whether bookerID has a booking on itemID that ended before now.
	ExistsFinished(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)

	// CountByStatus returns booking counts grouped by status.
	CountByStatus(ctx context.Context) (map[string]int64, error)

	// Save persists a new booking and returns it with its assigned id.
	Save(ctx context.Context, booking *Booking) (*Booking, error)

	// Update persists changes to an existing booking with optimistic locking.
	Update(ctx context.Context, booking *Booking) error
}
