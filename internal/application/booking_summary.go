package application

import (
	"context"
	"time"

	bookingDomain "github.com/shareit/service-shareit/internal/domain/booking"
	itemDomain "github.com/shareit/service-shareit/internal/domain/item"
)

// lastBookingTolerance lets a booking that ended within the hour still count as "last"
// in the single item view.
const lastBookingTolerance = time.Hour

// ItemBookings is the last/next booking pair shown to an item's owner.
type ItemBookings struct {
	Last *BookingShortDTO
	Next *BookingShortDTO
}

// BookingSummarizer derives last/next booking summaries for items.
type BookingSummarizer struct {
	bookings bookingDomain.BookingRepository
}

func NewBookingSummarizer(bookings bookingDomain.BookingRepository) *BookingSummarizer {
	return &BookingSummarizer{bookings: bookings}
}

// ForItem summarizes one item. Viewers other than the owner get an empty summary.
func (s *BookingSummarizer) ForItem(ctx context.Context, it *itemDomain.Item, viewerID int64, now time.Time) (ItemBookings, error) {
	if !it.IsOwnedBy(viewerID) {
		return ItemBookings{}, nil
	}
	summaries, err := s.resolve(ctx, []int64{it.ID()}, now.Add(lastBookingTolerance), now)
	if err != nil {
		return ItemBookings{}, err
	}
	return summaries[it.ID()], nil
}

// ForOwnerItems summarizes all items of one owner with one query per side.
func (s *BookingSummarizer) ForOwnerItems(ctx context.Context, items []*itemDomain.Item, now time.Time) (map[int64]ItemBookings, error) {
	ids := make([]int64, len(items))
	for i, it := range items {
		ids[i] = it.ID()
	}
	return s.resolve(ctx, ids, now, now)
}

func (s *BookingSummarizer) resolve(ctx context.Context, itemIDs []int64, lastEndBefore, nextStartAfter time.Time) (map[int64]ItemBookings, error) {
	last, err := s.bookings.FindLastApproved(ctx, itemIDs, lastEndBefore)
	if err != nil {
		return nil, err
	}
	next, err := s.bookings.FindNextApproved(ctx, itemIDs, nextStartAfter)
	if err != nil {
		return nil, err
	}

	result := make(map[int64]ItemBookings, len(itemIDs))
	for _, id := range itemIDs {
		result[id] = ItemBookings{Last: toBookingShortDTO(last[id]), Next: toBookingShortDTO(next[id])}
	}
	return result, nil
}

// toBookingShortDTO drops absent and rejected candidates.
func toBookingShortDTO(bk *bookingDomain.Booking) *BookingShortDTO {
	if bk == nil || bk.Status() == bookingDomain.StatusRejected {
		return nil
	}
	return &BookingShortDTO{ID: bk.ID(), BookerID: bk.BookerID(), Start: bk.Start(), End: bk.End()}
}
