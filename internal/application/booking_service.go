package application

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	bookingDomain "github.com/shareit/service-shareit/internal/domain/booking"
	itemDomain "github.com/shareit/service-shareit/internal/domain/item"
	userDomain "github.com/shareit/service-shareit/internal/domain/user"
	"github.com/shareit/service-shareit/internal/events"
	"github.com/shareit/service-shareit/internal/platform/domain"
	"github.com/shareit/service-shareit/internal/platform/kafka"
)

// CreateBookingRequest holds the data needed to create a new booking.
type CreateBookingRequest struct {
	ItemID int64     `json:"itemId" binding:"required,gt=0"`
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
}

// BookingStatsDTO holds booking counts grouped by status.
type BookingStatsDTO struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"byStatus"`
}

// BookingService is the application service orchestrating booking use cases.
type BookingService struct {
	tx       Transactor
	bookings bookingDomain.BookingRepository
	items    itemDomain.ItemRepository
	users    userDomain.UserRepository
	producer EventPublisher
	topic    string
	logger   *zap.Logger
	now      func() time.Time
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	tx Transactor,
	bookings bookingDomain.BookingRepository,
	items itemDomain.ItemRepository,
	users userDomain.UserRepository,
	producer EventPublisher,
	topic string,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		tx:       tx,
		bookings: bookings,
		items:    items,
		users:    users,
		producer: producer,
		topic:    topic,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateBooking opens a WAITING booking for bookerID.
func (s *BookingService) CreateBooking(ctx context.Context, bookerID int64, req CreateBookingRequest) (*BookingDTO, error) {
	now := s.now()

	var (
		bk     *bookingDomain.Booking
		it     *itemDomain.Item
		booker *userDomain.User
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if booker, err = s.users.FindByID(ctx, bookerID); err != nil {
			return err
		}
		if err := bookingDomain.ValidatePeriod(req.Start, req.End, now); err != nil {
			return err
		}
		if it, err = s.items.FindByID(ctx, req.ItemID); err != nil {
			return err
		}

		created, err := bookingDomain.NewBooking(it, bookerID, req.Start, req.End, now)
		if err != nil {
			return err
		}
		bk, err = s.bookings.Save(ctx, created)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking created",
		zap.Int64("booking_id", bk.ID()),
		zap.Int64("item_id", it.ID()),
		zap.Int64("booker_id", bookerID),
	)

	s.publishEvent(ctx, events.BookingRequested, bk.ID(), events.BookingRequestedEvent{
		BookingID:  bk.ID(),
		ItemID:     it.ID(),
		BookerID:   bookerID,
		OwnerID:    it.OwnerID(),
		Start:      bk.Start(),
		End:        bk.End(),
		OccurredAt: now,
	})

	result := toBookingDTO(bk, it, booker)
	return &result, nil
}

// UpdateBooking records the owner's approve/reject decision on a WAITING booking.
func (s *BookingService) UpdateBooking(ctx context.Context, bookingID, approverID int64, approved bool) (*BookingDTO, error) {
	now := s.now()

	var (
		bk     *bookingDomain.Booking
		it     *itemDomain.Item
		booker *userDomain.User
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if bk, err = s.bookings.FindByID(ctx, bookingID); err != nil {
			return err
		}
		if err := requireUser(ctx, s.users, approverID); err != nil {
			return err
		}
		if it, err = s.items.FindByID(ctx, bk.ItemID()); err != nil {
			return err
		}
		if !it.IsOwnedBy(approverID) {
			return domain.NewNotFoundErrorf("User with id: %d is not the owner of item with id: %d", approverID, it.ID())
		}

		if err := bk.Apply(approved, now); err != nil {
			return err
		}
		bk.IncrementVersion()
		if err := s.bookings.Update(ctx, bk); err != nil {
			return err
		}

		booker, err = s.users.FindByID(ctx, bk.BookerID())
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking status updated",
		zap.Int64("booking_id", bk.ID()),
		zap.String("status", bk.Status().String()),
		zap.Int64("owner_id", approverID),
	)

	s.publishEvent(ctx, events.DecisionType(approved), bk.ID(), events.BookingDecidedEvent{
		BookingID:  bk.ID(),
		ItemID:     it.ID(),
		BookerID:   bk.BookerID(),
		OwnerID:    approverID,
		Status:     bk.Status().String(),
		OccurredAt: now,
	})

	result := toBookingDTO(bk, it, booker)
	return &result, nil
}

// GetBooking returns a booking visible to its booker or the item's owner.
func (s *BookingService) GetBooking(ctx context.Context, bookingID, userID int64) (*BookingDTO, error) {
	var result BookingDTO
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		bk, err := s.bookings.FindByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if err := requireUser(ctx, s.users, userID); err != nil {
			return err
		}
		it, err := s.items.FindByID(ctx, bk.ItemID())
		if err != nil {
			return err
		}
		if !bk.IsBookedBy(userID) && !it.IsOwnedBy(userID) {
			return domain.NewNotFoundErrorf("User with id: %d is neither the booker nor the owner of booking with id: %d", userID, bookingID)
		}

		booker, err := s.users.FindByID(ctx, bk.BookerID())
		if err != nil {
			return err
		}
		result = toBookingDTO(bk, it, booker)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ListBookerBookings lists bookings made by userID in the given state.
func (s *BookingService) ListBookerBookings(ctx context.Context, userID int64, state string, from, size int) ([]BookingDTO, error) {
	return s.list(ctx, bookingDomain.SubjectBooker, userID, state, from, size)
}

// ListOwnerBookings lists bookings on items owned by ownerID in the given state.
func (s *BookingService) ListOwnerBookings(ctx context.Context, ownerID int64, state string, from, size int) ([]BookingDTO, error) {
	return s.list(ctx, bookingDomain.SubjectOwner, ownerID, state, from, size)
}

func (s *BookingService) list(ctx context.Context, subject bookingDomain.Subject, subjectID int64, token string, from, size int) ([]BookingDTO, error) {
	var result []BookingDTO
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := requireUser(ctx, s.users, subjectID); err != nil {
			return err
		}
		state, err := bookingDomain.ParseState(token)
		if err != nil {
			return err
		}
		page, err := domain.NewPage(from, size)
		if err != nil {
			return err
		}

		bks, err := s.bookings.Find(ctx, bookingDomain.Query{
			Subject:   subject,
			SubjectID: subjectID,
			State:     state,
			Now:       s.now(),
			Page:      page,
		})
		if err != nil {
			return err
		}
		result, err = s.hydrate(ctx, bks)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetBookingStats returns booking counts grouped by status.
func (s *BookingService) GetBookingStats(ctx context.Context) (*BookingStatsDTO, error) {
	counts, err := s.bookings.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	stats := &BookingStatsDTO{ByStatus: counts}
	for _, n := range counts {
		stats.Total += n
	}
	return stats, nil
}

// hydrate loads items and bookers for a page of bookings in two queries.
func (s *BookingService) hydrate(ctx context.Context, bks []*bookingDomain.Booking) ([]BookingDTO, error) {
	itemIDs := make([]int64, 0, len(bks))
	bookerIDs := make([]int64, 0, len(bks))
	for _, bk := range bks {
		itemIDs = append(itemIDs, bk.ItemID())
		bookerIDs = append(bookerIDs, bk.BookerID())
	}

	items, err := s.items.FindByIDs(ctx, uniqueIDs(itemIDs))
	if err != nil {
		return nil, err
	}
	bookers, err := s.users.FindByIDs(ctx, uniqueIDs(bookerIDs))
	if err != nil {
		return nil, err
	}

	result := make([]BookingDTO, 0, len(bks))
	for _, bk := range bks {
		it, ok := items[bk.ItemID()]
		if !ok {
			return nil, domain.NewInternalError(fmt.Sprintf("booking %d references missing item %d", bk.ID(), bk.ItemID()), nil)
		}
		booker, ok := bookers[bk.BookerID()]
		if !ok {
			return nil, domain.NewInternalError(fmt.Sprintf("booking %d references missing user %d", bk.ID(), bk.BookerID()), nil)
		}
		result = append(result, toBookingDTO(bk, it, booker))
	}
	return result, nil
}

// publishEvent creates and publishes a CloudEvent; failures are logged, not returned.
func (s *BookingService) publishEvent(ctx context.Context, eventType string, bookingID int64, data interface{}) {
	cloudEvent, err := kafka.NewCloudEvent(events.Source, eventType, strconv.FormatInt(bookingID, 10), data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.producer.PublishEvent(ctx, s.topic, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", s.topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
