package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	bookingDomain "github.com/shareit/service-shareit/internal/domain/booking"
	"github.com/shareit/service-shareit/internal/platform/domain"
)

// GormBookingRepository is the GORM-based implementation of BookingRepository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id int64) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := conn(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id)
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model)
}

// Find runs a subject/state query. See scopes in booking_query.go.
func (r *GormBookingRepository) Find(ctx context.Context, q bookingDomain.Query) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := conn(ctx, r.db).
		Model(&BookingModel{}).
		Select("bookings.*").
		Scopes(subjectScope(q.Subject, q.SubjectID), stateScope(q.State, q.Now)).
		Order("bookings.start_date DESC").
		Order("bookings.id DESC").
		Offset(q.Page.Offset).
		Limit(q.Page.Limit).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find %s bookings in state %s: %w", q.Subject, q.State, err)
	}
	return toDomainBookings(models)
}

// FindLastApproved resolves the latest finished approved booking of every item in one query.
func (r *GormBookingRepository) FindLastApproved(ctx context.Context, itemIDs []int64, endBefore time.Time) (map[int64]*bookingDomain.Booking, error) {
	if len(itemIDs) == 0 {
		return map[int64]*bookingDomain.Booking{}, nil
	}
	var models []BookingModel
	if err := conn(ctx, r.db).
		Where("item_id IN ? AND status = ? AND end_date < ?", itemIDs, string(bookingDomain.StatusApproved), endBefore.UTC()).
		Order("end_date DESC").
		Order("id DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find last bookings: %w", err)
	}
	return firstPerItem(models)
}

// FindNextApproved resolves the earliest upcoming approved booking of every item in one query.
func (r *GormBookingRepository) FindNextApproved(ctx context.Context, itemIDs []int64, startAfter time.Time) (map[int64]*bookingDomain.Booking, error) {
	if len(itemIDs) == 0 {
		return map[int64]*bookingDomain.Booking{}, nil
	}
	var models []BookingModel
	if err := conn(ctx, r.db).
		Where("item_id IN ? AND status = ? AND start_date > ?", itemIDs, string(bookingDomain.StatusApproved), startAfter.UTC()).
		Order("start_date ASC").
		Order("id ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find next bookings: %w", err)
	}
	return firstPerItem(models)
}

// ExistsFinished reports whether bookerID has rented itemID and the rental is over.
func (r *GormBookingRepository) ExistsFinished(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	var count int64
	if err := conn(ctx, r.db).Model(&BookingModel{}).
		Where("booker_id = ? AND item_id = ? AND end_date < ?", bookerID, itemID, now.UTC()).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check finished bookings: %w", err)
	}
	return count > 0, nil
}

// CountByStatus returns booking counts grouped by status.
func (r *GormBookingRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var results []statusCount
	if err := conn(ctx, r.db).Model(&BookingModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}

	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.Status] = sc.Count
	}
	return counts, nil
}

// Save persists a new booking.
func (r *GormBookingRepository) Save(ctx context.Context, bk *bookingDomain.Booking) (*bookingDomain.Booking, error) {
	model := toBookingModel(bk)
	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}
	return toDomainBooking(model)
}

// Update persists changes to an existing booking with optimistic locking.
func (r *GormBookingRepository) Update(ctx context.Context, bk *bookingDomain.Booking) error {
	// IncrementVersion was called by the service, so the stored row holds version-1.
	expectedVersion := bk.Version() - 1
	result := conn(ctx, r.db).
		Model(&BookingModel{}).
		Where("id = ? AND version = ?", bk.ID(), expectedVersion).
		Updates(map[string]interface{}{
			"status":     string(bk.Status()),
			"start_date": bk.Start(),
			"end_date":   bk.End(),
			"version":    bk.Version(),
			"updated_at": bk.UpdatedAt(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("booking was modified concurrently")
	}
	return nil
}

// --- Conversion Helpers ---

func toBookingModel(bk *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:        bk.ID(),
		ItemID:    bk.ItemID(),
		BookerID:  bk.BookerID(),
		StartDate: bk.Start(),
		EndDate:   bk.End(),
		Status:    string(bk.Status()),
		Version:   bk.Version(),
		CreatedAt: bk.CreatedAt(),
		UpdatedAt: bk.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	status, err := bookingDomain.ParseBookingStatus(m.Status)
	if err != nil {
		return nil, err
	}
	return bookingDomain.ReconstructBooking(
		m.ID,
		m.ItemID,
		m.BookerID,
		m.StartDate,
		m.EndDate,
		status,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

func toDomainBookings(models []BookingModel) ([]*bookingDomain.Booking, error) {
	bookings := make([]*bookingDomain.Booking, len(models))
	for i := range models {
		bk, err := toDomainBooking(&models[i])
		if err != nil {
			return nil, err
		}
		bookings[i] = bk
	}
	return bookings, nil
}

// firstPerItem keeps the first row seen for each item; rows must arrive in preference order.
func firstPerItem(models []BookingModel) (map[int64]*bookingDomain.Booking, error) {
	result := make(map[int64]*bookingDomain.Booking)
	for i := range models {
		if _, seen := result[models[i].ItemID]; seen {
			continue
		}
		bk, err := toDomainBooking(&models[i])
		if err != nil {
			return nil, err
		}
		result[bk.ItemID()] = bk
	}
	return result, nil
}
