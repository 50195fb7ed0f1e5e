package repository

import (
	"time"

	"gorm.io/gorm"

	bookingDomain "github.com/shareit/service-shareit/internal/domain/booking"
)

// subjectScope restricts bookings to those made by, or made on items owned by, the subject.
func subjectScope(subject bookingDomain.Subject, subjectID int64) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if subject == bookingDomain.SubjectOwner {
			return db.Joins("JOIN items ON items.id = bookings.item_id").
				Where("items.owner_id = ?", subjectID)
		}
		return db.Where("bookings.booker_id = ?", subjectID)
	}
}

// stateScope is the SQL form of State.Matches.
func stateScope(state bookingDomain.State, now time.Time) func(*gorm.DB) *gorm.DB {
	now = now.UTC()
	return func(db *gorm.DB) *gorm.DB {
		switch state {
		case bookingDomain.StateCurrent:
			return db.Where("bookings.start_date <= ? AND bookings.end_date > ?", now, now)
		case bookingDomain.StatePast:
			return db.Where("bookings.end_date < ?", now)
		case bookingDomain.StateFuture:
			return db.Where("bookings.start_date > ?", now)
		case bookingDomain.StateWaiting:
			return db.Where("bookings.status = ?", string(bookingDomain.StatusWaiting))
		case bookingDomain.StateRejected:
			return db.Where("bookings.status = ?", string(bookingDomain.StatusRejected))
		default:
			return db
		}
	}
}
