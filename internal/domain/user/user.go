package user

import (
	"strings"
	"time"

	"github.com/shareit/service-shareit/internal/platform/domain"
)

// User is a registered member; items, bookings and requests refer to it by id.
type User struct {
	id        int64
	name      string
	email     string
	createdAt time.Time
	updatedAt time.Time
}

func NewUser(name, email string) (*User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.NewBadRequestError("user name is required")
	}
	if strings.TrimSpace(email) == "" {
		return nil, domain.NewBadRequestError("user email is required")
	}
	now := time.Now().UTC()
	return &User{name: name, email: email, createdAt: now, updatedAt: now}, nil
}

// Reconstruct rebuilds a User from persistence data (no validation).
func Reconstruct(id int64, name, email string, createdAt, updatedAt time.Time) *User {
	return &User{id: id, name: name, email: email, createdAt: createdAt, updatedAt: updatedAt}
}

// Patch replaces name and email when the new values are non-blank.
func (u *User) Patch(name, email *string) {
	if name != nil && strings.TrimSpace(*name) != "" {
		u.name = *name
	}
	if email != nil && strings.TrimSpace(*email) != "" {
		u.email = *email
	}
	u.updatedAt = time.Now().UTC()
}

func (u *User) ID() int64            { return u.id }
func (u *User) Name() string         { return u.name }
func (u *User) Email() string        { return u.email }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }
