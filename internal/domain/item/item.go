package item

import (
	"strings"
	"time"

	"github.com/shareit/service-shareit/internal/platform/domain"
)

// Item is the aggregate root for a thing a user lends out.
type Item struct {
	id          int64
	ownerID     int64
	name        string
	description string
	available   bool
	requestID   *int64
	version     int64
	createdAt   time.Time
	updatedAt   time.Time
}

// NewItem creates an item listed by ownerID, optionally fulfilling a request.
func NewItem(ownerID int64, name, description string, available bool, requestID *int64) (*Item, error) {
	if ownerID <= 0 {
		return nil, domain.NewBadRequestError("owner ID is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, domain.NewBadRequestError("item name is required")
	}
	if strings.TrimSpace(description) == "" {
		return nil, domain.NewBadRequestError("item description is required")
	}

	now := time.Now().UTC()
	return &Item{
		ownerID:     ownerID,
		name:        name,
		description: description,
		available:   available,
		requestID:   requestID,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct rebuilds an Item from persistence data (no validation).
func Reconstruct(
	id, ownerID int64,
	name, description string,
	available bool,
	requestID *int64,
	version int64,
	createdAt, updatedAt time.Time,
) *Item {
	return &Item{
		id:          id,
		ownerID:     ownerID,
		name:        name,
		description: description,
		available:   available,
		requestID:   requestID,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Patch applies the non-nil fields. Blank strings leave the current value.
func (i *Item) Patch(name, description *string, available *bool) {
	if name != nil && strings.TrimSpace(*name) != "" {
		i.name = *name
	}
	if description != nil && strings.TrimSpace(*description) != "" {
		i.description = *description
	}
	if available != nil {
		i.available = *available
	}
	i.updatedAt = time.Now().UTC()
}

// IsOwnedBy returns true if userID listed this item.
func (i *Item) IsOwnedBy(userID int64) bool {
	return i.ownerID == userID
}

func (i *Item) IncrementVersion() {
	i.version++
}

func (i *Item) ID() int64            { return i.id }
func (i *Item) OwnerID() int64       { return i.ownerID }
func (i *Item) Name() string         { return i.name }
func (i *Item) Description() string  { return i.description }
func (i *Item) IsAvailable() bool    { return i.available }
func (i *Item) RequestID() *int64    { return i.requestID }
func (i *Item) Version() int64       { return i.version }
func (i *Item) CreatedAt() time.Time { return i.createdAt }
func (i *Item) UpdatedAt() time.Time { return i.updatedAt }
