package request

import (
	"strings"
	"time"

	"github.com/shareit/service-shareit/internal/platform/domain"
)

// ItemRequest is a user's ask for an item nobody lists yet.
type ItemRequest struct {
	id          int64
	description string
	requesterID int64
	created     time.Time
}

func NewItemRequest(requesterID int64, description string, now time.Time) (*ItemRequest, error) {
	if strings.TrimSpace(description) == "" {
		return nil, domain.NewBadRequestError("request description is required")
	}
	return &ItemRequest{description: description, requesterID: requesterID, created: now.UTC()}, nil
}

func Reconstruct(id, requesterID int64, description string, created time.Time) *ItemRequest {
	return &ItemRequest{id: id, description: description, requesterID: requesterID, created: created}
}

func (r *ItemRequest) ID() int64           { return r.id }
func (r *ItemRequest) Description() string { return r.description }
func (r *ItemRequest) RequesterID() int64  { return r.requesterID }
func (r *ItemRequest) Created() time.Time  { return r.created }
