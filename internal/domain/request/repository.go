package request

import (
	"context"

	"github.com/shareit/service-shareit/internal/platform/domain"
)

// RequestRepository defines persistence operations for item requests.
type RequestRepository interface {
	FindByID(ctx context.Context, id int64) (*ItemRequest, error)
	// FindByRequesterID lists a user's own requests, newest first.
	FindByRequesterID(ctx context.Context, requesterID int64) ([]*ItemRequest, error)
	// FindOthers lists requests of every other user, newest first.
	FindOthers(ctx context.Context, userID int64, page domain.Page) ([]*ItemRequest, error)
	Save(ctx context.Context, req *ItemRequest) (*ItemRequest, error)
}
