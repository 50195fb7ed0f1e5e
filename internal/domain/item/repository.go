package item

import (
	"context"

	"github.com/shareit/service-shareit/internal/platform/domain"
)

// ItemRepository defines persistence operations for items.
type ItemRepository interface {
	FindByID(ctx context.Context, id int64) (*Item, error)
	FindByIDs(ctx context.Context, ids []int64) (map[int64]*Item, error)
	FindByOwnerID(ctx context.Context, ownerID int64, page domain.Page) ([]*Item, error)
	FindByRequestIDs(ctx context.Context, requestIDs []int64) ([]*Item, error)
	// Search matches available items whose name or description contains text, ignoring case.
	Search(ctx context.Context, text string, page domain.Page) ([]*Item, error)
	Save(ctx context.Context, item *Item) (*Item, error)
	Update(ctx context.Context, item *Item) error
}

// CommentRepository defines persistence operations for item comments.
type CommentRepository interface {
	Save(ctx context.Context, comment *Comment) (*Comment, error)
	FindByItemID(ctx context.Context, itemID int64) ([]*Comment, error)
	FindByItemIDs(ctx context.Context, itemIDs []int64) ([]*Comment, error)
}
