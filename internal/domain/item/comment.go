package item

import (
	"strings"
	"time"

	"github.com/shareit/service-shareit/internal/platform/domain"
)

// Comment is feedback left on an item by a user who rented it.
type Comment struct {
	id       int64
	itemID   int64
	authorID int64
	text     string
	created  time.Time
}

// NewComment creates a comment stamped with now.
func NewComment(itemID, authorID int64, text string, now time.Time) (*Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.NewBadRequestError("comment text is required")
	}
	return &Comment{
		itemID:   itemID,
		authorID: authorID,
		text:     text,
		created:  now.UTC(),
	}, nil
}

// ReconstructComment rebuilds a Comment from persistence.
func ReconstructComment(id, itemID, authorID int64, text string, created time.Time) *Comment {
	return &Comment{id: id, itemID: itemID, authorID: authorID, text: text, created: created}
}

func (c *Comment) ID() int64          { return c.id }
func (c *Comment) ItemID() int64      { return c.itemID }
func (c *Comment) AuthorID() int64    { return c.authorID }
func (c *Comment) Text() string       { return c.text }
func (c *Comment) Created() time.Time { return c.created }
