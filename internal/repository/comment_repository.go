package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	itemDomain "github.com/shareit/service-shareit/internal/domain/item"
)

// GormCommentRepository implements CommentRepository using GORM.
type GormCommentRepository struct {
	db *gorm.DB
}

func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

func (r *GormCommentRepository) Save(ctx context.Context, c *itemDomain.Comment) (*itemDomain.Comment, error) {
	model := &CommentModel{
		ItemID:    c.ItemID(),
		AuthorID:  c.AuthorID(),
		Text:      c.Text(),
		CreatedAt: c.Created(),
	}
	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return nil, fmt.Errorf("failed to save comment: %w", err)
	}
	return toCommentDomain(model), nil
}

func (r *GormCommentRepository) FindByItemID(ctx context.Context, itemID int64) ([]*itemDomain.Comment, error) {
	return r.FindByItemIDs(ctx, []int64{itemID})
}

// FindByItemIDs loads the comments of several items, oldest first.
func (r *GormCommentRepository) FindByItemIDs(ctx context.Context, itemIDs []int64) ([]*itemDomain.Comment, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	var models []CommentModel
	if err := conn(ctx, r.db).
		Where("item_id IN ?", itemIDs).
		Order("created_at ASC").
		Order("id ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find comments: %w", err)
	}

	comments := make([]*itemDomain.Comment, len(models))
	for i := range models {
		comments[i] = toCommentDomain(&models[i])
	}
	return comments, nil
}

func toCommentDomain(m *CommentModel) *itemDomain.Comment {
	return itemDomain.ReconstructComment(m.ID, m.ItemID, m.AuthorID, m.Text, m.CreatedAt)
}
