package application

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	bookingDomain "github.com/shareit/service-shareit/internal/domain/booking"
	itemDomain "github.com/shareit/service-shareit/internal/domain/item"
	requestDomain "github.com/shareit/service-shareit/internal/domain/request"
	userDomain "github.com/shareit/service-shareit/internal/domain/user"
	"github.com/shareit/service-shareit/internal/platform/domain"
)

// CreateItemRequest holds the data to list a new item.
type CreateItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Available   *bool  `json:"available" binding:"required"`
	RequestID   *int64 `json:"requestId"`
}

// UpdateItemRequest holds the fields an owner may patch.
type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// CreateCommentRequest holds the text of a new comment.
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// ItemService handles item and comment use cases.
type ItemService struct {
	tx         Transactor
	items      itemDomain.ItemRepository
	comments   itemDomain.CommentRepository
	users      userDomain.UserRepository
	requests   requestDomain.RequestRepository
	bookings   bookingDomain.BookingRepository
	summarizer *BookingSummarizer
	logger     *zap.Logger
	now        func() time.Time
}

func NewItemService(
	tx Transactor,
	items itemDomain.ItemRepository,
	comments itemDomain.CommentRepository,
	users userDomain.UserRepository,
	requests requestDomain.RequestRepository,
	bookings bookingDomain.BookingRepository,
	logger *zap.Logger,
) *ItemService {
	return &ItemService{
		tx:         tx,
		items:      items,
		comments:   comments,
		users:      users,
		requests:   requests,
		bookings:   bookings,
		summarizer: NewBookingSummarizer(bookings),
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// CreateItem lists a new item for ownerID.
func (s *ItemService) CreateItem(ctx context.Context, ownerID int64, req CreateItemRequest) (*ItemDTO, error) {
	var saved *itemDomain.Item
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := requireUser(ctx, s.users, ownerID); err != nil {
			return err
		}
		if req.RequestID != nil {
			if _, err := s.requests.FindByID(ctx, *req.RequestID); err != nil {
				return err
			}
		}

		it, err := itemDomain.NewItem(ownerID, req.Name, req.Description, *req.Available, req.RequestID)
		if err != nil {
			return err
		}
		saved, err = s.items.Save(ctx, it)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("item created",
		zap.Int64("item_id", saved.ID()),
		zap.Int64("owner_id", ownerID),
	)

	result := toItemDTO(saved)
	return &result, nil
}

// UpdateItem patches an item; only its owner may do so.
func (s *ItemService) UpdateItem(ctx context.Context, ownerID, itemID int64, req UpdateItemRequest) (*ItemDTO, error) {
	var it *itemDomain.Item
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if it, err = s.items.FindByID(ctx, itemID); err != nil {
			return err
		}
		if !it.IsOwnedBy(ownerID) {
			return domain.NewNotFoundErrorf("User with id: %d is not the owner of item with id: %d", ownerID, itemID)
		}

		it.Patch(req.Name, req.Description, req.Available)
		it.IncrementVersion()
		return s.items.Update(ctx, it)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("item updated", zap.Int64("item_id", itemID))

	result := toItemDTO(it)
	return &result, nil
}

// GetItem returns an item with its comments; the owner also sees last/next bookings.
func (s *ItemService) GetItem(ctx context.Context, itemID, viewerID int64) (*ItemDTO, error) {
	now := s.now()

	var result ItemDTO
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := requireUser(ctx, s.users, viewerID); err != nil {
			return err
		}
		it, err := s.items.FindByID(ctx, itemID)
		if err != nil {
			return err
		}

		summary, err := s.summarizer.ForItem(ctx, it, viewerID, now)
		if err != nil {
			return err
		}
		comments, err := s.commentsByItem(ctx, []int64{it.ID()})
		if err != nil {
			return err
		}

		result = toItemDTO(it)
		result.LastBooking, result.NextBooking = summary.Last, summary.Next
		result.Comments = append(result.Comments, comments[it.ID()]...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ListOwnerItems returns one page of the owner's items with summaries and comments.
func (s *ItemService) ListOwnerItems(ctx context.Context, ownerID int64, from, size int) ([]ItemDTO, error) {
	now := s.now()

	var result []ItemDTO
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := requireUser(ctx, s.users, ownerID); err != nil {
			return err
		}
		page, err := domain.NewPage(from, size)
		if err != nil {
			return err
		}

		items, err := s.items.FindByOwnerID(ctx, ownerID, page)
		if err != nil {
			return err
		}
		summaries, err := s.summarizer.ForOwnerItems(ctx, items, now)
		if err != nil {
			return err
		}
		ids := make([]int64, len(items))
		for i, it := range items {
			ids[i] = it.ID()
		}
		comments, err := s.commentsByItem(ctx, ids)
		if err != nil {
			return err
		}

		result = make([]ItemDTO, 0, len(items))
		for _, it := range items {
			dto := toItemDTO(it)
			dto.LastBooking, dto.NextBooking = summaries[it.ID()].Last, summaries[it.ID()].Next
			dto.Comments = append(dto.Comments, comments[it.ID()]...)
			result = append(result, dto)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SearchItems finds available items by text for a registered caller; blank text matches nothing.
func (s *ItemService) SearchItems(ctx context.Context, callerID int64, text string, from, size int) ([]ItemDTO, error) {
	if err := requireUser(ctx, s.users, callerID); err != nil {
		return nil, err
	}
	page, err := domain.NewPage(from, size)
	if err != nil {
		return nil, err
	}
	result := []ItemDTO{}
	if strings.TrimSpace(text) == "" {
		return result, nil
	}

	items, err := s.items.Search(ctx, text, page)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		result = append(result, toItemDTO(it))
	}
	return result, nil
}

// AddComment stores a comment from a user whose rental of the item is over.
func (s *ItemService) AddComment(ctx context.Context, authorID, itemID int64, req CreateCommentRequest) (*CommentDTO, error) {
	now := s.now()

	var result CommentDTO
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		finished, err := s.bookings.ExistsFinished(ctx, authorID, itemID, now)
		if err != nil {
			return err
		}
		if !finished {
			return domain.NewBadRequestError("only users with a completed booking of the item can leave a comment")
		}

		author, err := s.users.FindByID(ctx, authorID)
		if err != nil {
			return err
		}
		if _, err := s.items.FindByID(ctx, itemID); err != nil {
			return err
		}

		c, err := itemDomain.NewComment(itemID, authorID, req.Text, now)
		if err != nil {
			return err
		}
		saved, err := s.comments.Save(ctx, c)
		if err != nil {
			return err
		}
		result = toCommentDTO(saved, author.Name())
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("comment added",
		zap.Int64("comment_id", result.ID),
		zap.Int64("item_id", itemID),
		zap.Int64("author_id", authorID),
	)
	return &result, nil
}

// commentsByItem loads comments of several items and their authors in two queries.
func (s *ItemService) commentsByItem(ctx context.Context, itemIDs []int64) (map[int64][]CommentDTO, error) {
	comments, err := s.comments.FindByItemIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}

	authorIDs := make([]int64, 0, len(comments))
	for _, c := range comments {
		authorIDs = append(authorIDs, c.AuthorID())
	}
	authors, err := s.users.FindByIDs(ctx, uniqueIDs(authorIDs))
	if err != nil {
		return nil, err
	}

	grouped := make(map[int64][]CommentDTO, len(itemIDs))
	for _, c := range comments {
		var name string
		if author, ok := authors[c.AuthorID()]; ok {
			name = author.Name()
		}
		grouped[c.ItemID()] = append(grouped[c.ItemID()], toCommentDTO(c, name))
	}
	return grouped, nil
}

// requireUser returns NotFound when userID is not registered.
func requireUser(ctx context.Context, users userDomain.UserRepository, userID int64) error {
	exists, err := users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.NewNotFoundError("User", userID)
	}
	return nil
}
