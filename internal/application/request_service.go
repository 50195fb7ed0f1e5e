package application

import (
	"context"
	"time"

	"go.uber.org/zap"

	itemDomain "github.com/shareit/service-shareit/internal/domain/item"
	requestDomain "github.com/shareit/service-shareit/internal/domain/request"
	userDomain "github.com/shareit/service-shareit/internal/domain/user"
	"github.com/shareit/service-shareit/internal/platform/domain"
)

// CreateRequestRequest holds the description of a wanted item.
type CreateRequestRequest struct {
	Description string `json:"description" binding:"required"`
}

// RequestService handles item request use cases.
type RequestService struct {
	tx       Transactor
	requests requestDomain.RequestRepository
	items    itemDomain.ItemRepository
	users    userDomain.UserRepository
	logger   *zap.Logger
	now      func() time.Time
}

func NewRequestService(
	tx Transactor,
	requests requestDomain.RequestRepository,
	items itemDomain.ItemRepository,
	users userDomain.UserRepository,
	logger *zap.Logger,
) *RequestService {
	return &RequestService{
		tx:       tx,
		requests: requests,
		items:    items,
		users:    users,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *RequestService) CreateRequest(ctx context.Context, requesterID int64, req CreateRequestRequest) (*RequestDTO, error) {
	var saved *requestDomain.ItemRequest
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := requireUser(ctx, s.users, requesterID); err != nil {
			return err
		}
		r, err := requestDomain.NewItemRequest(requesterID, req.Description, s.now())
		if err != nil {
			return err
		}
		saved, err = s.requests.Save(ctx, r)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("item request created",
		zap.Int64("request_id", saved.ID()),
		zap.Int64("requester_id", requesterID),
	)
	result := toRequestDTO(saved, nil)
	return &result, nil
}

// ListOwnRequests returns the caller's requests, newest first, with the items offered for each.
func (s *RequestService) ListOwnRequests(ctx context.Context, requesterID int64) ([]RequestDTO, error) {
	var result []RequestDTO
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := requireUser(ctx, s.users, requesterID); err != nil {
			return err
		}
		reqs, err := s.requests.FindByRequesterID(ctx, requesterID)
		if err != nil {
			return err
		}
		result, err = s.withItems(ctx, reqs)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListOtherRequests returns one page of other users' requests, newest first.
func (s *RequestService) ListOtherRequests(ctx context.Context, userID int64, from, size int) ([]RequestDTO, error) {
	var result []RequestDTO
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := requireUser(ctx, s.users, userID); err != nil {
			return err
		}
		page, err := domain.NewPage(from, size)
		if err != nil {
			return err
		}
		reqs, err := s.requests.FindOthers(ctx, userID, page)
		if err != nil {
			return err
		}
		result, err = s.withItems(ctx, reqs)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *RequestService) GetRequest(ctx context.Context, userID, requestID int64) (*RequestDTO, error) {
	var result []RequestDTO
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := requireUser(ctx, s.users, userID); err != nil {
			return err
		}
		r, err := s.requests.FindByID(ctx, requestID)
		if err != nil {
			return err
		}
		result, err = s.withItems(ctx, []*requestDomain.ItemRequest{r})
		return err
	})
	if err != nil {
		return nil, err
	}
	return &result[0], nil
}

// withItems attaches offered items to each request using one query.
func (s *RequestService) withItems(ctx context.Context, reqs []*requestDomain.ItemRequest) ([]RequestDTO, error) {
	ids := make([]int64, len(reqs))
	for i, r := range reqs {
		ids[i] = r.ID()
	}
	items, err := s.items.FindByRequestIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byRequest := make(map[int64][]*itemDomain.Item, len(reqs))
	for _, it := range items {
		if it.RequestID() != nil {
			byRequest[*it.RequestID()] = append(byRequest[*it.RequestID()], it)
		}
	}

	result := make([]RequestDTO, 0, len(reqs))
	for _, r := range reqs {
		result = append(result, toRequestDTO(r, byRequest[r.ID()]))
	}
	return result, nil
}
