package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	requestDomain "github.com/shareit/service-shareit/internal/domain/request"
	"github.com/shareit/service-shareit/internal/platform/domain"
)

// GormRequestRepository implements RequestRepository using GORM.
type GormRequestRepository struct {
	db *gorm.DB
}

func NewGormRequestRepository(db *gorm.DB) *GormRequestRepository {
	return &GormRequestRepository{db: db}
}

func (r *GormRequestRepository) FindByID(ctx context.Context, id int64) (*requestDomain.ItemRequest, error) {
	var model RequestModel
	if err := conn(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Request", id)
		}
		return nil, fmt.Errorf("failed to find request by ID: %w", err)
	}
	return toRequestDomain(&model), nil
}

func (r *GormRequestRepository) FindByRequesterID(ctx context.Context, requesterID int64) ([]*requestDomain.ItemRequest, error) {
	var models []RequestModel
	if err := conn(ctx, r.db).
		Where("requester_id = ?", requesterID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find requester requests: %w", err)
	}
	return toRequestDomains(models), nil
}

func (r *GormRequestRepository) FindOthers(ctx context.Context, userID int64, page domain.Page) ([]*requestDomain.ItemRequest, error) {
	var models []RequestModel
	if err := conn(ctx, r.db).
		Where("requester_id <> ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find other requests: %w", err)
	}
	return toRequestDomains(models), nil
}

func (r *GormRequestRepository) Save(ctx context.Context, req *requestDomain.ItemRequest) (*requestDomain.ItemRequest, error) {
	model := &RequestModel{
		Description: req.Description(),
		RequesterID: req.RequesterID(),
		CreatedAt:   req.Created(),
	}
	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return nil, fmt.Errorf("failed to save request: %w", err)
	}
	return toRequestDomain(model), nil
}

func toRequestDomain(m *RequestModel) *requestDomain.ItemRequest {
	return requestDomain.Reconstruct(m.ID, m.RequesterID, m.Description, m.CreatedAt)
}

func toRequestDomains(models []RequestModel) []*requestDomain.ItemRequest {
	reqs := make([]*requestDomain.ItemRequest, len(models))
	for i := range models {
		reqs[i] = toRequestDomain(&models[i])
	}
	return reqs
}
