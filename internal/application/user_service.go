package application

import (
	"context"

	"go.uber.org/zap"

	userDomain "github.com/shareit/service-shareit/internal/domain/user"
)

// CreateUserRequest holds the data to register a user.
type CreateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// UpdateUserRequest holds the fields a user may patch.
type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email"`
}

// UserService handles user directory use cases.
type UserService struct {
	repo   userDomain.UserRepository
	logger *zap.Logger
}

func NewUserService(repo userDomain.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) CreateUser(ctx context.Context, req CreateUserRequest) (*UserDTO, error) {
	u, err := userDomain.NewUser(req.Name, req.Email)
	if err != nil {
		return nil, err
	}
	saved, err := s.repo.Save(ctx, u)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user created", zap.Int64("user_id", saved.ID()))
	result := toUserDTO(saved)
	return &result, nil
}

// UpdateUser applies the non-blank fields of req.
func (s *UserService) UpdateUser(ctx context.Context, userID int64, req UpdateUserRequest) (*UserDTO, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	u.Patch(req.Name, req.Email)
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("user updated", zap.Int64("user_id", userID))
	result := toUserDTO(u)
	return &result, nil
}

func (s *UserService) GetUser(ctx context.Context, userID int64) (*UserDTO, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := toUserDTO(u)
	return &result, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]UserDTO, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]UserDTO, len(users))
	for i, u := range users {
		result[i] = toUserDTO(u)
	}
	return result, nil
}

func (s *UserService) DeleteUser(ctx context.Context, userID int64) error {
	if err := s.repo.Delete(ctx, userID); err != nil {
		return err
	}
	s.logger.Info("user deleted", zap.Int64("user_id", userID))
	return nil
}
