package service

import (
	"context"

	"github.com/aidar/task-manager-project/internal/domain"
	"github.com/aidar/task-manager-project/internal/repository"
)

// UserService handles business logic for users
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UsernamesByID resolves usernames for a set of user IDs
func (s *UserService) UsernamesByID(ctx context.Context, userIDs []string) (map[string]string, error) {
	return s.userRepo.UsernamesByID(ctx, userIDs)
}
