package service

import (
	"context"
	"fmt"
	"time"

	"github.com/JSebastianB25/Web-Project/internal/domain"
	"github.com/JSebastianB25/Web-Project/internal/repository"
)

// UserService defines the interface for user account management
type UserService interface {
	Create(ctx context.Context, username, password, email string, roleID *int64, isStaff bool) (*domain.User, error)
	Update(ctx context.Context, user *domain.User, newPassword string) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new instance of UserService
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// Create registers a new user account with a hashed password
func (s *userService) Create(ctx context.Context, username, password, email string, roleID *int64, isStaff bool) (*domain.User, error) {
	hashedPassword, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hashedPassword,
		Email:        email,
		RoleID:       roleID,
		IsStaff:      isStaff,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Update saves changes to a user account. A non-empty newPassword is hashed
// and replaces the stored hash; an empty one leaves it untouched.
func (s *userService) Update(ctx context.Context, user *domain.User, newPassword string) error {
	if newPassword != "" {
		hashedPassword, err := HashPassword(newPassword)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hashedPassword
	} else {
		user.PasswordHash = ""
	}

	return s.userRepo.Update(ctx, user)
}

// Delete removes a user account
func (s *userService) Delete(ctx context.Context, id int64) error {
	return s.userRepo.Delete(ctx, id)
}

// GetByID retrieves a user with its role and permissions attached
func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

// List returns all user accounts
func (s *userService) List(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.List(ctx)
}
