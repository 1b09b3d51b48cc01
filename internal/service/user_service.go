package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/blog-community-api/internal/models"
	"github.com/blog-community-api/internal/repository"
	"github.com/rs/zerolog"
)

// searchLimit caps user search results
const searchLimit = 20

// userService is the concrete implementation of UserService
type userService struct {
	userRepo repository.UserRepository
	log      zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, log zerolog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log.With().Str("service", "user").Logger(),
	}
}

// GetProfile returns the public profile for a user
func (s *userService) GetProfile(ctx context.Context, id int64) (*models.UserProfile, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}

	return &models.UserProfile{
		ID:          user.ID,
		DisplayName: user.DisplayName,
		AvatarURL:   user.AvatarURL,
		Role:        user.Role,
		CreatedAt:   user.CreatedAt,
	}, nil
}

// Search finds users by display name substring, for the mention picker
func (s *userService) Search(ctx context.Context, query string) ([]models.UserSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.UserSummary{}, nil
	}

	users, err := s.userRepo.Search(ctx, query, searchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	results := make([]models.UserSummary, 0, len(users))
	for _, u := range users {
		results = append(results, u.Summary())
	}
	return results, nil
}
