package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/blog-community-api/internal/auth"
	"github.com/blog-community-api/internal/config"
	"github.com/blog-community-api/internal/models"
	"github.com/blog-community-api/internal/repository"
	"github.com/blog-community-api/internal/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// cleanupProbability is the chance an authenticated request also sweeps
// expired session rows, so no scheduler is needed.
const cleanupProbability = 0.1

// authService is the concrete implementation of AuthService
type authService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	cfg         *config.Config
	log         zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	cfg *config.Config,
	log zerolog.Logger,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		cfg:         cfg,
		log:         log.With().Str("service", "auth").Logger(),
	}
}

// Register creates a user with role "user", opens a session and returns the
// signed cookie token
func (s *authService) Register(ctx context.Context, email, password, displayName string) (*models.User, string, error) {
	if err := validation.ValidateRegistration(email, password, displayName); err != nil {
		return nil, "", err
	}

	exists, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, "", ErrEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: &hash,
		Role:         "user",
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.openSession(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	s.log.Info().Int64("user_id", user.ID).Msg("User registered")
	return user, token, nil
}

// Login verifies credentials and opens a fresh session
func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	if err := validation.ValidateLogin(email, password); err != nil {
		return nil, "", err
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch user: %w", err)
	}
	if user == nil || user.PasswordHash == nil {
		return nil, "", ErrInvalidCredentials
	}
	if !auth.CheckPassword(*user.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.openSession(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	s.log.Info().Int64("user_id", user.ID).Msg("User logged in")
	return user, token, nil
}

// Authenticate resolves a cookie token into its user
func (s *authService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	user, _, err := s.resolveSession(ctx, token)
	return user, err
}

// RefreshSession authenticates, bumps last-accessed and re-signs the token
func (s *authService) RefreshSession(ctx context.Context, token string) (*models.User, string, error) {
	user, session, err := s.resolveSession(ctx, token)
	if err != nil {
		return nil, "", err
	}

	if err := s.sessionRepo.Touch(ctx, session.ID, time.Now()); err != nil {
		s.log.Warn().Err(err).Str("session_id", session.ID).Msg("Failed to touch session")
	}

	refreshed, err := auth.SignSessionToken(session.ID, s.cfg.Auth.JWTSecret)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return user, refreshed, nil
}

// Logout deletes the session row behind the token. A token that does not
// parse is silently ignored so the handler can always clear the cookie.
func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	sid, err := auth.ParseSessionToken(token, s.cfg.Auth.JWTSecret)
	if err != nil {
		return nil
	}

	if err := s.sessionRepo.Delete(ctx, sid); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	s.log.Info().Str("session_id", sid).Msg("User logged out")
	return nil
}

func (s *authService) resolveSession(ctx context.Context, token string) (*models.User, *models.Session, error) {
	if token == "" {
		return nil, nil, ErrNotAuthenticated
	}

	sid, err := auth.ParseSessionToken(token, s.cfg.Auth.JWTSecret)
	if err != nil {
		return nil, nil, ErrNotAuthenticated
	}

	session, err := s.sessionRepo.GetByID(ctx, sid)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch session: %w", err)
	}
	if session == nil {
		return nil, nil, ErrNotAuthenticated
	}
	if session.Expired(time.Now()) {
		if err := s.sessionRepo.Delete(ctx, session.ID); err != nil {
			s.log.Warn().Err(err).Str("session_id", session.ID).Msg("Failed to delete expired session")
		}
		return nil, nil, ErrNotAuthenticated
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch session user: %w", err)
	}
	if user == nil {
		return nil, nil, ErrNotAuthenticated
	}

	s.maybeCleanup(ctx)
	return user, session, nil
}

func (s *authService) openSession(ctx context.Context, userID int64) (string, error) {
	now := time.Now()
	session := &models.Session{
		ID:           uuid.New().String(),
		UserID:       userID,
		CreatedAt:    now,
		LastAccessed: now,
		ExpiresAt:    now.Add(auth.SessionDuration),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	token, err := auth.SignSessionToken(session.ID, s.cfg.Auth.JWTSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, nil
}

// maybeCleanup sweeps expired sessions on a small fraction of requests
func (s *authService) maybeCleanup(ctx context.Context) {
	if rand.Float64() >= cleanupProbability {
		return
	}
	deleted, err := s.sessionRepo.DeleteExpired(ctx, time.Now())
	if err != nil {
		s.log.Warn().Err(err).Msg("Session cleanup failed")
		return
	}
	if deleted > 0 {
		s.log.Info().Int64("deleted", deleted).Msg("Expired sessions cleaned up")
	}
}
