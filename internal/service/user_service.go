package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/image-service/internal/auth"
	"github.com/spec-kit/image-service/internal/domain"
	"github.com/spec-kit/image-service/internal/events"
	"github.com/spec-kit/image-service/internal/repository"
)

// RegisterRequest carries the fields required to create an account.
type RegisterRequest struct {
	Username        string
	Password        string
	ConfirmPassword string
	Age             int
	Email           string
}

// UserService coordinates registration and login flows.
type UserService struct {
	users      repository.UserRepository
	tokens     *auth.TokenManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, tokens *auth.TokenManager, dispatcher events.Dispatcher, logger *zap.Logger, bcryptCost int) *UserService {
	return &UserService{
		users:      users,
		tokens:     tokens,
		dispatcher: dispatcher,
		logger:     logger,
		bcryptCost: bcryptCost,
	}
}

// Login verifies credentials and issues a bearer token. Unknown usernames
// and wrong passwords produce the same error.
func (s *UserService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Info("login failed: unknown user", zap.String("username", username))
			return "", time.Time{}, ErrInvalidCredentials
		}
		return "", time.Time{}, err
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		s.logger.Info("login failed: wrong password", zap.String("username", username))
		return "", time.Time{}, ErrInvalidCredentials
	}

	token, exp, err := s.tokens.Issue(user.Username)
	if err != nil {
		return "", time.Time{}, err
	}
	s.logger.Info("login successful", zap.String("username", username))
	return token, exp, nil
}

// Register creates a new account. The check order is part of the contract:
// username availability first, then password confirmation.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) error {
	if _, err := s.users.GetByUsername(ctx, req.Username); err == nil {
		s.logger.Info("registration failed: username taken", zap.String("username", req.Username))
		return ErrUsernameTaken
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	if req.Password != req.ConfirmPassword {
		s.logger.Info("registration failed: password mismatch", zap.String("username", req.Username))
		return ErrPasswordMismatch
	}

	hash, err := auth.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return err
	}

	user := &domain.User{
		Username:     req.Username,
		PasswordHash: hash,
		Email:        req.Email,
		Age:          req.Age,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return err
	}

	s.publishRegistered(ctx, user)
	s.logger.Info("registration successful", zap.String("username", req.Username))
	return nil
}

func (s *UserService) publishRegistered(ctx context.Context, user *domain.User) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:      events.EventUserRegistered,
		Username:  user.Username,
		Timestamp: time.Now(),
		Payload:   events.UserRegisteredPayload{Email: user.Email},
	})
}
