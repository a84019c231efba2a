package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fintrack/fintrack/internal/auth"
	"github.com/fintrack/fintrack/internal/metrics"
	"github.com/fintrack/fintrack/internal/model"
	"github.com/fintrack/fintrack/internal/repository"
)

// Auth service errors.
var (
	// ErrInvalidCredentials is returned for every login failure.
	// The cause (unknown user, wrong password, inactive account) is
	// deliberately not distinguishable to prevent username enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidUsername    = errors.New("invalid username")
)

const maxUsernameLength = 150

// UserStore is the credential store contract the auth service needs.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) (int64, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}

// TokenIssuer issues signed bearer tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID int64) (string, error)
}

// AuthService handles registration and login.
type AuthService struct {
	users   UserStore
	tokens  TokenIssuer
	metrics metrics.Recorder
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, tokens TokenIssuer, recorder metrics.Recorder) *AuthService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &AuthService{
		users:   users,
		tokens:  tokens,
		metrics: recorder,
	}
}

// Register validates the password policy, hashes the password, and
// creates the user. No token is issued: registration and login are a
// deliberate two-step flow.
func (s *AuthService) Register(ctx context.Context, username, password, confirmation string) (int64, error) {
	if username == "" || len(username) > maxUsernameLength {
		return 0, ErrInvalidUsername
	}

	if err := auth.ValidatePassword(password, confirmation); err != nil {
		return 0, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}

	id, err := s.users.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			return 0, ErrUsernameTaken
		}
		return 0, err
	}

	s.metrics.IncUserRegistered()
	return id, nil
}

// Login verifies the credentials and returns a signed bearer token.
// When the username does not exist a dummy hash is still verified so
// the miss costs the same as a wrong password.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			_, _ = auth.VerifyPassword(password, auth.DummyHash)
			s.metrics.IncLoginFailure()
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	match, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil || !match || !user.IsActive {
		s.metrics.IncLoginFailure()
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	s.metrics.IncLoginSuccess()
	return token, nil
}
