package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/vinyah/dinesh-pvc-pipes-sub001/internal/auth"
	"github.com/vinyah/dinesh-pvc-pipes-sub001/internal/domain"
	"github.com/vinyah/dinesh-pvc-pipes-sub001/internal/repository"
	apperrors "github.com/vinyah/dinesh-pvc-pipes-sub001/pkg/errors"
)

// bcryptCost is the cost factor for bcrypt password hashing.
const bcryptCost = 12

// minPasswordLength is the minimum password length required.
const minPasswordLength = 8

// RegisterInput holds the parameters for registering a shopper.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// LoginInput holds the parameters for shopper login.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Session is the result of a successful login.
type Session struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
	User      domain.Profile `json:"user"`
}

// Authenticator is the demo auth capability. It identifies shoppers for a
// demo storefront and nothing more: there are no roles, no account
// recovery, and the token is only a convenience for the client. Keeping
// the surface behind this interface makes sure the demo flow cannot be
// mistaken for, or accidentally wired into, a real credential path.
type Authenticator interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Profile, error)
	Login(ctx context.Context, input LoginInput) (*Session, error)
	CurrentUser(ctx context.Context, token string) (*domain.Profile, error)
}

// DemoAuth implements Authenticator against the key-value user registry.
// Passwords are bcrypt-hashed before storage; the clear text never leaves
// this type.
type DemoAuth struct {
	repo   repository.UserRepository
	tokens *auth.TokenManager
	logger *slog.Logger
}

// NewDemoAuth creates the demo authenticator.
func NewDemoAuth(repo repository.UserRepository, tokens *auth.TokenManager, logger *slog.Logger) *DemoAuth {
	return &DemoAuth{
		repo:   repo,
		tokens: tokens,
		logger: logger,
	}
}

// Register creates a new shopper account with a hashed password.
func (a *DemoAuth) Register(ctx context.Context, input RegisterInput) (*domain.Profile, error) {
	if input.Name == "" {
		return nil, apperrors.InvalidInput("name is required")
	}
	if input.Email == "" {
		return nil, apperrors.InvalidInput("email is required")
	}
	if len(input.Password) < minPasswordLength {
		return nil, apperrors.InvalidInput("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Phone:        input.Phone,
		Address:      input.Address,
		CreatedAt:    time.Now().UTC(),
	}

	if err := a.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	a.logger.InfoContext(ctx, "shopper registered",
		slog.String("email", user.Email),
	)

	profile := user.Profile()
	return &profile, nil
}

// Login verifies the credentials and issues a session token.
func (a *DemoAuth) Login(ctx context.Context, input LoginInput) (*Session, error) {
	if input.Email == "" || input.Password == "" {
		return nil, apperrors.InvalidInput("email and password are required")
	}

	user, err := a.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, apperrors.Unauthorized("invalid email or password")
	}

	token, err := a.tokens.Generate(user.Email, user.Name)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	a.logger.InfoContext(ctx, "shopper logged in",
		slog.String("email", user.Email),
	)

	return &Session{
		Token:     token,
		ExpiresAt: time.Now().UTC().Add(a.tokens.Expiry()),
		User:      user.Profile(),
	}, nil
}

// CurrentUser resolves a session token back to the shopper's profile.
func (a *DemoAuth) CurrentUser(ctx context.Context, token string) (*domain.Profile, error) {
	claims, err := a.tokens.Validate(token)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid or expired session")
	}

	user, err := a.repo.GetByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("unknown shopper")
		}
		return nil, err
	}

	profile := user.Profile()
	return &profile, nil
}
