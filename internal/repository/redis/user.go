package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/vinyah/dinesh-pvc-pipes-sub001/internal/domain"
	apperrors "github.com/vinyah/dinesh-pvc-pipes-sub001/pkg/errors"
)

// usersKey is the single durable key holding the registered-user collection
// as a JSON array.
const usersKey = "users"

// UserRepository implements repository.UserRepository using Redis. The
// whole registry lives under one key, matching the storefront's flat user
// collection. The registry is tiny (demo auth), so read-modify-write of
// the full array is acceptable.
type UserRepository struct {
	client *redis.Client
}

// NewUserRepository creates a new Redis-backed user repository.
func NewUserRepository(client *redis.Client) *UserRepository {
	return &UserRepository{client: client}
}

// GetByEmail returns the user with the given email (case-insensitive).
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	users, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			return &users[i], nil
		}
	}

	return nil, apperrors.NotFound("user", email)
}

// Create appends a new user to the registry.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	users, err := r.load(ctx)
	if err != nil {
		return err
	}

	for i := range users {
		if strings.EqualFold(users[i].Email, user.Email) {
			return apperrors.AlreadyExists("user", "email", user.Email)
		}
	}

	users = append(users, *user)

	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("marshal users: %w", err)
	}

	if err := r.client.Set(ctx, usersKey, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set users: %w", err)
	}

	return nil
}

// load reads the full user array. A missing key is an empty registry.
func (r *UserRepository) load(ctx context.Context) ([]domain.User, error) {
	data, err := r.client.Get(ctx, usersKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return []domain.User{}, nil
		}
		return nil, fmt.Errorf("redis get users: %w", err)
	}

	var users []domain.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("unmarshal users: %w", err)
	}

	return users, nil
}
