package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vinyah/dinesh-pvc-pipes-sub001/internal/domain"
	apperrors "github.com/vinyah/dinesh-pvc-pipes-sub001/pkg/errors"
)

const (
	sessionKeyPrefix = "checkout:"
	addressKeyPrefix = "address:"
	couponKeyPrefix  = "coupon:"
)

// CheckoutRepository implements repository.CheckoutRepository using Redis.
// Checkout sessions are written with a TTL (session scope); the delivery
// address and the fallback coupon copy are written without one (durable scope).
type CheckoutRepository struct {
	client     *redis.Client
	sessionTTL time.Duration
}

// NewCheckoutRepository creates a new Redis-backed checkout repository.
func NewCheckoutRepository(client *redis.Client, sessionTTL time.Duration) *CheckoutRepository {
	return &CheckoutRepository{
		client:     client,
		sessionTTL: sessionTTL,
	}
}

// GetSession retrieves the shopper's checkout session.
func (r *CheckoutRepository) GetSession(ctx context.Context, shopperID string) (*domain.CheckoutSession, error) {
	key := sessionKeyPrefix + shopperID

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("checkout session", shopperID)
		}
		return nil, fmt.Errorf("redis get checkout session: %w", err)
	}

	var session domain.CheckoutSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("unmarshal checkout session: %w", err)
	}

	return &session, nil
}

// SaveSession persists the checkout session with the session TTL.
func (r *CheckoutRepository) SaveSession(ctx context.Context, session *domain.CheckoutSession) error {
	key := sessionKeyPrefix + session.ShopperID

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal checkout session: %w", err)
	}

	if err := r.client.Set(ctx, key, data, r.sessionTTL).Err(); err != nil {
		return fmt.Errorf("redis set checkout session: %w", err)
	}

	return nil
}

// DeleteSession removes the shopper's checkout session.
func (r *CheckoutRepository) DeleteSession(ctx context.Context, shopperID string) error {
	if err := r.client.Del(ctx, sessionKeyPrefix+shopperID).Err(); err != nil {
		return fmt.Errorf("redis del checkout session: %w", err)
	}
	return nil
}

// GetAddress retrieves the shopper's durable delivery address.
func (r *CheckoutRepository) GetAddress(ctx context.Context, shopperID string) (*domain.DeliveryAddress, error) {
	key := addressKeyPrefix + shopperID

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("delivery address", shopperID)
		}
		return nil, fmt.Errorf("redis get address: %w", err)
	}

	var addr domain.DeliveryAddress
	if err := json.Unmarshal(data, &addr); err != nil {
		return nil, fmt.Errorf("unmarshal address: %w", err)
	}

	return &addr, nil
}

// SaveAddress persists the delivery address without expiry.
func (r *CheckoutRepository) SaveAddress(ctx context.Context, shopperID string, addr *domain.DeliveryAddress) error {
	data, err := json.Marshal(addr)
	if err != nil {
		return fmt.Errorf("marshal address: %w", err)
	}

	if err := r.client.Set(ctx, addressKeyPrefix+shopperID, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set address: %w", err)
	}

	return nil
}

// GetFallbackCoupon retrieves the durable coupon copy. Returns 0 if no
// coupon has been stored.
func (r *CheckoutRepository) GetFallbackCoupon(ctx context.Context, shopperID string) (float64, error) {
	val, err := r.client.Get(ctx, couponKeyPrefix+shopperID).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, fmt.Errorf("redis get coupon: %w", err)
	}

	amount, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("parse coupon amount: %w", err)
	}

	return amount, nil
}

// SaveFallbackCoupon persists the durable coupon copy without expiry.
func (r *CheckoutRepository) SaveFallbackCoupon(ctx context.Context, shopperID string, amount float64) error {
	val := strconv.FormatFloat(amount, 'f', -1, 64)

	if err := r.client.Set(ctx, couponKeyPrefix+shopperID, val, 0).Err(); err != nil {
		return fmt.Errorf("redis set coupon: %w", err)
	}

	return nil
}
