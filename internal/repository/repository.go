package repository

import (
	"context"

	"github.com/vinyah/dinesh-pvc-pipes-sub001/internal/domain"
)

// CartRepository persists carts in the durable storage scope: a saved cart
// survives process restarts and is only removed by an explicit clear.
type CartRepository interface {
	// Get retrieves a cart by shopper ID.
	Get(ctx context.Context, shopperID string) (*domain.Cart, error)

	// Save persists a cart, overwriting any existing cart for the shopper.
	Save(ctx context.Context, cart *domain.Cart) error

	// Delete removes the shopper's cart.
	Delete(ctx context.Context, shopperID string) error
}

// CheckoutRepository persists checkout state. Sessions live in the
// session-scoped storage (they expire); the delivery address and the
// fallback coupon copy are durable.
type CheckoutRepository interface {
	GetSession(ctx context.Context, shopperID string) (*domain.CheckoutSession, error)
	SaveSession(ctx context.Context, session *domain.CheckoutSession) error
	DeleteSession(ctx context.Context, shopperID string) error

	GetAddress(ctx context.Context, shopperID string) (*domain.DeliveryAddress, error)
	SaveAddress(ctx context.Context, shopperID string, addr *domain.DeliveryAddress) error

	GetFallbackCoupon(ctx context.Context, shopperID string) (float64, error)
	SaveFallbackCoupon(ctx context.Context, shopperID string, amount float64) error
}

// UserRepository persists the registered-user collection of the demo auth
// store. The collection is a single durable JSON array, mirroring the
// storefront's flat user registry.
type UserRepository interface {
	// GetByEmail returns the user with the given email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Create appends a new user. Returns ErrAlreadyExists if the email is taken.
	Create(ctx context.Context, user *domain.User) error
}
