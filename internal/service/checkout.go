package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/vinyah/dinesh-pvc-pipes-sub001/internal/domain"
	"github.com/vinyah/dinesh-pvc-pipes-sub001/internal/event"
	"github.com/vinyah/dinesh-pvc-pipes-sub001/internal/repository"
	apperrors "github.com/vinyah/dinesh-pvc-pipes-sub001/pkg/errors"
)

// gstRate is the GST fraction applied to the subtotal when a checkout
// snapshot is taken.
const gstRate = 0.18

// coupons maps the accepted coupon codes to their flat discount amount.
var coupons = map[string]float64{
	"PIPE100":   100,
	"NEWHOME50": 50,
	"BULK500":   500,
}

// AddressInput holds the delivery address form fields.
type AddressInput struct {
	Address string `json:"address" validate:"required,min=5"`
	City    string `json:"city" validate:"required"`
	Pincode string `json:"pincode" validate:"required,numeric,len=6"`
}

// CheckoutService drives the linear checkout flow: address, delivery,
// review, place order. The checkout session is ephemeral, session-scoped
// state; the cart it summarizes stays durable and untouched until the
// order is placed.
type CheckoutService struct {
	cart     *CartService
	repo     repository.CheckoutRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(cart *CartService, repo repository.CheckoutRepository, producer *event.Producer, logger *slog.Logger) *CheckoutService {
	return &CheckoutService{
		cart:     cart,
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// BeginCheckout snapshots the cart's subtotal and GST into the checkout
// session, freezing the numbers the shopper will see through the rest of
// the flow even if the cart changes behind it.
func (s *CheckoutService) BeginCheckout(ctx context.Context, shopperID string) (*domain.CheckoutSession, error) {
	if shopperID == "" {
		return nil, apperrors.InvalidInput("shopper id is required")
	}

	cart, err := s.cart.GetCart(ctx, shopperID)
	if err != nil {
		return nil, err
	}
	if len(cart.Lines) == 0 {
		return nil, apperrors.InvalidInput("cart is empty")
	}

	subtotal := cart.TotalPrice()

	session := s.session(ctx, shopperID)
	session.Snapshot = &domain.CheckoutSnapshot{
		Subtotal: subtotal,
		GST:      subtotal * gstRate,
	}
	session.UpdatedAt = time.Now().UTC()

	s.saveSession(ctx, session)

	s.logger.InfoContext(ctx, "checkout started",
		slog.String("shopper_id", shopperID),
		slog.Float64("subtotal", subtotal),
	)

	return session, nil
}

// SaveAddress persists the delivery address in the durable scope. Field
// validation happens before anything is written, so a rejected address
// leaves no partial state.
func (s *CheckoutService) SaveAddress(ctx context.Context, shopperID string, input AddressInput) error {
	if shopperID == "" {
		return apperrors.InvalidInput("shopper id is required")
	}
	if input.Address == "" || input.City == "" || input.Pincode == "" {
		return apperrors.InvalidInput("address, city, and pincode are required")
	}

	addr := &domain.DeliveryAddress{
		Address: input.Address,
		City:    input.City,
		Pincode: input.Pincode,
	}

	if err := s.repo.SaveAddress(ctx, shopperID, addr); err != nil {
		s.logger.WarnContext(ctx, "address persist failed",
			slog.String("shopper_id", shopperID),
			slog.String("error", err.Error()),
		)
	}

	return nil
}

// GetAddress returns the shopper's saved delivery address.
func (s *CheckoutService) GetAddress(ctx context.Context, shopperID string) (*domain.DeliveryAddress, error) {
	if shopperID == "" {
		return nil, apperrors.InvalidInput("shopper id is required")
	}
	return s.repo.GetAddress(ctx, shopperID)
}

// SelectDelivery records the chosen delivery option and persists it to the
// session scope immediately, so returning to the delivery step restores
// the prior selection.
func (s *CheckoutService) SelectDelivery(ctx context.Context, shopperID, option string) (*domain.CheckoutSession, error) {
	if shopperID == "" {
		return nil, apperrors.InvalidInput("shopper id is required")
	}
	if _, ok := domain.DeliveryPrice(option); !ok {
		return nil, apperrors.InvalidInput("unknown delivery option: " + option)
	}

	session := s.session(ctx, shopperID)
	session.DeliveryOption = option
	session.UpdatedAt = time.Now().UTC()

	s.saveSession(ctx, session)

	s.logger.InfoContext(ctx, "delivery option selected",
		slog.String("shopper_id", shopperID),
		slog.String("option", option),
	)

	return session, nil
}

// ApplyCoupon applies a coupon code to the checkout session. The discount
// amount is written to the session and also to a durable fallback copy.
func (s *CheckoutService) ApplyCoupon(ctx context.Context, shopperID, code string) (*domain.CheckoutSession, error) {
	if shopperID == "" {
		return nil, apperrors.InvalidInput("shopper id is required")
	}

	amount, ok := coupons[code]
	if !ok {
		return nil, apperrors.InvalidInput("invalid coupon code")
	}

	session := s.session(ctx, shopperID)
	session.CouponAmount = amount
	session.UpdatedAt = time.Now().UTC()

	s.saveSession(ctx, session)

	if err := s.repo.SaveFallbackCoupon(ctx, shopperID, amount); err != nil {
		s.logger.WarnContext(ctx, "coupon fallback persist failed",
			slog.String("shopper_id", shopperID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "coupon applied",
		slog.String("shopper_id", shopperID),
		slog.String("code", code),
		slog.Float64("amount", amount),
	)

	return session, nil
}

// Summary derives the numbers for the delivery and review steps. A
// snapshotted subtotal wins over the live cart total; a session without a
// coupon falls back to the durable coupon copy.
func (s *CheckoutService) Summary(ctx context.Context, shopperID string) (*domain.CheckoutSummary, error) {
	if shopperID == "" {
		return nil, apperrors.InvalidInput("shopper id is required")
	}

	session := s.session(ctx, shopperID)

	if session.CouponAmount == 0 {
		amount, err := s.repo.GetFallbackCoupon(ctx, shopperID)
		if err != nil {
			s.logger.WarnContext(ctx, "coupon fallback lookup failed",
				slog.String("shopper_id", shopperID),
				slog.String("error", err.Error()),
			)
		} else {
			session.CouponAmount = amount
		}
	}

	cart, err := s.cart.GetCart(ctx, shopperID)
	if err != nil {
		return nil, err
	}

	summary := session.Summarize(cart.TotalPrice())
	return &summary, nil
}

// PlaceOrder completes the checkout: it publishes an order.placed event
// and clears the cart and all transient checkout state. No order record is
// kept; there is no payment and no inventory involvement.
func (s *CheckoutService) PlaceOrder(ctx context.Context, shopperID string) (*domain.CheckoutSummary, error) {
	if shopperID == "" {
		return nil, apperrors.InvalidInput("shopper id is required")
	}

	cart, err := s.cart.GetCart(ctx, shopperID)
	if err != nil {
		return nil, err
	}
	if len(cart.Lines) == 0 {
		return nil, apperrors.InvalidInput("cart is empty")
	}

	summary, err := s.Summary(ctx, shopperID)
	if err != nil {
		return nil, err
	}

	if err := s.producer.PublishOrderPlaced(ctx, shopperID, *summary, cart.Lines); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.placed event",
			slog.String("shopper_id", shopperID),
			slog.String("error", err.Error()),
		)
	}

	if err := s.cart.ClearCart(ctx, shopperID); err != nil {
		return nil, err
	}

	if err := s.repo.DeleteSession(ctx, shopperID); err != nil {
		s.logger.WarnContext(ctx, "checkout session delete failed",
			slog.String("shopper_id", shopperID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order placed",
		slog.String("shopper_id", shopperID),
		slog.Float64("total", summary.Total),
	)

	return summary, nil
}

// session fetches the shopper's checkout session, starting a fresh one if
// none exists or the stored one is unreadable.
func (s *CheckoutService) session(ctx context.Context, shopperID string) *domain.CheckoutSession {
	session, err := s.repo.GetSession(ctx, shopperID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "checkout session restore failed, starting fresh",
				slog.String("shopper_id", shopperID),
				slog.String("error", err.Error()),
			)
		}
		now := time.Now().UTC()
		return &domain.CheckoutSession{
			ShopperID: shopperID,
			StartedAt: now,
			UpdatedAt: now,
		}
	}
	return session
}

// saveSession writes the session to the session scope, best effort.
func (s *CheckoutService) saveSession(ctx context.Context, session *domain.CheckoutSession) {
	if err := s.repo.SaveSession(ctx, session); err != nil {
		s.logger.WarnContext(ctx, "checkout session persist failed",
			slog.String("shopper_id", session.ShopperID),
			slog.String("error", err.Error()),
		)
	}
}
