package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/vinyah/dinesh-pvc-pipes-sub001/internal/domain"
	"github.com/vinyah/dinesh-pvc-pipes-sub001/internal/event"
	"github.com/vinyah/dinesh-pvc-pipes-sub001/internal/pricing"
	"github.com/vinyah/dinesh-pvc-pipes-sub001/internal/repository"
	apperrors "github.com/vinyah/dinesh-pvc-pipes-sub001/pkg/errors"
)

// AddLineInput holds the parameters for adding a line to the cart. Price,
// DisplayPrice, and Quantity are deliberately loose: product pages send
// whatever representation their rate table produced, and the service
// coerces it.
type AddLineInput struct {
	Name         string  `json:"name"`
	Code         string  `json:"code"`
	Image        string  `json:"image"`
	Price        any     `json:"price"`
	DisplayPrice any     `json:"display_price"`
	Size         *string `json:"size"`
	Color        *string `json:"color"`
	Thickness    *string `json:"thickness"`
	Length       *string `json:"length"`
	Quantity     any     `json:"quantity"`
}

// CartService is the single source of truth for cart contents.
//
// Persistence is best effort: a storage failure is logged and the service
// degrades to memory-only operation for that call rather than failing the
// shopper's action. Every mutation either fully succeeds in memory or
// fully no-ops; storage is never left partially written.
type CartService struct {
	repo     repository.CartRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(repo repository.CartRepository, producer *event.Producer, logger *slog.Logger) *CartService {
	return &CartService{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// GetCart retrieves the shopper's cart, restoring it from durable storage.
// A missing or unreadable stored cart restores as an empty cart; this
// method never fails on storage problems.
func (s *CartService) GetCart(ctx context.Context, shopperID string) (*domain.Cart, error) {
	if shopperID == "" {
		return nil, apperrors.InvalidInput("shopper id is required")
	}
	return s.restore(ctx, shopperID), nil
}

// AddToCart adds a line to the shopper's cart. If a line with the same
// identity (name, size, color, thickness, length) exists, quantities are
// summed and every other field of the existing line is kept; the incoming
// price and image are discarded on merge. Otherwise the line is appended.
func (s *CartService) AddToCart(ctx context.Context, shopperID string, input AddLineInput) (*domain.Cart, error) {
	if shopperID == "" {
		return nil, apperrors.InvalidInput("shopper id is required")
	}
	if input.Name == "" {
		return nil, apperrors.InvalidInput("name is required")
	}

	line := domain.LineItem{
		Name:         input.Name,
		Code:         input.Code,
		Image:        input.Image,
		Price:        pricing.ParseAmount(input.Price),
		DisplayPrice: displayString(input.DisplayPrice, input.Price),
		Size:         input.Size,
		Color:        input.Color,
		Thickness:    input.Thickness,
		Length:       input.Length,
		Quantity:     pricing.SanitizeQuantity(input.Quantity),
	}

	cart := s.restore(ctx, shopperID)

	if idx := cart.FindLineIndex(line); idx >= 0 {
		// Same line: only the quantity moves. The existing line's price,
		// image, and display price stay as they were.
		cart.Lines[idx].Quantity += line.Quantity
	} else {
		cart.Lines = append(cart.Lines, line)
	}
	cart.UpdatedAt = time.Now().UTC()

	s.persist(ctx, cart)

	if err := s.producer.PublishCartUpdated(ctx, cart); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("shopper_id", shopperID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "line added to cart",
		slog.String("shopper_id", shopperID),
		slog.String("name", line.Name),
		slog.Int("quantity", line.Quantity),
	)

	return cart, nil
}

// RemoveFromCart removes the line at the given zero-based position.
// Subsequent lines shift down by one. An out-of-range index is a no-op.
func (s *CartService) RemoveFromCart(ctx context.Context, shopperID string, index int) (*domain.Cart, error) {
	if shopperID == "" {
		return nil, apperrors.InvalidInput("shopper id is required")
	}

	cart := s.restore(ctx, shopperID)

	if index < 0 || index >= len(cart.Lines) {
		return cart, nil
	}

	cart.Lines = append(cart.Lines[:index], cart.Lines[index+1:]...)
	cart.UpdatedAt = time.Now().UTC()

	s.persist(ctx, cart)

	if err := s.producer.PublishCartUpdated(ctx, cart); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("shopper_id", shopperID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "line removed from cart",
		slog.String("shopper_id", shopperID),
		slog.Int("index", index),
	)

	return cart, nil
}

// ClearCart empties the shopper's cart unconditionally.
func (s *CartService) ClearCart(ctx context.Context, shopperID string) error {
	if shopperID == "" {
		return apperrors.InvalidInput("shopper id is required")
	}

	if err := s.repo.Delete(ctx, shopperID); err != nil {
		s.logger.WarnContext(ctx, "cart delete failed, cart cleared in memory only",
			slog.String("shopper_id", shopperID),
			slog.String("error", err.Error()),
		)
	}

	if err := s.producer.PublishCartCleared(ctx, shopperID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.cleared event",
			slog.String("shopper_id", shopperID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "cart cleared",
		slog.String("shopper_id", shopperID),
	)

	return nil
}

// restore fetches the stored cart, falling back to an empty cart when the
// stored value is missing or unreadable. Storage failures are logged, never
// surfaced.
func (s *CartService) restore(ctx context.Context, shopperID string) *domain.Cart {
	cart, err := s.repo.Get(ctx, shopperID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "cart restore failed, starting from empty",
				slog.String("shopper_id", shopperID),
				slog.String("error", err.Error()),
			)
		}
		now := time.Now().UTC()
		return &domain.Cart{
			ShopperID: shopperID,
			Lines:     []domain.LineItem{},
			CreatedAt: now,
			UpdatedAt: now,
		}
	}
	return cart
}

// persist writes the cart back to durable storage, best effort.
func (s *CartService) persist(ctx context.Context, cart *domain.Cart) {
	if err := s.repo.Save(ctx, cart); err != nil {
		s.logger.WarnContext(ctx, "cart persist failed, continuing memory-only",
			slog.String("shopper_id", cart.ShopperID),
			slog.String("error", err.Error()),
		)
	}
}

// displayString renders the display-only price representation. When the
// page did not send one explicitly, a string price is reused verbatim so
// formatting like currency symbols survives.
func displayString(display, price any) string {
	v := display
	if v == nil {
		if s, ok := price.(string); ok {
			return s
		}
		return ""
	}

	switch d := v.(type) {
	case string:
		return d
	case float64:
		return strconv.FormatFloat(d, 'f', -1, 64)
	case int:
		return strconv.Itoa(d)
	default:
		return fmt.Sprint(d)
	}
}
