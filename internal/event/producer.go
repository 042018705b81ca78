package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vinyah/dinesh-pvc-pipes-sub001/internal/domain"
	pkgkafka "github.com/vinyah/dinesh-pvc-pipes-sub001/pkg/kafka"
)

// Kafka topic constants for storefront domain events.
const (
	TopicCartUpdated = "storefront.cart.updated"
	TopicCartCleared = "storefront.cart.cleared"
	TopicOrderPlaced = "storefront.order.placed"
)

// Aggregate type constants.
const (
	AggregateTypeCart  = "cart"
	AggregateTypeOrder = "order"
)

// Source identifier for events originating from the storefront.
const SourceStorefront = "storefront"

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	ShopperID  string            `json:"shopper_id"`
	Lines      []domain.LineItem `json:"lines"`
	LineCount  int               `json:"line_count"`
	TotalPrice float64           `json:"total_price"`
}

// CartClearedData is the payload for a cart.cleared event.
type CartClearedData struct {
	ShopperID string `json:"shopper_id"`
}

// OrderPlacedData is the payload for an order.placed event. The storefront
// keeps no order record of its own; this event is the only trace an order
// leaves.
type OrderPlacedData struct {
	ShopperID string                 `json:"shopper_id"`
	Summary   domain.CheckoutSummary `json:"summary"`
	Lines     []domain.LineItem      `json:"lines"`
}

// Producer publishes storefront domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the storefront.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishCartUpdated publishes a cart.updated event.
func (p *Producer) PublishCartUpdated(ctx context.Context, cart *domain.Cart) error {
	data := CartUpdatedData{
		ShopperID:  cart.ShopperID,
		Lines:      cart.Lines,
		LineCount:  cart.LineCount(),
		TotalPrice: cart.TotalPrice(),
	}

	event, err := pkgkafka.NewEvent(TopicCartUpdated, cart.ShopperID, AggregateTypeCart, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartUpdated, event); err != nil {
		return fmt.Errorf("publish cart.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.updated event",
		slog.String("shopper_id", cart.ShopperID),
		slog.Int("line_count", cart.LineCount()),
	)

	return nil
}

// PublishCartCleared publishes a cart.cleared event.
func (p *Producer) PublishCartCleared(ctx context.Context, shopperID string) error {
	data := CartClearedData{ShopperID: shopperID}

	event, err := pkgkafka.NewEvent(TopicCartCleared, shopperID, AggregateTypeCart, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.cleared event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartCleared, event); err != nil {
		return fmt.Errorf("publish cart.cleared event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.cleared event",
		slog.String("shopper_id", shopperID),
	)

	return nil
}

// PublishOrderPlaced publishes an order.placed event.
func (p *Producer) PublishOrderPlaced(ctx context.Context, shopperID string, summary domain.CheckoutSummary, lines []domain.LineItem) error {
	data := OrderPlacedData{
		ShopperID: shopperID,
		Summary:   summary,
		Lines:     lines,
	}

	event, err := pkgkafka.NewEvent(TopicOrderPlaced, shopperID, AggregateTypeOrder, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create order.placed event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicOrderPlaced, event); err != nil {
		return fmt.Errorf("publish order.placed event: %w", err)
	}

	p.logger.DebugContext(ctx, "published order.placed event",
		slog.String("shopper_id", shopperID),
	)

	return nil
}
