package service

import (
	"log/slog"

	"github.com/vinyah/dinesh-pvc-pipes-sub001/internal/catalog"
	"github.com/vinyah/dinesh-pvc-pipes-sub001/internal/domain"
	"github.com/vinyah/dinesh-pvc-pipes-sub001/internal/pricing"
	apperrors "github.com/vinyah/dinesh-pvc-pipes-sub001/pkg/errors"
)

// VariantQuote is the resolved unit price for a variant selection. Price
// is the numeric value the cart will use; DisplayPrice is the raw rate
// table entry for presentation.
type VariantQuote struct {
	ProductID    string            `json:"product_id"`
	Selections   map[string]string `json:"selections,omitempty"`
	Price        float64           `json:"price"`
	DisplayPrice string            `json:"display_price,omitempty"`
}

// CatalogService serves the static product catalog and resolves variant
// prices against product rate tables.
type CatalogService struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(c *catalog.Catalog, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		catalog: c,
		logger:  logger,
	}
}

// Categories returns all browsable categories.
func (s *CatalogService) Categories() []domain.Category {
	return s.catalog.Categories()
}

// ProductsByCategory returns the products of one category.
func (s *CatalogService) ProductsByCategory(categoryID string) []domain.Product {
	return s.catalog.ProductsByCategory(categoryID)
}

// Product returns a single product by id.
func (s *CatalogService) Product(id string) (*domain.Product, error) {
	p, ok := s.catalog.Product(id)
	if !ok {
		return nil, apperrors.NotFound("product", id)
	}
	return p, nil
}

// QuoteVariant resolves the unit price for the given variant selections.
// The product's dimension order decides the rate table descent; a missing
// or partial selection resolves to 0 rather than failing, so a page can
// always render a price.
func (s *CatalogService) QuoteVariant(productID string, selections map[string]string) (*VariantQuote, error) {
	product, err := s.Product(productID)
	if err != nil {
		return nil, err
	}

	path := make([]string, 0, len(product.Dimensions))
	for _, dim := range product.Dimensions {
		path = append(path, selections[dim])
	}

	raw := pricing.Raw(product.Rates, path...)

	return &VariantQuote{
		ProductID:    productID,
		Selections:   selections,
		Price:        pricing.ParseAmount(raw),
		DisplayPrice: displayString(raw, nil),
	}, nil
}
