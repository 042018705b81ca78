// Package catalog serves the static product catalog. Products and
// categories are JSON fixtures embedded at build time; there is no product
// database behind the storefront.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/vinyah/dinesh-pvc-pipes-sub001/internal/domain"
)

//go:embed fixtures/*.json
var fixtureFS embed.FS

// Catalog holds the loaded product catalog, indexed for lookup.
type Catalog struct {
	categories []domain.Category
	products   []domain.Product
	byID       map[string]int
}

// Load parses the embedded fixtures into a Catalog. It is called once at
// application start.
func Load() (*Catalog, error) {
	var categories []domain.Category
	if err := loadFixture("fixtures/categories.json", &categories); err != nil {
		return nil, err
	}

	var products []domain.Product
	if err := loadFixture("fixtures/products.json", &products); err != nil {
		return nil, err
	}

	byID := make(map[string]int, len(products))
	for i, p := range products {
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate product id %q", p.ID)
		}
		byID[p.ID] = i
	}

	return &Catalog{
		categories: categories,
		products:   products,
		byID:       byID,
	}, nil
}

func loadFixture(name string, dst any) error {
	data, err := fixtureFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read fixture %s: %w", name, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("parse fixture %s: %w", name, err)
	}
	return nil
}

// Categories returns all browsable categories.
func (c *Catalog) Categories() []domain.Category {
	return c.categories
}

// ProductsByCategory returns the products belonging to the given category,
// in fixture order. An unknown category yields an empty slice.
func (c *Catalog) ProductsByCategory(categoryID string) []domain.Product {
	out := []domain.Product{}
	for _, p := range c.products {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out
}

// Product returns the product with the given id.
func (c *Catalog) Product(id string) (*domain.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	return &c.products[i], true
}
