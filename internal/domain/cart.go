package domain

import "time"

// Cart represents a shopper's cart. Lines keep their insertion order.
type Cart struct {
	ShopperID string     `json:"shopper_id"`
	Lines     []LineItem `json:"lines"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// LineItem represents a single product-variant entry in the cart.
//
// Price is always numeric; DisplayPrice carries the original formatted
// representation (e.g. "₹120.50") for presentation only and is never used
// in arithmetic. The four variant dimensions are nullable: a nil dimension
// is a valid, matchable value.
type LineItem struct {
	Name         string  `json:"name"`
	Code         string  `json:"code,omitempty"`
	Image        string  `json:"image,omitempty"`
	Price        float64 `json:"price"`
	DisplayPrice string  `json:"display_price,omitempty"`
	Size         *string `json:"size"`
	Color        *string `json:"color"`
	Thickness    *string `json:"thickness"`
	Length       *string `json:"length"`
	Quantity     int     `json:"quantity"`
}

// SameLine reports whether two line items are the same cart line.
// Identity is (name, size, color, thickness, length); price, image, and
// quantity are not part of identity.
func (l LineItem) SameLine(other LineItem) bool {
	return l.Name == other.Name &&
		dimEqual(l.Size, other.Size) &&
		dimEqual(l.Color, other.Color) &&
		dimEqual(l.Thickness, other.Thickness) &&
		dimEqual(l.Length, other.Length)
}

func dimEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// FindLineIndex returns the index of the cart line matching the given item's
// identity, or -1 if no line matches.
func (c *Cart) FindLineIndex(item LineItem) int {
	for i := range c.Lines {
		if c.Lines[i].SameLine(item) {
			return i
		}
	}
	return -1
}

// TotalPrice computes the derived cart total: the sum of price × quantity
// over all lines. It is recomputed on every call, never stored.
func (c *Cart) TotalPrice() float64 {
	var total float64
	for _, line := range c.Lines {
		total += line.Price * float64(line.Quantity)
	}
	return total
}

// LineCount returns the total number of units across all lines.
func (c *Cart) LineCount() int {
	var count int
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

// Normalize repairs lines restored from storage: a non-positive quantity
// defaults to 1 and a negative price to 0.
func (c *Cart) Normalize() {
	for i := range c.Lines {
		if c.Lines[i].Quantity <= 0 {
			c.Lines[i].Quantity = 1
		}
		if c.Lines[i].Price < 0 {
			c.Lines[i].Price = 0
		}
	}
}
