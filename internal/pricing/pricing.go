// Package pricing resolves a numeric unit price from a product rate table
// keyed by user-selected variant dimensions.
//
// Rate tables vary in shape across the catalog: a flat number, a map of
// size→price, a map of size→(map of length→price), or a map of
// bend→(map of size→price). Prices inside the tables may be plain numbers
// or formatted strings such as "₹120.50". Every function here is pure and
// total: malformed or missing rate data degrades to a price of 0 instead
// of failing.
package pricing

import (
	"strconv"
	"strings"
)

// Resolve descends the rate table along the given variant selections and
// returns the price found there as a non-negative number. A scalar table
// short-circuits the descent. A missing path, an unparsable price, or a
// path that stops short of a leaf all resolve to 0.
func Resolve(table any, selections ...string) float64 {
	return ParseAmount(Raw(table, selections...))
}

// Raw returns the un-coerced leaf value at the path given by the variant
// selections, suitable for display. A scalar table short-circuits the
// descent. Returns nil when the path is missing or stops short of a leaf.
func Raw(table any, selections ...string) any {
	node := table
	for _, sel := range selections {
		m, ok := node.(map[string]any)
		if !ok {
			// Scalar reached before the selections ran out: the table
			// itself is the price.
			break
		}
		child, ok := m[sel]
		if !ok {
			return nil
		}
		node = child
	}

	if _, stillNested := node.(map[string]any); stillNested {
		return nil
	}

	return node
}

// ParseAmount coerces a heterogeneous price representation to a
// non-negative float64. Numeric values pass through; strings are stripped
// of every character that is not a digit or decimal point and then parsed.
// Anything else, and any parse failure, yields 0.
func ParseAmount(v any) float64 {
	switch n := v.(type) {
	case float64:
		return clampNonNegative(n)
	case float32:
		return clampNonNegative(float64(n))
	case int:
		return clampNonNegative(float64(n))
	case int64:
		return clampNonNegative(float64(n))
	case string:
		var b strings.Builder
		for _, r := range n {
			if (r >= '0' && r <= '9') || r == '.' {
				b.WriteRune(r)
			}
		}
		parsed, err := strconv.ParseFloat(b.String(), 64)
		if err != nil {
			return 0
		}
		return clampNonNegative(parsed)
	default:
		return 0
	}
}

// SanitizeQuantity coerces a heterogeneous quantity representation to a
// positive integer. Non-numeric values and anything below 1 default to 1.
func SanitizeQuantity(v any) int {
	switch n := v.(type) {
	case int:
		return atLeastOne(n)
	case int64:
		return atLeastOne(int(n))
	case float64:
		return atLeastOne(int(n))
	case float32:
		return atLeastOne(int(n))
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 1
		}
		return atLeastOne(int(parsed))
	default:
		return 1
	}
}

func clampNonNegative(n float64) float64 {
	if n < 0 {
		return 0
	}
	return n
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
