// Package pricing resolves the numeric effective unit price of a
// catalog product. Catalog prices are display strings ("300 ج.م",
// "1,250.50 EGP") so parsing strips currency decoration first.
package pricing

import (
	"strconv"
	"strings"

	"github.com/mu7ammad-3li/swiftcart/internal/domain"
)

// ParsePrice extracts the numeric value from a decorated price string.
// Everything except digits and the decimal point is dropped. Fails
// closed to 0 on an empty or unparseable result, never negative.
func ParsePrice(price string) float64 {
	var b strings.Builder
	for _, r := range price {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}

	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// EffectivePrice returns the sale price when the product is on sale
// and its sale price parses to a positive number, else the listed
// price. A result of 0 means the catalog entry is unsellable.
func EffectivePrice(p domain.Product) float64 {
	if p.OnSale && p.SalePrice != "" {
		if sale := ParsePrice(p.SalePrice); sale > 0 {
			return sale
		}
	}
	return ParsePrice(p.Price)
}
