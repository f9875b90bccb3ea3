package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mu7ammad-3li/swiftcart/internal/domain"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"plain number", "300", 300},
		{"egp suffix", "300 ج.م", 300},
		{"dollar prefix", "$19.99", 19.99},
		{"thousands separator", "1,250.50 EGP", 1250.50},
		{"decimal only", "0.5", 0.5},
		{"empty", "", 0},
		{"no digits", "free", 0},
		{"garbage", "---", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePrice(tt.input))
		})
	}
}

func TestEffectivePrice_SalePriceUsedWhenOnSale(t *testing.T) {
	p := domain.Product{Price: "300 ج.م", SalePrice: "250 ج.م", OnSale: true}
	assert.Equal(t, 250.0, EffectivePrice(p))
}

func TestEffectivePrice_ListedPriceWhenNotOnSale(t *testing.T) {
	p := domain.Product{Price: "300 ج.م", SalePrice: "250 ج.م", OnSale: false}
	assert.Equal(t, 300.0, EffectivePrice(p))
}

func TestEffectivePrice_BadSalePriceFallsBackToListed(t *testing.T) {
	p := domain.Product{Price: "300", SalePrice: "call us", OnSale: true}
	assert.Equal(t, 300.0, EffectivePrice(p))
}

func TestEffectivePrice_UnparseableListedPriceIsZero(t *testing.T) {
	p := domain.Product{Price: "TBD"}
	assert.Equal(t, 0.0, EffectivePrice(p))
}
