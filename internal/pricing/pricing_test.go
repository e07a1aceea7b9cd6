package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateTax(t *testing.T) {
	tests := []struct {
		name     string
		subtotal float64
		taxRate  float64
		wantTax  float64
	}{
		{"standard rate", 1000, 16, 160},
		{"zero rate", 1000, 0, 0},
		{"zero subtotal", 0, 16, 0},
		{"fractional rate", 250, 7.5, 18.75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote := Calculate(tt.subtotal, tt.taxRate, 0, 0)
			assert.InDelta(t, tt.wantTax, quote.TaxAmount, 1e-9)
		})
	}
}

func TestCalculateShippingThreshold(t *testing.T) {
	tests := []struct {
		name         string
		subtotal     float64
		threshold    float64
		flat         float64
		wantShipping float64
	}{
		{"below threshold", 4999, 5000, 300, 300},
		{"at threshold", 5000, 5000, 300, 0},
		{"above threshold", 5001, 5000, 300, 0},
		{"zero threshold always free", 0, 0, 300, 0},
		{"zero flat cost", 100, 5000, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote := Calculate(tt.subtotal, 0, tt.flat, tt.threshold)
			assert.Equal(t, tt.wantShipping, quote.ShippingCost)
		})
	}
}

func TestCalculateCheckoutScenario(t *testing.T) {
	// Two lines: 1000 x 2 plus 500 x 1, tax 16%, threshold 5000, flat 300.
	quote := Calculate(2500, 16, 300, 5000)

	assert.Equal(t, 2500.0, quote.Subtotal)
	assert.InDelta(t, 400.0, quote.TaxAmount, 1e-9)
	assert.Equal(t, 300.0, quote.ShippingCost)
	assert.InDelta(t, 3200.0, quote.Total, 1e-9)
}

func TestCalculateTotalIsSumOfParts(t *testing.T) {
	quote := Calculate(12345.67, 8.25, 450, 20000)
	assert.InDelta(t, quote.Subtotal+quote.TaxAmount+quote.ShippingCost, quote.Total, 1e-9)
}
