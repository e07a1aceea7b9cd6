// Package pricing derives tax, shipping and total from a cart subtotal and
// the merchant's store settings.
package pricing

// Quote is the price breakdown for a checkout. Amounts keep full float64
// precision; rounding for display happens at the rendering edge so the cart
// and checkout views cannot drift by a cent.
type Quote struct {
	Subtotal     float64 `json:"subtotal"`
	TaxAmount    float64 `json:"tax_amount"`
	ShippingCost float64 `json:"shipping_cost"`
	Total        float64 `json:"total"`
}

// Calculate is pure. Shipping is waived once the subtotal reaches the
// free-shipping threshold, threshold value included.
func Calculate(subtotal, taxRatePercent, flatShippingCost, freeShippingThreshold float64) Quote {
	tax := subtotal * (taxRatePercent / 100)
	shipping := flatShippingCost
	if subtotal >= freeShippingThreshold {
		shipping = 0
	}
	return Quote{
		Subtotal:     subtotal,
		TaxAmount:    tax,
		ShippingCost: shipping,
		Total:        subtotal + tax + shipping,
	}
}
