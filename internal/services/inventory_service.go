package services

import "shopfront/internal/domain"

// Stock thresholds for the availability badge.
const (
	StatusInStock    = "IN_STOCK"
	StatusLowStock   = "LOW_STOCK"
	StatusOutOfStock = "OUT_OF_STOCK"

	lowStockBelow = 5
)

// Availability maps a product's stock quantity to a badge. Stock lives on the
// generated product itself, so there is no per-region lookup.
func Availability(p domain.Product) domain.Availability {
	qty := p.StockQuantity
	if !p.InStock {
		qty = 0
	}
	status := StatusOutOfStock
	switch {
	case qty >= lowStockBelow:
		status = StatusInStock
	case qty > 0:
		status = StatusLowStock
	}
	return domain.Availability{Status: status, Qty: qty}
}
