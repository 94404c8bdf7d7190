package model

import "github.com/shopspring/decimal"

// Product is immutable reference data supplied by the catalog, not owned by
// the cart.
type Product struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	Image    string          `json:"image"`
}
