package model

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrProfileIncomplete = errors.New("customer profile is missing name or phone")
	ErrItemNotFound      = errors.New("cart item not found")
)

type DeliveryMethod string

const (
	Pickup   DeliveryMethod = "pickup"
	Delivery DeliveryMethod = "delivery"
)

type Address struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement"`
	District   string `json:"district"`
	City       string `json:"city"`
}

type CustomerSnapshot struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// CartLineItem is one configured selection in the advanced cart.
// Address is nil unless Delivery is Delivery.
type CartLineItem struct {
	ID        int64            `json:"id"`
	ProductID int64            `json:"productId"`
	Name      string           `json:"name"`
	Price     decimal.Decimal  `json:"price"`
	Image     string           `json:"image"`
	Category  string           `json:"category"`
	Quantity  int              `json:"quantity"`
	Size      string           `json:"size,omitempty"`
	Delivery  DeliveryMethod   `json:"delivery"`
	Customer  CustomerSnapshot `json:"user"`
	Address   *Address         `json:"address,omitempty"`
}

// SameSelection reports whether both items describe the same selection and
// are therefore merged by summing quantities. Address and customer data do
// not participate in identity.
func (i CartLineItem) SameSelection(other CartLineItem) bool {
	return i.ProductID == other.ProductID && i.Size == other.Size && i.Delivery == other.Delivery
}

// LineItemDraft carries a selection completed in the product configuration
// flow, before the cart assigns it an id.
type LineItemDraft struct {
	ProductID int64
	Name      string
	Price     decimal.Decimal
	Image     string
	Category  string
	Quantity  int
	Size      string
	Delivery  DeliveryMethod
	Customer  CustomerSnapshot
	Address   *Address
}

// LegacyCartRow is the simplified per-product view kept for components that
// only understand one row per product. It is always derived, never mutated
// directly.
type LegacyCartRow struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image"`
	Qty   int             `json:"qty"`
}

// LegacyProjection groups line items by product and sums their quantities.
// Each row carries the first-seen name, price and image; row order follows
// the first appearance of each product.
func LegacyProjection(items []CartLineItem) []LegacyCartRow {
	rows := make([]LegacyCartRow, 0, len(items))
	index := make(map[int64]int, len(items))

	for _, item := range items {
		if i, ok := index[item.ProductID]; ok {
			rows[i].Qty += item.Quantity
			continue
		}
		index[item.ProductID] = len(rows)
		rows = append(rows, LegacyCartRow{
			ID:    item.ProductID,
			Name:  item.Name,
			Price: item.Price,
			Image: item.Image,
			Qty:   item.Quantity,
		})
	}

	return rows
}
