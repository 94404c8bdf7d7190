package model

import "github.com/google/uuid"

// CartChanged signals that the legacy cart view must be re-read. It carries
// no payload; listeners re-read the store.
type CartChanged struct{}

func (e CartChanged) Type() string { return "CartChanged" }

// AdvancedCartChanged signals that the advanced cart must be re-read.
type AdvancedCartChanged struct{}

func (e AdvancedCartChanged) Type() string { return "AdvancedCartChanged" }

type CheckoutCompleted struct {
	OrderRef uuid.UUID
}

func (e CheckoutCompleted) Type() string { return "CheckoutCompleted" }
