// internal/model/purchase.go
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseRequest is one line of a batch purchase.
type PurchaseRequest struct {
	ProductID int `json:"productId" validate:"required"`
	Quantity  int `json:"quantity" validate:"gt=0"`
}

type PurchaseResponse struct {
	ProductID   int             `json:"productId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

// PurchaseEvent is published once per purchased line after the batch commits.
type PurchaseEvent struct {
	ID          string    `db:"id" json:"id"`
	ProductID   int       `db:"product_id" json:"product_id"`
	Quantity    int       `db:"quantity" json:"quantity"`
	Remaining   int       `db:"remaining" json:"remaining"`
	PurchasedAt time.Time `db:"purchased_at" json:"purchased_at"`
}
