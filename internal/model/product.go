// internal/model/product.go
package model

import "github.com/shopspring/decimal"

// Prices go over the wire as JSON numbers, not strings.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

type Product struct {
	ID                int             `db:"id" json:"id"`
	Name              string          `db:"name" json:"name"`
	Description       string          `db:"description" json:"description"`
	AvailableQuantity int             `db:"available_quantity" json:"availableQuantity"`
	Price             decimal.Decimal `db:"price" json:"price"`
}

type ProductRequest struct {
	Name              string          `json:"name" validate:"required"`
	Description       string          `json:"description" validate:"required"`
	AvailableQuantity int             `json:"availableQuantity" validate:"gte=0"`
	Price             decimal.Decimal `json:"price" validate:"gt=0"`
}

type ProductResponse struct {
	ID                int             `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	AvailableQuantity int             `json:"availableQuantity"`
	Price             decimal.Decimal `json:"price"`
}
