// internal/errors/errors.go
package appErrors

import (
	"fmt"
	"sort"
	"strings"
)

// ErrCustomerNotFound is returned when no customer has the requested id
type ErrCustomerNotFound struct {
	CustomerID string
}

func (e *ErrCustomerNotFound) Error() string {
	return fmt.Sprintf("no customer found with the provided id :: %s", e.CustomerID)
}

func NewCustomerNotFound(id string) error {
	return &ErrCustomerNotFound{CustomerID: id}
}

// ErrProductNotFound is returned when no product has the requested id
type ErrProductNotFound struct {
	ProductID int
}

func (e *ErrProductNotFound) Error() string {
	return fmt.Sprintf("product not found with id :: %d", e.ProductID)
}

func NewProductNotFound(id int) error {
	return &ErrProductNotFound{ProductID: id}
}

// ErrProductPurchase aborts a whole purchase batch. ProductID is zero when
// the offending product is not known.
type ErrProductPurchase struct {
	ProductID int
	Reason    string
}

func (e *ErrProductPurchase) Error() string {
	if e.ProductID == 0 {
		return e.Reason
	}
	return fmt.Sprintf("%s for product with id :: %d", e.Reason, e.ProductID)
}

func NewMissingProducts() error {
	return &ErrProductPurchase{Reason: "one or more products do not exist"}
}

func NewInsufficientStock(productID int) error {
	return &ErrProductPurchase{ProductID: productID, Reason: "insufficient stock quantity"}
}

// ErrValidation lists the rejected request fields and why.
type ErrValidation struct {
	Fields map[string]string
}

func (e *ErrValidation) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func NewValidation(fields map[string]string) error {
	return &ErrValidation{Fields: fields}
}
