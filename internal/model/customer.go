// internal/model/customer.go
package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Address is stored as a JSONB document next to the customer row.
type Address struct {
	Street      string `json:"street"`
	HouseNumber string `json:"houseNumber"`
	ZipCode     string `json:"zipCode"`
}

// Value renders JSON text, lib/pq would send raw bytes as bytea.
func (a Address) Value() (driver.Value, error) {
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (a *Address) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*a = Address{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Address", src)
	}
	return json.Unmarshal(raw, a)
}

type Customer struct {
	ID        string    `db:"id" json:"id"`
	FirstName string    `db:"first_name" json:"firstName"`
	LastName  string    `db:"last_name" json:"lastName"`
	Email     string    `db:"email" json:"email"`
	Address   Address   `db:"address" json:"address"`
	CreatedAt time.Time `db:"created_at" json:"-"`
}

// CustomerRequest is the wire body for create and update.
type CustomerRequest struct {
	FirstName string   `json:"firstName" validate:"required"`
	LastName  string   `json:"lastName" validate:"required"`
	Email     string   `json:"email" validate:"required,email"`
	Address   *Address `json:"address"`
}

type CustomerResponse struct {
	ID        string  `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Address   Address `json:"address"`
}

// CustomerPatch carries the fields of a merge update. A nil field was not
// provided and leaves the stored value untouched.
type CustomerPatch struct {
	FirstName *string
	LastName  *string
	Email     *string
	Address   *Address
}

// Apply merges the provided fields into c. The id is never touched.
func (p CustomerPatch) Apply(c *Customer) {
	if p.FirstName != nil {
		c.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		c.LastName = *p.LastName
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Address != nil {
		c.Address = *p.Address
	}
}

// Empty reports whether the patch changes nothing.
func (p CustomerPatch) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil && p.Address == nil
}
