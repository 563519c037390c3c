// Package mapper converts between wire shapes and stored records. Every
// function is pure.
package mapper

import (
	"strings"

	"github.com/unclebandit/ecommerce-services/internal/model"
)

func ToCustomer(req model.CustomerRequest) *model.Customer {
	c := &model.Customer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}
	if req.Address != nil {
		c.Address = *req.Address
	}
	return c
}

func FromCustomer(c model.Customer) model.CustomerResponse {
	return model.CustomerResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Address:   c.Address,
	}
}

// ToCustomerPatch treats blank strings and a null address as "not provided".
func ToCustomerPatch(req model.CustomerRequest) model.CustomerPatch {
	var p model.CustomerPatch
	p.FirstName = nonBlank(req.FirstName)
	p.LastName = nonBlank(req.LastName)
	p.Email = nonBlank(req.Email)
	if req.Address != nil {
		addr := *req.Address
		p.Address = &addr
	}
	return p
}

func nonBlank(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
