// internal/service/customer_service.go
package service

import (
	"context"
	"log"

	"github.com/unclebandit/ecommerce-services/internal/mapper"
	"github.com/unclebandit/ecommerce-services/internal/model"
	"github.com/unclebandit/ecommerce-services/internal/repository"
)

type CustomerService struct {
	CustomerRepo repository.CustomerRepositoryInterface
}

func (s *CustomerService) CreateCustomer(ctx context.Context, req model.CustomerRequest) (string, error) {
	c := mapper.ToCustomer(req)
	if err := s.CustomerRepo.Create(ctx, c); err != nil {
		return "", err
	}
	log.Println("✅ Customer created:", c.ID)
	return c.ID, nil
}

// UpdateCustomer merges the non-blank fields of req into the stored customer.
func (s *CustomerService) UpdateCustomer(ctx context.Context, id string, req model.CustomerRequest) error {
	customer, err := s.CustomerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	patch := mapper.ToCustomerPatch(req)
	if patch.Empty() {
		return nil
	}
	patch.Apply(customer)

	return s.CustomerRepo.Update(ctx, customer)
}

func (s *CustomerService) FindAllCustomers(ctx context.Context) ([]model.CustomerResponse, error) {
	customers, err := s.CustomerRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]model.CustomerResponse, len(customers))
	for i, c := range customers {
		res[i] = mapper.FromCustomer(c)
	}
	return res, nil
}

func (s *CustomerService) ExistsByID(ctx context.Context, id string) (bool, error) {
	return s.CustomerRepo.ExistsByID(ctx, id)
}

func (s *CustomerService) FindByID(ctx context.Context, id string) (*model.CustomerResponse, error) {
	c, err := s.CustomerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	res := mapper.FromCustomer(*c)
	return &res, nil
}

func (s *CustomerService) DeleteByID(ctx context.Context, id string) error {
	if err := s.CustomerRepo.Delete(ctx, id); err != nil {
		return err
	}
	log.Println("🗑️ Customer deleted:", id)
	return nil
}
