// internal/controller/customer_controller.go
package controller

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/ecommerce-services/internal/model"
)

// CustomerServiceInterface is what the customer routes need from the service layer
type CustomerServiceInterface interface {
	CreateCustomer(ctx context.Context, req model.CustomerRequest) (string, error)
	UpdateCustomer(ctx context.Context, id string, req model.CustomerRequest) error
	FindAllCustomers(ctx context.Context) ([]model.CustomerResponse, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	FindByID(ctx context.Context, id string) (*model.CustomerResponse, error)
	DeleteByID(ctx context.Context, id string) error
}

type CustomerController struct {
	CustomerService CustomerServiceInterface
	Validator       *Validator
}

func NewCustomerController(svc CustomerServiceInterface) *CustomerController {
	return &CustomerController{CustomerService: svc, Validator: NewValidator()}
}

// Routes is mounted under /api/v1/customers.
func (c *CustomerController) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", c.CreateCustomer)
	r.Get("/", c.FindAll)
	r.Put("/{customer-id}", c.UpdateCustomer)
	r.Get("/exist/{customer-id}", c.ExistsByID)
	r.Get("/{customer-id}", c.FindByID)
	r.Delete("/{customer-id}", c.DeleteByID)
	return r
}

func (c *CustomerController) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var body model.CustomerRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}
	if err := c.Validator.Struct(body); err != nil {
		writeError(w, err)
		return
	}

	id, err := c.CustomerService.CreateCustomer(r.Context(), body)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, id)
}

func (c *CustomerController) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "customer-id")

	var body model.CustomerRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}
	if err := c.Validator.CustomerUpdate(body); err != nil {
		writeError(w, err)
		return
	}

	if err := c.CustomerService.UpdateCustomer(r.Context(), id, body); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

func (c *CustomerController) FindAll(w http.ResponseWriter, r *http.Request) {
	customers, err := c.CustomerService.FindAllCustomers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customers)
}

func (c *CustomerController) ExistsByID(w http.ResponseWriter, r *http.Request) {
	exists, err := c.CustomerService.ExistsByID(r.Context(), chi.URLParam(r, "customer-id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exists)
}

func (c *CustomerController) FindByID(w http.ResponseWriter, r *http.Request) {
	customer, err := c.CustomerService.FindByID(r.Context(), chi.URLParam(r, "customer-id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (c *CustomerController) DeleteByID(w http.ResponseWriter, r *http.Request) {
	if err := c.CustomerService.DeleteByID(r.Context(), chi.URLParam(r, "customer-id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}
