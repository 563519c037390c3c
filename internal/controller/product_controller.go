// internal/controller/product_controller.go
package controller

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appErrors "github.com/unclebandit/ecommerce-services/internal/errors"
	"github.com/unclebandit/ecommerce-services/internal/model"
)

type ProductServiceInterface interface {
	CreateProduct(ctx context.Context, req model.ProductRequest) (int, error)
	PurchaseProducts(ctx context.Context, requests []model.PurchaseRequest) ([]model.PurchaseResponse, error)
	FindByID(ctx context.Context, id int) (*model.ProductResponse, error)
	FindAll(ctx context.Context) ([]model.ProductResponse, error)
}

type ProductController struct {
	ProductService ProductServiceInterface
	Validator      *Validator
}

func NewProductController(svc ProductServiceInterface) *ProductController {
	return &ProductController{ProductService: svc, Validator: NewValidator()}
}

// Routes is mounted under /api/v1/products.
func (c *ProductController) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", c.CreateProduct)
	r.Get("/", c.FindAll)
	r.Post("/purchase", c.PurchaseProducts)
	r.Get("/{product-id}", c.FindByID)
	return r
}

func (c *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var body model.ProductRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}
	if err := c.Validator.Struct(body); err != nil {
		writeError(w, err)
		return
	}

	id, err := c.ProductService.CreateProduct(r.Context(), body)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, id)
}

func (c *ProductController) PurchaseProducts(w http.ResponseWriter, r *http.Request) {
	var body []model.PurchaseRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}
	if err := c.Validator.Purchases(body); err != nil {
		writeError(w, err)
		return
	}

	purchased, err := c.ProductService.PurchaseProducts(r.Context(), body)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, purchased)
}

func (c *ProductController) FindByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "product-id"))
	if err != nil {
		writeError(w, appErrors.NewValidation(map[string]string{"product-id": "must be an integer"}))
		return
	}

	product, err := c.ProductService.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (c *ProductController) FindAll(w http.ResponseWriter, r *http.Request) {
	products, err := c.ProductService.FindAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}
