package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	appErrors "github.com/unclebandit/ecommerce-services/internal/errors"
	"github.com/unclebandit/ecommerce-services/internal/model"
)

// CustomerRepositoryInterface defines methods used by service
type CustomerRepositoryInterface interface {
	Create(ctx context.Context, c *model.Customer) error
	Update(ctx context.Context, c *model.Customer) error
	GetByID(ctx context.Context, id string) (*model.Customer, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	ListAll(ctx context.Context) ([]model.Customer, error)
	Delete(ctx context.Context, id string) error
}

// CustomerRepository is the concrete implementation
type CustomerRepository struct {
	DB *sql.DB
}

// Create assigns a fresh id when the customer has none and inserts it
func (r *CustomerRepository) Create(ctx context.Context, c *model.Customer) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.CreatedAt = time.Now()

	query := `
        INSERT INTO customers (id, first_name, last_name, email, address, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `
	_, err := r.DB.ExecContext(ctx, query, c.ID, c.FirstName, c.LastName, c.Email, c.Address, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (r *CustomerRepository) Update(ctx context.Context, c *model.Customer) error {
	query := `
        UPDATE customers
        SET first_name=$1, last_name=$2, email=$3, address=$4
        WHERE id=$5
    `
	res, err := r.DB.ExecContext(ctx, query, c.FirstName, c.LastName, c.Email, c.Address, c.ID)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return appErrors.NewCustomerNotFound(c.ID)
	}
	return nil
}

// GetByID fetches a customer by ID
func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	query := `
        SELECT id, first_name, last_name, email, address, created_at
        FROM customers
        WHERE id = $1
    `
	var c model.Customer
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Address, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NewCustomerNotFound(id)
		}
		return nil, fmt.Errorf("query customer: %w", err)
	}
	return &c, nil
}

func (r *CustomerRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM customers WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check customer: %w", err)
	}
	return exists, nil
}

// ListAll fetches all customers, oldest first
func (r *CustomerRepository) ListAll(ctx context.Context) ([]model.Customer, error) {
	query := `
        SELECT id, first_name, last_name, email, address, created_at
        FROM customers
        ORDER BY created_at, id
    `
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	customers := []model.Customer{}
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Address, &c.CreatedAt); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return appErrors.NewCustomerNotFound(id)
	}
	return nil
}

var _ CustomerRepositoryInterface = (*CustomerRepository)(nil)
