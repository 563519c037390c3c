package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	appErrors "github.com/unclebandit/ecommerce-services/internal/errors"
	"github.com/unclebandit/ecommerce-services/internal/model"
)

// ProductRepository is the product record store. Methods taking a Tx run
// inside that transaction.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	GetByID(ctx context.Context, id int) (*model.Product, error)
	ListAll(ctx context.Context) ([]model.Product, error)

	BeginTx(ctx context.Context) (Tx, error)
	// FindAllByIDsForUpdate returns the distinct products whose id is in ids,
	// ascending by id, locked until the transaction ends.
	FindAllByIDsForUpdate(ctx context.Context, tx Tx, ids []int) ([]model.Product, error)
	UpdateQuantity(ctx context.Context, tx Tx, p *model.Product) error
}

// Tx is an open store transaction.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// PostgresTx implements Tx over pgx
type PostgresTx struct {
	tx pgx.Tx
}

func (t *PostgresTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *PostgresTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// PostgresProductRepository implements ProductRepository on a pgx pool
type PostgresProductRepository struct {
	db *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

func (r *PostgresProductRepository) Create(ctx context.Context, p *model.Product) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO products (name, description, available_quantity, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, p.Name, p.Description, p.AvailableQuantity, p.Price).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *PostgresProductRepository) GetByID(ctx context.Context, id int) (*model.Product, error) {
	var p model.Product
	err := r.db.QueryRow(ctx, `
		SELECT id, name, description, available_quantity, price
		FROM products
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Description, &p.AvailableQuantity, &p.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, appErrors.NewProductNotFound(id)
		}
		return nil, fmt.Errorf("query product: %w", err)
	}
	return &p, nil
}

func (r *PostgresProductRepository) ListAll(ctx context.Context) ([]model.Product, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, description, available_quantity, price
		FROM products
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return collectProducts(rows)
}

func (r *PostgresProductRepository) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	return &PostgresTx{tx: tx}, nil
}

func (r *PostgresProductRepository) FindAllByIDsForUpdate(ctx context.Context, tx Tx, ids []int) ([]model.Product, error) {
	pgTx := tx.(*PostgresTx).tx

	rows, err := pgTx.Query(ctx, `
		SELECT id, name, description, available_quantity, price
		FROM products
		WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to lock products: %w", err)
	}
	return collectProducts(rows)
}

func (r *PostgresProductRepository) UpdateQuantity(ctx context.Context, tx Tx, p *model.Product) error {
	pgTx := tx.(*PostgresTx).tx

	tag, err := pgTx.Exec(ctx, `
		UPDATE products
		SET available_quantity = $1
		WHERE id = $2
	`, p.AvailableQuantity, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return appErrors.NewProductNotFound(p.ID)
	}
	return nil
}

func collectProducts(rows pgx.Rows) ([]model.Product, error) {
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.AvailableQuantity, &p.Price); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

var _ ProductRepository = (*PostgresProductRepository)(nil)
