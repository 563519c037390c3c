package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/unclebandit/ecommerce-services/internal/model"
)

type PurchaseEventRepository struct {
	DB *sql.DB
}

// Create records a purchase event. Re-delivered events with a known id are ignored.
func (r *PurchaseEventRepository) Create(ctx context.Context, ev *model.PurchaseEvent) error {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.PurchasedAt.IsZero() {
		ev.PurchasedAt = time.Now()
	}

	query := `
        INSERT INTO purchase_events (id, product_id, quantity, remaining, purchased_at)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (id) DO NOTHING
    `
	_, err := r.DB.ExecContext(ctx, query, ev.ID, ev.ProductID, ev.Quantity, ev.Remaining, ev.PurchasedAt)
	if err != nil {
		return fmt.Errorf("insert purchase event: %w", err)
	}
	return nil
}

// ListByProduct returns the recorded events of a product, oldest first
func (r *PurchaseEventRepository) ListByProduct(ctx context.Context, productID int) ([]model.PurchaseEvent, error) {
	rows, err := r.DB.QueryContext(ctx, `
        SELECT id, product_id, quantity, remaining, purchased_at
        FROM purchase_events
        WHERE product_id = $1
        ORDER BY purchased_at, id
    `, productID)
	if err != nil {
		return nil, fmt.Errorf("list purchase events: %w", err)
	}
	defer rows.Close()

	events := []model.PurchaseEvent{}
	for rows.Next() {
		var ev model.PurchaseEvent
		if err := rows.Scan(&ev.ID, &ev.ProductID, &ev.Quantity, &ev.Remaining, &ev.PurchasedAt); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
