package db

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed schema/customers.sql
var CustomersSchema string

//go:embed schema/products.sql
var ProductsSchema string

// Migrate executes each schema script in order. The scripts are idempotent.
func Migrate(ctx context.Context, conn *sql.DB, scripts ...string) error {
	for i, script := range scripts {
		if _, err := conn.ExecContext(ctx, script); err != nil {
			return fmt.Errorf("schema script %d: %w", i, err)
		}
	}
	return nil
}
