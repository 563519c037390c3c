//cmd/seeder/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/unclebandit/ecommerce-services/internal/config"
	"github.com/unclebandit/ecommerce-services/internal/db"
)

type target struct {
	service string
	schema  string
	seed    string
}

func main() {
	config.Load(config.CustomerService)
	ctx := context.Background()

	targets := []target{
		{service: config.CustomerService, schema: db.CustomersSchema, seed: "seed/customers.sql"},
		{service: config.ProductService, schema: db.ProductsSchema, seed: "seed/products.sql"},
	}

	for _, t := range targets {
		if err := seed(ctx, config.DBFor(t.service), t); err != nil {
			log.Fatalf("❌ %s: %v", t.service, err)
		}
		fmt.Printf("Seeded: %s\n", t.seed)
	}

	fmt.Println("Database seeding completed successfully!")
}

func seed(ctx context.Context, cfg config.DB, t target) error {
	conn, err := db.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	content, err := os.ReadFile(t.seed)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", t.seed, err)
	}

	return db.Migrate(ctx, conn, t.schema, string(content))
}
