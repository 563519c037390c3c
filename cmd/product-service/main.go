// cmd/product-service/main.go
package main

import (
	"context"
	"log"
	"net/http"

	"github.com/jackc/pgx/v5/stdlib"

	"github.com/unclebandit/ecommerce-services/internal/config"
	"github.com/unclebandit/ecommerce-services/internal/controller"
	"github.com/unclebandit/ecommerce-services/internal/db"
	"github.com/unclebandit/ecommerce-services/internal/handler"
	"github.com/unclebandit/ecommerce-services/internal/queue"
	"github.com/unclebandit/ecommerce-services/internal/repository"
	"github.com/unclebandit/ecommerce-services/internal/server"
	"github.com/unclebandit/ecommerce-services/internal/service"
	"github.com/unclebandit/ecommerce-services/internal/telemetry"
)

func main() {
	cfg := config.Load(config.ProductService)
	ctx := context.Background()

	shutdownTelemetry, err := telemetry.Init(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		log.Fatal("❌ Failed to init telemetry:", err)
	}
	defer shutdownTelemetry(context.Background())

	pool, err := db.OpenPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal("❌ ", err)
	}
	defer pool.Close()

	schemaConn := stdlib.OpenDBFromPool(pool)
	if err := db.Migrate(ctx, schemaConn, db.ProductsSchema); err != nil {
		log.Fatal("❌ Failed to apply schema:", err)
	}
	schemaConn.Close()

	q, closeQueue := openQueue(cfg)
	defer closeQueue()

	productService := service.NewProductService(repository.NewProductRepository(pool), q)
	productController := controller.NewProductController(productService)

	r := server.NewRouter(
		handler.NewHealthHandler(cfg.ServiceName, pool.Ping),
		map[string]http.Handler{"/products": productController.Routes()},
	)

	if err := server.Run(":"+cfg.HTTPPort, r, cfg.ShutdownTimeout); err != nil {
		log.Println("❌ Server error:", err)
	}
}

// openQueue uses RabbitMQ when AMQP_URL is set. Otherwise events stay in
// process and are only logged.
func openQueue(cfg config.Config) (queue.Queue, func()) {
	if cfg.AMQPURL == "" {
		q := queue.NewInMemoryQueue()
		if err := queue.StartPurchaseLogSubscriber(q); err != nil {
			log.Fatal("❌ Failed to subscribe:", err)
		}
		log.Println("⚠️ AMQP_URL not set, purchase events stay in memory")
		return q, q.Wait
	}

	q, err := queue.DialAMQP(cfg.AMQPURL)
	if err != nil {
		log.Fatal("❌ ", err)
	}
	log.Println("✅ Connected to RabbitMQ")
	return q, func() {
		if err := q.Close(); err != nil {
			log.Println("⚠️ Failed to close RabbitMQ connection:", err)
		}
	}
}
