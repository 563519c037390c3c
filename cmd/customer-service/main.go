// cmd/customer-service/main.go
package main

import (
	"context"
	"log"
	"net/http"

	"github.com/unclebandit/ecommerce-services/internal/config"
	"github.com/unclebandit/ecommerce-services/internal/controller"
	"github.com/unclebandit/ecommerce-services/internal/db"
	"github.com/unclebandit/ecommerce-services/internal/handler"
	"github.com/unclebandit/ecommerce-services/internal/repository"
	"github.com/unclebandit/ecommerce-services/internal/server"
	"github.com/unclebandit/ecommerce-services/internal/service"
	"github.com/unclebandit/ecommerce-services/internal/telemetry"
)

func main() {
	cfg := config.Load(config.CustomerService)
	ctx := context.Background()

	shutdownTelemetry, err := telemetry.Init(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		log.Fatal("❌ Failed to init telemetry:", err)
	}
	defer shutdownTelemetry(context.Background())

	conn, err := db.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal("❌ ", err)
	}
	defer conn.Close()

	if err := db.Migrate(ctx, conn, db.CustomersSchema); err != nil {
		log.Fatal("❌ Failed to apply schema:", err)
	}

	customerRepo := &repository.CustomerRepository{DB: conn}
	customerService := &service.CustomerService{CustomerRepo: customerRepo}
	customerController := controller.NewCustomerController(customerService)

	r := server.NewRouter(
		handler.NewHealthHandler(cfg.ServiceName, conn.PingContext),
		map[string]http.Handler{"/customers": customerController.Routes()},
	)

	if err := server.Run(":"+cfg.HTTPPort, r, cfg.ShutdownTimeout); err != nil {
		log.Println("❌ Server error:", err)
	}
}
