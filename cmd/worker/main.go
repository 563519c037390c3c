// cmd/worker/main.go
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/unclebandit/ecommerce-services/internal/config"
	"github.com/unclebandit/ecommerce-services/internal/db"
	"github.com/unclebandit/ecommerce-services/internal/queue"
	"github.com/unclebandit/ecommerce-services/internal/repository"
	"github.com/unclebandit/ecommerce-services/internal/service"
)

func main() {
	cfg := config.Load(config.Worker)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conn, err := db.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal("❌ ", err)
	}
	defer conn.Close()

	if err := db.Migrate(ctx, conn, db.ProductsSchema); err != nil {
		log.Fatal("❌ Failed to apply schema:", err)
	}

	if cfg.AMQPURL == "" {
		log.Fatal("❌ AMQP_URL is required for the worker")
	}
	q, err := queue.DialAMQP(cfg.AMQPURL)
	if err != nil {
		log.Fatal("❌ ", err)
	}
	defer q.Close()

	if err := subscribe(q, &repository.PurchaseEventRepository{DB: conn}); err != nil {
		log.Fatal("❌ ", err)
	}

	log.Println("👷 Worker running, waiting for purchase events...")
	<-ctx.Done()
	log.Println("🛑 Worker stopping")
}

// subscribe records every purchase event published on q into store.
func subscribe(q queue.Queue, store service.PurchaseEventStore) error {
	worker := service.NewPurchaseEventWorker(store)
	return q.Subscribe(queue.PurchaseTopic, worker.Handle)
}
