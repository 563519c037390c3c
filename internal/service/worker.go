package service

import (
	"context"
	"log"
	"time"

	"github.com/unclebandit/ecommerce-services/internal/model"
	"github.com/unclebandit/ecommerce-services/internal/queue"
)

// PurchaseEventStore defines the methods the worker needs
type PurchaseEventStore interface {
	Create(ctx context.Context, ev *model.PurchaseEvent) error
}

// PurchaseEventWorker records purchase events consumed from the queue
type PurchaseEventWorker struct {
	Store   PurchaseEventStore
	Timeout time.Duration
}

func NewPurchaseEventWorker(store PurchaseEventStore) *PurchaseEventWorker {
	return &PurchaseEventWorker{Store: store, Timeout: 5 * time.Second}
}

// Handle is a queue handler. Undecodable payloads are dropped, store errors
// are returned so the queue retries.
func (w *PurchaseEventWorker) Handle(payload any) error {
	ev, err := queue.DecodePurchaseEvent(payload)
	if err != nil {
		log.Println("⚠️ Invalid job:", err)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), w.Timeout)
	defer cancel()

	if err := w.Store.Create(ctx, &ev); err != nil {
		log.Println("⚠️ Failed to record purchase event:", err)
		return err
	}

	log.Printf("✅ Recorded purchase %s: product %d x%d", ev.ID, ev.ProductID, ev.Quantity)
	return nil
}
