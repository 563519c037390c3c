package queue

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/unclebandit/ecommerce-services/internal/model"
)

// PurchaseTopic carries one model.PurchaseEvent per purchased line.
const PurchaseTopic = "product_purchases"

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue delivers each message to every subscriber on its own goroutine, with retry
type InMemoryQueue struct {
	mu       sync.Mutex
	wg       sync.WaitGroup
	handlers map[string][]func(payload any) error

	MaxRetries int
	Backoff    time.Duration
}

// NewInMemoryQueue creates a new queue
func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		handlers:   make(map[string][]func(payload any) error),
		MaxRetries: 3,
		Backoff:    500 * time.Millisecond,
	}
}

// JobPayload wraps a message payload with retry info
type JobPayload struct {
	Payload    any
	RetryCount int
	MaxRetries int
}

// Publish sends a message to all subscribers
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := append([]func(payload any) error(nil), q.handlers[topic]...)
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	for _, handler := range handlers {
		job := JobPayload{Payload: payload, MaxRetries: q.MaxRetries}
		q.wg.Add(1)
		go func(h func(payload any) error) {
			defer q.wg.Done()
			q.processJob(h, job)
		}(handler)
	}

	return nil
}

// processJob handles retries and errors
func (q *InMemoryQueue) processJob(handler func(payload any) error, job JobPayload) {
	for {
		err := handler(job.Payload)
		if err == nil {
			return
		}

		job.RetryCount++
		log.Printf("⚠️ Job failed (attempt %d/%d): %+v, error: %v\n", job.RetryCount, job.MaxRetries+1, job.Payload, err)

		if job.RetryCount > job.MaxRetries {
			log.Printf("❌ Job permanently failed after %d attempts: %+v\n", job.RetryCount, job.Payload)
			return
		}

		time.Sleep(time.Duration(job.RetryCount) * q.Backoff)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// Wait blocks until every delivered job has finished, retries included.
func (q *InMemoryQueue) Wait() {
	q.wg.Wait()
}

// DecodePurchaseEvent accepts the in-memory payload or a raw JSON body.
func DecodePurchaseEvent(payload any) (model.PurchaseEvent, error) {
	switch v := payload.(type) {
	case model.PurchaseEvent:
		return v, nil
	case *model.PurchaseEvent:
		return *v, nil
	case []byte:
		var ev model.PurchaseEvent
		if err := json.Unmarshal(v, &ev); err != nil {
			return model.PurchaseEvent{}, fmt.Errorf("decode purchase event: %w", err)
		}
		return ev, nil
	default:
		return model.PurchaseEvent{}, fmt.Errorf("unexpected purchase payload %T", payload)
	}
}

// StartPurchaseLogSubscriber logs every purchase event published on q.
func StartPurchaseLogSubscriber(q Queue) error {
	return q.Subscribe(PurchaseTopic, func(payload any) error {
		ev, err := DecodePurchaseEvent(payload)
		if err != nil {
			log.Println("⚠️ Invalid purchase payload:", err)
			return nil
		}
		log.Printf("📦 Purchased %d of product %d, %d left\n", ev.Quantity, ev.ProductID, ev.Remaining)
		return nil
	})
}
