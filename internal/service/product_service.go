// internal/service/product_service.go
package service

import (
	"cmp"
	"context"
	"fmt"
	"log"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	appErrors "github.com/unclebandit/ecommerce-services/internal/errors"
	"github.com/unclebandit/ecommerce-services/internal/mapper"
	"github.com/unclebandit/ecommerce-services/internal/model"
	"github.com/unclebandit/ecommerce-services/internal/queue"
	"github.com/unclebandit/ecommerce-services/internal/repository"
)

type ProductService struct {
	ProductRepo repository.ProductRepository
	// Queue receives purchase events after commit. Nil disables publishing.
	Queue queue.Queue

	tracer         trace.Tracer
	purchasedUnits metric.Int64Counter
	failures       metric.Int64Counter
}

func NewProductService(repo repository.ProductRepository, q queue.Queue) *ProductService {
	meter := otel.Meter("product-service")

	purchasedUnits, err := meter.Int64Counter("products.purchased.units",
		metric.WithDescription("Units removed from stock by committed purchases"))
	if err != nil {
		log.Println("⚠️ failed to create purchased units counter:", err)
	}
	failures, err := meter.Int64Counter("products.purchase.failures",
		metric.WithDescription("Purchase batches rejected and rolled back"))
	if err != nil {
		log.Println("⚠️ failed to create purchase failures counter:", err)
	}

	return &ProductService{
		ProductRepo:    repo,
		Queue:          q,
		tracer:         otel.Tracer("product-service"),
		purchasedUnits: purchasedUnits,
		failures:       failures,
	}
}

func (s *ProductService) CreateProduct(ctx context.Context, req model.ProductRequest) (int, error) {
	p := mapper.ToProduct(req)
	if err := s.ProductRepo.Create(ctx, p); err != nil {
		return 0, err
	}
	log.Println("✅ Product created:", p.ID)
	return p.ID, nil
}

func (s *ProductService) FindByID(ctx context.Context, id int) (*model.ProductResponse, error) {
	p, err := s.ProductRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	res := mapper.ToProductResponse(*p)
	return &res, nil
}

func (s *ProductService) FindAll(ctx context.Context) ([]model.ProductResponse, error) {
	products, err := s.ProductRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]model.ProductResponse, len(products))
	for i, p := range products {
		res[i] = mapper.ToProductResponse(p)
	}
	return res, nil
}

// PurchaseProducts applies a batch purchase in one transaction. Either every
// line is decremented or nothing is. Responses are ascending by product id
// whatever the input order.
func (s *ProductService) PurchaseProducts(ctx context.Context, requests []model.PurchaseRequest) ([]model.PurchaseResponse, error) {
	ctx, span := s.tracer.Start(ctx, "purchase_products")
	defer span.End()
	span.SetAttributes(attribute.Int("purchase.lines", len(requests)))

	productIDs := make([]int, len(requests))
	for i, r := range requests {
		productIDs[i] = r.ProductID
	}

	tx, err := s.ProductRepo.BeginTx(ctx)
	if err != nil {
		return nil, s.abort(ctx, span, err)
	}
	defer tx.Rollback(ctx)

	storedProducts, err := s.ProductRepo.FindAllByIDsForUpdate(ctx, tx, productIDs)
	if err != nil {
		return nil, s.abort(ctx, span, err)
	}

	// duplicate ids collapse to one stored row, so they fail here as well
	if len(storedProducts) != len(productIDs) {
		return nil, s.abort(ctx, span, appErrors.NewMissingProducts())
	}

	// both sides sorted by product id, position i names the same product
	sortedRequests := slices.Clone(requests)
	slices.SortStableFunc(sortedRequests, func(a, b model.PurchaseRequest) int {
		return cmp.Compare(a.ProductID, b.ProductID)
	})

	purchased := make([]model.PurchaseResponse, 0, len(sortedRequests))
	events := make([]model.PurchaseEvent, 0, len(sortedRequests))
	now := time.Now()

	for i := range storedProducts {
		product := &storedProducts[i]
		req := sortedRequests[i]

		if product.AvailableQuantity < req.Quantity {
			log.Printf("❌ Insufficient stock | ProductID=%d available=%d requested=%d", req.ProductID, product.AvailableQuantity, req.Quantity)
			return nil, s.abort(ctx, span, appErrors.NewInsufficientStock(req.ProductID))
		}

		product.AvailableQuantity -= req.Quantity
		if err := s.ProductRepo.UpdateQuantity(ctx, tx, product); err != nil {
			return nil, s.abort(ctx, span, err)
		}

		purchased = append(purchased, mapper.ToPurchaseResponse(*product, req.Quantity))
		events = append(events, model.PurchaseEvent{
			ID:          uuid.NewString(),
			ProductID:   product.ID,
			Quantity:    req.Quantity,
			Remaining:   product.AvailableQuantity,
			PurchasedAt: now,
		})
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, s.abort(ctx, span, fmt.Errorf("commit purchase: %w", err))
	}

	for _, ev := range events {
		if s.purchasedUnits != nil {
			s.purchasedUnits.Add(ctx, int64(ev.Quantity), metric.WithAttributes(attribute.Int("product.id", ev.ProductID)))
		}
	}
	s.publish(events)

	log.Printf("✅ Purchase committed: %d lines", len(purchased))
	return purchased, nil
}

func (s *ProductService) abort(ctx context.Context, span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if s.failures != nil {
		s.failures.Add(ctx, 1)
	}
	return err
}

func (s *ProductService) publish(events []model.PurchaseEvent) {
	if s.Queue == nil {
		return
	}
	for _, ev := range events {
		if err := s.Queue.Publish(queue.PurchaseTopic, ev); err != nil {
			log.Println("⚠️ failed to publish purchase event:", err)
		}
	}
}
