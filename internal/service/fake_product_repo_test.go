package service_test

import (
	"context"
	"errors"
	"slices"
	"sync"

	appErrors "github.com/unclebandit/ecommerce-services/internal/errors"
	"github.com/unclebandit/ecommerce-services/internal/model"
	"github.com/unclebandit/ecommerce-services/internal/repository"
)

// memProductRepo is a transactional in-memory product store. A transaction
// works on a copy that only replaces the committed state on Commit.
type memProductRepo struct {
	mu        sync.Mutex
	products  map[int]model.Product
	nextID    int
	commits   int
	rollbacks int

	updateErr error
}

type memTx struct {
	repo   *memProductRepo
	staged map[int]model.Product
	done   bool
}

func newMemProductRepo(products ...model.Product) *memProductRepo {
	r := &memProductRepo{products: map[int]model.Product{}}
	for _, p := range products {
		r.products[p.ID] = p
		r.nextID = max(r.nextID, p.ID)
	}
	return r
}

func (r *memProductRepo) quantity(id int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.products[id].AvailableQuantity
}

func (r *memProductRepo) Create(ctx context.Context, p *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	p.ID = r.nextID
	r.products[p.ID] = *p
	return nil
}

func (r *memProductRepo) GetByID(ctx context.Context, id int) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, appErrors.NewProductNotFound(id)
	}
	return &p, nil
}

func (r *memProductRepo) ListAll(ctx context.Context) ([]model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b model.Product) int { return a.ID - b.ID })
	return out, nil
}

func (r *memProductRepo) BeginTx(ctx context.Context) (repository.Tx, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	staged := make(map[int]model.Product, len(r.products))
	for id, p := range r.products {
		staged[id] = p
	}
	return &memTx{repo: r, staged: staged}, nil
}

func (r *memProductRepo) FindAllByIDsForUpdate(ctx context.Context, tx repository.Tx, ids []int) ([]model.Product, error) {
	t := tx.(*memTx)
	seen := map[int]bool{}
	out := []model.Product{}
	for _, id := range ids {
		if p, ok := t.staged[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b model.Product) int { return a.ID - b.ID })
	return out, nil
}

func (r *memProductRepo) UpdateQuantity(ctx context.Context, tx repository.Tx, p *model.Product) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	t := tx.(*memTx)
	stored, ok := t.staged[p.ID]
	if !ok {
		return appErrors.NewProductNotFound(p.ID)
	}
	if p.AvailableQuantity < 0 {
		return errors.New("available_quantity check violated")
	}
	stored.AvailableQuantity = p.AvailableQuantity
	t.staged[p.ID] = stored
	return nil
}

func (t *memTx) Commit(ctx context.Context) error {
	if t.done {
		return errors.New("tx closed")
	}
	t.done = true
	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()
	t.repo.products = t.staged
	t.repo.commits++
	return nil
}

func (t *memTx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()
	t.repo.rollbacks++
	return nil
}

var _ repository.ProductRepository = (*memProductRepo)(nil)
