package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	perrors "github.com/tamnd/productsvc/internal/errors"
)

// inMemory implements ProductStore using an in-memory map.
type inMemory struct {
	mu       sync.RWMutex
	products map[uuid.UUID]Product
}

// NewInMemoryStore creates a new instance of ProductStore
func NewInMemoryStore() ProductStore {
	return &inMemory{
		products: make(map[uuid.UUID]Product),
	}
}

func (s *inMemory) Create(_ context.Context, name string, price int64, description string) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product := Product{
		ID:          uuid.New(),
		Name:        name,
		Price:       price,
		Description: description,
		CreatedAt:   time.Now(),
	}
	s.products[product.ID] = product

	return &product, nil
}

func (s *inMemory) FindByID(_ context.Context, id uuid.UUID) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, perrors.ErrProductNotFound
	}
	return &p, nil
}

func (s *inMemory) FindAll(_ context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		list = append(list, p)
	}
	sortNewestFirst(list)
	return list, nil
}

func (s *inMemory) FindByStatus(_ context.Context, status bool) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Product, 0)
	for _, p := range s.products {
		if p.Status == status {
			list = append(list, p)
		}
	}
	sortNewestFirst(list)
	return list, nil
}

func (s *inMemory) Update(_ context.Context, id uuid.UUID, name string, price int64, description string) (*Product, error) {
	return s.modify(id, func(p *Product) {
		p.Name = name
		p.Price = price
		p.Description = description
	})
}

func (s *inMemory) UpdateImage(_ context.Context, id uuid.UUID, image string) (*Product, error) {
	return s.modify(id, func(p *Product) {
		p.Image = image
	})
}

func (s *inMemory) UpdateDescription(_ context.Context, id uuid.UUID, description string) (*Product, error) {
	return s.modify(id, func(p *Product) {
		p.Description = description
	})
}

func (s *inMemory) Publish(_ context.Context, id uuid.UUID, postID string) (*Product, error) {
	return s.modify(id, func(p *Product) {
		p.PostID = postID
		p.Status = true
	})
}

func (s *inMemory) DeleteByID(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return perrors.ErrProductNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *inMemory) modify(id uuid.UUID, fn func(p *Product)) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, perrors.ErrProductNotFound
	}
	fn(&p)
	s.products[id] = p
	return &p, nil
}

func sortNewestFirst(list []Product) {
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}
