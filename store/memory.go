// Package store provides storage implementations for the inventory system.
package store

import (
	"context"
	"errors"
	"sync"

	"stockdesk/domain"
)

// InMemoryStore is a thread-safe in-memory domain.ProductStore
type InMemoryStore struct {
	mu       sync.RWMutex
	products catalog
}

// NewInMemoryStore constructs a new InMemoryStore
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{products: catalog{}}
}

// compile-time assertion that InMemoryStore implements domain.ProductStore
var _ domain.ProductStore = (*InMemoryStore)(nil)

func (s *InMemoryStore) Create(ctx context.Context, product domain.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if product.ID == "" {
		return domain.NewInvalidProductError("id", "cannot be empty", product.ID)
	}
	if err := domain.ValidateNewProduct(product); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products.add(product)
}

func (s *InMemoryStore) Get(ctx context.Context, id string) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products.get(id)
}

func (s *InMemoryStore) FindByName(ctx context.Context, name string) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products.byName(name)
}

func (s *InMemoryStore) Update(ctx context.Context, id string, product domain.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := domain.ValidateProduct(product); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.products.replace(id, product)
	return err
}

func (s *InMemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.products.remove(id)
	return err
}

func (s *InMemoryStore) List(ctx context.Context, filter domain.ListFilter) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products.filter(filter), nil
}

// BulkImport stores every valid product of the batch and reports the
// rejected ones in a joined error.
func (s *InMemoryStore) BulkImport(ctx context.Context, products []domain.Product) error {
	staged, errs, err := stageImport(ctx, products)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, mergeErrs := s.products.merge(staged)
	return errors.Join(append(errs, mergeErrs...)...)
}
