package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"stockdesk/domain"
)

// FileStore is a JSON file-backed implementation of domain.ProductStore
type FileStore struct {
	mu       sync.RWMutex
	products catalog
	path     string
}

// compile-time assertion
var _ domain.ProductStore = (*FileStore)(nil)

// NewFileStore constructs a FileStore at the given path. If the file exists it will be loaded.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		products: catalog{},
		path:     path,
	}
	if err := s.loadFromFile(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) loadFromFile() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			// no file yet; that's fine
			return nil
		}
		return err
	}
	if len(b) == 0 {
		return nil
	}
	var list []domain.Product
	if err := json.Unmarshal(b, &list); err != nil {
		return err
	}
	for _, p := range list {
		s.products[p.ID] = p
	}
	return nil
}

// saveToFile must be called with s.mu held.
func (s *FileStore) saveToFile() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(s.products.sorted(), "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStore) Create(ctx context.Context, product domain.Product) error {
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
	if err := s.products.add(product); err != nil {
		return err
	}
	if err := s.saveToFile(); err != nil {
		delete(s.products, product.ID)
		return err
	}
	return nil
}

func (s *FileStore) Get(ctx context.Context, id string) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products.get(id)
}

func (s *FileStore) FindByName(ctx context.Context, name string) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products.byName(name)
}

// Update replaces product id on disk; the in-memory copy is rolled back if
// the write fails.
func (s *FileStore) Update(ctx context.Context, id string, product domain.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := domain.ValidateProduct(product); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	prev, err := s.products.replace(id, product)
	if err != nil {
		return err
	}
	if err := s.saveToFile(); err != nil {
		s.products[id] = prev
		return err
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, err := s.products.remove(id)
	if err != nil {
		return err
	}
	if err := s.saveToFile(); err != nil {
		s.products[id] = prev
		return err
	}
	return nil
}

func (s *FileStore) List(ctx context.Context, filter domain.ListFilter) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products.filter(filter), nil
}

// BulkImport validates the batch concurrently, then merges the valid
// products in a single write. Rejected products are reported in the
// returned error; the rest are still stored. A failed write stores nothing.
func (s *FileStore) BulkImport(ctx context.Context, products []domain.Product) error {
	staged, errs, err := stageImport(ctx, products)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	added, mergeErrs := s.products.merge(staged)
	errs = append(errs, mergeErrs...)
	if len(added) > 0 {
		if err := s.saveToFile(); err != nil {
			for _, id := range added {
				delete(s.products, id)
			}
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
