package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"stockdesk/domain"

	"golang.org/x/sync/semaphore"
)

const importWorkers = 10

// stageImport validates products with at most importWorkers goroutines and drops
// duplicates inside the batch. Accepted products come back sorted by ID,
// rejected ones as per-product errors. A canceled ctx aborts the whole batch.
func stageImport(ctx context.Context, products []domain.Product) ([]domain.Product, []error, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if len(products) == 0 {
		return nil, nil, nil
	}

	var (
		mu     sync.Mutex
		staged = make(map[string]domain.Product)
		names  = make(map[string]struct{})
		errs   []error
	)
	reject := func(p domain.Product, err error) {
		errs = append(errs, fmt.Errorf("id=%s: %w", p.ID, err))
	}
	stage := func(p domain.Product) {
		var err error
		if p.ID == "" {
			err = domain.NewInvalidProductError("id", "cannot be empty", p.ID)
		} else {
			err = domain.ValidateNewProduct(p)
		}

		key := strings.ToLower(strings.TrimSpace(p.Name))
		mu.Lock()
		defer mu.Unlock()
		switch {
		case err != nil:
			reject(p, err)
		case hasKey(staged, p.ID):
			reject(p, domain.NewDuplicateProductError(p.ID))
		case hasKey(names, key):
			reject(p, domain.NewDuplicateProductNameError(p.Name))
		default:
			staged[p.ID] = p
			names[key] = struct{}{}
		}
	}

	sem := semaphore.NewWeighted(importWorkers)
	var wg sync.WaitGroup
	for _, p := range products {
		// Acquire only fails once ctx is done, which is reported below.
		if sem.Acquire(ctx, 1) != nil {
			break
		}
		wg.Add(1)
		go func(p domain.Product) {
			defer wg.Done()
			defer sem.Release(1)
			stage(p)
		}(p)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	out := make([]domain.Product, 0, len(staged))
	for _, p := range staged {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, errs, nil
}

func hasKey[V any](m map[string]V, k string) bool {
	_, ok := m[k]
	return ok
}
