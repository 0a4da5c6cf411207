package store

import (
	"fmt"
	"sort"
	"strings"

	"stockdesk/domain"
)

// catalog is the product table shared by every backend. It is not
// synchronized; each store guards its catalog with its own lock.
type catalog map[string]domain.Product

func (c catalog) get(id string) (domain.Product, error) {
	p, ok := c[id]
	if !ok {
		return domain.Product{}, domain.NewProductNotFoundError(id)
	}
	return p, nil
}

// byName does a case-insensitive exact name lookup.
func (c catalog) byName(name string) (domain.Product, error) {
	name = strings.TrimSpace(name)
	for _, p := range c {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return domain.Product{}, domain.NewProductNotFoundError(name)
}

// nameTaken reports whether another product (not id) already uses name.
func (c catalog) nameTaken(name, id string) bool {
	p, err := c.byName(name)
	return err == nil && p.ID != id
}

// add inserts an already validated product.
func (c catalog) add(p domain.Product) error {
	if _, exists := c[p.ID]; exists {
		return domain.NewDuplicateProductError(p.ID)
	}
	if c.nameTaken(p.Name, p.ID) {
		return domain.NewDuplicateProductNameError(p.Name)
	}
	c[p.ID] = p
	return nil
}

// replace overwrites product id and returns the previous version.
func (c catalog) replace(id string, p domain.Product) (domain.Product, error) {
	prev, err := c.get(id)
	if err != nil {
		return domain.Product{}, err
	}
	if c.nameTaken(p.Name, id) {
		return domain.Product{}, domain.NewDuplicateProductNameError(p.Name)
	}
	p.ID = id
	c[id] = p
	return prev, nil
}

func (c catalog) remove(id string) (domain.Product, error) {
	prev, err := c.get(id)
	if err != nil {
		return domain.Product{}, err
	}
	delete(c, id)
	return prev, nil
}

// merge adds staged products in order and returns the IDs it added along
// with one error per rejected product.
func (c catalog) merge(staged []domain.Product) ([]string, []error) {
	var added []string
	var errs []error
	for _, p := range staged {
		if err := c.add(p); err != nil {
			errs = append(errs, fmt.Errorf("id=%s: %w", p.ID, err))
			continue
		}
		added = append(added, p.ID)
	}
	return added, errs
}

// sorted returns every product ordered by ID.
func (c catalog) sorted() []domain.Product {
	return c.filter(domain.ListFilter{})
}

// filter returns the products matching f in the requested order.
func (c catalog) filter(f domain.ListFilter) []domain.Product {
	name := strings.ToLower(strings.TrimSpace(f.Name))

	out := make([]domain.Product, 0, len(c))
	for _, p := range c {
		if name != "" && !strings.Contains(strings.ToLower(p.Name), name) {
			continue
		}
		if f.AlertsOnly && !p.BelowThreshold() {
			continue
		}
		if f.MinPrice != nil && p.SaleCost < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && p.SaleCost > *f.MaxPrice {
			continue
		}
		out = append(out, p)
	}

	// ID order first so results are deterministic for unsorted listings and ties.
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	var less func(a, b domain.Product) bool
	switch f.SortBy {
	case "name":
		less = func(a, b domain.Product) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case "price":
		less = func(a, b domain.Product) bool { return a.SaleCost < b.SaleCost }
	case "cost":
		less = func(a, b domain.Product) bool { return a.PurchaseCost < b.PurchaseCost }
	case "quantity":
		less = func(a, b domain.Product) bool { return a.Quantity < b.Quantity }
	case "demand":
		less = func(a, b domain.Product) bool { return a.EstimatedDemand < b.EstimatedDemand }
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		if f.Order == "desc" {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}
