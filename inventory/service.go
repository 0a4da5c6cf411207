// Package inventory connects the product store to the reorder engine: it
// loads product snapshots, asks for recommendations, applies reorders to
// stock and computes the dashboard figures of the desk.
package inventory

import (
	"context"
	"fmt"
	"sync"

	"stockdesk/domain"
	"stockdesk/reorder"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Service is safe for concurrent use. Stock writes made through Apply are
// serialized; reads go straight to the store.
type Service struct {
	store domain.ProductStore
	log   zerolog.Logger

	applyMu sync.Mutex
}

// NewService builds a Service over store.
func NewService(store domain.ProductStore, log zerolog.Logger) *Service {
	return &Service{
		store: store,
		log:   log.With().Str("component", "inventory").Logger(),
	}
}

// Lookup resolves ref as a product ID, then as a case-insensitive name.
func (s *Service) Lookup(ctx context.Context, ref string) (domain.Product, error) {
	p, err := s.store.Get(ctx, ref)
	if err == nil || !domain.IsProductNotFoundError(err) {
		return p, err
	}
	p, err = s.store.FindByName(ctx, ref)
	if domain.IsProductNotFoundError(err) {
		return domain.Product{}, domain.NewProductNotFoundError(ref)
	}
	return p, err
}

// Recommend computes a recommendation for the product behind ref. A nil
// demand uses the product's estimated demand.
func (s *Service) Recommend(ctx context.Context, ref string, demand *int) (domain.Product, reorder.Recommendation, error) {
	p, err := s.Lookup(ctx, ref)
	if err != nil {
		return domain.Product{}, reorder.Recommendation{}, err
	}
	d := p.EstimatedDemand
	if demand != nil {
		d = *demand
	}

	rec, err := reorder.Recommend(p, d)
	if err != nil {
		return p, reorder.Recommendation{}, fmt.Errorf("recommend %s: %w", p.ID, err)
	}
	s.warnDefaults(p, rec)
	s.log.Debug().
		Str("product_id", p.ID).
		Int("demand", d).
		Str("status", string(rec.Status)).
		Int("reorder_qty", rec.ReorderQty).
		Msg("recommendation computed")
	return p, rec, nil
}

// Simulate runs a what-if recommendation with overridden costs. The stored
// product is not modified.
func (s *Service) Simulate(ctx context.Context, ref string, demand int, o reorder.Overrides) (reorder.Simulation, error) {
	p, err := s.Lookup(ctx, ref)
	if err != nil {
		return reorder.Simulation{}, err
	}
	sim, err := reorder.Simulate(p, demand, o)
	if err != nil {
		return reorder.Simulation{}, fmt.Errorf("simulate %s: %w", p.ID, err)
	}
	s.warnDefaults(sim.Product, sim.Recommendation)
	return sim, nil
}

// Compare evaluates the standard demand scenarios for the product behind ref.
func (s *Service) Compare(ctx context.Context, ref string) (domain.Product, []reorder.Scenario, error) {
	p, err := s.Lookup(ctx, ref)
	if err != nil {
		return domain.Product{}, nil, err
	}
	scenarios, err := reorder.Compare(p)
	if err != nil {
		return p, nil, fmt.Errorf("compare %s: %w", p.ID, err)
	}
	return p, scenarios, nil
}

// Apply adds qty received units to the product's stock and returns the
// updated product.
func (s *Service) Apply(ctx context.Context, ref string, qty int) (domain.Product, error) {
	if qty < 0 {
		return domain.Product{}, domain.NewInvalidArgumentError("qty", qty)
	}

	s.applyMu.Lock()
	defer s.applyMu.Unlock()

	p, err := s.Lookup(ctx, ref)
	if err != nil {
		return domain.Product{}, err
	}
	before := p.Quantity
	p.Quantity += qty
	if err := s.store.Update(ctx, p.ID, p); err != nil {
		s.log.Error().Err(err).Str("product_id", p.ID).Msg("apply reorder failed")
		return domain.Product{}, fmt.Errorf("apply reorder to %s: %w", p.ID, err)
	}

	s.log.Info().
		Str("product_id", p.ID).
		Int("qty", qty).
		Int("before", before).
		Int("after", p.Quantity).
		Msg("reorder applied")
	return p, nil
}

// ReorderCost is the purchase cost of ordering qty units of the product.
func (s *Service) ReorderCost(ctx context.Context, ref string, qty int) (decimal.Decimal, error) {
	if qty < 0 {
		return decimal.Zero, domain.NewInvalidArgumentError("qty", qty)
	}
	p, err := s.Lookup(ctx, ref)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromFloat(p.PurchaseCost).Mul(decimal.NewFromInt(int64(qty))).Round(2), nil
}

// PotentialProfit is the gross margin of selling sold units of the product.
func (s *Service) PotentialProfit(ctx context.Context, ref string, sold int) (decimal.Decimal, error) {
	if sold < 0 {
		return decimal.Zero, domain.NewInvalidArgumentError("sold", sold)
	}
	p, err := s.Lookup(ctx, ref)
	if err != nil {
		return decimal.Zero, err
	}
	margin := decimal.NewFromFloat(p.SaleCost).Sub(decimal.NewFromFloat(p.PurchaseCost))
	return margin.Mul(decimal.NewFromInt(int64(sold))).Round(2), nil
}

// Summary holds the dashboard totals.
type Summary struct {
	Products         int             `json:"products"`
	Units            int             `json:"units"`
	TotalStockValue  decimal.Decimal `json:"total_stock_value"`
	TotalStorageCost decimal.Decimal `json:"total_storage_cost"`
	Alerts           int             `json:"alerts"`
}

// Summary totals stock value, storage cost and alerts across all products.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	products, err := s.store.List(ctx, domain.ListFilter{})
	if err != nil {
		return Summary{}, err
	}

	sum := Summary{
		Products:         len(products),
		TotalStockValue:  decimal.Zero,
		TotalStorageCost: decimal.Zero,
	}
	for _, p := range products {
		qty := decimal.NewFromInt(int64(p.Quantity))
		sum.Units += p.Quantity
		sum.TotalStockValue = sum.TotalStockValue.Add(decimal.NewFromFloat(p.PurchaseCost).Mul(qty))
		sum.TotalStorageCost = sum.TotalStorageCost.Add(decimal.NewFromFloat(p.StorageCost).Mul(qty))
		if p.BelowThreshold() {
			sum.Alerts++
		}
	}
	sum.TotalStockValue = sum.TotalStockValue.Round(2)
	sum.TotalStorageCost = sum.TotalStorageCost.Round(2)
	return sum, nil
}

// Alerts lists products whose stock is at or below their threshold, lowest
// stock first.
func (s *Service) Alerts(ctx context.Context) ([]domain.Product, error) {
	return s.store.List(ctx, domain.ListFilter{AlertsOnly: true, SortBy: "quantity"})
}

func (s *Service) warnDefaults(p domain.Product, rec reorder.Recommendation) {
	if !rec.CostDefaulted() {
		return
	}
	s.log.Warn().
		Str("product_id", p.ID).
		Bool("purchase_cost_defaulted", rec.PurchaseCostDefaulted).
		Bool("storage_cost_defaulted", rec.StorageCostDefaulted).
		Msg("non-positive cost replaced by 1.0 in EOQ")
}
