package store

import (
	"context"

	"stockdesk/domain"
	"stockdesk/util"
)

// sampleCatalog is the starter catalog of a fresh desk install.
var sampleCatalog = []domain.Product{
	{Name: "Laptop Dell", PurchaseCost: 45000, SaleCost: 65000, Quantity: 25, Threshold: 10, StorageCost: 500, EstimatedDemand: 15},
	{Name: "Wireless Mouse", PurchaseCost: 1500, SaleCost: 2500, Quantity: 50, Threshold: 15, StorageCost: 20, EstimatedDemand: 30},
	{Name: "Mechanical Keyboard", PurchaseCost: 3500, SaleCost: 5500, Quantity: 30, Threshold: 12, StorageCost: 50, EstimatedDemand: 20},
	{Name: "24\" Monitor", PurchaseCost: 18000, SaleCost: 28000, Quantity: 15, Threshold: 8, StorageCost: 300, EstimatedDemand: 10},
	{Name: "Headset", PurchaseCost: 4000, SaleCost: 7000, Quantity: 40, Threshold: 18, StorageCost: 40, EstimatedDemand: 25},
	{Name: "SSD 1TB", PurchaseCost: 8000, SaleCost: 12000, Quantity: 20, Threshold: 10, StorageCost: 80, EstimatedDemand: 12},
	{Name: "HD Webcam", PurchaseCost: 5500, SaleCost: 8500, Quantity: 35, Threshold: 14, StorageCost: 60, EstimatedDemand: 18},
}

// SampleCatalog returns a copy of the starter catalog with fresh IDs.
func SampleCatalog() []domain.Product {
	out := make([]domain.Product, len(sampleCatalog))
	for i, p := range sampleCatalog {
		p.ID = util.NewID()
		out[i] = p
	}
	return out
}

// Seed imports the sample catalog when s holds no products. It reports
// whether anything was imported.
func Seed(ctx context.Context, s domain.ProductStore) (bool, error) {
	existing, err := s.List(ctx, domain.ListFilter{})
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}
	if err := s.BulkImport(ctx, SampleCatalog()); err != nil {
		return false, err
	}
	return true, nil
}
