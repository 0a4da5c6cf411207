// Package reorder computes reorder recommendations for a single product
// snapshot and a demand figure.
//
// Every function in this package is pure: inputs are taken by value, nothing
// is cached, and results depend only on the arguments. Callers may invoke
// them concurrently as long as each call gets its own product copy.
package reorder

import (
	"math"

	"stockdesk/domain"
)

// autoThresholdRatio is the share of demand used as the demand-driven trigger level.
const autoThresholdRatio = 0.75

// Status classifies the outcome of a recommendation.
type Status string

const (
	StatusSufficient Status = "sufficient"
	StatusLowStock   Status = "low_stock"
	StatusShortage   Status = "shortage"
)

// Recommendation is the result of Recommend. It is a plain value and is
// never stored against the product it was computed for.
type Recommendation struct {
	Sold          int    `json:"sold"`
	Shortage      int    `json:"shortage"`
	NeedReorder   bool   `json:"need_reorder"`
	ReorderQty    int    `json:"reorder_qty"`
	AutoThreshold int    `json:"auto_threshold"`
	EOQ           int    `json:"eoq"`
	Message       string `json:"message"`

	Status    Status `json:"status"`
	Demand    int    `json:"demand"`
	Remaining int    `json:"remaining"`

	// Set when EOQ substituted 1.0 for a non-positive cost.
	PurchaseCostDefaulted bool `json:"purchase_cost_defaulted"`
	StorageCostDefaulted  bool `json:"storage_cost_defaulted"`
}

// CostDefaulted reports whether any cost substitution took place.
func (r Recommendation) CostDefaulted() bool {
	return r.PurchaseCostDefaulted || r.StorageCostDefaulted
}

// Recommend decides sold quantity, shortage and reorder size for p under the
// given demand. Negative demand or a negative stock quantity is rejected with
// a *domain.InvalidArgumentError. Other product fields are read as given.
func Recommend(p domain.Product, demand int) (Recommendation, error) {
	if demand < 0 {
		return Recommendation{}, domain.NewInvalidArgumentError("demand", demand)
	}
	if p.Quantity < 0 {
		return Recommendation{}, domain.NewInvalidArgumentError("quantity", p.Quantity)
	}

	rec := Recommendation{
		Demand:        demand,
		AutoThreshold: AutoThreshold(demand, p.Threshold),
	}

	switch {
	case demand > p.Quantity:
		rec.Status = StatusShortage
		rec.Sold = p.Quantity
		rec.Shortage = demand - p.Quantity
		rec.NeedReorder = true
		rec.EOQ = EOQ(demand, p.PurchaseCost, p.StorageCost)
		rec.ReorderQty = rec.Shortage + rec.EOQ

	case p.Quantity <= rec.AutoThreshold:
		rec.Status = StatusLowStock
		rec.Sold = demand
		rec.NeedReorder = true
		rec.EOQ = EOQ(demand, p.PurchaseCost, p.StorageCost)
		rec.ReorderQty = rec.EOQ

	default:
		rec.Status = StatusSufficient
		rec.Sold = demand
	}

	rec.Remaining = p.Quantity - rec.Sold
	if rec.NeedReorder {
		rec.PurchaseCostDefaulted = !(p.PurchaseCost > 0)
		rec.StorageCostDefaulted = !(p.StorageCost > 0)
	}
	rec.Message = describe(p, rec)
	return rec, nil
}

// AutoThreshold blends the demand-proportional trigger with the configured
// threshold and keeps the larger one.
func AutoThreshold(demand int, threshold float64) int {
	fromDemand := ceilInt(float64(demand) * autoThresholdRatio)
	configured := ceilInt(threshold)
	return max(fromDemand, configured)
}

// EOQ returns the Economic Order Quantity ceil(sqrt(2*D*S/H)).
//
// D is max(demand, 1). A purchase or storage cost that is not positive
// (including NaN) is treated as 1.0, so a product with no configured costs is
// sized as if both were one unit. Results beyond math.MaxInt32 saturate.
func EOQ(demand int, purchaseCost, storageCost float64) int {
	storageCostPerUnit := storageCost
	if !(storageCostPerUnit > 0) {
		storageCostPerUnit = 1.0
	}
	replenishmentCost := purchaseCost
	if !(replenishmentCost > 0) {
		replenishmentCost = 1.0
	}
	d := float64(max(demand, 1))
	return ceilInt(math.Sqrt((2.0 * d * replenishmentCost) / storageCostPerUnit))
}

// ceilInt rounds x up and clamps it to the int32 range. NaN maps to 0.
// Go leaves out-of-range float to int conversions implementation-defined.
func ceilInt(x float64) int {
	x = math.Ceil(x)
	switch {
	case math.IsNaN(x):
		return 0
	case x >= math.MaxInt32:
		return math.MaxInt32
	case x <= math.MinInt32:
		return math.MinInt32
	}
	return int(x)
}
