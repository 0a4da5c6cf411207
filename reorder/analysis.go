package reorder

import (
	"stockdesk/domain"

	"github.com/shopspring/decimal"
)

// Financials summarises the money side of applying a recommendation.
type Financials struct {
	OrderCost        decimal.Decimal `json:"order_cost"`
	StorageCostAfter decimal.Decimal `json:"storage_cost_after"`
	PotentialProfit  decimal.Decimal `json:"potential_profit"`
	ROI              decimal.Decimal `json:"roi_pct"`
}

// Analyze prices rec against the costs of p.
func Analyze(p domain.Product, rec Recommendation) Financials {
	hundred := decimal.NewFromInt(100)
	purchase := decimal.NewFromFloat(p.PurchaseCost)
	sale := decimal.NewFromFloat(p.SaleCost)
	storage := decimal.NewFromFloat(p.StorageCost)

	orderCost := purchase.Mul(decimal.NewFromInt(int64(rec.ReorderQty)))
	stockAfter := decimal.NewFromInt(int64(p.Quantity + rec.ReorderQty))
	profit := sale.Sub(purchase).Mul(decimal.NewFromInt(int64(rec.Sold)))

	roi := decimal.Zero
	if orderCost.GreaterThan(decimal.Zero) {
		roi = profit.Div(orderCost).Mul(hundred)
	}

	return Financials{
		OrderCost:        orderCost.Round(2),
		StorageCostAfter: storage.Mul(stockAfter).Round(2),
		PotentialProfit:  profit.Round(2),
		ROI:              roi.Round(1),
	}
}

// RiskLevel names a finding of AssessRisk.
type RiskLevel string

const (
	RiskHigh      RiskLevel = "high"
	RiskModerate  RiskLevel = "moderate"
	RiskOverstock RiskLevel = "overstock"
	RiskMargin    RiskLevel = "margin"
)

// Risk is a single warning about a recommendation.
type Risk struct {
	Level  RiskLevel `json:"level"`
	Detail string    `json:"detail"`
}

const (
	highCoverage      = 0.5
	moderateCoverage  = 1.0
	overstockCoverage = 3.0
	marginCostShare   = 0.8
)

// AssessRisk flags coverage and margin problems with the stock that would be
// on hand after applying rec. It returns nil when nothing stands out.
func AssessRisk(p domain.Product, rec Recommendation) []Risk {
	var risks []Risk
	stockAfter := p.Quantity + rec.ReorderQty

	// Coverage is undefined at zero demand; any stock at all is surplus.
	if rec.Demand == 0 {
		if stockAfter > 0 {
			risks = append(risks, Risk{Level: RiskOverstock, Detail: "stock on hand with no expected demand"})
		}
	} else {
		coverage := float64(stockAfter) / float64(rec.Demand)
		switch {
		case coverage < highCoverage:
			risks = append(risks, Risk{Level: RiskHigh, Detail: "stock insufficient even after reorder"})
		case coverage < moderateCoverage:
			risks = append(risks, Risk{Level: RiskModerate, Detail: "stock barely covers demand"})
		case coverage > overstockCoverage:
			risks = append(risks, Risk{Level: RiskOverstock, Detail: "stock exceeds three times demand"})
		}
	}

	totalCost := p.PurchaseCost*float64(rec.ReorderQty) + p.StorageCost*float64(stockAfter)
	costPerUnit := totalCost / float64(max(rec.Sold, 1))
	if costPerUnit > p.SaleCost*marginCostShare {
		risks = append(risks, Risk{Level: RiskMargin, Detail: "costs per unit sold eat into the margin"})
	}
	return risks
}
