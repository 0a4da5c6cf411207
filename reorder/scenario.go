package reorder

import (
	"stockdesk/domain"
)

// Overrides replaces cost fields of a product for a what-if run. Nil fields
// keep the product's own value.
type Overrides struct {
	PurchaseCost *float64
	StorageCost  *float64
}

// Simulation is a recommendation computed against overridden costs.
type Simulation struct {
	Product        domain.Product `json:"product"`
	Recommendation Recommendation `json:"recommendation"`
	Financials     Financials     `json:"financials"`
	Risks          []Risk         `json:"risks,omitempty"`
}

// Simulate runs Recommend on a copy of p with the overrides applied. The
// returned Product is the simulated copy; p itself is untouched.
func Simulate(p domain.Product, demand int, o Overrides) (Simulation, error) {
	sim := p
	if o.PurchaseCost != nil {
		sim.PurchaseCost = *o.PurchaseCost
	}
	if o.StorageCost != nil {
		sim.StorageCost = *o.StorageCost
	}
	if err := checkFiniteCosts(sim); err != nil {
		return Simulation{}, err
	}

	rec, err := Recommend(sim, demand)
	if err != nil {
		return Simulation{}, err
	}
	return Simulation{
		Product:        sim,
		Recommendation: rec,
		Financials:     Analyze(sim, rec),
		Risks:          AssessRisk(sim, rec),
	}, nil
}

// Scenario is one demand level in a comparison.
type Scenario struct {
	Label          string         `json:"label"`
	Demand         int            `json:"demand"`
	Recommendation Recommendation `json:"recommendation"`
	Financials     Financials     `json:"financials"`
}

var scenarioFactors = []struct {
	label  string
	factor float64
}{
	{"low", 0.5},
	{"normal", 1.0},
	{"high", 1.5},
	{"very_high", 2.0},
}

// Compare evaluates p at fractions and multiples of its estimated demand.
func Compare(p domain.Product) ([]Scenario, error) {
	if err := checkFiniteCosts(p); err != nil {
		return nil, err
	}
	out := make([]Scenario, 0, len(scenarioFactors))
	for _, sf := range scenarioFactors {
		demand := int(float64(p.EstimatedDemand) * sf.factor)
		rec, err := Recommend(p, demand)
		if err != nil {
			return nil, err
		}
		out = append(out, Scenario{
			Label:          sf.label,
			Demand:         demand,
			Recommendation: rec,
			Financials:     Analyze(p, rec),
		})
	}
	return out, nil
}

// checkFiniteCosts rejects NaN or infinite money fields, which the decimal
// financials cannot represent.
func checkFiniteCosts(p domain.Product) error {
	switch {
	case !domain.IsFinite(p.PurchaseCost):
		return domain.NewNonFiniteArgumentError("purchase_cost", p.PurchaseCost)
	case !domain.IsFinite(p.SaleCost):
		return domain.NewNonFiniteArgumentError("sale_cost", p.SaleCost)
	case !domain.IsFinite(p.StorageCost):
		return domain.NewNonFiniteArgumentError("storage_cost", p.StorageCost)
	}
	return nil
}
