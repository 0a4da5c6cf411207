package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"stockdesk/domain"
	"stockdesk/inventory"
	"stockdesk/reorder"

	"github.com/spf13/cobra"
)

// addOutputFlag registers --output on cmd and rejects unknown formats before
// the command runs.
func addOutputFlag(cmd *cobra.Command, output *string) {
	cmd.Flags().StringVar(output, "output", "text", "output format: text|json")
	cmd.PreRunE = func(*cobra.Command, []string) error {
		return checkOutput(*output)
	}
}

// checkOutput rejects --output values other than text (the default) and json.
func checkOutput(output string) error {
	switch output {
	case "", "text", "json":
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", output)
	}
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func renderProducts(w io.Writer, products []domain.Product) {
	for _, p := range products {
		flag := ""
		if p.BelowThreshold() {
			flag = " | ALERT"
		}
		fmt.Fprintf(w, "%s | %s | qty %d | threshold %.0f | buy %.2f | sell %.2f | storage %.2f | demand %d%s\n",
			p.ID, p.Name, p.Quantity, p.Threshold, p.PurchaseCost, p.SaleCost, p.StorageCost, p.EstimatedDemand, flag)
	}
}

func renderRecommendation(w io.Writer, r recommendReport) {
	fmt.Fprintf(w, "Product: %s\n", r.Product.Name)
	fmt.Fprintf(w, "Stock: %d units, demand: %d units\n\n", r.Product.Quantity, r.Recommendation.Demand)
	fmt.Fprintln(w, r.Recommendation.Message)
	fmt.Fprintln(w)
	renderIndicators(w, r.Recommendation)
	renderFinancials(w, r.Financials)
	renderRisks(w, r.Risks)
}

func renderSimulation(w io.Writer, sim reorder.Simulation) {
	fmt.Fprintf(w, "Simulation for %s (stock %d)\n", sim.Product.Name, sim.Product.Quantity)
	fmt.Fprintf(w, "  demand %d, purchase cost %.2f, storage cost %.2f\n\n",
		sim.Recommendation.Demand, sim.Product.PurchaseCost, sim.Product.StorageCost)
	fmt.Fprintln(w, sim.Recommendation.Message)
	fmt.Fprintln(w)
	renderIndicators(w, sim.Recommendation)
	renderFinancials(w, sim.Financials)
	renderRisks(w, sim.Risks)
}

func renderIndicators(w io.Writer, rec reorder.Recommendation) {
	reorderFlag := "no"
	if rec.NeedReorder {
		reorderFlag = "YES"
	}
	fmt.Fprintf(w, "EOQ:             %d units\n", rec.EOQ)
	fmt.Fprintf(w, "Auto threshold:  %d units\n", rec.AutoThreshold)
	fmt.Fprintf(w, "Reorder needed:  %s\n", reorderFlag)
	if rec.CostDefaulted() {
		var fields []string
		if rec.PurchaseCostDefaulted {
			fields = append(fields, "purchase")
		}
		if rec.StorageCostDefaulted {
			fields = append(fields, "storage")
		}
		fmt.Fprintf(w, "Note: %s cost not set, EOQ used 1.0\n", strings.Join(fields, " and "))
	}
}

func renderFinancials(w io.Writer, f reorder.Financials) {
	fmt.Fprintf(w, "Order cost:      %s\n", f.OrderCost.StringFixed(2))
	fmt.Fprintf(w, "Storage after:   %s\n", f.StorageCostAfter.StringFixed(2))
	fmt.Fprintf(w, "Profit:          %s\n", f.PotentialProfit.StringFixed(2))
	fmt.Fprintf(w, "ROI:             %s%%\n", f.ROI.StringFixed(1))
}

func renderRisks(w io.Writer, risks []reorder.Risk) {
	for _, r := range risks {
		fmt.Fprintf(w, "Risk [%s]: %s\n", r.Level, r.Detail)
	}
}

func renderScenarios(w io.Writer, p domain.Product, scenarios []reorder.Scenario) {
	fmt.Fprintf(w, "Scenarios for %s (stock %d, estimated demand %d)\n", p.Name, p.Quantity, p.EstimatedDemand)
	for _, s := range scenarios {
		status := "stock sufficient"
		if s.Recommendation.NeedReorder {
			status = "reorder needed"
		}
		fmt.Fprintf(w, "\n%s (%d units)\n", strings.ToUpper(strings.ReplaceAll(s.Label, "_", " ")), s.Demand)
		fmt.Fprintf(w, "  EOQ:         %d units\n", s.Recommendation.EOQ)
		fmt.Fprintf(w, "  order:       %d units\n", s.Recommendation.ReorderQty)
		fmt.Fprintf(w, "  order cost:  %s\n", s.Financials.OrderCost.StringFixed(2))
		fmt.Fprintf(w, "  profit:      %s\n", s.Financials.PotentialProfit.StringFixed(2))
		fmt.Fprintf(w, "  status:      %s\n", status)
	}
}

func renderSummary(w io.Writer, s inventory.Summary) {
	fmt.Fprintf(w, "Products:        %d\n", s.Products)
	fmt.Fprintf(w, "Units on hand:   %d\n", s.Units)
	fmt.Fprintf(w, "Stock value:     %s\n", s.TotalStockValue.StringFixed(2))
	fmt.Fprintf(w, "Storage cost:    %s\n", s.TotalStorageCost.StringFixed(2))
	fmt.Fprintf(w, "Alerts:          %d\n", s.Alerts)
}
