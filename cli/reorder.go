package cli

import (
	"fmt"

	"stockdesk/domain"
	"stockdesk/reorder"

	"github.com/spf13/cobra"
)

// recommendReport is the JSON shape of the recommend command.
type recommendReport struct {
	Product        domain.Product         `json:"product"`
	Recommendation reorder.Recommendation `json:"recommendation"`
	Financials     reorder.Financials     `json:"financials"`
	Risks          []reorder.Risk         `json:"risks,omitempty"`
}

func newRecommendCmd(a *app) *cobra.Command {
	var demand int
	var output string
	cmd := &cobra.Command{
		Use:   "recommend <id|name>",
		Short: "Recommend whether and how much to reorder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var d *int
			if cmd.Flags().Changed("demand") {
				d = &demand
			}
			p, rec, err := a.advisor.Recommend(cmd.Context(), args[0], d)
			if err != nil {
				return err
			}
			report := recommendReport{
				Product:        p,
				Recommendation: rec,
				Financials:     reorder.Analyze(p, rec),
				Risks:          reorder.AssessRisk(p, rec),
			}
			if output == "json" {
				return printJSON(cmd.OutOrStdout(), report)
			}
			renderRecommendation(cmd.OutOrStdout(), report)
			return nil
		},
	}
	cmd.Flags().IntVar(&demand, "demand", 0, "projected demand (defaults to the product's estimate)")
	addOutputFlag(cmd, &output)
	return cmd
}

func newApplyCmd(a *app) *cobra.Command {
	var qty, demand int
	cmd := &cobra.Command{
		Use:   "apply <id|name>",
		Short: "Add received units to stock (defaults to the recommended order)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			n := qty
			if !cmd.Flags().Changed("qty") {
				var d *int
				if cmd.Flags().Changed("demand") {
					d = &demand
				}
				_, rec, err := a.advisor.Recommend(ctx, args[0], d)
				if err != nil {
					return err
				}
				if !rec.NeedReorder {
					fmt.Fprintln(out, "no reorder needed")
					return nil
				}
				n = rec.ReorderQty
			}

			cost, err := a.advisor.ReorderCost(ctx, args[0], n)
			if err != nil {
				return err
			}
			p, err := a.advisor.Apply(ctx, args[0], n)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "applied %d units to %s: stock now %d (order cost %s)\n", n, p.Name, p.Quantity, cost.StringFixed(2))
			return nil
		},
	}
	cmd.Flags().IntVar(&qty, "qty", 0, "units to add instead of the recommended order")
	cmd.Flags().IntVar(&demand, "demand", 0, "projected demand used to size the order")
	return cmd
}

func newSimulateCmd(a *app) *cobra.Command {
	var demand int
	var purchaseCost, storageCost float64
	var output string
	cmd := &cobra.Command{
		Use:   "simulate <id|name>",
		Short: "What-if recommendation with overridden demand and costs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.advisor.Lookup(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			d := p.EstimatedDemand
			if cmd.Flags().Changed("demand") {
				d = demand
			}
			var o reorder.Overrides
			if cmd.Flags().Changed("purchase-cost") {
				o.PurchaseCost = &purchaseCost
			}
			if cmd.Flags().Changed("storage-cost") {
				o.StorageCost = &storageCost
			}

			sim, err := a.advisor.Simulate(cmd.Context(), p.ID, d, o)
			if err != nil {
				return err
			}
			if output == "json" {
				return printJSON(cmd.OutOrStdout(), sim)
			}
			renderSimulation(cmd.OutOrStdout(), sim)
			return nil
		},
	}
	cmd.Flags().IntVar(&demand, "demand", 0, "simulated demand")
	cmd.Flags().Float64Var(&purchaseCost, "purchase-cost", 0, "simulated purchase cost")
	cmd.Flags().Float64Var(&storageCost, "storage-cost", 0, "simulated storage cost")
	addOutputFlag(cmd, &output)
	return cmd
}

func newCompareCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "compare <id|name>",
		Short: "Compare low, normal, high and very high demand scenarios",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, scenarios, err := a.advisor.Compare(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if output == "json" {
				return printJSON(cmd.OutOrStdout(), scenarios)
			}
			renderScenarios(cmd.OutOrStdout(), p, scenarios)
			return nil
		},
	}
	addOutputFlag(cmd, &output)
	return cmd
}

func newSummaryCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Stock value, storage cost and alert totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			sum, err := a.advisor.Summary(cmd.Context())
			if err != nil {
				return err
			}
			if output == "json" {
				return printJSON(cmd.OutOrStdout(), sum)
			}
			renderSummary(cmd.OutOrStdout(), sum)
			return nil
		},
	}
	addOutputFlag(cmd, &output)
	return cmd
}

func newAlertsCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Products at or below their reorder threshold",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.advisor.Alerts(cmd.Context())
			if err != nil {
				return err
			}
			if output == "json" {
				return printJSON(cmd.OutOrStdout(), out)
			}
			if len(out) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no products below threshold")
				return nil
			}
			renderProducts(cmd.OutOrStdout(), out)
			return nil
		},
	}
	addOutputFlag(cmd, &output)
	return cmd
}
