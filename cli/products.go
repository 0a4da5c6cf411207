package cli

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"stockdesk/domain"
	"stockdesk/util"

	"github.com/spf13/cobra"
)

// productFlags are the editable product attributes shared by create and update.
type productFlags struct {
	name         string
	purchaseCost float64
	saleCost     float64
	quantity     int
	threshold    float64
	storageCost  float64
	demand       int
}

func (f *productFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "product name")
	cmd.Flags().Float64Var(&f.purchaseCost, "purchase-cost", 0, "unit purchase cost")
	cmd.Flags().Float64Var(&f.saleCost, "sale-cost", 0, "unit sale price")
	cmd.Flags().IntVar(&f.quantity, "quantity", 0, "units on hand")
	cmd.Flags().Float64Var(&f.threshold, "threshold", 0, "reorder threshold")
	cmd.Flags().Float64Var(&f.storageCost, "storage-cost", 0, "holding cost per unit per period")
	cmd.Flags().IntVar(&f.demand, "demand", 0, "estimated demand")
}

// apply copies the flags the user set onto p.
func (f *productFlags) apply(cmd *cobra.Command, p *domain.Product) {
	if cmd.Flags().Changed("name") {
		p.Name = f.name
	}
	if cmd.Flags().Changed("purchase-cost") {
		p.PurchaseCost = f.purchaseCost
	}
	if cmd.Flags().Changed("sale-cost") {
		p.SaleCost = f.saleCost
	}
	if cmd.Flags().Changed("quantity") {
		p.Quantity = f.quantity
	}
	if cmd.Flags().Changed("threshold") {
		p.Threshold = f.threshold
	}
	if cmd.Flags().Changed("storage-cost") {
		p.StorageCost = f.storageCost
	}
	if cmd.Flags().Changed("demand") {
		p.EstimatedDemand = f.demand
	}
}

func newCreateCmd(a *app) *cobra.Command {
	var f productFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.name == "" {
				return errors.New("name required")
			}
			p := domain.Product{ID: util.NewID()}
			f.apply(cmd, &p)

			start := time.Now()
			if err := a.store.Create(cmd.Context(), p); err != nil {
				a.log.Error().Err(err).Str("product_id", p.ID).Msg("create failed")
				return err
			}
			a.log.Info().Str("product_id", p.ID).Int64("duration_ms", time.Since(start).Milliseconds()).Msg("product created")
			return printJSON(cmd.OutOrStdout(), p)
		},
	}
	f.register(cmd)
	return cmd
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id|name>",
		Short: "Get product by id or name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.advisor.Lookup(cmd.Context(), args[0])
			if err != nil {
				if domain.IsProductNotFoundError(err) {
					fmt.Fprintln(cmd.ErrOrStderr(), err)
					return nil
				}
				return err
			}
			return printJSON(cmd.OutOrStdout(), p)
		},
	}
}

func newUpdateCmd(a *app) *cobra.Command {
	var f productFlags
	cmd := &cobra.Command{
		Use:   "update <id|name>",
		Short: "Update a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.advisor.Lookup(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			f.apply(cmd, &p)
			if err := domain.ValidateProduct(p); err != nil {
				return err
			}

			start := time.Now()
			if err := a.store.Update(cmd.Context(), p.ID, p); err != nil {
				a.log.Error().Err(err).Str("product_id", p.ID).Msg("update failed")
				return err
			}
			a.log.Info().Str("product_id", p.ID).Int64("duration_ms", time.Since(start).Milliseconds()).Msg("product updated")
			return printJSON(cmd.OutOrStdout(), p)
		},
	}
	f.register(cmd)
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	var name, sortBy, order, output string
	var alerts bool
	var minPrice, maxPrice float64
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := domain.ListFilter{
				Name:       name,
				AlertsOnly: alerts,
				SortBy:     sortBy,
				Order:      order,
			}
			if cmd.Flags().Changed("min-price") {
				filter.MinPrice = &minPrice
			}
			if cmd.Flags().Changed("max-price") {
				filter.MaxPrice = &maxPrice
			}
			out, err := a.store.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			if output == "json" {
				return printJSON(cmd.OutOrStdout(), out)
			}
			renderProducts(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "name contains")
	cmd.Flags().BoolVar(&alerts, "alerts", false, "only products at or below threshold")
	cmd.Flags().Float64Var(&minPrice, "min-price", 0, "min sale price")
	cmd.Flags().Float64Var(&maxPrice, "max-price", 0, "max sale price")
	cmd.Flags().StringVar(&sortBy, "sort-by", "", "sort field: name|price|cost|quantity|demand")
	cmd.Flags().StringVar(&order, "order", "asc", "sort order")
	addOutputFlag(cmd, &output)
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "delete <id|name>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.advisor.Lookup(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !force {
				fmt.Fprintf(cmd.OutOrStdout(), "Delete %s (%s)? (y/N): ", p.Name, p.ID)
				var resp string
				if _, err := fmt.Fscanln(cmd.InOrStdin(), &resp); err != nil || (resp != "y" && resp != "Y") {
					fmt.Fprintln(cmd.OutOrStdout(), "aborted")
					return nil
				}
			}
			if err := a.store.Delete(cmd.Context(), p.ID); err != nil {
				return err
			}
			a.log.Info().Str("product_id", p.ID).Msg("product deleted")
			fmt.Fprintln(cmd.OutOrStdout(), "deleted")
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "skip confirmation")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "import --file <file>",
		Short: "Import products from a JSON array or NDJSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return errors.New("--file required")
			}
			b, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			products, err := decodeProducts(b)
			if err != nil {
				return err
			}
			for i := range products {
				if products[i].ID == "" {
					products[i].ID = util.NewID()
				}
			}
			if err := a.store.BulkImport(cmd.Context(), products); err != nil {
				return err
			}
			a.log.Info().Int("count", len(products)).Str("file", file).Msg("products imported")
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "input file")
	return cmd
}

// decodeProducts accepts a JSON array, a single object or NDJSON.
func decodeProducts(b []byte) ([]domain.Product, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, errors.New("empty file")
	}

	var products []domain.Product
	if b[0] == '[' {
		if err := json.Unmarshal(b, &products); err != nil {
			return nil, err
		}
		return products, nil
	}

	scanner := bufio.NewScanner(bytes.NewReader(b))
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var p domain.Product
		if err := json.Unmarshal(line, &p); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func newExportCmd(a *app) *cobra.Command {
	var file string
	var alerts bool
	cmd := &cobra.Command{
		Use:   "export --file <file>",
		Short: "Export products to JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return errors.New("--file required")
			}
			out, err := a.store.List(cmd.Context(), domain.ListFilter{AlertsOnly: alerts})
			if err != nil {
				return err
			}
			b, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return err
			}
			return os.WriteFile(file, b, 0o644)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "output file")
	cmd.Flags().BoolVar(&alerts, "alerts", false, "only products at or below threshold")
	return cmd
}
