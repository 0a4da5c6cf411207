package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"stockdesk/domain"
	"stockdesk/reorder"
	"stockdesk/store"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testApp(t *testing.T) *app {
	t.Helper()
	return &app{v: viper.New(), log: zerolog.Nop(), store: store.NewInMemoryStore()}
}

// run executes one command line against a and returns stdout and stderr.
func run(a *app, stdin string, args ...string) (string, string, error) {
	var out, errOut bytes.Buffer
	root := newRootCmd(a)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func addLaptop(t *testing.T, a *app) domain.Product {
	t.Helper()
	p := domain.Product{
		ID:              "p-laptop",
		Name:            "Laptop Dell",
		PurchaseCost:    45000,
		SaleCost:        65000,
		Quantity:        25,
		Threshold:       10,
		StorageCost:     500,
		EstimatedDemand: 15,
	}
	require.NoError(t, a.store.Create(context.Background(), p))
	return p
}

func TestCreateGetListUpdateDelete(t *testing.T) {
	a := testApp(t)

	out, _, err := run(a, "", "create",
		"--name", "TestProd",
		"--purchase-cost", "3",
		"--sale-cost", "5.5",
		"--quantity", "2",
		"--threshold", "4",
	)
	require.NoError(t, err)
	var created domain.Product
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "TestProd", created.Name)

	out, _, err = run(a, "", "get", created.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "TestProd")

	out, _, err = run(a, "", "get", "testprod")
	require.NoError(t, err)
	assert.Contains(t, out, created.ID)

	out, _, err = run(a, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "TestProd")
	assert.Contains(t, out, "ALERT")

	out, _, err = run(a, "", "update", created.ID, "--quantity", "10", "--name", "Updated")
	require.NoError(t, err)
	var updated domain.Product
	require.NoError(t, json.Unmarshal([]byte(out), &updated))
	assert.Equal(t, 10, updated.Quantity)
	assert.Equal(t, "Updated", updated.Name)
	assert.Equal(t, 5.5, updated.SaleCost)

	out, _, err = run(a, "", "delete", created.ID, "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted")

	_, errOut, err := run(a, "", "get", created.ID)
	require.NoError(t, err)
	assert.Contains(t, errOut, "not found")
}

func TestCreate_Validation(t *testing.T) {
	a := testApp(t)

	_, _, err := run(a, "", "create", "--sale-cost", "5")
	assert.EqualError(t, err, "name required")

	_, _, err = run(a, "", "create", "--name", "Cheap", "--purchase-cost", "10", "--sale-cost", "5")
	assert.Error(t, err)

	_, _, err = run(a, "", "create", "--name", "Neg", "--sale-cost", "5", "--quantity", "-1")
	assert.Error(t, err)
}

func TestCreate_DuplicateName(t *testing.T) {
	a := testApp(t)
	addLaptop(t, a)

	_, _, err := run(a, "", "create", "--name", "laptop dell", "--sale-cost", "1")
	require.Error(t, err)
	assert.True(t, domain.IsDuplicateProductError(err))
}

func TestDelete_Confirmation(t *testing.T) {
	a := testApp(t)
	p := addLaptop(t, a)

	out, _, err := run(a, "n\n", "delete", p.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "aborted")
	_, err = a.store.Get(context.Background(), p.ID)
	require.NoError(t, err)

	out, _, err = run(a, "y\n", "delete", "Laptop Dell")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted")
	_, err = a.store.Get(context.Background(), p.ID)
	assert.True(t, domain.IsProductNotFoundError(err))
}

func TestList_FiltersAndJSON(t *testing.T) {
	a := testApp(t)
	addLaptop(t, a)
	require.NoError(t, a.store.Create(context.Background(), domain.Product{
		ID: "p-mouse", Name: "Wireless Mouse", PurchaseCost: 800, SaleCost: 1500, Quantity: 12, Threshold: 15,
	}))

	out, _, err := run(a, "", "list", "--alerts", "--output", "json")
	require.NoError(t, err)
	var alerts []domain.Product
	require.NoError(t, json.Unmarshal([]byte(out), &alerts))
	require.Len(t, alerts, 1)
	assert.Equal(t, "p-mouse", alerts[0].ID)

	out, _, err = run(a, "", "list", "--sort-by", "price", "--order", "desc", "--output", "json")
	require.NoError(t, err)
	var sorted []domain.Product
	require.NoError(t, json.Unmarshal([]byte(out), &sorted))
	require.Len(t, sorted, 2)
	assert.Equal(t, "p-laptop", sorted[0].ID)

	out, _, err = run(a, "", "list", "--max-price", "2000", "--output", "json")
	require.NoError(t, err)
	var cheap []domain.Product
	require.NoError(t, json.Unmarshal([]byte(out), &cheap))
	require.Len(t, cheap, 1)
	assert.Equal(t, "Wireless Mouse", cheap[0].Name)
}

func TestRecommend_JSON(t *testing.T) {
	a := testApp(t)
	addLaptop(t, a)

	out, _, err := run(a, "", "recommend", "Laptop Dell", "--demand", "30", "--output", "json")
	require.NoError(t, err)

	var report recommendReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	rec := report.Recommendation
	assert.True(t, rec.NeedReorder)
	assert.Equal(t, 25, rec.Sold)
	assert.Equal(t, 5, rec.Shortage)
	assert.Equal(t, 74, rec.EOQ)
	assert.Equal(t, 79, rec.ReorderQty)
	assert.Equal(t, 23, rec.AutoThreshold)
	assert.Equal(t, reorder.StatusShortage, rec.Status)
	assert.Equal(t, "3555000", report.Financials.OrderCost.String())
}

func TestRecommend_DefaultDemandText(t *testing.T) {
	a := testApp(t)
	addLaptop(t, a)

	out, _, err := run(a, "", "recommend", "p-laptop")
	require.NoError(t, err)
	assert.Contains(t, out, "Stock sufficient")
	assert.Contains(t, out, "Auto threshold:  12 units")
	assert.Contains(t, out, "Reorder needed:  no")
}

func TestRecommend_NegativeDemand(t *testing.T) {
	a := testApp(t)
	addLaptop(t, a)

	_, _, err := run(a, "", "recommend", "p-laptop", "--demand", "-5")
	require.Error(t, err)
	assert.True(t, domain.IsInvalidArgumentError(err))
}

func TestRecommend_UnknownProduct(t *testing.T) {
	a := testApp(t)

	_, _, err := run(a, "", "recommend", "nothing")
	require.Error(t, err)
	assert.True(t, domain.IsProductNotFoundError(err))
}

func TestApply(t *testing.T) {
	a := testApp(t)
	addLaptop(t, a)

	out, _, err := run(a, "", "apply", "p-laptop")
	require.NoError(t, err)
	assert.Contains(t, out, "no reorder needed")

	out, _, err = run(a, "", "apply", "p-laptop", "--demand", "30")
	require.NoError(t, err)
	assert.Contains(t, out, "applied 79 units")
	assert.Contains(t, out, "stock now 104")
	assert.Contains(t, out, "3555000.00")

	out, _, err = run(a, "", "apply", "Laptop Dell", "--qty", "6")
	require.NoError(t, err)
	assert.Contains(t, out, "stock now 110")

	p, err := a.store.Get(context.Background(), "p-laptop")
	require.NoError(t, err)
	assert.Equal(t, 110, p.Quantity)

	_, _, err = run(a, "", "apply", "p-laptop", "--qty", "-1")
	assert.True(t, domain.IsInvalidArgumentError(err))
}

func TestSimulate(t *testing.T) {
	a := testApp(t)
	addLaptop(t, a)

	out, _, err := run(a, "", "simulate", "p-laptop", "--demand", "30", "--purchase-cost", "20000", "--output", "json")
	require.NoError(t, err)

	var sim reorder.Simulation
	require.NoError(t, json.Unmarshal([]byte(out), &sim))
	assert.Equal(t, 49, sim.Recommendation.EOQ)
	assert.Equal(t, 54, sim.Recommendation.ReorderQty)
	assert.Equal(t, "1080000", sim.Financials.OrderCost.String())
	assert.Equal(t, "1125000", sim.Financials.PotentialProfit.String())

	p, err := a.store.Get(context.Background(), "p-laptop")
	require.NoError(t, err)
	assert.Equal(t, 45000.0, p.PurchaseCost)
	assert.Equal(t, 25, p.Quantity)
}

func TestSimulate_DefaultedCostNote(t *testing.T) {
	a := testApp(t)
	addLaptop(t, a)

	out, _, err := run(a, "", "simulate", "p-laptop", "--demand", "30", "--storage-cost", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Note: storage cost not set")
}

func TestSimulate_NonFiniteOverride(t *testing.T) {
	a := testApp(t)
	addLaptop(t, a)

	_, _, err := run(a, "", "simulate", "Laptop Dell", "--storage-cost", "NaN", "--demand", "30")
	require.Error(t, err)
	assert.True(t, domain.IsInvalidArgumentError(err))

	_, _, err = run(a, "", "simulate", "Laptop Dell", "--purchase-cost", "Inf")
	require.Error(t, err)
	assert.True(t, domain.IsInvalidArgumentError(err))
}

func TestCreateUpdate_NonFiniteCost(t *testing.T) {
	a := testApp(t)
	addLaptop(t, a)

	_, _, err := run(a, "", "create", "--name", "Ghost", "--sale-cost", "5", "--storage-cost", "NaN")
	require.Error(t, err)
	assert.True(t, domain.IsInvalidProductError(err))

	_, _, err = run(a, "", "update", "p-laptop", "--purchase-cost", "+Inf")
	require.Error(t, err)
	assert.True(t, domain.IsInvalidProductError(err))

	out, _, err := run(a, "", "recommend", "p-laptop", "--demand", "30", "--output", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"eoq": 74`)
}

func TestCompare(t *testing.T) {
	a := testApp(t)
	addLaptop(t, a)

	out, _, err := run(a, "", "compare", "p-laptop", "--output", "json")
	require.NoError(t, err)

	var scenarios []reorder.Scenario
	require.NoError(t, json.Unmarshal([]byte(out), &scenarios))
	require.Len(t, scenarios, 4)
	demands := make([]int, 0, len(scenarios))
	for _, s := range scenarios {
		demands = append(demands, s.Demand)
	}
	assert.Equal(t, []int{7, 15, 22, 30}, demands)

	out, _, err = run(a, "", "compare", "p-laptop")
	require.NoError(t, err)
	assert.Contains(t, out, "VERY HIGH (30 units)")
}

func TestSummaryAndAlerts(t *testing.T) {
	a := testApp(t)
	addLaptop(t, a)

	out, _, err := run(a, "", "alerts")
	require.NoError(t, err)
	assert.Contains(t, out, "no products below threshold")

	require.NoError(t, a.store.Create(context.Background(), domain.Product{
		ID: "p-mouse", Name: "Wireless Mouse", PurchaseCost: 800, SaleCost: 1500, Quantity: 12, Threshold: 15, StorageCost: 20,
	}))

	out, _, err = run(a, "", "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "Products:        2")
	assert.Contains(t, out, "Stock value:     1134600.00")
	assert.Contains(t, out, "Alerts:          1")

	out, _, err = run(a, "", "alerts", "--output", "json")
	require.NoError(t, err)
	var alerts []domain.Product
	require.NoError(t, json.Unmarshal([]byte(out), &alerts))
	require.Len(t, alerts, 1)
	assert.Equal(t, "Wireless Mouse", alerts[0].Name)
}

func TestImportExport(t *testing.T) {
	a := testApp(t)
	dir := t.TempDir()

	in := filepath.Join(dir, "in.ndjson")
	ndjson := `{"name":"Cable","purchase_cost":1,"sale_cost":2,"quantity":3,"threshold":5}
{"id":"p-hub","name":"USB Hub","purchase_cost":10,"sale_cost":20,"quantity":40,"threshold":5}
`
	require.NoError(t, os.WriteFile(in, []byte(ndjson), 0o644))

	_, _, err := run(a, "", "import", "--file", in)
	require.NoError(t, err)

	all, err := a.store.List(context.Background(), domain.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	out := filepath.Join(dir, "out.json")
	_, _, err = run(a, "", "export", "--file", out, "--alerts")
	require.NoError(t, err)

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	var exported []domain.Product
	require.NoError(t, json.Unmarshal(b, &exported))
	require.Len(t, exported, 1)
	assert.Equal(t, "Cable", exported[0].Name)
	assert.NotEmpty(t, exported[0].ID)
}

func TestDecodeProducts(t *testing.T) {
	products, err := decodeProducts([]byte(`[{"name":"A"},{"name":"B"}]`))
	require.NoError(t, err)
	assert.Len(t, products, 2)

	products, err = decodeProducts([]byte(`{"name":"Single"}`))
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Single", products[0].Name)

	_, err = decodeProducts([]byte("   "))
	assert.Error(t, err)
}
