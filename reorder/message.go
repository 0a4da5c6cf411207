package reorder

import (
	"fmt"
	"strings"

	"stockdesk/domain"
)

// describe renders the display message for rec. Presentation layers that need
// another language should build their own text from the structured fields.
func describe(p domain.Product, rec Recommendation) string {
	var b strings.Builder
	switch rec.Status {
	case StatusShortage:
		b.WriteString("ALERT: demand exceeds current stock\n")
		fmt.Fprintf(&b, "Sellable: %d units\n", rec.Sold)
		fmt.Fprintf(&b, "Shortage: %d units\n", rec.Shortage)
		fmt.Fprintf(&b, "Recommended order: %d units (shortage + EOQ=%d)", rec.ReorderQty, rec.EOQ)
	case StatusLowStock:
		b.WriteString("Low stock detected\n")
		fmt.Fprintf(&b, "Sold: %d units\n", rec.Sold)
		fmt.Fprintf(&b, "Current stock: %d <= threshold: %d\n", p.Quantity, rec.AutoThreshold)
		fmt.Fprintf(&b, "Recommended order: %d units (EOQ)", rec.EOQ)
	default:
		b.WriteString("Stock sufficient\n")
		fmt.Fprintf(&b, "Sold: %d units\n", rec.Sold)
		fmt.Fprintf(&b, "Remaining stock: %d units\n", rec.Remaining)
		b.WriteString("No reorder needed")
	}
	return b.String()
}
