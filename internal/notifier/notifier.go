// Package notifier formats and delivers one status message per
// observation. Delivery is best-effort: a failed send is logged by the
// caller and never blocks persistence or the rest of the cycle.
package notifier

import (
	"context"
	"fmt"
	"strings"

	"pricewatch/internal/models"
	"pricewatch/internal/store"
)

// Notifier delivers a formatted status message to the configured
// recipient.
type Notifier interface {
	Notify(ctx context.Context, obs *models.PriceObservation, max *store.MaxResult) error
}

// BuildMessage renders the fixed-template status message, with Markdown
// emphasis, branching on the historical state:
//   - no prior maximum: first-record variant
//   - current price above the maximum: new-high variant
//   - otherwise: previous maximum with its timestamp
func BuildMessage(obs *models.PriceObservation, max *store.MaxResult) string {
	var sb strings.Builder

	sb.WriteString("📊 *Price monitoring*\n\n")
	fmt.Fprintf(&sb, "Product: *%s*\n", obs.ProductName)
	fmt.Fprintf(&sb, "Current price: R$ %d\n", obs.NewPrice)
	fmt.Fprintf(&sb, "Installment price: R$ %d\n", obs.InstallmentPrice)

	switch {
	case max == nil:
		sb.WriteString("This is the first recorded price.\n")
	case obs.NewPrice > max.Price:
		sb.WriteString("New highest price recorded!\n")
	default:
		fmt.Fprintf(&sb, "Highest recorded price: R$ %d at %s\n", max.Price, max.Timestamp)
	}

	return sb.String()
}
