package booking

import (
	"fmt"

	"labbook/models"
)

// ComputeTotal sums the snapshotted item prices plus the platform fee, in
// integer minor units. An empty selection totals zero: the fee applies only
// when something is being bought. The result is independent of item order.
func ComputeTotal(items []models.SessionItem, platformFeeCents int64) int64 {
	if len(items) == 0 {
		return 0
	}
	var total int64
	for _, it := range items {
		total += it.PriceCents
	}
	return total + platformFeeCents
}

// FormatAmount renders minor units as a two-decimal string, e.g. 7500 -> "75.00".
func FormatAmount(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
