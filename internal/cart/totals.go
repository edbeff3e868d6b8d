package cart

import (
	"math"

	"churro-kiosk/internal/model"
)

// ComputeTotals derives the cart figures from a snapshot of line items.
// Redeemed lines are valued exclusively in points: they contribute nothing
// to MoneyDue and earn nothing; cash lines spend no points. Money
// accumulates at full float precision and is floored exactly once here, so
// every caller displays the same integer amount.
func ComputeTotals(items []model.CartItem) model.Totals {
	var totals model.Totals
	var money float64

	for _, item := range items {
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}

		totals.ItemCount += qty
		if item.IsRedemption {
			totals.PointsSpent += item.PointsCost * qty
			continue
		}
		money += item.CashPrice * float64(qty)
		totals.PointsEarned += item.PointsPerUnit * qty
	}

	totals.MoneyDue = int(math.Floor(money))
	return totals
}
