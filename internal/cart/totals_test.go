package cart

import (
	"testing"

	"churro-kiosk/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotals_EmptyCart(t *testing.T) {
	totals := ComputeTotals(nil)

	assert.Equal(t, 0, totals.ItemCount)
	assert.Equal(t, 0, totals.MoneyDue)
	assert.Equal(t, 0, totals.PointsSpent)
	assert.Equal(t, 0, totals.PointsEarned)
}

func TestComputeTotals_MixedCart(t *testing.T) {
	items := []model.CartItem{
		{ID: "a", CashPrice: 1000, PointsPerUnit: 10, Quantity: 2},
		{ID: "b", PointsCost: 500, IsRedemption: true, Quantity: 1},
	}

	totals := ComputeTotals(items)

	assert.Equal(t, 3, totals.ItemCount)
	assert.Equal(t, 2000, totals.MoneyDue)
	assert.Equal(t, 500, totals.PointsSpent)
	assert.Equal(t, 20, totals.PointsEarned)
}

func TestComputeTotals_RedemptionExclusion(t *testing.T) {
	// A redeemed line must contribute nothing to money due or points
	// earned, even when it carries a cash price and an earn rate.
	items := []model.CartItem{
		{ID: "a", CashPrice: 750, PointsCost: 300, PointsPerUnit: 5, IsRedemption: true, Quantity: 2},
	}

	totals := ComputeTotals(items)

	assert.Equal(t, 0, totals.MoneyDue)
	assert.Equal(t, 0, totals.PointsEarned)
	assert.Equal(t, 600, totals.PointsSpent)
}

func TestComputeTotals_CashLineSpendsNoPoints(t *testing.T) {
	items := []model.CartItem{
		{ID: "a", CashPrice: 100, PointsCost: 50, PointsPerUnit: 2, Quantity: 3},
	}

	totals := ComputeTotals(items)

	assert.Equal(t, 300, totals.MoneyDue)
	assert.Equal(t, 0, totals.PointsSpent)
	assert.Equal(t, 6, totals.PointsEarned)
}

func TestComputeTotals_FlooredOnce(t *testing.T) {
	items := []model.CartItem{
		{ID: "a", CashPrice: 10.40, Quantity: 1},
		{ID: "b", CashPrice: 10.40, Quantity: 1},
	}

	totals := ComputeTotals(items)

	// 20.80 floors to 20: accumulation keeps full precision and the floor
	// happens once on the sum, not per line.
	assert.Equal(t, 20, totals.MoneyDue)
}

func TestComputeTotals_MissingEarnRateIsZero(t *testing.T) {
	items := []model.CartItem{
		{ID: "a", CashPrice: 500, Quantity: 2},
	}

	totals := ComputeTotals(items)

	assert.Equal(t, 1000, totals.MoneyDue)
	assert.Equal(t, 0, totals.PointsEarned)
}

func TestComputeTotals_ClampsInvalidQuantity(t *testing.T) {
	items := []model.CartItem{
		{ID: "a", CashPrice: 100, Quantity: 0},
	}

	totals := ComputeTotals(items)

	assert.Equal(t, 1, totals.ItemCount)
	assert.Equal(t, 100, totals.MoneyDue)
}
