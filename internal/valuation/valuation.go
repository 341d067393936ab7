// Package valuation derives value, allocation and change for a snapshot of
// positions. Every function here is pure; persisting the results is the
// caller's job.
//
// The steps must run in order: prices, values, allocations, changes.
// Allocation reads the value of every row, so all values have to be
// recomputed before any allocation is.
package valuation

import (
	"github.com/shopspring/decimal"

	"stockfolio/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Value returns the market value of a single position: the quantity itself
// for cash, quantity*price otherwise, or zero when there is no price.
func Value(p *models.Position) decimal.Decimal {
	if p.IsCash() {
		return p.Quantity
	}
	if !p.CurrentPrice.Valid {
		return decimal.Zero
	}
	return p.Quantity.Mul(p.CurrentPrice.Decimal).Round(models.MoneyPlaces)
}

// Change returns the unrealized percent gain relative to the current price.
// The result is invalid when price is absent or zero.
func Change(price decimal.NullDecimal, avgCost decimal.Decimal) decimal.NullDecimal {
	if !price.Valid || price.Decimal.IsZero() {
		return decimal.NullDecimal{}
	}
	change := price.Decimal.Sub(avgCost).Div(price.Decimal).Mul(hundred)
	return decimal.NewNullDecimal(change.Round(models.MoneyPlaces))
}

// WeightedAverage combines an existing holding with a new lot.
// It returns zero when the combined quantity is zero.
func WeightedAverage(oldAvg, oldQty, price, qty decimal.Decimal) decimal.Decimal {
	total := oldQty.Add(qty)
	if total.IsZero() {
		return decimal.Zero
	}
	cost := oldAvg.Mul(oldQty).Add(price.Mul(qty))
	return cost.Div(total).Round(models.MoneyPlaces)
}

// UpdatePrices sets CurrentPrice on every row that has a present quote and
// returns the indexes of the rows it touched. Rows whose quote is missing or
// absent keep their stored price.
func UpdatePrices(positions []models.Position, quotes map[string]decimal.NullDecimal) []int {
	var touched []int
	for i := range positions {
		q, ok := quotes[positions[i].Symbol]
		if !ok || !q.Valid {
			continue
		}
		positions[i].CurrentPrice = decimal.NewNullDecimal(q.Decimal.Round(models.MoneyPlaces))
		touched = append(touched, i)
	}
	return touched
}

// UpdateValues recomputes Value for every row.
func UpdateValues(positions []models.Position) {
	for i := range positions {
		positions[i].Value = Value(&positions[i]).Round(models.MoneyPlaces)
	}
}

// Total sums Value over all rows.
func Total(positions []models.Position) decimal.Decimal {
	total := decimal.Zero
	for i := range positions {
		total = total.Add(positions[i].Value)
	}
	return total
}

// UpdateAllocations sets each row's share of the total value in percent.
// When the total is zero nothing is written and skipped is true.
func UpdateAllocations(positions []models.Position) (skipped bool) {
	total := Total(positions)
	if total.IsZero() {
		return true
	}
	for i := range positions {
		positions[i].Allocation = positions[i].Value.Div(total).Mul(hundred).Round(models.MoneyPlaces)
	}
	return false
}

// UpdateChanges recomputes Change for rows with a non-zero price and returns
// the indexes it touched. Other rows keep their stored change.
func UpdateChanges(positions []models.Position) []int {
	var touched []int
	for i := range positions {
		change := Change(positions[i].CurrentPrice, positions[i].AvgCost)
		if !change.Valid {
			continue
		}
		positions[i].Change = change
		touched = append(touched, i)
	}
	return touched
}
