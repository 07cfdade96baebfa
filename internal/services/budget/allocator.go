// Package budget converts the daily budget into fee-aware order amounts.
package budget

import "github.com/shopspring/decimal"

var one = decimal.NewFromInt(1)

// Allocate returns the whole-unit amount to spend so that amount*(1+feeRate)
// never exceeds budget. Rounding is always floor. When the fee-adjusted
// amount falls below minOrder the exchange minimum is used instead, which may
// overrun the budget marginally.
func Allocate(budget, feeRate decimal.Decimal, minOrder int64) int64 {
	amount := budget.Div(one.Add(feeRate)).Floor().IntPart()
	if amount < minOrder {
		return minOrder
	}
	return amount
}

// ForLeg applies the leg weight to the daily budget before allocating.
func ForLeg(dailyBudget, weight, feeRate decimal.Decimal, minOrder int64) int64 {
	return Allocate(dailyBudget.Mul(weight), feeRate, minOrder)
}
