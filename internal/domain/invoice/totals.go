package invoice

import "github.com/shopspring/decimal"

// DefaultTaxRate is the clinic's fixed tax percentage.
var DefaultTaxRate = decimal.NewFromFloat(0.15)

type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals applies the caller-side billing formula:
//
//	tax   = subtotal * taxRate
//	total = subtotal + tax - discount
//
// Issuance persists these figures as given and never recomputes them.
func ComputeTotals(subtotal, taxRate, discount decimal.Decimal) Totals {
	tax := subtotal.Mul(taxRate)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Discount: discount,
		Total:    subtotal.Add(tax).Sub(discount),
	}
}

// SumCosts aggregates line-item costs into the invoice subtotal.
func SumCosts(costs []decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, c := range costs {
		sum = sum.Add(c)
	}
	return sum
}
