package commerce

import "github.com/shopspring/decimal"

// DefaultTaxRate is the flat tax multiplier applied to every sale subtotal.
// There is no per-request negotiation; the rate is fixed configuration.
var DefaultTaxRate = decimal.NewFromFloat(0.19)

// Totals carries the three derived amounts of a sale.
// Invariants: Tax = Subtotal * rate, Total = Subtotal + Tax.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals derives subtotal, tax, and total from resolved line items.
// Pure computation: safe to call (and retry) outside any transaction.
func ComputeTotals(items []SaleItem, taxRate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Qty))))
	}
	tax := subtotal.Mul(taxRate)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}
