/*
Package commerce provides the core domain model for the small-business engine.

PURPOSE:
  This package contains the catalog, client-ledger, and sales-ledger types
  plus the sale transaction engine that ties them together. It knows nothing
  about HTTP or storage backends; those live in api/ and store/.

KEY CONCEPTS IN THIS FILE (types.go):
  - Product:  Catalog entry with a non-negative stock counter
  - Client:   Ledger entry with a running total of everything they spent
  - Sale:     A committed sale with denormalized totals and line items
  - SaleItem: One line of a sale, carrying name/price snapshots
  - CartLine: Caller-supplied (product, quantity) pair for a commit

DESIGN PRINCIPLES:
  1. Precision: Money is decimal.Decimal end to end; floats appear only at
     the JSON boundary.
  2. Snapshots: A sale stores copies of the client name and each product's
     name and price at commit time. Later catalog or client edits never
     change historical sales.
  3. Weak references: SaleItem.ProductID may point at a product that has
     since been deleted; the snapshot fields keep the sale displayable.

SEE ALSO:
  - engine.go: CommitSale / ReverseSale atomic units
  - totals.go: Subtotal/tax/total computation
  - store.go:  Persistence contracts the engine runs against
*/
package commerce

import (
	"time"

	"github.com/shopspring/decimal"
)

// WalkInClientID is the reserved id of the default "walk-in" client.
// It is seeded on first run and can never be deleted.
const WalkInClientID int64 = 1

// WalkInClientName is the display name used for sales without a client
// reference.
const WalkInClientName = "Cliente General"

// =============================================================================
// CATALOG
// =============================================================================

// Product is a catalog entry. Stock is never persisted as a negative value:
// commits clamp it at zero rather than rejecting an oversell.
type Product struct {
	ID       int64
	Name     string
	Category string
	Stock    int
	Price    decimal.Decimal
	Cost     decimal.Decimal
}

// =============================================================================
// CLIENT LEDGER
// =============================================================================

// Client is a client-ledger entry. TotalSpent is the running sum of the
// totals of all unreversed sales that reference this client.
type Client struct {
	ID         int64
	Name       string
	Email      string
	Phone      string
	TotalSpent decimal.Decimal
}

// =============================================================================
// SALES LEDGER
// =============================================================================

// Sale is a committed sale. Created only by Engine.CommitSale and destroyed
// only by Engine.ReverseSale; a sale and its items live and die together.
type Sale struct {
	ID         int64
	Date       time.Time
	ClientID   *int64 // nil for anonymous walk-in sales
	ClientName string // snapshot at commit time
	Subtotal   decimal.Decimal
	Tax        decimal.Decimal
	Total      decimal.Decimal
	Items      []SaleItem
}

// SaleItem is one line of a sale. ProductID is a weak reference; Name and
// Price are snapshots taken when the sale was committed.
type SaleItem struct {
	ID        int64
	SaleID    int64
	ProductID int64
	Name      string
	Price     decimal.Decimal
	Qty       int
}

// CartLine is a caller-supplied (product, quantity) pair.
type CartLine struct {
	ProductID int64
	Qty       int
}

// =============================================================================
// EXPENSES
// =============================================================================

// Expense is a standalone expense-book entry. Expenses do not interact with
// the sale transaction engine.
type Expense struct {
	ID          int64
	Description string
	Amount      decimal.Decimal
	Category    string
	Date        time.Time
}

// MustDecimal parses a decimal string, returning zero on malformed input.
// Intended for values that were written by this system and are trusted.
func MustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
