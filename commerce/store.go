/*
store.go - Persistence contracts for the commerce engine

PURPOSE:
  Defines the storage interfaces the engine and the API layer run against.
  Two implementations exist:
  - store/sqlite: production path (SQLite, WAL mode)
  - commerce/store: in-memory (tests, development)

TRANSACTION MODEL:
  TxStore.WithTx runs a function against a UnitOfWork whose mutations either
  all apply or all roll back. The engine wraps every commit and every
  reversal in exactly one such unit; no intermediate state is observable.

ADJUSTER CONTRACT:
  AdjustStock and AdjustTotalSpent are delta mutators designed to compose
  into the engine's unit of work:
  - AdjustStock clamps the resulting stock at zero instead of failing.
  - Both are no-ops when the target row does not exist. This is what makes
    reversal restoration best-effort for products deleted after the sale.
*/
package commerce

import (
	"context"

	"github.com/shopspring/decimal"
)

// =============================================================================
// COLLABORATOR CONTRACTS
// =============================================================================

// Catalog is the product store.
// Get returns (nil, nil) when the product does not exist.
type Catalog interface {
	GetProduct(ctx context.Context, id int64) (*Product, error)
	ListProducts(ctx context.Context) ([]Product, error)
	CreateProduct(ctx context.Context, p *Product) error
	UpdateProduct(ctx context.Context, p Product) error
	DeleteProduct(ctx context.Context, id int64) error

	// AdjustStock changes a product's stock by delta, clamping the result
	// at zero. Missing products are ignored.
	AdjustStock(ctx context.Context, id int64, delta int) error
}

// Clients is the client ledger.
// Get returns (nil, nil) when the client does not exist.
// DeleteClient rejects WalkInClientID with ErrWalkInClientProtected.
type Clients interface {
	GetClient(ctx context.Context, id int64) (*Client, error)
	ListClients(ctx context.Context) ([]Client, error)
	CreateClient(ctx context.Context, c *Client) error
	DeleteClient(ctx context.Context, id int64) error

	// AdjustTotalSpent changes a client's running total by delta.
	// Missing clients are ignored.
	AdjustTotalSpent(ctx context.Context, id int64, delta decimal.Decimal) error
}

// Ledger is the sales ledger. Sales are inserted and deleted together with
// their line items; there is no partial form.
type Ledger interface {
	// InsertSale persists the sale and its items, assigning fresh ids in
	// place. The sale's denormalized fields must already be populated.
	InsertSale(ctx context.Context, s *Sale) error

	// GetSale returns the sale with its items, or (nil, nil) when absent.
	GetSale(ctx context.Context, id int64) (*Sale, error)

	ListSales(ctx context.Context) ([]Sale, error)

	// DeleteSale removes the line items and then the sale record.
	DeleteSale(ctx context.Context, id int64) error
}

// Expenses is the expense book. Independent of the transaction engine.
type Expenses interface {
	ListExpenses(ctx context.Context) ([]Expense, error)
	CreateExpense(ctx context.Context, e *Expense) error
	DeleteExpense(ctx context.Context, id int64) error
}

// =============================================================================
// TRANSACTION BOUNDARY
// =============================================================================

// UnitOfWork is the set of operations available inside one atomic unit.
type UnitOfWork interface {
	Catalog
	Clients
	Ledger
}

// TxStore runs a function within a single transaction. If fn returns an
// error, every mutation made through the UnitOfWork is rolled back.
type TxStore interface {
	WithTx(ctx context.Context, fn func(uow UnitOfWork) error) error
}

// Store is the full persistence surface consumed by the API layer.
type Store interface {
	UnitOfWork
	Expenses
	TxStore
}
