/*
engine.go - The sale transaction engine

PURPOSE:
  Implements the two atomic operations at the heart of the system:

  CommitSale:  record a sale, decrement catalog stock, accumulate the
               client's running balance - as one unit of work.
  ReverseSale: the compensating transaction - restore stock and balance,
               remove the sale and its items - as one unit of work.

ATOMICITY:
  Both operations run inside a single TxStore.WithTx unit. A storage error
  anywhere inside the unit voids the whole operation; no partial effect is
  ever observable. Input validation happens before the unit starts, so
  invalid requests have no side effects at all.

STOCK POLICY:
  A commit never blocks on insufficient stock. The decrement clamps at zero
  (AdjustStock contract). Reversal restores by the full item quantity, so a
  clamped commit over-restores relative to physical inventory. This mirrors
  the observed behavior of the system this engine replaces and is tracked
  as a known imprecision in DESIGN.md.

IDEMPOTENCY:
  CommitSale is not idempotent: retrying a commit records a second sale.
  Callers must not retry unless they know the first attempt did not commit.

SEE ALSO:
  - totals.go: the pure computation half of a commit
  - store.go:  the transactional contracts this engine runs against
*/
package commerce

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Engine is the sale transaction engine. It is safe for concurrent use as
// long as the underlying TxStore serializes its units of work.
type Engine struct {
	store      TxStore
	taxRate    decimal.Decimal
	walkInName string
	now        func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithTaxRate overrides the flat tax multiplier (default 0.19).
func WithTaxRate(rate decimal.Decimal) Option {
	return func(e *Engine) { e.taxRate = rate }
}

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithWalkInName overrides the client-name snapshot for anonymous sales.
func WithWalkInName(name string) Option {
	return func(e *Engine) { e.walkInName = name }
}

// NewEngine creates an engine over the given transactional store.
func NewEngine(store TxStore, opts ...Option) *Engine {
	e := &Engine{
		store:      store,
		taxRate:    DefaultTaxRate,
		walkInName: WalkInClientName,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CommitRequest is the input of CommitSale. A nil ClientID records an
// anonymous walk-in sale: no client balance is touched.
type CommitRequest struct {
	ClientID *int64
	Items    []CartLine
}

// =============================================================================
// COMMIT
// =============================================================================

// CommitSale atomically records a sale, decrements stock for every cart
// line (clamped at zero), and increments the referenced client's running
// total. Returns the committed sale with resolved line items.
func (e *Engine) CommitSale(ctx context.Context, req CommitRequest) (*Sale, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}
	for _, line := range req.Items {
		if line.Qty <= 0 {
			return nil, &InvalidQuantityError{ProductID: line.ProductID, Qty: line.Qty}
		}
	}

	var sale *Sale
	err := e.store.WithTx(ctx, func(uow UnitOfWork) error {
		clientName := e.walkInName
		if req.ClientID != nil {
			c, err := uow.GetClient(ctx, *req.ClientID)
			if err != nil {
				return err
			}
			if c == nil {
				return &UnknownClientError{ClientID: *req.ClientID}
			}
			clientName = c.Name
		}

		// Resolve cart lines against the catalog inside the unit so the
		// price/name snapshots and the stock decrement see the same rows.
		items := make([]SaleItem, 0, len(req.Items))
		for _, line := range req.Items {
			p, err := uow.GetProduct(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if p == nil {
				return &UnknownProductError{ProductID: line.ProductID}
			}
			items = append(items, SaleItem{
				ProductID: p.ID,
				Name:      p.Name,
				Price:     p.Price,
				Qty:       line.Qty,
			})
		}

		totals := ComputeTotals(items, e.taxRate)
		s := &Sale{
			Date:       e.now().UTC(),
			ClientID:   req.ClientID,
			ClientName: clientName,
			Subtotal:   totals.Subtotal,
			Tax:        totals.Tax,
			Total:      totals.Total,
			Items:      items,
		}

		if err := uow.InsertSale(ctx, s); err != nil {
			return err
		}
		for _, line := range req.Items {
			if err := uow.AdjustStock(ctx, line.ProductID, -line.Qty); err != nil {
				return err
			}
		}
		if req.ClientID != nil {
			if err := uow.AdjustTotalSpent(ctx, *req.ClientID, totals.Total); err != nil {
				return err
			}
		}

		sale = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// =============================================================================
// REVERSAL
// =============================================================================

// ReverseSale atomically undoes a committed sale: restores stock for every
// line item (skipping products deleted since the sale), decrements the
// client's running total if the sale referenced one, and removes the sale
// record with its items. Returns ErrSaleNotFound for unknown ids.
func (e *Engine) ReverseSale(ctx context.Context, saleID int64) error {
	return e.store.WithTx(ctx, func(uow UnitOfWork) error {
		s, err := uow.GetSale(ctx, saleID)
		if err != nil {
			return err
		}
		if s == nil {
			return ErrSaleNotFound
		}

		// Best-effort restoration: the adjusters ignore rows that no
		// longer exist, so a deleted product does not fail the reversal.
		for _, it := range s.Items {
			if err := uow.AdjustStock(ctx, it.ProductID, it.Qty); err != nil {
				return err
			}
		}
		if s.ClientID != nil {
			if err := uow.AdjustTotalSpent(ctx, *s.ClientID, s.Total.Neg()); err != nil {
				return err
			}
		}

		return uow.DeleteSale(ctx, saleID)
	})
}
