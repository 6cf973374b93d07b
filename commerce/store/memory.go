// Package store provides an in-memory commerce.Store implementation
// (for testing/dev). The production path is store/sqlite.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/pyme/commerce-engine/commerce"
)

// =============================================================================
// MEMORY STORE
// =============================================================================

// Memory implements commerce.Store with plain maps. WithTx gives real
// rollback semantics by snapshotting state before running the unit, which
// makes this store suitable for engine atomicity tests.
type Memory struct {
	mu       sync.RWMutex
	products map[int64]commerce.Product
	clients  map[int64]commerce.Client
	sales    map[int64]commerce.Sale
	expenses map[int64]commerce.Expense

	nextProductID int64
	nextClientID  int64
	nextSaleID    int64
	nextItemID    int64
	nextExpenseID int64
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		products:      make(map[int64]commerce.Product),
		clients:       make(map[int64]commerce.Client),
		sales:         make(map[int64]commerce.Sale),
		expenses:      make(map[int64]commerce.Expense),
		nextProductID: 1,
		nextClientID:  1,
		nextSaleID:    1,
		nextItemID:    1,
		nextExpenseID: 1,
	}
}

// =============================================================================
// TRANSACTION BOUNDARY
// =============================================================================

// snapshot is a deep copy of the mutable state, kept for rollback.
type snapshot struct {
	products map[int64]commerce.Product
	clients  map[int64]commerce.Client
	sales    map[int64]commerce.Sale
	expenses map[int64]commerce.Expense
	nextIDs  [5]int64
}

// WithTx runs fn against a unit of work. On error, state is restored to
// the pre-unit snapshot so no partial mutation survives.
func (m *Memory) WithTx(_ context.Context, fn func(uow commerce.UnitOfWork) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := m.snapshotLocked()
	if err := fn(&memoryUnit{m: m}); err != nil {
		m.restoreLocked(snap)
		return err
	}
	return nil
}

func (m *Memory) snapshotLocked() snapshot {
	return snapshot{
		products: cloneMap(m.products),
		clients:  cloneMap(m.clients),
		sales:    cloneSales(m.sales),
		expenses: cloneMap(m.expenses),
		nextIDs:  [5]int64{m.nextProductID, m.nextClientID, m.nextSaleID, m.nextItemID, m.nextExpenseID},
	}
}

func (m *Memory) restoreLocked(snap snapshot) {
	m.products = snap.products
	m.clients = snap.clients
	m.sales = snap.sales
	m.expenses = snap.expenses
	m.nextProductID = snap.nextIDs[0]
	m.nextClientID = snap.nextIDs[1]
	m.nextSaleID = snap.nextIDs[2]
	m.nextItemID = snap.nextIDs[3]
	m.nextExpenseID = snap.nextIDs[4]
}

func cloneMap[V any](src map[int64]V) map[int64]V {
	dst := make(map[int64]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func cloneSales(src map[int64]commerce.Sale) map[int64]commerce.Sale {
	dst := make(map[int64]commerce.Sale, len(src))
	for k, s := range src {
		s.Items = append([]commerce.SaleItem(nil), s.Items...)
		dst[k] = s
	}
	return dst
}

// memoryUnit exposes the already-locked store as a commerce.UnitOfWork.
type memoryUnit struct {
	m *Memory
}

// =============================================================================
// CATALOG
// =============================================================================

func (m *Memory) GetProduct(ctx context.Context, id int64) (*commerce.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return (&memoryUnit{m: m}).GetProduct(ctx, id)
}

func (u *memoryUnit) GetProduct(_ context.Context, id int64) (*commerce.Product, error) {
	p, ok := u.m.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *Memory) ListProducts(_ context.Context) ([]commerce.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]commerce.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (u *memoryUnit) ListProducts(ctx context.Context) ([]commerce.Product, error) {
	out := make([]commerce.Product, 0, len(u.m.products))
	for _, p := range u.m.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Memory) CreateProduct(ctx context.Context, p *commerce.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memoryUnit{m: m}).CreateProduct(ctx, p)
}

func (u *memoryUnit) CreateProduct(_ context.Context, p *commerce.Product) error {
	if p.ID == 0 {
		p.ID = u.m.nextProductID
		u.m.nextProductID++
	} else if p.ID >= u.m.nextProductID {
		u.m.nextProductID = p.ID + 1
	}
	u.m.products[p.ID] = *p
	return nil
}

func (m *Memory) UpdateProduct(ctx context.Context, p commerce.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memoryUnit{m: m}).UpdateProduct(ctx, p)
}

func (u *memoryUnit) UpdateProduct(_ context.Context, p commerce.Product) error {
	if _, ok := u.m.products[p.ID]; !ok {
		return nil
	}
	u.m.products[p.ID] = p
	return nil
}

func (m *Memory) DeleteProduct(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memoryUnit{m: m}).DeleteProduct(ctx, id)
}

func (u *memoryUnit) DeleteProduct(_ context.Context, id int64) error {
	delete(u.m.products, id)
	return nil
}

func (m *Memory) AdjustStock(ctx context.Context, id int64, delta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memoryUnit{m: m}).AdjustStock(ctx, id, delta)
}

func (u *memoryUnit) AdjustStock(_ context.Context, id int64, delta int) error {
	p, ok := u.m.products[id]
	if !ok {
		return nil // missing rows are ignored, per the adjuster contract
	}
	p.Stock += delta
	if p.Stock < 0 {
		p.Stock = 0
	}
	u.m.products[id] = p
	return nil
}

// =============================================================================
// CLIENT LEDGER
// =============================================================================

func (m *Memory) GetClient(ctx context.Context, id int64) (*commerce.Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return (&memoryUnit{m: m}).GetClient(ctx, id)
}

func (u *memoryUnit) GetClient(_ context.Context, id int64) (*commerce.Client, error) {
	c, ok := u.m.clients[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *Memory) ListClients(_ context.Context) ([]commerce.Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]commerce.Client, 0, len(m.clients))
	for _, c := range m.clients {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (u *memoryUnit) ListClients(ctx context.Context) ([]commerce.Client, error) {
	out := make([]commerce.Client, 0, len(u.m.clients))
	for _, c := range u.m.clients {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Memory) CreateClient(ctx context.Context, c *commerce.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memoryUnit{m: m}).CreateClient(ctx, c)
}

func (u *memoryUnit) CreateClient(_ context.Context, c *commerce.Client) error {
	if c.ID == 0 {
		c.ID = u.m.nextClientID
		u.m.nextClientID++
	} else if c.ID >= u.m.nextClientID {
		u.m.nextClientID = c.ID + 1
	}
	u.m.clients[c.ID] = *c
	return nil
}

func (m *Memory) DeleteClient(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memoryUnit{m: m}).DeleteClient(ctx, id)
}

func (u *memoryUnit) DeleteClient(_ context.Context, id int64) error {
	if id == commerce.WalkInClientID {
		return commerce.ErrWalkInClientProtected
	}
	delete(u.m.clients, id)
	return nil
}

func (m *Memory) AdjustTotalSpent(ctx context.Context, id int64, delta decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memoryUnit{m: m}).AdjustTotalSpent(ctx, id, delta)
}

func (u *memoryUnit) AdjustTotalSpent(_ context.Context, id int64, delta decimal.Decimal) error {
	c, ok := u.m.clients[id]
	if !ok {
		return nil
	}
	c.TotalSpent = c.TotalSpent.Add(delta)
	u.m.clients[id] = c
	return nil
}

// =============================================================================
// SALES LEDGER
// =============================================================================

func (m *Memory) InsertSale(ctx context.Context, s *commerce.Sale) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memoryUnit{m: m}).InsertSale(ctx, s)
}

func (u *memoryUnit) InsertSale(_ context.Context, s *commerce.Sale) error {
	s.ID = u.m.nextSaleID
	u.m.nextSaleID++
	for i := range s.Items {
		s.Items[i].ID = u.m.nextItemID
		s.Items[i].SaleID = s.ID
		u.m.nextItemID++
	}

	stored := *s
	stored.Items = append([]commerce.SaleItem(nil), s.Items...)
	u.m.sales[s.ID] = stored
	return nil
}

func (m *Memory) GetSale(ctx context.Context, id int64) (*commerce.Sale, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return (&memoryUnit{m: m}).GetSale(ctx, id)
}

func (u *memoryUnit) GetSale(_ context.Context, id int64) (*commerce.Sale, error) {
	s, ok := u.m.sales[id]
	if !ok {
		return nil, nil
	}
	s.Items = append([]commerce.SaleItem(nil), s.Items...)
	return &s, nil
}

func (m *Memory) ListSales(_ context.Context) ([]commerce.Sale, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]commerce.Sale, 0, len(m.sales))
	for _, s := range m.sales {
		s.Items = append([]commerce.SaleItem(nil), s.Items...)
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (u *memoryUnit) ListSales(ctx context.Context) ([]commerce.Sale, error) {
	out := make([]commerce.Sale, 0, len(u.m.sales))
	for _, s := range u.m.sales {
		s.Items = append([]commerce.SaleItem(nil), s.Items...)
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (m *Memory) DeleteSale(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memoryUnit{m: m}).DeleteSale(ctx, id)
}

func (u *memoryUnit) DeleteSale(_ context.Context, id int64) error {
	delete(u.m.sales, id)
	return nil
}

// =============================================================================
// EXPENSES
// =============================================================================

func (m *Memory) ListExpenses(_ context.Context) ([]commerce.Expense, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]commerce.Expense, 0, len(m.expenses))
	for _, e := range m.expenses {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (m *Memory) CreateExpense(_ context.Context, e *commerce.Expense) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e.ID == 0 {
		e.ID = m.nextExpenseID
		m.nextExpenseID++
	} else if e.ID >= m.nextExpenseID {
		m.nextExpenseID = e.ID + 1
	}
	m.expenses[e.ID] = *e
	return nil
}

func (m *Memory) DeleteExpense(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.expenses, id)
	return nil
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (m *Memory) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.products = make(map[int64]commerce.Product)
	m.clients = make(map[int64]commerce.Client)
	m.sales = make(map[int64]commerce.Sale)
	m.expenses = make(map[int64]commerce.Expense)
	m.nextProductID, m.nextClientID, m.nextSaleID, m.nextItemID, m.nextExpenseID = 1, 1, 1, 1, 1
	return nil
}
