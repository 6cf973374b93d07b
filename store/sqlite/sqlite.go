/*
Package sqlite provides the SQLite-backed implementation of commerce.Store.

PURPOSE:
  Implements every persistence contract (Catalog, Clients, Ledger,
  Expenses, TxStore) over a single SQLite database. The same patterns
  apply to PostgreSQL - only minor SQL dialect differences.

KEY TABLES:
  products:   Catalog rows; stock is clamped at zero on adjustment
  clients:    Client ledger with running total_spent
  sales:      Committed sales with denormalized totals and client name
  sale_items: Line items with name/price snapshots (weak product refs)
  expenses:   Standalone expense book

MONEY:
  Decimal values are stored as TEXT (decimal.Decimal strings), never as
  REAL, so totals reconcile exactly.

CONCURRENCY:
  sync.RWMutex gives single-writer serialization on top of SQLite. Every
  engine commit/reversal holds the write lock for its whole unit of work,
  so concurrent commits against the same product row are serialized and
  stock can never be observed (or persisted) negative.

WAL MODE:
  Opened with WAL for better read concurrency and crash recovery.

USAGE:
  st, err := sqlite.New("./data/pyme.db")
  if err != nil { log.Fatal(err) }
  defer st.Close()

  engine := commerce.NewEngine(st)

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - commerce/store.go:       Interface definitions
  - commerce/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/pyme/commerce-engine/commerce"
)

const (
	saleDateFormat    = time.RFC3339
	expenseDateFormat = "2006-01-02"
)

// Store implements commerce.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection: SQLite has a single writer, the store serializes
	// writes itself, and ":memory:" databases are per-connection.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Catalog
	CREATE TABLE IF NOT EXISTS products (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		stock INTEGER NOT NULL DEFAULT 0,
		price TEXT NOT NULL DEFAULT '0',
		cost TEXT NOT NULL DEFAULT '0'
	);

	CREATE INDEX IF NOT EXISTS idx_products_name ON products(name);

	-- Client ledger
	CREATE TABLE IF NOT EXISTS clients (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		total_spent TEXT NOT NULL DEFAULT '0'
	);

	-- Sales ledger (mutated only by the transaction engine)
	CREATE TABLE IF NOT EXISTS sales (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		client_id INTEGER,
		client_name TEXT NOT NULL,
		subtotal TEXT NOT NULL,
		tax TEXT NOT NULL,
		total TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sales_date ON sales(date DESC);
	CREATE INDEX IF NOT EXISTS idx_sales_client ON sales(client_id);

	-- Line items: product_id is a weak reference (no FK); the name/price
	-- snapshots keep historical sales displayable after product deletion.
	CREATE TABLE IF NOT EXISTS sale_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sale_id INTEGER NOT NULL,
		product_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		price TEXT NOT NULL,
		qty INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sale_items_sale ON sale_items(sale_id);

	-- Expense book
	CREATE TABLE IF NOT EXISTS expenses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		description TEXT NOT NULL,
		amount TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		date TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses(date DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// dbtx is satisfied by both *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// =============================================================================
// TRANSACTION BOUNDARY (commerce.TxStore)
// =============================================================================

// WithTx executes a function within a database transaction. The write lock
// is held for the whole unit, serializing commits and reversals.
func (s *Store) WithTx(ctx context.Context, fn func(uow commerce.UnitOfWork) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	if err := fn(&txUnit{tx: sqlTx, parent: s}); err != nil {
		return err
	}

	return sqlTx.Commit()
}

// txUnit routes every UnitOfWork call through the open transaction.
type txUnit struct {
	tx     *sql.Tx
	parent *Store
}

func (u *txUnit) GetProduct(ctx context.Context, id int64) (*commerce.Product, error) {
	return u.parent.getProduct(ctx, u.tx, id)
}
func (u *txUnit) ListProducts(ctx context.Context) ([]commerce.Product, error) {
	return u.parent.listProducts(ctx, u.tx)
}
func (u *txUnit) CreateProduct(ctx context.Context, p *commerce.Product) error {
	return u.parent.createProduct(ctx, u.tx, p)
}
func (u *txUnit) UpdateProduct(ctx context.Context, p commerce.Product) error {
	return u.parent.updateProduct(ctx, u.tx, p)
}
func (u *txUnit) DeleteProduct(ctx context.Context, id int64) error {
	return u.parent.deleteProduct(ctx, u.tx, id)
}
func (u *txUnit) AdjustStock(ctx context.Context, id int64, delta int) error {
	return u.parent.adjustStock(ctx, u.tx, id, delta)
}
func (u *txUnit) GetClient(ctx context.Context, id int64) (*commerce.Client, error) {
	return u.parent.getClient(ctx, u.tx, id)
}
func (u *txUnit) ListClients(ctx context.Context) ([]commerce.Client, error) {
	return u.parent.listClients(ctx, u.tx)
}
func (u *txUnit) CreateClient(ctx context.Context, c *commerce.Client) error {
	return u.parent.createClient(ctx, u.tx, c)
}
func (u *txUnit) DeleteClient(ctx context.Context, id int64) error {
	return u.parent.deleteClient(ctx, u.tx, id)
}
func (u *txUnit) AdjustTotalSpent(ctx context.Context, id int64, delta decimal.Decimal) error {
	return u.parent.adjustTotalSpent(ctx, u.tx, id, delta)
}
func (u *txUnit) InsertSale(ctx context.Context, sale *commerce.Sale) error {
	return u.parent.insertSale(ctx, u.tx, sale)
}
func (u *txUnit) GetSale(ctx context.Context, id int64) (*commerce.Sale, error) {
	return u.parent.getSale(ctx, u.tx, id)
}
func (u *txUnit) ListSales(ctx context.Context) ([]commerce.Sale, error) {
	return u.parent.listSales(ctx, u.tx)
}
func (u *txUnit) DeleteSale(ctx context.Context, id int64) error {
	return u.parent.deleteSale(ctx, u.tx, id)
}

// =============================================================================
// CATALOG (commerce.Catalog)
// =============================================================================

func (s *Store) GetProduct(ctx context.Context, id int64) (*commerce.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getProduct(ctx, s.db, id)
}

func (s *Store) getProduct(ctx context.Context, q dbtx, id int64) (*commerce.Product, error) {
	var p commerce.Product
	var price, cost string

	err := q.QueryRowContext(ctx,
		"SELECT id, name, category, stock, price, cost FROM products WHERE id = ?", id,
	).Scan(&p.ID, &p.Name, &p.Category, &p.Stock, &price, &cost)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	p.Price = commerce.MustDecimal(price)
	p.Cost = commerce.MustDecimal(cost)
	return &p, nil
}

func (s *Store) ListProducts(ctx context.Context) ([]commerce.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listProducts(ctx, s.db)
}

func (s *Store) listProducts(ctx context.Context, q dbtx) ([]commerce.Product, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT id, name, category, stock, price, cost FROM products ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []commerce.Product
	for rows.Next() {
		var p commerce.Product
		var price, cost string
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Stock, &price, &cost); err != nil {
			return nil, err
		}
		p.Price = commerce.MustDecimal(price)
		p.Cost = commerce.MustDecimal(cost)
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *Store) CreateProduct(ctx context.Context, p *commerce.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createProduct(ctx, s.db, p)
}

func (s *Store) createProduct(ctx context.Context, q dbtx, p *commerce.Product) error {
	if p.ID != 0 {
		// Explicit id (seed data).
		_, err := q.ExecContext(ctx,
			"INSERT INTO products (id, name, category, stock, price, cost) VALUES (?, ?, ?, ?, ?, ?)",
			p.ID, p.Name, p.Category, p.Stock, p.Price.String(), p.Cost.String())
		if err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}
		return nil
	}

	res, err := q.ExecContext(ctx,
		"INSERT INTO products (name, category, stock, price, cost) VALUES (?, ?, ?, ?, ?)",
		p.Name, p.Category, p.Stock, p.Price.String(), p.Cost.String())
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	p.ID, err = res.LastInsertId()
	return err
}

func (s *Store) UpdateProduct(ctx context.Context, p commerce.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateProduct(ctx, s.db, p)
}

func (s *Store) updateProduct(ctx context.Context, q dbtx, p commerce.Product) error {
	_, err := q.ExecContext(ctx,
		"UPDATE products SET name = ?, category = ?, stock = ?, price = ?, cost = ? WHERE id = ?",
		p.Name, p.Category, p.Stock, p.Price.String(), p.Cost.String(), p.ID)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteProduct(ctx, s.db, id)
}

func (s *Store) deleteProduct(ctx context.Context, q dbtx, id int64) error {
	_, err := q.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

func (s *Store) AdjustStock(ctx context.Context, id int64, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.adjustStock(ctx, s.db, id, delta)
}

func (s *Store) adjustStock(ctx context.Context, q dbtx, id int64, delta int) error {
	// MAX(0, ...) enforces the clamp-at-zero stock policy in one statement.
	// A missing product affects zero rows, which is the contract.
	_, err := q.ExecContext(ctx,
		"UPDATE products SET stock = MAX(0, stock + ?) WHERE id = ?", delta, id)
	if err != nil {
		return fmt.Errorf("failed to adjust stock: %w", err)
	}
	return nil
}

// =============================================================================
// CLIENT LEDGER (commerce.Clients)
// =============================================================================

func (s *Store) GetClient(ctx context.Context, id int64) (*commerce.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getClient(ctx, s.db, id)
}

func (s *Store) getClient(ctx context.Context, q dbtx, id int64) (*commerce.Client, error) {
	var c commerce.Client
	var totalSpent string

	err := q.QueryRowContext(ctx,
		"SELECT id, name, email, phone, total_spent FROM clients WHERE id = ?", id,
	).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &totalSpent)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	c.TotalSpent = commerce.MustDecimal(totalSpent)
	return &c, nil
}

func (s *Store) ListClients(ctx context.Context) ([]commerce.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listClients(ctx, s.db)
}

func (s *Store) listClients(ctx context.Context, q dbtx) ([]commerce.Client, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT id, name, email, phone, total_spent FROM clients ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []commerce.Client
	for rows.Next() {
		var c commerce.Client
		var totalSpent string
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &totalSpent); err != nil {
			return nil, err
		}
		c.TotalSpent = commerce.MustDecimal(totalSpent)
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (s *Store) CreateClient(ctx context.Context, c *commerce.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createClient(ctx, s.db, c)
}

func (s *Store) createClient(ctx context.Context, q dbtx, c *commerce.Client) error {
	if c.ID != 0 {
		_, err := q.ExecContext(ctx,
			"INSERT INTO clients (id, name, email, phone, total_spent) VALUES (?, ?, ?, ?, ?)",
			c.ID, c.Name, c.Email, c.Phone, c.TotalSpent.String())
		if err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}
		return nil
	}

	res, err := q.ExecContext(ctx,
		"INSERT INTO clients (name, email, phone, total_spent) VALUES (?, ?, ?, ?)",
		c.Name, c.Email, c.Phone, c.TotalSpent.String())
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	c.ID, err = res.LastInsertId()
	return err
}

func (s *Store) DeleteClient(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteClient(ctx, s.db, id)
}

func (s *Store) deleteClient(ctx context.Context, q dbtx, id int64) error {
	if id == commerce.WalkInClientID {
		return commerce.ErrWalkInClientProtected
	}
	_, err := q.ExecContext(ctx, "DELETE FROM clients WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return nil
}

func (s *Store) AdjustTotalSpent(ctx context.Context, id int64, delta decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.adjustTotalSpent(ctx, s.db, id, delta)
}

func (s *Store) adjustTotalSpent(ctx context.Context, q dbtx, id int64, delta decimal.Decimal) error {
	// total_spent is stored as decimal TEXT, so the addition happens in Go.
	// Safe under the single-writer lock held by the caller.
	var current string
	err := q.QueryRowContext(ctx,
		"SELECT total_spent FROM clients WHERE id = ?", id).Scan(&current)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read client balance: %w", err)
	}

	next := commerce.MustDecimal(current).Add(delta)
	_, err = q.ExecContext(ctx,
		"UPDATE clients SET total_spent = ? WHERE id = ?", next.String(), id)
	if err != nil {
		return fmt.Errorf("failed to adjust client balance: %w", err)
	}
	return nil
}

// =============================================================================
// SALES LEDGER (commerce.Ledger)
// =============================================================================

func (s *Store) InsertSale(ctx context.Context, sale *commerce.Sale) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertSale(ctx, s.db, sale)
}

func (s *Store) insertSale(ctx context.Context, q dbtx, sale *commerce.Sale) error {
	var clientID any
	if sale.ClientID != nil {
		clientID = *sale.ClientID
	}

	res, err := q.ExecContext(ctx,
		"INSERT INTO sales (date, client_id, client_name, subtotal, tax, total) VALUES (?, ?, ?, ?, ?, ?)",
		sale.Date.Format(saleDateFormat), clientID, sale.ClientName,
		sale.Subtotal.String(), sale.Tax.String(), sale.Total.String())
	if err != nil {
		return fmt.Errorf("failed to insert sale: %w", err)
	}
	if sale.ID, err = res.LastInsertId(); err != nil {
		return err
	}

	for i := range sale.Items {
		it := &sale.Items[i]
		it.SaleID = sale.ID
		res, err := q.ExecContext(ctx,
			"INSERT INTO sale_items (sale_id, product_id, name, price, qty) VALUES (?, ?, ?, ?, ?)",
			it.SaleID, it.ProductID, it.Name, it.Price.String(), it.Qty)
		if err != nil {
			return fmt.Errorf("failed to insert sale item: %w", err)
		}
		if it.ID, err = res.LastInsertId(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) GetSale(ctx context.Context, id int64) (*commerce.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getSale(ctx, s.db, id)
}

func (s *Store) getSale(ctx context.Context, q dbtx, id int64) (*commerce.Sale, error) {
	var sale commerce.Sale
	var date, subtotal, tax, total string
	var clientID sql.NullInt64

	err := q.QueryRowContext(ctx,
		"SELECT id, date, client_id, client_name, subtotal, tax, total FROM sales WHERE id = ?", id,
	).Scan(&sale.ID, &date, &clientID, &sale.ClientName, &subtotal, &tax, &total)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sale: %w", err)
	}

	sale.Date, _ = time.Parse(saleDateFormat, date)
	if clientID.Valid {
		sale.ClientID = &clientID.Int64
	}
	sale.Subtotal = commerce.MustDecimal(subtotal)
	sale.Tax = commerce.MustDecimal(tax)
	sale.Total = commerce.MustDecimal(total)

	if sale.Items, err = s.querySaleItems(ctx, q, sale.ID); err != nil {
		return nil, err
	}
	return &sale, nil
}

func (s *Store) ListSales(ctx context.Context) ([]commerce.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listSales(ctx, s.db)
}

func (s *Store) listSales(ctx context.Context, q dbtx) ([]commerce.Sale, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT id, date, client_id, client_name, subtotal, tax, total FROM sales ORDER BY date DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	defer rows.Close()

	var sales []commerce.Sale
	for rows.Next() {
		var sale commerce.Sale
		var date, subtotal, tax, total string
		var clientID sql.NullInt64
		if err := rows.Scan(&sale.ID, &date, &clientID, &sale.ClientName, &subtotal, &tax, &total); err != nil {
			return nil, err
		}
		sale.Date, _ = time.Parse(saleDateFormat, date)
		if clientID.Valid {
			id := clientID.Int64
			sale.ClientID = &id
		}
		sale.Subtotal = commerce.MustDecimal(subtotal)
		sale.Tax = commerce.MustDecimal(tax)
		sale.Total = commerce.MustDecimal(total)
		sales = append(sales, sale)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range sales {
		if sales[i].Items, err = s.querySaleItems(ctx, q, sales[i].ID); err != nil {
			return nil, err
		}
	}
	return sales, nil
}

func (s *Store) querySaleItems(ctx context.Context, q dbtx, saleID int64) ([]commerce.SaleItem, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT id, sale_id, product_id, name, price, qty FROM sale_items WHERE sale_id = ? ORDER BY id",
		saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sale items: %w", err)
	}
	defer rows.Close()

	var items []commerce.SaleItem
	for rows.Next() {
		var it commerce.SaleItem
		var price string
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Name, &price, &it.Qty); err != nil {
			return nil, err
		}
		it.Price = commerce.MustDecimal(price)
		items = append(items, it)
	}
	return items, rows.Err()
}

func (s *Store) DeleteSale(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteSale(ctx, s.db, id)
}

func (s *Store) deleteSale(ctx context.Context, q dbtx, id int64) error {
	// Items first, then the record: a sale and its items die together.
	if _, err := q.ExecContext(ctx, "DELETE FROM sale_items WHERE sale_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete sale items: %w", err)
	}
	if _, err := q.ExecContext(ctx, "DELETE FROM sales WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete sale: %w", err)
	}
	return nil
}

// =============================================================================
// EXPENSES (commerce.Expenses)
// =============================================================================

func (s *Store) ListExpenses(ctx context.Context) ([]commerce.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, description, amount, category, date FROM expenses ORDER BY date DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []commerce.Expense
	for rows.Next() {
		var e commerce.Expense
		var amount, date string
		if err := rows.Scan(&e.ID, &e.Description, &amount, &e.Category, &date); err != nil {
			return nil, err
		}
		e.Amount = commerce.MustDecimal(amount)
		e.Date, _ = time.Parse(expenseDateFormat, date)
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (s *Store) CreateExpense(ctx context.Context, e *commerce.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO expenses (description, amount, category, date) VALUES (?, ?, ?, ?)",
		e.Description, e.Amount.String(), e.Category, e.Date.Format(expenseDateFormat))
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	e.ID, err = res.LastInsertId()
	return err
}

func (s *Store) DeleteExpense(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return nil
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{"sale_items", "sales", "products", "clients", "expenses"}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

// IsEmpty reports whether the catalog has no products. Used to decide
// whether to seed demo data on startup.
func (s *Store) IsEmpty(ctx context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&count)
	return count == 0, err
}
