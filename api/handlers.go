/*
handlers.go - HTTP API handlers for the small-business engine

PURPOSE:
  Exposes the catalog, client ledger, expense book, and sale transaction
  engine via REST. Handles HTTP request/response and JSON serialization;
  all invariants live in the commerce package.

ENDPOINTS:
  Products:
    GET    /api/products           List catalog
    POST   /api/products           Create product
    GET    /api/products/{id}      Get product
    PUT    /api/products/{id}      Update product
    DELETE /api/products/{id}      Delete product

  Clients:
    GET    /api/clients            List clients
    POST   /api/clients            Create client
    DELETE /api/clients/{id}       Delete client (walk-in client rejected)

  Expenses:
    GET    /api/expenses           List expenses
    POST   /api/expenses           Create expense
    DELETE /api/expenses/{id}      Delete expense

  Sales (the transaction engine):
    GET    /api/sales              Sales history with line items
    POST   /api/sales              Commit a sale atomically
    GET    /api/sales/{id}         Get one sale
    DELETE /api/sales/{id}         Reverse a sale atomically

  Admin:
    POST   /api/admin/seed         Reset and reseed demo data (dev only)

ERROR HANDLING:
  - 400: invalid input (empty cart, bad quantity, unknown references,
         walk-in client deletion)
  - 404: missing resource
  - 500: storage failures (the atomic unit has already rolled back)

SEE ALSO:
  - dto.go:    Request/response structures
  - server.go: Router setup and middleware
  - seed.go:   Demo dataset
*/
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pyme/commerce-engine/commerce"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store  commerce.Store
	Engine *commerce.Engine
}

// NewHandler creates a handler over the given store and engine.
func NewHandler(store commerce.Store, engine *commerce.Engine) *Handler {
	return &Handler{Store: store, Engine: engine}
}

// =============================================================================
// PRODUCT HANDLERS
// =============================================================================

// ListProducts returns the catalog ordered by name.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Store.ListProducts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list products", err)
		return
	}

	dtos := make([]ProductDTO, len(products))
	for i, p := range products {
		dtos[i] = toProductDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetProduct returns a single product.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	p, err := h.Store.GetProduct(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get product", err)
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "Product not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toProductDTO(*p))
}

// CreateProduct adds a catalog product.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Product name is required", nil)
		return
	}

	p := commerce.Product{
		Name:     req.Name,
		Category: req.Category,
		Stock:    req.Stock,
		Price:    money(req.Price),
		Cost:     money(req.Cost),
	}
	if err := h.Store.CreateProduct(r.Context(), &p); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create product", err)
		return
	}
	writeJSON(w, http.StatusCreated, toProductDTO(p))
}

// UpdateProduct replaces a product's editable fields.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	existing, err := h.Store.GetProduct(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get product", err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Product not found", nil)
		return
	}

	p := commerce.Product{
		ID:       id,
		Name:     req.Name,
		Category: req.Category,
		Stock:    req.Stock,
		Price:    money(req.Price),
		Cost:     money(req.Cost),
	}
	if err := h.Store.UpdateProduct(r.Context(), p); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update product", err)
		return
	}
	writeJSON(w, http.StatusOK, toProductDTO(p))
}

// DeleteProduct removes a product. Historical sales keep their snapshots.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.Store.DeleteProduct(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete product", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// CLIENT HANDLERS
// =============================================================================

// ListClients returns all clients ordered by name.
func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Store.ListClients(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list clients", err)
		return
	}

	dtos := make([]ClientDTO, len(clients))
	for i, c := range clients {
		dtos[i] = toClientDTO(c)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateClient adds a client-ledger entry.
func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req ClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Client name is required", nil)
		return
	}

	c := commerce.Client{Name: req.Name, Email: req.Email, Phone: req.Phone}
	if err := h.Store.CreateClient(r.Context(), &c); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create client", err)
		return
	}
	writeJSON(w, http.StatusCreated, toClientDTO(c))
}

// DeleteClient removes a client. The reserved walk-in client is protected.
func (h *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.Store.DeleteClient(r.Context(), id); err != nil {
		if commerce.IsInvalidInput(err) {
			writeError(w, http.StatusBadRequest, "Cannot delete default client", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete client", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// EXPENSE HANDLERS
// =============================================================================

// ListExpenses returns the expense book, newest first.
func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.Store.ListExpenses(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list expenses", err)
		return
	}

	dtos := make([]ExpenseDTO, len(expenses))
	for i, e := range expenses {
		dtos[i] = toExpenseDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateExpense records an expense.
func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req ExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD", err)
		return
	}

	e := commerce.Expense{
		Description: req.Description,
		Amount:      money(req.Amount),
		Category:    req.Category,
		Date:        date,
	}
	if err := h.Store.CreateExpense(r.Context(), &e); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create expense", err)
		return
	}
	writeJSON(w, http.StatusCreated, toExpenseDTO(e))
}

// DeleteExpense removes an expense.
func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.Store.DeleteExpense(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete expense", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// SALE HANDLERS (the transaction engine surface)
// =============================================================================

// ListSales returns the sales history with line items, newest first.
func (h *Handler) ListSales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.Store.ListSales(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list sales", err)
		return
	}

	dtos := make([]SaleDTO, len(sales))
	for i, s := range sales {
		dtos[i] = toSaleDTO(s)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetSale returns one sale with its line items.
func (h *Handler) GetSale(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	s, err := h.Store.GetSale(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get sale", err)
		return
	}
	if s == nil {
		writeError(w, http.StatusNotFound, "Sale not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toSaleDTO(*s))
}

// CommitSale atomically records a sale via the transaction engine.
func (h *Handler) CommitSale(w http.ResponseWriter, r *http.Request) {
	var req CreateSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	items := make([]commerce.CartLine, len(req.Items))
	for i, it := range req.Items {
		items[i] = commerce.CartLine{ProductID: it.ProductID, Qty: it.Qty}
	}

	sale, err := h.Engine.CommitSale(r.Context(), commerce.CommitRequest{
		ClientID: req.ClientID,
		Items:    items,
	})
	if err != nil {
		if commerce.IsInvalidInput(err) {
			writeError(w, http.StatusBadRequest, "Invalid sale request", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Error processing sale", err)
		return
	}
	writeJSON(w, http.StatusCreated, toSaleDTO(*sale))
}

// ReverseSale undoes a committed sale via the transaction engine.
func (h *Handler) ReverseSale(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.Engine.ReverseSale(r.Context(), id); err != nil {
		if commerce.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Sale not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Error deleting sale", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// HELPERS
// =============================================================================

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id", err)
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
