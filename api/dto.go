/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for API communication, decoupling the domain model from
  the external contract. Money crosses the boundary as JSON numbers
  (float64) and is converted to decimal.Decimal at the edge.

NAMING CONVENTION:
  - *DTO:     Response types returned to clients
  - *Request: Request body types from clients

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pyme/commerce-engine/commerce"
)

// =============================================================================
// CATALOG
// =============================================================================

// ProductDTO represents a catalog product in API responses.
type ProductDTO struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Stock    int     `json:"stock"`
	Price    float64 `json:"price"`
	Cost     float64 `json:"cost"`
}

// ProductRequest is the body of product create/update calls.
type ProductRequest struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Stock    int     `json:"stock"`
	Price    float64 `json:"price"`
	Cost     float64 `json:"cost"`
}

func toProductDTO(p commerce.Product) ProductDTO {
	return ProductDTO{
		ID:       p.ID,
		Name:     p.Name,
		Category: p.Category,
		Stock:    p.Stock,
		Price:    p.Price.InexactFloat64(),
		Cost:     p.Cost.InexactFloat64(),
	}
}

// =============================================================================
// CLIENTS
// =============================================================================

// ClientDTO represents a client-ledger entry in API responses.
type ClientDTO struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone"`
	TotalSpent float64 `json:"total_spent"`
}

// ClientRequest is the body of client creation.
type ClientRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func toClientDTO(c commerce.Client) ClientDTO {
	return ClientDTO{
		ID:         c.ID,
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
		TotalSpent: c.TotalSpent.InexactFloat64(),
	}
}

// =============================================================================
// SALES
// =============================================================================

// SaleDTO represents a committed sale with its line items.
type SaleDTO struct {
	ID         int64         `json:"id"`
	Date       string        `json:"date"`
	ClientID   *int64        `json:"client_id,omitempty"`
	ClientName string        `json:"client_name"`
	Subtotal   float64       `json:"subtotal"`
	Tax        float64       `json:"tax"`
	Total      float64       `json:"total"`
	Items      []SaleItemDTO `json:"items"`
}

// SaleItemDTO represents one line of a sale, with commit-time snapshots.
type SaleItemDTO struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Qty       int     `json:"qty"`
}

// CreateSaleRequest is the body of a sale commit. A missing client_id
// records an anonymous walk-in sale.
type CreateSaleRequest struct {
	ClientID *int64        `json:"client_id,omitempty"`
	Items    []CartLineDTO `json:"items"`
}

// CartLineDTO is one (product, quantity) pair of the cart.
type CartLineDTO struct {
	ProductID int64 `json:"product_id"`
	Qty       int   `json:"qty"`
}

func toSaleDTO(s commerce.Sale) SaleDTO {
	items := make([]SaleItemDTO, len(s.Items))
	for i, it := range s.Items {
		items[i] = SaleItemDTO{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price.InexactFloat64(),
			Qty:       it.Qty,
		}
	}
	return SaleDTO{
		ID:         s.ID,
		Date:       s.Date.Format(time.RFC3339),
		ClientID:   s.ClientID,
		ClientName: s.ClientName,
		Subtotal:   s.Subtotal.InexactFloat64(),
		Tax:        s.Tax.InexactFloat64(),
		Total:      s.Total.InexactFloat64(),
		Items:      items,
	}
}

// =============================================================================
// EXPENSES
// =============================================================================

// ExpenseDTO represents an expense-book entry.
type ExpenseDTO struct {
	ID          int64   `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
}

// ExpenseRequest is the body of expense creation. Date is "YYYY-MM-DD".
type ExpenseRequest struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
}

func toExpenseDTO(e commerce.Expense) ExpenseDTO {
	return ExpenseDTO{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount.InexactFloat64(),
		Category:    e.Category,
		Date:        e.Date.Format("2006-01-02"),
	}
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrorResponse is the JSON shape of every error reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func money(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }
