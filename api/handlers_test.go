package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyme/commerce-engine/api"
	"github.com/pyme/commerce-engine/commerce"
	"github.com/pyme/commerce-engine/commerce/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

type testAPI struct {
	mem    *store.Memory
	server *httptest.Server
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	mem := store.NewMemory()
	engine := commerce.NewEngine(mem)
	router := api.NewRouter(api.NewHandler(mem, engine))
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &testAPI{mem: mem, server: srv}
}

func (a *testAPI) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, a.server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func seedProduct(t *testing.T, mem *store.Memory, name string, stock int, price string) commerce.Product {
	t.Helper()
	p := commerce.Product{Name: name, Stock: stock, Price: commerce.MustDecimal(price)}
	require.NoError(t, mem.CreateProduct(context.Background(), &p))
	return p
}

func seedClient(t *testing.T, mem *store.Memory, name string) commerce.Client {
	t.Helper()
	c := commerce.Client{Name: name}
	require.NoError(t, mem.CreateClient(context.Background(), &c))
	return c
}

// =============================================================================
// PRODUCTS
// =============================================================================

func TestAPI_ProductCRUD(t *testing.T) {
	a := newTestAPI(t)

	resp := a.do(t, http.MethodPost, "/api/products", map[string]any{
		"name":     "Camiseta Básica",
		"category": "Ropa",
		"stock":    50,
		"price":    99900,
		"cost":     45000,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[api.ProductDTO](t, resp)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Camiseta Básica", created.Name)
	assert.Equal(t, 99900.0, created.Price)

	resp = a.do(t, http.MethodGet, fmt.Sprintf("/api/products/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = a.do(t, http.MethodPut, fmt.Sprintf("/api/products/%d", created.ID), map[string]any{
		"name":  "Camiseta Básica",
		"stock": 40,
		"price": 109900,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[api.ProductDTO](t, resp)
	assert.Equal(t, 40, updated.Stock)

	resp = a.do(t, http.MethodDelete, fmt.Sprintf("/api/products/%d", created.ID), nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = a.do(t, http.MethodGet, fmt.Sprintf("/api/products/%d", created.ID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_CreateProduct_RequiresName(t *testing.T) {
	a := newTestAPI(t)

	resp := a.do(t, http.MethodPost, "/api/products", map[string]any{"price": 100})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// =============================================================================
// CLIENTS
// =============================================================================

func TestAPI_DeleteClient_WalkInRejected(t *testing.T) {
	a := newTestAPI(t)
	walkIn := commerce.Client{ID: commerce.WalkInClientID, Name: commerce.WalkInClientName}
	require.NoError(t, a.mem.CreateClient(context.Background(), &walkIn))

	resp := a.do(t, http.MethodDelete, fmt.Sprintf("/api/clients/%d", commerce.WalkInClientID), nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[api.ErrorResponse](t, resp)
	assert.Equal(t, "Cannot delete default client", body.Error)
}

func TestAPI_ClientCreateAndList(t *testing.T) {
	a := newTestAPI(t)

	resp := a.do(t, http.MethodPost, "/api/clients", map[string]any{
		"name":  "Ana Torres",
		"email": "ana@example.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = a.do(t, http.MethodGet, "/api/clients", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	clients := decode[[]api.ClientDTO](t, resp)
	require.Len(t, clients, 1)
	assert.Equal(t, "Ana Torres", clients[0].Name)
	assert.Equal(t, 0.0, clients[0].TotalSpent)
}

// =============================================================================
// SALES
// =============================================================================

func TestAPI_CommitSale_HappyPath(t *testing.T) {
	a := newTestAPI(t)
	p := seedProduct(t, a.mem, "Camiseta Básica", 5, "100000")
	c := seedClient(t, a.mem, "Ana Torres")

	resp := a.do(t, http.MethodPost, "/api/sales", map[string]any{
		"client_id": c.ID,
		"items":     []map[string]any{{"product_id": p.ID, "qty": 2}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	sale := decode[api.SaleDTO](t, resp)
	assert.Equal(t, 200000.0, sale.Subtotal)
	assert.Equal(t, 38000.0, sale.Tax)
	assert.Equal(t, 238000.0, sale.Total)
	assert.Equal(t, "Ana Torres", sale.ClientName)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, "Camiseta Básica", sale.Items[0].Name)

	got, err := a.mem.GetProduct(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Stock)
}

func TestAPI_CommitSale_AnonymousWalkIn(t *testing.T) {
	a := newTestAPI(t)
	p := seedProduct(t, a.mem, "Gorra Logo", 10, "50000")

	resp := a.do(t, http.MethodPost, "/api/sales", map[string]any{
		"items": []map[string]any{{"product_id": p.ID, "qty": 1}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	sale := decode[api.SaleDTO](t, resp)
	assert.Nil(t, sale.ClientID)
	assert.Equal(t, commerce.WalkInClientName, sale.ClientName)
}

func TestAPI_CommitSale_EmptyCartRejected(t *testing.T) {
	a := newTestAPI(t)

	resp := a.do(t, http.MethodPost, "/api/sales", map[string]any{"items": []map[string]any{}})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[api.ErrorResponse](t, resp)
	assert.Equal(t, "Invalid sale request", body.Error)
}

func TestAPI_CommitSale_UnknownProductRejected(t *testing.T) {
	a := newTestAPI(t)

	resp := a.do(t, http.MethodPost, "/api/sales", map[string]any{
		"items": []map[string]any{{"product_id": 9999, "qty": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_ReverseSale(t *testing.T) {
	a := newTestAPI(t)
	p := seedProduct(t, a.mem, "Camiseta Básica", 5, "100000")

	resp := a.do(t, http.MethodPost, "/api/sales", map[string]any{
		"items": []map[string]any{{"product_id": p.ID, "qty": 2}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	sale := decode[api.SaleDTO](t, resp)

	resp = a.do(t, http.MethodDelete, fmt.Sprintf("/api/sales/%d", sale.ID), nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	got, err := a.mem.GetProduct(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Stock)

	resp = a.do(t, http.MethodGet, fmt.Sprintf("/api/sales/%d", sale.ID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_ReverseSale_NotFound(t *testing.T) {
	a := newTestAPI(t)

	resp := a.do(t, http.MethodDelete, "/api/sales/9999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// =============================================================================
// EXPENSES
// =============================================================================

func TestAPI_ExpenseCreateAndDelete(t *testing.T) {
	a := newTestAPI(t)

	resp := a.do(t, http.MethodPost, "/api/expenses", map[string]any{
		"description": "Alquiler Local",
		"amount":      2000000,
		"category":    "Operativo",
		"date":        "2023-10-01",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[api.ExpenseDTO](t, resp)
	assert.Equal(t, "2023-10-01", created.Date)

	resp = a.do(t, http.MethodPost, "/api/expenses", map[string]any{
		"description": "Internet",
		"amount":      100,
		"date":        "not-a-date",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = a.do(t, http.MethodDelete, fmt.Sprintf("/api/expenses/%d", created.ID), nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = a.do(t, http.MethodGet, "/api/expenses", nil)
	expenses := decode[[]api.ExpenseDTO](t, resp)
	assert.Empty(t, expenses)
}

// =============================================================================
// SEED
// =============================================================================

func TestAPI_SeedDemo(t *testing.T) {
	a := newTestAPI(t)

	resp := a.do(t, http.MethodPost, "/api/admin/seed", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	products, err := a.mem.ListProducts(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, products)

	walkIn, err := a.mem.GetClient(context.Background(), commerce.WalkInClientID)
	require.NoError(t, err)
	require.NotNil(t, walkIn)
	assert.Equal(t, commerce.WalkInClientName, walkIn.Name)
}

func TestAPI_InvalidIDPath(t *testing.T) {
	a := newTestAPI(t)

	resp := a.do(t, http.MethodGet, "/api/products/abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
