/*
seed.go - Demo dataset for development and demos

PURPOSE:
  Populates the store with the demo catalog, the reserved walk-in client,
  and a couple of expenses. Loaded on first run against an empty database
  and on demand via POST /api/admin/seed (which resets first).

NOTE:
  Reseeding wipes the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: ReseedDemo handler
  - cmd/server/main.go: First-run seeding
*/
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/pyme/commerce-engine/commerce"
)

// resetter is implemented by stores that can wipe all data (dev/demo).
type resetter interface {
	Reset(ctx context.Context) error
}

var demoProducts = []commerce.Product{
	{ID: 1715, Name: "Camiseta Básica", Category: "Ropa", Stock: 50, Price: commerce.MustDecimal("99900"), Cost: commerce.MustDecimal("45000")},
	{ID: 1716, Name: "Pantalón Jean", Category: "Ropa", Stock: 20, Price: commerce.MustDecimal("180000"), Cost: commerce.MustDecimal("90000")},
	{ID: 1717, Name: "Zapatillas Deportivas", Category: "Calzado", Stock: 5, Price: commerce.MustDecimal("350000"), Cost: commerce.MustDecimal("175000")},
	{ID: 1718, Name: "Gorra Logo", Category: "Accesorios", Stock: 100, Price: commerce.MustDecimal("50000"), Cost: commerce.MustDecimal("15000")},
}

var demoExpenses = []commerce.Expense{
	{Description: "Alquiler Local", Amount: commerce.MustDecimal("2000000"), Category: "Operativo", Date: time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC)},
	{Description: "Internet", Amount: commerce.MustDecimal("120000"), Category: "Servicios", Date: time.Date(2023, 10, 5, 0, 0, 0, 0, time.UTC)},
}

// SeedDemo inserts the demo dataset, including the reserved walk-in client.
func SeedDemo(ctx context.Context, store commerce.Store) error {
	for _, p := range demoProducts {
		p := p
		if err := store.CreateProduct(ctx, &p); err != nil {
			return err
		}
	}

	walkIn := commerce.Client{ID: commerce.WalkInClientID, Name: commerce.WalkInClientName}
	if err := store.CreateClient(ctx, &walkIn); err != nil {
		return err
	}

	for _, e := range demoExpenses {
		e := e
		if err := store.CreateExpense(ctx, &e); err != nil {
			return err
		}
	}
	return nil
}

// ReseedDemo wipes the database and loads the demo dataset.
func (h *Handler) ReseedDemo(w http.ResponseWriter, r *http.Request) {
	rs, ok := h.Store.(resetter)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Store does not support reset", nil)
		return
	}

	if err := rs.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	if err := SeedDemo(r.Context(), h.Store); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to seed demo data", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "message": "database reseeded"})
}
