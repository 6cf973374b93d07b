package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyme/commerce-engine/commerce"
	"github.com/pyme/commerce-engine/commerce/store"
)

func TestMemory_WithTx_RollsBackOnError(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()

	p := commerce.Product{Name: "Gorra Logo", Stock: 10, Price: commerce.MustDecimal("50000")}
	require.NoError(t, mem.CreateProduct(ctx, &p))

	boom := errors.New("boom")
	err := mem.WithTx(ctx, func(uow commerce.UnitOfWork) error {
		require.NoError(t, uow.AdjustStock(ctx, p.ID, -4))
		require.NoError(t, uow.DeleteProduct(ctx, p.ID))
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := mem.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got, "delete inside a failed unit must be undone")
	assert.Equal(t, 10, got.Stock, "stock adjustment inside a failed unit must be undone")
}

func TestMemory_WithTx_CommitsOnSuccess(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()

	p := commerce.Product{Name: "Gorra Logo", Stock: 10, Price: commerce.MustDecimal("50000")}
	require.NoError(t, mem.CreateProduct(ctx, &p))

	require.NoError(t, mem.WithTx(ctx, func(uow commerce.UnitOfWork) error {
		return uow.AdjustStock(ctx, p.ID, -4)
	}))

	got, _ := mem.GetProduct(ctx, p.ID)
	assert.Equal(t, 6, got.Stock)
}

func TestMemory_AdjustStock_ClampsAndIgnoresMissing(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()

	p := commerce.Product{Name: "Zapatillas", Stock: 1, Price: commerce.MustDecimal("350000")}
	require.NoError(t, mem.CreateProduct(ctx, &p))

	require.NoError(t, mem.AdjustStock(ctx, p.ID, -3))
	got, _ := mem.GetProduct(ctx, p.ID)
	assert.Equal(t, 0, got.Stock)

	// Missing rows are a no-op, not an error.
	require.NoError(t, mem.AdjustStock(ctx, 999, 5))
	require.NoError(t, mem.AdjustTotalSpent(ctx, 999, commerce.MustDecimal("100")))
}

func TestMemory_DeleteClient_WalkInProtected(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()

	walkIn := commerce.Client{ID: commerce.WalkInClientID, Name: commerce.WalkInClientName}
	require.NoError(t, mem.CreateClient(ctx, &walkIn))

	err := mem.DeleteClient(ctx, commerce.WalkInClientID)
	assert.ErrorIs(t, err, commerce.ErrWalkInClientProtected)

	c, _ := mem.GetClient(ctx, commerce.WalkInClientID)
	assert.NotNil(t, c)
}

func TestMemory_InsertSale_AssignsIDs(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()

	s := commerce.Sale{
		ClientName: commerce.WalkInClientName,
		Subtotal:   commerce.MustDecimal("100"),
		Tax:        commerce.MustDecimal("19"),
		Total:      commerce.MustDecimal("119"),
		Items: []commerce.SaleItem{
			{ProductID: 1, Name: "A", Price: commerce.MustDecimal("50"), Qty: 1},
			{ProductID: 2, Name: "B", Price: commerce.MustDecimal("50"), Qty: 1},
		},
	}
	require.NoError(t, mem.InsertSale(ctx, &s))

	assert.NotZero(t, s.ID)
	for _, it := range s.Items {
		assert.NotZero(t, it.ID)
		assert.Equal(t, s.ID, it.SaleID)
	}

	got, err := mem.GetSale(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
}
