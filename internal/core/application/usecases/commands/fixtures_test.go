package commands_test

import (
	"testing"

	"ordercore/internal/core/domain/model/cart"
	"ordercore/internal/core/domain/model/catalog"
	"ordercore/internal/core/domain/model/kernel"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func fakeProduct(t *testing.T, active bool) catalog.Product {
	t.Helper()
	price, err := kernel.NewMoney(decimal.NewFromFloat(gofakeit.Price(1, 100)).Round(2))
	require.NoError(t, err)
	p, err := catalog.NewProduct(kernel.MustUUIDFromString(gofakeit.UUID()), gofakeit.ProductName(), price, active)
	require.NoError(t, err)
	return p
}

func cartWith(t *testing.T, userID kernel.UUID, products ...catalog.Product) *cart.Cart {
	t.Helper()
	c, err := cart.NewCart(kernel.NewUUID(), userID)
	require.NoError(t, err)
	for i, p := range products {
		require.NoError(t, c.AddItem(p, i+1))
	}
	return c
}
