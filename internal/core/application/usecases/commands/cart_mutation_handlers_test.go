package commands_test

import (
	"testing"

	"ordercore/internal/core/application/usecases/commands"
	"ordercore/internal/core/domain/model/catalog"
	"ordercore/internal/core/domain/model/kernel"
	"ordercore/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateCartCommandHandler_Handle(t *testing.T) {
	t.Run("should return the existing cart", func(t *testing.T) {
		ctx := t.Context()
		userID := kernel.NewUUID()
		existing := cartWith(t, userID, fakeProduct(t, true))
		cmd, err := commands.NewGetOrCreateCartCommand(userID)
		require.NoError(t, err)

		h := newCartHarness()
		mock.InOrder(
			h.uow.On("Begin", ctx).Return(nil).Once(),
			h.carts.On("GetByUserForUpdate", ctx, userID).Return(existing, nil).Once(),
			h.uow.On("Commit", ctx).Return(nil).Once(),
			h.uow.On("Rollback", ctx).Return(nil).Once(),
		)

		c, err := commands.NewGetOrCreateCartCommandHandler(h.factory).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Same(t, existing, c)
		h.carts.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		h.assertExpectations(t)
	})

	t.Run("should create an empty cart on first use", func(t *testing.T) {
		ctx := t.Context()
		userID := kernel.NewUUID()
		cmd, err := commands.NewGetOrCreateCartCommand(userID)
		require.NoError(t, err)

		h := newCartHarness()
		mock.InOrder(
			h.uow.On("Begin", ctx).Return(nil).Once(),
			h.carts.On("GetByUserForUpdate", ctx, userID).Return(nil, errs.NewObjectNotFoundError("cart", userID)).Once(),
			h.carts.On("Add", ctx, mock.AnythingOfType("*cart.Cart")).Return(nil).Once(),
			h.uow.On("Commit", ctx).Return(nil).Once(),
			h.uow.On("Rollback", ctx).Return(nil).Once(),
		)

		c, err := commands.NewGetOrCreateCartCommandHandler(h.factory).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.True(t, c.IsEmpty())
		assert.True(t, c.UserID().IsEqual(userID))
		assert.True(t, c.TotalAmount().IsZero())
		h.assertExpectations(t)
	})

	t.Run("should surface commit failure as internal", func(t *testing.T) {
		ctx := t.Context()
		userID := kernel.NewUUID()
		cmd, err := commands.NewGetOrCreateCartCommand(userID)
		require.NoError(t, err)

		h := newCartHarness()
		mock.InOrder(
			h.uow.On("Begin", ctx).Return(nil).Once(),
			h.carts.On("GetByUserForUpdate", ctx, userID).Return(cartWith(t, userID), nil).Once(),
			h.uow.On("Commit", ctx).Return(assert.AnError).Once(),
			h.uow.On("Rollback", ctx).Return(nil).Once(),
		)

		c, err := commands.NewGetOrCreateCartCommandHandler(h.factory).Handle(ctx, cmd)

		assert.Nil(t, c)
		require.ErrorIs(t, err, errs.ErrInternal)
		h.assertExpectations(t)
	})
}

func TestSetCartItemQuantityCommandHandler_Handle(t *testing.T) {
	t.Run("should overwrite the quantity", func(t *testing.T) {
		ctx := t.Context()
		userID := kernel.NewUUID()
		product := fakeProduct(t, true)
		existing := cartWith(t, userID, product)
		cmd, err := commands.NewSetCartItemQuantityCommand(userID, product.ID(), 7)
		require.NoError(t, err)

		h := newCartHarness()
		mock.InOrder(
			h.uow.On("Begin", ctx).Return(nil).Once(),
			h.carts.On("GetByUserForUpdate", ctx, userID).Return(existing, nil).Once(),
			h.carts.On("Update", ctx, existing).Return(nil).Once(),
			h.uow.On("Commit", ctx).Return(nil).Once(),
			h.uow.On("Rollback", ctx).Return(nil).Once(),
		)

		c, err := commands.NewSetCartItemQuantityCommandHandler(h.factory).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, 7, c.Quantity(product.ID()))
		assert.Equal(t, 7, c.TotalItemCount())
		h.assertExpectations(t)
	})

	t.Run("should remove the line at zero", func(t *testing.T) {
		ctx := t.Context()
		userID := kernel.NewUUID()
		product := fakeProduct(t, true)
		existing := cartWith(t, userID, product)
		cmd, err := commands.NewSetCartItemQuantityCommand(userID, product.ID(), 0)
		require.NoError(t, err)

		h := newCartHarness()
		mock.InOrder(
			h.uow.On("Begin", ctx).Return(nil).Once(),
			h.carts.On("GetByUserForUpdate", ctx, userID).Return(existing, nil).Once(),
			h.carts.On("Update", ctx, existing).Return(nil).Once(),
			h.uow.On("Commit", ctx).Return(nil).Once(),
			h.uow.On("Rollback", ctx).Return(nil).Once(),
		)

		c, err := commands.NewSetCartItemQuantityCommandHandler(h.factory).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.True(t, c.IsEmpty())
		assert.True(t, c.TotalAmount().IsZero())
		h.assertExpectations(t)
	})

	t.Run("should reject a positive quantity for an absent product", func(t *testing.T) {
		ctx := t.Context()
		userID := kernel.NewUUID()
		existing := cartWith(t, userID, fakeProduct(t, true))
		cmd, err := commands.NewSetCartItemQuantityCommand(userID, kernel.NewUUID(), 2)
		require.NoError(t, err)

		h := newCartHarness()
		mock.InOrder(
			h.uow.On("Begin", ctx).Return(nil).Once(),
			h.carts.On("GetByUserForUpdate", ctx, userID).Return(existing, nil).Once(),
			h.uow.On("Rollback", ctx).Return(nil).Once(),
		)

		_, err = commands.NewSetCartItemQuantityCommandHandler(h.factory).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		h.carts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		h.assertExpectations(t)
	})

	t.Run("should remove through the remove command", func(t *testing.T) {
		ctx := t.Context()
		userID := kernel.NewUUID()
		first, second := fakeProduct(t, true), fakeProduct(t, true)
		existing := cartWith(t, userID, first, second)
		cmd, err := commands.NewRemoveCartItemCommand(userID, first.ID())
		require.NoError(t, err)

		h := newCartHarness()
		mock.InOrder(
			h.uow.On("Begin", ctx).Return(nil).Once(),
			h.carts.On("GetByUserForUpdate", ctx, userID).Return(existing, nil).Once(),
			h.carts.On("Update", ctx, existing).Return(nil).Once(),
			h.uow.On("Commit", ctx).Return(nil).Once(),
			h.uow.On("Rollback", ctx).Return(nil).Once(),
		)

		c, err := commands.NewSetCartItemQuantityCommandHandler(h.factory).Handle(ctx, cmd)

		require.NoError(t, err)
		require.Len(t, c.Lines(), 1)
		assert.Equal(t, 2, c.TotalItemCount())
		assert.True(t, second.Price().Mul(2).IsEqual(c.TotalAmount()))
		h.assertExpectations(t)
	})
}

func TestAdjustCartItemQuantityCommandHandler_Handle(t *testing.T) {
	tests := []struct {
		name      string
		increment bool
		start     int
		wantQty   int
		wantLines int
	}{
		{name: "increment", increment: true, start: 2, wantQty: 3, wantLines: 1},
		{name: "decrement", increment: false, start: 2, wantQty: 1, wantLines: 1},
		{name: "decrement last unit removes line", increment: false, start: 1, wantQty: 0, wantLines: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			userID := kernel.NewUUID()
			product := fakeProduct(t, true)
			existing := cartWith(t, userID)
			require.NoError(t, existing.AddItem(product, tt.start))

			var cmd commands.AdjustCartItemQuantityCommand
			var err error
			if tt.increment {
				cmd, err = commands.NewIncrementCartItemCommand(userID, product.ID())
			} else {
				cmd, err = commands.NewDecrementCartItemCommand(userID, product.ID())
			}
			require.NoError(t, err)

			h := newCartHarness()
			mock.InOrder(
				h.uow.On("Begin", ctx).Return(nil).Once(),
				h.carts.On("GetByUserForUpdate", ctx, userID).Return(existing, nil).Once(),
				h.carts.On("Update", ctx, existing).Return(nil).Once(),
				h.uow.On("Commit", ctx).Return(nil).Once(),
				h.uow.On("Rollback", ctx).Return(nil).Once(),
			)

			c, err := commands.NewAdjustCartItemQuantityCommandHandler(h.factory).Handle(ctx, cmd)

			require.NoError(t, err)
			assert.Len(t, c.Lines(), tt.wantLines)
			assert.Equal(t, tt.wantQty, c.Quantity(product.ID()))
			assert.Equal(t, tt.wantQty, c.TotalItemCount())
			h.assertExpectations(t)
		})
	}

	t.Run("increment of an absent product is not found", func(t *testing.T) {
		ctx := t.Context()
		userID := kernel.NewUUID()
		cmd, err := commands.NewIncrementCartItemCommand(userID, kernel.NewUUID())
		require.NoError(t, err)

		h := newCartHarness()
		mock.InOrder(
			h.uow.On("Begin", ctx).Return(nil).Once(),
			h.carts.On("GetByUserForUpdate", ctx, userID).Return(cartWith(t, userID), nil).Once(),
			h.uow.On("Rollback", ctx).Return(nil).Once(),
		)

		_, err = commands.NewAdjustCartItemQuantityCommandHandler(h.factory).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		h.assertExpectations(t)
	})
}

func TestClearCartCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	userID := kernel.NewUUID()
	existing := cartWith(t, userID, fakeProduct(t, true), fakeProduct(t, true))
	cmd, err := commands.NewClearCartCommand(userID)
	require.NoError(t, err)

	h := newCartHarness()
	mock.InOrder(
		h.uow.On("Begin", ctx).Return(nil).Once(),
		h.carts.On("GetByUserForUpdate", ctx, userID).Return(existing, nil).Once(),
		h.carts.On("Update", ctx, existing).Return(nil).Once(),
		h.uow.On("Commit", ctx).Return(nil).Once(),
		h.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	c, err := commands.NewClearCartCommandHandler(h.factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
	assert.Zero(t, c.TotalItemCount())
	assert.True(t, c.TotalAmount().IsZero())
	h.assertExpectations(t)
}

func TestSyncCartPricesCommandHandler_Handle(t *testing.T) {
	t.Run("should write the cart when a price changed", func(t *testing.T) {
		ctx := t.Context()
		userID := kernel.NewUUID()
		product := fakeProduct(t, true)
		existing := cartWith(t, userID, product)

		newPrice := product.Price().Add(kernel.MustMoney("5.00"))
		repriced, err := catalog.NewProduct(product.ID(), product.Name(), newPrice, true)
		require.NoError(t, err)

		cmd, err := commands.NewSyncCartPricesCommand(userID)
		require.NoError(t, err)

		h := newCartHarness()
		mock.InOrder(
			h.uow.On("Begin", ctx).Return(nil).Once(),
			h.carts.On("GetByUserForUpdate", ctx, userID).Return(existing, nil).Once(),
			h.products.On("GetProductSnapshot", ctx, product.ID()).Return(repriced, nil).Once(),
			h.carts.On("Update", ctx, existing).Return(nil).Once(),
			h.uow.On("Commit", ctx).Return(nil).Once(),
			h.uow.On("Rollback", ctx).Return(nil).Once(),
		)

		c, err := commands.NewSyncCartPricesCommandHandler(h.factory).Handle(ctx, cmd)

		require.NoError(t, err)
		line, ok := c.Line(product.ID())
		require.True(t, ok)
		assert.True(t, newPrice.IsEqual(line.UnitPrice()))
		assert.True(t, newPrice.IsEqual(c.TotalAmount()))
		h.assertExpectations(t)
	})

	t.Run("should skip the write when nothing changed", func(t *testing.T) {
		ctx := t.Context()
		userID := kernel.NewUUID()
		product := fakeProduct(t, true)
		existing := cartWith(t, userID, product)
		cmd, err := commands.NewSyncCartPricesCommand(userID)
		require.NoError(t, err)

		h := newCartHarness()
		mock.InOrder(
			h.uow.On("Begin", ctx).Return(nil).Once(),
			h.carts.On("GetByUserForUpdate", ctx, userID).Return(existing, nil).Once(),
			h.products.On("GetProductSnapshot", ctx, product.ID()).Return(product, nil).Once(),
			h.uow.On("Commit", ctx).Return(nil).Once(),
			h.uow.On("Rollback", ctx).Return(nil).Once(),
		)

		c, err := commands.NewSyncCartPricesCommandHandler(h.factory).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Len(t, c.Lines(), 1)
		h.carts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		h.assertExpectations(t)
	})

	t.Run("should drop lines whose product is gone", func(t *testing.T) {
		ctx := t.Context()
		userID := kernel.NewUUID()
		product := fakeProduct(t, true)
		gone := fakeProduct(t, true)
		existing := cartWith(t, userID, product, gone)
		cmd, err := commands.NewSyncCartPricesCommand(userID)
		require.NoError(t, err)

		h := newCartHarness()
		h.uow.On("Begin", ctx).Return(nil).Once()
		h.carts.On("GetByUserForUpdate", ctx, userID).Return(existing, nil).Once()
		h.products.On("GetProductSnapshot", ctx, product.ID()).Return(product, nil).Once()
		h.products.On("GetProductSnapshot", ctx, gone.ID()).
			Return(catalog.Product{}, errs.NewObjectNotFoundError("product", gone.ID())).Once()
		h.carts.On("Update", ctx, existing).Return(nil).Once()
		h.uow.On("Commit", ctx).Return(nil).Once()
		h.uow.On("Rollback", ctx).Return(nil).Once()

		c, err := commands.NewSyncCartPricesCommandHandler(h.factory).Handle(ctx, cmd)

		require.NoError(t, err)
		require.Len(t, c.Lines(), 1)
		assert.Equal(t, 1, c.TotalItemCount())
		assert.True(t, product.Price().IsEqual(c.TotalAmount()))
		h.assertExpectations(t)
	})
}
