package commands

import (
	"context"
	"errors"

	"ordercore/internal/core/domain/model/cart"
	"ordercore/internal/core/domain/model/catalog"
	"ordercore/internal/core/domain/model/kernel"
	"ordercore/internal/core/ports"
	"ordercore/internal/pkg/errs"
)

// SyncCartPricesCommandHandler reconciles locked cart prices with the catalog.
type SyncCartPricesCommandHandler struct {
	uowFactory CartUoWFactory
}

func NewSyncCartPricesCommandHandler(uowFactory CartUoWFactory) SyncCartPricesCommandHandler {
	return SyncCartPricesCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the synced cart. The cart is written only when something changed.
func (h SyncCartPricesCommandHandler) Handle(ctx context.Context, command SyncCartPricesCommand) (*cart.Cart, error) {
	c, err := h.handle(ctx, command)
	if err != nil {
		return nil, errs.Internal("sync cart prices", err)
	}
	return c, nil
}

func (h SyncCartPricesCommandHandler) handle(ctx context.Context, command SyncCartPricesCommand) (*cart.Cart, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	c, err := loadCartForUpdate(ctx, uow.CartRepository(), command.UserID())
	if err != nil {
		return nil, err
	}

	products, err := snapshotProducts(ctx, uow.ProductCatalog(), c)
	if err != nil {
		return nil, err
	}

	if c.SyncPrices(products) {
		if err = uow.CartRepository().Update(ctx, c); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return c, nil
}

// snapshotProducts reads the current snapshot of every product in the cart.
// Unknown products are left out of the map rather than failing the read.
func snapshotProducts(
	ctx context.Context,
	productCatalog ports.ProductCatalog,
	c *cart.Cart,
) (map[kernel.UUID]catalog.Product, error) {
	products := make(map[kernel.UUID]catalog.Product, len(c.Lines()))
	for _, line := range c.Lines() {
		product, err := productCatalog.GetProductSnapshot(ctx, line.ProductID())
		if errors.Is(err, errs.ErrObjectNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		products[line.ProductID()] = product
	}
	return products, nil
}
