package commands

import (
	"context"

	"ordercore/internal/core/domain/model/cart"
	"ordercore/internal/pkg/errs"
)

// AddCartItemCommandHandler adds a product to the user's cart.
// The product snapshot is read first, so an unknown product fails before any cart is
// created. The cart row stays locked until commit, which serializes concurrent adds.
//
// Example:
//
//	handler := NewAddCartItemCommandHandler(uowFactory)
//	c, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // unknown product
//	case errors.Is(err, errs.ErrProductInactive):
//	    // product cannot be purchased
//	case err != nil:
//	    return err
//	}
type AddCartItemCommandHandler struct {
	uowFactory CartUoWFactory
}

func NewAddCartItemCommandHandler(uowFactory CartUoWFactory) AddCartItemCommandHandler {
	return AddCartItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the updated cart.
func (h AddCartItemCommandHandler) Handle(ctx context.Context, command AddCartItemCommand) (*cart.Cart, error) {
	c, err := h.handle(ctx, command)
	if err != nil {
		return nil, errs.Internal("add cart item", err)
	}
	return c, nil
}

func (h AddCartItemCommandHandler) handle(ctx context.Context, command AddCartItemCommand) (*cart.Cart, error) {
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

	product, err := uow.ProductCatalog().GetProductSnapshot(ctx, command.ProductID())
	if err != nil {
		return nil, err
	}

	c, err := loadCartForUpdate(ctx, uow.CartRepository(), command.UserID())
	if err != nil {
		return nil, err
	}

	if err = c.AddItem(product, command.Quantity()); err != nil {
		return nil, err
	}

	if err = uow.CartRepository().Update(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return c, nil
}
