package commands

import (
	"context"

	"ordercore/internal/core/domain/model/cart"
	"ordercore/internal/pkg/errs"
)

// SetCartItemQuantityCommandHandler overwrites or removes a cart line.
type SetCartItemQuantityCommandHandler struct {
	uowFactory CartUoWFactory
}

func NewSetCartItemQuantityCommandHandler(uowFactory CartUoWFactory) SetCartItemQuantityCommandHandler {
	return SetCartItemQuantityCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the updated cart. Setting a positive quantity on a product that is not
// in the cart returns ObjectNotFoundError.
func (h SetCartItemQuantityCommandHandler) Handle(
	ctx context.Context,
	command SetCartItemQuantityCommand,
) (*cart.Cart, error) {
	c, err := h.handle(ctx, command)
	if err != nil {
		return nil, errs.Internal("set cart item quantity", err)
	}
	return c, nil
}

func (h SetCartItemQuantityCommandHandler) handle(
	ctx context.Context,
	command SetCartItemQuantityCommand,
) (*cart.Cart, error) {
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

	if err = c.SetQuantity(command.ProductID(), command.Quantity()); err != nil {
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
