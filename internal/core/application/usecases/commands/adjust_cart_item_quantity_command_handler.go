package commands

import (
	"context"

	"ordercore/internal/core/domain/model/cart"
	"ordercore/internal/pkg/errs"
)

// AdjustCartItemQuantityCommandHandler applies +1 or -1 to a cart line, with the same
// floor-at-zero-removes rule as SetCartItemQuantity.
type AdjustCartItemQuantityCommandHandler struct {
	uowFactory CartUoWFactory
}

func NewAdjustCartItemQuantityCommandHandler(uowFactory CartUoWFactory) AdjustCartItemQuantityCommandHandler {
	return AdjustCartItemQuantityCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h AdjustCartItemQuantityCommandHandler) Handle(
	ctx context.Context,
	command AdjustCartItemQuantityCommand,
) (*cart.Cart, error) {
	c, err := h.handle(ctx, command)
	if err != nil {
		return nil, errs.Internal("adjust cart item quantity", err)
	}
	return c, nil
}

func (h AdjustCartItemQuantityCommandHandler) handle(
	ctx context.Context,
	command AdjustCartItemQuantityCommand,
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

	if command.IsIncrement() {
		err = c.IncrementItem(command.ProductID())
	} else {
		err = c.DecrementItem(command.ProductID())
	}
	if err != nil {
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
