package commands

import (
	"context"

	"ordercore/internal/core/domain/model/cart"
	"ordercore/internal/pkg/errs"
)

// ClearCartCommandHandler empties the user's cart.
type ClearCartCommandHandler struct {
	uowFactory CartUoWFactory
}

func NewClearCartCommandHandler(uowFactory CartUoWFactory) ClearCartCommandHandler {
	return ClearCartCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h ClearCartCommandHandler) Handle(ctx context.Context, command ClearCartCommand) (*cart.Cart, error) {
	c, err := h.handle(ctx, command)
	if err != nil {
		return nil, errs.Internal("clear cart", err)
	}
	return c, nil
}

func (h ClearCartCommandHandler) handle(ctx context.Context, command ClearCartCommand) (*cart.Cart, error) {
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

	c.Clear()

	if err = uow.CartRepository().Update(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return c, nil
}
