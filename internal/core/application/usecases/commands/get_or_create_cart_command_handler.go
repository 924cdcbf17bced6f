package commands

import (
	"context"

	"ordercore/internal/core/domain/model/cart"
	"ordercore/internal/pkg/errs"
)

// GetOrCreateCartCommandHandler returns the user's cart, creating it on first use.
// Safe to call concurrently for the same user: at most one cart is ever stored.
type GetOrCreateCartCommandHandler struct {
	uowFactory CartUoWFactory
}

func NewGetOrCreateCartCommandHandler(uowFactory CartUoWFactory) GetOrCreateCartCommandHandler {
	return GetOrCreateCartCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h GetOrCreateCartCommandHandler) Handle(ctx context.Context, command GetOrCreateCartCommand) (*cart.Cart, error) {
	c, err := h.handle(ctx, command)
	if err != nil {
		return nil, errs.Internal("get or create cart", err)
	}
	return c, nil
}

func (h GetOrCreateCartCommandHandler) handle(ctx context.Context, command GetOrCreateCartCommand) (*cart.Cart, error) {
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

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return c, nil
}
