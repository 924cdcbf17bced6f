package commands

import (
	"context"
	"errors"

	"ordercore/internal/core/domain/model/cart"
	"ordercore/internal/core/domain/model/kernel"
	"ordercore/internal/core/ports"
	"ordercore/internal/pkg/errs"
)

// loadCartForUpdate returns the user's cart locked until the transaction ends, creating
// an empty cart on first use. Two first uses racing for the same user both try to insert;
// the loser gets a ConflictError and re-reads the winner's cart.
func loadCartForUpdate(ctx context.Context, repo ports.CartRepository, userID kernel.UUID) (*cart.Cart, error) {
	c, err := repo.GetByUserForUpdate(ctx, userID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	c, err = cart.NewCart(kernel.NewUUID(), userID)
	if err != nil {
		return nil, err
	}

	err = repo.Add(ctx, c)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, errs.ErrConflict) {
		return nil, err
	}

	return repo.GetByUserForUpdate(ctx, userID)
}
