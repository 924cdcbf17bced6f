package commands

import (
	"errors"

	"ordercore/internal/core/domain/model/kernel"
	"ordercore/internal/pkg/guard"
)

var ErrSetCartItemQuantityCommandIsNotConstructed = errors.New(
	"SetCartItemQuantityCommand must be created via NewSetCartItemQuantityCommand constructor",
)

// SetCartItemQuantityCommand overwrites the quantity of a cart line.
// A quantity of 0 or less removes the line; removing an absent line is a no-op.
type SetCartItemQuantityCommand struct {
	userID    kernel.UUID
	productID kernel.UUID
	quantity  int

	guard guard.ConstructorGuard
}

// NewSetCartItemQuantityCommand accepts any quantity; non-positive values mean removal.
func NewSetCartItemQuantityCommand(userID, productID kernel.UUID, quantity int) (SetCartItemQuantityCommand, error) {
	if err := errors.Join(userID.Validate(), productID.Validate()); err != nil {
		return SetCartItemQuantityCommand{}, err
	}

	return SetCartItemQuantityCommand{
		userID:    userID,
		productID: productID,
		quantity:  quantity,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// NewRemoveCartItemCommand is SetCartItemQuantity with quantity 0.
func NewRemoveCartItemCommand(userID, productID kernel.UUID) (SetCartItemQuantityCommand, error) {
	return NewSetCartItemQuantityCommand(userID, productID, 0)
}

// Validate ensures the command was created through the constructor.
func (c SetCartItemQuantityCommand) Validate() error {
	return c.guard.Validate(ErrSetCartItemQuantityCommandIsNotConstructed)
}

func (c SetCartItemQuantityCommand) UserID() kernel.UUID {
	return c.userID
}

func (c SetCartItemQuantityCommand) ProductID() kernel.UUID {
	return c.productID
}

func (c SetCartItemQuantityCommand) Quantity() int {
	return c.quantity
}
