package commands

import (
	"errors"

	"ordercore/internal/core/domain/model/kernel"
	"ordercore/internal/pkg/guard"
)

var ErrAdjustCartItemQuantityCommandIsNotConstructed = errors.New(
	"AdjustCartItemQuantityCommand must be created via NewIncrementCartItemCommand or NewDecrementCartItemCommand",
)

// AdjustCartItemQuantityCommand raises or lowers a line quantity by one.
// Lowering a quantity of 1 removes the line.
type AdjustCartItemQuantityCommand struct {
	userID    kernel.UUID
	productID kernel.UUID
	increment bool

	guard guard.ConstructorGuard
}

func NewIncrementCartItemCommand(userID, productID kernel.UUID) (AdjustCartItemQuantityCommand, error) {
	return newAdjustCartItemQuantityCommand(userID, productID, true)
}

func NewDecrementCartItemCommand(userID, productID kernel.UUID) (AdjustCartItemQuantityCommand, error) {
	return newAdjustCartItemQuantityCommand(userID, productID, false)
}

func newAdjustCartItemQuantityCommand(
	userID, productID kernel.UUID,
	increment bool,
) (AdjustCartItemQuantityCommand, error) {
	if err := errors.Join(userID.Validate(), productID.Validate()); err != nil {
		return AdjustCartItemQuantityCommand{}, err
	}

	return AdjustCartItemQuantityCommand{
		userID:    userID,
		productID: productID,
		increment: increment,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through a constructor.
func (c AdjustCartItemQuantityCommand) Validate() error {
	return c.guard.Validate(ErrAdjustCartItemQuantityCommandIsNotConstructed)
}

func (c AdjustCartItemQuantityCommand) UserID() kernel.UUID {
	return c.userID
}

func (c AdjustCartItemQuantityCommand) ProductID() kernel.UUID {
	return c.productID
}

// IsIncrement is false for a decrement.
func (c AdjustCartItemQuantityCommand) IsIncrement() bool {
	return c.increment
}
