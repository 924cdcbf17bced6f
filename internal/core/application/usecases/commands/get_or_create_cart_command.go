package commands

import (
	"errors"

	"ordercore/internal/core/domain/model/kernel"
	"ordercore/internal/pkg/guard"
)

var ErrGetOrCreateCartCommandIsNotConstructed = errors.New(
	"GetOrCreateCartCommand must be created via NewGetOrCreateCartCommand constructor",
)

// GetOrCreateCartCommand returns the user's cart, creating an empty one on first use.
//
// Example:
//
//	cmd, err := NewGetOrCreateCartCommand(userID)
//	if err != nil {
//	    return err
//	}
//	c, err := handler.Handle(ctx, cmd)
type GetOrCreateCartCommand struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrCreateCartCommand(userID kernel.UUID) (GetOrCreateCartCommand, error) {
	if err := userID.Validate(); err != nil {
		return GetOrCreateCartCommand{}, err
	}

	return GetOrCreateCartCommand{
		userID: userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c GetOrCreateCartCommand) Validate() error {
	return c.guard.Validate(ErrGetOrCreateCartCommandIsNotConstructed)
}

func (c GetOrCreateCartCommand) UserID() kernel.UUID {
	return c.userID
}
