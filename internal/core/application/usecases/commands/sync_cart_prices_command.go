package commands

import (
	"errors"

	"ordercore/internal/core/domain/model/kernel"
	"ordercore/internal/pkg/guard"
)

var ErrSyncCartPricesCommandIsNotConstructed = errors.New(
	"SyncCartPricesCommand must be created via NewSyncCartPricesCommand constructor",
)

// SyncCartPricesCommand re-reads every cart line's product: changed prices replace the
// locked price and lines whose product is gone or inactive are removed.
// It runs only when a client asks for it; checkout never syncs implicitly.
type SyncCartPricesCommand struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

func NewSyncCartPricesCommand(userID kernel.UUID) (SyncCartPricesCommand, error) {
	if err := userID.Validate(); err != nil {
		return SyncCartPricesCommand{}, err
	}

	return SyncCartPricesCommand{
		userID: userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SyncCartPricesCommand) Validate() error {
	return c.guard.Validate(ErrSyncCartPricesCommandIsNotConstructed)
}

func (c SyncCartPricesCommand) UserID() kernel.UUID {
	return c.userID
}
