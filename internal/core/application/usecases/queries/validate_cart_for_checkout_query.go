package queries

import (
	"errors"

	"ordercore/internal/core/domain/model/kernel"
	"ordercore/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrValidateCartForCheckoutQueryIsNotConstructed = errors.New(
		"ValidateCartForCheckoutQuery must be created via NewValidateCartForCheckoutQuery constructor",
	)
)

// ValidateCartForCheckoutQuery runs the checkout rules against a user's cart without
// placing an order. Checkout repeats the same rules inside its own transaction; a pass
// here is advisory.
type ValidateCartForCheckoutQuery struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

func NewValidateCartForCheckoutQuery(userID kernel.UUID) (ValidateCartForCheckoutQuery, error) {
	if err := userID.Validate(); err != nil {
		return ValidateCartForCheckoutQuery{}, err
	}

	return ValidateCartForCheckoutQuery{
		userID: userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q ValidateCartForCheckoutQuery) UserID() kernel.UUID {
	return q.userID
}

func (q ValidateCartForCheckoutQuery) Validate() error {
	return q.guard.Validate(ErrValidateCartForCheckoutQueryIsNotConstructed)
}

// ValidateCartForCheckoutQueryResponse carries the totals an order would be placed with.
type ValidateCartForCheckoutQueryResponse struct {
	CartID         kernel.UUID
	TotalAmount    decimal.Decimal
	TotalItemCount int
}
