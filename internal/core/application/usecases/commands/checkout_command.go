package commands

import (
	"errors"
	"maps"
	"strings"

	"ordercore/internal/core/domain/model/kernel"
	"ordercore/internal/pkg/guard"
)

var ErrCheckoutCommandIsNotConstructed = errors.New(
	"CheckoutCommand must be created via NewCheckoutCommand constructor",
)

// CheckoutCommand converts the user's cart into a Pending order and empties the cart.
//
// Example:
//
//	cmd, err := NewCheckoutCommand(userID, "leave at the door", map[string]string{"phone": "+1..."})
//	if err != nil {
//	    return err
//	}
//	o, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrEmptyCart) {
//	    // nothing to order
//	}
type CheckoutCommand struct {
	userID          kernel.UUID
	customerComment string
	contactInfo     map[string]string

	guard guard.ConstructorGuard
}

// NewCheckoutCommand accepts an optional comment and contact payload.
func NewCheckoutCommand(userID kernel.UUID, customerComment string, contactInfo map[string]string) (CheckoutCommand, error) {
	if err := userID.Validate(); err != nil {
		return CheckoutCommand{}, err
	}

	return CheckoutCommand{
		userID:          userID,
		customerComment: strings.TrimSpace(customerComment),
		contactInfo:     maps.Clone(contactInfo),
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCommandIsNotConstructed)
}

func (c CheckoutCommand) UserID() kernel.UUID {
	return c.userID
}

func (c CheckoutCommand) CustomerComment() string {
	return c.customerComment
}

func (c CheckoutCommand) ContactInfo() map[string]string {
	return maps.Clone(c.contactInfo)
}
