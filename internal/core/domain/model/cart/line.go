package cart

import (
	"fmt"

	"ordercore/internal/core/domain/model/kernel"
	"ordercore/internal/pkg/errs"
)

// MaxLineQuantity bounds the quantity of a single cart line.
const MaxLineQuantity = 9999

// Line is one (product, quantity, locked unit price) entry of a cart.
// Lines are values; the cart replaces them instead of mutating them in place.
type Line struct {
	productID kernel.UUID
	quantity  int
	unitPrice kernel.Money
}

// NewLine builds a cart line. It is also used by storage adapters to restore persisted lines.
func NewLine(productID kernel.UUID, quantity int, unitPrice kernel.Money) (Line, error) {
	if err := productID.Validate(); err != nil {
		return Line{}, err
	}
	if quantity < 1 {
		return Line{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	if quantity > MaxLineQuantity {
		return Line{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, MaxLineQuantity)
	}
	return Line{productID: productID, quantity: quantity, unitPrice: unitPrice}, nil
}

func (l Line) ProductID() kernel.UUID {
	return l.productID
}

func (l Line) Quantity() int {
	return l.quantity
}

// UnitPrice is the price locked when the product was added or last synced.
func (l Line) UnitPrice() kernel.Money {
	return l.unitPrice
}

func (l Line) Subtotal() kernel.Money {
	return l.unitPrice.Mul(l.quantity)
}

func (l Line) withQuantity(quantity int) Line {
	l.quantity = quantity
	return l
}

func (l Line) withUnitPrice(price kernel.Money) Line {
	l.unitPrice = price
	return l
}
