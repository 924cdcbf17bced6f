package order

import (
	"errors"
	"fmt"
	"strings"

	"ordercore/internal/core/domain/model/kernel"
	"ordercore/internal/pkg/errs"
)

// Line is a frozen snapshot of one cart line: the product name and unit price as they
// were at checkout. Lines are never mutated once created.
type Line struct {
	productID   kernel.UUID
	productName string
	quantity    int
	unitPrice   kernel.Money
}

// NewLine builds an order line. Storage adapters use it to restore persisted lines.
func NewLine(productID kernel.UUID, productName string, quantity int, unitPrice kernel.Money) (Line, error) {
	var errName, errQuantity error
	productName = strings.TrimSpace(productName)
	if productName == "" {
		errName = errs.NewValueIsRequiredError("product name")
	}
	if quantity < 1 {
		errQuantity = errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	if err := errors.Join(productID.Validate(), errName, errQuantity); err != nil {
		return Line{}, err
	}

	return Line{
		productID:   productID,
		productName: productName,
		quantity:    quantity,
		unitPrice:   unitPrice,
	}, nil
}

func (l Line) ProductID() kernel.UUID {
	return l.productID
}

func (l Line) ProductName() string {
	return l.productName
}

func (l Line) Quantity() int {
	return l.quantity
}

func (l Line) UnitPrice() kernel.Money {
	return l.unitPrice
}

func (l Line) Subtotal() kernel.Money {
	return l.unitPrice.Mul(l.quantity)
}
