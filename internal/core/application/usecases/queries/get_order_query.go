package queries

import (
	"errors"
	"time"

	"ordercore/internal/core/domain/model/kernel"
	"ordercore/internal/core/domain/model/order"
	"ordercore/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery or NewGetOrderByNumberQuery constructor",
	)
)

// GetOrderQuery looks an order up either by ID or by its human-readable number.
//
// Example:
//
//	query, err := NewGetOrderByNumberQuery("ORD-20240601-7QK2M9XA")
//	if err != nil {
//	    return err
//	}
//	details, err := handler.Handle(ctx, query)
type GetOrderQuery struct {
	orderID kernel.UUID
	number  order.Number

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// NewGetOrderByNumberQuery parses number and fails with ValueIsInvalidError on a
// malformed one.
func NewGetOrderByNumberQuery(number string) (GetOrderQuery, error) {
	n, err := order.ParseNumber(number)
	if err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		number: n,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// ByNumber reports whether the query was built from an order number.
func (q GetOrderQuery) ByNumber() bool {
	return !q.number.IsEmpty()
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q GetOrderQuery) Number() order.Number {
	return q.number
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderDetails is the full order read model.
type OrderDetails struct {
	ID              kernel.UUID
	Number          string
	UserID          kernel.UUID
	Status          string
	TotalAmount     decimal.Decimal
	TotalItemCount  int
	CustomerComment string
	ManagerComment  string
	ContactInfo     map[string]string
	Lines           []OrderLineView
	AllowedStatuses []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ConfirmedAt     *time.Time
	CompletedAt     *time.Time
}

type OrderLineView struct {
	ProductID   kernel.UUID
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}
