// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return read models shaped for the transport layer and never mutate state.
package queries

import (
	"errors"

	"ordercore/internal/core/domain/model/kernel"
	"ordercore/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetCartQueryIsNotConstructed = errors.New(
		"GetCartQuery must be created via NewGetCartQuery constructor",
	)
)

// GetCartQuery reads a user's cart without creating it.
//
// Example:
//
//	query, err := NewGetCartQuery(userID)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
type GetCartQuery struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetCartQuery(userID kernel.UUID) (GetCartQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetCartQuery{}, err
	}

	return GetCartQuery{
		userID: userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q GetCartQuery) UserID() kernel.UUID {
	return q.userID
}

// Validate ensures the query was created through the constructor.
func (q GetCartQuery) Validate() error {
	return q.guard.Validate(ErrGetCartQueryIsNotConstructed)
}

// GetCartQueryResponse is the cart read model. A user without a cart gets an empty
// response with Exists false.
type GetCartQueryResponse struct {
	Exists         bool
	ID             kernel.UUID
	UserID         kernel.UUID
	Lines          []CartLineView
	TotalAmount    decimal.Decimal
	TotalItemCount int
}

// CartLineView is one cart line joined with the live catalog row. UnitPrice is the
// locked price; CurrentPrice is what the catalog charges now.
type CartLineView struct {
	ProductID    kernel.UUID
	ProductName  string
	Quantity     int
	UnitPrice    decimal.Decimal
	Subtotal     decimal.Decimal
	CurrentPrice decimal.Decimal
	IsAvailable  bool
}
