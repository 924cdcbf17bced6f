package queries

import (
	"errors"
	"time"

	"ordercore/internal/core/domain/model/kernel"
	"ordercore/internal/pkg/errs"
	"ordercore/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

const (
	DefaultUserOrdersLimit = 20
	MaxUserOrdersLimit     = 100
)

var (
	ErrGetUserOrdersQueryIsNotConstructed = errors.New(
		"GetUserOrdersQuery must be created via NewGetUserOrdersQuery constructor",
	)
)

// GetUserOrdersQuery lists a user's orders, newest first, one page at a time.
// A limit of 0 selects DefaultUserOrdersLimit.
type GetUserOrdersQuery struct {
	userID kernel.UUID
	limit  int
	offset int

	guard guard.ConstructorGuard
}

func NewGetUserOrdersQuery(userID kernel.UUID, limit, offset int) (GetUserOrdersQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetUserOrdersQuery{}, err
	}
	if limit == 0 {
		limit = DefaultUserOrdersLimit
	}
	if limit < 1 || limit > MaxUserOrdersLimit {
		return GetUserOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxUserOrdersLimit)
	}
	if offset < 0 {
		return GetUserOrdersQuery{}, errs.NewValueIsOutOfRangeError("offset", offset, 0, "unbounded")
	}

	return GetUserOrdersQuery{
		userID: userID,
		limit:  limit,
		offset: offset,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q GetUserOrdersQuery) UserID() kernel.UUID { return q.userID }
func (q GetUserOrdersQuery) Limit() int          { return q.limit }
func (q GetUserOrdersQuery) Offset() int         { return q.offset }

func (q GetUserOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUserOrdersQueryIsNotConstructed)
}

// OrderSummary is one row of a user's order history.
type OrderSummary struct {
	ID             kernel.UUID
	Number         string
	Status         string
	TotalAmount    decimal.Decimal
	TotalItemCount int
	CreatedAt      time.Time
}
