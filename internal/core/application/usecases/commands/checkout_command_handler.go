package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ordercore/internal/core/domain/model/cart"
	"ordercore/internal/core/domain/model/catalog"
	"ordercore/internal/core/domain/model/kernel"
	"ordercore/internal/core/domain/model/order"
	"ordercore/internal/core/domain/services"
	"ordercore/internal/core/ports"
	"ordercore/internal/pkg/errs"
)

// DefaultOrderNumberAttempts bounds order-number generation when no limit is configured.
const DefaultOrderNumberAttempts = 5

// CheckoutCommandHandler turns a cart into an order in one transaction:
//
//  1. lock the cart row
//  2. read product snapshots and validate the cart against them
//  3. create the order under a fresh, unused order number
//  4. clear the cart
//
// Any failure rolls back all four steps, so there is never a partial order or an
// emptied cart without an order.
type CheckoutCommandHandler struct {
	uowFactory        CheckoutUoWFactory
	validator         services.CheckoutValidator
	numbers           order.NumberGenerator
	clock             func() time.Time
	maxNumberAttempts int
}

// NewCheckoutCommandHandler creates the handler. maxNumberAttempts below 1 falls back to
// DefaultOrderNumberAttempts.
func NewCheckoutCommandHandler(
	uowFactory CheckoutUoWFactory,
	numbers order.NumberGenerator,
	clock func() time.Time,
	maxNumberAttempts int,
) CheckoutCommandHandler {
	if maxNumberAttempts < 1 {
		maxNumberAttempts = DefaultOrderNumberAttempts
	}
	return CheckoutCommandHandler{
		uowFactory:        uowFactory,
		validator:         services.NewCheckoutValidator(),
		numbers:           numbers,
		clock:             clock,
		maxNumberAttempts: maxNumberAttempts,
	}
}

// Handle returns the created order.
//
// Returns:
//   - ErrEmptyCart when the user has no cart or an empty one
//   - ProductUnavailableError naming the first missing or inactive product
//   - InternalError when no unique order number was found or storage failed
func (h CheckoutCommandHandler) Handle(ctx context.Context, command CheckoutCommand) (*order.Order, error) {
	o, err := h.handle(ctx, command)
	if err != nil {
		return nil, errs.Internal("checkout", err)
	}
	return o, nil
}

func (h CheckoutCommandHandler) handle(ctx context.Context, command CheckoutCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	c, err := uow.CartRepository().GetByUserForUpdate(ctx, command.UserID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, errs.ErrEmptyCart
	}
	if err != nil {
		return nil, err
	}

	products, err := snapshotProducts(ctx, uow.ProductCatalog(), c)
	if err != nil {
		return nil, err
	}

	if err = h.validator.Validate(c, products); err != nil {
		return nil, err
	}

	o, err := h.placeOrder(ctx, uow.OrderRepository(), c, products, command, h.clock())
	if err != nil {
		return nil, err
	}

	c.Clear()
	if err = uow.CartRepository().Update(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

// placeOrder retries past taken numbers. A number can be free at the existence check and
// taken by a concurrent checkout at insert; that surfaces as ConflictError and is retried too.
func (h CheckoutCommandHandler) placeOrder(
	ctx context.Context,
	repo ports.OrderRepository,
	c *cart.Cart,
	products map[kernel.UUID]catalog.Product,
	command CheckoutCommand,
	now time.Time,
) (*order.Order, error) {
	for range h.maxNumberAttempts {
		number := h.numbers(now)

		taken, err := repo.ExistsByNumber(ctx, number)
		if err != nil {
			return nil, err
		}
		if taken {
			continue
		}

		o, err := order.NewOrderFromCart(
			kernel.NewUUID(),
			number,
			c,
			products,
			command.CustomerComment(),
			command.ContactInfo(),
			now,
		)
		if err != nil {
			return nil, err
		}

		err = repo.Add(ctx, o)
		if errors.Is(err, errs.ErrConflict) {
			continue
		}
		if err != nil {
			return nil, err
		}

		return o, nil
	}

	return nil, errs.NewInternalError(
		"generate order number",
		fmt.Errorf("no unique number after %d attempts", h.maxNumberAttempts),
	)
}
