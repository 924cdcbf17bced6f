package commands

import (
	"context"
	"time"

	"ordercore/internal/core/domain/model/order"
	"ordercore/internal/pkg/errs"
)

// ChangeOrderStatusCommandHandler applies one status transition. The order row is locked
// before the current status is checked, so of two concurrent transitions from the same
// state only the first to commit succeeds; the second sees the new state and is rejected.
//
// The notification is not sent here. The transition records a domain event that the unit
// of work stores in the outbox on commit; a rejected transition records nothing.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      func() time.Time
}

func NewChangeOrderStatusCommandHandler(uowFactory OrderUoWFactory, clock func() time.Time) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle returns the updated order.
func (h ChangeOrderStatusCommandHandler) Handle(
	ctx context.Context,
	command ChangeOrderStatusCommand,
) (*order.Order, error) {
	o, err := h.handle(ctx, command)
	if err != nil {
		return nil, errs.Internal("change order status", err)
	}
	return o, nil
}

func (h ChangeOrderStatusCommandHandler) handle(
	ctx context.Context,
	command ChangeOrderStatusCommand,
) (*order.Order, error) {
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

	o, err := uow.OrderRepository().GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	if err = o.Transition(command.Target(), command.Note(), h.clock()); err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
