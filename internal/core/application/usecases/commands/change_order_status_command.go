package commands

import (
	"errors"
	"strings"

	"ordercore/internal/core/domain/model/kernel"
	"ordercore/internal/core/domain/model/order"
	"ordercore/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand moves an order along one edge of the status table.
// For a cancellation the note is the cancellation reason.
//
// Example:
//
//	cmd, err := NewCancelOrderCommand(orderID, "out of stock")
//	if err != nil {
//	    return err
//	}
//	o, err := handler.Handle(ctx, cmd)
//	var invalid *errs.InvalidTransitionError
//	if errors.As(err, &invalid) {
//	    // e.g. COMPLETED -> CANCELLED
//	}
type ChangeOrderStatusCommand struct {
	orderID kernel.UUID
	target  order.Status
	note    string

	guard guard.ConstructorGuard
}

func NewChangeOrderStatusCommand(orderID kernel.UUID, target order.Status, note string) (ChangeOrderStatusCommand, error) {
	if err := errors.Join(orderID.Validate(), target.Validate()); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return ChangeOrderStatusCommand{
		orderID: orderID,
		target:  target,
		note:    strings.TrimSpace(note),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func NewConfirmOrderCommand(orderID kernel.UUID, note string) (ChangeOrderStatusCommand, error) {
	return NewChangeOrderStatusCommand(orderID, order.Confirmed, note)
}

func NewStartProcessingOrderCommand(orderID kernel.UUID, note string) (ChangeOrderStatusCommand, error) {
	return NewChangeOrderStatusCommand(orderID, order.Processing, note)
}

func NewMarkOrderReadyCommand(orderID kernel.UUID, note string) (ChangeOrderStatusCommand, error) {
	return NewChangeOrderStatusCommand(orderID, order.Ready, note)
}

func NewCompleteOrderCommand(orderID kernel.UUID, note string) (ChangeOrderStatusCommand, error) {
	return NewChangeOrderStatusCommand(orderID, order.Completed, note)
}

func NewCancelOrderCommand(orderID kernel.UUID, reason string) (ChangeOrderStatusCommand, error) {
	return NewChangeOrderStatusCommand(orderID, order.Cancelled, reason)
}

// Validate ensures the command was created through a constructor.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ChangeOrderStatusCommand) Target() order.Status {
	return c.target
}

func (c ChangeOrderStatusCommand) Note() string {
	return c.note
}
