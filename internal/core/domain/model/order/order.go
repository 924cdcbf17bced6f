package order

import (
	"errors"
	"fmt"
	"maps"
	"strings"
	"time"

	"ordercore/internal/core/domain/model/cart"
	"ordercore/internal/core/domain/model/catalog"
	"ordercore/internal/core/domain/model/kernel"
	"ordercore/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrderFromCart or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrderFromCart constructor")
)

const cancelledPrefix = "CANCELLED"

// Order is the permanent record created from a cart at checkout. It is the aggregate root
// for its lines and for the status lifecycle.
//
// Order follows these invariants:
//   - totalAmount and totalItemCount are copied from the cart at creation and never
//     recomputed from lines afterwards
//   - Lines carry the product name and price captured at creation
//   - Only status, manager comment, confirmedAt and completedAt change after creation,
//     and only through Transition
//   - Status changes follow the transition table in status.go
//
// Order records domain events for every accepted change. A rejected transition leaves the
// order and its pending events untouched.
type Order struct {
	id     kernel.UUID
	number Number
	userID kernel.UUID
	status Status

	totalAmount    kernel.Money
	totalItemCount int

	customerComment string

	// managerComment is an append-only, newline-joined log of notes.
	managerComment string

	contactInfo map[string]string
	lines       []Line

	createdAt   time.Time
	updatedAt   time.Time
	confirmedAt *time.Time
	completedAt *time.Time

	events []kernel.DomainEvent

	isConstructed bool
}

// NewOrderFromCart is the only way to create a new Order. It snapshots the cart as it is
// now: totals verbatim, one line per cart line with the cart's locked price and the
// product's current name. products must hold a snapshot for every cart line.
//
// Returns:
//   - ErrEmptyCart if the cart has no lines
//   - ProductUnavailableError if a line's product is missing from products
//   - validation errors for identifiers and number
//
// The new order is Pending and carries one PlacedEvent.
func NewOrderFromCart(
	id kernel.UUID,
	number Number,
	source *cart.Cart,
	products map[kernel.UUID]catalog.Product,
	customerComment string,
	contactInfo map[string]string,
	now time.Time,
) (*Order, error) {
	if err := source.Validate(); err != nil {
		return nil, err
	}
	if source.IsEmpty() {
		return nil, errs.ErrEmptyCart
	}

	lines := make([]Line, 0, len(source.Lines()))
	for _, cl := range source.Lines() {
		product, ok := products[cl.ProductID()]
		if !ok {
			return nil, errs.NewProductUnavailableError(cl.ProductID().String(), "product not found")
		}
		line, err := NewLine(cl.ProductID(), product.Name(), cl.Quantity(), cl.UnitPrice())
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	o := &Order{
		status:          Pending,
		totalAmount:     source.TotalAmount(),
		totalItemCount:  source.TotalItemCount(),
		customerComment: strings.TrimSpace(customerComment),
		contactInfo:     maps.Clone(contactInfo),
		lines:           lines,
		createdAt:       now,
		updatedAt:       now,
		isConstructed:   true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setUserID(source.UserID()),
	); err != nil {
		return nil, err
	}

	o.record(PlacedEvent{
		OrderID:        o.id,
		UserID:         o.userID,
		OrderNumber:    o.number.String(),
		TotalAmount:    o.totalAmount.Decimal(),
		TotalItemCount: o.totalItemCount,
		At:             now,
	})
	return o, nil
}

// State is the persisted form of an order, used by storage adapters to rebuild it.
type State struct {
	ID              kernel.UUID
	Number          Number
	UserID          kernel.UUID
	Status          Status
	TotalAmount     kernel.Money
	TotalItemCount  int
	CustomerComment string
	ManagerComment  string
	ContactInfo     map[string]string
	Lines           []Line
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ConfirmedAt     *time.Time
	CompletedAt     *time.Time
}

// RestoreOrder rebuilds an order from storage. Totals are taken as stored.
// No events are recorded.
func RestoreOrder(s State) (*Order, error) {
	o := &Order{
		totalAmount:     s.TotalAmount,
		customerComment: s.CustomerComment,
		managerComment:  s.ManagerComment,
		contactInfo:     maps.Clone(s.ContactInfo),
		lines:           append([]Line(nil), s.Lines...),
		createdAt:       s.CreatedAt,
		updatedAt:       s.UpdatedAt,
		confirmedAt:     s.ConfirmedAt,
		completedAt:     s.CompletedAt,
		isConstructed:   true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setNumber(s.Number),
		o.setUserID(s.UserID),
		o.setStatus(s.Status),
		o.setTotalItemCount(s.TotalItemCount),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Number() Number {
	return o.number
}

func (o *Order) UserID() kernel.UUID {
	return o.userID
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) TotalAmount() kernel.Money {
	return o.totalAmount
}

func (o *Order) TotalItemCount() int {
	return o.totalItemCount
}

func (o *Order) CustomerComment() string {
	return o.customerComment
}

func (o *Order) ManagerComment() string {
	return o.managerComment
}

// ContactInfo returns a copy of the free-form contact payload.
func (o *Order) ContactInfo() map[string]string {
	return maps.Clone(o.contactInfo)
}

// Lines returns a copy of the order lines in cart order.
func (o *Order) Lines() []Line {
	return append([]Line(nil), o.lines...)
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// ConfirmedAt is nil until the order is confirmed.
func (o *Order) ConfirmedAt() *time.Time {
	return o.confirmedAt
}

// CompletedAt is nil until the order is completed.
func (o *Order) CompletedAt() *time.Time {
	return o.completedAt
}

// DomainEvents returns events recorded since the order was loaded or created.
func (o *Order) DomainEvents() []kernel.DomainEvent {
	return append([]kernel.DomainEvent(nil), o.events...)
}

// ClearDomainEvents drops recorded events once they have been persisted to the outbox.
func (o *Order) ClearDomainEvents() {
	o.events = nil
}

// Transition moves the order to target along a legal edge.
//
// On success it:
//   - sets the status
//   - stamps confirmedAt when entering Confirmed, completedAt when entering Completed
//   - appends note to the manager comment log; for Cancelled the note is the reason and
//     is recorded as "CANCELLED: <reason>" (or "CANCELLED" when empty)
//   - records StatusChangedEvent, or CancelledEvent for cancellation
//
// An illegal edge returns InvalidTransitionError and changes nothing.
func (o *Order) Transition(target Status, note string, now time.Time) error {
	from := o.status
	next, err := from.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = next
	o.updatedAt = now
	note = strings.TrimSpace(note)

	switch next {
	case Confirmed:
		o.confirmedAt = &now
	case Completed:
		o.completedAt = &now
	}

	if next == Cancelled {
		o.appendManagerComment(cancellationNote(note))
		o.record(CancelledEvent{
			OrderID:     o.id,
			UserID:      o.userID,
			OrderNumber: o.number.String(),
			From:        from.String(),
			Reason:      note,
			At:          now,
		})
		return nil
	}

	o.appendManagerComment(note)
	o.record(StatusChangedEvent{
		OrderID:     o.id,
		UserID:      o.userID,
		OrderNumber: o.number.String(),
		From:        from.String(),
		To:          next.String(),
		Note:        note,
		At:          now,
	})
	return nil
}

func (o *Order) Confirm(note string, now time.Time) error {
	return o.Transition(Confirmed, note, now)
}

func (o *Order) StartProcessing(note string, now time.Time) error {
	return o.Transition(Processing, note, now)
}

func (o *Order) MarkReady(note string, now time.Time) error {
	return o.Transition(Ready, note, now)
}

func (o *Order) Complete(note string, now time.Time) error {
	return o.Transition(Completed, note, now)
}

// Cancel is checked against the transition table like any other edge.
func (o *Order) Cancel(reason string, now time.Time) error {
	return o.Transition(Cancelled, reason, now)
}

func (o *Order) appendManagerComment(note string) {
	if note == "" {
		return
	}
	if o.managerComment == "" {
		o.managerComment = note
		return
	}
	o.managerComment += "\n" + note
}

func (o *Order) record(event kernel.DomainEvent) {
	o.events = append(o.events, event)
}

func cancellationNote(reason string) string {
	if reason == "" {
		return cancelledPrefix
	}
	return cancelledPrefix + ": " + reason
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number Number) error {
	if number.IsEmpty() {
		return errs.NewValueIsRequiredError("order number")
	}
	o.number = number
	return nil
}

func (o *Order) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("user id", err)
	}
	o.userID = userID
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setTotalItemCount(count int) error {
	if count < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"total item count",
			fmt.Errorf("%d is negative", count),
		)
	}
	o.totalItemCount = count
	return nil
}
